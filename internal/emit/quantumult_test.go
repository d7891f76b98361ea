package emit

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

func TestEmitQuantumult_RestrictsToSSSSRVmess(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSS, Remarks: "ss-1", Server: "a", Port: 1, SS: &node.SSPayload{Method: "aes-256-gcm", Password: "pw"}},
		{LinkType: vo.LinkTypeTrojan, Remarks: "tr-1", Server: "b", Port: 2, Trojan: &node.TrojanPayload{Password: "pw"}},
	}
	res := EmitQuantumult(nodes)
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected trojan to be skipped, got: %v", res.Diagnostics)
	}
	raw, err := base64.StdEncoding.DecodeString(res.Artifact)
	if err != nil {
		t.Fatalf("expected valid base64 artifact: %v", err)
	}
	if !strings.Contains(string(raw), "ss://") {
		t.Fatalf("expected ss link in decoded bundle, got: %s", raw)
	}
}

func TestEmitQuantumultX_SupportsTrojanAndHTTP(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeTrojan, Remarks: "tr-1", Server: "a", Port: 443, Trojan: &node.TrojanPayload{Password: "pw", SNI: "a"}},
		{LinkType: vo.LinkTypeHTTP, Remarks: "http-1", Server: "b", Port: 80, Socks: &node.SocksPayload{Username: "u", Password: "p"}},
		{LinkType: vo.LinkTypeSOCKS5, Remarks: "socks-1", Server: "c", Port: 1080, Socks: &node.SocksPayload{}},
	}
	res := EmitQuantumultX(nodes, Options{})
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected socks5 to be unsupported, got: %v", res.Diagnostics)
	}
	if !strings.Contains(res.Artifact, "trojan=a:443") {
		t.Fatalf("expected trojan line, got: %s", res.Artifact)
	}
}

func TestEmitQuantumultX_VmessAutoCipherSubstituted(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeVmess, Remarks: "vm-1", Server: "a", Port: 1, Vmess: &node.VmessPayload{UUID: "u", Security: "auto"}},
	}
	res := EmitQuantumultX(nodes, Options{})
	if !strings.Contains(res.Artifact, "method=chacha20-ietf-poly1305") {
		t.Fatalf("expected auto cipher substitution, got: %s", res.Artifact)
	}
}
