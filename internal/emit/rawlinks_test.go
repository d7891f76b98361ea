package emit

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

func TestEmitRawBundle_MixesSupportedSchemesAndSkipsOthers(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSS, Remarks: "ss-1", Server: "a", Port: 1, SS: &node.SSPayload{Method: "aes-256-gcm", Password: "pw"}},
		{LinkType: vo.LinkTypeSOCKS5, Remarks: "socks-1", Server: "b", Port: 2, Socks: &node.SocksPayload{}},
	}
	res := EmitRawBundle(nodes)
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected socks5 to be skipped, got: %v", res.Diagnostics)
	}
	raw, err := base64.StdEncoding.DecodeString(res.Artifact)
	if err != nil {
		t.Fatalf("expected valid base64: %v", err)
	}
	if !strings.Contains(string(raw), "ss://") {
		t.Fatalf("expected ss link in bundle, got: %s", raw)
	}
}
