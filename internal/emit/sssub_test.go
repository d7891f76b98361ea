package emit

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

func TestEmitSSSub_PlainSS(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSS, Remarks: "ss-1", Server: "a", Port: 1, SS: &node.SSPayload{Method: "aes-256-gcm", Password: "pw"}},
	}
	res := EmitSSSub(nodes)
	raw, err := base64.StdEncoding.DecodeString(res.Artifact)
	if err != nil {
		t.Fatalf("expected valid base64: %v", err)
	}
	var doc sssubDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("expected valid json: %v", err)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].Method != "aes-256-gcm" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestEmitSSSub_VmessUnsupported(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeVmess, Remarks: "vm-1", Server: "a", Port: 1, Vmess: &node.VmessPayload{}},
	}
	res := EmitSSSub(nodes)
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected vmess to be unsupported, got: %v", res.Diagnostics)
	}
}
