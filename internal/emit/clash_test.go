package emit

import (
	"strings"
	"testing"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

func TestEmitClash_SSNode(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSS, Remarks: "hk-1", Server: "hk.example.com", Port: 8388,
			SS: &node.SSPayload{Method: "aes-256-gcm", Password: "pw"}},
	}
	res, err := EmitClash(nodes, nil, nil, nil, Options{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if !strings.Contains(res.Artifact, "hk.example.com") {
		t.Fatalf("expected server in artifact, got: %s", res.Artifact)
	}
}

func TestEmitClash_SSRRequiresClashRTarget(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSSR, Remarks: "ssr-1", Server: "a", Port: 1,
			SSR: &node.SSRPayload{Method: "aes-128-cfb", Protocol: "auth_aes128_md5", Obfs: "plain"}},
	}
	res, err := EmitClash(nodes, nil, nil, nil, Options{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected ssr to be skipped on plain clash, got: %v", res.Diagnostics)
	}
}

func TestEmitClash_SSRAllowedOnClashRTarget(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSSR, Remarks: "ssr-1", Server: "a", Port: 1,
			SSR: &node.SSRPayload{Method: "aes-128-cfb", Protocol: "auth_aes128_md5", Obfs: "plain"}},
	}
	res, err := EmitClash(nodes, nil, nil, nil, Options{}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("expected ssr to be accepted on clashr target, got: %v", res.Diagnostics)
	}
}

func TestEmitClash_SSRFilteredWhenDeprecatedProtocol(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSSR, Remarks: "ssr-1", Server: "a", Port: 1,
			SSR: &node.SSRPayload{Method: "aes-128-cfb", Protocol: "auth_chain_a", Obfs: "plain"}},
	}
	res, err := EmitClash(nodes, nil, nil, nil, Options{FilterDeprecated: true}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected deprecated ssr protocol to be filtered, got: %v", res.Diagnostics)
	}
}

func TestEmitClash_VmessKCPUnsupported(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeVmess, Remarks: "vm-1", Server: "a", Port: 1,
			Vmess: &node.VmessPayload{UUID: "u", TransferProtocol: node.VmessTransportKCP}},
	}
	res, err := EmitClash(nodes, nil, nil, nil, Options{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected kcp vmess to be unsupported, got: %v", res.Diagnostics)
	}
}

func TestEmitClash_SSPluginTranslation(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSS, Remarks: "ss-1", Server: "a", Port: 1,
			SS: &node.SSPayload{Method: "aes-256-gcm", Password: "pw", Plugin: "obfs-local", PluginOpts: "obfs=http;obfs-host=x.com"}},
	}
	res, err := EmitClash(nodes, nil, nil, nil, Options{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Artifact, "obfs") {
		t.Fatalf("expected translated obfs plugin in artifact, got: %s", res.Artifact)
	}
}

func TestEmitClash_GroupsAndRulesSpliced(t *testing.T) {
	nodes := []*node.Descriptor{
		{LinkType: vo.LinkTypeSS, Remarks: "hk-1", Server: "a", Port: 1, SS: &node.SSPayload{Method: "aes-256-gcm", Password: "pw"}},
	}
	groups := []GroupDef{{Name: "proxy", Type: "select", MemberExprs: []string{"[]hk-1"}}}
	res, err := EmitClash(nodes, groups, nil, []string{"FINAL,DIRECT"}, Options{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Artifact, "proxy-groups") {
		t.Fatalf("expected proxy-groups key, got: %s", res.Artifact)
	}
	if !strings.Contains(res.Artifact, "FINAL,DIRECT") {
		t.Fatalf("expected base rules to be carried, got: %s", res.Artifact)
	}
}
