package emit

import (
	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

// EmitQuantumult renders the base64-wrapped link bundle consumed by
// (classic) Quantumult, restricted to SS/SSR/Vmess per the capability
// matrix of spec §6 — Trojan, Snell, SOCKS5 and HTTP(S) have no
// representation in this target.
func EmitQuantumult(nodes []*node.Descriptor) *Result {
	result := &Result{}
	var links []string
	for _, n := range nodes {
		if n.LinkType != vo.LinkTypeSS && n.LinkType != vo.LinkTypeSSR && n.LinkType != vo.LinkTypeVmess {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "unsupported on quantumult"})
			continue
		}
		link, ok := ToLink(n)
		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "unsupported on quantumult"})
			continue
		}
		links = append(links, link)
	}
	result.Artifact = JoinBase64Bundle(links)
	return result
}
