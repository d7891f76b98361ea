package emit

import (
	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

// EmitRawBundle renders the base64-wrapped newline-joined link bundle (spec
// §4.E last paragraph), covering whichever of SS/SSR/Vmess/Trojan ToLink
// supports; any other scheme is silently skipped as a diagnostic.
func EmitRawBundle(nodes []*node.Descriptor) *Result {
	result := &Result{}
	var links []string
	for _, n := range nodes {
		link, ok := ToLink(n)
		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "no raw link representation for " + n.LinkType.String()})
			continue
		}
		links = append(links, link)
	}
	result.Artifact = JoinBase64Bundle(links)
	return result
}
