package emit

import (
	"encoding/base64"
	"encoding/json"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

// sssubServer mirrors the SIP008 server-object shape.
type sssubServer struct {
	ID         int    `json:"id"`
	Remarks    string `json:"remarks"`
	Server     string `json:"server"`
	ServerPort int    `json:"server_port"`
	Method     string `json:"method"`
	Password   string `json:"password"`
	Plugin     string `json:"plugin,omitempty"`
	PluginOpts string `json:"plugin_opts,omitempty"`
}

type sssubDocument struct {
	Version int           `json:"version"`
	Servers []sssubServer `json:"servers"`
}

// EmitSSSub renders a SIP008-style SS-sub JSON document, restricted to the
// Shadowsocks family like the SSD target (spec §6).
func EmitSSSub(nodes []*node.Descriptor) *Result {
	result := &Result{}
	doc := sssubDocument{Version: 1}
	for i, n := range nodes {
		switch n.LinkType {
		case vo.LinkTypeSS:
			doc.Servers = append(doc.Servers, sssubServer{
				ID: i, Remarks: n.Remarks, Server: n.Server, ServerPort: int(n.Port),
				Method: n.SS.Method, Password: n.SS.Password,
				Plugin: n.SS.Plugin, PluginOpts: n.SS.PluginOpts,
			})
		case vo.LinkTypeSSR:
			if !vo.IsSSCompatibleSSR(n.SSR.Method, n.SSR.Protocol, n.SSR.Obfs, false) {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "ssr not ss-compatible for ss-sub target"})
				continue
			}
			doc.Servers = append(doc.Servers, sssubServer{
				ID: i, Remarks: n.Remarks, Server: n.Server, ServerPort: int(n.Port),
				Method: n.SSR.Method, Password: n.SSR.Password,
			})
		default:
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "unsupported on ss-sub"})
		}
	}
	raw, _ := json.MarshalIndent(doc, "", "  ")
	result.Artifact = base64.StdEncoding.EncodeToString(raw)
	return result
}
