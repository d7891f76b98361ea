package emit

import (
	"encoding/base64"
	"encoding/json"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

type ssdOutServer struct {
	ID         int    `json:"id"`
	Remarks    string `json:"remarks"`
	Server     string `json:"server"`
	Port       int    `json:"port"`
	Encryption string `json:"encryption"`
	Password   string `json:"password"`
	Plugin     string `json:"plugin,omitempty"`
	PluginOpts string `json:"plugin_options,omitempty"`
}

type ssdOutDocument struct {
	Airport  string         `json:"airport"`
	Port     int            `json:"port"`
	Servers  []ssdOutServer `json:"servers"`
}

// EmitSSD renders an "ssd://"-prefixed base64 JSON document, restricted to
// the Shadowsocks family: plain SS nodes and SSR nodes that degrade
// cleanly to SS (spec §4.B rule 3, §6).
func EmitSSD(nodes []*node.Descriptor, airport string) *Result {
	result := &Result{}
	doc := ssdOutDocument{Airport: airport}
	for i, n := range nodes {
		switch n.LinkType {
		case vo.LinkTypeSS:
			doc.Servers = append(doc.Servers, ssdOutServer{
				ID: i, Remarks: n.Remarks, Server: n.Server, Port: int(n.Port),
				Encryption: n.SS.Method, Password: n.SS.Password,
				Plugin: n.SS.Plugin, PluginOpts: n.SS.PluginOpts,
			})
		case vo.LinkTypeSSR:
			if !vo.IsSSCompatibleSSR(n.SSR.Method, n.SSR.Protocol, n.SSR.Obfs, false) {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "ssr not ss-compatible for ssd target"})
				continue
			}
			doc.Servers = append(doc.Servers, ssdOutServer{
				ID: i, Remarks: n.Remarks, Server: n.Server, Port: int(n.Port),
				Encryption: n.SSR.Method, Password: n.SSR.Password,
			})
		default:
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "unsupported on ssd"})
		}
	}
	raw, _ := json.Marshal(doc)
	result.Artifact = "ssd://" + base64.StdEncoding.EncodeToString(raw)
	return result
}
