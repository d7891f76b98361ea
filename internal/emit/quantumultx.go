package emit

import (
	"fmt"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

// EmitQuantumultX renders the plain-text server-line format read by
// QuantumultX, supporting SS/SSR/Vmess/Trojan/HTTP(S) per the capability
// matrix of spec §6. Vmess's "auto" cipher has no QuantumultX equivalent
// and is substituted with chacha20-ietf-poly1305.
func EmitQuantumultX(nodes []*node.Descriptor, opts Options) *Result {
	result := &Result{}
	var lines []string
	for _, n := range nodes {
		line, ok := quantumultXLine(n, opts)
		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "unsupported on quantumultx"})
			continue
		}
		lines = append(lines, line)
	}
	result.Artifact = strings.Join(lines, "\n")
	return result
}

func quantumultXLine(n *node.Descriptor, opts Options) (string, bool) {
	switch n.LinkType {
	case vo.LinkTypeSS:
		line := fmt.Sprintf("shadowsocks=%s:%d, method=%s, password=%s, tag=%s", n.Server, n.Port, n.SS.Method, n.SS.Password, n.Remarks)
		if n.SS.Plugin != "" {
			line += fmt.Sprintf(", %s", quantumultXObfs(n.SS.Plugin, n.SS.PluginOpts))
		}
		return withQuantumultXFlags(line, n, opts), true
	case vo.LinkTypeSSR:
		line := fmt.Sprintf("shadowsocks=%s:%d, method=%s, password=%s, ssr-protocol=%s, ssr-protocol-param=%s, obfs=%s, obfs-host=%s, tag=%s",
			n.Server, n.Port, n.SSR.Method, n.SSR.Password, n.SSR.Protocol, n.SSR.ProtocolParam, n.SSR.Obfs, n.SSR.ObfsParam, n.Remarks)
		return withQuantumultXFlags(line, n, opts), true
	case vo.LinkTypeVmess:
		cipher := n.Vmess.Security
		if cipher == "" || cipher == "auto" {
			cipher = "chacha20-ietf-poly1305"
		}
		line := fmt.Sprintf("vmess=%s:%d, method=%s, password=%s, tag=%s", n.Server, n.Port, cipher, n.Vmess.UUID, n.Remarks)
		if n.Vmess.TransferProtocol == node.VmessTransportWS {
			line += fmt.Sprintf(", obfs=ws, obfs-host=%s, obfs-uri=%s", n.Vmess.Host, n.Vmess.Path)
		}
		if n.Vmess.TLSSecure {
			line += ", tls13=true"
		}
		return withQuantumultXFlags(line, n, opts), true
	case vo.LinkTypeTrojan:
		line := fmt.Sprintf("trojan=%s:%d, password=%s, over-tls=true, tls-host=%s, tag=%s", n.Server, n.Port, n.Trojan.Password, n.Trojan.SNI, n.Remarks)
		return withQuantumultXFlags(line, n, opts), true
	case vo.LinkTypeHTTP, vo.LinkTypeHTTPS:
		line := fmt.Sprintf("http=%s:%d, username=%s, password=%s, over-tls=%t, tag=%s",
			n.Server, n.Port, n.Socks.Username, n.Socks.Password, n.LinkType == vo.LinkTypeHTTPS, n.Remarks)
		return line, true
	default:
		return "", false
	}
}

func quantumultXObfs(plugin, pluginOpts string) string {
	opts := parsePluginOptsString(pluginOpts)
	switch plugin {
	case "simple-obfs", "obfs-local":
		mode, _ := opts["mode"].(string)
		host, _ := opts["host"].(string)
		return fmt.Sprintf("obfs=%s, obfs-host=%s", mode, host)
	default:
		return ""
	}
}

func withQuantumultXFlags(line string, n *node.Descriptor, opts Options) string {
	if resolveTri(opts.TFO, n.TCPFastOpen) {
		line += ", fast-open=true"
	}
	if resolveTri(opts.UDP, n.UDP) {
		line += ", udp-relay=true"
	}
	return line
}
