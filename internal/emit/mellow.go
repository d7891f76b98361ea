package emit

import (
	"fmt"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

// EmitMellow renders the INI-like [Endpoint] section read by Mellow,
// supporting SS (no plugin), Vmess, and HTTP(S) per the capability matrix
// of spec §6.
func EmitMellow(nodes []*node.Descriptor) *Result {
	result := &Result{}
	var sb strings.Builder
	sb.WriteString("[Endpoint]\n")
	for _, n := range nodes {
		line, ok := mellowLine(n)
		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "unsupported on mellow"})
			continue
		}
		sb.WriteString(line + "\n")
	}
	result.Artifact = sb.String()
	return result
}

func mellowLine(n *node.Descriptor) (string, bool) {
	switch n.LinkType {
	case vo.LinkTypeSS:
		if n.SS.Plugin != "" {
			return "", false
		}
		return fmt.Sprintf("%s = ss, %s, %d, encrypt-method=%s, password=%s", n.Remarks, n.Server, n.Port, n.SS.Method, n.SS.Password), true
	case vo.LinkTypeVmess:
		line := fmt.Sprintf("%s = vmess, %s, %d, uuid=%s, alterid=%d, cipher=%s", n.Remarks, n.Server, n.Port, n.Vmess.UUID, n.Vmess.AlterID, n.Vmess.Security)
		if n.Vmess.TransferProtocol == node.VmessTransportWS {
			line += fmt.Sprintf(", transport=ws, path=%s, host=%s", n.Vmess.Path, n.Vmess.Host)
		}
		if n.Vmess.TLSSecure {
			line += ", tls=true"
		}
		return line, true
	case vo.LinkTypeHTTP, vo.LinkTypeHTTPS:
		proxyType := "http"
		if n.LinkType == vo.LinkTypeHTTPS {
			proxyType = "https"
		}
		line := fmt.Sprintf("%s = %s, %s, %d", n.Remarks, proxyType, n.Server, n.Port)
		if n.Socks.Username != "" {
			line += fmt.Sprintf(", username=%s, password=%s", n.Socks.Username, n.Socks.Password)
		}
		return line, true
	default:
		return "", false
	}
}
