package emit

import (
	"fmt"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	"github.com/orris-inc/subconv/internal/ruleset"
)

// EmitSurge renders nodes and groups into a Surge-family INI-like document
// targeting the given major version (2, 3, or 4), whose proxy syntax and
// capability matrix vary by version (spec §4.E, §6). baseGeneral/baseDNS
// are the base template's [General]/[DNS] sections, passed through
// unmodified; only [Proxy], [Proxy Group], and [Rule] are rebuilt.
func EmitSurge(nodes []*node.Descriptor, groups []GroupDef, entries []ruleset.Entry, baseRules []string, opts Options, version int, baseGeneral, baseDNS []string) (*Result, error) {
	result := &Result{}
	var proxyLines []string
	var names []string
	nextSSRPort := 1080

	for _, n := range nodes {
		line, skip, portUsed := surgeProxyLine(n, opts, version, nextSSRPort)
		if skip {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: fmt.Sprintf("unsupported on surge v%d", version)})
			continue
		}
		if portUsed {
			nextSSRPort++
		}
		proxyLines = append(proxyLines, line)
		names = append(names, n.Remarks)
	}

	expandedGroups, err := ExpandGroups(groups, nodes)
	if err != nil {
		return nil, err
	}

	rules := SpliceRules(entries, baseRules, ruleset.DialectSurge, opts)

	var sb strings.Builder
	if len(baseGeneral) > 0 {
		sb.WriteString("[General]\n")
		for _, line := range baseGeneral {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
	if len(baseDNS) > 0 {
		sb.WriteString("[DNS]\n")
		for _, line := range baseDNS {
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[Proxy]\n")
	for i, line := range proxyLines {
		sb.WriteString(names[i] + " = " + line + "\n")
	}
	sb.WriteString("\n[Proxy Group]\n")
	for _, g := range expandedGroups {
		sb.WriteString(surgeGroupLine(g) + "\n")
	}
	sb.WriteString("\n[Rule]\n")
	for _, r := range rules {
		sb.WriteString(r + "\n")
	}

	result.Artifact = sb.String()
	return result, nil
}

// surgeProxyLine renders one node's Surge proxy-line body (the part after
// "Name = "). portUsed reports whether an SSR local_port was allocated.
func surgeProxyLine(n *node.Descriptor, opts Options, version, nextSSRPort int) (line string, skip bool, portUsed bool) {
	switch n.LinkType {
	case vo.LinkTypeSS:
		if version >= 3 {
			line := fmt.Sprintf("ss, %s, %d, encrypt-method=%s, password=%s", n.Server, n.Port, n.SS.Method, n.SS.Password)
			return withSharedFlags(line, n, opts), false, false
		}
		line := fmt.Sprintf("custom, %s, %d, %s, %s, https://raw.githubusercontent.com/Surge-Networks/SSEncrypt/master/SSEncrypt.module",
			n.Server, n.Port, n.SS.Method, n.SS.Password)
		return withSharedFlags(line, n, opts), false, false
	case vo.LinkTypeSSR:
		if opts.SurgeSSRPath == "" {
			return "", true, false
		}
		argv := fmt.Sprintf("-l %d -s %s -p %d -m %s -k %s -o %s -O %s", nextSSRPort, n.Server, n.Port, n.SSR.Method, n.SSR.Password, n.SSR.Obfs, n.SSR.Protocol)
		line := fmt.Sprintf("external, exec=%q, args=%q, local-port=%d", opts.SurgeSSRPath, argv, nextSSRPort)
		return line, false, true
	case vo.LinkTypeVmess:
		if version < 4 {
			return "", true, false
		}
		if n.Vmess.TransferProtocol == node.VmessTransportKCP || n.Vmess.TransferProtocol == node.VmessTransportH2 || n.Vmess.TransferProtocol == node.VmessTransportQUIC {
			return "", true, false
		}
		line := fmt.Sprintf("vmess, %s, %d, username=%s", n.Server, n.Port, n.Vmess.UUID)
		if n.Vmess.TransferProtocol == node.VmessTransportWS {
			line += ", ws=true, ws-path=" + n.Vmess.Path
			if n.Vmess.Host != "" {
				line += ", ws-headers=Host:" + n.Vmess.Host
			}
		}
		if n.Vmess.TLSSecure {
			line += ", tls=true"
		}
		return withSharedFlags(line, n, opts), false, false
	case vo.LinkTypeTrojan:
		line := fmt.Sprintf("trojan, %s, %d, password=%s", n.Server, n.Port, n.Trojan.Password)
		if n.Trojan.SNI != "" {
			line += ", sni=" + n.Trojan.SNI
		}
		return withSharedFlags(line, n, opts), false, false
	case vo.LinkTypeSnell:
		if version < 3 {
			return "", true, false
		}
		line := fmt.Sprintf("snell, %s, %d, psk=%s", n.Server, n.Port, n.Snell.Password)
		if n.Snell.Obfs != "" {
			line += ", obfs=" + n.Snell.Obfs
		}
		return withSharedFlags(line, n, opts), false, false
	case vo.LinkTypeSOCKS5:
		line := fmt.Sprintf("socks5, %s, %d", n.Server, n.Port)
		if n.Socks.Username != "" {
			line += fmt.Sprintf(", username=%s, password=%s", n.Socks.Username, n.Socks.Password)
		}
		return withSharedFlags(line, n, opts), false, false
	case vo.LinkTypeHTTP, vo.LinkTypeHTTPS:
		proxyType := "http"
		if n.LinkType == vo.LinkTypeHTTPS {
			proxyType = "https"
		}
		line := fmt.Sprintf("%s, %s, %d", proxyType, n.Server, n.Port)
		if n.Socks.Username != "" {
			line += fmt.Sprintf(", username=%s, password=%s", n.Socks.Username, n.Socks.Password)
		}
		return line, false, false
	default:
		return "", true, false
	}
}

// withSharedFlags appends the tri-state flags shared across Surge proxy
// lines (spec §6: "Shared tri-state flags appended when true").
func withSharedFlags(line string, n *node.Descriptor, opts Options) string {
	if resolveTri(opts.UDP, n.UDP) {
		line += ", udp-relay=true"
	}
	if resolveTri(opts.TFO, n.TCPFastOpen) {
		line += ", tfo=true"
	}
	if resolveTri(opts.SkipCertVerify, n.SkipCertVerify) {
		line += ", skip-cert-verify=1"
	}
	return line
}

func surgeGroupLine(g Group) string {
	line := g.Name + " = " + g.Type + ", " + strings.Join(g.Members, ", ")
	if g.URL != "" {
		line += fmt.Sprintf(", url=%s", g.URL)
	}
	if g.Interval > 0 {
		line += fmt.Sprintf(", interval=%d", g.Interval)
	}
	return line
}
