package emit

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	"github.com/orris-inc/subconv/internal/ruleset"
)

type clashProxy struct {
	Name           string            `yaml:"name"`
	Type           string            `yaml:"type"`
	Server         string            `yaml:"server"`
	Port           uint16            `yaml:"port"`
	Cipher         string            `yaml:"cipher,omitempty"`
	Password       string            `yaml:"password,omitempty"`
	UDP            bool              `yaml:"udp,omitempty"`
	Plugin         string            `yaml:"plugin,omitempty"`
	PluginOpts     map[string]any    `yaml:"plugin-opts,omitempty"`
	SNI            string            `yaml:"sni,omitempty"`
	SkipCertVerify bool              `yaml:"skip-cert-verify,omitempty"`
	Network        string            `yaml:"network,omitempty"`
	WSOpts         *clashWSOpts      `yaml:"ws-opts,omitempty"`
	UUID           string            `yaml:"uuid,omitempty"`
	AlterID        uint32            `yaml:"alterId,omitempty"`
	TLS            bool              `yaml:"tls,omitempty"`
	Protocol       string            `yaml:"protocol,omitempty"`
	ProtocolParam  string            `yaml:"protocol-param,omitempty"`
	Obfs           string            `yaml:"obfs,omitempty"`
	ObfsParam      string            `yaml:"obfs-param,omitempty"`
	ObfsHost       string            `yaml:"obfs-host,omitempty"`
	PSK            string            `yaml:"psk,omitempty"`
	Username       string            `yaml:"username,omitempty"`
}

type clashWSOpts struct {
	Path    string            `yaml:"path,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
}

type clashGroup struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"`
	Proxies []string `yaml:"proxies"`
	URL     string   `yaml:"url,omitempty"`
	Interval int     `yaml:"interval,omitempty"`
}

// EmitClash renders nodes and groups into a Clash (isClashR=false) or
// ClashR (isClashR=true) YAML document (spec §4.E). The
// `normalize.Rules` pipeline is assumed to already have been applied to
// nodes by the caller (spec §4.E step 2).
func EmitClash(nodes []*node.Descriptor, groups []GroupDef, entries []ruleset.Entry, baseRules []string, opts Options, isClashR bool) (*Result, error) {
	result := &Result{}
	var proxies []clashProxy
	var names []string

	for _, n := range nodes {
		proxy, ok := clashProxyFor(n, opts, isClashR)
		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Remarks: n.Remarks, Reason: "unsupported variant or transport for clash target"})
			continue
		}
		proxies = append(proxies, proxy)
		names = append(names, n.Remarks)
	}

	expandedGroups, err := ExpandGroups(groups, nodes)
	if err != nil {
		return nil, err
	}

	rules := SpliceRules(entries, baseRules, ruleset.DialectClash, opts)

	doc := map[string]any{}
	for k, v := range opts.ClashBaseExtra {
		doc[k] = v
	}
	proxyKey := "Proxy"
	if opts.ClashNewFieldName {
		proxyKey = "proxies"
	}
	doc[proxyKey] = proxies
	if len(rules) > 0 {
		doc["rules"] = rules
	}
	if len(expandedGroups) > 0 {
		clashGroups := make([]clashGroup, 0, len(expandedGroups))
		for _, g := range expandedGroups {
			clashGroups = append(clashGroups, clashGroup{Name: g.Name, Type: g.Type, Proxies: g.Members, URL: g.URL, Interval: g.Interval})
		}
		doc["proxy-groups"] = clashGroups
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("emit: marshal clash document: %w", err)
	}
	result.Artifact = string(out)
	return result, nil
}

func clashProxyFor(n *node.Descriptor, opts Options, isClashR bool) (clashProxy, bool) {
	switch n.LinkType {
	case vo.LinkTypeSS:
		if opts.FilterDeprecated && vo.IsDeprecatedSSCipher(n.SS.Method) {
			return clashProxy{}, false
		}
		p := clashProxy{Name: n.Remarks, Type: "ss", Server: n.Server, Port: n.Port, Cipher: n.SS.Method, Password: n.SS.Password, UDP: resolveTri(opts.UDP, n.UDP)}
		applyClashPlugin(&p, n.SS)
		return p, true
	case vo.LinkTypeSSR:
		if !isClashR {
			return clashProxy{}, false
		}
		if opts.FilterDeprecated && !(vo.IsClashRAllowedProtocol(n.SSR.Protocol) && vo.IsClashRAllowedObfs(n.SSR.Obfs)) {
			return clashProxy{}, false
		}
		return clashProxy{
			Name: n.Remarks, Type: "ssr", Server: n.Server, Port: n.Port,
			Cipher: n.SSR.Method, Password: n.SSR.Password,
			Protocol: n.SSR.Protocol, ProtocolParam: n.SSR.ProtocolParam,
			Obfs: n.SSR.Obfs, ObfsParam: n.SSR.ObfsParam,
			UDP: resolveTri(opts.UDP, n.UDP),
		}, true
	case vo.LinkTypeVmess:
		if n.Vmess.TransferProtocol != node.VmessTransportTCP && n.Vmess.TransferProtocol != node.VmessTransportWS {
			return clashProxy{}, false
		}
		p := clashProxy{
			Name: n.Remarks, Type: "vmess", Server: n.Server, Port: n.Port,
			UUID: n.Vmess.UUID, AlterID: n.Vmess.AlterID, Cipher: n.Vmess.Security,
			Network: string(n.Vmess.TransferProtocol), TLS: n.Vmess.TLSSecure,
			UDP: resolveTri(opts.UDP, n.UDP),
		}
		if n.Vmess.TransferProtocol == node.VmessTransportWS {
			p.WSOpts = &clashWSOpts{Path: n.Vmess.Path}
			if n.Vmess.Host != "" {
				p.WSOpts.Headers = map[string]string{"Host": n.Vmess.Host}
			}
		}
		return p, true
	case vo.LinkTypeTrojan:
		return clashProxy{
			Name: n.Remarks, Type: "trojan", Server: n.Server, Port: n.Port,
			Password: n.Trojan.Password, SNI: n.Trojan.SNI,
			SkipCertVerify: resolveTri(opts.SkipCertVerify, n.SkipCertVerify),
			UDP:            resolveTri(opts.UDP, n.UDP),
		}, true
	case vo.LinkTypeSnell:
		return clashProxy{
			Name: n.Remarks, Type: "snell", Server: n.Server, Port: n.Port,
			PSK: n.Snell.Password, Obfs: n.Snell.Obfs, ObfsHost: n.Snell.Host,
			UDP: resolveTri(opts.UDP, n.UDP),
		}, true
	case vo.LinkTypeSOCKS5:
		return clashProxy{
			Name: n.Remarks, Type: "socks5", Server: n.Server, Port: n.Port,
			Username: n.Socks.Username, Password: n.Socks.Password,
			UDP: resolveTri(opts.UDP, n.UDP),
		}, true
	case vo.LinkTypeHTTP, vo.LinkTypeHTTPS:
		return clashProxy{
			Name: n.Remarks, Type: "http", Server: n.Server, Port: n.Port,
			Username: n.Socks.Username, Password: n.Socks.Password, TLS: n.LinkType == vo.LinkTypeHTTPS,
		}, true
	default:
		return clashProxy{}, false
	}
}

// applyClashPlugin translates the SS plugin field per spec §4.E: simple-obfs
// and obfs-local both become "obfs"; v2ray-plugin keeps its native name.
func applyClashPlugin(p *clashProxy, ss *node.SSPayload) {
	if ss.Plugin == "" {
		return
	}
	opts := parsePluginOptsString(ss.PluginOpts)
	switch ss.Plugin {
	case "simple-obfs", "obfs-local":
		p.Plugin = "obfs"
		p.PluginOpts = filterPluginOpts(opts, "mode", "host")
	case "v2ray-plugin":
		p.Plugin = "v2ray-plugin"
		p.PluginOpts = filterPluginOpts(opts, "mode", "host", "path", "tls", "mux")
	default:
		p.Plugin = ss.Plugin
		p.PluginOpts = opts
	}
}

func parsePluginOptsString(raw string) map[string]any {
	out := map[string]any{}
	for _, pair := range splitSemicolon(raw) {
		if idx := indexByte(pair, '='); idx != -1 {
			out[pair[:idx]] = pair[idx+1:]
		} else if pair != "" {
			out[pair] = true
		}
	}
	return out
}

func filterPluginOpts(opts map[string]any, keys ...string) map[string]any {
	out := map[string]any{}
	for _, k := range keys {
		if v, ok := opts[k]; ok {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitSemicolon(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
