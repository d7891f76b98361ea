package decode

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

type clashDocument struct {
	Proxies []map[string]any `yaml:"proxies"`
	Proxy   []map[string]any `yaml:"Proxy"`
}

// decodeClashYAML parses a Clash/ClashR YAML document's top-level
// `proxies` (or legacy `Proxy`) sequence into node.Descriptor values
// (spec §4.B rule 2).
func decodeClashYAML(text string, opts Options) (*Result, error) {
	var doc clashDocument
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("invalid clash yaml: %v", err), "")
	}

	entries := doc.Proxies
	if len(entries) == 0 {
		entries = doc.Proxy
	}

	result := &Result{}
	for _, entry := range entries {
		d, err := clashProxyToDescriptor(entry)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, err)
			continue
		}
		if opts.CustomPort != "" {
			if p, perr := strconv.Atoi(opts.CustomPort); perr == nil && p > 0 && p <= 65535 {
				d.Port = uint16(p)
			}
		}
		d.Group = opts.Group
		d.GroupID = opts.GroupID
		if verr := d.Validate(); verr != nil {
			result.Diagnostics = append(result.Diagnostics, apperrors.NewParseError(verr.Error(), clashString(entry, "name")))
			continue
		}
		result.Nodes = append(result.Nodes, d)
	}
	return result, nil
}

func clashProxyToDescriptor(proxy map[string]any) (*node.Descriptor, error) {
	proxyType, _ := proxy["type"].(string)
	name, _ := proxy["name"].(string)
	server, _ := proxy["server"].(string)
	port := clashInt(proxy, "port")

	if server == "" {
		return nil, apperrors.NewParseError("clash proxy entry missing server", name)
	}

	d := &node.Descriptor{
		Remarks: name,
		Server:  server,
		Port:    uint16(port),
	}

	switch proxyType {
	case "ss", "shadowsocks":
		d.LinkType = vo.LinkTypeSS
		d.SS = &node.SSPayload{
			Method:   clashString(proxy, "cipher"),
			Password: clashString(proxy, "password"),
		}
		if plugin := clashString(proxy, "plugin"); plugin != "" {
			d.SS.Plugin = plugin
			d.SS.PluginOpts = clashPluginOptsString(proxy)
		}
	case "ssr":
		d.LinkType = vo.LinkTypeSSR
		d.SSR = &node.SSRPayload{
			Method:        clashString(proxy, "cipher"),
			Password:      clashString(proxy, "password"),
			Protocol:      clashString(proxy, "protocol"),
			ProtocolParam: clashString(proxy, "protocol-param"),
			Obfs:          clashString(proxy, "obfs"),
			ObfsParam:     clashString(proxy, "obfs-param"),
		}
	case "vmess":
		d.LinkType = vo.LinkTypeVmess
		network := clashString(proxy, "network")
		if network == "" {
			network = "tcp"
		}
		path, host := clashWSOpts(proxy)
		d.Vmess = &node.VmessPayload{
			UUID:             clashString(proxy, "uuid"),
			AlterID:          uint32(clashInt(proxy, "alterId")),
			TransferProtocol: node.VmessTransport(network),
			Host:             host,
			Path:             path,
			TLSSecure:        clashBool(proxy, "tls"),
			Security:         clashString(proxy, "cipher"),
		}
	case "vless":
		d.LinkType = vo.LinkTypeVLESS
		network := clashString(proxy, "network")
		if network == "" {
			network = "tcp"
		}
		path, host := clashWSOpts(proxy)
		d.VLESS = &node.VLESSPayload{
			UUID:             clashString(proxy, "uuid"),
			Flow:             node.VLESSFlow(clashString(proxy, "flow")),
			Encryption:       "none",
			TransferProtocol: node.VmessTransport(network),
			Host:             host,
			Path:             path,
			TLSSecure:        clashBool(proxy, "tls"),
			SNI:              clashString(proxy, "servername"),
		}
	case "trojan":
		d.LinkType = vo.LinkTypeTrojan
		d.Trojan = &node.TrojanPayload{
			Password:  clashString(proxy, "password"),
			SNI:       clashString(proxy, "sni"),
			TLSSecure: true,
		}
	case "snell":
		d.LinkType = vo.LinkTypeSnell
		d.Snell = &node.SnellPayload{
			Password: clashString(proxy, "psk"),
			Obfs:     clashString(proxy, "obfs"),
			Host:     clashString(proxy, "obfs-host"),
		}
	case "socks5":
		d.LinkType = vo.LinkTypeSOCKS5
		d.Socks = &node.SocksPayload{
			Username: clashString(proxy, "username"),
			Password: clashString(proxy, "password"),
		}
	case "hysteria2", "hy2":
		d.LinkType = vo.LinkTypeHysteria2
		d.Hysteria2 = &node.Hysteria2Payload{
			Password:       clashString(proxy, "password"),
			SNI:            clashString(proxy, "sni"),
			SkipCertVerify: clashBool(proxy, "skip-cert-verify"),
			Obfs:           clashString(proxy, "obfs"),
			ObfsPassword:   clashString(proxy, "obfs-password"),
		}
	default:
		return nil, apperrors.NewParseError("unsupported clash proxy type: "+proxyType, name)
	}

	if v, ok := proxy["udp"].(bool); ok {
		d.UDP = vo.NewTriState(&v)
	}
	if v, ok := proxy["skip-cert-verify"].(bool); ok {
		d.SkipCertVerify = vo.NewTriState(&v)
	}

	return d, nil
}

func clashString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func clashInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func clashBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func clashWSOpts(proxy map[string]any) (path, host string) {
	wsOpts, ok := proxy["ws-opts"].(map[string]any)
	if !ok {
		return "", ""
	}
	if p, ok := wsOpts["path"].(string); ok {
		path = p
	}
	if headers, ok := wsOpts["headers"].(map[string]any); ok {
		if h, ok := headers["Host"].(string); ok {
			host = h
		}
	}
	return path, host
}

func clashPluginOptsString(proxy map[string]any) string {
	opts, ok := proxy["plugin-opts"].(map[string]any)
	if !ok {
		return ""
	}
	var parts []string
	for k, v := range opts {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ";")
}
