package decode

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// decodeSurgeProxies parses a Surge-family (Surge/Quantumult-compatible)
// config's [Proxy] section: one key per proxy, whose value is a
// comma-separated "type, server, port, param=value, ..." list (spec §4.B
// rule 4).
func decodeSurgeProxies(text string, opts Options) (*Result, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true, IgnoreInlineComment: true}, []byte(text))
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("invalid surge ini: %v", err), "")
	}

	section, err := cfg.GetSection("Proxy")
	if err != nil {
		return nil, apperrors.NewConfigError("surge config has no [Proxy] section", "")
	}

	result := &Result{}
	for _, key := range section.Keys() {
		name := key.Name()
		if name == "" || strings.EqualFold(name, "DIRECT") || strings.EqualFold(name, "REJECT") {
			continue
		}
		d, err := surgeProxyLineToDescriptor(name, key.Value())
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
			result.Diagnostics = append(result.Diagnostics, apperrors.NewParseError(verr.Error(), name))
			continue
		}
		result.Nodes = append(result.Nodes, d)
	}
	return result, nil
}

func surgeProxyLineToDescriptor(name, line string) (*node.Descriptor, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 {
		return nil, apperrors.NewParseError("surge proxy line too short", name)
	}

	proxyType := strings.ToLower(fields[0])
	server := fields[1]
	port, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, apperrors.NewParseError("surge proxy line has invalid port", name)
	}

	params := map[string]string{}
	for _, f := range fields[3:] {
		if idx := strings.Index(f, "="); idx != -1 {
			params[strings.ToLower(strings.TrimSpace(f[:idx]))] = strings.TrimSpace(f[idx+1:])
		}
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
			Method:   params["encrypt-method"],
			Password: params["password"],
			Plugin:   params["obfs"],
		}
		if obfs := params["obfs"]; obfs != "" {
			d.SS.PluginOpts = fmt.Sprintf("obfs=%s;obfs-host=%s", obfs, params["obfs-host"])
		}
	case "trojan":
		d.LinkType = vo.LinkTypeTrojan
		d.Trojan = &node.TrojanPayload{
			Password:  params["password"],
			SNI:       params["sni"],
			TLSSecure: true,
		}
	case "snell":
		d.LinkType = vo.LinkTypeSnell
		d.Snell = &node.SnellPayload{
			Password: params["psk"],
			Obfs:     params["obfs"],
			Host:     params["obfs-host"],
		}
	case "socks5", "socks5-tls":
		d.LinkType = vo.LinkTypeSOCKS5
		d.Socks = &node.SocksPayload{
			Username:  params["username"],
			Password:  params["password"],
			TLSSecure: proxyType == "socks5-tls",
		}
	case "http", "https":
		d.LinkType = vo.LinkTypeHTTP
		d.Socks = &node.SocksPayload{
			Username:  params["username"],
			Password:  params["password"],
			TLSSecure: proxyType == "https",
		}
	default:
		return nil, apperrors.NewParseError("unsupported surge proxy type: "+proxyType, name)
	}

	if v, ok := surgeBoolParam(params, "udp-relay"); ok {
		d.UDP = vo.NewTriState(&v)
	}
	if v, ok := surgeBoolParam(params, "skip-cert-verify"); ok {
		d.SkipCertVerify = vo.NewTriState(&v)
	}

	return d, nil
}

// surgeBoolParam reports a surge proxy param's boolean value and whether it
// was present at all, so absence can propagate as absence rather than false
// (spec §3 tri-state policy).
func surgeBoolParam(params map[string]string, key string) (bool, bool) {
	raw, present := params[key]
	if !present {
		return false, false
	}
	return raw == "1" || strings.EqualFold(raw, "true"), true
}
