// Package parser implements the multi-scheme link parser (spec §4.A):
// parse_link(raw) -> NodeDescriptor | error, dispatched by scheme prefix.
package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// Options carries per-call overrides that do not belong in the link itself.
type Options struct {
	// CustomPort, when non-empty, replaces the parsed port (spec §4.A policy).
	CustomPort string
	// GroupID is stamped onto the resulting descriptor; it is the caller's
	// concern (which input produced the node), never the parser's.
	GroupID int
	// Group is the display group name stamped onto the resulting descriptor.
	Group string
}

// ParseLink dispatches raw to the scheme-specific parser selected by its
// prefix and returns a fully populated node.Descriptor.
func ParseLink(raw string, opts Options) (*node.Descriptor, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperrors.NewParseError("empty link", raw)
	}

	var (
		d   *node.Descriptor
		err error
	)

	switch {
	case strings.HasPrefix(raw, "vmess://"), strings.HasPrefix(raw, "vmess1://"):
		d, err = parseVmess(raw)
	case strings.HasPrefix(raw, "ssr://"):
		d, err = parseSSR(raw)
	case strings.HasPrefix(raw, "ss://"):
		d, err = parseSS(raw)
	case strings.HasPrefix(raw, "trojan://"):
		d, err = parseTrojan(raw)
	case strings.HasPrefix(raw, "snell://"):
		d, err = parseSnell(raw)
	case strings.HasPrefix(raw, "socks://"), strings.HasPrefix(raw, "socks5://"),
		strings.HasPrefix(raw, "tg://socks"), strings.HasPrefix(raw, "https://t.me/socks"):
		d, err = parseSocks(raw)
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		d, err = parseHTTPProxy(raw)
	case strings.HasPrefix(raw, "vless://"):
		d, err = parseVLESS(raw)
	case strings.HasPrefix(raw, "hysteria2://"), strings.HasPrefix(raw, "hy2://"):
		d, err = parseHysteria2(raw)
	case strings.HasPrefix(raw, "tuic://"):
		d, err = parseTUIC(raw)
	case strings.HasPrefix(raw, "anytls://"):
		d, err = parseAnyTLS(raw)
	default:
		return nil, apperrors.NewParseError("unsupported link scheme", raw)
	}

	if err != nil {
		return nil, err
	}

	if opts.CustomPort != "" {
		if p, perr := parsePort(opts.CustomPort); perr == nil {
			d.Port = p
		}
	}
	d.GroupID = opts.GroupID
	if opts.Group != "" {
		d.Group = opts.Group
	}

	if verr := d.Validate(); verr != nil {
		return nil, apperrors.NewParseError(verr.Error(), raw)
	}
	return d, nil
}
