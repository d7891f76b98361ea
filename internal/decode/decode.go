// Package decode implements the subscription decoder (spec §4.B): it
// sniffs the container format of subscription text and yields an ordered
// sequence of node.Descriptor, delegating per-entry parsing to
// internal/parser.
package decode

import (
	"encoding/base64"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	"github.com/orris-inc/subconv/internal/parser"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// Options carries the caller-assigned identity of this source (group name
// and group_id) plus any custom_port override, threaded down to
// parser.ParseLink for every entry this source yields.
type Options struct {
	Group      string
	GroupID    int
	CustomPort string
}

// Result is the outcome of decoding one subscription source: the nodes it
// yielded plus any per-entry diagnostics (spec §4.F: per-entry parse
// failures are skipped and reported, not fatal).
type Result struct {
	Nodes       []*node.Descriptor
	Diagnostics []error
}

// Decode sniffs sourceText's container format (spec §4.B, in order: base64
// link list, Clash/ClashR YAML, SSD JSON, Surge-family INI, plain link
// list) and decodes it into a Result.
func Decode(sourceText string, opts Options) (*Result, error) {
	text := strings.TrimSpace(sourceText)
	if text == "" {
		return &Result{}, nil
	}

	if decoded, ok := decodeBase64LinkList(text); ok {
		return decodeLinkList(decoded, opts), nil
	}

	if looksLikeClashYAML(text) {
		return decodeClashYAML(text, opts)
	}

	if strings.HasPrefix(text, "ssd://") {
		return decodeSSD(text, opts)
	}

	if looksLikeSurgeINI(text) {
		return decodeSurgeProxies(text, opts)
	}

	result := decodeLinkList(text, opts)
	if len(result.Nodes) == 0 && len(result.Diagnostics) == 0 {
		return nil, unsupportedFormat("source text matched no known subscription container format")
	}
	return result, nil
}

// decodeBase64LinkList reports whether text is base64 whose decoded form
// begins with a recognized link scheme, per spec §4.B rule 1.
func decodeBase64LinkList(text string) (string, bool) {
	if strings.Contains(text, "\n") && !isLikelySingleBase64Blob(text) {
		return "", false
	}
	padded := text
	switch len(padded) % 4 {
	case 2:
		padded += "=="
	case 3:
		padded += "="
	}
	decoded, err := base64.StdEncoding.DecodeString(padded)
	if err != nil {
		decoded, err = base64.URLEncoding.DecodeString(strings.NewReplacer("-", "+", "_", "/").Replace(padded))
		if err != nil {
			return "", false
		}
	}
	body := strings.TrimSpace(string(decoded))
	if hasRecognizedLinkPrefix(body) {
		return string(decoded), true
	}
	return "", false
}

// isLikelySingleBase64Blob reports whether text, despite containing
// newlines, is still plausibly one wrapped base64 blob (only base64
// alphabet characters and whitespace).
func isLikelySingleBase64Blob(text string) bool {
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '+', r == '/', r == '=', r == '-', r == '_':
		case r == '\n', r == '\r', r == ' ', r == '\t':
		default:
			return false
		}
	}
	return true
}

var recognizedLinkPrefixes = []string{
	"vmess://", "vmess1://", "ss://", "ssr://", "trojan://", "snell://",
	"socks://", "socks5://", "tg://socks", "vless://", "hysteria2://",
	"hy2://", "tuic://", "anytls://",
}

func hasRecognizedLinkPrefix(body string) bool {
	first := body
	if idx := strings.IndexAny(body, "\n\r"); idx != -1 {
		first = body[:idx]
	}
	first = strings.TrimSpace(first)
	for _, p := range recognizedLinkPrefixes {
		if strings.HasPrefix(first, p) {
			return true
		}
	}
	return false
}

func looksLikeClashYAML(text string) bool {
	return strings.Contains(text, "\nproxies:") || strings.HasPrefix(text, "proxies:") ||
		strings.Contains(text, "\nProxy:") || strings.HasPrefix(text, "Proxy:")
}

func looksLikeSurgeINI(text string) bool {
	return strings.Contains(text, "[Proxy]")
}

// decodeLinkList splits newline-separated links, delegating each to the
// link parser and collecting per-entry diagnostics (spec §4.B last rule).
func decodeLinkList(text string, opts Options) *Result {
	result := &Result{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "://") {
			continue
		}
		d, err := parser.ParseLink(line, parser.Options{
			Group: opts.Group, GroupID: opts.GroupID, CustomPort: opts.CustomPort,
		})
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, err)
			continue
		}
		result.Nodes = append(result.Nodes, d)
	}
	return result
}

// unsupportedFormat builds a ConfigError for a source whose shape this
// decoder does not recognize at all (distinct from a per-entry ParseError).
func unsupportedFormat(reason string) error {
	return apperrors.NewConfigError(reason, "")
}
