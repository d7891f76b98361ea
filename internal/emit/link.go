package emit

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

// ToLink renders a node.Descriptor back into its single-link URI form,
// used by the Quantumult and raw-bundle emitters and exercised by
// the round-trip property of spec §8 (parsing an emitted link must yield
// an equal descriptor modulo unset tri-states).
func ToLink(d *node.Descriptor) (string, bool) {
	switch d.LinkType {
	case vo.LinkTypeSS:
		return ssLink(d), true
	case vo.LinkTypeSSR:
		return ssrLink(d), true
	case vo.LinkTypeVmess:
		return vmessLink(d), true
	case vo.LinkTypeTrojan:
		return trojanLink(d), true
	default:
		return "", false
	}
}

func ssLink(d *node.Descriptor) string {
	auth := base64.StdEncoding.EncodeToString([]byte(d.SS.Method + ":" + d.SS.Password))
	link := fmt.Sprintf("ss://%s@%s:%d", auth, d.Server, d.Port)
	if d.SS.Plugin != "" {
		link += "?plugin=" + url.QueryEscape(d.SS.Plugin+";"+d.SS.PluginOpts)
	}
	if d.Remarks != "" {
		link += "#" + url.QueryEscape(d.Remarks)
	}
	return link
}

func ssrLink(d *node.Descriptor) string {
	password := base64.StdEncoding.EncodeToString([]byte(d.SSR.Password))
	main := fmt.Sprintf("%s:%d:%s:%s:%s:%s", d.Server, d.Port, d.SSR.Protocol, d.SSR.Method, d.SSR.Obfs, password)
	params := url.Values{}
	if d.Remarks != "" {
		params.Set("remarks", base64.StdEncoding.EncodeToString([]byte(d.Remarks)))
	}
	if d.SSR.ObfsParam != "" {
		params.Set("obfsparam", base64.StdEncoding.EncodeToString([]byte(d.SSR.ObfsParam)))
	}
	if d.SSR.ProtocolParam != "" {
		params.Set("protoparam", base64.StdEncoding.EncodeToString([]byte(d.SSR.ProtocolParam)))
	}
	body := main
	if encoded := params.Encode(); encoded != "" {
		body += "/?" + encoded
	}
	return "ssr://" + base64.StdEncoding.EncodeToString([]byte(body))
}

func vmessLink(d *node.Descriptor) string {
	payload := map[string]any{
		"v":    "2",
		"ps":   d.Remarks,
		"add":  d.Server,
		"port": strconv.Itoa(int(d.Port)),
		"id":   d.Vmess.UUID,
		"aid":  strconv.Itoa(int(d.Vmess.AlterID)),
		"net":  string(d.Vmess.TransferProtocol),
		"type": string(d.Vmess.FakeType),
		"host": d.Vmess.Host,
		"path": d.Vmess.Path,
		"tls":  tlsToken(d.Vmess.TLSSecure),
		"scy":  d.Vmess.Security,
	}
	raw, _ := json.Marshal(payload)
	return "vmess://" + base64.StdEncoding.EncodeToString(raw)
}

func tlsToken(secure bool) string {
	if secure {
		return "tls"
	}
	return ""
}

func trojanLink(d *node.Descriptor) string {
	link := fmt.Sprintf("trojan://%s@%s:%d", url.QueryEscape(d.Trojan.Password), d.Server, d.Port)
	params := url.Values{}
	if d.Trojan.SNI != "" {
		params.Set("sni", d.Trojan.SNI)
	}
	if encoded := params.Encode(); encoded != "" {
		link += "?" + encoded
	}
	if d.Remarks != "" {
		link += "#" + url.QueryEscape(d.Remarks)
	}
	return link
}

// JoinBase64Bundle joins links with "\n" and wraps the result in base64,
// the shape shared by Quantumult and the raw ss/ssr/vmess bundle emitters
// (spec §4.E last paragraph).
func JoinBase64Bundle(links []string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(links, "\n")))
}
