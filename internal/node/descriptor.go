// Package node defines NodeDescriptor, the pipeline's universal currency
// (spec §3): a dialect-independent, sum-typed representation of one proxy
// server endpoint produced by the link parser and subscription decoder,
// mutated only by the normalizer, and consumed read-only by the group
// expander and dialect emitters.
package node

import (
	"fmt"

	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

// Descriptor is one proxy node. Exactly one of the payload fields is
// populated, selected by LinkType; the rest are nil. This sum-type shape
// replaces the flat struct the original tool round-tripped through JSON.
type Descriptor struct {
	LinkType vo.LinkType
	Group    string
	GroupID  int
	Remarks  string
	Server   string
	Port     uint16

	SS        *SSPayload
	SSR       *SSRPayload
	Vmess     *VmessPayload
	Trojan    *TrojanPayload
	Snell     *SnellPayload
	Socks     *SocksPayload
	VLESS     *VLESSPayload
	Hysteria2 *Hysteria2Payload
	TUIC      *TUICPayload
	AnyTLS    *AnyTLSPayload

	UDP            vo.TriState
	TCPFastOpen    vo.TriState
	SkipCertVerify vo.TriState
}

// Validate enforces the invariants of spec §3: non-empty server, valid port
// range, and plugin_opts only alongside a plugin.
func (d *Descriptor) Validate() error {
	if d.Server == "" {
		return fmt.Errorf("node: server must not be empty")
	}
	if d.Port < 1 {
		return fmt.Errorf("node: port %d out of range [1,65535]", d.Port)
	}
	if d.SS != nil && d.SS.Plugin == "" && d.SS.PluginOpts != "" {
		return fmt.Errorf("node: plugin_opts set without a plugin")
	}
	return nil
}

// Clone returns a deep copy so normalizer mutation of one node's Remarks
// never aliases another's payload pointers.
func (d *Descriptor) Clone() *Descriptor {
	clone := *d
	if d.SS != nil {
		ss := *d.SS
		clone.SS = &ss
	}
	if d.SSR != nil {
		ssr := *d.SSR
		clone.SSR = &ssr
	}
	if d.Vmess != nil {
		vm := *d.Vmess
		clone.Vmess = &vm
	}
	if d.Trojan != nil {
		tr := *d.Trojan
		clone.Trojan = &tr
	}
	if d.Snell != nil {
		sn := *d.Snell
		clone.Snell = &sn
	}
	if d.Socks != nil {
		sk := *d.Socks
		clone.Socks = &sk
	}
	if d.VLESS != nil {
		vl := *d.VLESS
		clone.VLESS = &vl
	}
	if d.Hysteria2 != nil {
		hy := *d.Hysteria2
		clone.Hysteria2 = &hy
	}
	if d.TUIC != nil {
		tu := *d.TUIC
		clone.TUIC = &tu
		if d.TUIC.ALPN != nil {
			clone.TUIC.ALPN = append([]string(nil), d.TUIC.ALPN...)
		}
	}
	if d.AnyTLS != nil {
		at := *d.AnyTLS
		clone.AnyTLS = &at
	}
	return &clone
}

// CloneAll deep-copies a whole node list, used by the normalizer so it never
// mutates the decoder's output slice in place.
func CloneAll(nodes []*Descriptor) []*Descriptor {
	out := make([]*Descriptor, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}
