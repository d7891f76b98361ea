package valueobjects

// LinkType is the wire protocol family of a node, per spec §3.
type LinkType string

const (
	LinkTypeVmess     LinkType = "vmess"
	LinkTypeSS        LinkType = "ss"
	LinkTypeSSR       LinkType = "ssr"
	LinkTypeTrojan    LinkType = "trojan"
	LinkTypeSnell     LinkType = "snell"
	LinkTypeSOCKS5    LinkType = "socks5"
	LinkTypeHTTP      LinkType = "http"
	LinkTypeHTTPS     LinkType = "https"
	LinkTypeVLESS     LinkType = "vless"
	LinkTypeHysteria2 LinkType = "hysteria2"
	LinkTypeTUIC      LinkType = "tuic"
	LinkTypeAnyTLS    LinkType = "anytls"
)

var validLinkTypes = map[LinkType]bool{
	LinkTypeVmess: true, LinkTypeSS: true, LinkTypeSSR: true,
	LinkTypeTrojan: true, LinkTypeSnell: true, LinkTypeSOCKS5: true,
	LinkTypeHTTP: true, LinkTypeHTTPS: true, LinkTypeVLESS: true,
	LinkTypeHysteria2: true, LinkTypeTUIC: true, LinkTypeAnyTLS: true,
}

// IsValid reports whether the link type is recognized.
func (l LinkType) IsValid() bool { return validLinkTypes[l] }

// String returns the string representation of the link type.
func (l LinkType) String() string { return string(l) }

// IsShadowsocksFamily reports whether l is SS or SSR (any SSR; whether a
// given SSR node is SS-compatible is checked separately by
// IsSSCompatibleSSR), used by dialects whose matrix only accepts the SS
// wire shape (§6).
func (l LinkType) IsShadowsocksFamily() bool {
	return l == LinkTypeSS || l == LinkTypeSSR
}
