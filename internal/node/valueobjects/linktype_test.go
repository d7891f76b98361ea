package valueobjects

import "testing"

func TestLinkType_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		lt       LinkType
		expected bool
	}{
		{"vmess", LinkTypeVmess, true},
		{"ss", LinkTypeSS, true},
		{"ssr", LinkTypeSSR, true},
		{"trojan", LinkTypeTrojan, true},
		{"snell", LinkTypeSnell, true},
		{"socks5", LinkTypeSOCKS5, true},
		{"http", LinkTypeHTTP, true},
		{"https", LinkTypeHTTPS, true},
		{"vless", LinkTypeVLESS, true},
		{"hysteria2", LinkTypeHysteria2, true},
		{"tuic", LinkTypeTUIC, true},
		{"anytls", LinkTypeAnyTLS, true},
		{"unknown scheme", LinkType("wireguard"), false},
		{"empty", LinkType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lt.IsValid(); got != tt.expected {
				t.Errorf("%q.IsValid() = %v, want %v", tt.lt, got, tt.expected)
			}
		})
	}
}

func TestLinkType_String(t *testing.T) {
	if got := LinkTypeVmess.String(); got != "vmess" {
		t.Errorf("String() = %q, want %q", got, "vmess")
	}
}

func TestLinkType_IsShadowsocksFamily(t *testing.T) {
	tests := []struct {
		name     string
		lt       LinkType
		expected bool
	}{
		{"ss is shadowsocks family", LinkTypeSS, true},
		{"ssr is shadowsocks family", LinkTypeSSR, true},
		{"trojan is not", LinkTypeTrojan, false},
		{"vmess is not", LinkTypeVmess, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lt.IsShadowsocksFamily(); got != tt.expected {
				t.Errorf("IsShadowsocksFamily() = %v, want %v", got, tt.expected)
			}
		})
	}
}
