package valueobjects

import "testing"

func TestIsKnownSSCipher(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		expected bool
	}{
		{"aes-256-gcm known", "aes-256-gcm", true},
		{"uppercase still known", "AES-256-GCM", true},
		{"padded still known", "  chacha20-ietf-poly1305  ", true},
		{"unknown cipher", "des-ede3-cbc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKnownSSCipher(tt.method); got != tt.expected {
				t.Errorf("IsKnownSSCipher(%q) = %v, want %v", tt.method, got, tt.expected)
			}
		})
	}
}

func TestMatchKnownCipherPrefix(t *testing.T) {
	cipher, ok := MatchKnownCipherPrefix("aes-256-gcm:secret@example.com:443")
	if !ok {
		t.Fatal("expected a cipher match")
	}
	if cipher != "aes-256-gcm" {
		t.Errorf("cipher = %q, want %q", cipher, "aes-256-gcm")
	}

	if _, ok := MatchKnownCipherPrefix("not-a-cipher-shape"); ok {
		t.Error("expected no match for a string without a known cipher prefix")
	}
}

func TestIsDeprecatedSSCipher(t *testing.T) {
	if !IsDeprecatedSSCipher("chacha20") {
		t.Error("chacha20 should be deprecated")
	}
	if !IsDeprecatedSSCipher("rc4-md5") {
		t.Error("rc4-md5 should be deprecated")
	}
	if IsDeprecatedSSCipher("aes-256-gcm") {
		t.Error("aes-256-gcm should not be deprecated")
	}
}

func TestClashRAllowLists(t *testing.T) {
	if !IsClashRAllowedProtocol("auth_aes128_md5") {
		t.Error("auth_aes128_md5 should be allowed")
	}
	if IsClashRAllowedProtocol("auth_chain_a") {
		t.Error("auth_chain_a should not be allowed")
	}
	if !IsClashRAllowedObfs("http_post") {
		t.Error("http_post should be allowed")
	}
	if IsClashRAllowedObfs("random_head") {
		t.Error("random_head should not be allowed")
	}
}

func TestIsSSCompatibleSSR(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		protocol  string
		obfs      string
		hasPlugin bool
		expected  bool
	}{
		{"origin+plain+known cipher degrades to SS", "aes-256-gcm", "origin", "plain", false, true},
		{"non-origin protocol does not degrade", "aes-256-gcm", "auth_aes128_md5", "plain", false, false},
		{"non-plain obfs does not degrade", "aes-256-gcm", "origin", "http_simple", false, false},
		{"plugin present does not degrade", "aes-256-gcm", "origin", "plain", true, false},
		{"unknown cipher does not degrade", "rc4", "origin", "plain", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSSCompatibleSSR(tt.method, tt.protocol, tt.obfs, tt.hasPlugin)
			if got != tt.expected {
				t.Errorf("IsSSCompatibleSSR() = %v, want %v", got, tt.expected)
			}
		})
	}
}
