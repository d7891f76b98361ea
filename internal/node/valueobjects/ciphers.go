package valueobjects

import "strings"

// ssCiphers is the shared Shadowsocks cipher set recognized across dialects,
// grounded on the known-cipher list used to disambiguate the ss:// plaintext
// vs. base64 shapes in the retrieved parser corpus.
var ssCiphers = map[string]bool{
	"aes-128-gcm": true, "aes-192-gcm": true, "aes-256-gcm": true,
	"aes-128-cfb": true, "aes-192-cfb": true, "aes-256-cfb": true,
	"aes-128-ctr": true, "aes-192-ctr": true, "aes-256-ctr": true,
	"chacha20-ietf-poly1305": true, "xchacha20-ietf-poly1305": true,
	"chacha20-ietf": true, "chacha20": true, "xchacha20": true,
	"2022-blake3-aes-128-gcm": true, "2022-blake3-aes-256-gcm": true,
	"2022-blake3-chacha20-poly1305": true,
	"rc4-md5":                       true,
	"none":                          true,
}

// IsKnownSSCipher reports whether method is a recognized Shadowsocks cipher.
func IsKnownSSCipher(method string) bool {
	return ssCiphers[strings.ToLower(strings.TrimSpace(method))]
}

// MatchKnownCipherPrefix returns the known cipher that prefixes s followed by
// ':', used to detect the plaintext "method:password@host:port" ss:// shape
// before falling back to the fully base64-wrapped shape.
func MatchKnownCipherPrefix(s string) (cipher string, ok bool) {
	for c := range ssCiphers {
		if strings.HasPrefix(s, c+":") {
			return c, true
		}
	}
	return "", false
}

// deprecatedSSCiphers are dropped by Clash emitters when filter_deprecated is set.
var deprecatedSSCiphers = map[string]bool{
	"chacha20": true,
	"rc4-md5":  true,
}

// IsDeprecatedSSCipher reports whether method should be dropped under
// filter_deprecated (spec §6: "drop chacha20 if deprecated").
func IsDeprecatedSSCipher(method string) bool {
	return deprecatedSSCiphers[strings.ToLower(strings.TrimSpace(method))]
}

// clashRAllowedProtocols is the ClashR protocol allow-list (spec §6).
var clashRAllowedProtocols = map[string]bool{
	"auth_aes128_md5": true, "auth_aes128_sha1": true,
}

// clashRAllowedObfs is the ClashR obfs allow-list (spec §6).
var clashRAllowedObfs = map[string]bool{
	"plain": true, "http_simple": true, "http_post": true, "tls1.2_ticket_auth": true,
}

// IsClashRAllowedProtocol reports whether protocol survives ClashR's filter_deprecated filter.
func IsClashRAllowedProtocol(protocol string) bool {
	return clashRAllowedProtocols[strings.ToLower(strings.TrimSpace(protocol))]
}

// IsClashRAllowedObfs reports whether obfs survives ClashR's filter_deprecated filter.
func IsClashRAllowedObfs(obfs string) bool {
	return clashRAllowedObfs[strings.ToLower(strings.TrimSpace(obfs))]
}

// IsSSCompatibleSSR reports whether an SSR node degrades cleanly to plain
// Shadowsocks (spec §6: "SS-compatible SSR"): known SS cipher, origin
// protocol, plain obfs, no plugin.
func IsSSCompatibleSSR(method, protocol, obfs string, hasPlugin bool) bool {
	return IsKnownSSCipher(method) &&
		strings.EqualFold(protocol, "origin") &&
		strings.EqualFold(obfs, "plain") &&
		!hasPlugin
}
