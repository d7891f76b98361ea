package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseSocks handles socks://, socks5:// and the Telegram-style
// tg://socks / https://t.me/socks query shapes (spec §4.A).
func parseSocks(raw string) (*node.Descriptor, error) {
	if strings.HasPrefix(raw, "tg://socks") || strings.HasPrefix(raw, "https://t.me/socks") {
		return parseTelegramSocks(raw)
	}

	isSIP002 := strings.HasPrefix(raw, "socks5://")
	content := strings.TrimPrefix(strings.TrimPrefix(raw, "socks5://"), "socks://")
	mainPart, remarks := splitNameFragment(content, "")
	mainPart, _ = splitQuery(mainPart)

	var server, username, password string
	var port int

	if atIdx := strings.LastIndex(mainPart, "@"); atIdx == -1 {
		server, port = parseServerPort(mainPart, 0)
	} else {
		authPart := mainPart[:atIdx]
		serverPart := mainPart[atIdx+1:]

		if isSIP002 {
			if colonIdx := strings.Index(authPart, ":"); colonIdx != -1 {
				username = safeUnescape(authPart[:colonIdx])
				password = safeUnescape(authPart[colonIdx+1:])
			} else {
				username = safeUnescape(authPart)
			}
		} else if decoded, err := decodeBase64URLSafe(authPart); err == nil {
			if colonIdx := strings.Index(decoded, ":"); colonIdx != -1 {
				username = decoded[:colonIdx]
				password = decoded[colonIdx+1:]
			} else {
				username = decoded
			}
		}
		server, port = parseServerPort(serverPart, 0)
	}

	if server == "" {
		return nil, apperrors.NewParseError("socks link missing server", raw)
	}
	if remarks == "" {
		remarks = server
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeSOCKS5,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		Socks:    &node.SocksPayload{Username: username, Password: password},
	}, nil
}

// parseTelegramSocks handles the tg://socks?server=&port=&user=&pass= shape.
func parseTelegramSocks(raw string) (*node.Descriptor, error) {
	idx := strings.Index(raw, "?")
	if idx == -1 {
		return nil, apperrors.NewParseError("telegram socks link missing query", raw)
	}
	query := parseQueryParams(raw[idx+1:])

	server := query["server"]
	if server == "" {
		return nil, apperrors.NewParseError("telegram socks link missing server", raw)
	}
	port, _ := parsePort(query["port"])
	if port == 0 {
		port = 1080
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeSOCKS5,
		Remarks:  server,
		Server:   server,
		Port:     port,
		Socks: &node.SocksPayload{
			Username: query["user"],
			Password: query["pass"],
		},
	}, nil
}

// parseHTTPProxy handles http:// and https:// proxy links, where the scheme
// itself doubles as the tls_secure flag.
func parseHTTPProxy(raw string) (*node.Descriptor, error) {
	tlsSecure := strings.HasPrefix(raw, "https://")
	content := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	mainPart, remarks := splitNameFragment(content, "")
	mainPart, _ = splitQuery(mainPart)

	var server, username, password string
	var port int

	linkType := vo.LinkTypeHTTP
	if tlsSecure {
		linkType = vo.LinkTypeHTTPS
	}

	if atIdx := strings.LastIndex(mainPart, "@"); atIdx == -1 {
		server, port = parseServerPort(mainPart, 0)
	} else {
		authPart := mainPart[:atIdx]
		serverPart := mainPart[atIdx+1:]
		if colonIdx := strings.Index(authPart, ":"); colonIdx != -1 {
			username = safeUnescape(authPart[:colonIdx])
			password = safeUnescape(authPart[colonIdx+1:])
		} else {
			username = safeUnescape(authPart)
		}
		server, port = parseServerPort(serverPart, 0)
	}

	if server == "" {
		return nil, apperrors.NewParseError("http(s) link missing server", raw)
	}
	if remarks == "" {
		remarks = server
	}
	if port == 0 {
		if tlsSecure {
			port = 443
		} else {
			port = 80
		}
	}

	return &node.Descriptor{
		LinkType: linkType,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		Socks: &node.SocksPayload{
			Username:  username,
			Password:  password,
			TLSSecure: tlsSecure,
		},
	}, nil
}
