package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseSS handles the recognized ss:// shapes (spec §4.A): the plaintext
// "method:pass@host:port" form, the SIP002 form with base64 "method:pass"
// userinfo before "@host:port", and the fully base64-wrapped form.
func parseSS(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(raw, "ss://")
	mainPart, remarks := splitNameFragment(content, "SS Node")
	mainPart, query := splitQuery(mainPart)
	mainPart = strings.TrimSuffix(mainPart, "/")

	var server, method, password string
	var port int

	if atIdx := strings.LastIndex(mainPart, "@"); atIdx != -1 {
		authPart := mainPart[:atIdx]
		serverPart := mainPart[atIdx+1:]
		server, port = parseServerPort(serverPart, 0)

		if cipher, ok := vo.MatchKnownCipherPrefix(authPart); ok {
			method = cipher
			password = authPart[len(cipher)+1:]
		} else {
			encodedPart := authPart
			if strings.Contains(encodedPart, "%") {
				encodedPart = safeUnescape(encodedPart)
			}
			decoded, err := decodeBase64URLSafe(encodedPart)
			if err != nil {
				return nil, apperrors.NewParseError("decode ss userinfo", raw)
			}
			colonIdx := strings.Index(decoded, ":")
			if colonIdx == -1 {
				return nil, apperrors.NewParseError("invalid ss userinfo shape", raw)
			}
			method = decoded[:colonIdx]
			password = decoded[colonIdx+1:]
		}
	} else {
		decoded, err := decodeBase64URLSafe(mainPart)
		if err != nil {
			return nil, apperrors.NewParseError("decode ss link", raw)
		}
		atIdx := strings.LastIndex(decoded, "@")
		if atIdx == -1 {
			return nil, apperrors.NewParseError("invalid ss link shape", raw)
		}
		authPart := decoded[:atIdx]
		serverPart := decoded[atIdx+1:]

		colonIdx := strings.Index(authPart, ":")
		if colonIdx == -1 {
			return nil, apperrors.NewParseError("invalid ss userinfo shape", raw)
		}
		method = authPart[:colonIdx]
		password = authPart[colonIdx+1:]
		server, port = parseServerPort(serverPart, 0)
	}

	if server == "" || port == 0 {
		return nil, apperrors.NewParseError("ss link missing server or port", raw)
	}

	payload := &node.SSPayload{Method: method, Password: password}
	if plugin := query["plugin"]; plugin != "" {
		name, opts := parseSSPlugin(plugin)
		payload.Plugin = name
		payload.PluginOpts = opts
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeSS,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		SS:       payload,
	}, nil
}

// parseSSPlugin splits a plugin=<name>;k=v;... query value into the
// canonical plugin name (obfs-local / simple-obfs / v2ray-plugin collapse to
// their own name, unlike the Clash-map form other dialects use) and an
// opts string preserved verbatim for re-emission.
func parseSSPlugin(pluginValue string) (name string, opts string) {
	decoded := safeUnescape(pluginValue)
	parts := strings.Split(decoded, ";")
	if len(parts) == 0 {
		return "", ""
	}
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		opts = strings.Join(parts[1:], ";")
	}
	return name, opts
}
