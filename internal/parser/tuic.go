package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseTUIC is a supplemented scheme (SPEC_FULL §4): uuid:password@server:port
// or uuid@server:port?password=..., with congestion_control/udp_relay_mode/alpn.
func parseTUIC(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(raw, "tuic://")
	mainPart, remarks := splitNameFragment(content, "TUIC Node")
	mainPart, query := splitQuery(mainPart)
	mainPart = strings.TrimSuffix(mainPart, "/")

	atIdx := strings.LastIndex(mainPart, "@")
	if atIdx == -1 {
		return nil, apperrors.NewParseError("tuic link missing userinfo", raw)
	}
	authPart := safeUnescape(mainPart[:atIdx])
	server, port := parseServerPort(mainPart[atIdx+1:], 0)
	if server == "" || port == 0 {
		return nil, apperrors.NewParseError("tuic link missing server or port", raw)
	}

	var uuid, password string
	if colonIdx := strings.Index(authPart, ":"); colonIdx != -1 {
		uuid = authPart[:colonIdx]
		password = authPart[colonIdx+1:]
	} else {
		uuid = authPart
		password = query["password"]
	}

	sni := server
	if query["sni"] != "" {
		sni = safeUnescape(query["sni"])
	}

	alpn := []string{"h3"}
	if query["alpn"] != "" {
		alpn = strings.Split(query["alpn"], ",")
	}

	congestionControl := query["congestion_control"]
	if congestionControl == "" {
		congestionControl = "bbr"
	}
	udpRelayMode := query["udp_relay_mode"]
	if udpRelayMode == "" {
		udpRelayMode = "native"
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeTUIC,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		TUIC: &node.TUICPayload{
			UUID:               normalizeUUID(uuid),
			Password:           password,
			SNI:                sni,
			SkipCertVerify:     boolToken(query["allowInsecure"]) || boolToken(query["allow_insecure"]),
			CongestionControl:  congestionControl,
			UDPRelayMode:       udpRelayMode,
			ALPN:               alpn,
		},
	}, nil
}
