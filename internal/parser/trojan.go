package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseTrojan handles the SIP-002-shaped trojan:// link, reading sni/host
// from the query or falling back to the hostname (spec §4.A).
func parseTrojan(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(raw, "trojan://")
	mainPart, remarks := splitNameFragment(content, "Trojan Node")
	mainPart, query := splitQuery(mainPart)
	mainPart = strings.TrimSuffix(mainPart, "/")

	atIdx := strings.LastIndex(mainPart, "@")
	if atIdx == -1 {
		return nil, apperrors.NewParseError("trojan link missing userinfo", raw)
	}
	password := mainPart[:atIdx]
	server, port := parseServerPort(mainPart[atIdx+1:], 443)
	if server == "" {
		return nil, apperrors.NewParseError("trojan link missing server", raw)
	}

	sni := server
	switch {
	case query["sni"] != "":
		sni = safeUnescape(query["sni"])
	case query["peer"] != "":
		sni = safeUnescape(query["peer"])
	case query["host"] != "":
		sni = safeUnescape(query["host"])
	}

	udp := vo.TriStateUnset
	if query["udp"] != "" {
		udp = vo.NewTriState(boolPtr(boolToken(query["udp"])))
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeTrojan,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		Trojan: &node.TrojanPayload{
			Password:  password,
			SNI:       sni,
			TLSSecure: true,
			UDP:       udp,
		},
	}, nil
}

func boolPtr(b bool) *bool { return &b }
