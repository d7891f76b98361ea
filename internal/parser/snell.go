package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseSnell handles a snell:// link in the same SIP-002-style shape as
// Trojan: psk@host:port?obfs=...&obfs-host=....
func parseSnell(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(raw, "snell://")
	mainPart, remarks := splitNameFragment(content, "Snell Node")
	mainPart, query := splitQuery(mainPart)
	mainPart = strings.TrimSuffix(mainPart, "/")

	atIdx := strings.LastIndex(mainPart, "@")
	if atIdx == -1 {
		return nil, apperrors.NewParseError("snell link missing userinfo", raw)
	}
	password := mainPart[:atIdx]
	server, port := parseServerPort(mainPart[atIdx+1:], 0)
	if server == "" || port == 0 {
		return nil, apperrors.NewParseError("snell link missing server or port", raw)
	}

	host := safeUnescape(query["obfs-host"])
	if host == "" {
		host = server
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeSnell,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		Snell: &node.SnellPayload{
			Password: password,
			Obfs:     query["obfs"],
			Host:     host,
		},
	}, nil
}
