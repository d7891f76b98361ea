package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseAnyTLS is a supplemented scheme (SPEC_FULL §4): password@server:port
// with sni/insecure query parameters, following the same shape as Trojan.
func parseAnyTLS(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(raw, "anytls://")
	mainPart, remarks := splitNameFragment(content, "AnyTLS Node")
	mainPart, query := splitQuery(mainPart)
	mainPart = strings.TrimSuffix(mainPart, "/")

	atIdx := strings.LastIndex(mainPart, "@")
	if atIdx == -1 {
		return nil, apperrors.NewParseError("anytls link missing userinfo", raw)
	}
	password := mainPart[:atIdx]
	server, port := parseServerPort(mainPart[atIdx+1:], 443)
	if server == "" {
		return nil, apperrors.NewParseError("anytls link missing server", raw)
	}

	sni := ""
	switch {
	case query["sni"] != "":
		sni = safeUnescape(query["sni"])
	case query["peer"] != "":
		sni = safeUnescape(query["peer"])
	case !strings.HasPrefix(server, "["):
		sni = server
	}

	skipCertVerify := boolToken(query["insecure"]) || boolToken(query["allowInsecure"])

	return &node.Descriptor{
		LinkType: vo.LinkTypeAnyTLS,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		AnyTLS: &node.AnyTLSPayload{
			Password:       password,
			SNI:            sni,
			SkipCertVerify: skipCertVerify,
		},
	}, nil
}
