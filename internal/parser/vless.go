package parser

import (
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseVLESS is a supplemented scheme beyond spec.md's §3 list (SPEC_FULL §4):
// uuid@server:port?security=&encryption=&flow=&type=&host=&path=&sni=&pbk=&sid=&spx=&fp=.
func parseVLESS(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(raw, "vless://")
	mainPart, remarks := splitNameFragment(content, "VLESS Node")
	mainPart, query := splitQuery(mainPart)
	mainPart = strings.TrimSuffix(mainPart, "/")

	atIdx := strings.LastIndex(mainPart, "@")
	if atIdx == -1 {
		return nil, apperrors.NewParseError("vless link missing userinfo", raw)
	}
	uuid := normalizeUUID(mainPart[:atIdx])
	server, port := parseServerPort(mainPart[atIdx+1:], 443)
	if server == "" {
		return nil, apperrors.NewParseError("vless link missing server", raw)
	}

	security := query["security"]
	if security == "" {
		security = "none"
	}
	encryption := query["encryption"]
	if encryption == "" {
		encryption = "none"
	}

	transport := node.VmessTransport(query["type"])
	if transport == "" {
		transport = node.VmessTransportTCP
	}

	host := safeUnescape(query["host"])
	path := safeUnescape(query["path"])
	if path == "" {
		path = "/"
	}

	sni := server
	if query["sni"] != "" {
		sni = safeUnescape(query["sni"])
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeVLESS,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		VLESS: &node.VLESSPayload{
			UUID:             uuid,
			Flow:             node.VLESSFlow(query["flow"]),
			Encryption:       encryption,
			TransferProtocol: transport,
			Host:             host,
			Path:             path,
			TLSSecure:        security == "tls" || security == "reality",
			SNI:              sni,
			Fingerprint:      query["fp"],
			PublicKey:        query["pbk"],
			ShortID:          query["sid"],
			SpiderX:          query["spx"],
		},
	}, nil
}
