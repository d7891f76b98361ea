package parser

import (
	"strconv"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseHysteria2 is a supplemented scheme (SPEC_FULL §4): password@server:port
// with sni/obfs/obfs-password/insecure/up/down query parameters. hy2:// is
// treated as an alias of hysteria2://.
func parseHysteria2(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(strings.TrimPrefix(raw, "hy2://"), "hysteria2://")
	mainPart, remarks := splitNameFragment(content, "Hysteria2 Node")
	mainPart, query := splitQuery(mainPart)
	mainPart = strings.TrimSuffix(mainPart, "/")

	atIdx := strings.LastIndex(mainPart, "@")
	if atIdx == -1 {
		return nil, apperrors.NewParseError("hysteria2 link missing userinfo", raw)
	}
	password := mainPart[:atIdx]
	server, port := parseServerPort(mainPart[atIdx+1:], 0)
	if server == "" || port == 0 {
		return nil, apperrors.NewParseError("hysteria2 link missing server or port", raw)
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

	obfsPassword := query["obfs-password"]
	if obfsPassword == "" {
		obfsPassword = query["obfsParam"]
	}

	upMbps, _ := strconv.Atoi(query["up"])
	if upMbps == 0 {
		upMbps, _ = strconv.Atoi(query["upmbps"])
	}
	downMbps, _ := strconv.Atoi(query["down"])
	if downMbps == 0 {
		downMbps, _ = strconv.Atoi(query["downmbps"])
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeHysteria2,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		Hysteria2: &node.Hysteria2Payload{
			Password:       password,
			SNI:            sni,
			SkipCertVerify: skipCertVerify,
			Obfs:           query["obfs"],
			ObfsPassword:   obfsPassword,
			UpMbps:         upMbps,
			DownMbps:       downMbps,
		},
	}, nil
}
