package parser

import (
	"strconv"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseSSR decodes the base64 ssr:// body into
// host:port:proto:method:obfs:base64(pass)/?group=&remarks=&obfsparam=&protoparam=
// per spec §4.A.
func parseSSR(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(raw, "ssr://")
	decoded, err := decodeBase64URLSafe(content)
	if err != nil {
		return nil, apperrors.NewParseError("decode ssr link", raw)
	}

	mainPart := decoded
	paramsPart := ""
	if idx := strings.Index(decoded, "/?"); idx != -1 {
		mainPart = decoded[:idx]
		paramsPart = decoded[idx+2:]
	}

	segments := strings.Split(mainPart, ":")
	if len(segments) < 6 {
		return nil, apperrors.NewParseError("invalid ssr link shape", raw)
	}

	passwordB64 := segments[len(segments)-1]
	obfs := segments[len(segments)-2]
	method := segments[len(segments)-3]
	protocol := segments[len(segments)-4]
	portStr := segments[len(segments)-5]
	server := strings.Join(segments[:len(segments)-5], ":")

	port, _ := strconv.Atoi(portStr)
	password, err := decodeBase64URLSafe(passwordB64)
	if err != nil {
		return nil, apperrors.NewParseError("decode ssr password", raw)
	}

	query := parseQueryParams(paramsPart)
	remarks := "SSR Node"
	if r := query["remarks"]; r != "" {
		if decoded, derr := decodeBase64URLSafe(r); derr == nil {
			remarks = decoded
		}
	}
	obfsParam := ""
	if v := query["obfsparam"]; v != "" {
		if decoded, derr := decodeBase64URLSafe(v); derr == nil {
			obfsParam = decoded
		}
	}
	protoParam := ""
	if v := query["protoparam"]; v != "" {
		if decoded, derr := decodeBase64URLSafe(v); derr == nil {
			protoParam = decoded
		}
	}

	if server == "" || port == 0 {
		return nil, apperrors.NewParseError("ssr link missing server or port", raw)
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeSSR,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		SSR: &node.SSRPayload{
			Method:        method,
			Password:      password,
			Protocol:      protocol,
			ProtocolParam: protoParam,
			Obfs:          obfs,
			ObfsParam:     obfsParam,
		},
	}, nil
}
