package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// parseVmess decodes the base64 JSON payload of a vmess:// link, reading
// the keys v, ps, add, port, id, aid, net, type, host, path, tls per
// spec §4.A, applying the empty-uuid/path/host defaulting policy.
func parseVmess(raw string) (*node.Descriptor, error) {
	content := strings.TrimPrefix(strings.TrimPrefix(raw, "vmess1://"), "vmess://")
	jsonStr, err := decodeBase64URLSafe(content)
	if err != nil {
		return nil, apperrors.NewParseError("decode vmess payload", raw)
	}

	var cfg map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &cfg); err != nil {
		return nil, apperrors.NewParseError("parse vmess json", raw)
	}

	server := jsonString(cfg, "add")
	port := jsonInt(cfg, "port")
	if server == "" || port == 0 {
		return nil, apperrors.NewParseError("vmess link missing server or port", raw)
	}

	remarks := jsonString(cfg, "ps")
	if remarks == "" {
		remarks = "Vmess Node"
	}

	uuid := normalizeUUID(jsonString(cfg, "id"))
	path := jsonString(cfg, "path")
	if path == "" {
		path = "/"
	}
	host := jsonString(cfg, "host")
	if host == "" {
		host = server
	}

	transport := node.VmessTransport(jsonString(cfg, "net"))
	if transport == "" {
		transport = node.VmessTransportTCP
	}
	fakeType := node.VmessFakeTypeNone
	if jsonString(cfg, "type") == "http" {
		fakeType = node.VmessFakeTypeHTTP
	}

	security := jsonString(cfg, "scy")
	if security == "" {
		security = "auto"
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeVmess,
		Remarks:  remarks,
		Server:   server,
		Port:     uint16(port),
		Vmess: &node.VmessPayload{
			UUID:             uuid,
			AlterID:          uint32(jsonInt(cfg, "aid")),
			TransferProtocol: transport,
			FakeType:         fakeType,
			Host:             host,
			Path:             path,
			TLSSecure:        strings.EqualFold(jsonString(cfg, "tls"), "tls"),
			QUICSecure:       jsonString(cfg, "quicSecurity"),
			QUICSecret:       jsonString(cfg, "quicSecret"),
			Security:         security,
		},
	}, nil
}

func jsonString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}

func jsonInt(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok || v == nil {
		return 0
	}
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		n, _ := strconv.Atoi(val)
		return n
	default:
		return 0
	}
}
