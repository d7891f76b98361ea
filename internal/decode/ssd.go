package decode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	apperrors "github.com/orris-inc/subconv/internal/shared/errors"
)

// ssdDocument mirrors the SSD subscription JSON shape (spec §4.B rule 3):
// airport-level defaults plus a list of servers, each free to override
// any airport-level field.
type ssdDocument struct {
	Airport    string      `json:"airport"`
	Port       json.Number `json:"port"`
	Encryption string      `json:"encryption"`
	Password   string      `json:"password"`
	Servers    []ssdServer `json:"servers"`
}

type ssdServer struct {
	Remarks    string      `json:"remarks"`
	Server     string      `json:"server"`
	Port       json.Number `json:"port"`
	Encryption string      `json:"encryption"`
	Password   string      `json:"password"`
	Plugin     string      `json:"plugin"`
	PluginOpts string      `json:"plugin_options"`
}

// decodeSSD parses the SSD container format: an "ssd://"-prefixed base64
// blob of JSON describing one airport's shared settings and its servers,
// each server inheriting airport-level encryption/password/port unless it
// sets its own (spec §4.B rule 3).
func decodeSSD(text string, opts Options) (*Result, error) {
	blob := strings.TrimPrefix(text, "ssd://")
	padded := blob
	switch len(padded) % 4 {
	case 2:
		padded += "=="
	case 3:
		padded += "="
	}
	raw, err := base64.StdEncoding.DecodeString(padded)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(strings.NewReplacer("-", "+", "_", "/").Replace(padded))
		if err != nil {
			return nil, apperrors.NewConfigError("invalid ssd base64 payload", "")
		}
	}

	var doc ssdDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("invalid ssd json: %v", err), "")
	}

	result := &Result{}
	for _, srv := range doc.Servers {
		d, err := ssdServerToDescriptor(doc, srv)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, err)
			continue
		}
		if opts.CustomPort != "" {
			if p, perr := strconv.Atoi(opts.CustomPort); perr == nil && p > 0 && p <= 65535 {
				d.Port = uint16(p)
			}
		}
		d.Group = opts.Group
		d.GroupID = opts.GroupID
		if verr := d.Validate(); verr != nil {
			result.Diagnostics = append(result.Diagnostics, apperrors.NewParseError(verr.Error(), srv.Server))
			continue
		}
		result.Nodes = append(result.Nodes, d)
	}
	return result, nil
}

func ssdServerToDescriptor(doc ssdDocument, srv ssdServer) (*node.Descriptor, error) {
	if srv.Server == "" {
		return nil, apperrors.NewParseError("ssd server entry missing server", srv.Remarks)
	}

	port := srv.Port
	if port == "" {
		port = doc.Port
	}
	portNum, err := port.Int64()
	if err != nil {
		return nil, apperrors.NewParseError("ssd server entry has invalid port", srv.Server)
	}

	method := srv.Encryption
	if method == "" {
		method = doc.Encryption
	}
	password := srv.Password
	if password == "" {
		password = doc.Password
	}

	remarks := srv.Remarks
	if remarks == "" {
		remarks = fmt.Sprintf("%s-%s", doc.Airport, srv.Server)
	}

	return &node.Descriptor{
		LinkType: vo.LinkTypeSS,
		Remarks:  remarks,
		Server:   srv.Server,
		Port:     uint16(portNum),
		SS: &node.SSPayload{
			Method:     method,
			Password:   password,
			Plugin:     srv.Plugin,
			PluginOpts: srv.PluginOpts,
		},
	}, nil
}
