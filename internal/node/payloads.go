package node

import vo "github.com/orris-inc/subconv/internal/node/valueobjects"

// SSPayload is the Shadowsocks scheme_fields payload (spec §3).
type SSPayload struct {
	Method     string
	Password   string
	Plugin     string // "" | "obfs-local" | "simple-obfs" | "v2ray-plugin"
	PluginOpts string // URL-query-style string, e.g. "obfs=http;obfs-host=x.com"
}

// SSRPayload is the ShadowsocksR scheme_fields payload.
type SSRPayload struct {
	Method        string
	Password      string
	Protocol      string
	ProtocolParam string
	Obfs          string
	ObfsParam     string
}

// VmessTransport enumerates the transport protocols a Vmess node may use.
type VmessTransport string

const (
	VmessTransportTCP  VmessTransport = "tcp"
	VmessTransportWS   VmessTransport = "ws"
	VmessTransportKCP  VmessTransport = "kcp"
	VmessTransportH2   VmessTransport = "h2"
	VmessTransportQUIC VmessTransport = "quic"
)

// VmessFakeType enumerates the obfuscated header type for kcp transport.
type VmessFakeType string

const (
	VmessFakeTypeNone VmessFakeType = "none"
	VmessFakeTypeHTTP VmessFakeType = "http"
)

// VmessPayload is the Vmess scheme_fields payload.
type VmessPayload struct {
	UUID             string
	AlterID          uint32
	TransferProtocol VmessTransport
	FakeType         VmessFakeType
	Host             string
	Path             string
	TLSSecure        bool
	QUICSecure       string
	QUICSecret       string
	Security         string // cipher, e.g. "auto", "aes-128-gcm"
}

// TrojanPayload is the Trojan scheme_fields payload.
type TrojanPayload struct {
	Password  string
	SNI       string
	TLSSecure bool
	UDP       vo.TriState
}

// SnellPayload is the Snell scheme_fields payload.
type SnellPayload struct {
	Password string
	Obfs     string
	Host     string
}

// SocksPayload is the SOCKS5 / HTTP / HTTPS scheme_fields payload.
type SocksPayload struct {
	Username  string
	Password  string
	TLSSecure bool
}

// VLESSFlow enumerates the XTLS flow control modes a VLESS node may request.
type VLESSFlow string

const (
	VLESSFlowNone       VLESSFlow = ""
	VLESSFlowXTLSVision VLESSFlow = "xtls-rprx-vision"
)

// VLESSPayload is the VLESS scheme_fields payload, a supplemented variant
// beyond the original tool's scheme set (spec §4 supplement).
type VLESSPayload struct {
	UUID             string
	Flow             VLESSFlow
	Encryption       string // always "none" on the wire, kept for round-trip fidelity
	TransferProtocol VmessTransport
	Host             string
	Path             string
	TLSSecure        bool
	SNI              string
	Fingerprint      string // uTLS client fingerprint, e.g. "chrome"
	PublicKey        string // REALITY public key
	ShortID          string // REALITY short id
	SpiderX          string // REALITY spider-x path
}

// Hysteria2Payload is the Hysteria2 scheme_fields payload.
type Hysteria2Payload struct {
	Password       string
	SNI            string
	SkipCertVerify bool
	Obfs           string // "" | "salamander"
	ObfsPassword   string
	UpMbps         int
	DownMbps       int
}

// TUICPayload is the TUIC scheme_fields payload.
type TUICPayload struct {
	UUID               string
	Password           string
	SNI                string
	SkipCertVerify     bool
	CongestionControl  string // "cubic" | "bbr" | "new_reno"
	UDPRelayMode       string // "native" | "quic"
	ALPN               []string
}

// AnyTLSPayload is the AnyTLS scheme_fields payload.
type AnyTLSPayload struct {
	Password       string
	SNI            string
	SkipCertVerify bool
}
