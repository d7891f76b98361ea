package parser

import "testing"

func TestParseVLESS_WSWithTLS(t *testing.T) {
	d, err := ParseLink("vless://11111111-1111-1111-1111-111111111111@example.com:443?security=tls&type=ws&host=ws.example.com&path=%2Fv&sni=sni.example.com&flow=xtls-rprx-vision#VLESS%20Node", Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}
	if d.VLESS.UUID != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("UUID = %q", d.VLESS.UUID)
	}
	if !d.VLESS.TLSSecure {
		t.Error("TLSSecure = false, want true for security=tls")
	}
	if d.VLESS.TransferProtocol != "ws" {
		t.Errorf("TransferProtocol = %q, want ws", d.VLESS.TransferProtocol)
	}
	if d.VLESS.Path != "/v" {
		t.Errorf("Path = %q, want /v", d.VLESS.Path)
	}
	if d.VLESS.Flow != "xtls-rprx-vision" {
		t.Errorf("Flow = %q", d.VLESS.Flow)
	}
}

func TestParseVLESS_RealitySetsTLS(t *testing.T) {
	d, err := ParseLink("vless://22222222-2222-2222-2222-222222222222@example.com:443?security=reality&pbk=publickey&sid=shortid", Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}
	if !d.VLESS.TLSSecure {
		t.Error("TLSSecure = false, want true for security=reality")
	}
	if d.VLESS.PublicKey != "publickey" {
		t.Errorf("PublicKey = %q", d.VLESS.PublicKey)
	}
}

func TestParseVLESS_EmptyUUIDDefaults(t *testing.T) {
	d, err := ParseLink("vless://@example.com:443", Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}
	if d.VLESS.UUID != zeroUUID {
		t.Errorf("UUID = %q, want zero uuid default", d.VLESS.UUID)
	}
}
