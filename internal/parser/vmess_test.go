package parser

import "testing"

const testVmessLink = "vmess://eyJ2IjogIjIiLCAicHMiOiAiVGVzdCBOb2RlIiwgImFkZCI6ICJ2bWVzcy5leGFtcGxlLmNvbSIsICJwb3J0IjogNDQzLCAiaWQiOiAiIiwgImFpZCI6IDAsICJuZXQiOiAid3MiLCAidHlwZSI6ICJub25lIiwgImhvc3QiOiAidm1lc3MuZXhhbXBsZS5jb20iLCAicGF0aCI6ICIvdiIsICJ0bHMiOiAidGxzIn0="

func TestParseVmess_WSTransport(t *testing.T) {
	d, err := ParseLink(testVmessLink, Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}

	if d.Server != "vmess.example.com" {
		t.Errorf("Server = %q", d.Server)
	}
	if d.Port != 443 {
		t.Errorf("Port = %d, want 443", d.Port)
	}
	if d.Vmess.TransferProtocol != "ws" {
		t.Errorf("TransferProtocol = %q, want ws", d.Vmess.TransferProtocol)
	}
	if d.Vmess.Path != "/v" {
		t.Errorf("Path = %q, want /v", d.Vmess.Path)
	}
	if !d.Vmess.TLSSecure {
		t.Error("TLSSecure = false, want true")
	}
}

func TestParseVmess_EmptyUUIDDefaultsToZeroUUID(t *testing.T) {
	d, err := ParseLink(testVmessLink, Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}
	if d.Vmess.UUID != zeroUUID {
		t.Errorf("UUID = %q, want %q (empty uuid must normalize)", d.Vmess.UUID, zeroUUID)
	}
}

func TestParseVmess_MissingServerErrors(t *testing.T) {
	// {"ps":"x","port":443} base64: no "add" field.
	if _, err := ParseLink("vmess://eyJwcyI6IngiLCJwb3J0Ijo0NDN9", Options{}); err == nil {
		t.Error("expected parse error for vmess link missing server")
	}
}
