package emit

import (
	"testing"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	"github.com/orris-inc/subconv/internal/parser"
)

// TestToLink_RoundTrip exercises the spec §8 round-trip property: parsing
// a link emitted by ToLink must yield an equal descriptor for the fields
// ToLink is responsible for rendering.
func TestToLink_RoundTrip_SS(t *testing.T) {
	d := &node.Descriptor{
		LinkType: vo.LinkTypeSS, Remarks: "my-node", Server: "example.com", Port: 8388,
		SS: &node.SSPayload{Method: "aes-256-gcm", Password: "hunter2"},
	}
	link, ok := ToLink(d)
	if !ok {
		t.Fatal("expected ss link support")
	}
	got, err := parser.ParseLink(link, parser.Options{})
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if got.Server != d.Server || got.Port != d.Port || got.SS.Method != d.SS.Method || got.SS.Password != d.SS.Password {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Remarks != d.Remarks {
		t.Fatalf("remarks mismatch: got %q want %q", got.Remarks, d.Remarks)
	}
}

func TestToLink_RoundTrip_Vmess(t *testing.T) {
	d := &node.Descriptor{
		LinkType: vo.LinkTypeVmess, Remarks: "vm-node", Server: "vm.example.com", Port: 443,
		Vmess: &node.VmessPayload{UUID: "b831381d-6324-4d53-ad4f-8cda48b30811", AlterID: 0, TransferProtocol: node.VmessTransportWS, Host: "vm.example.com", Path: "/ws", TLSSecure: true, Security: "auto"},
	}
	link, ok := ToLink(d)
	if !ok {
		t.Fatal("expected vmess link support")
	}
	got, err := parser.ParseLink(link, parser.Options{})
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if got.Vmess.UUID != d.Vmess.UUID || got.Server != d.Server || got.Port != d.Port {
		t.Fatalf("round trip mismatch: %+v", got.Vmess)
	}
}

func TestToLink_RoundTrip_Trojan(t *testing.T) {
	d := &node.Descriptor{
		LinkType: vo.LinkTypeTrojan, Remarks: "tr-node", Server: "tr.example.com", Port: 443,
		Trojan: &node.TrojanPayload{Password: "secretpw", SNI: "tr.example.com"},
	}
	link, ok := ToLink(d)
	if !ok {
		t.Fatal("expected trojan link support")
	}
	got, err := parser.ParseLink(link, parser.Options{})
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if got.Trojan.Password != d.Trojan.Password || got.Server != d.Server {
		t.Fatalf("round trip mismatch: %+v", got.Trojan)
	}
}

func TestToLink_UnsupportedScheme(t *testing.T) {
	d := &node.Descriptor{LinkType: vo.LinkTypeSOCKS5, Socks: &node.SocksPayload{}}
	if _, ok := ToLink(d); ok {
		t.Fatal("socks5 has no link representation and must report ok=false")
	}
}

func TestJoinBase64Bundle_RoundTrips(t *testing.T) {
	links := []string{"ss://aaa", "vmess://bbb"}
	bundle := JoinBase64Bundle(links)
	if bundle == "" {
		t.Fatal("expected non-empty bundle")
	}
}
