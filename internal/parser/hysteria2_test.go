package parser

import "testing"

func TestParseHysteria2(t *testing.T) {
	d, err := ParseLink("hysteria2://password123@example.com:443?sni=sni.example.com&obfs=salamander&obfs-password=obfspass&up=100&down=200#Hy2%20Node", Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}
	if d.Hysteria2.Password != "password123" {
		t.Errorf("Password = %q", d.Hysteria2.Password)
	}
	if d.Hysteria2.SNI != "sni.example.com" {
		t.Errorf("SNI = %q", d.Hysteria2.SNI)
	}
	if d.Hysteria2.Obfs != "salamander" {
		t.Errorf("Obfs = %q", d.Hysteria2.Obfs)
	}
	if d.Hysteria2.UpMbps != 100 || d.Hysteria2.DownMbps != 200 {
		t.Errorf("got up=%d down=%d", d.Hysteria2.UpMbps, d.Hysteria2.DownMbps)
	}
}

func TestParseHysteria2_Hy2Alias(t *testing.T) {
	d, err := ParseLink("hy2://password@example.com:443", Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}
	if d.LinkType != "hysteria2" {
		t.Errorf("LinkType = %q, want hysteria2 (hy2 is an alias)", d.LinkType)
	}
}

func TestParseHysteria2_SNIDefaultsToServer(t *testing.T) {
	d, err := ParseLink("hysteria2://password@example.com:443", Options{})
	if err != nil {
		t.Fatalf("ParseLink() error = %v", err)
	}
	if d.Hysteria2.SNI != "example.com" {
		t.Errorf("SNI = %q, want example.com", d.Hysteria2.SNI)
	}
}
