package group

import (
	"testing"

	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
)

func testNodes() []*node.Descriptor {
	return []*node.Descriptor{
		{LinkType: vo.LinkTypeSS, Remarks: "HK-01", Group: "airport-a", GroupID: 1},
		{LinkType: vo.LinkTypeSS, Remarks: "HK-02", Group: "airport-a", GroupID: 1},
		{LinkType: vo.LinkTypeTrojan, Remarks: "US-01", Group: "airport-b", GroupID: 2},
		{LinkType: vo.LinkTypeTrojan, Remarks: "JP-01-expired", Group: "airport-b", GroupID: 2},
	}
}

func TestExpand_LiteralName(t *testing.T) {
	out, err := Expand([]string{"[]DIRECT"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 1 || out[0] != "DIRECT" {
		t.Errorf("Expand() = %v, want [DIRECT]", out)
	}
}

func TestExpand_GroupName(t *testing.T) {
	out, err := Expand([]string{"!!GROUP=airport-a"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 2 || out[0] != "HK-01" || out[1] != "HK-02" {
		t.Errorf("Expand() = %v, want [HK-01 HK-02]", out)
	}
}

func TestExpand_GroupNameWithRemarkFilter(t *testing.T) {
	out, err := Expand([]string{"!!GROUP=airport-a!!02"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 1 || out[0] != "HK-02" {
		t.Errorf("Expand() = %v, want [HK-02]", out)
	}
}

func TestExpand_GroupID(t *testing.T) {
	out, err := Expand([]string{"!!GROUPID=2"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 2 || out[0] != "US-01" || out[1] != "JP-01-expired" {
		t.Errorf("Expand() = %v, want [US-01 JP-01-expired]", out)
	}
}

func TestExpand_GroupIDWithRemarkFilter(t *testing.T) {
	out, err := Expand([]string{"!!GROUPID=2!!expired"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 1 || out[0] != "JP-01-expired" {
		t.Errorf("Expand() = %v, want [JP-01-expired]", out)
	}
}

func TestExpand_BareRegexOverRemark(t *testing.T) {
	out, err := Expand([]string{"^HK"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("Expand() = %v, want 2 HK matches", out)
	}
}

func TestExpand_DedupesAcrossExpressions(t *testing.T) {
	out, err := Expand([]string{"^HK", "!!GROUP=airport-a"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 2 {
		t.Errorf("Expand() = %v, want deduped to 2", out)
	}
}

func TestExpand_EmptyResultFallsBackToDirect(t *testing.T) {
	out, err := Expand([]string{"!!GROUP=nonexistent"}, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 1 || out[0] != "DIRECT" {
		t.Errorf("Expand() = %v, want fallback [DIRECT]", out)
	}
}

func TestExpand_NoExpressionsFallsBackToDirect(t *testing.T) {
	out, err := Expand(nil, testNodes())
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(out) != 1 || out[0] != "DIRECT" {
		t.Errorf("Expand() = %v, want fallback [DIRECT]", out)
	}
}

func TestParseACL4SSRGroup(t *testing.T) {
	g := ParseACL4SSRGroup("Proxy`select`[]DIRECT`!!GROUP=airport-a`https://example.com/check`300,,50")
	if g.Name != "Proxy" || g.Type != "select" {
		t.Fatalf("ParseACL4SSRGroup() = %+v", g)
	}
	if len(g.Members) != 2 {
		t.Fatalf("Members = %v, want 2 entries", g.Members)
	}
	if g.URL != "https://example.com/check" {
		t.Errorf("URL = %q", g.URL)
	}
	if g.Interval != 300 || g.Tolerance != 50 {
		t.Errorf("Interval/Tolerance = %d/%d, want 300/50", g.Interval, g.Tolerance)
	}
}

func TestMergeRegexAlternatives(t *testing.T) {
	got := MergeRegexAlternatives([]string{"(HK|Hong Kong)", "(JP|Japan)"})
	want := "(HK|Hong Kong|JP|Japan)"
	if got != want {
		t.Errorf("MergeRegexAlternatives() = %q, want %q", got, want)
	}
}

func TestIsRegexAlternative(t *testing.T) {
	if !IsRegexAlternative("(HK|US)") {
		t.Error("IsRegexAlternative(\"(HK|US)\") = false, want true")
	}
	if IsRegexAlternative("HK") {
		t.Error("IsRegexAlternative(\"HK\") = true, want false")
	}
}
