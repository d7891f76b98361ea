package ruleset

import (
	"reflect"
	"testing"
)

func TestSplice_InlineRule(t *testing.T) {
	entries := []Entry{{RuleGroup: "Proxy", Content: "[]FINAL"}}
	out := Splice(entries, nil, DialectClash, false)
	want := []string{"MATCH,Proxy"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Splice() = %v, want %v", out, want)
	}
}

func TestSplice_InlineRule_SurgeKeepsFinal(t *testing.T) {
	entries := []Entry{{RuleGroup: "Proxy", Content: "[]MATCH"}}
	out := Splice(entries, nil, DialectSurge, false)
	want := []string{"FINAL,Proxy"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Splice() = %v, want %v", out, want)
	}
}

func TestSplice_MultilineContent_AppendsGroup(t *testing.T) {
	entries := []Entry{{
		RuleGroup: "Proxy",
		Content:   "DOMAIN-SUFFIX,google.com\n\n# a comment\nDOMAIN-SUFFIX,youtube.com",
	}}
	out := Splice(entries, nil, DialectClash, false)
	want := []string{"DOMAIN-SUFFIX,google.com,Proxy", "DOMAIN-SUFFIX,youtube.com,Proxy"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Splice() = %v, want %v", out, want)
	}
}

func TestSplice_DropsUnsupportedClashRuleTypes(t *testing.T) {
	entries := []Entry{{
		RuleGroup: "Proxy",
		Content:   "USER-AGENT,curl*\nDOMAIN,example.com\nPROCESS-NAME,firefox",
	}}
	out := Splice(entries, nil, DialectClash, false)
	want := []string{"DOMAIN,example.com,Proxy"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Splice() = %v, want %v", out, want)
	}
}

func TestSplice_KeepsUnsupportedRuleTypesForSurge(t *testing.T) {
	entries := []Entry{{RuleGroup: "Proxy", Content: "USER-AGENT,curl*"}}
	out := Splice(entries, nil, DialectSurge, false)
	want := []string{"USER-AGENT,curl*,Proxy"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Splice() = %v, want %v", out, want)
	}
}

func TestSplice_SwapsGroupWhenThreeExistingCommas(t *testing.T) {
	entries := []Entry{{RuleGroup: "Proxy", Content: "DOMAIN-SUFFIX,example.com,OldGroup,no-resolve"}}
	out := Splice(entries, nil, DialectClash, false)
	want := []string{"DOMAIN-SUFFIX,example.com,Proxy,OldGroup,no-resolve"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Splice() = %v, want %v", out, want)
	}
}

func TestSplice_OverwriteOriginalDropsBaseRules(t *testing.T) {
	base := []string{"DOMAIN,old.example.com,Legacy"}
	entries := []Entry{{RuleGroup: "Proxy", Content: "DOMAIN,new.example.com"}}

	overwritten := Splice(entries, base, DialectClash, true)
	if len(overwritten) != 1 {
		t.Errorf("overwrite_original_rules: Splice() = %v, want base dropped", overwritten)
	}

	appended := Splice(entries, base, DialectClash, false)
	if len(appended) != 2 || appended[0] != base[0] {
		t.Errorf("append mode: Splice() = %v, want base kept as prefix", appended)
	}
}

func TestSplice_CRLineEndingFallback(t *testing.T) {
	entries := []Entry{{RuleGroup: "Proxy", Content: "DOMAIN,a.example.com\rDOMAIN,b.example.com"}}
	out := Splice(entries, nil, DialectClash, false)
	want := []string{"DOMAIN,a.example.com,Proxy", "DOMAIN,b.example.com,Proxy"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Splice() = %v, want %v", out, want)
	}
}

func TestRuleSetFallback(t *testing.T) {
	got := RuleSetFallback("rules/proxy.list", "Proxy")
	if got != "RULE-SET,rules/proxy.list,Proxy" {
		t.Errorf("RuleSetFallback() = %q", got)
	}
}

func TestParseACL4SSRRuleset_ClashDomainWithInterval(t *testing.T) {
	rs := ParseACL4SSRRuleset("Proxy", "clash-domain:https://example.com/rules.yaml,43200")
	if rs.Behavior != BehaviorDomain {
		t.Errorf("Behavior = %v, want domain", rs.Behavior)
	}
	if rs.Source != "https://example.com/rules.yaml" {
		t.Errorf("Source = %q", rs.Source)
	}
	if rs.Interval != 43200 {
		t.Errorf("Interval = %d, want 43200", rs.Interval)
	}
}

func TestParseACL4SSRRuleset_ACL4SSRRelativePath(t *testing.T) {
	rs := ParseACL4SSRRuleset("Ad Block", "rules/ACL4SSR/Clash/BanAD.list")
	want := aclJsdelivrBase + "Clash/BanAD.list"
	if rs.Source != want {
		t.Errorf("Source = %q, want %q", rs.Source, want)
	}
}

func TestParseACL4SSRRuleset_InlineRule(t *testing.T) {
	rs := ParseACL4SSRRuleset("Proxy", "[]GEOIP,CN")
	if !rs.IsInlineRule() {
		t.Error("IsInlineRule() = false, want true")
	}
}

func TestParseACL4SSRRuleset_DefaultInterval(t *testing.T) {
	rs := ParseACL4SSRRuleset("Proxy", "https://example.com/rules.list")
	if rs.Interval != 86400 {
		t.Errorf("Interval = %d, want default 86400", rs.Interval)
	}
}
