package ruleset

import (
	"strconv"
	"strings"
)

// ACL4SSRBehavior is the Clash rule-provider behavior an ACL4SSR ruleset=
// line declares (classical rule list, domain set, or ipcidr set).
type ACL4SSRBehavior string

const (
	BehaviorClassical ACL4SSRBehavior = "classical"
	BehaviorDomain    ACL4SSRBehavior = "domain"
	BehaviorIPCIDR    ACL4SSRBehavior = "ipcidr"
)

// ACL4SSRRuleset is one ruleset= definition from an ACL4SSR-style config (a
// supplemented input format: such configs are widely distributed bundled
// with the rule lists they reference).
type ACL4SSRRuleset struct {
	RuleGroup string
	Source    string // inline "[]..." rule, or a URL/local path to fetch
	Behavior  ACL4SSRBehavior
	Interval  int
}

const aclJsdelivrBase = "https://testingcf.jsdelivr.net/gh/ACL4SSR/ACL4SSR@master/"

// ParseACL4SSRRuleset parses one "ruleset=<group>,<spec>" directive body
// (group and spec already split on the first comma by the caller).
func ParseACL4SSRRuleset(group, spec string) ACL4SSRRuleset {
	rs := ACL4SSRRuleset{RuleGroup: group, Behavior: BehaviorClassical, Interval: 86400}

	if idx := strings.LastIndex(spec, ","); idx > 0 {
		if interval, err := strconv.Atoi(spec[idx+1:]); err == nil {
			rs.Interval = interval
			spec = spec[:idx]
		}
	}

	switch {
	case strings.HasPrefix(spec, "clash-classic:"):
		rs.Behavior = BehaviorClassical
		rs.Source = spec[len("clash-classic:"):]
	case strings.HasPrefix(spec, "clash-domain:"):
		rs.Behavior = BehaviorDomain
		rs.Source = spec[len("clash-domain:"):]
	case strings.HasPrefix(spec, "clash-ipcidr:"):
		rs.Behavior = BehaviorIPCIDR
		rs.Source = spec[len("clash-ipcidr:"):]
	case strings.HasPrefix(spec, "rules/ACL4SSR/"):
		rs.Source = aclJsdelivrBase + strings.TrimPrefix(spec, "rules/ACL4SSR/")
	default:
		rs.Source = spec
	}

	return rs
}

// IsInlineRule reports whether an ACL4SSRRuleset's source is an inline
// "[]rule" rather than a URL or path to fetch.
func (rs ACL4SSRRuleset) IsInlineRule() bool {
	return strings.HasPrefix(rs.Source, "[]")
}
