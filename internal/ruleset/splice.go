// Package ruleset implements the ruleset splicer (spec §4.E.1): it merges
// external rule lists into a target configuration's rule section,
// normalizing syntax differences between the Clash and Surge rule
// dialects.
package ruleset

import "strings"

// Dialect selects which cross-dialect translation the splicer applies.
type Dialect int

const (
	DialectClash Dialect = iota
	DialectSurge
)

// unsupportedClashRuleTypes are dropped outright when splicing into a
// Clash/ClashR target (spec §4.E.1).
var unsupportedClashRuleTypes = map[string]bool{
	"USER-AGENT":   true,
	"URL-REGEX":    true,
	"PROCESS-NAME": true,
	"AND":          true,
	"OR":           true,
}

// Entry is one ruleset source with its content already resolved (by a
// Cache, or supplied directly for an inline rule).
type Entry struct {
	RuleGroup string
	Content   string
}

// Splice merges entries into baseRules, producing the target's final rule
// section. When overwriteOriginal is set, baseRules is dropped rather than
// kept as a prefix (spec §4.E.1 last bullet).
func Splice(entries []Entry, baseRules []string, dialect Dialect, overwriteOriginal bool) []string {
	var out []string
	if !overwriteOriginal {
		out = append(out, baseRules...)
	}
	for _, e := range entries {
		out = append(out, spliceEntry(e, dialect)...)
	}
	return out
}

func spliceEntry(e Entry, dialect Dialect) []string {
	if strings.HasPrefix(e.Content, "[]") {
		rule := translateFinalMatch(e.Content[2:], dialect)
		return []string{appendRuleGroup(rule, e.RuleGroup)}
	}

	var lines []string
	for _, line := range splitRulesetLines(e.Content) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if dialect == DialectClash && isUnsupportedClashRule(line) {
			continue
		}
		line = translateFinalMatch(line, dialect)
		lines = append(lines, appendRuleGroup(line, e.RuleGroup))
	}
	return lines
}

// splitRulesetLines splits on "\n", falling back to "\r" when the content
// uses old Mac-style line endings and has no "\n" at all (spec §4.E.1).
func splitRulesetLines(content string) []string {
	if strings.Contains(content, "\n") {
		return strings.Split(content, "\n")
	}
	return strings.Split(content, "\r")
}

func isUnsupportedClashRule(line string) bool {
	ruleType := line
	if idx := strings.Index(line, ","); idx != -1 {
		ruleType = line[:idx]
	}
	return unsupportedClashRuleTypes[strings.TrimSpace(ruleType)]
}

// translateFinalMatch swaps FINAL/MATCH between Clash and Surge, each
// dialect's spelling of "match everything else" (spec §4.E.1).
func translateFinalMatch(rule string, dialect Dialect) string {
	fields := strings.SplitN(rule, ",", 2)
	switch dialect {
	case DialectClash:
		if strings.EqualFold(fields[0], "FINAL") {
			fields[0] = "MATCH"
		}
	case DialectSurge:
		if strings.EqualFold(fields[0], "MATCH") {
			fields[0] = "FINAL"
		}
	}
	return strings.Join(fields, ",")
}

// appendRuleGroup appends ", <group>" to a rule, or, when the rule
// already carries 3 or more commas, appends the group and then moves it
// into the third field ahead of the rule's existing third-and-later
// fields (spec §4.E.1 / §8, matching subexport.cpp:344-346's
// append-then-$1$3$2-reorder): "DOMAIN-SUFFIX,example.com,OldGroup,no-resolve"
// plus "Proxy" becomes "DOMAIN-SUFFIX,example.com,Proxy,OldGroup,no-resolve",
// never dropping the fields the group displaces.
func appendRuleGroup(rule, group string) string {
	if strings.Count(rule, ",") < 3 {
		return rule + "," + group
	}
	fields := strings.Split(rule, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	reordered := append([]string{fields[0], fields[1], group}, fields[2:]...)
	return strings.Join(reordered, ",")
}

// RuleSetFallback builds the Surge RULE-SET fallback line used when a
// local rule file path cannot be opened (spec §4.E.1, Surge v>2).
func RuleSetFallback(path, group string) string {
	return "RULE-SET," + path + "," + group
}
