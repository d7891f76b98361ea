// Package emit implements the dialect emitters (spec §4.E): translators
// from the normalized node.Descriptor list into each target client's
// configuration syntax, each respecting its own capability matrix (§6).
package emit

import (
	"github.com/orris-inc/subconv/internal/group"
	"github.com/orris-inc/subconv/internal/node"
	vo "github.com/orris-inc/subconv/internal/node/valueobjects"
	"github.com/orris-inc/subconv/internal/ruleset"
)

// Options carries the ExtraSettings enumeration (spec §3) relevant to
// emission: flags are tri-state so "unset" never silently becomes "off"
// when a node's own flag was already explicit.
type Options struct {
	EnableRuleGenerator    bool
	OverwriteOriginalRules bool
	FilterDeprecated       bool
	ClashNewFieldName      bool
	ClashProxiesStyleFlow  bool
	NodeList               bool
	SurgeSSRPath           string
	QuanXDevID             string

	// ClashBaseExtra seeds EmitClash's output document with a base
	// template's top-level keys (internal/emit/template.LoadClashBase),
	// before the generated proxy/group/rule keys are set over it.
	ClashBaseExtra map[string]any

	UDP            vo.TriState
	TFO            vo.TriState
	SkipCertVerify vo.TriState
}

// Group is one resolved proxy-group, its raw member expressions already
// expanded against the node list by internal/group.
type Group struct {
	Name    string
	Type    string
	Members []string
	URL     string
	Interval int
}

// Diagnostic is a non-error outcome of emission: a node silently skipped
// because its variant or transport has no representation in the target
// dialect (spec §7: CapabilityMismatch is explicitly not an error type).
type Diagnostic struct {
	Remarks string
	Reason  string
}

// Result is what every emitter returns: the serialized artifact plus the
// capability-mismatch diagnostics accumulated while building it.
type Result struct {
	Artifact    string
	Diagnostics []Diagnostic
}

// resolveTri combines a node's own tri-state flag with the emission-wide
// override: the override forces true when set true, otherwise the node's
// own explicit value wins, otherwise unset/false.
func resolveTri(override, own vo.TriState) bool {
	if v, ok := override.Bool(); ok && v {
		return true
	}
	if v, ok := own.Bool(); ok {
		return v
	}
	return false
}

// ExpandGroups resolves a set of raw proxy-group definitions against the
// (already-normalized) node list (spec §4.D, step 4 of the emitter
// skeleton).
func ExpandGroups(defs []GroupDef, nodes []*node.Descriptor) ([]Group, error) {
	out := make([]Group, 0, len(defs))
	for _, def := range defs {
		members, err := group.Expand(def.MemberExprs, nodes)
		if err != nil {
			return nil, err
		}
		out = append(out, Group{
			Name: def.Name, Type: def.Type, Members: members,
			URL: def.URL, Interval: def.Interval,
		})
	}
	return out, nil
}

// GroupDef is the caller-declared, unexpanded proxy-group specification
// (name/type/raw member expressions/health-check URL).
type GroupDef struct {
	Name        string
	Type        string
	MemberExprs []string
	URL         string
	Interval    int
}

// SpliceRules runs the ruleset splicer (spec §4.E.1) when enabled,
// returning baseRules unchanged otherwise.
func SpliceRules(entries []ruleset.Entry, baseRules []string, dialect ruleset.Dialect, opts Options) []string {
	if !opts.EnableRuleGenerator {
		return baseRules
	}
	return ruleset.Splice(entries, baseRules, dialect, opts.OverwriteOriginalRules)
}
