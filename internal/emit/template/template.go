// Package template loads the per-dialect base templates spec §4.E calls
// out as optional input to the Surge/Mellow and Clash/ClashR emitters: a
// caller-supplied skeleton file whose non-generated sections ([General],
// [DNS], top-level Clash keys like port/mode/log-level) pass through
// unmodified while internal/emit rebuilds [Proxy]/[Proxy Group]/[Rule] (or
// the Clash equivalents) from the decoded node list.
package template

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadSurgeBase reads a Surge/Mellow-style INI base template and returns
// its [General] and [DNS] sections as "key = value" lines, the exact shape
// internal/emit.EmitSurge's baseGeneral/baseDNS parameters expect to write
// straight through. An empty path is not an error: it means no base
// template was supplied, and both return values are nil.
func LoadSurgeBase(path string) (general []string, dns []string, err error) {
	if path == "" {
		return nil, nil, nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("template: load surge base %q: %w", path, err)
	}
	return sectionLines(cfg, "General"), sectionLines(cfg, "DNS"), nil
}

func sectionLines(cfg *ini.File, name string) []string {
	section, err := cfg.GetSection(name)
	if err != nil {
		return nil
	}
	keys := section.Keys()
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key.Name()+" = "+key.Value())
	}
	return lines
}

// LoadClashBase reads a Clash YAML base template and returns its top-level
// keys as a map, merged by internal/emit.EmitClash under
// Options.ClashBaseExtra: the generated "Proxy"/"proxies"/"proxy-groups"/
// "rules" keys always win over anything the base template also sets there.
// An empty path returns a nil map, not an error.
func LoadClashBase(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: read clash base %q: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("template: parse clash base %q: %w", path, err)
	}
	return doc, nil
}
