// Package normalize implements the node normalizer (spec §4.C): the
// ordered rename/emoji/dedupe/sort/filter pipeline applied to a whole
// node list before group expansion and emission.
package normalize

import (
	"fmt"
	"regexp"
)

// RenameRule is one entry of the rename table. A rule with an empty
// Replacement deletes every match of Pattern; otherwise matches are
// replaced with Replacement (spec §4.C step 1).
type RenameRule struct {
	Pattern     *regexp.Regexp
	Replacement string
	HasReplace  bool
}

// EmojiRule is one entry of the add-emoji table: Pattern matched against
// the remark, Emoji prepended on first match (spec §4.C step 3).
type EmojiRule struct {
	Pattern *regexp.Regexp
	Emoji   string
}

// Rules is the immutable, cross-request rename/emoji/filter configuration
// consulted by Apply. A Rules value is read-only once built: callers
// needing a new configuration build and swap a new *Rules rather than
// mutating this one (spec §9 design note on process-wide mutable state).
type Rules struct {
	Rename          []RenameRule
	RemoveEmoji     bool
	AddEmoji        []EmojiRule
	AppendProxyType bool
	SortFlag        bool
	Include         []*regexp.Regexp
	Exclude         []*regexp.Regexp
}

// ParseRenameRule compiles one rename directive of the form "pattern" or
// "pattern@replacement" into a RenameRule.
func ParseRenameRule(raw string) (RenameRule, error) {
	pattern, replacement, hasReplace := splitRenameDirective(raw)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return RenameRule{}, err
	}
	return RenameRule{Pattern: re, Replacement: replacement, HasReplace: hasReplace}, nil
}

// splitRenameDirective splits "pattern@replacement" on the first
// unescaped '@'; a directive with no '@' is a delete-only pattern.
func splitRenameDirective(raw string) (pattern, replacement string, hasReplace bool) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '@' && (i == 0 || raw[i-1] != '\\') {
			return raw[:i], raw[i+1:], true
		}
	}
	return raw, "", false
}

// ParseEmojiRule compiles one "regex,emoji" add-emoji directive.
func ParseEmojiRule(raw string) (EmojiRule, error) {
	idx := -1
	for i := len(raw) - 1; i >= 0; i-- {
		if raw[i] == ',' {
			idx = i
			break
		}
	}
	if idx == -1 {
		return EmojiRule{}, fmt.Errorf("normalize: add_emoji rule %q missing ',emoji' suffix", raw)
	}
	re, err := regexp.Compile(raw[:idx])
	if err != nil {
		return EmojiRule{}, err
	}
	return EmojiRule{Pattern: re, Emoji: raw[idx+1:]}, nil
}
