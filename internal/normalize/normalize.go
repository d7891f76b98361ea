package normalize

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/orris-inc/subconv/internal/node"
)

// leadingEmojiPrefix is the approximate UTF-8 lead-byte block for the
// Unicode emoji ranges (spec §4.C step 2: "approximately the F0 9F
// UTF-8 prefix block").
const leadingEmojiPrefix = "\xf0\x9f"

// Apply runs the spec §4.C pipeline over nodes in order: rename, remove
// old emoji, add emoji, append proxy type, de-duplicate remarks, sort,
// filter. It never mutates its input; the returned slice holds clones.
func Apply(nodes []*node.Descriptor, rules *Rules) []*node.Descriptor {
	out := node.CloneAll(nodes)

	for _, n := range out {
		n.Remarks = applyRename(n.Remarks, rules.Rename)
	}

	if rules.RemoveEmoji {
		for _, n := range out {
			n.Remarks = removeLeadingEmoji(n.Remarks)
		}
	}

	for _, n := range out {
		n.Remarks = applyAddEmoji(n.Remarks, rules.AddEmoji)
	}

	if rules.AppendProxyType {
		for _, n := range out {
			prefix := "[" + n.LinkType.String() + "]"
			if !strings.HasPrefix(n.Remarks, prefix) {
				n.Remarks = prefix + n.Remarks
			}
		}
	}

	dedupeRemarks(out)

	if rules.SortFlag {
		sortByRemarks(out)
	}

	return filterByPattern(out, rules.Include, rules.Exclude)
}

// remarkCollator orders node names the way a human reading a proxy list
// would, including CJK remarks (a common case: node names frequently carry
// a Chinese region name alongside or instead of a flag emoji), rather than
// a plain byte-wise comparison that would scatter them by UTF-8 encoding.
var remarkCollator = collate.New(language.Und)

func sortByRemarks(nodes []*node.Descriptor) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return remarkCollator.CompareString(nodes[i].Remarks, nodes[j].Remarks) < 0
	})
}

func applyRename(remark string, rules []RenameRule) string {
	for _, rule := range rules {
		if rule.HasReplace {
			remark = rule.Pattern.ReplaceAllString(remark, rule.Replacement)
		} else {
			remark = rule.Pattern.ReplaceAllString(remark, "")
		}
	}
	return remark
}

// removeLeadingEmoji strips a single leading emoji code point, identified
// by its UTF-8 lead-byte prefix, and the space that commonly follows it.
func removeLeadingEmoji(remark string) string {
	if !strings.HasPrefix(remark, leadingEmojiPrefix) {
		return remark
	}
	runes := []rune(remark)
	if len(runes) == 0 {
		return remark
	}
	rest := string(runes[1:])
	return strings.TrimPrefix(rest, " ")
}

func applyAddEmoji(remark string, rules []EmojiRule) string {
	for _, rule := range rules {
		if rule.Pattern.MatchString(remark) {
			return rule.Emoji + " " + remark
		}
	}
	return remark
}

// dedupeRemarks appends "$" to each remark already seen, in place, so
// every remark in the list ends up unique (spec §4.C step 5).
func dedupeRemarks(nodes []*node.Descriptor) {
	seen := make(map[string]int, len(nodes))
	for _, n := range nodes {
		for seen[n.Remarks] > 0 {
			n.Remarks += "$"
		}
		seen[n.Remarks]++
	}
}

func filterByPattern(nodes []*node.Descriptor, include, exclude []*regexp.Regexp) []*node.Descriptor {
	filtered := make([]*node.Descriptor, 0, len(nodes))
	for _, n := range nodes {
		if len(include) > 0 && !matchesAny(n.Remarks, include) {
			continue
		}
		if matchesAny(n.Remarks, exclude) {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered
}

func matchesAny(remark string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(remark) {
			return true
		}
	}
	return false
}
