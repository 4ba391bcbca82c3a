package sqlrewrite

import "strings"

// Rule defines a single literal substring replacement: every occurrence of From
// becomes To. From and To are byte strings; no pattern syntax is involved.
//
// Rules are matched against the dump text as written, including inside serialized
// string tokens, where the content is stored in its backslash-escaped form. A caller
// whose From/To values need escaping to match there (e.g. they contain '/') must
// supply pre-escaped variants itself. See [mover.DeriveRules] for how movepress does it.
type Rule struct {
	From string
	To   string
}

// PairRules zips parallel search/replacement lists into Rules, preserving order.
// A search value without a replacement deletes its matches (To is empty).
// A replacement without a search value has nothing to apply to and is a
// configuration mistake, reported as [ConfigError] with [IssueUnpairedReplacement].
func PairRules(searches, replacements []string) ([]Rule, error) {
	if len(replacements) > len(searches) {
		return nil, newUnpairedReplacementError(len(searches), len(replacements))
	}

	rules := make([]Rule, len(searches))
	for i, from := range searches {
		rules[i].From = from
		if i < len(replacements) {
			rules[i].To = replacements[i]
		}
	}

	return rules, nil
}

// NormalizeRules drops rules with an empty From, which would otherwise match
// degenerately at every position. The relative order of the remaining rules is
// preserved: order is semantically significant, see [Cascade].
func NormalizeRules(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.From == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Cascade applies every rule to s in order, globally, each rule operating on the
// output of the previous one. The chaining is deliberate: if a later rule's From
// matches text introduced by an earlier rule's To, it matches and is replaced again.
// This is not a simultaneous multi-pattern substitution.
func Cascade(s string, rules []Rule) string {
	for _, r := range rules {
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	return s
}
