package mover

import (
	"strings"

	"github.com/AlextheYounga/movepress-sub000/sqlrewrite"
	"github.com/AlextheYounga/movepress-sub000/util"
)

// DeriveRules builds the ordered replacement rules for moving a site from src to
// dst: vhost first, then wordpress path.
//
// The rewriter matches rules against the dump's escaped bytes, including inside
// serialized tokens, and infers nothing (see [sqlrewrite.Rule]). Values that went
// through JSON encoding store URLs with `\/` instead of `/`; when such a value
// then sits inside a serialized string, the dump doubles the backslash and the
// spelling becomes `\\/`. So for every pair whose From contains a slash two
// escaped variants are appended after the plain one: `\/` then `\\/`. Order
// matters: the plain rule must run first, and each escaped variant only matches
// spellings the previous rules left untouched.
func DeriveRules(src, dst util.Environment) []sqlrewrite.Rule {
	rules := make([]sqlrewrite.Rule, 0, 6)

	for _, pair := range [][2]string{
		{src.Vhost, dst.Vhost},
		{src.WordpressPath, dst.WordpressPath},
	} {
		from, to := pair[0], pair[1]
		if from == "" || from == to {
			continue
		}

		rules = append(rules, sqlrewrite.Rule{From: from, To: to})

		if strings.Contains(from, "/") {
			rules = append(rules,
				sqlrewrite.Rule{
					From: strings.ReplaceAll(from, "/", `\/`),
					To:   strings.ReplaceAll(to, "/", `\/`),
				},
				sqlrewrite.Rule{
					From: strings.ReplaceAll(from, "/", `\\/`),
					To:   strings.ReplaceAll(to, "/", `\\/`),
				},
			)
		}
	}

	return rules
}
