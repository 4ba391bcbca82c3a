package sqlrewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteLine(t *testing.T) {
	httpRule := []Rule{{From: "http://automattic.com", To: "https://automattic.com"}}

	type tc struct {
		name  string
		line  string
		rules []Rule
		want  string
	}

	tests := []tc{
		{
			name:  "length_repair",
			line:  `s:21:\"http://automattic.com\";`,
			rules: httpRule,
			want:  `s:22:\"https://automattic.com\";`,
		},
		{
			name:  "no_rules_is_identity",
			line:  `s:21:\"http://automattic.com\";`,
			rules: nil,
			want:  `s:21:\"http://automattic.com\";`,
		},
		{
			name:  "literal_only_line",
			line:  "INSERT INTO wp_options VALUES ('siteurl', 'http://automattic.com');",
			rules: httpRule,
			want:  "INSERT INTO wp_options VALUES ('siteurl', 'https://automattic.com');",
		},
		{
			name:  "literal_and_token_coexistence",
			line:  `('http://automattic.com', 's:21:\"http://automattic.com\";')`,
			rules: httpRule,
			want:  `('https://automattic.com', 's:22:\"https://automattic.com\";')`,
		},
		{
			name:  "multi_token_line",
			line:  `a:2:{i:0;s:21:\"http://automattic.com\";i:1;s:26:\"http://automattic.com/blog\";}`,
			rules: httpRule,
			want:  `a:2:{i:0;s:22:\"https://automattic.com\";i:1;s:27:\"https://automattic.com/blog\";}`,
		},
		{
			name:  "shrinking_replacement",
			line:  `s:26:\"http://automattic.com/blog\";`,
			rules: []Rule{{From: "http://automattic.com", To: "http://a.io"}},
			want:  `s:16:\"http://a.io/blog\";`,
		},
		{
			name:  "replacement_to_empty_deletes",
			line:  `s:26:\"http://automattic.com/blog\";`,
			rules: []Rule{{From: "http://automattic.com", To: ""}},
			want:  `s:5:\"/blog\";`,
		},
		{
			name:  "multibyte_length_counts_bytes",
			line:  `s:7:\"go club\";`,
			rules: []Rule{{From: "go", To: "🙂"}},
			want:  `s:9:\"🙂 club\";`,
		},
		{
			name:  "cascading_order_inside_token",
			line:  `s:1:\"A\";`,
			rules: []Rule{{From: "A", To: "B"}, {From: "B", To: "C"}},
			want:  `s:1:\"C\";`,
		},
		{
			name:  "cascading_order_in_literal",
			line:  "A",
			rules: []Rule{{From: "A", To: "B"}, {From: "B", To: "C"}},
			want:  "C",
		},
		{
			name:  "malformed_token_falls_back_to_literal",
			line:  `s:999:\"http://automattic.com\";`,
			rules: httpRule,
			want:  `s:999:\"https://automattic.com\";`,
		},
		{
			name:  "malformed_token_abandons_rest_of_line",
			line:  `s:999:\"short\"; s:21:\"http://automattic.com\";`,
			rules: httpRule,
			want:  `s:999:\"short\"; s:21:\"https://automattic.com\";`,
		},
		{
			name: "rule_matches_escaped_bytes_of_content",
			// the caller supplied a pre-escaped From, as the contract requires
			line:  `s:22:\"http:\/\/automattic.com\";`,
			rules: []Rule{{From: `http:\/\/automattic.com`, To: `https:\/\/automattic.com`}},
			want:  `s:23:\"https:\/\/automattic.com\";`,
		},
		{
			name:  "escaped_quote_in_content_survives",
			line:  `s:8:\"say \"hi\"\";`,
			rules: []Rule{{From: "hi", To: "hello"}},
			want:  `s:11:\"say \"hello\"\";`,
		},
		{
			name:  "token_untouched_when_rules_miss",
			line:  `s:3:\"foo\";`,
			rules: []Rule{{From: "zzz", To: "yyy"}},
			want:  `s:3:\"foo\";`,
		},
		{
			name:  "trailing_newline_preserved",
			line:  `s:3:\"foo\";` + "\n",
			rules: []Rule{{From: "foo", To: "quux"}},
			want:  `s:4:\"quux\";` + "\n",
		},
		{
			name:  "empty_line",
			line:  "",
			rules: httpRule,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RewriteLine(tt.line, tt.rules))
		})
	}
}

// RewriteLine must be idempotent once the From values no longer occur: a second
// pass over its own output changes nothing.
func TestRewriteLineIdempotent(t *testing.T) {
	rules := []Rule{{From: "http://automattic.com", To: "https://automattic.com"}}

	lines := []string{
		`s:21:\"http://automattic.com\";`,
		`('http://automattic.com', 's:21:\"http://automattic.com\";')`,
		`a:2:{i:0;s:21:\"http://automattic.com\";i:1;s:26:\"http://automattic.com/blog\";}`,
	}

	for _, line := range lines {
		once := RewriteLine(line, rules)
		twice := RewriteLine(once, rules)
		require.Equal(t, once, twice, "second pass over %q must be a no-op", line)
	}
}
