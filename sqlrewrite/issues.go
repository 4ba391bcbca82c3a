package sqlrewrite

// Issue defines categories of configuration problems detected before any file I/O starts.
type Issue int

const (
	// IssueUnpairedReplacement occurs when a replacement value is supplied without a
	// corresponding search value, so the two lists cannot be zipped into [Rule] pairs.
	IssueUnpairedReplacement Issue = iota

	// IssueSamePathRewrite occurs when a rewrite with at least one effective [Rule] is
	// requested with the input and the output pointing at the same file. The rewriter
	// streams and does no temp-file swap, so an in-place rewrite would truncate its
	// own input.
	IssueSamePathRewrite
)
