package sqlrewrite

import "fmt"

// ConfigError describes an error in the supplied replacement rules or paths.
// It is always raised before the rewrite touches any file.
type ConfigError struct {
	Issue Issue // Issue is the kind of the problem occured.
	Err   error // Err contains the original error created during rule preparation.
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%d: %v", e.Issue, e.Err)
}

// NewConfigError is a factory function for creating a *ConfigError.
func NewConfigError(issue Issue, err error) *ConfigError {
	return &ConfigError{
		Issue: issue,
		Err:   err,
	}
}

func newUnpairedReplacementError(searches, replacements int) error {
	return NewConfigError(
		IssueUnpairedReplacement,
		fmt.Errorf("%d replacement values given for %d search values", replacements, searches),
	)
}

func newSamePathRewriteError(path string) error {
	return NewConfigError(
		IssueSamePathRewrite,
		fmt.Errorf("in-place rewrite of %q is not supported", path),
	)
}
