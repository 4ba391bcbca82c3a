// Package sqlrewrite performs literal substring replacement across a SQL dump while
// repairing the length prefixes of PHP serialized string tokens (`s:N:\"...\";`)
// that a naive find/replace would corrupt whenever the replacement text has a
// different byte length than the original.
//
// The engine understands no SQL. It streams the dump line by line, treats anything
// that is not a serialized string token as plain text, and holds at most one line
// in memory at a time. It is a pure function over byte streams: no package state,
// and independent rewrites are safe to run concurrently.
package sqlrewrite

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// RewriteFile streams the dump at inPath through the rule set into outPath.
//
// Rules are normalized first (empty-From rules are dropped). With no effective
// rules left there is nothing to rewrite: if inPath and outPath are the same file
// the call is a true no-op, otherwise the input is copied byte for byte.
//
// With effective rules the paths must differ; the rewriter streams and does no
// temp-file swap, so an in-place rewrite is rejected with a [ConfigError] before
// any file is touched. Any I/O failure aborts the whole rewrite with the offending
// path in the error; the output must not be imported after a failure, it is at
// best a valid prefix of the full rewrite.
func RewriteFile(inPath, outPath string, rules []Rule) error {
	rules = NormalizeRules(rules)

	if len(rules) == 0 {
		if inPath == outPath {
			return nil
		}
		return copyFile(inPath, outPath)
	}

	if inPath == outPath {
		return newSamePathRewriteError(inPath)
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("cannot open dump %q: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create rewritten dump %q: %w", outPath, err)
	}

	if err = rewrite(in, out, rules); err != nil {
		out.Close()
		return fmt.Errorf("rewriting %q into %q: %w", inPath, outPath, err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("cannot finalize rewritten dump %q: %w", outPath, err)
	}

	return nil
}

// rewrite is the streaming loop: one line in, one rewritten line out. A final
// unterminated chunk counts as one more line.
func rewrite(in io.Reader, out io.Writer, rules []Rule) error {
	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)

	for {
		line, err := r.ReadString('\n')

		if len(line) > 0 {
			if _, werr := w.WriteString(RewriteLine(line, rules)); werr != nil {
				return werr
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	return w.Flush()
}

func copyFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("cannot open dump %q: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create dump copy %q: %w", outPath, err)
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %q into %q: %w", inPath, outPath, err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("cannot finalize dump copy %q: %w", outPath, err)
	}

	return nil
}
