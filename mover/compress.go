package mover

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// gzip compression sits immediately around rewriter invocations, never inside
// them: the engine only ever sees decompressed text on disk.

func gzipFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", outPath, err)
	}

	zw := gzip.NewWriter(out)

	if _, err = io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		return fmt.Errorf("compressing %q: %w", inPath, err)
	}

	if err = zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("compressing %q: %w", inPath, err)
	}

	return out.Close()
}

func gunzipFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", inPath, err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("reading gzip header of %q: %w", inPath, err)
	}
	defer zr.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", outPath, err)
	}

	if _, err = io.Copy(out, zr); err != nil {
		out.Close()
		return fmt.Errorf("decompressing %q: %w", inPath, err)
	}

	return out.Close()
}
