package mover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AlextheYounga/movepress-sub000/util"
	"github.com/google/uuid"
)

// DumpBackupper snapshots a database into a gzip'd dump file before anything is
// imported into it. Snapshots never overwrite each other: the file name carries
// the database name, a timestamp and a uuid.
type DumpBackupper struct {
	exporter Exporter
}

func NewDumpBackupper(exporter Exporter) *DumpBackupper {
	return &DumpBackupper{exporter: exporter}
}

func (b *DumpBackupper) Backup(ctx context.Context, env util.Environment, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create backup dir %q: %w", dir, err)
	}

	name := fmt.Sprintf("backup_%s_%s_%s.sql",
		env.DB.Name,
		time.Now().UTC().Format("20060102T150405"),
		uuid.NewString(),
	)

	plain := filepath.Join(dir, name)
	if err := b.exporter.Export(ctx, env, plain); err != nil {
		return "", fmt.Errorf("backing up %q: %w", env.DB.Name, err)
	}

	compressed := plain + ".gz"
	if err := gzipFile(plain, compressed); err != nil {
		return "", err
	}

	if err := os.Remove(plain); err != nil {
		return "", fmt.Errorf("cannot remove uncompressed backup %q: %w", plain, err)
	}

	return compressed, nil
}
