package mover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlextheYounga/movepress-sub000/util"
)

// MySQLExporter dumps a database with the mysqldump client, over ssh when the
// environment is remote.
type MySQLExporter struct {
	runner Runner
}

func NewMySQLExporter(runner Runner) *MySQLExporter {
	return &MySQLExporter{runner: runner}
}

// Export writes a plain-text dump of env's database to outPath. A remote export
// is gzip-compressed on the remote side for the transfer and decompressed here,
// so the file at outPath is always decompressed text ready for the rewriter.
func (e *MySQLExporter) Export(ctx context.Context, env util.Environment, outPath string) error {
	if env.SSH == nil {
		return e.exportLocal(ctx, env, outPath)
	}
	return e.exportRemote(ctx, env, outPath)
}

func (e *MySQLExporter) exportLocal(ctx context.Context, env util.Environment, outPath string) error {
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create dump file %q: %w", outPath, err)
	}

	if err = e.runner.Run(ctx, nil, out, "mysqldump", mysqldumpArgs(env.DB)...); err != nil {
		out.Close()
		return fmt.Errorf("exporting %q: %w", env.DB.Name, err)
	}

	return out.Close()
}

func (e *MySQLExporter) exportRemote(ctx context.Context, env util.Environment, outPath string) error {
	compressed := filepath.Join(filepath.Dir(outPath), filepath.Base(outPath)+".gz")

	out, err := os.Create(compressed)
	if err != nil {
		return fmt.Errorf("cannot create dump file %q: %w", compressed, err)
	}

	remoteCmd := remoteCommandLine("mysqldump", mysqldumpArgs(env.DB)) + " | gzip -c"

	if err = e.runner.Run(ctx, nil, out, "ssh", sshArgs(*env.SSH, remoteCmd)...); err != nil {
		out.Close()
		return fmt.Errorf("exporting %q from %s: %w", env.DB.Name, env.SSH.Host, err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("cannot finalize dump file %q: %w", compressed, err)
	}

	if err = gunzipFile(compressed, outPath); err != nil {
		return err
	}

	return os.Remove(compressed)
}
