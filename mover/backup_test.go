package mover

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	mockmover "github.com/AlextheYounga/movepress-sub000/mover/mock"
	"github.com/AlextheYounga/movepress-sub000/util"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBackupWritesCompressedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	exporter := mockmover.NewMockExporter(ctrl)

	env := util.Environment{
		DB: util.DBConfig{Name: "wp_prod", User: "wp", Host: "localhost"},
	}

	exporter.EXPECT().
		Export(gomock.Any(), env, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ util.Environment, outPath string) error {
			return os.WriteFile(outPath, []byte("-- snapshot\n"), 0o644)
		})

	dir := filepath.Join(t.TempDir(), "backups")
	backup := NewDumpBackupper(exporter)

	path, err := backup.Backup(context.Background(), env, dir)
	require.NoError(t, err)

	require.Equal(t, dir, filepath.Dir(path))
	require.Contains(t, filepath.Base(path), "backup_wp_prod_")
	require.True(t, filepath.Ext(path) == ".gz")

	// the snapshot decompresses back to the exported dump
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)

	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Equal(t, "-- snapshot\n", string(data))

	// the uncompressed intermediate is gone
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestBackupNamesNeverCollide(t *testing.T) {
	ctrl := gomock.NewController(t)
	exporter := mockmover.NewMockExporter(ctrl)

	env := util.Environment{DB: util.DBConfig{Name: "wp", User: "wp", Host: "localhost"}}

	exporter.EXPECT().
		Export(gomock.Any(), env, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ util.Environment, outPath string) error {
			return os.WriteFile(outPath, []byte("-- snapshot\n"), 0o644)
		}).
		Times(2)

	dir := t.TempDir()
	backup := NewDumpBackupper(exporter)

	first, err := backup.Backup(context.Background(), env, dir)
	require.NoError(t, err)

	second, err := backup.Backup(context.Background(), env, dir)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestBackupExportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	exporter := mockmover.NewMockExporter(ctrl)

	env := util.Environment{DB: util.DBConfig{Name: "wp", User: "wp", Host: "localhost"}}

	exporter.EXPECT().
		Export(gomock.Any(), env, gomock.Any()).
		Return(io.ErrUnexpectedEOF)

	_, err := NewDumpBackupper(exporter).Backup(context.Background(), env, t.TempDir())
	require.Error(t, err)
	require.ErrorContains(t, err, "backing up")
}
