// Package mover orchestrates a WordPress move between two environments: dump the
// source database, rewrite the dump with serialization-aware replacements, back
// up the destination, import, and rsync the content folders. All heavy lifting is
// delegated to external binaries through [Runner] and to the rewriter in
// package sqlrewrite.
package mover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlextheYounga/movepress-sub000/sqlrewrite"
	"github.com/AlextheYounga/movepress-sub000/util"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// contentFolders are the wp-content subtrees synced between environments.
var contentFolders = []string{
	"wp-content/uploads",
	"wp-content/themes",
	"wp-content/plugins",
	"wp-content/mu-plugins",
	"wp-content/languages",
}

// Mover moves a WordPress site between the two environments of a movefile.
type Mover struct {
	config   util.Config
	runner   Runner
	exporter Exporter
	importer Importer
	backup   Backupper

	// WorkDir is where intermediate dump files are written. Empty means a fresh
	// per-move temp dir, removed when the move finishes; concurrent invocations
	// must never share dump paths, or one site's dump gets imported as another's.
	WorkDir string

	// BackupDir is where destination snapshots are kept.
	BackupDir string
}

// New wires a Mover with the default exec-backed collaborators.
func New(config util.Config, runner Runner) *Mover {
	exporter := NewMySQLExporter(runner)

	return &Mover{
		config:    config,
		runner:    runner,
		exporter:  exporter,
		importer:  NewMySQLImporter(runner),
		backup:    NewDumpBackupper(exporter),
		BackupDir: "backups",
	}
}

// NewWithCollaborators wires a Mover with explicit collaborators. Tests use it to
// substitute mocks; New is this with the exec-backed defaults.
func NewWithCollaborators(
	config util.Config,
	runner Runner,
	exporter Exporter,
	importer Importer,
	backup Backupper,
) *Mover {
	m := New(config, runner)
	m.exporter = exporter
	m.importer = importer
	m.backup = backup
	return m
}

// Push moves the site from the local environment to the remote one.
func (m *Mover) Push(ctx context.Context) error {
	return m.move(ctx, m.config.Local, m.config.Remote)
}

// Pull moves the site from the remote environment to the local one.
func (m *Mover) Pull(ctx context.Context) error {
	return m.move(ctx, m.config.Remote, m.config.Local)
}

func (m *Mover) move(ctx context.Context, src, dst util.Environment) error {
	if err := m.moveDatabase(ctx, src, dst); err != nil {
		return err
	}
	return m.syncFolders(ctx, src, dst)
}

// moveDatabase runs the db pipeline strictly in order: export source → rewrite →
// back up destination → import. Import never runs unless the rewrite succeeded.
func (m *Mover) moveDatabase(ctx context.Context, src, dst util.Environment) error {
	// a bad movefile must fail before any external command runs
	extraRules, err := sqlrewrite.PairRules(m.config.Search, m.config.Replace)
	if err != nil {
		return err
	}

	workDir := m.WorkDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "movepress-")
		if err != nil {
			return fmt.Errorf("cannot create work dir: %w", err)
		}
		defer os.RemoveAll(dir)
		workDir = dir
	} else if err := os.MkdirAll(workDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %q: %w", workDir, err)
	}

	dumpPath := filepath.Join(workDir, "dump.sql")
	rewrittenPath := filepath.Join(workDir, "dump_rewritten.sql")

	log.Info().Str("database", src.DB.Name).Msg("exporting source database")
	if err := m.exporter.Export(ctx, src, dumpPath); err != nil {
		return err
	}

	rules := append(DeriveRules(src, dst), extraRules...)

	log.Info().Int("rules", len(rules)).Msg("rewriting dump")
	if err := sqlrewrite.RewriteFile(dumpPath, rewrittenPath, rules); err != nil {
		return err
	}

	log.Info().Str("database", dst.DB.Name).Msg("backing up destination database")
	backupPath, err := m.backup.Backup(ctx, dst, m.BackupDir)
	if err != nil {
		return err
	}
	log.Info().Str("backup", backupPath).Msg("destination snapshot written")

	log.Info().Str("database", dst.DB.Name).Msg("importing rewritten dump")
	return m.importer.Import(ctx, dst, rewrittenPath)
}

// syncFolders rsyncs the content folders concurrently. The folders are disjoint
// subtrees, so the syncs are independent; the first failure cancels the rest.
func (m *Mover) syncFolders(ctx context.Context, src, dst util.Environment) error {
	waitGroup, ctx := errgroup.WithContext(ctx)

	for _, folder := range contentFolders {
		args := rsyncArgs(
			filepath.Join(src.WordpressPath, folder),
			filepath.Join(dst.WordpressPath, folder),
			src.SSH,
			dst.SSH,
			dst.Exclude,
		)

		folder := folder
		waitGroup.Go(func() error {
			log.Info().Str("folder", folder).Msg("syncing")

			if err := m.runner.Run(ctx, nil, nil, "rsync", args...); err != nil {
				return fmt.Errorf("syncing %s: %w", folder, err)
			}

			return nil
		})
	}

	return waitGroup.Wait()
}
