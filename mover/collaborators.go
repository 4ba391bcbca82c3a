package mover

import (
	"context"

	"github.com/AlextheYounga/movepress-sub000/util"
)

//go:generate mockgen -package mockmover -destination mock/mover.go github.com/AlextheYounga/movepress-sub000/mover Runner,Exporter,Importer,Backupper

// The dump rewriter treats exporting, importing and backing up as external
// collaborators. These interfaces are the whole contract: the engine only ever
// sees a decompressed dump file on disk, produced before and consumed after a
// rewrite, never during one.

// Exporter produces a plain-text SQL dump of an environment's database at outPath.
// Any transfer compression happens inside the export and is undone before the
// file lands on disk.
type Exporter interface {
	Export(ctx context.Context, env util.Environment, outPath string) error
}

// Importer loads a rewritten dump into an environment's database. It must only be
// called after a successful rewrite; a partial rewrite output is never importable.
type Importer interface {
	Import(ctx context.Context, env util.Environment, dumpPath string) error
}

// Backupper snapshots an environment's database into dir before an import and
// returns the snapshot path.
type Backupper interface {
	Backup(ctx context.Context, env util.Environment, dir string) (string, error)
}
