package mover

import (
	"context"
	"fmt"
	"os"

	"github.com/AlextheYounga/movepress-sub000/util"
)

// MySQLImporter feeds a dump into a database with the mysql client, over ssh when
// the environment is remote.
type MySQLImporter struct {
	runner Runner
}

func NewMySQLImporter(runner Runner) *MySQLImporter {
	return &MySQLImporter{runner: runner}
}

func (im *MySQLImporter) Import(ctx context.Context, env util.Environment, dumpPath string) error {
	in, err := os.Open(dumpPath)
	if err != nil {
		return fmt.Errorf("cannot open rewritten dump %q: %w", dumpPath, err)
	}
	defer in.Close()

	if env.SSH == nil {
		if err = im.runner.Run(ctx, in, nil, "mysql", mysqlArgs(env.DB)...); err != nil {
			return fmt.Errorf("importing into %q: %w", env.DB.Name, err)
		}
		return nil
	}

	remoteCmd := remoteCommandLine("mysql", mysqlArgs(env.DB))

	if err = im.runner.Run(ctx, in, nil, "ssh", sshArgs(*env.SSH, remoteCmd)...); err != nil {
		return fmt.Errorf("importing into %q on %s: %w", env.DB.Name, env.SSH.Host, err)
	}

	return nil
}
