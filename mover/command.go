package mover

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AlextheYounga/movepress-sub000/util"
)

// Command builders. All of them are pure: they turn config into argv slices and
// never touch the system, which keeps them trivial to test against golden values.

// mysqldumpArgs builds the argument list for dumping an environment's database.
func mysqldumpArgs(db util.DBConfig) []string {
	args := []string{
		"--host=" + db.Host,
		"--user=" + db.User,
	}

	if db.Port != 0 {
		args = append(args, "--port="+strconv.Itoa(db.Port))
	}
	if db.Password != "" {
		args = append(args, "--password="+db.Password)
	}
	if db.Charset != "" {
		args = append(args, "--default-character-set="+db.Charset)
	}

	return append(args, db.Name)
}

// mysqlArgs builds the argument list for feeding a dump into an environment's database.
func mysqlArgs(db util.DBConfig) []string {
	args := []string{
		"--host=" + db.Host,
		"--user=" + db.User,
	}

	if db.Port != 0 {
		args = append(args, "--port="+strconv.Itoa(db.Port))
	}
	if db.Password != "" {
		args = append(args, "--password="+db.Password)
	}

	return append(args, db.Name)
}

// sshArgs wraps a remote command line into an ssh invocation.
func sshArgs(ssh util.SSHConfig, remoteCmd string) []string {
	args := []string{}

	if ssh.Port != 0 {
		args = append(args, "-p", strconv.Itoa(ssh.Port))
	}

	target := ssh.Host
	if ssh.User != "" {
		target = ssh.User + "@" + ssh.Host
	}

	return append(args, target, remoteCmd)
}

// sshTarget formats the user@host part used in rsync remote specs.
func sshTarget(ssh util.SSHConfig) string {
	if ssh.User != "" {
		return ssh.User + "@" + ssh.Host
	}
	return ssh.Host
}

// rsyncArgs builds the rsync invocation for one folder. src and dst are full
// paths; whichever side has an SSH config becomes the remote spec. exclude
// patterns come from the destination environment's movefile section.
func rsyncArgs(src, dst string, srcSSH, dstSSH *util.SSHConfig, exclude []string) []string {
	args := []string{"-az", "--delete"}

	ssh := srcSSH
	if ssh == nil {
		ssh = dstSSH
	}
	if ssh != nil && ssh.Port != 0 {
		args = append(args, "-e", fmt.Sprintf("ssh -p %d", ssh.Port))
	}

	for _, pattern := range exclude {
		args = append(args, "--exclude="+pattern)
	}

	if srcSSH != nil {
		src = sshTarget(*srcSSH) + ":" + src
	}
	if dstSSH != nil {
		dst = sshTarget(*dstSSH) + ":" + dst
	}

	return append(args, ensureTrailingSlash(src), ensureTrailingSlash(dst))
}

func ensureTrailingSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}

// remoteCommandLine joins an argv into a single shell line for the remote side of
// an ssh invocation. Arguments containing shell metacharacters are single-quoted.
func remoteCommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'`$\\|&;<>()*?[]#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
