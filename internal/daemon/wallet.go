package daemon

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rileyhilliard/ntxmon/internal/errors"
)

// LocalWallet sizes a wallet file on this machine.
type LocalWallet struct {
	Path string
}

// Size stats the wallet file.
func (w LocalWallet) Size(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := os.Stat(w.Path)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrWallet,
			fmt.Sprintf("Can't stat wallet %s", w.Path),
			"Check the coin's wallet path in .ntxmon.yaml")
	}
	return info.Size(), nil
}

// Executor runs a shell command on a remote host.
type Executor interface {
	Exec(cmd string) (stdout, stderr []byte, exitCode int, err error)
}

// RemoteWallet sizes a wallet file over SSH with stat(1).
type RemoteWallet struct {
	Path string
	Exec Executor
}

// Size runs stat on the remote host. GNU and BSD stat flags are both tried.
func (w RemoteWallet) Size(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cmd := fmt.Sprintf("stat -c %%s %s 2>/dev/null || stat -f %%z %s", shellPath(w.Path), shellPath(w.Path))
	stdout, stderr, code, err := w.Exec.Exec(cmd)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrWallet,
			fmt.Sprintf("Can't stat remote wallet %s", w.Path),
			"Check the SSH connection for this coin")
	}
	if code != 0 {
		return 0, errors.New(errors.ErrWallet,
			fmt.Sprintf("Can't stat remote wallet %s: %s", w.Path, strings.TrimSpace(string(stderr))),
			"Check the coin's wallet path in .ntxmon.yaml")
	}
	size, err := strconv.ParseInt(strings.TrimSpace(string(stdout)), 10, 64)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrWallet,
			fmt.Sprintf("Unexpected stat output for %s", w.Path),
			"")
	}
	return size, nil
}

// shellPath single-quotes a path, leaving a leading ~/ outside the quotes so
// the remote shell still expands it.
func shellPath(p string) string {
	prefix := ""
	if strings.HasPrefix(p, "~/") {
		prefix, p = "~/", p[2:]
	}
	return prefix + "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}
