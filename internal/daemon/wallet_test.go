package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/ntxmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalWallet_Size(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.dat")
	require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0600))

	size, err := LocalWallet{Path: path}.Size(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2048), size)
}

func TestLocalWallet_Missing(t *testing.T) {
	_, err := LocalWallet{Path: filepath.Join(t.TempDir(), "nope.dat")}.Size(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrWallet))
}

func TestLocalWallet_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LocalWallet{Path: "/"}.Size(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type fakeExec struct {
	stdout string
	stderr string
	code   int
	err    error
	cmds   []string
}

func (f *fakeExec) Exec(cmd string) ([]byte, []byte, int, error) {
	f.cmds = append(f.cmds, cmd)
	return []byte(f.stdout), []byte(f.stderr), f.code, f.err
}

func TestRemoteWallet_Size(t *testing.T) {
	tests := []struct {
		name    string
		exec    *fakeExec
		want    int64
		wantErr string
	}{
		{name: "ok", exec: &fakeExec{stdout: "3145728\n"}, want: 3145728},
		{name: "exec failure", exec: &fakeExec{err: fmt.Errorf("session closed"), code: -1}, wantErr: "Can't stat remote wallet"},
		{name: "non-zero exit", exec: &fakeExec{stderr: "No such file", code: 1}, wantErr: "No such file"},
		{name: "garbage output", exec: &fakeExec{stdout: "stat: huh"}, wantErr: "Unexpected stat output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := RemoteWallet{Path: "~/.komodo/wallet.dat", Exec: tt.exec}
			size, err := w.Size(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrWallet))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, size)
			require.Len(t, tt.exec.cmds, 1)
			assert.Contains(t, tt.exec.cmds[0], "stat -c %s ~/'.komodo/wallet.dat'")
		})
	}
}

func TestShellPath(t *testing.T) {
	assert.Equal(t, "'/data/wallet.dat'", shellPath("/data/wallet.dat"))
	assert.Equal(t, "~/'.komodo/wallet.dat'", shellPath("~/.komodo/wallet.dat"))
	assert.Equal(t, `'/it'\''s/w.dat'`, shellPath("/it's/w.dat"))
}
