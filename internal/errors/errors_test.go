package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrRPC,
		ErrWallet,
		ErrRender,
		ErrInput,
		ErrSSH,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Coin 'LTC' has no utxo_value",
			suggestion: "Set coins.LTC.utxo_value in .ntxmon.yaml",
		},
		{
			name:       "rpc error",
			code:       ErrRPC,
			message:    "listunspent failed",
			suggestion: "Is the daemon running?",
		},
		{
			name:       "render error",
			code:       ErrRender,
			message:    "Row has 3 cells, table has 11 columns",
			suggestion: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrConfig, "Invalid configuration", "Check .ntxmon.yaml syntax"),
			expectedParts: []string{"✗", "Invalid configuration", "Check .ntxmon.yaml syntax"},
		},
		{
			name:          "error with cause",
			err:           WrapWithCode(fmt.Errorf("connection refused"), ErrRPC, "getbalance failed", ""),
			expectedParts: []string{"getbalance failed", "connection refused"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrInput, "stdin closed", ""),
			expectedParts: []string{"stdin closed"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestError_Layout(t *testing.T) {
	err := WrapWithCode(fmt.Errorf("EOF"), ErrRPC, "getbalance failed", "Is komodod running?")
	assert.Equal(t, "✗ getbalance failed\n\n  EOF\n\n  Is komodod running?\n", err.Error())
	assert.Equal(t, "✗ bad\n", New(ErrConfig, "bad", "").Error())
}

func TestShort(t *testing.T) {
	assert.Equal(t, "getbalance failed", New(ErrRPC, "getbalance failed", "hint").Short())

	wrapped := WrapWithCode(errors.New("EOF"), ErrRPC, "getbalance failed", "hint")
	assert.Equal(t, "getbalance failed: EOF", wrapped.Short())
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrWallet, "Can't stat wallet.dat", "Check coins.KMD.wallet")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrWallet, wrapped.Code)
	assert.Equal(t, "Can't stat wallet.dat", wrapped.Message)
	assert.Equal(t, "Check coins.KMD.wallet", wrapped.Suggestion)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorsIsAndAs(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := WrapWithCode(cause, ErrSSH, "Tunnel failed", "")

	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, cause, wrapped.Unwrap())

	outer := fmt.Errorf("collect KMD: %w", wrapped)
	var nmErr *Error
	require.True(t, errors.As(outer, &nmErr))
	assert.Equal(t, ErrSSH, nmErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "bad", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrRPC))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
	assert.True(t, IsCode(fmt.Errorf("wrapped: %w", err), ErrConfig))
}
