package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(base))
	assert.Equal(t, ExitCommandError, GetExitCode(usageErrorf("bad flag %q", "x")))

	wrapped := fmt.Errorf("outer: %w", withExitCode(ExitCommandError, base))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "outer: boom", wrapped.Error())

	assert.NoError(t, withExitCode(ExitFailure, nil))
}

func TestFormatterErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	err := f.Error(ExitFailure, errors.New("a -> b failed"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, `{"status":"error","error":{"message":"a -> b failed"}}`+"\n", buf.String())
}
