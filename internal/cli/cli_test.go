package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tangent/internal/autodiff"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestGradText(t *testing.T) {
	out, _, err := execute(t, "grad", "--chain", filepath.Join("testdata", "invnorm.yaml"))
	require.NoError(t, err)
	golden(t).Assert(t, "grad_text", []byte(out))
}

func TestGradJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "grad", "--chain", filepath.Join("testdata", "invnorm.yaml"))
	require.NoError(t, err)
	golden(t).Assert(t, "grad_json", []byte(out))
}

func TestGradExplicitInputAndScalar(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "grad",
		"--chain", filepath.Join("testdata", "invnorm.yaml"),
		"--x", "0.7, 0.3",
		"--scalar", "decimal",
	)
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ChainResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "decimal", resp.Data.Scalar)
	require.Len(t, resp.Data.Gradient, 2)
	assert.Contains(t, resp.Data.Value[0], "3.717548064779")
	assert.Contains(t, resp.Data.Gradient[0], "-5.891320392405")
}

func TestGradFloat32(t *testing.T) {
	out, _, err := execute(t, "grad", "--chain", filepath.Join("testdata", "invnorm.yaml"), "--scalar", "float32")
	require.NoError(t, err)
	assert.Contains(t, out, "scalar:   float32")
	assert.Contains(t, out, "value:    3.71755")
}

func TestGradVerboseLogsToStderr(t *testing.T) {
	out, errOut, err := execute(t, "-v", "--format", "json", "grad", "--chain", filepath.Join("testdata", "invnorm.yaml"))
	require.NoError(t, err)
	assert.Contains(t, errOut, `msg="chain loaded"`)
	assert.Contains(t, errOut, `msg="forward step"`)
	assert.NotContains(t, out, "forward step")
}

func TestGradUnknownOperation(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "grad", "--chain", filepath.Join("testdata", "unknown.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error.Message, `unknown operation "softplus"`)
	assert.Nil(t, resp.Data)
}

func TestGradRejectsVectorOutput(t *testing.T) {
	_, _, err := execute(t, "grad", "--chain", filepath.Join("testdata", "sinsq.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scalar output")
}

func TestGradMissingChainFile(t *testing.T) {
	_, _, err := execute(t, "grad", "--chain", filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGradBadInput(t *testing.T) {
	_, _, err := execute(t, "grad", "--chain", filepath.Join("testdata", "invnorm.yaml"), "--x", "0.7,abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "element 1")
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "ops")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "grad", "--chain", filepath.Join("testdata", "invnorm.yaml"), "--scalar", "int8")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid scalar "int8"`)

	_, _, err = execute(t, "grad")
	assert.Error(t, err)
}

func TestVJP(t *testing.T) {
	out, _, err := execute(t, "vjp", "--chain", filepath.Join("testdata", "sinsq.yaml"), "--seed", "1,0")
	require.NoError(t, err)
	assert.Contains(t, out, "value:  [0.159318206614 0.991458348192]")
	assert.Contains(t, out, "vjp:    [0.789781826701 0]")
}

func TestVJPSeedLength(t *testing.T) {
	_, _, err := execute(t, "vjp", "--chain", filepath.Join("testdata", "sinsq.yaml"), "--seed", "1,0,0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, autodiff.ErrSeedShape)
}

func TestVJPScalarOutputAndReversePassLog(t *testing.T) {
	out, errOut, err := execute(t, "-v", "vjp", "--chain", filepath.Join("testdata", "invnorm.yaml"), "--seed", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "value:  3.71754806478")
	assert.Contains(t, out, "vjp:    [-11.7826407848 -5.04970319349]")
	assert.Contains(t, errOut, `msg="reverse pass complete" steps=5`)
}

func TestDerivFike(t *testing.T) {
	out, _, err := execute(t, "deriv", "--fn", "fike", "--at", "1.5")
	require.NoError(t, err)
	golden(t).Assert(t, "deriv_fike", []byte(out))
}

func TestDerivBranches(t *testing.T) {
	tests := []struct {
		fn, at     string
		value, der string
	}{
		{"relu", "-2", "0", "0"},
		{"relu", "3", "3", "1"},
		{"step", "3", "1", "0"},
		{"abs", "-2", "2", "-1"},
		{"power", "2", "4", "6.77258872224"},
	}
	for _, tt := range tests {
		t.Run(tt.fn+"@"+tt.at, func(t *testing.T) {
			out, _, err := execute(t, "--format", "json", "deriv", "--fn", tt.fn, "--at", tt.at)
			require.NoError(t, err)

			var resp struct {
				Data DerivResult `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, tt.value, resp.Data.Value)
			assert.Equal(t, tt.der, resp.Data.Derivative)
		})
	}
}

func TestDerivDecimal(t *testing.T) {
	out, _, err := execute(t, "deriv", "--fn", "mixed", "--at", "3", "--scalar", "decimal")
	require.NoError(t, err)
	assert.Contains(t, out, "value:      -0.150839820738")
	assert.Contains(t, out, "derivative: 1.22382137034")
}

func TestDerivUnknownFunction(t *testing.T) {
	_, _, err := execute(t, "deriv", "--fn", "gamma")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown function "gamma"`)
}

func TestOps(t *testing.T) {
	out, _, err := execute(t, "ops")
	require.NoError(t, err)
	golden(t).Assert(t, "ops_text", []byte(out))
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tangent "+Version+"\n", out)
}
