package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/tangent/internal/autodiff"
	"github.com/born-ml/tangent/internal/chainfile"
	"github.com/born-ml/tangent/internal/scalar"
	"github.com/born-ml/tangent/internal/tensor"
)

// ChainOptions holds flags shared by grad and vjp.
type ChainOptions struct {
	ChainPath string
	Input     string
	Seed      string
	Scalar    string
}

func (o *ChainOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.ChainPath, "chain", "", "path to a YAML chain file (required)")
	cmd.Flags().StringVar(&o.Input, "x", "", "comma-separated input; defaults to the file's input")
	cmd.Flags().StringVar(&o.Scalar, "scalar", "float64", "scalar type (float64|float32|decimal)")
	_ = cmd.MarkFlagRequired("chain")
}

// ChainResult is the output of grad and vjp.
type ChainResult struct {
	Chain    string   `json:"chain"`
	Scalar   string   `json:"scalar"`
	Value    []string `json:"value"`
	Shape    []int    `json:"shape"`
	Gradient []string `json:"gradient"`

	label string
}

// Fields implements texter.
func (r ChainResult) Fields() []Field {
	value := "[" + joinSpace(r.Value) + "]"
	if len(r.Shape) == 0 && len(r.Value) == 1 {
		value = r.Value[0]
	}
	return []Field{
		{"chain", r.Chain},
		{"scalar", r.Scalar},
		{"value", value},
		{r.label, "[" + joinSpace(r.Gradient) + "]"},
	}
}

// NewGradCommand creates the grad command.
func NewGradCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChainOptions{}
	cmd := &cobra.Command{
		Use:   "grad",
		Short: "Evaluate a scalar-valued chain and its gradient",
		Long: `Run a chain file forward, record one pullback per step, compose them in
reverse and apply the result to the multiplicative identity.

The chain's output must be a single element.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(rootOpts, opts, cmd, false)
		},
	}
	opts.bind(cmd)
	return cmd
}

// NewVJPCommand creates the vjp command.
func NewVJPCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChainOptions{}
	cmd := &cobra.Command{
		Use:   "vjp",
		Short: "Evaluate a chain and one vector-Jacobian product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(rootOpts, opts, cmd, true)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "comma-separated cotangent with the output's length (required)")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}

func runChain(rootOpts *RootOptions, opts *ChainOptions, cmd *cobra.Command, vjp bool) error {
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	if !isValidScalar(opts.Scalar) {
		return usageErrorf("invalid scalar %q: must be one of %v", opts.Scalar, ValidScalars)
	}

	file, err := chainfile.Load(opts.ChainPath)
	if err != nil {
		return formatter.Error(ExitCommandError, err)
	}
	rootOpts.Logger().Debug("chain loaded",
		"path", opts.ChainPath,
		"name", file.Name,
		"steps", len(file.Steps),
	)

	var result ChainResult
	switch opts.Scalar {
	case "float32":
		result, err = evalChain(rootOpts, float32Numeric, file, opts, vjp)
	case "decimal":
		result, err = evalChain(rootOpts, decimalNumeric, file, opts, vjp)
	default:
		result, err = evalChain(rootOpts, float64Numeric, file, opts, vjp)
	}
	if err != nil {
		return formatter.Error(GetExitCode(err), err)
	}
	return formatter.Success(result)
}

func evalChain[T scalar.Analytic[T]](
	rootOpts *RootOptions,
	num numeric[T],
	file *chainfile.File,
	opts *ChainOptions,
	vjp bool,
) (ChainResult, error) {
	var (
		input []T
		err   error
	)
	if opts.Input != "" {
		input, err = num.parseList(opts.Input)
	} else {
		input, err = num.fromFloats(file.Input)
	}
	if err != nil {
		return ChainResult{}, withExitCode(ExitCommandError, fmt.Errorf("input: %w", err))
	}
	if len(input) == 0 {
		return ChainResult{}, usageErrorf("no input: pass --x or set input in the chain file")
	}

	chain := file.Chain()
	engine := autodiff.New[T](nil, autodiff.WithLogger(rootOpts.Logger()))
	x := tensor.Vector(input...)

	result := ChainResult{Chain: chain.String(), Scalar: num.name, label: "gradient"}

	if !vjp {
		value, grad, err := engine.ValueAndGradient(chain, x)
		if err != nil {
			return ChainResult{}, err
		}
		result.Value = []string{num.format(value)}
		result.Shape = []int{}
		result.Gradient = formatAll(num, grad.Data())
		return result, nil
	}

	seedValues, err := num.parseList(opts.Seed)
	if err != nil {
		return ChainResult{}, withExitCode(ExitCommandError, fmt.Errorf("seed: %w", err))
	}
	y, row, err := engine.VJPFlat(chain, x, seedValues)
	if errors.Is(err, autodiff.ErrSeedShape) {
		return ChainResult{}, withExitCode(ExitCommandError, fmt.Errorf("seed: %w", err))
	}
	if err != nil {
		return ChainResult{}, err
	}

	result.label = "vjp"
	result.Value = formatAll(num, y.Data())
	result.Shape = y.Shape()
	result.Gradient = formatAll(num, row.Data())
	return result, nil
}

func formatAll[T any](num numeric[T], values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = num.format(v)
	}
	return out
}

func joinSpace(values []string) string {
	return strings.Join(values, " ")
}
