package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/born-ml/tangent/internal/dual"
	"github.com/born-ml/tangent/internal/scalar"
)

// catalogue lists the forward-mode demo functions and their formulas.
var catalogue = map[string]string{
	"fike":  "exp(x)/sqrt(sin(x)^3 + cos(x)^3)",
	"mixed": "exp(x)*sin(x^2 + 3x)/(1 + x^2)^2",
	"power": "x^x",
	"abs":   "|x|",
	"relu":  "max(x, 0)",
	"step":  "0 if x < 0 else 1",
}

// CatalogueNames returns the names of the built-in forward-mode functions.
func CatalogueNames() []string {
	names := make([]string, 0, len(catalogue))
	for name := range catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// evalCatalogue evaluates the named function on a dual number.
func evalCatalogue[T scalar.Ordered[T]](name string, x dual.Number[T]) (dual.Number[T], error) {
	switch name {
	case "fike":
		den := dual.Sqrt(dual.PowReal(dual.Sin(x), 3).Add(dual.PowReal(dual.Cos(x), 3)))
		return dual.Exp(x).Div(den), nil
	case "mixed":
		x2 := dual.PowReal(x, 2)
		arg := x2.Add(x.FromFloat(3).Mul(x))
		return dual.Exp(x).Mul(dual.Sin(arg)).Div(dual.PowReal(x.One().Add(x2), 2)), nil
	case "power":
		return dual.Pow(x, x), nil
	case "abs":
		return dual.Abs(x), nil
	case "relu":
		return dual.ReLU(x), nil
	case "step":
		return dual.Step(x), nil
	}
	return dual.Number[T]{}, fmt.Errorf("unknown function %q (known: %v)", name, CatalogueNames())
}

// DerivOptions holds flags for the deriv command.
type DerivOptions struct {
	Function string
	At       string
	Scalar   string
}

// DerivResult is the output of deriv.
type DerivResult struct {
	Function   string `json:"function"`
	Formula    string `json:"formula"`
	Scalar     string `json:"scalar"`
	At         string `json:"at"`
	Value      string `json:"value"`
	Derivative string `json:"derivative"`
}

// Fields implements texter.
func (r DerivResult) Fields() []Field {
	return []Field{
		{"function", r.Function + "(x) = " + r.Formula},
		{"scalar", r.Scalar},
		{"x", r.At},
		{"value", r.Value},
		{"derivative", r.Derivative},
	}
}

// NewDerivCommand creates the deriv command.
func NewDerivCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DerivOptions{}
	cmd := &cobra.Command{
		Use:   "deriv",
		Short: "Evaluate a built-in function and its derivative with dual numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeriv(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().StringVar(&opts.Function, "fn", "mixed", fmt.Sprintf("function to evaluate %v", CatalogueNames()))
	cmd.Flags().StringVar(&opts.At, "at", "3", "point at which to evaluate")
	cmd.Flags().StringVar(&opts.Scalar, "scalar", "float64", "scalar type (float64|float32|decimal)")
	return cmd
}

func runDeriv(rootOpts *RootOptions, opts *DerivOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}

	var (
		result DerivResult
		err    error
	)
	switch opts.Scalar {
	case "float64":
		result, err = evalDeriv(float64Numeric, opts)
	case "float32":
		result, err = evalDeriv(float32Numeric, opts)
	case "decimal":
		result, err = evalDeriv(decimalNumeric, opts)
	default:
		return usageErrorf("invalid scalar %q: must be one of %v", opts.Scalar, ValidScalars)
	}
	if err != nil {
		return formatter.Error(ExitCommandError, err)
	}
	rootOpts.Logger().Debug("derivative evaluated", "fn", opts.Function, "scalar", opts.Scalar)
	return formatter.Success(result)
}

func evalDeriv[T scalar.Ordered[T]](num numeric[T], opts *DerivOptions) (DerivResult, error) {
	x, err := num.parse(opts.At)
	if err != nil {
		return DerivResult{}, fmt.Errorf("--at: %w", err)
	}
	y, err := evalCatalogue(opts.Function, dual.Variable(x))
	if err != nil {
		return DerivResult{}, err
	}
	return DerivResult{
		Function:   opts.Function,
		Formula:    catalogue[opts.Function],
		Scalar:     num.name,
		At:         num.format(x),
		Value:      num.format(y.Value),
		Derivative: num.format(y.Derivative),
	}, nil
}
