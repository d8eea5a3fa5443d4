package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/tangent/internal/autodiff/ops"
)

// Version is the CLI version, overridable with -ldflags.
var Version = "v0.1.0-dev"

// OpsResult lists the operations a chain file may use.
type OpsResult struct {
	Builtins  []string `json:"builtins"`
	Functions []string `json:"functions"`
}

// Fields implements texter.
func (r OpsResult) Fields() []Field {
	return []Field{
		{"chain operations", strings.Join(r.Builtins, ", ")},
		{"deriv functions", strings.Join(r.Functions, ", ")},
	}
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List built-in chain operations and deriv functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(OpsResult{
				Builtins:  ops.Builtins(),
				Functions: CatalogueNames(),
			})
		},
	}
}

// VersionResult is the output of version.
type VersionResult struct {
	Version string `json:"version"`
}

func (r VersionResult) String() string {
	return "tangent " + r.Version
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(VersionResult{Version: Version})
		},
	}
}
