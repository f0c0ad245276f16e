// Package cli provides the command-line interface for the arc compiler.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-ml/arc/compile"
	"github.com/arc-ml/arc/internal/stats"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command. Flags bind to
// per-command locals, so independent instances never share state.
func NewRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:     "arc",
		Short:   "Arc - neural network model compiler",
		Long:    "Arc lowers ONNX models into a backend-agnostic IR and runs\ntarget-specific transformation passes over the result.",
		Version: Version,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(newCompileCmd(&verbose))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the compiler version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "arc %s\n", Version)
		},
	}
}

type compileOptions struct {
	target    string
	statsPath string
	dump      bool
	verbose   bool
}

func newCompileCmd(verbose *bool) *cobra.Command {
	var opts compileOptions
	cmd := &cobra.Command{
		Use:   "compile <model.onnx>",
		Short: "Lower a model and run the pass pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.verbose = *verbose
			return runCompile(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "target backend (\"ref\" or empty for generic IR)")
	cmd.Flags().StringVar(&opts.statsPath, "stats", "", "calibration/statistics JSON file")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the compute graph after all passes")
	return cmd
}

func runCompile(cmd *cobra.Command, path string, o compileOptions) error {
	opts := compile.Options{Logger: newLogger(o.verbose)}

	var store *stats.Statistics
	if o.statsPath != "" {
		var err error
		store, err = stats.Open(o.statsPath, stats.ReadOnly)
		if err != nil {
			return err
		}
	}

	switch o.target {
	case "":
	case "ref":
		opts.Backend = compile.RefBackend(store)
	default:
		return fmt.Errorf("unknown target %q", o.target)
	}

	result, err := compile.File(path, opts)
	if result != nil {
		for _, entry := range result.PassLog {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", entry.Pass, entry.Result)
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "compiled %q: %d nodes, %d values\n",
		result.Graph.Name(), result.Graph.NumNodes(), result.Graph.NumValues())
	if o.dump {
		fmt.Fprint(cmd.OutOrStdout(), result.Graph.Dump())
	}
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
