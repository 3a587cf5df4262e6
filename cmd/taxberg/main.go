package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/config"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/logging"
	"github.com/rgehrsitz/taxberg/internal/output"
	"github.com/rgehrsitz/taxberg/internal/transform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "taxberg",
		Short:        "Norwegian income and wealth tax estimator",
		Long:         "Estimate Norwegian income and wealth tax from a YAML or JSON input file, compare household changes and find break-even salaries.",
		SilenceUsage: true,
	}
	root.PersistentFlags().Int("year", 0, "Income year whose rules to apply (default: the input's tax_year or the latest year)")
	root.PersistentFlags().Bool("debug", false, "Log every calculation step to stderr")

	root.AddCommand(
		calculateCmd(),
		annotateCmd(),
		validateCmd(),
		compareCmd(),
		breakEvenCmd(),
		templatesCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxberg %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// loadInput reads and validates an input file, applying --year
func loadInput(cmd *cobra.Command, path string) (*domain.TaxInput, error) {
	in, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if year, _ := cmd.Flags().GetInt("year"); year != 0 {
		in.TaxYear = year
	}
	return in, nil
}

// newEngine returns a calculation engine, logging through zap when --debug is set
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger, err := logging.New(true, string(logging.DebugLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		engine.SetLogger(logger.Sugar())
		engine.Debug = true
	}
	return engine, nil
}

// formatChoices lists the report formats and their aliases for help and errors
func formatChoices() string {
	return strings.Join(output.AvailableFormatterNames(), ", ") +
		"; aliases: " + strings.Join(output.AvailableFormatAliases(), ", ")
}

// compute annualizes the input and returns it with its breakdown
func compute(cmd *cobra.Command, path string) (domain.TaxInput, domain.TaxBreakdown, error) {
	in, err := loadInput(cmd, path)
	if err != nil {
		return domain.TaxInput{}, domain.TaxBreakdown{}, err
	}
	engine, err := newEngine(cmd)
	if err != nil {
		return domain.TaxInput{}, domain.TaxBreakdown{}, err
	}
	annual := calculation.Annualize(*in)
	b, err := engine.ComputeBreakdown(annual)
	if err != nil {
		return domain.TaxInput{}, domain.TaxBreakdown{}, err
	}
	return annual, b, nil
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the tax breakdown for an input file",
		Long: `Calculate income and wealth tax for one input file. Amounts in the file are
read in its pay period and reported per year.

Examples:
  taxberg calculate input.yaml
  taxberg calculate input.yaml --format json
  taxberg calculate input.yaml --format html --output report.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown format %q (available: %s)", outputFormat, formatChoices())
			}

			annual, b, err := compute(cmd, args[0])
			if err != nil {
				return err
			}

			data, err := f.Format(output.NewReport(annual, b))
			if err != nil {
				return err
			}

			if outputFile, _ := cmd.Flags().GetString("output"); outputFile != "" {
				if err := os.WriteFile(outputFile, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputFile, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputFile)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+formatChoices()+")")
	cmd.Flags().StringP("output", "o", "", "Write the report to a file instead of stdout")
	return cmd
}

func annotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "annotate [input-file]",
		Short: "Print the input as YAML with every derived field filled in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			annual, b, err := compute(cmd, args[0])
			if err != nil {
				return err
			}
			annotated := calculation.Annotate(annual, b)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(&annotated); err != nil {
				return fmt.Errorf("failed to encode input: %w", err)
			}
			return enc.Close()
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadInput(cmd, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
			return nil
		},
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in comparison templates and transforms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintln(out, "\nTransforms (use as name:key=value,...):")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}
