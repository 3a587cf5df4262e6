package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxberg/internal/compare"
	"github.com/rgehrsitz/taxberg/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the input against household changes",
		Long: `Compare the tax on an input file with the same input after one or more
changes. Each --with entry is a template name or a transform spec.

Examples:
  taxberg compare input.yaml --with raise_10pct,married
  taxberg compare input.yaml --with family --format csv
  taxberg compare input.yaml --with "adjust_salary:percent=5"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			withStr, _ := cmd.Flags().GetString("with")
			alternatives := transform.ParseTemplateList(withStr)
			if len(alternatives) == 0 {
				return fmt.Errorf("--with is required (see 'taxberg templates')")
			}
			baseName, _ := cmd.Flags().GetString("base")
			outputFormat, _ := cmd.Flags().GetString("format")

			in, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), in, compare.CompareOptions{
				BaseScenarioName: baseName,
				Alternatives:     alternatives,
				InputPath:        args[0],
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}

			var out string
			switch outputFormat {
			case "table":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			default:
				return fmt.Errorf("unknown format %q (available: table, compact, csv, json)", outputFormat)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("with", "", "Comma-separated templates or transform specs to compare (required)")
	cmd.Flags().String("base", "current", "Label for the unmodified input")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}
