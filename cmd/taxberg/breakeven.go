package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxberg/internal/breakeven"
)

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the salary that gives a target net pay or tax",
		Long: `Solve for the annual gross salary that leaves a target net pay, or that
brings the total tax to a target. Everything else in the input stays fixed.

Examples:
  taxberg break-even input.yaml --net 450000
  taxberg break-even input.yaml --net 400000,500000,600000
  taxberg break-even input.yaml --tax 100000 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			netStr, _ := cmd.Flags().GetString("net")
			taxStr, _ := cmd.Flags().GetString("tax")
			outputFormat, _ := cmd.Flags().GetString("format")

			goal := breakeven.GoalMatchNetPay
			targetStr := netStr
			switch {
			case netStr != "" && taxStr != "":
				return fmt.Errorf("use either --net or --tax, not both")
			case taxStr != "":
				goal = breakeven.GoalMatchTotalTax
				targetStr = taxStr
			case netStr == "":
				return fmt.Errorf("--net or --tax is required")
			}

			targets, err := parseAmounts(targetStr)
			if err != nil {
				return err
			}

			constraints := breakeven.DefaultConstraints()
			if v, _ := cmd.Flags().GetString("min-salary"); v != "" {
				d, err := decimal.NewFromString(v)
				if err != nil {
					return fmt.Errorf("invalid --min-salary %q: %w", v, err)
				}
				constraints.MinSalary = &d
			}
			if v, _ := cmd.Flags().GetString("max-salary"); v != "" {
				d, err := decimal.NewFromString(v)
				if err != nil {
					return fmt.Errorf("invalid --max-salary %q: %w", v, err)
				}
				constraints.MaxSalary = &d
			}

			in, err := loadInput(cmd, args[0])
			if err != nil {
				return err
			}
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}

			results, err := breakeven.NewDefaultSolver(engine).SolveTargets(cmd.Context(), in, goal, targets, constraints)
			if err != nil {
				return fmt.Errorf("break-even failed: %w", err)
			}

			var out string
			switch outputFormat {
			case "table":
				if len(results) == 1 {
					out = (&breakeven.TableFormatter{}).Format(&results[0])
				} else {
					out = (&breakeven.TableFormatter{}).FormatTargets(results)
				}
			case "json":
				if len(results) == 1 {
					out, err = (&breakeven.JSONFormatter{Pretty: true}).Format(&results[0])
				} else {
					out, err = (&breakeven.JSONFormatter{Pretty: true}).FormatTargets(results)
				}
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (available: table, json)", outputFormat)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("net", "", "Target annual net pay, or a comma-separated list of targets")
	cmd.Flags().String("tax", "", "Target annual total tax, or a comma-separated list of targets")
	cmd.Flags().String("min-salary", "", "Lowest annual salary to consider")
	cmd.Flags().String("max-salary", "", "Highest annual salary to consider")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

// parseAmounts reads "450000, 500_000" into decimals
func parseAmounts(s string) ([]decimal.Decimal, error) {
	var amounts []decimal.Decimal
	for _, part := range strings.Split(s, ",") {
		part = strings.ReplaceAll(strings.TrimSpace(part), "_", "")
		if part == "" {
			continue
		}
		d, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", part, err)
		}
		amounts = append(amounts, d)
	}
	if len(amounts) == 0 {
		return nil, fmt.Errorf("no amounts in %q", s)
	}
	return amounts, nil
}
