package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rgehrsitz/taxberg/internal/calculation"
	"github.com/rgehrsitz/taxberg/internal/domain"
	"github.com/rgehrsitz/taxberg/internal/rules"
	"github.com/shopspring/decimal"
)

// Prints a year's bracket and wealth tables, then a salary sweep around each
// bracket threshold so jumps in tax or net pay are easy to spot.
func main() {
	year := 0
	if len(os.Args) > 1 {
		y, err := strconv.Atoi(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "usage: print_schedule [year]\n")
			os.Exit(1)
		}
		year = y
	}

	r, err := rules.ForYear(year)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Rules for %d (%s)\n\n", r.Metadata.TaxYear, r.Metadata.Description)
	printBrackets("Bracket tax", r.BracketTax)
	for _, c := range r.Wealth {
		printBrackets("Wealth tax, "+c.Name, c.Brackets)
	}

	ce := calculation.NewCalculationEngineWithRules(r)
	one := decimal.NewFromInt(1)

	fmt.Println("Salary sweep")
	fmt.Printf("%12s %12s %12s %8s %8s\n", "salary", "total tax", "net pay", "avg %", "marg %")
	for _, b := range r.BracketTax {
		if b.UpTo == nil {
			continue
		}
		for _, salary := range []decimal.Decimal{b.UpTo.Sub(one), *b.UpTo, b.UpTo.Add(one)} {
			in := domain.NewTaxInput()
			in.Income.Salary = salary
			bd, err := ce.ComputeBreakdown(in)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("%12s %12s %12s %8s %8s\n",
				salary.StringFixed(0), bd.TotalTax.StringFixed(2), bd.NetPay.StringFixed(2),
				bd.AverageTaxRate.StringFixed(2), bd.MarginalTaxRate.StringFixed(1))
		}
	}
}

func printBrackets(title string, brackets []domain.Bracket) {
	fmt.Println(title)
	lower := decimal.Zero
	for _, b := range brackets {
		rate := b.Rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
		if b.UpTo == nil {
			fmt.Printf("  %12s and up      %s\n", lower.StringFixed(0), rate)
			continue
		}
		fmt.Printf("  %12s - %-12s %s\n", lower.StringFixed(0), b.UpTo.StringFixed(0), rate)
		lower = *b.UpTo
	}
	fmt.Println()
}
