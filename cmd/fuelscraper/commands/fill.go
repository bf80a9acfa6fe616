package commands

import (
	"fmt"
	"fuelscraper/internal/export"
	"fuelscraper/internal/fillcost"
	"fuelscraper/internal/report"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	fillQuantity *string
	fillUnit     *string
	fillTax      *string
)

func init() {
	fillQuantity = fillCmd.Flags().String("quantity", "", "The amount of fuel to fill.")
	fillUnit = fillCmd.Flags().String("unit", "l", "The unit of the quantity, l, gal (US) or ukgal.")
	fillTax = fillCmd.Flags().String("tax", "0", "The sales tax in percent.")
	fillCmd.MarkFlagRequired("quantity")
	rootCmd.AddCommand(fillCmd)
}

func parseFill() (fillcost.Fill, error) {
	quantity, err := decimal.NewFromString(*fillQuantity)
	if err != nil {
		return fillcost.Fill{}, fmt.Errorf("invalid --quantity %q: %w", *fillQuantity, err)
	}
	tax, err := decimal.NewFromString(*fillTax)
	if err != nil {
		return fillcost.Fill{}, fmt.Errorf("invalid --tax %q: %w", *fillTax, err)
	}
	unit, err := fillcost.ParseUnit(*fillUnit)
	if err != nil {
		return fillcost.Fill{}, err
	}
	return fillcost.Fill{Quantity: quantity, Unit: unit, TaxPercent: tax}, nil
}

var fillCmd = &cobra.Command{
	Use:   "fill <file.csv> --quantity <amount> [--unit <l|gal|ukgal>] [--tax <percent>]",
	Short: "Computes the cost of a fill up at every station of a saved file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fill, err := parseFill()
		if err != nil {
			return err
		}
		records, format, err := loadRecords(args[0])
		if err != nil {
			return err
		}

		lines, err := fillcost.Compute(records, fill)
		if err != nil {
			return err
		}

		path, err := writeFile("Total_Price_"+filepath.Base(args[0]), func(w io.Writer) error {
			return export.SaveFilled(w, lines, fill, format)
		})
		if err != nil {
			return err
		}
		report.Filled(os.Stdout, lines, fill)
		slog.Info("saved fill costs", "dollars", fillcost.QuotedInDollars(records), "path", path)
		return nil
	},
}
