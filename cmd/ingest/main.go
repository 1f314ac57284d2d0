package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/model"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/ocr"
	"github.com/FACorreiaa/statement-ingest/internal/domain/statement/service"
	"github.com/FACorreiaa/statement-ingest/pkg/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		clientID      string
		bankCode      string
		accountNumber string
		hasHeader     bool
		skipRows      int
		dateLayout    string
		decimalSep    string
		thousandsSep  string
		maxSize       int64
		currency      string
	)

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Normalize a bank statement file into transactions",
		Args:  cobra.ExactArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if currency == "" {
				currency = cfg.Ingest.DefaultCurrency
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			importCfg := model.ImportConfig{
				HasHeader:     hasHeader,
				SkipRows:      skipRows,
				DateLayout:    dateLayout,
				ClientID:      clientID,
				BankCode:      bankCode,
				AccountNumber: accountNumber,
				MaxFileSize:   maxSize,
				MinTextYield:  cfg.Ingest.MinTextYield,
				RasterScale:   cfg.OCR.RasterScale,
			}
			if maxSize == 0 {
				importCfg.MaxFileSize = cfg.Ingest.MaxFileSizeBytes
			}
			if decimalSep != "" {
				importCfg.DecimalSep = rune(decimalSep[0])
			}
			if thousandsSep != "" {
				importCfg.ThousandsSep = rune(thousandsSep[0])
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			engine := ocr.NewEngine(cfg.OCR.Language, cfg.OCR.TessdataDir)
			defer engine.Close()

			svc := service.New(logger, engine)
			doc := model.RawDocument{Name: filepath.Base(args[0]), Data: data}
			result := svc.Import(cmd.Context(), doc, importCfg)

			printResult(cmd, result, currency)
			if !result.Success {
				return fmt.Errorf("import finished with %d error(s)", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "client id stamped onto every transaction")
	cmd.Flags().StringVar(&bankCode, "bank", "", "bank code stamped onto every transaction")
	cmd.Flags().StringVar(&accountNumber, "account", "", "default account number")
	cmd.Flags().BoolVar(&hasHeader, "header", true, "treat the first row as column headers")
	cmd.Flags().IntVar(&skipRows, "skip", 0, "leading data rows to skip")
	cmd.Flags().StringVar(&dateLayout, "date-layout", "", "explicit Go date layout, e.g. 02/01/2006")
	cmd.Flags().StringVar(&decimalSep, "decimal-sep", "", "decimal separator character")
	cmd.Flags().StringVar(&thousandsSep, "thousands-sep", "", "thousands separator character")
	cmd.Flags().Int64Var(&maxSize, "max-size", 0, "maximum accepted file size in bytes")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO-4217 currency for summary totals")
	return cmd
}

func printResult(cmd *cobra.Command, result *model.ImportResult, currency string) {
	out := cmd.OutOrStdout()
	for _, tx := range result.Transactions {
		fmt.Fprintf(out, "%s  %-8s  %12s  %s\n",
			tx.Date.Format("2006-01-02"), tx.Type, tx.Amount.StringFixed(2), tx.Description)
	}
	for _, e := range result.Errors {
		if e.IsFileLevel() {
			fmt.Fprintf(out, "error: %s: %s\n", e.Kind, e.Reason)
		} else {
			fmt.Fprintf(out, "row %d: %s: %s\n", e.Row, e.Kind, e.Reason)
		}
	}

	summary := result.Summary(currency)
	fmt.Fprintf(out, "\n%d/%d rows imported, %d skipped\n",
		result.ImportedRows, result.TotalRows, result.SkippedRows)
	fmt.Fprintf(out, "credits %s, debits %s, net %s\n",
		summary.Credits.Display(), summary.Debits.Display(), summary.Net.Display())
}
