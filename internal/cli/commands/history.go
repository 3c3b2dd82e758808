package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"case-tracker/internal/constants"
	"case-tracker/internal/storage"
)

type HistoryExporter interface {
	HistoryCSV(ctx context.Context, filter storage.CaseFilter, w io.Writer) error
	HistoryExcel(ctx context.Context, filter storage.CaseFilter) ([]byte, error)
}

// HistoryOpener открывает БД только когда команда реально запущена.
type HistoryOpener func() (HistoryExporter, io.Closer, error)

type HistoryExportCmd struct {
	open   HistoryOpener
	format string
	out    string
	filter storage.CaseFilter
}

func NewHistoryCmd(open HistoryOpener) *cobra.Command {
	hc := &HistoryExportCmd{open: open}

	root := &cobra.Command{
		Use:   "history",
		Short: "Case history",
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export case history as csv or xlsx",
		RunE:  hc.run,
	}

	cmd.Flags().StringVar(&hc.format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&hc.out, "out", "", "Output file (stdout for csv when empty)")
	cmd.Flags().StringVar(&hc.filter.From, "from", "", "Only cases on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&hc.filter.Status, "status", "", "OK or LOW")
	cmd.Flags().StringVar(&hc.filter.CaseID, "search", "", "Case ID substring")

	root.AddCommand(cmd)
	return root
}

func (hc *HistoryExportCmd) run(cmd *cobra.Command, _ []string) error {
	if hc.format != "csv" && hc.format != "xlsx" {
		return fmt.Errorf("unsupported format %q, use csv or xlsx", hc.format)
	}
	if hc.format == "xlsx" && hc.out == "" {
		return fmt.Errorf("--out is required for xlsx")
	}
	if hc.filter.Status != "" && !constants.HistoryStatuses[hc.filter.Status] {
		return fmt.Errorf("status must be OK or LOW")
	}
	if hc.filter.From != "" {
		if _, err := time.Parse(constants.DateLayout, hc.filter.From); err != nil {
			return fmt.Errorf("invalid --from %q", hc.filter.From)
		}
	}

	exp, closer, err := hc.open()
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	if hc.format == "xlsx" {
		data, err := exp.HistoryExcel(ctx, hc.filter)
		if err != nil {
			return err
		}
		if err := os.WriteFile(hc.out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", hc.out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", hc.out)
		return nil
	}

	w := cmd.OutOrStdout()
	if hc.out != "" {
		f, err := os.Create(hc.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", hc.out, err)
		}
		defer f.Close()
		w = f
	}

	return exp.HistoryCSV(ctx, hc.filter, w)
}
