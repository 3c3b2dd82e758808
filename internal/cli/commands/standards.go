package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"case-tracker/internal/standards"
)

func NewStandardsCmd(defaultStandards string) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "standards",
		Short: "Inspect the standard times file",
	}
	cmd.PersistentFlags().StringVar(&path, "file", defaultStandards, "Path to standards.json")

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check file shape and that every standard is positive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := standards.Load(path)
			if err != nil {
				return err
			}

			var bad []string
			table := store.Snapshot()
			for _, region := range store.Regions() {
				for caseType, minutes := range table[region] {
					if minutes <= 0 {
						bad = append(bad, fmt.Sprintf("%s/%s=%v", region, caseType, minutes))
					}
				}
			}
			if len(bad) > 0 {
				return fmt.Errorf("%w: %v", standards.ErrInvalidMinutes, bad)
			}

			types := 0
			for _, t := range table {
				types += len(t)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d regions, %d standards\n", len(table), types)
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Print the standards document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := standards.Load(path)
			if err != nil {
				return err
			}
			return store.Export(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(validate, export)
	return cmd
}
