package commands

import (
	"github.com/spf13/cobra"
)

// DataPaths: пути к файлам данных из конфига.
type DataPaths struct {
	Standards string
	Units     string
}

// ApplyDataPaths подставляет пути из конфига во флаги, которые не заданы явно.
func ApplyDataPaths(cmd *cobra.Command, paths DataPaths) error {
	defaults := map[string]string{
		"standards": paths.Standards,
		"file":      paths.Standards,
		"units":     paths.Units,
	}

	for name, value := range defaults {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed || value == "" {
			continue
		}
		if err := cmd.Flags().Set(name, value); err != nil {
			return err
		}
	}

	return nil
}
