package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"case-tracker/internal/cli/commands"
	"case-tracker/internal/config"
	"case-tracker/internal/service/export"
	"case-tracker/internal/storage/mysql"
)

var cfgPath string

func main() {
	rootCmd := &cobra.Command{
		Use:          "trackerctl",
		Short:        "Operator tools for the case production tracker",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", os.Getenv("CONFIG_PATH"), "Path to the YAML config")
	rootCmd.PersistentPreRunE = dataPaths

	rootCmd.AddCommand(
		commands.NewCalcCmd("./data/standards.json"),
		commands.NewUnitsCmd("./data/units_eq.json"),
		commands.NewStandardsCmd("./data/standards.json"),
		commands.NewHistoryCmd(openHistory),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// dataPaths: при заданном --config пути к файлам данных берутся из конфига.
func dataPaths(cmd *cobra.Command, _ []string) error {
	if cfgPath == "" {
		return nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	return commands.ApplyDataPaths(cmd, commands.DataPaths{
		Standards: cfg.StandardsPath(),
		Units:     cfg.UnitsEqPath(),
	})
}

func openHistory() (commands.HistoryExporter, io.Closer, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	storage, err := mysql.New(*cfg)
	if err != nil {
		return nil, nil, err
	}

	return export.NewService(storage), storage, nil
}
