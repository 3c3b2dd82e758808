package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"case-tracker/internal/unitseq"
)

type UnitsCmd struct {
	unitsPath  string
	region     string
	production float64
}

func NewUnitsCmd(defaultUnits string) *cobra.Command {
	uc := &UnitsCmd{}
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Convert a production percentage into equivalent units",
		RunE:  uc.run,
	}

	cmd.Flags().StringVar(&uc.unitsPath, "units", defaultUnits, "Path to units_eq.json")
	cmd.Flags().StringVar(&uc.region, "region", "", "Region")
	cmd.Flags().Float64Var(&uc.production, "production", 0, "Production percentage")

	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("production")

	return cmd
}

func (uc *UnitsCmd) run(cmd *cobra.Command, _ []string) error {
	table, err := unitseq.Load(uc.unitsPath)
	if err != nil {
		return err
	}

	units, err := table.EquivalentUnits(uc.region, uc.production)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %.2f%% = %.2f units\n", uc.region, uc.production, units)
	return nil
}
