package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"case-tracker/internal/service/production"
	"case-tracker/internal/standards"
)

type CalcCmd struct {
	standardsPath string
	region        string
	caseType      string
	standard      float64
	start         string
	end           string
}

func NewCalcCmd(defaultStandards string) *cobra.Command {
	cc := &CalcCmd{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate efficiency, status and case value for one case",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.standardsPath, "standards", defaultStandards, "Path to standards.json")
	cmd.Flags().StringVar(&cc.region, "region", "", "Region (looked up in standards)")
	cmd.Flags().StringVar(&cc.caseType, "type", "", "Case type (looked up in standards)")
	cmd.Flags().Float64Var(&cc.standard, "standard", 0, "Standard minutes, overrides region/type lookup")
	cmd.Flags().StringVar(&cc.start, "start", "", "Start time HH:MM")
	cmd.Flags().StringVar(&cc.end, "end", "", "End time HH:MM")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (cc *CalcCmd) run(cmd *cobra.Command, _ []string) error {
	standard := cc.standard
	if standard == 0 {
		if cc.region == "" || cc.caseType == "" {
			return fmt.Errorf("either --standard or both --region and --type are required")
		}

		store, err := standards.Load(cc.standardsPath)
		if err != nil {
			return err
		}

		standard, err = store.Lookup(cc.region, cc.caseType)
		if err != nil {
			return err
		}
	}

	elapsed, err := production.ElapsedMinutes(cc.start, cc.end)
	if err != nil {
		return err
	}

	res, err := production.Calculate(standard, elapsed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Standard:   %.1f min\n", res.StandardMinutes)
	fmt.Fprintf(out, "Elapsed:    %.1f min\n", res.ElapsedMinutes)
	fmt.Fprintf(out, "Efficiency: %.1f%% (%s)\n", res.Efficiency, production.DisplayBand(res.Efficiency))
	fmt.Fprintf(out, "Status:     %s\n", res.Status)
	fmt.Fprintf(out, "Case value: %.3f%%\n", res.CaseValue)

	return nil
}
