package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justyntemme/overtone/pkg/framework/param"
	"github.com/justyntemme/overtone/pkg/preset"
)

var (
	paramsDump string
	paramsName string
)

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "List parameters or write them out as a preset",
	Long: `List every parameter with its range, default and current value after
--preset and --set are applied. With --dump the current values are written
as a JSON preset ("-" for stdout).`,
	RunE: runParams,
}

func init() {
	paramsCmd.Flags().StringVar(&paramsDump, "dump", "", "Write the current values as a preset file")
	paramsCmd.Flags().StringVar(&paramsName, "name", "init", "Preset name used with --dump")
}

func runParams(cmd *cobra.Command, args []string) error {
	reg, err := buildRegistry()
	if err != nil {
		return err
	}

	if paramsDump == "" {
		return listParams(cmd.OutOrStdout(), reg)
	}

	p := preset.Capture(reg, paramsName)
	if paramsDump == "-" {
		return p.Save(os.Stdout)
	}
	if err := p.SaveFile(paramsDump); err != nil {
		return err
	}
	logger.Info("wrote preset %q to %s", p.Name, paramsDump)
	return nil
}

func listParams(w io.Writer, reg *param.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGROUP\tRANGE\tDEFAULT\tVALUE")
	for _, p := range reg.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s .. %s\t%s\t%s\n",
			p.ID, p.Name, p.Group,
			p.FormatValue(p.Min), p.FormatValue(p.Max),
			p.FormatValue(p.DefaultValue), p.Format())
	}
	return tw.Flush()
}
