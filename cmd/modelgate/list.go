package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/bootstrap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List compiled models",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTABLE\tFIELDS\tRELATIONS\tPERSISTED")
	for _, m := range app.Artifact.Models {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\n",
			m.Name, m.Table, len(m.Fields), len(m.Relations), m.Persisted)
	}
	return w.Flush()
}
