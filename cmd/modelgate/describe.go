package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/bootstrap"
	"github.com/modelgate/modelgate/core/schema"
)

var describeCmd = &cobra.Command{
	Use:   "describe <model>",
	Short: "Show one compiled model in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	m, ok := app.Artifact.Model(args[0])
	if !ok {
		return fmt.Errorf("model %q not found", args[0])
	}

	fmt.Printf("Model: %s\n", m.Name)
	if m.Module != "" {
		fmt.Printf("Module: %s\n", m.Module)
	}
	fmt.Printf("Table: %s\n", m.Table)
	fmt.Printf("Persisted: %v\n", m.Persisted)
	fmt.Printf("Primary key: %s\n\n", strings.Join(m.PrimaryKey, ", "))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTYPE\tREQUIRED\tUNIQUE\tFLAGS")
	for _, f := range m.Fields {
		var flags []string
		if f.PrimaryKey {
			flags = append(flags, "pk")
		}
		if f.AutoIncrement {
			flags = append(flags, "auto")
		}
		if f.Synthesized {
			flags = append(flags, "synthesized")
		}
		if f.Computed != "" {
			flags = append(flags, "computed")
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\n",
			f.Name, f.Type, f.Required, f.Unique, strings.Join(flags, ","))
	}
	w.Flush()

	if len(m.Relations) > 0 {
		fmt.Println()
		fmt.Fprintln(w, "RELATION\tKIND\tTARGET\tFOREIGN KEY")
		for _, r := range m.Relations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Kind, r.Target, r.ForeignKey)
		}
		w.Flush()
	}

	fmt.Println()
	fmt.Fprintln(w, "OPERATION\tROLES")
	for _, op := range schema.Operations {
		roles := m.Access[op]
		if len(roles) == 0 {
			fmt.Fprintf(w, "%s\t(denied)\n", op)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", op, strings.Join(roles, ", "))
	}
	w.Flush()

	if m.Ownership != nil {
		ops := make([]string, len(m.Ownership.AppliesTo))
		for i, op := range m.Ownership.AppliesTo {
			ops[i] = string(op)
		}
		fmt.Printf("\nOwnership: field=%s auto_filter=%v applies_to=[%s] admin_bypass=%v\n",
			m.Ownership.OwnerField, m.Ownership.AutoFilter,
			strings.Join(ops, ", "), m.Ownership.AdminBypass)
	}

	return nil
}
