package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/bootstrap"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile model definitions into the schema artifact",
	Long: `Compile loads every model definition, registers them, seals the
registry, resolves the relation graph, and emits the compiled schema
artifact as JSON.

The artifact is deterministic: the same model set produces byte-identical
output regardless of file or registration order.

Examples:
  modelgate compile
  modelgate compile --out schema.json
  modelgate compile -m ./models`,
	RunE: runCompile,
}

var compileOut string

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "write artifact to file (default stdout)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	data, err := app.Artifact.Encode()
	if err != nil {
		return err
	}

	out := compileOut
	if out == "" {
		out = cfg.Output.Path
	}
	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	fmt.Printf("%s Wrote %s (%d models, checksum %s)\n",
		checkMark, out, len(app.Artifact.Models), app.Artifact.Checksum[:12])
	return nil
}
