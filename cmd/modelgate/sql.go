package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/bootstrap"
	"github.com/modelgate/modelgate/core/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Emit storage DDL for persisted models",
	Long: `Emit CREATE TABLE and CREATE INDEX statements for every persisted
model, in deterministic order. The statements are the physical-schema
contract for the storage layer; modelgate never executes them.`,
	RunE: runSQL,
}

var sqlOut string

func init() {
	rootCmd.AddCommand(sqlCmd)

	sqlCmd.Flags().StringVarP(&sqlOut, "out", "o", "", "write DDL to file (default stdout)")
}

func runSQL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	ddl := storage.BuildSchemaSQL(app.Artifact)

	if sqlOut == "" {
		fmt.Print(ddl)
		return nil
	}

	if err := os.WriteFile(sqlOut, []byte(ddl), 0o644); err != nil {
		return fmt.Errorf("write ddl: %w", err)
	}
	fmt.Printf("%s Wrote %s\n", checkMark, sqlOut)
	return nil
}
