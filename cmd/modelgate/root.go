package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/config"
)

var (
	// Global flags
	cfgFile   string
	modelsDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modelgate",
	Short: "Declarative model registry and schema compiler",
	Long: `Modelgate compiles declarative model definitions into a validated,
deterministic schema artifact consumed by storage, request-validation,
and authorization layers.

Workflow:
  modelgate validate  # Check every model definition and the relation graph
  modelgate compile   # Emit the compiled schema artifact
  modelgate sql       # Emit storage DDL for persisted models

Introspection:
  modelgate list      # List registered models
  modelgate describe  # Show one model in detail
  modelgate watch     # Recompile on model definition changes`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "modelgate.yaml", "config file path")
	rootCmd.PersistentFlags().StringVarP(&modelsDir, "models", "m", "", "model definitions directory (overrides config)")
}

// loadConfig resolves configuration from the config file, environment, and
// the --models flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if modelsDir != "" {
		cfg.Models.Dir = modelsDir
	}
	return cfg, nil
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
