package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/core/compiler"
	"github.com/modelgate/modelgate/core/registry"
	"github.com/modelgate/modelgate/core/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate model definitions before deployment",
	Long: `Validate every model definition and the relation graph.

Checks:
  - YAML syntax is valid
  - Each model passes field/model validation
  - Model names are unique
  - Relations resolve across the whole model set

Per-file problems are reported as they are found; cross-model problems are
collected and reported together in one pass.

Examples:
  modelgate validate
  modelgate validate -m ./models`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Validating models in %s...\n\n", cfg.Models.Dir)

	paths, err := modelFiles(cfg.Models.Dir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no model definitions found in %s", cfg.Models.Dir)
	}

	reg := registry.New()
	failed := false

	for _, path := range paths {
		m, err := schema.ParseFile(path)
		if err != nil {
			fmt.Printf("  %s %s: %v\n", crossMark, filepath.Base(path), err)
			failed = true
			continue
		}
		if err := reg.Register(m); err != nil {
			fmt.Printf("  %s %s: %v\n", crossMark, filepath.Base(path), err)
			failed = true
			continue
		}
		fmt.Printf("  %s %s (%s)\n", checkMark, filepath.Base(path), m.Name)
	}

	if failed {
		return fmt.Errorf("model validation failed")
	}

	reg.Seal()

	artifact, err := compiler.New(reg).Compile()
	if err != nil {
		var cerr *compiler.CompileError
		if errors.As(err, &cerr) {
			fmt.Printf("\n  %s Relation graph has %d problem(s):\n", crossMark, len(cerr.Errors))
			for _, e := range cerr.Errors {
				fmt.Printf("      - %v\n", e)
			}
			return fmt.Errorf("schema compile failed")
		}
		return err
	}

	fmt.Printf("  %s Relation graph resolves\n", checkMark)
	fmt.Printf("\nValid: %d models, checksum %s\n", len(artifact.Models), artifact.Checksum[:12])
	return nil
}

// modelFiles lists YAML files under dir recursively, in lexical order.
func modelFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
