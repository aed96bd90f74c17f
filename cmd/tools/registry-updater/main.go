// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bfhl-service/internal/common/validation"
	"bfhl-service/pkg/registry"
)

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)

	listPath := listCmd.String("path", "", "Catalog file (default: built-in catalog)")
	validatePath := validateCmd.String("path", "", "Catalog file (default: built-in catalog)")
	exportOut := exportCmd.String("out", "configs/operations.json", "Where to write the built-in catalog")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		listCmd.Parse(os.Args[2:])
		cat, err := load(*listPath)
		if err != nil {
			fmt.Printf("Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		for _, op := range cat.Operations {
			fmt.Printf("%-10s %-24s %s\n", op.Key, op.DisplayName, op.Description)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(*validatePath); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog validation passed.")

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := export(*exportOut); err != nil {
			fmt.Printf("Error exporting catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote catalog to %s\n", *exportOut)

	case "help":
		fallthrough
	default:
		help()
	}
}

func load(path string) (*registry.OperationCatalog, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

// validateCatalog checks the catalog structure and compiles every input schema.
func validateCatalog(path string) error {
	cat, err := load(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return err
	}
	for _, op := range cat.Operations {
		if _, err := validation.Compile(validation.JSONSchema(op.InputSchema)); err != nil {
			return fmt.Errorf("operation %s: %w", op.Key, err)
		}
	}

	fmt.Printf("Found %d operations.\n", len(cat.Operations))
	return nil
}

func export(path string) error {
	cat, err := registry.Default()
	if err != nil {
		return err
	}
	cat.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  list      List the operations in a catalog
  validate  Validate a catalog and compile its input schemas
  export    Write the built-in catalog to a file for editing
  help      Show this help message

Examples:
  registry-updater list
  registry-updater validate -path configs/operations.json
  registry-updater export -out configs/operations.json

Use 'registry-updater <command> -h' for more information about a command.

`)
}
