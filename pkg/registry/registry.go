// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed operations.json
var defaultCatalog []byte

// Default returns the catalog compiled into the binary.
func Default() (*OperationCatalog, error) {
	return parse(defaultCatalog)
}

func LoadRegistry(path string) (*OperationCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*OperationCatalog, error) {
	var cat OperationCatalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &cat, nil
}

// Find returns the operation registered under key.
func (c *OperationCatalog) Find(key string) (*OperationSpec, bool) {
	for i := range c.Operations {
		if c.Operations[i].Key == key {
			return &c.Operations[i], true
		}
	}
	return nil, false
}

// Keys lists operation keys in catalog order.
func (c *OperationCatalog) Keys() []string {
	keys := make([]string, 0, len(c.Operations))
	for _, op := range c.Operations {
		keys = append(keys, op.Key)
	}
	return keys
}

// Validate checks required fields and key uniqueness.
func (c *OperationCatalog) Validate() error {
	if len(c.Operations) == 0 {
		return fmt.Errorf("catalog contains no operations")
	}

	keys := make(map[string]bool)
	for _, op := range c.Operations {
		if op.Key == "" {
			return fmt.Errorf("operation missing required field: Key")
		}
		if keys[op.Key] {
			return fmt.Errorf("duplicate operation key: %s", op.Key)
		}
		keys[op.Key] = true

		if op.DisplayName == "" {
			return fmt.Errorf("operation %s missing required field: DisplayName", op.Key)
		}
		if len(op.InputSchema) == 0 {
			return fmt.Errorf("operation %s missing required field: InputSchema", op.Key)
		}
	}
	return nil
}
