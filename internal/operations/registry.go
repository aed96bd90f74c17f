package operations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"bfhl-service/internal/common/config"
	"bfhl-service/internal/common/errors"
	"bfhl-service/internal/common/validation"
	"bfhl-service/internal/genai"
	"bfhl-service/pkg/registry"
)

type entry struct {
	op     Operation
	schema *validation.Schema
}

// Registry maps request keys to operations and their compiled input schemas.
// It is read-only after construction.
type Registry struct {
	entries map[string]entry
}

// NewRegistry pairs each operation with the input schema the catalog lists
// for its key.
func NewRegistry(catalog *registry.OperationCatalog, ops ...Operation) (*Registry, error) {
	r := &Registry{entries: make(map[string]entry, len(ops))}
	for _, op := range ops {
		desc, ok := catalog.Find(op.Key())
		if !ok {
			return nil, fmt.Errorf("operation %q is not in the catalog", op.Key())
		}
		if _, dup := r.entries[op.Key()]; dup {
			return nil, fmt.Errorf("operation %q registered twice", op.Key())
		}
		schema, err := validation.Compile(validation.JSONSchema(desc.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", op.Key(), err)
		}
		r.entries[op.Key()] = entry{op: op, schema: schema}
	}
	return r, nil
}

// NewDefaultRegistry registers fibonacci, prime, lcm, hcf and AI.
func NewDefaultRegistry(catalog *registry.OperationCatalog, limits config.LimitsConfig, g genai.Generator) (*Registry, error) {
	return NewRegistry(catalog,
		NewFibonacci(limits.FibonacciMaxTerms),
		NewPrime(),
		NewLCM(),
		NewHCF(),
		NewAI(g),
	)
}

func (r *Registry) Lookup(key string) (Operation, bool) {
	e, ok := r.entries[key]
	return e.op, ok
}

// Keys returns the registered keys, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Execute decodes raw, checks it against the key's schema and runs the
// operation.
func (r *Registry) Execute(ctx context.Context, key string, raw json.RawMessage) (interface{}, error) {
	e, ok := r.entries[key]
	if !ok {
		return nil, errors.NewUnsupportedOperationError(key)
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.NewValidationFailedError(key, []string{err.Error()})
	}

	result, err := e.schema.Validate(value)
	if err != nil {
		return nil, errors.NewValidationFailedError(key, []string{err.Error()})
	}
	if !result.Valid {
		return nil, errors.NewValidationFailedError(key, result.GetErrorMessages())
	}

	return e.op.Execute(ctx, value)
}
