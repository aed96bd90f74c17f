package main

import (
	"os"
	"path/filepath"
	"testing"

	"bfhl-service/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatalog_BuiltIn(t *testing.T) {
	assert.NoError(t, validateCatalog(""))
}

func TestExportThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "operations.json")
	require.NoError(t, export(path))

	cat, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, cat.Operations, 5)
	assert.NotEmpty(t, cat.LastUpdated)

	assert.NoError(t, validateCatalog(path))
}

func TestValidateCatalog_BadSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"operations":[{"key":"x","displayName":"X","inputSchema":{"type":42}}]}`), 0644))

	err := validateCatalog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation x")
}
