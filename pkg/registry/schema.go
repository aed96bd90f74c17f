// pkg/registry/schema.go
package registry

// OperationCatalog describes every operation POST /bfhl accepts.
type OperationCatalog struct {
	Version     string          `json:"version"`
	LastUpdated string          `json:"lastUpdated"`
	Operations  []OperationSpec `json:"operations"`
}

type OperationSpec struct {
	Key          string                 `json:"key"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Tags         []string               `json:"tags"`
}
