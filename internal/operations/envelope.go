package operations

import (
	"encoding/json"

	"bfhl-service/internal/common/errors"
)

// ParseEnvelope decodes a request body that must be a JSON object with
// exactly one key. A repeated key counts once; the last value wins.
func ParseEnvelope(body []byte) (string, json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", nil, errors.NewInvalidRequestBodyError(err)
	}
	if len(fields) != 1 {
		return "", nil, errors.NewInvalidEnvelopeError(len(fields))
	}
	for key, raw := range fields {
		return key, raw, nil
	}
	return "", nil, errors.NewInvalidEnvelopeError(0)
}
