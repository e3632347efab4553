package mock

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const patchUserSchema = `{
	"type": "object",
	"required": ["user_id"],
	"properties": {
		"user_id": {"type": "string"}
	},
	"additionalProperties": {"type": "string"}
}`

const addUserSchema = `{
	"type": "object",
	"additionalProperties": {"type": "string"}
}`

var (
	patchUserLoader = gojsonschema.NewStringLoader(patchUserSchema)
	addUserLoader   = gojsonschema.NewStringLoader(addUserSchema)
)

// validatePayload checks body against schema and folds every violation
// into one error.
func validatePayload(schema gojsonschema.JSONLoader, body []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// readPayload reads and validates a JSON object of strings. Bodies that are
// not JSON get a plain-text 400, schema violations a JSON 422.
func readPayload(w http.ResponseWriter, r *http.Request, schema gojsonschema.JSONLoader) (map[string]string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeText(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	if !json.Valid(body) {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if err := validatePayload(schema, body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return nil, false
	}

	var fields map[string]string
	if err := json.Unmarshal(body, &fields); err != nil {
		writeText(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if fields == nil {
		fields = make(map[string]string)
	}
	return fields, true
}
