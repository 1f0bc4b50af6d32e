package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

// ValidationError reports every failing field of a loaded document so the
// caller can surface a field-by-field list to the user.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed: %s", strings.Join(e.Fields, "; "))
}

// ValidateJSON checks raw JSON against the resume document schema. A schema
// failure aborts the load; the caller's document state stays unchanged.
func ValidateJSON(raw []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	docLoader := gojsonschema.NewBytesLoader(raw)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	if res.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, e := range res.Errors() {
		verr.Fields = append(verr.Fields, e.String())
	}
	return verr
}

// ValidateMap validates an already-decoded generic map, used for extractor
// output that never existed as raw bytes on our side.
func ValidateMap(m map[string]interface{}) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return ValidateJSON(raw)
}

// DecodeDocument validates, decodes and normalizes foreign JSON into a
// Document. Missing keys are backfilled with empty defaults rather than
// rejected; only schema-level shape errors fail the load.
func DecodeDocument(raw []byte) (*Document, error) {
	if err := ValidateJSON(raw); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
