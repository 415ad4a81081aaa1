package contract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// GenerateJSONSchema produces a JSON Schema Draft 2020-12 document from
// the Go Contract struct using invopop/jsonschema.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = false

	s := r.Reflect(&Contract{})
	s.ID = "https://github.com/NympoBrutty/m-painting-system-m/schemas/contract-v4.json"
	s.Title = "Stage-A Module Contract v4"
	s.Description = "Schema for Stage-A module contract JSON documents (Draft 2020-12)"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// SchemaViolation is one failure from the JSON-Schema pass, flattened
// to a path plus message.
type SchemaViolation struct {
	Path    string
	Message string
}

// CheckSchema runs the black-box JSON-Schema pass over the document.
// The returned violations feed the lint report as structural findings;
// a non-nil error means the schema itself could not be built, which is
// an engine failure rather than a document defect.
func CheckSchema(c *Contract) ([]SchemaViolation, error) {
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	var schemaDoc interface{}
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := sjsonschema.NewCompiler()
	if err := compiler.AddResource("contract-v4.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := compiler.Compile("contract-v4.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	// Re-marshal the typed struct so the instance carries exact JSON
	// value kinds.
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal contract: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal contract: %w", err)
	}

	err = sch.Validate(doc)
	if err == nil {
		return nil, nil
	}
	ve, isValidation := err.(*sjsonschema.ValidationError)
	if !isValidation {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var out []SchemaViolation
	for _, cause := range flattenSchemaErrors(ve) {
		out = append(out, SchemaViolation{
			Path:    strings.Join(cause.InstanceLocation, "/"),
			Message: fmt.Sprintf("%v", cause.ErrorKind),
		})
	}
	return out, nil
}

// flattenSchemaErrors recursively collects all leaf validation errors.
func flattenSchemaErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenSchemaErrors(cause)...)
	}
	return flat
}
