package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// snapshotSchema requires an object of collections. Array values must hold
// objects with a non-empty string id; other values are skipped on import.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "if": {"type": "array"},
    "then": {
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {"id": {"type": "string", "minLength": 1}}
      }
    }
  }
}`

var compiledSnapshot = mustCompile(snapshotSchema)

func mustCompile(source string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("snapshot.json", strings.NewReader(source)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("snapshot.json")
}

func validateSnapshot(doc any) error {
	err := compiledSnapshot.Validate(doc)
	if err == nil {
		return nil
	}
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return err
	}
	issues := leafIssues(validationErr)
	return fmt.Errorf("snapshot does not match schema: %s", strings.Join(issues, "; "))
}

func leafIssues(node *jsonschema.ValidationError) []string {
	if len(node.Causes) == 0 {
		location := node.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{location + ": " + node.Message}
	}
	var out []string
	for _, cause := range node.Causes {
		out = append(out, leafIssues(cause)...)
	}
	return out
}

// decodeSnapshot parses raw JSON keeping numbers as float64 like the stores do.
func decodeSnapshot(raw []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	return doc, nil
}
