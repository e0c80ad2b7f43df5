package content

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// quizFileSchema is the shape every quiz file must satisfy before decoding.
// Files that fail validation are skipped, not fatal.
const quizFileSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "disabled": {"type": "boolean"},
    "file_name": {"type": "string"},
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "answers"],
        "properties": {
          "question": {"type": "string"},
          "explanation": {"type": "string"},
          "tags": {"type": "array", "items": {"type": "string"}},
          "answers": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text"],
              "properties": {
                "text": {"type": "string"},
                "correct": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// validateQuizFile checks raw JSON against the quiz file schema.
func validateQuizFile(raw []byte) error {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(quizFileSchema)))
		if err != nil {
			schemaErr = fmt.Errorf("parse quiz file schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://quizfile.json", doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://quizfile.json")
	})
	if schemaErr != nil {
		return schemaErr
	}

	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
