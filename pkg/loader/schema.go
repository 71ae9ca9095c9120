package loader

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["pages"],
  "properties": {
    "name": {"type": "string"},
    "source": {"$ref": "#/definitions/source"},
    "pages": {"type": "array", "items": {"$ref": "#/definitions/page"}}
  },
  "definitions": {
    "source": {
      "type": ["object", "null"],
      "properties": {
        "title": {"type": "string"},
        "authors": {"type": ["array", "null"], "items": {"type": "string"}},
        "url": {"type": "string"}
      }
    },
    "page": {
      "type": "object",
      "required": ["sections"],
      "properties": {
        "number": {"type": "integer", "minimum": 0},
        "sections": {"type": ["array", "null"], "items": {"$ref": "#/definitions/section"}}
      }
    },
    "section": {
      "type": "object",
      "required": ["lines"],
      "properties": {
        "lines": {"type": ["array", "null"], "items": {"$ref": "#/definitions/line"}},
        "attributes": {"$ref": "#/definitions/tags"}
      }
    },
    "line": {
      "type": "object",
      "required": ["text"],
      "properties": {
        "text": {"type": "string"},
        "bound": {"$ref": "#/definitions/bound"},
        "attributes": {"$ref": "#/definitions/tags"}
      }
    },
    "bound": {
      "type": ["object", "null"],
      "required": ["left", "top"],
      "properties": {
        "left": {"type": "number"},
        "top": {"type": "number"},
        "width": {"type": "number", "minimum": 0},
        "height": {"type": "number", "minimum": 0}
      }
    },
    "tags": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("document.json", strings.NewReader(documentSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("document.json")
	})
	return schema, schemaErr
}

// validateDocument checks raw JSON against the document schema before decoding.
func validateDocument(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("json does not match document schema: %w", err)
	}
	return nil
}
