package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Response schemas. They pin the fields the client relies on and let
// everything else through.
const (
	schemaPreview = "preview"
	schemaPresets = "presets"
	schemaAttempt = "attempt"
	schemaResult  = "result"
	schemaLogin   = "login"
	schemaInfo    = "info"
)

var schemaDefs = map[string]string{
	schemaPreview: `{
		"type": "object",
		"required": ["blocks", "seed"],
		"properties": {
			"seed": {"type": "number"},
			"blocks": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["config", "questions"],
					"properties": {
						"config": {"type": "object", "required": ["type"]},
						"questions": {
							"type": "array",
							"items": {
								"type": "object",
								"required": ["id", "answer", "operands"],
								"properties": {
									"id": {"type": "integer"},
									"answer": {"type": "number"},
									"operands": {"type": "array", "items": {"type": "number"}},
									"operators": {"type": ["array", "null"], "items": {"type": "string"}},
									"isVertical": {"type": "boolean"}
								}
							}
						}
					}
				}
			}
		}
	}`,
	schemaPresets: `{
		"type": "array",
		"items": {
			"type": "object",
			"required": ["type"],
			"properties": {"type": {"type": "string"}}
		}
	}`,
	schemaAttempt: `{
		"type": "object",
		"required": ["id"],
		"properties": {"id": {"type": "integer"}}
	}`,
	schemaResult: `{
		"type": "object",
		"required": ["id", "total_questions", "correct_answers"],
		"properties": {
			"id": {"type": "integer"},
			"total_questions": {"type": "integer"},
			"correct_answers": {"type": "integer"}
		}
	}`,
	schemaLogin: `{
		"type": "object",
		"required": ["access_token"],
		"properties": {"access_token": {"type": "string", "minLength": 1}}
	}`,
	schemaInfo: `{
		"type": "object",
		"required": ["version"],
		"properties": {"version": {"type": "string"}}
	}`,
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validate checks body against the named schema and returns
// *InvalidResponseError on failure.
func validate(name string, body []byte) error {
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(string(body)))
	if err != nil {
		return invalidResponse(body, "Invalid JSON response: %s", snippet(body))
	}
	compiled, err := compiledSchema(name)
	if err != nil {
		return invalidResponse(body, "compile schema %q: %w", name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return invalidResponse(body, "malformed response: %w", err)
	}
	return nil
}

func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}
	def, ok := schemaDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema")
	}
	var doc any
	if err := json.Unmarshal([]byte(def), &doc); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	schemaCache.Store(name, compiled)
	return compiled, nil
}
