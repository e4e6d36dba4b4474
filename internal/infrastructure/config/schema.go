package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed profile.schema.json
var profileSchemaJSON []byte

const profileSchemaURL = "profile.schema.json"

// ProfileSchema returns the JSON Schema profile documents must satisfy.
func ProfileSchema() []byte {
	return bytes.Clone(profileSchemaJSON)
}

var compiledProfileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(profileSchemaURL, bytes.NewReader(profileSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add profile schema resource: %w", err)
	}

	schema, err := compiler.Compile(profileSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile profile schema: %w", err)
	}
	return schema, nil
})

// validateDocument checks a decoded YAML document against the profile
// schema. It returns the individual violations, or nil.
func validateDocument(doc any) ([]string, error) {
	schema, err := compiledProfileSchema()
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(doc); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return schemaMessages(validationErr), nil
		}
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return nil, nil
}

// schemaMessages flattens a validation error tree into "location: message"
// lines.
func schemaMessages(err *jsonschema.ValidationError) []string {
	var messages []string

	var collect func(*jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(err)

	if len(messages) == 0 {
		messages = append(messages, strings.TrimSpace(err.Error()))
	}
	return messages
}
