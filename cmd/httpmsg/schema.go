package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

var errSchemaMismatch = errors.New("response does not match schema")

func compileSchema(path string) (*jsonschema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening schema")
	}
	defer f.Close()

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", f); err != nil {
		return nil, errors.Wrap(err, "invalid schema")
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, errors.Wrap(err, "invalid schema")
	}
	return schema, nil
}

// validateJSON checks body against schema and lists every violation.
func validateJSON(schema *jsonschema.Schema, body []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return errors.Wrap(err, "response is not json")
	}

	err := schema.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return errors.Wrap(errSchemaMismatch, strings.Join(violations(verr), "; "))
}

func violations(err *jsonschema.ValidationError) []string {
	var out []string
	if len(err.Causes) == 0 {
		out = append(out, err.InstanceLocation+": "+err.Message)
	}
	for _, cause := range err.Causes {
		out = append(out, violations(cause)...)
	}
	return out
}
