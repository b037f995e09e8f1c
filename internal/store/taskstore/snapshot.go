package taskstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const snapshotSchemaURL = "snapshot.schema.json"

// snapshotSchema describes the persisted value: a flat array of strings.
const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {"type": "string"}
}`

var compiledSnapshot = mustCompileSnapshot()

func mustCompileSnapshot() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
		panic(fmt.Sprintf("add snapshot schema: %v", err))
	}
	schema, err := compiler.Compile(snapshotSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile snapshot schema: %v", err))
	}
	return schema
}

// decodeSnapshot parses a persisted value. It fails on anything that is not
// valid JSON or not an array of strings. Blank entries are dropped.
func decodeSnapshot(raw string) ([]string, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := compiledSnapshot.Validate(doc); err != nil {
		return nil, fmt.Errorf("snapshot shape: %w", err)
	}
	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	tasks := make([]string, 0, len(stored))
	for _, t := range stored {
		if strings.TrimSpace(t) != "" {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func encodeSnapshot(tasks []string) (string, error) {
	if tasks == nil {
		tasks = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tasks); err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
