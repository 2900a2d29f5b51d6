package tracker

import (
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const tasksSchemaURL = "tasks.schema.json"

const tasksSchemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "dueDate", "priority"],
    "properties": {
      "id": {"type": "integer"},
      "title": {"type": "string", "minLength": 1},
      "dueDate": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}[T ][0-9]{2}:[0-9]{2}"},
      "priority": {"enum": ["low", "medium", "high"]},
      "isCompleted": {"type": "boolean"},
      "alerted": {"type": "boolean"}
    }
  }
}`

var tasksSchema = jsonschema.MustCompileString(tasksSchemaURL, tasksSchemaSrc)

// validateBlob checks a persisted task list against tasksSchema.
func validateBlob(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode tasks: %w", err)
	}
	if err := tasksSchema.Validate(doc); err != nil {
		return fmt.Errorf("validate tasks: %w", err)
	}
	return nil
}
