package packgen

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/block.schema.json
var blockSchemaText string

var blockSchema = jsonschema.MustCompileString("block.schema.json", blockSchemaText)

// ValidateBlock проверяет документ блока по встроенной схеме.
// Документ приводится к JSON-значениям через маршалинг.
func ValidateBlock(doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if err := blockSchema.Validate(v); err != nil {
		return fmt.Errorf("документ блока не прошел проверку: %w", err)
	}
	return nil
}
