package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ytget/yt-snippet/internal/model"
)

const schemaResource = "history.schema.json"

// recordListSchema describes the persisted payload
const recordListSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "title", "format", "timestamp"],
		"properties": {
			"id":        {"type": "string", "minLength": 1},
			"title":     {"type": "string"},
			"format":    {"enum": ["mp3", "wav", "mp4"]},
			"filename":  {"type": "string"},
			"timestamp": {"type": "string"}
		}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func payloadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaResource, strings.NewReader(recordListSchema)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, compileErr
}

// decode validates raw against the payload schema and decodes it
func decode(raw []byte) ([]model.HistoryRecord, error) {
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}

	schema, err := payloadSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("history does not match schema: %w", err)
	}

	var records []model.HistoryRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return records, nil
}
