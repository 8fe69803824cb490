package capability

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	questionsSchema  = mustSchema("questions.json")
	evaluationSchema = mustSchema("evaluation.json")
	postAckSchema    = mustSchema("post_ack.json")
	matchSchema      = mustSchema("match.json")
	postingsSchema   = mustSchema("postings.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	data, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// decodeDocument parses a JSON body, checks it against schema and decodes it into target.
func decodeDocument(data []byte, schema *gojsonschema.Schema, target any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	if schema != nil {
		result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
		if err != nil {
			return fmt.Errorf("validate body: %w", err)
		}
		if !result.Valid() {
			msgs := make([]string, 0, len(result.Errors()))
			for _, e := range result.Errors() {
				msgs = append(msgs, e.String())
			}
			return errors.New("unexpected response shape: " + strings.Join(msgs, "; "))
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(doc)
}

// serverError extracts the {"error": "..."} message the service sends with failures.
func serverError(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Error)
}
