package api

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names a JSON document shape the service is expected to return.
type Schema string

const (
	// QuestionsSchema is the {message, data} envelope of the questions endpoint.
	QuestionsSchema Schema = "questions.json"
	// ResultSchema is the {message, data} envelope of the result endpoint.
	ResultSchema Schema = "result.json"
	// ResultDataSchema is the report inside ResultSchema's data field. It is
	// also what the report cache holds.
	ResultDataSchema Schema = "result-data.json"
)

const schemaBase = "https://selfcheck.invalid/schema/"

var schemaDocs = map[Schema]string{
	QuestionsSchema: `{
		"type": "object",
		"required": ["data"],
		"properties": {
			"message": {"type": "string"},
			"data": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["standardName", "questions"],
					"properties": {
						"standardName": {"type": "string"},
						"questions": {
							"type": "array",
							"items": {
								"type": "object",
								"required": ["questionId", "question"],
								"properties": {
									"questionId": {"type": "integer"},
									"question": {"type": "string"}
								}
							}
						}
					}
				}
			}
		}
	}`,

	ResultSchema: `{
		"type": "object",
		"required": ["data"],
		"properties": {
			"message": {"type": "string"},
			"data": {"$ref": "result-data.json"}
		}
	}`,

	ResultDataSchema: `{
		"type": "object",
		"required": ["totalScoreDto", "standardScoreList"],
		"properties": {
			"totalScoreDto": {
				"type": "object",
				"required": ["scoreRatio", "scoreRatioString"],
				"properties": {
					"scoreRatio": {"type": "number"},
					"scoreRatioString": {"type": "string"}
				}
			},
			"standardScoreList": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["standardName", "score"],
					"properties": {
						"standardName": {"type": "string"},
						"score": {"type": "number"},
						"maxScore": {"type": "number"}
					}
				}
			},
			"noOrNotApplicableList": {
				"type": ["array", "null"],
				"items": {
					"type": "object",
					"required": ["standardName"],
					"properties": {
						"standardName": {"type": "string"},
						"qnaPairDtoList": {
							"type": ["array", "null"],
							"items": {
								"type": "object",
								"required": ["question", "answer"],
								"properties": {
									"question": {"type": "string"},
									"answer": {"enum": ["YES", "NO", "NOT_APPLICABLE"]}
								}
							}
						}
					}
				}
			}
		}
	}`,
}

// compiledSchemas registers every document with one compiler so that
// envelopes can $ref the shapes they wrap.
var compiledSchemas = sync.OnceValues(func() (map[Schema]*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	for name, doc := range schemaDocs {
		v, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		if err := c.AddResource(schemaBase+string(name), v); err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
	}

	out := make(map[Schema]*jsonschema.Schema, len(schemaDocs))
	for name := range schemaDocs {
		sch, err := c.Compile(schemaBase + string(name))
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		out[name] = sch
	}
	return out, nil
})

// Validate checks that raw is JSON of the given shape. A body that is not
// JSON, or does not match, is reported as *DecodeError.
func Validate(s Schema, raw []byte) error {
	all, err := compiledSchemas()
	if err != nil {
		return err
	}
	sch, ok := all[s]
	if !ok {
		return fmt.Errorf("unknown schema %q", s)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &DecodeError{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := sch.Validate(doc); err != nil {
		return &DecodeError{Content: raw, Err: err}
	}
	return nil
}
