package enrich

import (
	"context"
	"encoding/json"
	"log"

	"github.com/xeipuuv/gojsonschema"

	"github.com/camille/cv-forge/internal/types"
)

// enrichmentSchema is the structural contract for enrichment output.
// Confidence is bounded to [60,100]: below 60 the inference is too weak to
// store, and every item must justify itself from the source document.
const enrichmentSchema = `{
  "type": "object",
  "required": ["responsabilites_implicites", "competences_tacites"],
  "properties": {
    "responsabilites_implicites": {"$ref": "#/definitions/items"},
    "competences_tacites": {"$ref": "#/definitions/items"}
  },
  "definitions": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["nom", "confidence", "justification"],
        "properties": {
          "nom": {"type": "string", "minLength": 1},
          "confidence": {"type": "number", "minimum": 60, "maximum": 100},
          "justification": {"type": "string", "minLength": 1},
          "sources": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(enrichmentSchema)

// ParseResult turns a raw model response into an enrichment structure. Any
// failure (unparseable JSON, schema violation, out-of-range confidence)
// falls back to the canonical empty enrichment rather than partially
// trusting unvalidated data. Logged, never returned as an error.
func ParseResult(raw string) *types.ContexteEnrichi {
	cleaned := CleanJSONBlock(raw)

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		log.Printf("enrich: unparseable enrichment response, substituting empty: %v", err)
		return types.EmptyContexteEnrichi()
	}
	if !result.Valid() {
		for _, desc := range result.Errors() {
			log.Printf("enrich: schema violation: %s", desc)
		}
		return types.EmptyContexteEnrichi()
	}

	var enrichment types.ContexteEnrichi
	if err := json.Unmarshal([]byte(cleaned), &enrichment); err != nil {
		log.Printf("enrich: decoding validated enrichment failed, substituting empty: %v", err)
		return types.EmptyContexteEnrichi()
	}
	if enrichment.ResponsabilitesImplicites == nil {
		enrichment.ResponsabilitesImplicites = []types.InferredItem{}
	}
	if enrichment.CompetencesTacites == nil {
		enrichment.CompetencesTacites = []types.InferredItem{}
	}
	return &enrichment
}

// Generate runs the enrichment collaborator end to end for a profile and
// never fails: a client error resolves to the empty enrichment. Timeouts
// and retries are the caller's concern via ctx.
func Generate(ctx context.Context, client Client, profile *types.CanonicalProfile) *types.ContexteEnrichi {
	prompt := BuildPrompt(profile)
	raw, err := client.GenerateJSON(ctx, prompt)
	if err != nil {
		log.Printf("enrich: collaborator call failed, substituting empty: %v", err)
		return types.EmptyContexteEnrichi()
	}
	return ParseResult(raw)
}
