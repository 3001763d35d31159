package project

// Collection is one discovered content collection. Schema holds the raw
// heuristic schema mined from the config, JSONSchema the raw generated
// document, and CompleteSchema the merged definition serialized as JSON.
// All three are empty when the corresponding source is unavailable.
type Collection struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	Schema         string `json:"schema,omitempty"`
	JSONSchema     string `json:"jsonSchema,omitempty"`
	CompleteSchema string `json:"completeSchema,omitempty"`
}
