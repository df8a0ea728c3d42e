package backend

// BuildSignalJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass it to the model as a structured output constraint and
// also use it locally to validate whatever comes back.
func BuildSignalJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"credit_probability": probabilityProp(),
			"debit_probability":  probabilityProp(),
			"amount":             map[string]any{"type": "number", "minimum": 0.0},
			"fraud_probability":  probabilityProp(),
			"confidence":         probabilityProp(),
		},
		"required": []string{"credit_probability", "debit_probability", "fraud_probability"},
	}
}

func probabilityProp() map[string]any {
	return map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
}
