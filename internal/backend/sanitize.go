package backend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

// NormalizeAndSanitizeJSON
// - Renames known synonyms (credit_prob -> credit_probability)
// - Drops null/empty values
// - Coerces numeric strings and booleans to numbers
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to the schema's key set
	renamed("credit_prob", "credit_probability")
	renamed("p_credit", "credit_probability")
	renamed("debit_prob", "debit_probability")
	renamed("p_debit", "debit_probability")
	renamed("fraud_prob", "fraud_probability")
	renamed("fraud", "fraud_probability")
	renamed("type_confidence", "confidence")

	// 2) coerce numeric-ish values; drop nulls and junk
	numberFields := []string{
		"credit_probability", "debit_probability", "amount",
		"fraud_probability", "confidence",
	}
	coerceNumber := func(k string) {
		v, ok := m[k]
		if !ok {
			return
		}
		switch t := v.(type) {
		case float64:
			// already a JSON number
		case bool:
			if t {
				m[k] = 1.0
			} else {
				m[k] = 0.0
			}
			dropped = append(dropped, k+"(bool)")
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
				return
			}
			if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
				m[k] = f
				dropped = append(dropped, k+"(string)")
			} else {
				delete(m, k)
				dropped = append(dropped, k+"(unparseable)")
			}
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		default:
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}
	for _, k := range numberFields {
		coerceNumber(k)
	}

	// 3) remove unknown keys
	allowed := map[string]struct{}{
		"credit_probability": {}, "debit_probability": {}, "amount": {},
		"fraud_probability": {}, "confidence": {},
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("backend.signal.sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
