package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseResponse extracts the JSON object embedded in a raw model response.
// The response may carry commentary around the object; everything between
// the first '{' and the last '}' (inclusive) is the candidate. If the strict
// decode fails, one repair pass swaps single quotes for double quotes and
// the decode is retried once. No further repairs are attempted: the model is
// trusted to be almost well-formed, and anything worse is an error.
func ParseResponse(raw string) (map[string]any, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONFound
	}
	candidate := raw[start : end+1]

	var m map[string]any
	if err := json.Unmarshal([]byte(candidate), &m); err == nil {
		return m, nil
	}

	repaired := strings.ReplaceAll(candidate, "'", `"`)
	var repairedMap map[string]any
	if err := json.Unmarshal([]byte(repaired), &repairedMap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return repairedMap, nil
}
