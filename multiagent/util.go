package multiagent

import (
	"encoding/json"
	"fmt"
	"strconv"
)

func jsonMarshal(v map[string]any) ([]byte, error) {
	return json.Marshal(v)
}

// parseAgentIndex parses the router's "choice" string as a bounds-checked
// integer index.
func parseAgentIndex(choice string, n int) (int, error) {
	idx, err := strconv.Atoi(choice)
	if err != nil {
		return 0, fmt.Errorf("multiagent: router returned non-integer, non-fallback choice %q", choice)
	}
	if idx < 0 || idx >= n {
		return 0, fmt.Errorf("multiagent: router returned out-of-range choice %d (have %d agents)", idx, n)
	}
	return idx, nil
}
