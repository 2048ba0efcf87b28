package schema

import (
	"encoding/json"
	"strings"
)

// CompletePartialJSON accepts any prefix of a JSON document and returns the
// smallest well-formed JSON completion, decoded into a generic tree
// (§4.3). This is a net-new algorithm: no file in the retrieved pack
// performs incremental JSON repair, so it is built directly from the
// spec's literal rule list rather than adapted from a teacher precedent
// (documented in DESIGN.md).
//
// Rules applied, in order:
//   - an open string is closed, dropping a trailing unescaped backslash;
//   - an open array is closed;
//   - an open object's trailing partial key/value is discarded if
//     incomplete (a key with no colon is dropped; a key with a colon but
//     no value becomes null), then the object is closed;
//   - trailing commas are removed.
func CompletePartialJSON(prefix string) (map[string]any, error) {
	completed := completeJSONText(prefix)
	var tree map[string]any
	if err := json.Unmarshal([]byte(completed), &tree); err != nil {
		// A prefix so short it can't yet form an object (e.g. "" or "{")
		// yields an empty map rather than an error, matching scenario 6
		// in §8: the first onPartialJson delivery is {}.
		if strings.TrimSpace(completed) == "{}" || completed == "" {
			return map[string]any{}, nil
		}
		return nil, err
	}
	if tree == nil {
		tree = map[string]any{}
	}
	return tree, nil
}

type frame struct {
	isObject bool // true = '{', false = '['
}

// completeJSONText walks the prefix once, tracking open strings/objects/
// arrays and pending key state, then emits the closing tokens needed to
// produce well-formed JSON.
func completeJSONText(prefix string) string {
	var (
		stack       []frame
		inString    bool
		escaped     bool
		out         strings.Builder
		pendingKey  bool // true once a string that looks like a key has been seen but no ':' yet
		afterColon  bool
		sawAnyValue bool
		openedAsKey bool // true if the currently-open string started in key position
	)

	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		out.WriteByte(c)

		if inString {
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				inString = false
				if len(stack) > 0 && stack[len(stack)-1].isObject && !afterColon {
					pendingKey = true
				} else {
					sawAnyValue = true
				}
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			escaped = false
			openedAsKey = len(stack) > 0 && stack[len(stack)-1].isObject && !afterColon
		case '{':
			stack = append(stack, frame{isObject: true})
			pendingKey, afterColon, sawAnyValue = false, false, false
		case '[':
			stack = append(stack, frame{isObject: false})
			pendingKey, afterColon, sawAnyValue = false, false, false
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			sawAnyValue = true
			pendingKey, afterColon = false, false
		case ':':
			afterColon = true
			pendingKey = false
		case ',':
			afterColon = false
			pendingKey = false
			sawAnyValue = false
		}
	}

	result := out.String()

	// Close an open string, dropping a trailing lone escape. A string left
	// open in key position (no closing quote yet) is never a usable key, so
	// it is flagged here exactly like a pendingKey with no colon, letting
	// the drop logic below treat "an open key" and "a closed key with no
	// colon" identically.
	if inString {
		if escaped {
			result = result[:len(result)-1] // drop the dangling backslash content already written
		}
		result += `"`
		if openedAsKey {
			pendingKey = true
		}
	}

	// Drop a trailing open key (no colon yet) or a key with a colon but no
	// value, then remove any trailing comma/whitespace before closing.
	if len(stack) > 0 && stack[len(stack)-1].isObject {
		trimmed := strings.TrimRight(result, " \t\n\r")
		if pendingKey && !afterColon {
			// The last thing written was a complete key string; drop it.
			if idx := lastKeyStart(trimmed); idx >= 0 {
				result = strings.TrimRight(trimmed[:idx], " \t\n\r,")
			}
		} else if afterColon && !sawAnyValue {
			result = trimmed + `null`
		}
	}

	result = strings.TrimRight(result, " \t\n\r")
	result = strings.TrimSuffix(result, ",")

	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].isObject {
			result += "}"
		} else {
			result += "]"
		}
	}

	if result == "" {
		return "{}"
	}
	return result
}

// lastKeyStart finds the start quote of the trailing `"key"` token so it
// can be trimmed away, scanning backward over a string literal.
func lastKeyStart(s string) int {
	i := len(s) - 1
	if i < 0 || s[i] != '"' {
		return -1
	}
	i--
	for i >= 0 {
		if s[i] == '"' && (i == 0 || s[i-1] != '\\') {
			// find the value-side delimiter preceding this key (',' or '{')
			j := i - 1
			for j >= 0 && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j--
			}
			return j + 1
		}
		i--
	}
	return -1
}
