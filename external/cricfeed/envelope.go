package cricfeed

import (
	"regexp"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// Scorecard feeds arrive as JSONP: a callback identifier wrapping the
// JSON body, `onScoring({...});`. The payload is everything between the
// first opening parenthesis and the last closing one, optionally
// followed by a semicolon.
var jsonpEnvelopeRegex = regexp.MustCompile(`(?s)^[^(]*\((.*)\)\s*;?\s*$`)

// ExtractEnvelope strips the JSONP callback wrapper and returns the
// inner payload bytes.
func ExtractEnvelope(body []byte) ([]byte, error) {
	groups := jsonpEnvelopeRegex.FindSubmatch(body)
	if len(groups) != 2 {
		return nil, crerr.New("body does not match jsonp envelope")
	}
	return groups[1], nil
}

// DecodePayload strips the envelope and parses the payload into a
// generic record structure.
func DecodePayload(body []byte) (map[string]any, error) {
	inner, err := ExtractEnvelope(body)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := sonic.Unmarshal(inner, &payload); err != nil {
		return nil, crerr.Wrap(err, "decode feed payload")
	}
	return payload, nil
}

// ParseCountOrZero coerces a feed count field to an integer. Feeds are
// inconsistent about numeric encoding (string "5" vs number 5), and
// absent or garbage values deliberately count as zero rather than
// failing the innings.
func ParseCountOrZero(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// MapField returns a nested object field, or nil when absent or of the
// wrong shape.
func MapField(payload map[string]any, key string) map[string]any {
	if payload == nil {
		return nil
	}
	value, ok := payload[key].(map[string]any)
	if !ok {
		return nil
	}
	return value
}

// SliceField returns a nested list field, or nil when absent or of the
// wrong shape.
func SliceField(payload map[string]any, key string) []any {
	if payload == nil {
		return nil
	}
	value, ok := payload[key].([]any)
	if !ok {
		return nil
	}
	return value
}

// StringField returns a field rendered as a string. Numeric ids come
// through both quoted and bare depending on feed vintage.
func StringField(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	switch v := payload[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
