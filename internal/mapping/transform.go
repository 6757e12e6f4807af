package mapping

import (
	"fmt"
	"strings"
)

// Transform converts a resolved source value before it is written to the
// target payload. Implementations are parsed once per rule at compile time
// and reused across records.
type Transform interface {
	Apply(v interface{}) interface{}
}

type upperTransform struct{}

func (upperTransform) Apply(v interface{}) interface{} {
	return strings.ToUpper(stringify(v))
}

// lookupTransform substitutes categorical values via a lookup table.
// Values not present in the table pass through unchanged.
type lookupTransform struct {
	table map[string]string
}

func (t *lookupTransform) Apply(v interface{}) interface{} {
	if mapped, ok := t.table[stringify(v)]; ok {
		return mapped
	}
	return v
}

// ParseTransform parses a transform spec string. Supported specs are "upper"
// and "map:K1=V1|K2=V2|...". An empty spec returns nil (no transform); an
// unrecognized spec is an error so templates fail fast at load time.
func ParseTransform(spec string) (Transform, error) {
	switch {
	case spec == "":
		return nil, nil
	case spec == "upper":
		return upperTransform{}, nil
	case strings.HasPrefix(spec, "map:"):
		return parseLookup(spec[len("map:"):])
	default:
		return nil, fmt.Errorf("unknown transform %q", spec)
	}
}

func parseLookup(body string) (Transform, error) {
	if body == "" {
		return nil, fmt.Errorf("map transform has no entries")
	}
	table := make(map[string]string)
	for _, pair := range strings.Split(body, "|") {
		key, val, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("map transform: malformed entry %q", pair)
		}
		table[key] = val
	}
	return &lookupTransform{table: table}, nil
}

func stringify(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
