package mapping

import (
	"encoding/json"
	"fmt"
	"strings"
)

// schemaNode is a minimal JSON-schema-shaped description of the target
// payload: objects with properties and required markers, arrays with items.
type schemaNode struct {
	Type       string                 `json:"type"`
	Properties map[string]*schemaNode `json:"properties"`
	Items      *schemaNode            `json:"items"`
	Required   []string               `json:"required"`
}

func parseTargetSchema(raw json.RawMessage) (*schemaNode, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var n schemaNode
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("parsing schema_destino: %w", err)
	}
	return &n, nil
}

// requiredPaths collects every required field as a target path expression:
// "company.taxId" for scalars, "workers[*].idNumber" for array item fields.
func requiredPaths(n *schemaNode) map[string]bool {
	out := make(map[string]bool)
	if n != nil {
		collectRequired(n, "", out)
	}
	return out
}

func collectRequired(n *schemaNode, prefix string, out map[string]bool) {
	switch n.Type {
	case "array":
		if n.Items != nil {
			collectRequired(n.Items, prefix+broadcastMarker, out)
		}
	default:
		req := make(map[string]bool, len(n.Required))
		for _, f := range n.Required {
			req[f] = true
		}
		for name, child := range n.Properties {
			childPath := name
			if prefix != "" {
				childPath = prefix + "." + name
			}
			if req[name] {
				out[childPath] = true
			}
			if child != nil {
				collectRequired(child, childPath, out)
			}
		}
	}
}

// checkPayload verifies a transform output against the target schema:
// required fields present, objects and arrays where the schema expects them.
func checkPayload(n *schemaNode, payload interface{}, path string) error {
	if n == nil {
		return nil
	}
	switch n.Type {
	case "array":
		arr, ok := payload.([]interface{})
		if !ok {
			return fmt.Errorf("payload: %s: expected array", displayPath(path))
		}
		for i, el := range arr {
			if err := checkPayload(n.Items, el, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case "object", "":
		obj, ok := payload.(map[string]interface{})
		if !ok {
			return fmt.Errorf("payload: %s: expected object", displayPath(path))
		}
		for _, f := range n.Required {
			if v, present := obj[f]; !present || v == nil {
				return fmt.Errorf("payload: missing required field %s", displayPath(join(path, f)))
			}
		}
		for name, child := range n.Properties {
			if v, present := obj[name]; present {
				if err := checkPayload(child, v, join(path, name)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func join(path, seg string) string {
	if path == "" {
		return seg
	}
	return path + "." + seg
}

func displayPath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "(root)"
	}
	return path
}
