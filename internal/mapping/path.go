package mapping

import (
	"fmt"
	"strings"
)

const broadcastMarker = "[*]"

// Path is a parsed path expression. Two shapes exist:
//
//	scalar:    Company.cif          → Head=[Company cif]
//	broadcast: Worker[*].dni        → Head=[Worker], Tail=[dni]
//
// A broadcast path applies once per element of the named collection.
type Path struct {
	Raw       string
	Head      []string
	Tail      []string
	Broadcast bool
}

// ParsePath parses a path expression, rejecting malformed inputs so that bad
// templates fail at load time rather than at transform time.
func ParsePath(expr string) (Path, error) {
	if expr == "" {
		return Path{}, fmt.Errorf("empty path")
	}
	if strings.Count(expr, broadcastMarker) > 1 {
		return Path{}, fmt.Errorf("path %q: multiple %s markers", expr, broadcastMarker)
	}

	idx := strings.Index(expr, broadcastMarker)
	if idx < 0 {
		head, err := splitSegments(expr)
		if err != nil {
			return Path{}, fmt.Errorf("path %q: %w", expr, err)
		}
		return Path{Raw: expr, Head: head}, nil
	}

	left := expr[:idx]
	right := expr[idx+len(broadcastMarker):]
	if left == "" {
		return Path{}, fmt.Errorf("path %q: %s must follow a collection name", expr, broadcastMarker)
	}
	if !strings.HasPrefix(right, ".") || len(right) == 1 {
		return Path{}, fmt.Errorf("path %q: %s must be followed by a sub-path", expr, broadcastMarker)
	}

	head, err := splitSegments(left)
	if err != nil {
		return Path{}, fmt.Errorf("path %q: %w", expr, err)
	}
	tail, err := splitSegments(right[1:])
	if err != nil {
		return Path{}, fmt.Errorf("path %q: %w", expr, err)
	}
	return Path{Raw: expr, Head: head, Tail: tail, Broadcast: true}, nil
}

func splitSegments(s string) ([]string, error) {
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("empty segment")
		}
		if strings.ContainsAny(seg, "[]") {
			return nil, fmt.Errorf("unexpected bracket in segment %q", seg)
		}
	}
	return segs, nil
}
