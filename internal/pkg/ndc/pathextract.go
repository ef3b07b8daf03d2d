package ndc

import (
	"fmt"
	"strings"
)

// The upstream document's wrapping depth varies across deployments and
// response modes: the same scalar has been observed at the document root and
// under up to three levels of a generic "data" wrapper. Rather than an
// unbounded structural search, extraction tries a fixed candidate list,
// deepest variant first, so behavior is reproducible and auditable.

const wrapperField = "data"

// candidatePaths, in priority order. The empty path is the document root.
var candidatePaths = [][]string{
	{wrapperField, wrapperField, wrapperField},
	{wrapperField, wrapperField},
	{wrapperField},
	{},
}

// PathMatch is an extracted scalar together with the path that yielded it,
// for diagnostics.
type PathMatch struct {
	Value string
	Path  string
}

// ExtractScalar locates the named field in the document, trying each
// candidate path in order. Returns ErrIdentifierNotFound when no candidate
// yields a value; "not found" is a distinct condition, never an empty
// string.
func ExtractScalar(root map[string]interface{}, field string) (PathMatch, error) {
	for _, path := range candidatePaths {
		node := root
		ok := true

		for _, key := range path {
			child, found := node[key].(map[string]interface{})
			if !found {
				ok = false

				break
			}

			node = child
		}

		if !ok {
			continue
		}

		value, found := scalarAt(node, field)
		if !found {
			continue
		}

		return PathMatch{
			Value: value,
			Path:  pathLabel(path, field),
		}, nil
	}

	return PathMatch{}, fmt.Errorf("%w: field %q", ErrIdentifierNotFound, field)
}

// scalarAt reads the field at one node. The upstream emits the shopping
// response id either as a plain string or wrapped as
// {"ResponseID": {"value": "..."}}.
func scalarAt(node map[string]interface{}, field string) (string, bool) {
	raw, ok := node[field]
	if !ok {
		return "", false
	}

	switch v := raw.(type) {
	case string:
		if v == "" {
			return "", false
		}

		return v, true

	case map[string]interface{}:
		inner, ok := v["ResponseID"].(map[string]interface{})
		if !ok {
			inner = v
		}

		if value, ok := inner["value"].(string); ok && value != "" {
			return value, true
		}
	}

	return "", false
}

func pathLabel(path []string, field string) string {
	if len(path) == 0 {
		return field
	}

	return strings.Join(path, ".") + "." + field
}
