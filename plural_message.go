package cosmo

import (
	"fmt"
	"strings"
)

// BuildPluralMessage turns a table of plural category patterns, such as
// {one: "{0} day", other: "{0} days"}, into a single plural message:
// "{0,plural,one {# day}other {# days}}". Children that are not strings are
// skipped and keys keep their bundle order.
func BuildPluralMessage(node *Node) (string, error) {
	if !node.IsTable() {
		return "", fmt.Errorf("%w: plural patterns must be a table, got %s", ErrUnknownUnit, node.Kind())
	}

	var categories strings.Builder
	for _, key := range node.Keys() {
		child, _ := node.Child(key)
		if child.Kind() != KindString {
			continue
		}
		categories.WriteString(key)
		categories.WriteString(" {")
		categories.WriteString(child.String())
		categories.WriteString("}")
	}

	return "{0,plural," + strings.ReplaceAll(categories.String(), "{0}", "#") + "}", nil
}
