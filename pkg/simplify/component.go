package simplify

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// ComponentExtractor copies the referenced component id for instance nodes
// and flattens their property map into an ordered name/value/type list with
// values coerced to text. Non-instance nodes are left untouched.
type ComponentExtractor struct{}

func (ComponentExtractor) Name() string { return "component" }

func (ComponentExtractor) Extract(n *figma.Node, acc *SimplifiedNode, ctx *Context) {
	if n.Type != "INSTANCE" {
		return
	}

	acc.ComponentID = n.ComponentID

	if len(n.ComponentProperties) == 0 {
		return
	}

	props := make([]ComponentProperty, 0, len(n.ComponentProperties))
	for name, prop := range n.ComponentProperties {
		props = append(props, ComponentProperty{
			Name:  name,
			Value: coerceValue(prop.Value),
			Type:  prop.Type,
		})
	}
	// Map iteration order is random; sort for reproducible output.
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })

	acc.ComponentProperties = props
}

// coerceValue renders a raw property value (string, bool, or number) as
// plain text.
func coerceValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// Not a JSON string: booleans and numbers read fine as-is.
	return strings.TrimSpace(string(raw))
}
