package prefs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind identifies the shape of a parsed preference literal.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindTuple
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is a parsed preference literal: a number, a boolean, or a flat tuple
// of numbers.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	Items []Value // KindTuple only; every item is KindInt or KindFloat
}

// ParseLiteral parses a stored preference string such as "1000", "True",
// "(255,0,0)" or "[150, 85]".
//
// Only literals are accepted. Strings, mappings, nested tuples, YAML tags
// other than int/float/bool, and non-finite numbers are rejected, so a value
// planted in the shared database can never be more than data.
func ParseLiteral(text string) (Value, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return Value{}, fmt.Errorf("empty value")
	}
	if strings.ContainsAny(src, "\r\n") {
		return Value{}, fmt.Errorf("value must be a single line")
	}

	// Tuples are written with parentheses; YAML only knows brackets.
	if strings.HasPrefix(src, "(") && strings.HasSuffix(src, ")") {
		src = "[" + src[1:len(src)-1] + "]"
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		return Value{}, fmt.Errorf("not a literal: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return Value{}, fmt.Errorf("not a single literal")
	}

	node := doc.Content[0]
	switch node.Kind {
	case yaml.ScalarNode:
		return parseScalar(node)
	case yaml.SequenceNode:
		if node.Style&yaml.FlowStyle == 0 {
			return Value{}, fmt.Errorf("tuples must be written inline")
		}
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("tuples may only contain numbers")
			}
			item, err := parseScalar(child)
			if err != nil {
				return Value{}, err
			}
			if item.Kind != KindInt && item.Kind != KindFloat {
				return Value{}, fmt.Errorf("tuples may only contain numbers, got %s", item.Kind)
			}
			items = append(items, item)
		}
		return Value{Kind: KindTuple, Items: items}, nil
	default:
		return Value{}, fmt.Errorf("not a number, boolean or tuple")
	}
}

func parseScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!int":
		// YAML would read 070 as octal and also accepts 0x/0o/0b forms.
		// Stored integers are always base 10, the same as Number reads them.
		n, err := strconv.ParseInt(node.Value, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("not a base-10 integer: %s", node.Value)
		}
		return Value{Kind: KindInt, Int: n}, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("invalid number: %s", node.Value)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, fmt.Errorf("number must be finite: %s", node.Value)
		}
		return Value{Kind: KindFloat, Float: f}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("invalid boolean: %s", node.Value)
		}
		return Value{Kind: KindBool, Bool: b}, nil
	default:
		return Value{}, fmt.Errorf("%q is not a number or boolean", node.Value)
	}
}

// Ints returns the tuple items as ints. It fails if v is not a tuple of
// integers.
func (v Value) Ints() ([]int, bool) {
	if v.Kind != KindTuple {
		return nil, false
	}
	out := make([]int, len(v.Items))
	for i, item := range v.Items {
		if item.Kind != KindInt {
			return nil, false
		}
		out[i] = int(item.Int)
	}
	return out, true
}

// String renders v in the form it is stored in: True/False for booleans and
// parenthesised tuples, so clients sharing the database read it back the same.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		return formatBool(v.Bool)
	case KindTuple:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return ""
	}
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
