package schema

import (
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Kind is the closed set of value types a record attribute can hold.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindObject
	KindArray
)

var kindNames = map[Kind]string{
	KindNull:    "null",
	KindString:  "string",
	KindInteger: "integer",
	KindFloat:   "float",
	KindBoolean: "boolean",
	KindObject:  "object",
	KindArray:   "array",
}

// dataType spellings accepted in schema documents.
var kindAliases = map[string]Kind{
	"null":     KindNull,
	"NoneType": KindNull,
	"string":   KindString,
	"str":      KindString,
	"integer":  KindInteger,
	"int":      KindInteger,
	"float":    KindFloat,
	"boolean":  KindBoolean,
	"bool":     KindBoolean,
	"object":   KindObject,
	"dict":     KindObject,
	"array":    KindArray,
	"list":     KindArray,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// ParseKind maps a schema dataType to a Kind.
func ParseKind(dataType string) (Kind, bool) {
	k, ok := kindAliases[dataType]
	return k, ok
}

// KindOf tags a decoded JSON value. json.Number literals without a fraction or
// exponent are integers.
func KindOf(v any) Kind {
	switch v := v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBoolean
	case json.Number:
		if strings.ContainsAny(string(v), ".eE") {
			return KindFloat
		}
		return KindInteger
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return KindInteger
	case float32, float64:
		return KindFloat
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	}
	return KindInvalid
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
