package schema

import (
	"fmt"
	"strings"
)

// ValidationError lists every violation found in one record. Its message is
// safe to show to API callers.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "Invalid reqbody: " + strings.Join(e.Messages, ", ")
}

// Validate checks rec against s. With checkMandatory set, missing mandatory
// attributes are reported first; nested objects and array elements are never
// checked for mandatory attributes. All violations are returned together.
func Validate(s Schema, rec map[string]any, checkMandatory bool) error {
	var msgs []string
	if checkMandatory {
		msgs = missingMandatory(s, rec, msgs)
	}
	msgs = checkAttributes(s, rec, msgs)

	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

func missingMandatory(s Schema, rec map[string]any, msgs []string) []string {
	for _, attr := range s.Mandatory() {
		if _, ok := rec[attr]; !ok {
			msgs = append(msgs, attr+" is required.")
		}
	}
	return msgs
}

func checkAttributes(s Schema, rec map[string]any, msgs []string) []string {
	for _, attr := range sortedKeys(rec) {
		node, ok := s[attr]
		if !ok || node == nil {
			msgs = append(msgs, "Unknown attribute "+attr)
			continue
		}

		value := rec[attr]
		want, _ := ParseKind(node.DataType)
		if KindOf(value) != want {
			msgs = append(msgs, fmt.Sprintf("%s should be of type %s", attr, node.DataType))
			continue
		}

		switch v := value.(type) {
		case []any:
			msgs = checkElements(attr, node.SubType, v, msgs)
		case map[string]any:
			msgs = checkAttributes(node.SubType, v, msgs)
		}
	}
	return msgs
}

// checkElements validates each object element against the element schema.
// Without a subType primitive elements are accepted and object elements may
// hold no attributes. With one, non-object elements are reported once.
func checkElements(attr string, sub Schema, elems []any, msgs []string) []string {
	reported := false
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok {
			if len(sub) > 0 && !reported {
				msgs = append(msgs, attr+" should contain only objects")
				reported = true
			}
			continue
		}
		msgs = checkAttributes(sub, obj, msgs)
	}
	return msgs
}
