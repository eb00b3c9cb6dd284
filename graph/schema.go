package graph

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
)

// FieldType is the semantic type of a node field. The store derives the
// column storage type from it via a fixed mapping; TypeJSON covers every
// annotation outside that mapping and is stored as a prefixed JSON string.
type FieldType int

const (
	// TypeInt maps to a 64-bit integer column.
	TypeInt FieldType = iota
	// TypeString maps to a text column.
	TypeString
	// TypeFloat maps to a double precision column.
	TypeFloat
	// TypeBool maps to a boolean column.
	TypeBool
	// TypeJSON marks a field holding an arbitrary JSON-serializable value.
	// It is stored as a text column whose values carry the JSON content prefix.
	TypeJSON
)

// String returns the name of the field type.
func (t FieldType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// storageType returns the column type used when the field is materialized.
func (t FieldType) storageType() string {
	switch t {
	case TypeInt:
		return "INTEGER"
	case TypeString:
		return "TEXT"
	case TypeFloat:
		return "REAL"
	case TypeBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}

// FieldSpec declares a single field of a node type.
type FieldSpec struct {
	// Type drives column creation and value validation.
	Type FieldType
	// Optional fields may be absent or nil; required fields must carry a
	// value when a Record is constructed.
	Optional bool
	// Validate, when set, is an additional per-value check run after the
	// structural type check. It must not mutate the value.
	Validate func(value any) error
}

// identRe restricts labels and field names to what can be safely interpolated
// into DDL and pattern queries. Parameters cannot bind identifiers, so
// anything else is rejected at schema construction time.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Schema is the explicit type registry for one node label: the set of named,
// typed fields shared by all records of that label. A Schema is immutable
// after construction and safe for concurrent use.
type Schema struct {
	label  string
	fields map[string]FieldSpec
	names  []string // sorted for deterministic statement generation
}

// NewSchema builds a Schema for the given label. Labels and field names must
// be valid identifiers; the field name "id" is reserved for the generated
// primary key.
func NewSchema(label string, fields map[string]FieldSpec) (*Schema, error) {
	if !identRe.MatchString(label) {
		return nil, fmt.Errorf("graph: invalid label %q", label)
	}
	if label == catalogTable {
		return nil, fmt.Errorf("graph: label %q is reserved", label)
	}
	s := &Schema{label: label, fields: make(map[string]FieldSpec, len(fields))}
	for name, spec := range fields {
		if !identRe.MatchString(name) {
			return nil, fmt.Errorf("graph: invalid field name %q in label %q", name, label)
		}
		if name == idColumn {
			return nil, fmt.Errorf("graph: field name %q is reserved in label %q", name, label)
		}
		s.fields[name] = spec
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s, nil
}

// MustSchema is like NewSchema but panics on error. Intended for package-level
// schema declarations.
func MustSchema(label string, fields map[string]FieldSpec) *Schema {
	s, err := NewSchema(label, fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Label returns the table/type name records of this schema are stored under.
func (s *Schema) Label() string { return s.label }

// FieldNames returns the declared field names in deterministic (sorted) order.
func (s *Schema) FieldNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Field returns the spec for a declared field.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	spec, ok := s.fields[name]
	return spec, ok
}

// ValidateField checks a value against the declared field type and the
// field's own validation hook. A nil value is rejected here; absence handling
// is the caller's concern.
func (s *Schema) ValidateField(name string, value any) error {
	spec, ok := s.fields[name]
	if !ok {
		return &ValidationError{Label: s.label, Field: name, Reason: "field not declared"}
	}
	if value == nil {
		return &ValidationError{Label: s.label, Field: name, Reason: "nil value"}
	}
	if err := checkType(spec.Type, value); err != nil {
		return &ValidationError{Label: s.label, Field: name, Reason: err.Error()}
	}
	if spec.Validate != nil {
		if err := spec.Validate(value); err != nil {
			return &ValidationError{Label: s.label, Field: name, Reason: err.Error()}
		}
	}
	return nil
}

// checkType verifies the dynamic Go type of value against the declared
// semantic type. Integer values are accepted for float fields since they are
// exactly representable.
func checkType(t FieldType, value any) error {
	switch t {
	case TypeInt:
		switch value.(type) {
		case int, int32, int64:
			return nil
		}
		return fmt.Errorf("expected integer, got %T", value)
	case TypeString:
		if _, ok := value.(string); ok {
			return nil
		}
		return fmt.Errorf("expected string, got %T", value)
	case TypeFloat:
		switch value.(type) {
		case float32, float64, int, int64:
			return nil
		}
		return fmt.Errorf("expected float, got %T", value)
	case TypeBool:
		if _, ok := value.(bool); ok {
			return nil
		}
		return fmt.Errorf("expected bool, got %T", value)
	case TypeJSON:
		if _, err := json.Marshal(value); err != nil {
			return fmt.Errorf("value is not JSON-serializable: %v", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown field type %d", t)
	}
}
