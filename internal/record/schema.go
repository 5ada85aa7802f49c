package record

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pingcap/errors"
)

// FieldType is the encoded type of a tuple field.
type FieldType int

const (
	Int FieldType = iota
	Real
	VarChar
)

const (
	// IntSize is the encoded width of an Int field.
	IntSize = 4
	// RealSize is the encoded width of a Real field.
	RealSize = 4
	// LengthPrefixSize is the width of the length prefix in front of a VarChar payload.
	LengthPrefixSize = 4
	// PageSize is the capacity of one tuple buffer handed to Next.
	PageSize = 4096
)

func (t FieldType) String() string {
	switch t {
	case Int:
		return "int"
	case Real:
		return "real"
	case VarChar:
		return "varchar"
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// ParseFieldType maps a type name ("int", "real", "varchar") to its FieldType.
func ParseFieldType(name string) (FieldType, error) {
	switch strings.ToLower(name) {
	case "int", "integer":
		return Int, nil
	case "real", "float":
		return Real, nil
	case "varchar", "string":
		return VarChar, nil
	}
	return 0, errors.Errorf("unknown field type %q", name)
}

// Attribute describes one field of a tuple. Length is the declared maximum
// for VarChar fields and is informational only.
type Attribute struct {
	Name   string
	Type   FieldType
	Length int
}

func (a Attribute) String() string {
	if a.Type == VarChar {
		return fmt.Sprintf("%s:%s(%d)", a.Name, a.Type, a.Length)
	}
	return fmt.Sprintf("%s:%s", a.Name, a.Type)
}

// Schema is the ordered list of attributes of a tuple. The order fixes the
// order of fields in the encoding.
type Schema struct {
	attrs []Attribute
}

// NewSchema creates a new schema
func NewSchema(attrs ...Attribute) *Schema {
	s := &Schema{attrs: make([]Attribute, 0, len(attrs))}
	s.attrs = append(s.attrs, attrs...)
	return s
}

func (s *Schema) AddField(name string, fieldType FieldType, length int) {
	s.attrs = append(s.attrs, Attribute{Name: name, Type: fieldType, Length: length})
}

func (s *Schema) AddIntField(name string) {
	s.AddField(name, Int, IntSize)
}

func (s *Schema) AddRealField(name string) {
	s.AddField(name, Real, RealSize)
}

func (s *Schema) AddStringField(name string, length int) {
	s.AddField(name, VarChar, length)
}

// Copy appends the first attribute of other named fieldName, if any.
// It reports whether an attribute was copied.
func (s *Schema) Copy(other *Schema, fieldName string) bool {
	if attr, _, ok := other.Find(fieldName); ok {
		s.attrs = append(s.attrs, attr)
		return true
	}
	return false
}

// CopyAll appends every attribute of other, keeping its order.
func (s *Schema) CopyAll(other *Schema) {
	s.attrs = append(s.attrs, other.attrs...)
}

// Attribute returns the i-th attribute.
func (s *Schema) Attribute(i int) Attribute {
	return s.attrs[i]
}

// Len returns the number of attributes.
func (s *Schema) Len() int {
	return len(s.attrs)
}

// Fields returns the attribute names in schema order.
func (s *Schema) Fields() []string {
	fields := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		fields[i] = a.Name
	}
	return fields
}

// Find returns the first attribute named fieldName and its position.
// Names are matched exactly, case included.
func (s *Schema) Find(fieldName string) (Attribute, int, bool) {
	for i, a := range s.attrs {
		if a.Name == fieldName {
			return a, i, true
		}
	}
	return Attribute{}, -1, false
}

// HasField checks if the schema contains the specified field.
func (s *Schema) HasField(fieldName string) bool {
	_, _, ok := s.Find(fieldName)
	return ok
}

// Type returns the type of the first attribute named fieldName.
func (s *Schema) Type(fieldName string) (FieldType, bool) {
	a, _, ok := s.Find(fieldName)
	return a.Type, ok
}

// NameSet returns the distinct attribute names of the schema.
func (s *Schema) NameSet() mapset.Set[string] {
	set := mapset.NewThreadUnsafeSet[string]()
	for _, a := range s.attrs {
		set.Add(a.Name)
	}
	return set
}

// Validate checks that the schema can describe a base relation: every
// attribute is named, names are unique and types are known.
func (s *Schema) Validate() error {
	seen := mapset.NewThreadUnsafeSet[string]()
	for i, a := range s.attrs {
		if a.Name == "" {
			return errors.Errorf("attribute %d has no name", i)
		}
		if !seen.Add(a.Name) {
			return errors.Errorf("duplicate attribute %q", a.Name)
		}
		if a.Type < Int || a.Type > VarChar {
			return errors.Errorf("attribute %q has unknown type %d", a.Name, int(a.Type))
		}
		if a.Type == VarChar && a.Length < 0 {
			return errors.Errorf("attribute %q has negative length %d", a.Name, a.Length)
		}
	}
	return nil
}

func (s *Schema) String() string {
	parts := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
