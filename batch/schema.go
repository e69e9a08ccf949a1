package batch

import "golang.org/x/xerrors"

// Field is a single (name, logical type) pair in a Schema.
type Field struct {
	Name string
	Type LogicalType
	Unit TimeUnit // only meaningful when Type == Timestamp
}

// Schema is an ordered, name-unique sequence of Fields. A Schema is fixed
// for the lifetime of a pipeline: stages may append columns via Append, but
// may never remove or retype a declared Field.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a Schema from the given fields, in order. It panics if
// two fields share a name, since a malformed schema is a programming error
// at pipeline-construction time, not a runtime condition.
func NewSchema(fields ...Field) *Schema {
	s := &Schema{index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if _, exists := s.index[f.Name]; exists {
			panic("batch: duplicate field name " + f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Fields returns the Schema's fields in declaration order. The returned
// slice must not be mutated.
func (s *Schema) Fields() []Field { return s.fields }

// Names returns the Schema's field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether name is a declared field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Field returns the declared field for name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Append returns a new Schema with f appended. It returns an error instead
// of mutating s, since a Schema is shared by every in-flight Batch and must
// never change out from under them.
func (s *Schema) Append(f Field) (*Schema, error) {
	if s.Has(f.Name) {
		return nil, xerrors.Errorf("batch: schema already declares column %q", f.Name)
	}
	next := make([]Field, len(s.fields), len(s.fields)+1)
	copy(next, s.fields)
	next = append(next, f)
	return NewSchema(next...), nil
}
