package cmis

import (
	"fmt"
	"math/big"
	"time"
)

// AcceptsValue reports whether v has the Go type used for values of t:
// string for string/id/html/uri, bool, *big.Int, *big.Float and time.Time.
func (t PropertyType) AcceptsValue(v any) bool {
	switch x := v.(type) {
	case string:
		return t.IsStringLike()
	case bool:
		return t == PropertyTypeBoolean
	case *big.Int:
		return t == PropertyTypeInteger && x != nil
	case *big.Float:
		return t == PropertyTypeDecimal && x != nil
	case time.Time:
		return t == PropertyTypeDateTime
	}
	return false
}

// PropertyData is one property of an object: an id, a type and its values.
type PropertyData struct {
	ID          string
	Type        PropertyType
	DisplayName string
	LocalName   string
	QueryName   string
	Values      []any
	Extensions
}

// NewPropertyData builds a property and checks every value against typ.
func NewPropertyData(id string, typ PropertyType, values ...any) (*PropertyData, error) {
	p := &PropertyData{ID: id, Type: typ}
	for _, v := range values {
		if err := p.AddValue(v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// AddValue appends a value after checking its type.
func (p *PropertyData) AddValue(v any) error {
	if !p.Type.AcceptsValue(v) {
		return NewError(ErrInvalidPropertyValue,
			fmt.Sprintf("property %q of type %s cannot hold %T", p.ID, p.Type, v))
	}
	p.Values = append(p.Values, v)
	return nil
}

// FirstValue returns the first value, or nil when the property is empty.
func (p *PropertyData) FirstValue() any {
	if len(p.Values) == 0 {
		return nil
	}
	return p.Values[0]
}

// Properties is an insertion-ordered set of PropertyData keyed by id.
type Properties struct {
	list  []*PropertyData
	index map[string]int
	Extensions
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{index: make(map[string]int)}
}

// Add stores p. A property with the same id is replaced in place.
func (ps *Properties) Add(p *PropertyData) {
	if p == nil {
		return
	}
	if ps.index == nil {
		ps.index = make(map[string]int)
	}
	if i, ok := ps.index[p.ID]; ok {
		ps.list[i] = p
		return
	}
	ps.index[p.ID] = len(ps.list)
	ps.list = append(ps.list, p)
}

// Get returns the property with the given id, or nil.
func (ps *Properties) Get(id string) *PropertyData {
	if ps == nil {
		return nil
	}
	i, ok := ps.index[id]
	if !ok {
		return nil
	}
	return ps.list[i]
}

// List returns the properties in insertion order.
func (ps *Properties) List() []*PropertyData {
	if ps == nil {
		return nil
	}
	return ps.list
}

// Len returns the number of properties.
func (ps *Properties) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.list)
}

// StringValue returns the first value of a string-like property.
func (ps *Properties) StringValue(id string) string {
	p := ps.Get(id)
	if p == nil {
		return ""
	}
	s, _ := p.FirstValue().(string)
	return s
}

// StringValues returns all values of a string-like property.
func (ps *Properties) StringValues(id string) []string {
	p := ps.Get(id)
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.Values))
	for _, v := range p.Values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
