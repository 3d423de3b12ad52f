package cmis

// ExtensionElement is a node of the tree built from wire fields the binding
// does not model. A node carries either a scalar Value or Children, never both.
type ExtensionElement struct {
	Name     string
	Value    *string
	Children []*ExtensionElement
}

// NewExtensionLeaf returns an element holding a scalar value.
func NewExtensionLeaf(name, value string) *ExtensionElement {
	return &ExtensionElement{Name: name, Value: &value}
}

// NewExtensionNode returns an element holding children.
func NewExtensionNode(name string, children ...*ExtensionElement) *ExtensionElement {
	return &ExtensionElement{Name: name, Children: children}
}

// IsLeaf reports whether the element has no children.
func (e *ExtensionElement) IsLeaf() bool {
	return len(e.Children) == 0
}

// StringValue returns the scalar value, or "" for null or nested elements.
func (e *ExtensionElement) StringValue() string {
	if e.Value == nil {
		return ""
	}
	return *e.Value
}

// Child returns the first direct child with the given name.
func (e *ExtensionElement) Child(name string) *ExtensionElement {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Extensions is embedded by every entity that can carry extension data.
type Extensions struct {
	Extensions []*ExtensionElement
}

// Extension returns the first top-level extension with the given name.
func (x *Extensions) Extension(name string) *ExtensionElement {
	for _, e := range x.Extensions {
		if e.Name == name {
			return e
		}
	}
	return nil
}
