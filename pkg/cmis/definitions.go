package cmis

import "math/big"

// Choice is one entry of a property's choice list. Values hold the same Go
// types as PropertyData values of the owning definition.
type Choice struct {
	DisplayName string
	Values      []any
	Choices     []*Choice
}

// PropertyDefinition describes a property of a type.
type PropertyDefinition struct {
	ID             string
	LocalName      string
	LocalNamespace string
	DisplayName    string
	QueryName      string
	Description    string

	PropertyType PropertyType
	Cardinality  Cardinality
	Updatability Updatability

	Inherited  *bool
	Required   *bool
	Queryable  *bool
	Orderable  *bool
	OpenChoice *bool

	DefaultValues []any
	Choices       []*Choice

	// string
	MaxLength *big.Int
	// integer
	MinInteger *big.Int
	MaxInteger *big.Int
	// decimal
	MinDecimal *big.Float
	MaxDecimal *big.Float
	Precision  DecimalPrecision
	// datetime
	Resolution DateTimeResolution

	Extensions
}

// TypeDefinition describes an object type. Property definitions keep the
// order the server listed them in.
type TypeDefinition struct {
	ID             string
	BaseTypeID     BaseTypeID
	ParentTypeID   string
	LocalName      string
	LocalNamespace string
	DisplayName    string
	QueryName      string
	Description    string

	Creatable                *bool
	Fileable                 *bool
	Queryable                *bool
	FulltextIndexed          *bool
	IncludedInSupertypeQuery *bool
	ControllableACL          *bool
	ControllablePolicy       *bool

	// cmis:document
	Versionable          *bool
	ContentStreamAllowed ContentStreamAllowed

	// cmis:relationship
	AllowedSourceTypeIDs []string
	AllowedTargetTypeIDs []string

	propertyDefinitions []*PropertyDefinition
	propertyIndex       map[string]*PropertyDefinition

	Extensions
}

// AddPropertyDefinition appends pd. Adding an id twice keeps the first position
// and the last definition.
func (t *TypeDefinition) AddPropertyDefinition(pd *PropertyDefinition) {
	if pd == nil {
		return
	}
	if t.propertyIndex == nil {
		t.propertyIndex = make(map[string]*PropertyDefinition)
	}
	if _, ok := t.propertyIndex[pd.ID]; ok {
		for i, existing := range t.propertyDefinitions {
			if existing.ID == pd.ID {
				t.propertyDefinitions[i] = pd
			}
		}
	} else {
		t.propertyDefinitions = append(t.propertyDefinitions, pd)
	}
	t.propertyIndex[pd.ID] = pd
}

// PropertyDefinition returns the definition with the given id, or nil.
func (t *TypeDefinition) PropertyDefinition(id string) *PropertyDefinition {
	if t == nil || t.propertyIndex == nil {
		return nil
	}
	return t.propertyIndex[id]
}

// PropertyDefinitions returns the definitions in server order.
func (t *TypeDefinition) PropertyDefinitions() []*PropertyDefinition {
	if t == nil {
		return nil
	}
	return t.propertyDefinitions
}
