package convert

import (
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// TypeResolver looks up type definitions of the repository being read.
type TypeResolver interface {
	TypeDefinition(typeID string) (*cmis.TypeDefinition, error)
}

// TypeResolverFunc adapts a function to TypeResolver.
type TypeResolverFunc func(typeID string) (*cmis.TypeDefinition, error)

func (f TypeResolverFunc) TypeDefinition(typeID string) (*cmis.TypeDefinition, error) {
	return f(typeID)
}

// =============================================================================
// EXPLICIT PROPERTIES
// =============================================================================

// ConvertProperties converts the explicit property form: an object of
// property objects keyed by id, or an array of property objects. Each entry
// names its own type.
func ConvertProperties(raw, rawExtension any) (*cmis.Properties, error) {
	if raw == nil {
		return nil, nil
	}

	var entries []any
	switch x := raw.(type) {
	case *Object:
		for _, k := range x.keys {
			entries = append(entries, x.values[k])
		}
	case []any:
		entries = x
	default:
		return nil, cmis.Errorf(cmis.ErrInvalidResponse, "properties: expected JSON object, got %s", jsonKind(raw))
	}

	result := cmis.NewProperties()
	for _, entry := range entries {
		prop, ok := entry.(*Object)
		if !ok {
			return nil, cmis.Errorf(cmis.ErrInvalidProperty, "property entry is %s, not an object", jsonKind(entry))
		}

		id := prop.String(keyPropID)
		if id == "" {
			return nil, cmis.NewError(cmis.ErrInvalidProperty, "property without id")
		}

		tag := prop.String(keyPropType)
		typ, ok := cmis.ParsePropertyType(tag)
		if !ok {
			return nil, cmis.Errorf(cmis.ErrUnsupportedPropertyType, "property %q has type %q", id, tag)
		}

		values, err := propertyValues(id, typ, prop.Value(keyPropValue))
		if err != nil {
			return nil, err
		}

		pd := &cmis.PropertyData{
			ID:          id,
			Type:        typ,
			DisplayName: prop.String(keyPropDisplayName),
			QueryName:   prop.String(keyPropQueryName),
			LocalName:   prop.String(keyPropLocalName),
			Values:      values,
		}
		pd.Extensions.Extensions = collectExtensions(prop, propertyKeys)
		result.Add(pd)
	}

	if err := attachPropertiesExtension(result, rawExtension); err != nil {
		return nil, err
	}
	return result, nil
}

// =============================================================================
// SUCCINCT PROPERTIES
// =============================================================================

// ConvertSuccinctProperties converts the succinct form, a plain id → value
// object. Types come from the object's type, then its secondary types, then
// the document and folder base types. Properties none of them define get a
// type guessed from their first value.
func ConvertSuccinctProperties(raw, rawExtension any, resolver TypeResolver) (*cmis.Properties, error) {
	obj, err := asObject(raw, "succinctProperties")
	if err != nil || obj == nil {
		return nil, err
	}

	chain, err := newDefinitionChain(obj, resolver)
	if err != nil {
		return nil, err
	}

	result := cmis.NewProperties()
	for _, id := range obj.keys {
		rawValue := obj.values[id]
		def := chain.lookup(id)

		pd := &cmis.PropertyData{ID: id}
		if def != nil {
			pd.Type = def.PropertyType
			pd.DisplayName = def.DisplayName
			pd.QueryName = def.QueryName
			pd.LocalName = def.LocalName
		} else {
			pd.Type = InferPropertyType(firstWireValue(rawValue))
			pd.DisplayName = id
		}

		values, err := propertyValues(id, pd.Type, rawValue)
		if err != nil {
			return nil, err
		}
		pd.Values = values
		result.Add(pd)
	}

	if err := attachPropertiesExtension(result, rawExtension); err != nil {
		return nil, err
	}
	return result, nil
}

// definitionChain resolves property definitions in lookup order.
type definitionChain struct {
	primary     *cmis.TypeDefinition
	secondaries []*cmis.TypeDefinition
	resolver    TypeResolver
	bases       map[cmis.BaseTypeID]*cmis.TypeDefinition
}

func newDefinitionChain(obj *Object, resolver TypeResolver) (*definitionChain, error) {
	c := &definitionChain{resolver: resolver}
	if resolver == nil {
		return c, nil
	}

	if typeID := obj.String(cmis.PropObjectTypeID); typeID != "" {
		def, err := resolver.TypeDefinition(typeID)
		if err != nil {
			return nil, err
		}
		c.primary = def
	}

	for _, typeID := range obj.Strings(cmis.PropSecondaryObjectTypeIDs) {
		if typeID == "" {
			continue
		}
		def, err := resolver.TypeDefinition(typeID)
		if err != nil {
			return nil, err
		}
		if def != nil {
			c.secondaries = append(c.secondaries, def)
		}
	}
	return c, nil
}

func (c *definitionChain) lookup(id string) *cmis.PropertyDefinition {
	if pd := c.primary.PropertyDefinition(id); pd != nil {
		return pd
	}
	for _, def := range c.secondaries {
		if pd := def.PropertyDefinition(id); pd != nil {
			return pd
		}
	}
	for _, base := range []cmis.BaseTypeID{cmis.BaseTypeDocument, cmis.BaseTypeFolder} {
		if pd := c.base(base).PropertyDefinition(id); pd != nil {
			return pd
		}
	}
	return nil
}

// base resolves a base type once per conversion. Failures count as "no
// definition" so the heuristic can still apply.
func (c *definitionChain) base(id cmis.BaseTypeID) *cmis.TypeDefinition {
	if c.resolver == nil {
		return nil
	}
	if def, ok := c.bases[id]; ok {
		return def
	}
	if c.bases == nil {
		c.bases = make(map[cmis.BaseTypeID]*cmis.TypeDefinition, 2)
	}
	def, err := c.resolver.TypeDefinition(string(id))
	if err != nil {
		def = nil
	}
	c.bases[id] = def
	return def
}

// =============================================================================
// HELPERS
// =============================================================================

func propertyValues(id string, typ cmis.PropertyType, raw any) ([]any, error) {
	values, err := DecodeValues(typ, raw)
	if err != nil {
		return nil, cmis.WrapError(cmis.ErrInvalidPropertyValue, "property "+id, err)
	}
	for _, v := range values {
		if err := CheckValue(typ, v); err != nil {
			return nil, cmis.WrapError(cmis.ErrInvalidPropertyValue, "property "+id, err)
		}
	}
	return values, nil
}

func firstWireValue(raw any) any {
	if items, ok := raw.([]any); ok {
		if len(items) == 0 {
			return nil
		}
		return items[0]
	}
	return raw
}

func attachPropertiesExtension(props *cmis.Properties, raw any) error {
	ext, err := asObject(raw, "propertiesExtension")
	if err != nil {
		return err
	}
	if ext != nil {
		props.Extensions.Extensions = collectExtensions(ext, nil)
	}
	return nil
}
