package convert

import (
	"math/big"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// ConvertTypeDefinition converts a type definition. The base type decides
// which type-specific fields are read.
func ConvertTypeDefinition(raw any) (*cmis.TypeDefinition, error) {
	obj, err := asObject(raw, "typeDefinition")
	if err != nil || obj == nil {
		return nil, err
	}

	baseTag := obj.String(keyTypeBaseID)
	base, ok := cmis.ParseBaseTypeID(baseTag)
	if !ok {
		return nil, cmis.Errorf(cmis.ErrUnsupportedBaseType, "type %q has base type %q", obj.String(keyTypeID), baseTag)
	}

	result := &cmis.TypeDefinition{
		ID:                       obj.String(keyTypeID),
		BaseTypeID:               base,
		ParentTypeID:             obj.String(keyTypeParentID),
		LocalName:                obj.String(keyTypeLocalName),
		LocalNamespace:           obj.String(keyTypeLocalNamespace),
		DisplayName:              obj.String(keyTypeDisplayName),
		QueryName:                obj.String(keyTypeQueryName),
		Description:              obj.String(keyTypeDescription),
		Creatable:                obj.Bool(keyTypeCreatable),
		Fileable:                 obj.Bool(keyTypeFileable),
		Queryable:                obj.Bool(keyTypeQueryable),
		FulltextIndexed:          obj.Bool(keyTypeFulltextIndexed),
		IncludedInSupertypeQuery: obj.Bool(keyTypeIncludedInSupertype),
		ControllableACL:          obj.Bool(keyTypeControllableACL),
		ControllablePolicy:       obj.Bool(keyTypeControllablePolicy),
	}

	switch base {
	case cmis.BaseTypeDocument:
		result.Versionable = obj.Bool(keyTypeVersionable)
		if csa, ok := cmis.ParseContentStreamAllowed(obj.String(keyTypeContentStream)); ok {
			result.ContentStreamAllowed = csa
		}
	case cmis.BaseTypeRelationship:
		result.AllowedSourceTypeIDs = obj.Strings(keyTypeAllowedSourceTypes)
		result.AllowedTargetTypeIDs = obj.Strings(keyTypeAllowedTargetTypes)
	}

	defs, err := asObject(obj.Value(keyTypePropertyDefinitions), "propertyDefinitions")
	if err != nil {
		return nil, err
	}
	for _, k := range defs.Keys() {
		pd, err := ConvertPropertyDefinition(defs.values[k])
		if err != nil {
			return nil, err
		}
		result.AddPropertyDefinition(pd)
	}

	result.Extensions.Extensions = collectExtensions(obj, typeKeys)
	return result, nil
}

// ConvertPropertyDefinition converts a property definition, choices included.
func ConvertPropertyDefinition(raw any) (*cmis.PropertyDefinition, error) {
	obj, err := asObject(raw, "propertyDefinition")
	if err != nil || obj == nil {
		return nil, err
	}

	id := obj.String(keyPropDefID)
	tag := obj.String(keyPropDefPropertyType)
	typ, ok := cmis.ParsePropertyType(tag)
	if !ok {
		return nil, cmis.Errorf(cmis.ErrUnsupportedPropertyType, "property definition %q has type %q", id, tag)
	}

	result := &cmis.PropertyDefinition{
		ID:             id,
		LocalName:      obj.String(keyPropDefLocalName),
		LocalNamespace: obj.String(keyPropDefLocalNamespace),
		DisplayName:    obj.String(keyPropDefDisplayName),
		QueryName:      obj.String(keyPropDefQueryName),
		Description:    obj.String(keyPropDefDescription),
		PropertyType:   typ,
		Inherited:      obj.Bool(keyPropDefInherited),
		Required:       obj.Bool(keyPropDefRequired),
		Queryable:      obj.Bool(keyPropDefQueryable),
		Orderable:      obj.Bool(keyPropDefOrderable),
		OpenChoice:     obj.Bool(keyPropDefOpenChoice),
	}
	if c, ok := cmis.ParseCardinality(obj.String(keyPropDefCardinality)); ok {
		result.Cardinality = c
	}
	if u, ok := cmis.ParseUpdatability(obj.String(keyPropDefUpdatability)); ok {
		result.Updatability = u
	}

	switch typ {
	case cmis.PropertyTypeString:
		result.MaxLength = obj.BigInt(keyPropDefMaxLength)
	case cmis.PropertyTypeInteger:
		result.MinInteger = obj.BigInt(keyPropDefMinValue)
		result.MaxInteger = obj.BigInt(keyPropDefMaxValue)
	case cmis.PropertyTypeDecimal:
		result.MinDecimal = decimalField(obj, keyPropDefMinValue)
		result.MaxDecimal = decimalField(obj, keyPropDefMaxValue)
		if p, ok := cmis.ParseDecimalPrecision(obj.String(keyPropDefPrecision)); ok {
			result.Precision = p
		}
	case cmis.PropertyTypeDateTime:
		if r, ok := cmis.ParseDateTimeResolution(obj.String(keyPropDefResolution)); ok {
			result.Resolution = r
		}
	}

	if dv := obj.Value(keyPropDefDefaultValue); dv != nil {
		if result.DefaultValues, err = propertyValues(id, typ, dv); err != nil {
			return nil, err
		}
	}
	if result.Choices, err = convertChoices(id, typ, obj.Value(keyPropDefChoice)); err != nil {
		return nil, err
	}

	result.Extensions.Extensions = collectExtensions(obj, propertyDefinitionKeys)
	return result, nil
}

func convertChoices(id string, typ cmis.PropertyType, raw any) ([]*cmis.Choice, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, nil
	}

	out := make([]*cmis.Choice, 0, len(arr))
	for _, item := range arr {
		obj, err := asObject(item, "choice")
		if err != nil {
			return nil, err
		}
		if obj == nil {
			continue
		}

		choice := &cmis.Choice{DisplayName: obj.String(keyChoiceDisplayName)}
		if choice.Values, err = propertyValues(id, typ, obj.Value(keyChoiceValue)); err != nil {
			return nil, err
		}
		if choice.Choices, err = convertChoices(id, typ, obj.Value(keyChoiceChoice)); err != nil {
			return nil, err
		}
		out = append(out, choice)
	}
	return out, nil
}

func decimalField(obj *Object, key string) *big.Float {
	f, ok := decimalOf(obj.Value(key))
	if !ok {
		return nil
	}
	return f
}

// ConvertTypeChildren converts a page of type definitions.
func ConvertTypeChildren(raw any) (*cmis.TypeDefinitionList, error) {
	obj, err := asObject(raw, "typeChildren")
	if err != nil || obj == nil {
		return nil, err
	}

	types, err := asArray(obj.Value(keyListTypes), "typeChildren.types")
	if err != nil {
		return nil, err
	}

	result := &cmis.TypeDefinitionList{
		Types:        make([]*cmis.TypeDefinition, 0, len(types)),
		HasMoreItems: obj.Bool(keyListHasMoreItems),
		NumItems:     obj.Int64(keyListNumItems),
	}
	for _, item := range types {
		td, err := ConvertTypeDefinition(item)
		if err != nil {
			return nil, err
		}
		result.Types = append(result.Types, td)
	}
	result.Extensions.Extensions = collectExtensions(obj, typeListKeys)
	return result, nil
}

// ConvertTypeDescendants converts a type hierarchy.
func ConvertTypeDescendants(raw any) ([]*cmis.TypeDefinitionContainer, error) {
	arr, err := asArray(raw, "typeDescendants")
	if err != nil || arr == nil {
		return nil, err
	}

	out := make([]*cmis.TypeDefinitionContainer, 0, len(arr))
	for _, item := range arr {
		obj, err := asObject(item, "typeContainer")
		if err != nil {
			return nil, err
		}
		if obj == nil {
			continue
		}

		container := &cmis.TypeDefinitionContainer{}
		if container.Type, err = ConvertTypeDefinition(obj.Value(keyListType)); err != nil {
			return nil, err
		}
		if container.Children, err = ConvertTypeDescendants(obj.Value(keyListChildren)); err != nil {
			return nil, err
		}
		container.Extensions.Extensions = collectExtensions(obj, typeContainerKeys)
		out = append(out, container)
	}
	return out, nil
}
