package convert

import "github.com/nucleus/cmis-core/pkg/cmis"

// CollectExtensions turns every key of obj outside known into extension
// elements, in wire order. It returns nil when there is nothing to collect.
func CollectExtensions(obj *Object, known ...string) []*cmis.ExtensionElement {
	return collectExtensions(obj, keys(known...))
}

func collectExtensions(obj *Object, known keySet) []*cmis.ExtensionElement {
	var out []*cmis.ExtensionElement
	for _, k := range obj.Keys() {
		if known.has(k) {
			continue
		}
		out = append(out, extensionElements(k, obj.values[k])...)
	}
	return out
}

// extensionElements converts one wire value. Arrays expand into one element
// per item under the same name, nested arrays included.
func extensionElements(name string, v any) []*cmis.ExtensionElement {
	switch x := v.(type) {
	case *Object:
		el := &cmis.ExtensionElement{Name: name}
		for _, k := range x.keys {
			el.Children = append(el.Children, extensionElements(k, x.values[k])...)
		}
		return []*cmis.ExtensionElement{el}
	case []any:
		var out []*cmis.ExtensionElement
		for _, item := range x {
			out = append(out, extensionElements(name, item)...)
		}
		return out
	case nil:
		return []*cmis.ExtensionElement{{Name: name}}
	}

	s, ok := scalarText(v)
	if !ok {
		s = jsonKind(v)
	}
	return []*cmis.ExtensionElement{cmis.NewExtensionLeaf(name, s)}
}
