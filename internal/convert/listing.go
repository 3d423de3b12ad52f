package convert

import "github.com/nucleus/cmis-core/pkg/cmis"

// ConvertObjectList converts an object page. Query results list their
// objects under "results", other listings under "objects".
func ConvertObjectList(raw any, resolver TypeResolver, isQueryResult bool) (*cmis.ObjectList, error) {
	obj, err := asObject(raw, "objectList")
	if err != nil || obj == nil {
		return nil, err
	}

	listKey, known := keyListObjects, objectListKeys
	if isQueryResult {
		listKey, known = keyListResults, queryResultListKeys
	}

	objects, err := ConvertObjects(obj.Value(listKey), resolver)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []*cmis.ObjectData{}
	}

	result := &cmis.ObjectList{
		Objects:      objects,
		HasMoreItems: obj.Bool(keyListHasMoreItems),
		NumItems:     obj.Int64(keyListNumItems),
	}
	if !isQueryResult {
		result.ChangeLogToken = obj.String(keyListChangeLogToken)
	}
	result.Extensions.Extensions = collectExtensions(obj, known)
	return result, nil
}

// ConvertObjectInFolder converts one folder child.
func ConvertObjectInFolder(raw any, resolver TypeResolver) (*cmis.ObjectInFolderData, error) {
	obj, err := asObject(raw, "objectInFolder")
	if err != nil || obj == nil {
		return nil, err
	}

	o, err := ConvertObject(obj.Value(keyListObject), resolver)
	if err != nil {
		return nil, err
	}
	result := &cmis.ObjectInFolderData{Object: o, PathSegment: obj.String(keyPathSegment)}
	result.Extensions.Extensions = collectExtensions(obj, objectInFolderKeys)
	return result, nil
}

// ConvertObjectInFolderList converts a page of folder children.
func ConvertObjectInFolderList(raw any, resolver TypeResolver) (*cmis.ObjectInFolderList, error) {
	obj, err := asObject(raw, "objectInFolderList")
	if err != nil || obj == nil {
		return nil, err
	}

	children, err := asArray(obj.Value(keyListObjects), "objectInFolderList.objects")
	if err != nil {
		return nil, err
	}

	result := &cmis.ObjectInFolderList{
		Objects:      make([]*cmis.ObjectInFolderData, 0, len(children)),
		HasMoreItems: obj.Bool(keyListHasMoreItems),
		NumItems:     obj.Int64(keyListNumItems),
	}
	for _, child := range children {
		data, err := ConvertObjectInFolder(child, resolver)
		if err != nil {
			return nil, err
		}
		if data != nil {
			result.Objects = append(result.Objects, data)
		}
	}
	result.Extensions.Extensions = collectExtensions(obj, objectInFolderListKeys)
	return result, nil
}

// ConvertDescendants converts a descendants or folder tree response.
func ConvertDescendants(raw any, resolver TypeResolver) ([]*cmis.ObjectInFolderContainer, error) {
	arr, err := asArray(raw, "descendants")
	if err != nil || arr == nil {
		return nil, err
	}

	out := make([]*cmis.ObjectInFolderContainer, 0, len(arr))
	for _, item := range arr {
		c, err := ConvertDescendant(item, resolver)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

// ConvertDescendant converts one tree node and its subtree.
func ConvertDescendant(raw any, resolver TypeResolver) (*cmis.ObjectInFolderContainer, error) {
	obj, err := asObject(raw, "descendant")
	if err != nil || obj == nil {
		return nil, err
	}

	inFolder, err := ConvertObjectInFolder(obj.Value(keyListObject), resolver)
	if err != nil {
		return nil, err
	}
	children, err := ConvertDescendants(obj.Value(keyListChildren), resolver)
	if err != nil {
		return nil, err
	}

	result := &cmis.ObjectInFolderContainer{Object: inFolder, Children: children}
	result.Extensions.Extensions = collectExtensions(obj, containerKeys)
	return result, nil
}

// ConvertObjectParents converts the parents of an object.
func ConvertObjectParents(raw any, resolver TypeResolver) ([]*cmis.ObjectParentData, error) {
	arr, err := asArray(raw, "parents")
	if err != nil || arr == nil {
		return nil, err
	}

	out := make([]*cmis.ObjectParentData, 0, len(arr))
	for _, item := range arr {
		child, err := asObject(item, "parent")
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		o, err := ConvertObject(child.Value(keyListObject), resolver)
		if err != nil {
			return nil, err
		}
		data := &cmis.ObjectParentData{Object: o, RelativePathSegment: child.String(keyRelativePath)}
		data.Extensions.Extensions = collectExtensions(child, objectParentKeys)
		out = append(out, data)
	}
	return out, nil
}
