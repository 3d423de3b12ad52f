package cmis

// ObjectList is a page of objects. HasMoreItems and NumItems are nil when
// the server did not report them.
type ObjectList struct {
	Objects        []*ObjectData
	HasMoreItems   *bool
	NumItems       *int64
	ChangeLogToken string
	Extensions
}

// ObjectInFolderData is a child of a folder.
type ObjectInFolderData struct {
	Object      *ObjectData
	PathSegment string
	Extensions
}

// ObjectInFolderList is a page of folder children.
type ObjectInFolderList struct {
	Objects      []*ObjectInFolderData
	HasMoreItems *bool
	NumItems     *int64
	Extensions
}

// ObjectInFolderContainer is a node of a descendants or folder tree.
type ObjectInFolderContainer struct {
	Object   *ObjectInFolderData
	Children []*ObjectInFolderContainer
	Extensions
}

// ObjectParentData is a parent folder of an object.
type ObjectParentData struct {
	Object              *ObjectData
	RelativePathSegment string
	Extensions
}

// TypeDefinitionList is a page of type definitions.
type TypeDefinitionList struct {
	Types        []*TypeDefinition
	HasMoreItems *bool
	NumItems     *int64
	Extensions
}

// TypeDefinitionContainer is a node of a type hierarchy.
type TypeDefinitionContainer struct {
	Type     *TypeDefinition
	Children []*TypeDefinitionContainer
	Extensions
}

// MoreItems reports whether another page follows. Unknown counts as no.
func MoreItems(hasMoreItems *bool) bool {
	return hasMoreItems != nil && *hasMoreItems
}
