package convert

import "testing"

func TestConvertObjectList(t *testing.T) {
	doc := `{
		"objects": [
			{"succinctProperties": {"cmis:objectId": "a"}},
			{"succinctProperties": {"cmis:objectId": "b"}}
		],
		"hasMoreItems": true,
		"numItems": 10,
		"changeLogToken": "tok-7"
	}`
	list, err := ConvertObjectList(mustParse(t, doc), nil, false)
	if err != nil {
		t.Fatalf("ConvertObjectList() error = %v", err)
	}
	if len(list.Objects) != 2 || list.Objects[0].ID() != "a" || list.Objects[1].ID() != "b" {
		t.Errorf("objects = %+v", list.Objects)
	}
	if list.HasMoreItems == nil || !*list.HasMoreItems || list.NumItems == nil || *list.NumItems != 10 {
		t.Errorf("paging = %v/%v", list.HasMoreItems, list.NumItems)
	}
	if list.ChangeLogToken != "tok-7" {
		t.Errorf("changeLogToken = %q", list.ChangeLogToken)
	}
}

func TestConvertQueryResultList(t *testing.T) {
	doc := `{"results": [{"succinctProperties": {"cmis:objectId": "q1"}}], "objects": "ignored-as-extension"}`
	list, err := ConvertObjectList(mustParse(t, doc), nil, true)
	if err != nil {
		t.Fatalf("ConvertObjectList() error = %v", err)
	}
	if len(list.Objects) != 1 || list.Objects[0].ID() != "q1" {
		t.Errorf("objects = %+v", list.Objects)
	}
	if list.HasMoreItems != nil || list.NumItems != nil {
		t.Error("absent paging fields must stay unknown")
	}
	if list.Extension("objects") == nil {
		t.Error("objects key is an extension for query results")
	}
}

func TestConvertObjectInFolderList(t *testing.T) {
	doc := `{
		"objects": [
			{"object": {"succinctProperties": {"cmis:objectId": "c1"}}, "pathSegment": "one"},
			{"object": {"succinctProperties": {"cmis:objectId": "c2"}}, "pathSegment": "two"}
		],
		"hasMoreItems": false
	}`
	list, err := ConvertObjectInFolderList(mustParse(t, doc), nil)
	if err != nil {
		t.Fatalf("ConvertObjectInFolderList() error = %v", err)
	}
	if len(list.Objects) != 2 || list.Objects[1].PathSegment != "two" || list.Objects[1].Object.ID() != "c2" {
		t.Errorf("objects = %+v", list.Objects)
	}
	if list.HasMoreItems == nil || *list.HasMoreItems {
		t.Error("hasMoreItems should be false")
	}
	if list.NumItems != nil {
		t.Error("numItems should be unknown")
	}
}

func TestConvertDescendants(t *testing.T) {
	doc := `[
		{"object": {"object": {"succinctProperties": {"cmis:objectId": "root-child"}}, "pathSegment": "a"},
		 "children": [
			{"object": {"object": {"succinctProperties": {"cmis:objectId": "grandchild"}}, "pathSegment": "b"}}
		 ]}
	]`
	tree, err := ConvertDescendants(mustParse(t, doc), nil)
	if err != nil {
		t.Fatalf("ConvertDescendants() error = %v", err)
	}
	if len(tree) != 1 || tree[0].Object.Object.ID() != "root-child" {
		t.Fatalf("tree = %+v", tree)
	}
	if len(tree[0].Children) != 1 || tree[0].Children[0].Object.PathSegment != "b" {
		t.Errorf("children = %+v", tree[0].Children)
	}
	if tree[0].Children[0].Children != nil {
		t.Error("leaf should have no children")
	}
}

func TestConvertObjectParents(t *testing.T) {
	doc := `[{"object": {"succinctProperties": {"cmis:objectId": "folder-1"}}, "relativePathSegment": "doc.txt"}]`
	parents, err := ConvertObjectParents(mustParse(t, doc), nil)
	if err != nil {
		t.Fatalf("ConvertObjectParents() error = %v", err)
	}
	if len(parents) != 1 || parents[0].Object.ID() != "folder-1" || parents[0].RelativePathSegment != "doc.txt" {
		t.Errorf("parents = %+v", parents)
	}
}

func TestListingsSkipNullEntries(t *testing.T) {
	t.Run("objects", func(t *testing.T) {
		list, err := ConvertObjectList(mustParse(t, `{"objects": [null, {"succinctProperties": {"cmis:objectId": "a"}}]}`), nil, false)
		if err != nil {
			t.Fatalf("ConvertObjectList() error = %v", err)
		}
		if len(list.Objects) != 1 || list.Objects[0].ID() != "a" {
			t.Errorf("objects = %+v", list.Objects)
		}
	})

	t.Run("query results", func(t *testing.T) {
		list, err := ConvertObjectList(mustParse(t, `{"results": [null]}`), nil, true)
		if err != nil {
			t.Fatalf("ConvertObjectList() error = %v", err)
		}
		if len(list.Objects) != 0 {
			t.Errorf("objects = %+v", list.Objects)
		}
	})

	t.Run("folder children", func(t *testing.T) {
		list, err := ConvertObjectInFolderList(mustParse(t, `{"objects": [null]}`), nil)
		if err != nil {
			t.Fatalf("ConvertObjectInFolderList() error = %v", err)
		}
		if len(list.Objects) != 0 {
			t.Errorf("objects = %+v", list.Objects)
		}
	})

	t.Run("descendants", func(t *testing.T) {
		tree, err := ConvertDescendants(mustParse(t, `[null, {"object": {"object": {"succinctProperties": {"cmis:objectId": "x"}}}, "children": [null]}]`), nil)
		if err != nil {
			t.Fatalf("ConvertDescendants() error = %v", err)
		}
		if len(tree) != 1 || tree[0].Object.Object.ID() != "x" || len(tree[0].Children) != 0 {
			t.Errorf("tree = %+v", tree)
		}
	})
}
