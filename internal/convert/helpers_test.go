package convert

import (
	"testing"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

func mustParse(t *testing.T, doc string) any {
	t.Helper()
	v, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return v
}

// mapResolver serves fixed definitions and counts lookups.
type mapResolver struct {
	defs  map[string]*cmis.TypeDefinition
	errs  map[string]error
	calls map[string]int
}

func newMapResolver(defs ...*cmis.TypeDefinition) *mapResolver {
	r := &mapResolver{
		defs:  make(map[string]*cmis.TypeDefinition),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
	for _, d := range defs {
		r.defs[d.ID] = d
	}
	return r
}

func (r *mapResolver) TypeDefinition(typeID string) (*cmis.TypeDefinition, error) {
	r.calls[typeID]++
	if err, ok := r.errs[typeID]; ok {
		return nil, err
	}
	if d, ok := r.defs[typeID]; ok {
		return d, nil
	}
	return nil, cmis.Errorf(cmis.ErrTypeNotFound, "type %q", typeID)
}

func typeDef(id string, base cmis.BaseTypeID, props ...*cmis.PropertyDefinition) *cmis.TypeDefinition {
	td := &cmis.TypeDefinition{ID: id, BaseTypeID: base}
	for _, p := range props {
		td.AddPropertyDefinition(p)
	}
	return td
}

func propDef(id string, typ cmis.PropertyType) *cmis.PropertyDefinition {
	return &cmis.PropertyDefinition{
		ID:           id,
		PropertyType: typ,
		DisplayName:  id + " display",
		QueryName:    id,
		LocalName:    id + "-local",
	}
}
