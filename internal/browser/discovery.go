package browser

import (
	"context"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/form"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// Query runs a CMIS query statement. The statement is passed through
// unparsed.
func (b *Binding) Query(ctx context.Context, repositoryID, statement string, opts QueryOptions) (*cmis.ObjectList, error) {
	if statement == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "statement must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, "")
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionQuery).
		Add(form.ControlStatement, statement).
		Add(paramSearchAllVersions, opts.SearchAllVersions).
		Add(paramIncludeAllowableActions, opts.IncludeAllowableActions).
		Add(paramIncludeRelationships, opts.IncludeRelationships).
		Add(paramRenditionFilter, opts.RenditionFilter)
	if opts.MaxItems > 0 {
		f.Add(paramMaxItems, opts.MaxItems)
	}
	if opts.SkipCount > 0 {
		f.Add(paramSkipCount, opts.SkipCount)
	}

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjectList(raw, b.resolver(ctx, repositoryID), true)
}

// ChangeOptions controls a change log read.
type ChangeOptions struct {
	IncludeProperties bool
	IncludePolicyIDs  bool
	IncludeACL        bool
	Filter            string
	MaxItems          int
}

// GetContentChanges reads the change log from changeLogToken, or from the
// start when it is empty. The returned list's ChangeLogToken is where the
// next read continues.
func (b *Binding) GetContentChanges(ctx context.Context, repositoryID, changeLogToken string, opts ChangeOptions) (*cmis.ObjectList, error) {
	target, query, err := b.repositoryURL(ctx, repositoryID, selectorContentChanges)
	if err != nil {
		return nil, err
	}
	setString(query, paramChangeLogToken, changeLogToken)
	setBool(query, paramIncludeProperties, opts.IncludeProperties)
	setString(query, paramFilter, opts.Filter)
	setBool(query, paramIncludePolicyIDs, opts.IncludePolicyIDs)
	setBool(query, paramIncludeACL, opts.IncludeACL)
	setPositive(query, paramMaxItems, opts.MaxItems)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjectList(raw, b.resolver(ctx, repositoryID), false)
}

// RelationshipOptions controls a relationship listing. Direction is source,
// target or either.
type RelationshipOptions struct {
	IncludeSubRelationshipTypes bool
	Direction                   string
	TypeID                      string
	Filter                      string
	IncludeAllowableActions     bool
	MaxItems                    int
	SkipCount                   int
}

// GetObjectRelationships lists the relationships an object takes part in.
func (b *Binding) GetObjectRelationships(ctx context.Context, repositoryID, objectID string, opts RelationshipOptions) (*cmis.ObjectList, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorRelationships)
	if err != nil {
		return nil, err
	}
	setBool(query, paramSubRelationshipTypes, opts.IncludeSubRelationshipTypes)
	setString(query, paramRelationshipDirection, opts.Direction)
	setString(query, paramTypeID, opts.TypeID)
	setString(query, paramFilter, opts.Filter)
	setBool(query, paramIncludeAllowableActions, opts.IncludeAllowableActions)
	setPositive(query, paramMaxItems, opts.MaxItems)
	setPositive(query, paramSkipCount, opts.SkipCount)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjectList(raw, b.resolver(ctx, repositoryID), false)
}
