package browser

import (
	"context"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/form"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// Values of the returnVersion parameter.
const (
	returnLatest      = "latest"
	returnLatestMajor = "latestmajor"
)

// CheckInOptions carries the optional parts of a check-in.
type CheckInOptions struct {
	CreateOptions
	// Major is nil for the server default, a major version.
	Major   *bool
	Comment string
	Content *cmis.ContentStream
}

// CheckOut checks out a document and returns the private working copy.
func (b *Binding) CheckOut(ctx context.Context, repositoryID, objectID string) (*cmis.ObjectData, error) {
	if objectID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "object id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return nil, err
	}

	raw, err := b.postJSON(ctx, target, form.NewForm(actionCheckOut).AddSuccinct(b.succinct))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// CancelCheckOut discards a private working copy.
func (b *Binding) CancelCheckOut(ctx context.Context, repositoryID, objectID string) error {
	if objectID == "" {
		return cmis.NewError(cmis.ErrInvalidArgument, "object id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return err
	}
	return b.postAndConsume(ctx, target, form.NewForm(actionCancelCheckOut))
}

// CheckIn checks in a private working copy and returns the new version.
func (b *Binding) CheckIn(ctx context.Context, repositoryID, objectID string, props *cmis.Properties, opts CheckInOptions) (*cmis.ObjectData, error) {
	if objectID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "object id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionCheckIn).
		Add(paramMajor, opts.Major).
		AddProperties(props).
		Add(paramCheckinComment, opts.Comment).
		SetContent(opts.Content)
	b.addCreateOptions(f, opts.CreateOptions)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// GetAllVersions lists the versions of the version series objectID belongs
// to, latest first.
func (b *Binding) GetAllVersions(ctx context.Context, repositoryID, objectID, filter string, includeAllowableActions bool) ([]*cmis.ObjectData, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorVersions)
	if err != nil {
		return nil, err
	}
	setString(query, paramFilter, filter)
	setBool(query, paramIncludeAllowableActions, includeAllowableActions)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjects(raw, b.resolver(ctx, repositoryID))
}

// GetObjectOfLatestVersion reads the latest version, or the latest major
// version when major is set, of the series objectID belongs to.
func (b *Binding) GetObjectOfLatestVersion(ctx context.Context, repositoryID, objectID string, major bool, opts ObjectOptions) (*cmis.ObjectData, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorObject)
	if err != nil {
		return nil, err
	}
	opts.apply(query)
	query.Set(paramReturnVersion, returnVersion(major))

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// GetPropertiesOfLatestVersion is GetProperties for the latest version.
func (b *Binding) GetPropertiesOfLatestVersion(ctx context.Context, repositoryID, objectID string, major bool, filter string) (*cmis.Properties, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorProperties)
	if err != nil {
		return nil, err
	}
	setString(query, paramFilter, filter)
	query.Set(paramReturnVersion, returnVersion(major))

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	if b.succinct {
		return convert.ConvertSuccinctProperties(raw, nil, b.resolver(ctx, repositoryID))
	}
	return convert.ConvertProperties(raw, nil)
}

func returnVersion(major bool) string {
	if major {
		return returnLatestMajor
	}
	return returnLatest
}
