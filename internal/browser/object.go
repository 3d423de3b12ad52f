package browser

import (
	"context"
	"log/slog"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/form"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// GetObject reads an object by id.
func (b *Binding) GetObject(ctx context.Context, repositoryID, objectID string, opts ObjectOptions) (*cmis.ObjectData, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorObject)
	if err != nil {
		return nil, err
	}
	opts.apply(query)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// GetObjectByPath reads an object by its path below the root folder.
func (b *Binding) GetObjectByPath(ctx context.Context, repositoryID, path string, opts ObjectOptions) (*cmis.ObjectData, error) {
	target, query, err := b.pathURL(ctx, repositoryID, path, selectorObject)
	if err != nil {
		return nil, err
	}
	opts.apply(query)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// GetProperties reads the properties of an object.
func (b *Binding) GetProperties(ctx context.Context, repositoryID, objectID, filter string) (*cmis.Properties, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorProperties)
	if err != nil {
		return nil, err
	}
	setString(query, paramFilter, filter)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	if b.succinct {
		return convert.ConvertSuccinctProperties(raw, nil, b.resolver(ctx, repositoryID))
	}
	return convert.ConvertProperties(raw, nil)
}

// GetAllowableActions reads the actions the current user may perform.
func (b *Binding) GetAllowableActions(ctx context.Context, repositoryID, objectID string) (*cmis.AllowableActions, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorAllowableActions)
	if err != nil {
		return nil, err
	}
	raw, err := b.read(ctx, target, query)
	if err != nil {
		return nil, err
	}
	return convert.ConvertAllowableActions(raw)
}

// GetRenditions lists the renditions of an object.
func (b *Binding) GetRenditions(ctx context.Context, repositoryID, objectID, renditionFilter string, maxItems, skipCount int) ([]*cmis.RenditionData, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorRenditions)
	if err != nil {
		return nil, err
	}
	setString(query, paramRenditionFilter, renditionFilter)
	setPositive(query, paramMaxItems, maxItems)
	setPositive(query, paramSkipCount, skipCount)

	raw, err := b.read(ctx, target, query)
	if err != nil {
		return nil, err
	}
	return convert.ConvertRenditions(raw)
}

// CreateDocument creates a document, filed in opts.FolderID when set, and
// returns the new object.
func (b *Binding) CreateDocument(ctx context.Context, repositoryID string, props *cmis.Properties, opts DocumentOptions) (*cmis.ObjectData, error) {
	target, err := b.targetURL(ctx, repositoryID, opts.FolderID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionCreateDocument).
		AddProperties(props).
		Add(paramVersioningState, opts.VersioningState).
		SetContent(opts.Content)
	b.addCreateOptions(f, opts.CreateOptions)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// CreateFolder creates a folder in parentID and returns it.
func (b *Binding) CreateFolder(ctx context.Context, repositoryID, parentID string, props *cmis.Properties, opts CreateOptions) (*cmis.ObjectData, error) {
	if parentID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "parent folder id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, parentID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionCreateFolder).AddProperties(props)
	b.addCreateOptions(f, opts)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// CreateDocumentFromSource copies sourceID into a new document, filed in
// opts.FolderID when set. opts.Content is ignored.
func (b *Binding) CreateDocumentFromSource(ctx context.Context, repositoryID, sourceID string, props *cmis.Properties, opts DocumentOptions) (*cmis.ObjectData, error) {
	if sourceID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "source id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, opts.FolderID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionCreateDocumentFromSource).
		Add(paramSourceID, sourceID).
		AddProperties(props).
		Add(paramVersioningState, opts.VersioningState)
	b.addCreateOptions(f, opts.CreateOptions)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// CreateRelationship creates a relationship. Source and target travel as
// the cmis:sourceId and cmis:targetId properties.
func (b *Binding) CreateRelationship(ctx context.Context, repositoryID string, props *cmis.Properties, opts CreateOptions) (*cmis.ObjectData, error) {
	return b.create(ctx, repositoryID, "", actionCreateRelationship, props, opts)
}

// CreatePolicy creates a policy, filed in folderID when set.
func (b *Binding) CreatePolicy(ctx context.Context, repositoryID, folderID string, props *cmis.Properties, opts CreateOptions) (*cmis.ObjectData, error) {
	return b.create(ctx, repositoryID, folderID, actionCreatePolicy, props, opts)
}

// CreateItem creates an item, filed in folderID when set.
func (b *Binding) CreateItem(ctx context.Context, repositoryID, folderID string, props *cmis.Properties, opts CreateOptions) (*cmis.ObjectData, error) {
	return b.create(ctx, repositoryID, folderID, actionCreateItem, props, opts)
}

func (b *Binding) create(ctx context.Context, repositoryID, folderID, action string, props *cmis.Properties, opts CreateOptions) (*cmis.ObjectData, error) {
	target, err := b.targetURL(ctx, repositoryID, folderID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(action).AddProperties(props)
	b.addCreateOptions(f, opts)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// UpdateProperties updates properties of an object and returns the object
// as the server left it. Its id and change token may differ from the input.
func (b *Binding) UpdateProperties(ctx context.Context, repositoryID, objectID, changeToken string, props *cmis.Properties) (*cmis.ObjectData, error) {
	if objectID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "object id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionUpdateProperties).
		AddProperties(props).
		Add(form.ControlChangeToken, changeToken).
		AddSuccinct(b.succinct)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// MoveObject moves an object from sourceFolderID to targetFolderID and
// returns it.
func (b *Binding) MoveObject(ctx context.Context, repositoryID, objectID, targetFolderID, sourceFolderID string) (*cmis.ObjectData, error) {
	if objectID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "object id must be set")
	}
	if targetFolderID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "target folder id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionMove).
		Add(paramTargetFolderID, targetFolderID).
		Add(paramSourceFolderID, sourceFolderID).
		AddSuccinct(b.succinct)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// DeleteObject deletes an object, all its versions when allVersions is set.
func (b *Binding) DeleteObject(ctx context.Context, repositoryID, objectID string, allVersions bool) error {
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return err
	}
	f := form.NewForm(actionDelete).Add(form.ControlAllVersions, allVersions)
	return b.postAndConsume(ctx, target, f)
}

// DeleteTree deletes a folder and its content. unfileObjects is unfile,
// deletesinglefiled or delete; empty leaves the server default. The result
// lists the objects that could not be deleted.
func (b *Binding) DeleteTree(ctx context.Context, repositoryID, folderID string, allVersions bool, unfileObjects string, continueOnFailure bool) (*cmis.FailedToDelete, error) {
	target, err := b.targetURL(ctx, repositoryID, folderID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionDeleteTree).
		Add(form.ControlAllVersions, allVersions).
		Add(form.ControlUnfileObjects, unfileObjects).
		Add(form.ControlContinueOnFailure, continueOnFailure)

	resp, err := b.post(ctx, target, f)
	if err != nil {
		return nil, err
	}
	if isEmptyBody(resp.Body) {
		return &cmis.FailedToDelete{}, nil
	}
	raw, err := convert.Parse(resp.Body)
	if err != nil {
		b.logger.Debug("ignoring unreadable deleteTree response", slog.Any("error", err))
		return &cmis.FailedToDelete{}, nil
	}
	failed, err := convert.ConvertFailedToDelete(raw)
	if err != nil {
		return nil, err
	}
	if failed == nil {
		failed = &cmis.FailedToDelete{}
	}
	return failed, nil
}

// targetURL is the URL form posts go to: the object when objectID is set,
// the repository otherwise.
func (b *Binding) targetURL(ctx context.Context, repositoryID, objectID string) (string, error) {
	if objectID == "" {
		target, query, err := b.repositoryURL(ctx, repositoryID, "")
		return withQuery(target, query), err
	}
	target, query, err := b.objectURL(ctx, repositoryID, objectID, "")
	return withQuery(target, query), err
}

func (b *Binding) addCreateOptions(f *form.Form, opts CreateOptions) {
	f.AddPolicies(opts.Policies).
		AddAddAces(opts.AddACEs).
		AddRemoveAces(opts.RemoveACEs).
		AddSuccinct(b.succinct)
}
