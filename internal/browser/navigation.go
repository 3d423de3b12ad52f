package browser

import (
	"context"
	"net/url"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/transport"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// GetChildren returns one page of the children of a folder.
func (b *Binding) GetChildren(ctx context.Context, repositoryID, folderID string, opts ListOptions) (*cmis.ObjectInFolderList, error) {
	target, query, err := b.objectURL(ctx, repositoryID, folderID, selectorChildren)
	if err != nil {
		return nil, err
	}
	opts.apply(query)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjectInFolderList(raw, b.resolver(ctx, repositoryID))
}

// ChildIterator yields every child of a folder, one page at a time.
type ChildIterator = transport.PaginatedIterator[*cmis.ObjectInFolderData]

// Children iterates over all children of a folder. opts.MaxItems is the
// page size and opts.SkipCount the first item; paging stops when the
// server reports no more items.
func (b *Binding) Children(ctx context.Context, repositoryID, folderID string, opts ListOptions) (*ChildIterator, error) {
	target, query, err := b.objectURL(ctx, repositoryID, folderID, selectorChildren)
	if err != nil {
		return nil, err
	}
	pageSize, skip := opts.MaxItems, opts.SkipCount
	opts.MaxItems, opts.SkipCount, opts.Depth = 0, 0, 0
	opts.apply(query)
	b.succinctParam(query)

	paginator := transport.NewSkipCountPaginator(target, query, pageSize)
	paginator.SkipCount = skip
	resolver := b.resolver(ctx, repositoryID)

	return transport.NewPaginatedIterator(ctx, b.client, paginator.FirstPage(), paginator,
		func(resp *transport.Response) ([]*cmis.ObjectInFolderData, error) {
			raw, err := convert.Parse(resp.Body)
			if err != nil {
				return nil, err
			}
			list, err := convert.ConvertObjectInFolderList(raw, resolver)
			if err != nil || list == nil {
				return nil, err
			}
			return list.Objects, nil
		}), nil
}

// GetDescendants returns the subtree of a folder, documents included.
func (b *Binding) GetDescendants(ctx context.Context, repositoryID, folderID string, opts ListOptions) ([]*cmis.ObjectInFolderContainer, error) {
	return b.tree(ctx, repositoryID, folderID, selectorDescendants, opts)
}

// GetFolderTree returns the folder subtree of a folder.
func (b *Binding) GetFolderTree(ctx context.Context, repositoryID, folderID string, opts ListOptions) ([]*cmis.ObjectInFolderContainer, error) {
	return b.tree(ctx, repositoryID, folderID, selectorFolderTree, opts)
}

func (b *Binding) tree(ctx context.Context, repositoryID, folderID, selector string, opts ListOptions) ([]*cmis.ObjectInFolderContainer, error) {
	target, query, err := b.objectURL(ctx, repositoryID, folderID, selector)
	if err != nil {
		return nil, err
	}
	opts.OrderBy, opts.MaxItems, opts.SkipCount = "", 0, 0
	opts.apply(query)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertDescendants(raw, b.resolver(ctx, repositoryID))
}

// GetObjectParents returns the parent folders of an object.
func (b *Binding) GetObjectParents(ctx context.Context, repositoryID, objectID string, opts ObjectOptions, includeRelativePathSegment bool) ([]*cmis.ObjectParentData, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorParents)
	if err != nil {
		return nil, err
	}
	opts.IncludePolicyIDs, opts.IncludeACL = false, false
	opts.apply(query)
	setBool(query, paramIncludeRelativePathSegment, includeRelativePathSegment)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjectParents(raw, b.resolver(ctx, repositoryID))
}

// GetFolderParent returns the parent of a folder.
func (b *Binding) GetFolderParent(ctx context.Context, repositoryID, folderID, filter string) (*cmis.ObjectData, error) {
	target, query, err := b.objectURL(ctx, repositoryID, folderID, selectorParent)
	if err != nil {
		return nil, err
	}
	setString(query, paramFilter, filter)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}

// GetCheckedOutDocs lists the private working copies of a folder, or of the
// whole repository when folderID is empty.
func (b *Binding) GetCheckedOutDocs(ctx context.Context, repositoryID, folderID string, opts ListOptions) (*cmis.ObjectList, error) {
	var (
		target string
		query  url.Values
		err    error
	)
	if folderID == "" {
		target, query, err = b.repositoryURL(ctx, repositoryID, selectorCheckedOut)
	} else {
		target, query, err = b.objectURL(ctx, repositoryID, folderID, selectorCheckedOut)
	}
	if err != nil {
		return nil, err
	}
	opts.IncludePathSegment, opts.Depth = false, 0
	opts.apply(query)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjectList(raw, b.resolver(ctx, repositoryID), false)
}
