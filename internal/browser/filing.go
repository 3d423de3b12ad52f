package browser

import (
	"context"

	"github.com/nucleus/cmis-core/internal/form"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// AddObjectToFolder files an object in one more folder.
func (b *Binding) AddObjectToFolder(ctx context.Context, repositoryID, objectID, folderID string, allVersions bool) error {
	if folderID == "" {
		return cmis.NewError(cmis.ErrInvalidArgument, "folder id must be set")
	}
	return b.filing(ctx, repositoryID, objectID,
		form.NewForm(actionAddObjectToFolder).
			Add(paramFolderID, folderID).
			Add(form.ControlAllVersions, allVersions))
}

// RemoveObjectFromFolder unfiles an object from folderID, or from every
// folder when folderID is empty.
func (b *Binding) RemoveObjectFromFolder(ctx context.Context, repositoryID, objectID, folderID string) error {
	return b.filing(ctx, repositoryID, objectID,
		form.NewForm(actionRemoveObjectFromFolder).Add(paramFolderID, folderID))
}

func (b *Binding) filing(ctx context.Context, repositoryID, objectID string, f *form.Form) error {
	if objectID == "" {
		return cmis.NewError(cmis.ErrInvalidArgument, "object id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return err
	}
	return b.postAndConsume(ctx, target, f)
}
