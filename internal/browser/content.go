package browser

import (
	"bytes"
	"context"
	"fmt"
	"mime"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/form"
	"github.com/nucleus/cmis-core/internal/transport"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// GetContentStream downloads the content of a document, or of the rendition
// streamID when set. A positive length or offset asks for a byte range.
func (b *Binding) GetContentStream(ctx context.Context, repositoryID, objectID, streamID string, offset, length int64) (*cmis.ContentStream, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorContent)
	if err != nil {
		return nil, err
	}
	setString(query, paramStreamID, streamID)

	req := &transport.Request{URL: target, Query: query}
	if r := byteRange(offset, length); r != "" {
		req.Headers = map[string]string{"Range": r}
	}
	resp, err := b.client.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	cs := &cmis.ContentStream{
		MimeType: resp.Headers.Get("Content-Type"),
		Length:   int64(len(resp.Body)),
		Stream:   bytes.NewReader(resp.Body),
	}
	if _, params, err := mime.ParseMediaType(resp.Headers.Get("Content-Disposition")); err == nil {
		cs.Filename = params["filename"]
	}
	return cs, nil
}

func byteRange(offset, length int64) string {
	if offset < 0 {
		offset = 0
	}
	switch {
	case length > 0:
		return fmt.Sprintf("bytes=%d-%d", offset, offset+length-1)
	case offset > 0:
		return fmt.Sprintf("bytes=%d-", offset)
	}
	return ""
}

// SetContentStream replaces the content of a document. Without overwrite
// the server refuses documents that already have content.
func (b *Binding) SetContentStream(ctx context.Context, repositoryID, objectID, changeToken string, overwrite bool, content *cmis.ContentStream) (*cmis.ObjectData, error) {
	if content == nil || content.Stream == nil {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "content stream must be set")
	}
	f := form.NewForm(actionSetContent).
		Add(paramOverwriteFlag, overwrite).
		SetContent(content)
	return b.changeContent(ctx, repositoryID, objectID, changeToken, f)
}

// AppendContentStream appends a chunk to the content of a document.
func (b *Binding) AppendContentStream(ctx context.Context, repositoryID, objectID, changeToken string, isLastChunk bool, content *cmis.ContentStream) (*cmis.ObjectData, error) {
	if content == nil || content.Stream == nil {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "content stream must be set")
	}
	f := form.NewForm(actionAppendContent).
		Add(form.ControlIsLastChunk, isLastChunk).
		SetContent(content)
	return b.changeContent(ctx, repositoryID, objectID, changeToken, f)
}

// DeleteContentStream removes the content of a document.
func (b *Binding) DeleteContentStream(ctx context.Context, repositoryID, objectID, changeToken string) (*cmis.ObjectData, error) {
	return b.changeContent(ctx, repositoryID, objectID, changeToken, form.NewForm(actionDeleteContent))
}

// changeContent posts a content change and returns the document as the
// server left it. Its id and change token may differ from the input.
func (b *Binding) changeContent(ctx context.Context, repositoryID, objectID, changeToken string, f *form.Form) (*cmis.ObjectData, error) {
	if objectID == "" {
		return nil, cmis.NewError(cmis.ErrInvalidArgument, "object id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return nil, err
	}

	f.Add(form.ControlChangeToken, changeToken).AddSuccinct(b.succinct)
	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertObject(raw, b.resolver(ctx, repositoryID))
}
