package browser

import (
	"context"
	"strconv"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/transport"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// GetRepositoryInfos lists the repositories of the service.
func (b *Binding) GetRepositoryInfos(ctx context.Context) ([]*cmis.RepositoryInfo, error) {
	return b.repositories(ctx, "")
}

// GetRepositoryInfo returns one repository.
func (b *Binding) GetRepositoryInfo(ctx context.Context, repositoryID string) (*cmis.RepositoryInfo, error) {
	infos, err := b.repositories(ctx, repositoryID)
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.ID == repositoryID {
			return info, nil
		}
	}
	return nil, cmis.Errorf(cmis.ErrObjectNotFound, "repository %s not found", repositoryID)
}

// GetTypeDefinition returns a type definition through the type cache.
func (b *Binding) GetTypeDefinition(ctx context.Context, repositoryID, typeID string) (*cmis.TypeDefinition, error) {
	return b.types.Get(ctx, repositoryID, typeID)
}

// FetchTypeDefinition reads the raw definition from the server. It backs
// the type cache on a miss.
func (b *Binding) FetchTypeDefinition(ctx context.Context, repositoryID, typeID string) ([]byte, error) {
	target, query, err := b.repositoryURL(ctx, repositoryID, selectorTypeDefinition)
	if err != nil {
		return nil, err
	}
	query.Set(paramTypeID, typeID)

	resp, err := b.client.Do(ctx, &transport.Request{URL: target, Query: query})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// GetTypeChildren returns a page of the subtypes of typeID, or the base
// types when typeID is empty. Definitions that carry their properties are
// added to the type cache.
func (b *Binding) GetTypeChildren(ctx context.Context, repositoryID, typeID string, includePropertyDefinitions bool, maxItems, skipCount int) (*cmis.TypeDefinitionList, error) {
	target, query, err := b.repositoryURL(ctx, repositoryID, selectorTypeChildren)
	if err != nil {
		return nil, err
	}
	setString(query, paramTypeID, typeID)
	query.Set(paramIncludePropertyDefinitions, strconv.FormatBool(includePropertyDefinitions))
	setPositive(query, paramMaxItems, maxItems)
	setPositive(query, paramSkipCount, skipCount)

	raw, err := b.read(ctx, target, query)
	if err != nil {
		return nil, err
	}
	list, err := convert.ConvertTypeChildren(raw)
	if err != nil {
		return nil, err
	}
	if includePropertyDefinitions && list != nil {
		for _, td := range list.Types {
			b.types.Put(repositoryID, td)
		}
	}
	return list, nil
}

// GetTypeDescendants returns the type hierarchy below typeID. depth -1 is
// unlimited; 0 leaves the server default.
func (b *Binding) GetTypeDescendants(ctx context.Context, repositoryID, typeID string, depth int, includePropertyDefinitions bool) ([]*cmis.TypeDefinitionContainer, error) {
	target, query, err := b.repositoryURL(ctx, repositoryID, selectorTypeDescendants)
	if err != nil {
		return nil, err
	}
	setString(query, paramTypeID, typeID)
	if depth != 0 {
		query.Set(paramDepth, strconv.Itoa(depth))
	}
	query.Set(paramIncludePropertyDefinitions, strconv.FormatBool(includePropertyDefinitions))

	raw, err := b.read(ctx, target, query)
	if err != nil {
		return nil, err
	}
	containers, err := convert.ConvertTypeDescendants(raw)
	if err != nil {
		return nil, err
	}
	if includePropertyDefinitions {
		b.cacheTypes(repositoryID, containers)
	}
	return containers, nil
}

func (b *Binding) cacheTypes(repositoryID string, containers []*cmis.TypeDefinitionContainer) {
	for _, c := range containers {
		if c == nil {
			continue
		}
		b.types.Put(repositoryID, c.Type)
		b.cacheTypes(repositoryID, c.Children)
	}
}

