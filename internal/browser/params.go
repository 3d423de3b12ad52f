package browser

import (
	"net/url"
	"strconv"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// Selectors.
const (
	selectorRepositoryInfo   = "repositoryInfo"
	selectorTypeDefinition   = "typeDefinition"
	selectorTypeChildren     = "typeChildren"
	selectorTypeDescendants  = "typeDescendants"
	selectorChildren         = "children"
	selectorDescendants      = "descendants"
	selectorFolderTree       = "folderTree"
	selectorParents          = "parents"
	selectorParent           = "parent"
	selectorCheckedOut       = "checkedOut"
	selectorObject           = "object"
	selectorProperties       = "properties"
	selectorAllowableActions = "allowableActions"
	selectorRenditions       = "renditions"
	selectorACL              = "acl"
	selectorPolicies         = "policies"
	selectorVersions         = "versions"
	selectorRelationships    = "relationships"
	selectorContentChanges   = "contentChanges"
	selectorContent          = "content"
)

// Actions.
const (
	actionCreateDocument   = "createDocument"
	actionCreateFolder     = "createFolder"
	actionUpdateProperties = "update"
	actionDelete           = "delete"
	actionDeleteTree       = "deleteTree"
	actionApplyACL         = "applyACL"
	actionApplyPolicy      = "applyPolicy"
	actionRemovePolicy     = "removePolicy"
	actionQuery            = "query"

	actionCreateDocumentFromSource = "createDocumentFromSource"
	actionCreateRelationship       = "createRelationship"
	actionCreatePolicy             = "createPolicy"
	actionCreateItem               = "createItem"
	actionMove                     = "move"
	actionSetContent               = "setContent"
	actionAppendContent            = "appendContent"
	actionDeleteContent            = "deleteContent"
	actionCheckOut                 = "checkOut"
	actionCancelCheckOut           = "cancelCheckOut"
	actionCheckIn                  = "checkIn"
	actionAddObjectToFolder        = "addObjectToFolder"
	actionRemoveObjectFromFolder   = "removeObjectFromFolder"
)

// Query and form parameters.
const (
	paramSelector                   = "cmisselector"
	paramObjectID                   = "objectId"
	paramTypeID                     = "typeId"
	paramPolicyID                   = "policyId"
	paramDepth                      = "depth"
	paramFilter                     = "filter"
	paramOrderBy                    = "orderBy"
	paramIncludeAllowableActions    = "includeAllowableActions"
	paramIncludeRelationships       = "includeRelationships"
	paramRenditionFilter            = "renditionFilter"
	paramIncludePathSegment         = "includePathSegment"
	paramIncludeRelativePathSegment = "includeRelativePathSegment"
	paramIncludePolicyIDs           = "includePolicyIds"
	paramIncludeACL                 = "includeACL"
	paramIncludePropertyDefinitions = "includePropertyDefinitions"
	paramOnlyBasicPermissions       = "onlyBasicPermissions"
	paramMaxItems                   = "maxItems"
	paramSkipCount                  = "skipCount"
	paramSuccinct                   = "succinct"
	paramVersioningState            = "versioningState"
	paramSearchAllVersions          = "searchAllVersions"
	paramSourceID                   = "sourceId"
	paramFolderID                   = "folderId"
	paramTargetFolderID             = "targetFolderId"
	paramSourceFolderID             = "sourceFolderId"
	paramOverwriteFlag              = "overwriteFlag"
	paramStreamID                   = "streamId"
	paramMajor                      = "major"
	paramCheckinComment             = "checkinComment"
	paramReturnVersion              = "returnVersion"
	paramChangeLogToken             = "changeLogToken"
	paramIncludeProperties          = "includeProperties"
	paramRelationshipDirection      = "relationshipDirection"
	paramSubRelationshipTypes       = "includeSubRelationshipTypes"
)

// ObjectOptions controls what an object read includes.
type ObjectOptions struct {
	Filter                  string
	IncludeAllowableActions bool
	// IncludeRelationships is none, source, target or both.
	IncludeRelationships string
	RenditionFilter      string
	IncludePolicyIDs     bool
	IncludeACL           bool
}

func (o ObjectOptions) apply(q url.Values) {
	setString(q, paramFilter, o.Filter)
	setBool(q, paramIncludeAllowableActions, o.IncludeAllowableActions)
	setString(q, paramIncludeRelationships, o.IncludeRelationships)
	setString(q, paramRenditionFilter, o.RenditionFilter)
	setBool(q, paramIncludePolicyIDs, o.IncludePolicyIDs)
	setBool(q, paramIncludeACL, o.IncludeACL)
}

// ListOptions controls folder listings and tree reads. MaxItems and
// SkipCount apply to paged listings, Depth to trees.
type ListOptions struct {
	Filter                  string
	OrderBy                 string
	IncludeAllowableActions bool
	IncludeRelationships    string
	RenditionFilter         string
	IncludePathSegment      bool
	MaxItems                int
	SkipCount               int
	// Depth of a tree read; 0 leaves the server default, -1 is unlimited.
	Depth int
}

func (o ListOptions) apply(q url.Values) {
	setString(q, paramFilter, o.Filter)
	setString(q, paramOrderBy, o.OrderBy)
	setBool(q, paramIncludeAllowableActions, o.IncludeAllowableActions)
	setString(q, paramIncludeRelationships, o.IncludeRelationships)
	setString(q, paramRenditionFilter, o.RenditionFilter)
	setBool(q, paramIncludePathSegment, o.IncludePathSegment)
	setPositive(q, paramMaxItems, o.MaxItems)
	setPositive(q, paramSkipCount, o.SkipCount)
	if o.Depth != 0 {
		q.Set(paramDepth, strconv.Itoa(o.Depth))
	}
}

// CreateOptions carries the optional parts of a create request.
type CreateOptions struct {
	Policies   []string
	AddACEs    *cmis.Acl
	RemoveACEs *cmis.Acl
}

// DocumentOptions extends CreateOptions for documents.
type DocumentOptions struct {
	CreateOptions
	// FolderID files the document; empty creates it unfiled.
	FolderID string
	// VersioningState is none, checkedout, major or minor.
	VersioningState string
	Content         *cmis.ContentStream
}

// QueryOptions controls a query.
type QueryOptions struct {
	SearchAllVersions       bool
	IncludeAllowableActions bool
	IncludeRelationships    string
	RenditionFilter         string
	MaxItems                int
	SkipCount               int
}

// succinctParam adds succinct=true when the binding is succinct.
func (b *Binding) succinctParam(q url.Values) url.Values {
	if b.succinct {
		q.Set(paramSuccinct, "true")
	}
	return q
}

func setString(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}

func setBool(q url.Values, key string, val bool) {
	if val {
		q.Set(key, "true")
	}
}

func setPositive(q url.Values, key string, val int) {
	if val > 0 {
		q.Set(key, strconv.Itoa(val))
	}
}
