package convert

// keySet holds the wire keys an entity models. Every other key becomes an
// extension element.
type keySet map[string]struct{}

func keys(names ...string) keySet {
	s := make(keySet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s keySet) has(key string) bool {
	_, ok := s[key]
	return ok
}

// Repository info.
const (
	keyRepoID                   = "repositoryId"
	keyRepoName                 = "repositoryName"
	keyRepoDescription          = "repositoryDescription"
	keyRepoVendor               = "vendorName"
	keyRepoProduct              = "productName"
	keyRepoProductVersion       = "productVersion"
	keyRepoRootFolderID         = "rootFolderId"
	keyRepoCapabilities         = "capabilities"
	keyRepoAclCapabilities      = "aclCapabilities"
	keyRepoChangeLogToken       = "latestChangeLogToken"
	keyRepoCmisVersionSupported = "cmisVersionSupported"
	keyRepoThinClientURI        = "thinClientURI"
	keyRepoChangesIncomplete    = "changesIncomplete"
	keyRepoChangesOnType        = "changesOnType"
	keyRepoPrincipalAnonymous   = "principalIdAnonymous"
	keyRepoPrincipalAnyone      = "principalIdAnyone"
	keyRepoExtendedFeatures     = "extendedFeatures"
	keyRepoURL                  = "repositoryUrl"
	keyRepoRootFolderURL        = "rootFolderUrl"
)

var repositoryInfoKeys = keys(
	keyRepoID, keyRepoName, keyRepoDescription, keyRepoVendor, keyRepoProduct,
	keyRepoProductVersion, keyRepoRootFolderID, keyRepoCapabilities, keyRepoAclCapabilities,
	keyRepoChangeLogToken, keyRepoCmisVersionSupported, keyRepoThinClientURI,
	keyRepoChangesIncomplete, keyRepoChangesOnType, keyRepoPrincipalAnonymous,
	keyRepoPrincipalAnyone, keyRepoExtendedFeatures, keyRepoURL, keyRepoRootFolderURL,
)

// Repository capabilities.
const (
	keyCapContentStreamUpdatability = "capabilityContentStreamUpdatability"
	keyCapChanges                   = "capabilityChanges"
	keyCapRenditions                = "capabilityRenditions"
	keyCapGetDescendants            = "capabilityGetDescendants"
	keyCapGetFolderTree             = "capabilityGetFolderTree"
	keyCapMultifiling               = "capabilityMultifiling"
	keyCapUnfiling                  = "capabilityUnfiling"
	keyCapVersionSpecificFiling     = "capabilityVersionSpecificFiling"
	keyCapPWCSearchable             = "capabilityPWCSearchable"
	keyCapPWCUpdatable              = "capabilityPWCUpdatable"
	keyCapAllVersionsSearchable     = "capabilityAllVersionsSearchable"
	keyCapQuery                     = "capabilityQuery"
	keyCapJoin                      = "capabilityJoin"
	keyCapACL                       = "capabilityACL"
)

var capabilityKeys = keys(
	keyCapContentStreamUpdatability, keyCapChanges, keyCapRenditions, keyCapGetDescendants,
	keyCapGetFolderTree, keyCapMultifiling, keyCapUnfiling, keyCapVersionSpecificFiling,
	keyCapPWCSearchable, keyCapPWCUpdatable, keyCapAllVersionsSearchable, keyCapQuery,
	keyCapJoin, keyCapACL,
)

// ACL capabilities.
const (
	keyAclCapSupportedPermissions = "supportedPermissions"
	keyAclCapPropagation          = "propagation"
	keyAclCapPermissions          = "permissions"
	keyAclCapPermissionMapping    = "permissionMapping"
	keyAclCapPermission           = "permission"
	keyAclCapDescription          = "description"
	keyAclCapMappingKey           = "key"
)

var (
	aclCapabilityKeys     = keys(keyAclCapSupportedPermissions, keyAclCapPropagation, keyAclCapPermissions, keyAclCapPermissionMapping)
	permissionDefKeys     = keys(keyAclCapPermission, keyAclCapDescription)
	permissionMappingKeys = keys(keyAclCapMappingKey, keyAclCapPermission)
)

// Type definitions.
const (
	keyTypeID                  = "id"
	keyTypeBaseID              = "baseId"
	keyTypeDescription         = "description"
	keyTypeDisplayName         = "displayName"
	keyTypeControllableACL     = "controllableACL"
	keyTypeControllablePolicy  = "controllablePolicy"
	keyTypeCreatable           = "creatable"
	keyTypeFileable            = "fileable"
	keyTypeFulltextIndexed     = "fulltextIndexed"
	keyTypeIncludedInSupertype = "includedInSupertypeQuery"
	keyTypeQueryable           = "queryable"
	keyTypeLocalName           = "localName"
	keyTypeLocalNamespace      = "localNamespace"
	keyTypeParentID            = "parentId"
	keyTypeQueryName           = "queryName"
	keyTypePropertyDefinitions = "propertyDefinitions"
	keyTypeVersionable         = "versionable"
	keyTypeContentStream       = "contentStreamAllowed"
	keyTypeAllowedSourceTypes  = "allowedSourceTypes"
	keyTypeAllowedTargetTypes  = "allowedTargetTypes"
)

var typeKeys = keys(
	keyTypeID, keyTypeBaseID, keyTypeDescription, keyTypeDisplayName, keyTypeControllableACL,
	keyTypeControllablePolicy, keyTypeCreatable, keyTypeFileable, keyTypeFulltextIndexed,
	keyTypeIncludedInSupertype, keyTypeQueryable, keyTypeLocalName, keyTypeLocalNamespace,
	keyTypeParentID, keyTypeQueryName, keyTypePropertyDefinitions, keyTypeVersionable,
	keyTypeContentStream, keyTypeAllowedSourceTypes, keyTypeAllowedTargetTypes,
)

// Property definitions.
const (
	keyPropDefID             = "id"
	keyPropDefLocalName      = "localName"
	keyPropDefLocalNamespace = "localNamespace"
	keyPropDefDisplayName    = "displayName"
	keyPropDefQueryName      = "queryName"
	keyPropDefDescription    = "description"
	keyPropDefPropertyType   = "propertyType"
	keyPropDefCardinality    = "cardinality"
	keyPropDefUpdatability   = "updatability"
	keyPropDefInherited      = "inherited"
	keyPropDefRequired       = "required"
	keyPropDefQueryable      = "queryable"
	keyPropDefOrderable      = "orderable"
	keyPropDefOpenChoice     = "openChoice"
	keyPropDefDefaultValue   = "defaultValue"
	keyPropDefMaxLength      = "maxLength"
	keyPropDefMinValue       = "minValue"
	keyPropDefMaxValue       = "maxValue"
	keyPropDefPrecision      = "precision"
	keyPropDefResolution     = "resolution"
	keyPropDefChoice         = "choice"

	keyChoiceDisplayName = "displayName"
	keyChoiceValue       = "value"
	keyChoiceChoice      = "choice"
)

var propertyDefinitionKeys = keys(
	keyPropDefID, keyPropDefLocalName, keyPropDefLocalNamespace, keyPropDefDisplayName,
	keyPropDefQueryName, keyPropDefDescription, keyPropDefPropertyType, keyPropDefCardinality,
	keyPropDefUpdatability, keyPropDefInherited, keyPropDefRequired, keyPropDefQueryable,
	keyPropDefOrderable, keyPropDefOpenChoice, keyPropDefDefaultValue, keyPropDefMaxLength,
	keyPropDefMinValue, keyPropDefMaxValue, keyPropDefPrecision, keyPropDefResolution,
	keyPropDefChoice,
)

// Properties (explicit form).
const (
	keyPropID          = "id"
	keyPropLocalName   = "localName"
	keyPropDisplayName = "displayName"
	keyPropQueryName   = "queryName"
	keyPropValue       = "value"
	keyPropType        = "type"
	keyPropCardinality = "cardinality"
)

var propertyKeys = keys(
	keyPropID, keyPropLocalName, keyPropDisplayName, keyPropQueryName,
	keyPropValue, keyPropType, keyPropCardinality,
)

// Objects.
const (
	keyObjProperties          = "properties"
	keyObjSuccinctProperties  = "succinctProperties"
	keyObjPropertiesExtension = "propertiesExtension"
	keyObjAllowableActions    = "allowableActions"
	keyObjRelationships       = "relationships"
	keyObjChangeEventInfo     = "changeEventInfo"
	keyObjAcl                 = "acl"
	keyObjExactACL            = "exactACL"
	keyObjPolicyIDs           = "policyIds"
	keyObjRenditions          = "renditions"
	keyPolicyIDsIDs           = "ids"
)

var (
	objectKeys = keys(
		keyObjProperties, keyObjSuccinctProperties, keyObjPropertiesExtension,
		keyObjAllowableActions, keyObjRelationships, keyObjChangeEventInfo, keyObjAcl,
		keyObjExactACL, keyObjPolicyIDs, keyObjRenditions,
	)
	policyIDKeys = keys(keyPolicyIDsIDs)
)

// Change events.
const (
	keyChangeType = "changeType"
	keyChangeTime = "changeTime"
)

var changeEventKeys = keys(keyChangeType, keyChangeTime)

// Listings and containers.
const (
	keyListObjects        = "objects"
	keyListResults        = "results"
	keyListTypes          = "types"
	keyListHasMoreItems   = "hasMoreItems"
	keyListNumItems       = "numItems"
	keyListChangeLogToken = "changeLogToken"
	keyListObject         = "object"
	keyListType           = "type"
	keyListChildren       = "children"
	keyPathSegment        = "pathSegment"
	keyRelativePath       = "relativePathSegment"
)

var (
	objectListKeys         = keys(keyListObjects, keyListHasMoreItems, keyListNumItems, keyListChangeLogToken)
	queryResultListKeys    = keys(keyListResults, keyListHasMoreItems, keyListNumItems)
	objectInFolderListKeys = keys(keyListObjects, keyListHasMoreItems, keyListNumItems)
	objectInFolderKeys     = keys(keyListObject, keyPathSegment)
	containerKeys          = keys(keyListObject, keyListChildren)
	objectParentKeys       = keys(keyListObject, keyRelativePath)
	typeListKeys           = keys(keyListTypes, keyListHasMoreItems, keyListNumItems)
	typeContainerKeys      = keys(keyListType, keyListChildren)
)

// ACLs.
const (
	keyAclAces        = "aces"
	keyAclIsExact     = "isExact"
	keyAcePrincipal   = "principal"
	keyAcePrincipalID = "principalId"
	keyAcePermissions = "permissions"
	keyAceIsDirect    = "isDirect"
)

var (
	aclKeys       = keys(keyAclAces, keyAclIsExact)
	aceKeys       = keys(keyAcePrincipal, keyAcePrincipalID, keyAcePermissions, keyAceIsDirect)
	principalKeys = keys(keyAcePrincipalID)
)

// Failed to delete.
const keyFailedToDeleteIDs = "ids"

var failedToDeleteKeys = keys(keyFailedToDeleteIDs)

// Renditions.
const (
	keyRenditionStreamID   = "streamId"
	keyRenditionMimeType   = "mimeType"
	keyRenditionLength     = "length"
	keyRenditionKind       = "kind"
	keyRenditionTitle      = "title"
	keyRenditionHeight     = "height"
	keyRenditionWidth      = "width"
	keyRenditionDocumentID = "renditionDocumentId"
)

var renditionKeys = keys(
	keyRenditionStreamID, keyRenditionMimeType, keyRenditionLength, keyRenditionKind,
	keyRenditionTitle, keyRenditionHeight, keyRenditionWidth, keyRenditionDocumentID,
)
