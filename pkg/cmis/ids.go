package cmis

// Well-known property ids.
const (
	PropName                      = "cmis:name"
	PropDescription               = "cmis:description"
	PropObjectID                  = "cmis:objectId"
	PropObjectTypeID              = "cmis:objectTypeId"
	PropBaseTypeID                = "cmis:baseTypeId"
	PropSecondaryObjectTypeIDs    = "cmis:secondaryObjectTypeIds"
	PropCreatedBy                 = "cmis:createdBy"
	PropCreationDate              = "cmis:creationDate"
	PropLastModifiedBy            = "cmis:lastModifiedBy"
	PropLastModificationDate      = "cmis:lastModificationDate"
	PropChangeToken               = "cmis:changeToken"
	PropIsImmutable               = "cmis:isImmutable"
	PropIsLatestVersion           = "cmis:isLatestVersion"
	PropIsMajorVersion            = "cmis:isMajorVersion"
	PropIsLatestMajorVersion      = "cmis:isLatestMajorVersion"
	PropIsPrivateWorkingCopy      = "cmis:isPrivateWorkingCopy"
	PropVersionLabel              = "cmis:versionLabel"
	PropVersionSeriesID           = "cmis:versionSeriesId"
	PropIsVersionSeriesCheckedOut = "cmis:isVersionSeriesCheckedOut"
	PropVersionSeriesCheckedOutBy = "cmis:versionSeriesCheckedOutBy"
	PropVersionSeriesCheckedOutID = "cmis:versionSeriesCheckedOutId"
	PropCheckinComment            = "cmis:checkinComment"
	PropContentStreamLength       = "cmis:contentStreamLength"
	PropContentStreamMimeType     = "cmis:contentStreamMimeType"
	PropContentStreamFileName     = "cmis:contentStreamFileName"
	PropContentStreamID           = "cmis:contentStreamId"
	PropParentID                  = "cmis:parentId"
	PropPath                      = "cmis:path"
	PropAllowedChildObjectTypeIDs = "cmis:allowedChildObjectTypeIds"
	PropSourceID                  = "cmis:sourceId"
	PropTargetID                  = "cmis:targetId"
	PropPolicyText                = "cmis:policyText"
)

// Allowable action names sent by servers.
const (
	ActionCanDeleteObject           = "canDeleteObject"
	ActionCanUpdateProperties       = "canUpdateProperties"
	ActionCanGetFolderTree          = "canGetFolderTree"
	ActionCanGetProperties          = "canGetProperties"
	ActionCanGetObjectRelationships = "canGetObjectRelationships"
	ActionCanGetObjectParents       = "canGetObjectParents"
	ActionCanGetFolderParent        = "canGetFolderParent"
	ActionCanGetDescendants         = "canGetDescendants"
	ActionCanMoveObject             = "canMoveObject"
	ActionCanDeleteContentStream    = "canDeleteContentStream"
	ActionCanCheckOut               = "canCheckOut"
	ActionCanCancelCheckOut         = "canCancelCheckOut"
	ActionCanCheckIn                = "canCheckIn"
	ActionCanSetContentStream       = "canSetContentStream"
	ActionCanGetAllVersions         = "canGetAllVersions"
	ActionCanAddObjectToFolder      = "canAddObjectToFolder"
	ActionCanRemoveObjectFromFolder = "canRemoveObjectFromFolder"
	ActionCanGetContentStream       = "canGetContentStream"
	ActionCanApplyPolicy            = "canApplyPolicy"
	ActionCanGetAppliedPolicies     = "canGetAppliedPolicies"
	ActionCanRemovePolicy           = "canRemovePolicy"
	ActionCanGetChildren            = "canGetChildren"
	ActionCanCreateDocument         = "canCreateDocument"
	ActionCanCreateFolder           = "canCreateFolder"
	ActionCanCreateRelationship     = "canCreateRelationship"
	ActionCanCreateItem             = "canCreateItem"
	ActionCanDeleteTree             = "canDeleteTree"
	ActionCanGetRenditions          = "canGetRenditions"
	ActionCanGetACL                 = "canGetACL"
	ActionCanApplyACL               = "canApplyACL"
)
