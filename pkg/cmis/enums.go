package cmis

// =============================================================================
// PROPERTY ENUMERATIONS
// =============================================================================

// PropertyType is the data type of a property.
type PropertyType string

const (
	PropertyTypeString   PropertyType = "string"
	PropertyTypeID       PropertyType = "id"
	PropertyTypeBoolean  PropertyType = "boolean"
	PropertyTypeInteger  PropertyType = "integer"
	PropertyTypeDateTime PropertyType = "datetime"
	PropertyTypeDecimal  PropertyType = "decimal"
	PropertyTypeHTML     PropertyType = "html"
	PropertyTypeURI      PropertyType = "uri"
)

var propertyTypes = map[string]PropertyType{
	"string":   PropertyTypeString,
	"id":       PropertyTypeID,
	"boolean":  PropertyTypeBoolean,
	"integer":  PropertyTypeInteger,
	"datetime": PropertyTypeDateTime,
	"decimal":  PropertyTypeDecimal,
	"html":     PropertyTypeHTML,
	"uri":      PropertyTypeURI,
}

// ParsePropertyType maps a wire tag to a PropertyType.
func ParsePropertyType(s string) (PropertyType, bool) {
	t, ok := propertyTypes[s]
	return t, ok
}

// IsStringLike reports whether values of this type are carried as Go strings.
func (t PropertyType) IsStringLike() bool {
	switch t {
	case PropertyTypeString, PropertyTypeID, PropertyTypeHTML, PropertyTypeURI:
		return true
	}
	return false
}

// Cardinality tells whether a property holds one value or many.
type Cardinality string

const (
	CardinalitySingle Cardinality = "single"
	CardinalityMulti  Cardinality = "multi"
)

// ParseCardinality maps a wire tag to a Cardinality.
func ParseCardinality(s string) (Cardinality, bool) {
	switch Cardinality(s) {
	case CardinalitySingle, CardinalityMulti:
		return Cardinality(s), true
	}
	return "", false
}

// Updatability tells when a property may be written.
type Updatability string

const (
	UpdatabilityReadOnly       Updatability = "readonly"
	UpdatabilityReadWrite      Updatability = "readwrite"
	UpdatabilityOnCreate       Updatability = "oncreate"
	UpdatabilityWhenCheckedOut Updatability = "whencheckedout"
)

// ParseUpdatability maps a wire tag to an Updatability.
func ParseUpdatability(s string) (Updatability, bool) {
	switch Updatability(s) {
	case UpdatabilityReadOnly, UpdatabilityReadWrite, UpdatabilityOnCreate, UpdatabilityWhenCheckedOut:
		return Updatability(s), true
	}
	return "", false
}

// DecimalPrecision is the precision of a decimal property.
type DecimalPrecision string

const (
	DecimalPrecision32 DecimalPrecision = "32"
	DecimalPrecision64 DecimalPrecision = "64"
)

// ParseDecimalPrecision maps a wire tag to a DecimalPrecision.
func ParseDecimalPrecision(s string) (DecimalPrecision, bool) {
	switch DecimalPrecision(s) {
	case DecimalPrecision32, DecimalPrecision64:
		return DecimalPrecision(s), true
	}
	return "", false
}

// DateTimeResolution is the resolution of a datetime property.
type DateTimeResolution string

const (
	DateTimeResolutionYear DateTimeResolution = "year"
	DateTimeResolutionDate DateTimeResolution = "date"
	DateTimeResolutionTime DateTimeResolution = "time"
)

// ParseDateTimeResolution maps a wire tag to a DateTimeResolution.
func ParseDateTimeResolution(s string) (DateTimeResolution, bool) {
	switch DateTimeResolution(s) {
	case DateTimeResolutionYear, DateTimeResolutionDate, DateTimeResolutionTime:
		return DateTimeResolution(s), true
	}
	return "", false
}

// =============================================================================
// TYPE ENUMERATIONS
// =============================================================================

// BaseTypeID identifies one of the six base object types.
type BaseTypeID string

const (
	BaseTypeDocument     BaseTypeID = "cmis:document"
	BaseTypeFolder       BaseTypeID = "cmis:folder"
	BaseTypeRelationship BaseTypeID = "cmis:relationship"
	BaseTypePolicy       BaseTypeID = "cmis:policy"
	BaseTypeItem         BaseTypeID = "cmis:item"
	BaseTypeSecondary    BaseTypeID = "cmis:secondary"
)

// ParseBaseTypeID maps a wire tag to a BaseTypeID.
func ParseBaseTypeID(s string) (BaseTypeID, bool) {
	switch BaseTypeID(s) {
	case BaseTypeDocument, BaseTypeFolder, BaseTypeRelationship,
		BaseTypePolicy, BaseTypeItem, BaseTypeSecondary:
		return BaseTypeID(s), true
	}
	return "", false
}

// ContentStreamAllowed tells whether documents of a type carry content.
// The zero value means the server did not say.
type ContentStreamAllowed string

const (
	ContentStreamNotAllowed ContentStreamAllowed = "notallowed"
	ContentStreamAllowedOpt ContentStreamAllowed = "allowed"
	ContentStreamRequired   ContentStreamAllowed = "required"
)

// ParseContentStreamAllowed maps a wire tag to a ContentStreamAllowed.
func ParseContentStreamAllowed(s string) (ContentStreamAllowed, bool) {
	switch ContentStreamAllowed(s) {
	case ContentStreamNotAllowed, ContentStreamAllowedOpt, ContentStreamRequired:
		return ContentStreamAllowed(s), true
	}
	return "", false
}

// ChangeType is the kind of change recorded in a change event.
type ChangeType string

const (
	ChangeTypeCreated  ChangeType = "created"
	ChangeTypeUpdated  ChangeType = "updated"
	ChangeTypeDeleted  ChangeType = "deleted"
	ChangeTypeSecurity ChangeType = "security"
)

// ParseChangeType maps a wire tag to a ChangeType.
func ParseChangeType(s string) (ChangeType, bool) {
	switch ChangeType(s) {
	case ChangeTypeCreated, ChangeTypeUpdated, ChangeTypeDeleted, ChangeTypeSecurity:
		return ChangeType(s), true
	}
	return "", false
}

// =============================================================================
// REPOSITORY CAPABILITY ENUMERATIONS
// =============================================================================

// These are informational and kept open: unknown server values pass through.
type (
	CapabilityContentStreamUpdates string
	CapabilityChanges              string
	CapabilityRenditions           string
	CapabilityQuery                string
	CapabilityJoin                 string
	CapabilityACL                  string
	SupportedPermissions           string
	AclPropagation                 string
)

const (
	ContentStreamUpdatesAnytime CapabilityContentStreamUpdates = "anytime"
	ContentStreamUpdatesPWCOnly CapabilityContentStreamUpdates = "pwconly"
	ContentStreamUpdatesNone    CapabilityContentStreamUpdates = "none"

	ChangesNone          CapabilityChanges = "none"
	ChangesObjectIDsOnly CapabilityChanges = "objectidsonly"
	ChangesProperties    CapabilityChanges = "properties"
	ChangesAll           CapabilityChanges = "all"

	RenditionsNone CapabilityRenditions = "none"
	RenditionsRead CapabilityRenditions = "read"

	QueryNone         CapabilityQuery = "none"
	QueryMetadataOnly CapabilityQuery = "metadataonly"
	QueryFulltextOnly CapabilityQuery = "fulltextonly"
	QueryBothSeparate CapabilityQuery = "bothseparate"
	QueryBothCombined CapabilityQuery = "bothcombined"

	JoinNone          CapabilityJoin = "none"
	JoinInnerOnly     CapabilityJoin = "inneronly"
	JoinInnerAndOuter CapabilityJoin = "innerandouter"

	ACLNone     CapabilityACL = "none"
	ACLDiscover CapabilityACL = "discover"
	ACLManage   CapabilityACL = "manage"

	SupportedPermissionsBasic      SupportedPermissions = "basic"
	SupportedPermissionsRepository SupportedPermissions = "repository"
	SupportedPermissionsBoth       SupportedPermissions = "both"

	AclPropagationRepositoryDetermined AclPropagation = "repositorydetermined"
	AclPropagationObjectOnly           AclPropagation = "objectonly"
	AclPropagationPropagate            AclPropagation = "propagate"
)
