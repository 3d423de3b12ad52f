package cmis

// RepositoryInfo describes a repository reachable through the binding.
type RepositoryInfo struct {
	ID                   string
	Name                 string
	Description          string
	VendorName           string
	ProductName          string
	ProductVersion       string
	RootFolderID         string
	LatestChangeLogToken string
	CmisVersionSupported string
	ThinClientURI        string
	ChangesIncomplete    *bool
	ChangesOnType        []BaseTypeID
	PrincipalIDAnonymous string
	PrincipalIDAnyone    string

	Capabilities    *RepositoryCapabilities
	AclCapabilities *AclCapabilities

	// Browser binding endpoints for this repository.
	RepositoryURL string
	RootFolderURL string

	Extensions
}

// RepositoryCapabilities lists optional features a repository supports.
type RepositoryCapabilities struct {
	ContentStreamUpdates  CapabilityContentStreamUpdates
	Changes               CapabilityChanges
	Renditions            CapabilityRenditions
	GetDescendants        *bool
	GetFolderTree         *bool
	Multifiling           *bool
	Unfiling              *bool
	VersionSpecificFiling *bool
	PWCSearchable         *bool
	PWCUpdatable          *bool
	AllVersionsSearchable *bool
	Query                 CapabilityQuery
	Join                  CapabilityJoin
	ACL                   CapabilityACL
	Extensions
}

// PermissionDefinition names a repository permission.
type PermissionDefinition struct {
	ID          string
	Description string
	Extensions
}

// PermissionMapping maps an allowable action key to permissions.
type PermissionMapping struct {
	Key         string
	Permissions []string
	Extensions
}

// AclCapabilities describes how a repository handles ACLs.
type AclCapabilities struct {
	SupportedPermissions SupportedPermissions
	Propagation          AclPropagation
	Permissions          []*PermissionDefinition
	PermissionMapping    map[string]*PermissionMapping
	Extensions
}
