package convert

import "github.com/nucleus/cmis-core/pkg/cmis"

// ConvertRepositoryInfos converts the service document: an object of
// repository infos keyed by repository id.
func ConvertRepositoryInfos(raw any) ([]*cmis.RepositoryInfo, error) {
	obj, err := asObject(raw, "repositories")
	if err != nil || obj == nil {
		return nil, err
	}

	out := make([]*cmis.RepositoryInfo, 0, obj.Len())
	for _, k := range obj.keys {
		info, err := ConvertRepositoryInfo(obj.values[k])
		if err != nil {
			return nil, err
		}
		if info != nil {
			out = append(out, info)
		}
	}
	return out, nil
}

// ConvertRepositoryInfo converts one repository info.
func ConvertRepositoryInfo(raw any) (*cmis.RepositoryInfo, error) {
	obj, err := asObject(raw, "repositoryInfo")
	if err != nil || obj == nil {
		return nil, err
	}

	result := &cmis.RepositoryInfo{
		ID:                   obj.String(keyRepoID),
		Name:                 obj.String(keyRepoName),
		Description:          obj.String(keyRepoDescription),
		VendorName:           obj.String(keyRepoVendor),
		ProductName:          obj.String(keyRepoProduct),
		ProductVersion:       obj.String(keyRepoProductVersion),
		RootFolderID:         obj.String(keyRepoRootFolderID),
		LatestChangeLogToken: obj.String(keyRepoChangeLogToken),
		CmisVersionSupported: obj.String(keyRepoCmisVersionSupported),
		ThinClientURI:        obj.String(keyRepoThinClientURI),
		ChangesIncomplete:    obj.Bool(keyRepoChangesIncomplete),
		PrincipalIDAnonymous: obj.String(keyRepoPrincipalAnonymous),
		PrincipalIDAnyone:    obj.String(keyRepoPrincipalAnyone),
		RepositoryURL:        obj.String(keyRepoURL),
		RootFolderURL:        obj.String(keyRepoRootFolderURL),
	}
	for _, tag := range obj.Strings(keyRepoChangesOnType) {
		if base, ok := cmis.ParseBaseTypeID(tag); ok {
			result.ChangesOnType = append(result.ChangesOnType, base)
		}
	}

	if result.Capabilities, err = convertCapabilities(obj.Value(keyRepoCapabilities)); err != nil {
		return nil, err
	}
	if result.AclCapabilities, err = convertAclCapabilities(obj.Value(keyRepoAclCapabilities)); err != nil {
		return nil, err
	}

	result.Extensions.Extensions = collectExtensions(obj, repositoryInfoKeys)
	return result, nil
}

func convertCapabilities(raw any) (*cmis.RepositoryCapabilities, error) {
	obj, err := asObject(raw, "capabilities")
	if err != nil || obj == nil {
		return nil, err
	}

	result := &cmis.RepositoryCapabilities{
		ContentStreamUpdates:  cmis.CapabilityContentStreamUpdates(obj.String(keyCapContentStreamUpdatability)),
		Changes:               cmis.CapabilityChanges(obj.String(keyCapChanges)),
		Renditions:            cmis.CapabilityRenditions(obj.String(keyCapRenditions)),
		GetDescendants:        obj.Bool(keyCapGetDescendants),
		GetFolderTree:         obj.Bool(keyCapGetFolderTree),
		Multifiling:           obj.Bool(keyCapMultifiling),
		Unfiling:              obj.Bool(keyCapUnfiling),
		VersionSpecificFiling: obj.Bool(keyCapVersionSpecificFiling),
		PWCSearchable:         obj.Bool(keyCapPWCSearchable),
		PWCUpdatable:          obj.Bool(keyCapPWCUpdatable),
		AllVersionsSearchable: obj.Bool(keyCapAllVersionsSearchable),
		Query:                 cmis.CapabilityQuery(obj.String(keyCapQuery)),
		Join:                  cmis.CapabilityJoin(obj.String(keyCapJoin)),
		ACL:                   cmis.CapabilityACL(obj.String(keyCapACL)),
	}
	result.Extensions.Extensions = collectExtensions(obj, capabilityKeys)
	return result, nil
}

func convertAclCapabilities(raw any) (*cmis.AclCapabilities, error) {
	obj, err := asObject(raw, "aclCapabilities")
	if err != nil || obj == nil {
		return nil, err
	}

	result := &cmis.AclCapabilities{
		SupportedPermissions: cmis.SupportedPermissions(obj.String(keyAclCapSupportedPermissions)),
		Propagation:          cmis.AclPropagation(obj.String(keyAclCapPropagation)),
	}

	perms, err := asArray(obj.Value(keyAclCapPermissions), "aclCapabilities.permissions")
	if err != nil {
		return nil, err
	}
	for _, item := range perms {
		p, err := asObject(item, "permission")
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		def := &cmis.PermissionDefinition{
			ID:          p.String(keyAclCapPermission),
			Description: p.String(keyAclCapDescription),
		}
		def.Extensions.Extensions = collectExtensions(p, permissionDefKeys)
		result.Permissions = append(result.Permissions, def)
	}

	mappings, err := asArray(obj.Value(keyAclCapPermissionMapping), "aclCapabilities.permissionMapping")
	if err != nil {
		return nil, err
	}
	if mappings != nil {
		result.PermissionMapping = make(map[string]*cmis.PermissionMapping, len(mappings))
	}
	for _, item := range mappings {
		m, err := asObject(item, "permissionMapping")
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		mapping := &cmis.PermissionMapping{
			Key:         m.String(keyAclCapMappingKey),
			Permissions: m.Strings(keyAclCapPermission),
		}
		mapping.Extensions.Extensions = collectExtensions(m, permissionMappingKeys)
		result.PermissionMapping[mapping.Key] = mapping
	}

	result.Extensions.Extensions = collectExtensions(obj, aclCapabilityKeys)
	return result, nil
}
