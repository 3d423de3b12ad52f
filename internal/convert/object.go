package convert

import (
	"time"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// ConvertObject converts one object. succinctProperties wins over
// properties when a server sends both.
func ConvertObject(raw any, resolver TypeResolver) (*cmis.ObjectData, error) {
	obj, err := asObject(raw, "object")
	if err != nil || obj == nil {
		return nil, err
	}

	result := &cmis.ObjectData{IsExactACL: obj.Bool(keyObjExactACL)}

	if result.Acl, err = ConvertAcl(obj.Value(keyObjAcl)); err != nil {
		return nil, err
	}
	if result.AllowableActions, err = ConvertAllowableActions(obj.Value(keyObjAllowableActions)); err != nil {
		return nil, err
	}
	if result.ChangeEventInfo, err = ConvertChangeEventInfo(obj.Value(keyObjChangeEventInfo)); err != nil {
		return nil, err
	}
	if result.PolicyIDs, err = ConvertPolicyIDList(obj.Value(keyObjPolicyIDs)); err != nil {
		return nil, err
	}
	if result.Relationships, err = ConvertObjects(obj.Value(keyObjRelationships), resolver); err != nil {
		return nil, err
	}
	if result.Renditions, err = ConvertRenditions(obj.Value(keyObjRenditions)); err != nil {
		return nil, err
	}

	ext := obj.Value(keyObjPropertiesExtension)
	if succinct := obj.Value(keyObjSuccinctProperties); succinct != nil {
		result.Properties, err = ConvertSuccinctProperties(succinct, ext, resolver)
	} else {
		result.Properties, err = ConvertProperties(obj.Value(keyObjProperties), ext)
	}
	if err != nil {
		return nil, err
	}

	result.Extensions.Extensions = collectExtensions(obj, objectKeys)
	return result, nil
}

// ConvertObjects converts an array of objects, keeping server order.
func ConvertObjects(raw any, resolver TypeResolver) ([]*cmis.ObjectData, error) {
	arr, err := asArray(raw, "objects")
	if err != nil || arr == nil {
		return nil, err
	}

	out := make([]*cmis.ObjectData, 0, len(arr))
	for _, item := range arr {
		o, err := ConvertObject(item, resolver)
		if err != nil {
			return nil, err
		}
		if o != nil {
			out = append(out, o)
		}
	}
	return out, nil
}

// ConvertAcl converts an ACL. isDirect defaults to false.
func ConvertAcl(raw any) (*cmis.Acl, error) {
	obj, err := asObject(raw, "acl")
	if err != nil || obj == nil {
		return nil, err
	}

	aces, err := asArray(obj.Value(keyAclAces), "acl.aces")
	if err != nil {
		return nil, err
	}

	result := &cmis.Acl{Aces: make([]*cmis.Ace, 0, len(aces)), IsExact: obj.Bool(keyAclIsExact)}
	for _, item := range aces {
		jsonAce, err := asObject(item, "ace")
		if err != nil {
			return nil, err
		}
		if jsonAce == nil {
			continue
		}

		ace := &cmis.Ace{Permissions: jsonAce.Strings(keyAcePermissions)}
		if direct := jsonAce.Bool(keyAceIsDirect); direct != nil {
			ace.IsDirect = *direct
		}

		jsonPrincipal, err := asObject(jsonAce.Value(keyAcePrincipal), "ace.principal")
		if err != nil {
			return nil, err
		}
		if jsonPrincipal != nil {
			ace.Principal = &cmis.Principal{ID: jsonPrincipal.String(keyAcePrincipalID)}
			ace.Principal.Extensions.Extensions = collectExtensions(jsonPrincipal, principalKeys)
		}

		ace.Extensions.Extensions = collectExtensions(jsonAce, aceKeys)
		result.Aces = append(result.Aces, ace)
	}

	result.Extensions.Extensions = collectExtensions(obj, aclKeys)
	return result, nil
}

// ConvertAllowableActions keeps the actions whose value is true.
func ConvertAllowableActions(raw any) (*cmis.AllowableActions, error) {
	obj, err := asObject(raw, "allowableActions")
	if err != nil || obj == nil {
		return nil, err
	}

	result := cmis.NewAllowableActions()
	for _, k := range obj.keys {
		if allowed, ok := obj.values[k].(bool); ok && allowed {
			result.Actions[k] = struct{}{}
		}
	}
	return result, nil
}

// ConvertChangeEventInfo converts the change log entry of an object.
func ConvertChangeEventInfo(raw any) (*cmis.ChangeEventInfo, error) {
	obj, err := asObject(raw, "changeEventInfo")
	if err != nil || obj == nil {
		return nil, err
	}

	result := &cmis.ChangeEventInfo{}
	if ct, ok := cmis.ParseChangeType(obj.String(keyChangeType)); ok {
		result.ChangeType = ct
	}
	if rawTime := obj.Value(keyChangeTime); rawTime != nil {
		v, err := DecodeValue(cmis.PropertyTypeDateTime, rawTime)
		if err != nil {
			return nil, err
		}
		t := v.(time.Time)
		result.ChangeTime = &t
	}

	result.Extensions.Extensions = collectExtensions(obj, changeEventKeys)
	return result, nil
}

// ConvertPolicyIDList converts the policy ids applied to an object.
func ConvertPolicyIDList(raw any) (*cmis.PolicyIDList, error) {
	obj, err := asObject(raw, "policyIds")
	if err != nil || obj == nil {
		return nil, err
	}
	result := &cmis.PolicyIDList{IDs: obj.Strings(keyPolicyIDsIDs)}
	result.Extensions.Extensions = collectExtensions(obj, policyIDKeys)
	return result, nil
}

// ConvertFailedToDelete converts a deleteTree response.
func ConvertFailedToDelete(raw any) (*cmis.FailedToDelete, error) {
	obj, err := asObject(raw, "failedToDelete")
	if err != nil || obj == nil {
		return nil, err
	}
	result := &cmis.FailedToDelete{IDs: obj.Strings(keyFailedToDeleteIDs)}
	result.Extensions.Extensions = collectExtensions(obj, failedToDeleteKeys)
	return result, nil
}

// ConvertRendition converts one rendition.
func ConvertRendition(raw any) (*cmis.RenditionData, error) {
	obj, err := asObject(raw, "rendition")
	if err != nil || obj == nil {
		return nil, err
	}

	result := &cmis.RenditionData{
		StreamID:            obj.String(keyRenditionStreamID),
		MimeType:            obj.String(keyRenditionMimeType),
		Length:              obj.BigInt(keyRenditionLength),
		Kind:                obj.String(keyRenditionKind),
		Title:               obj.String(keyRenditionTitle),
		Height:              obj.BigInt(keyRenditionHeight),
		Width:               obj.BigInt(keyRenditionWidth),
		RenditionDocumentID: obj.String(keyRenditionDocumentID),
	}
	result.Extensions.Extensions = collectExtensions(obj, renditionKeys)
	return result, nil
}

// ConvertRenditions converts an array of renditions.
func ConvertRenditions(raw any) ([]*cmis.RenditionData, error) {
	arr, err := asArray(raw, "renditions")
	if err != nil || arr == nil {
		return nil, err
	}

	out := make([]*cmis.RenditionData, 0, len(arr))
	for _, item := range arr {
		r, err := ConvertRendition(item)
		if err != nil {
			return nil, err
		}
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}
