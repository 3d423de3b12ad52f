package cmis

import (
	"io"
	"math/big"
	"sort"
	"time"
)

// ObjectData is a CMIS object as returned by the server. Every field except
// Properties is optional and nil when the server omitted it.
type ObjectData struct {
	Properties       *Properties
	AllowableActions *AllowableActions
	Acl              *Acl
	IsExactACL       *bool
	PolicyIDs        *PolicyIDList
	ChangeEventInfo  *ChangeEventInfo
	Relationships    []*ObjectData
	Renditions       []*RenditionData
	Extensions
}

// ID returns cmis:objectId.
func (o *ObjectData) ID() string {
	if o == nil {
		return ""
	}
	return o.Properties.StringValue(PropObjectID)
}

// ObjectTypeID returns cmis:objectTypeId.
func (o *ObjectData) ObjectTypeID() string {
	if o == nil {
		return ""
	}
	return o.Properties.StringValue(PropObjectTypeID)
}

// BaseTypeID returns cmis:baseTypeId, or "" when absent or not a base type.
func (o *ObjectData) BaseTypeID() BaseTypeID {
	if o == nil {
		return ""
	}
	id, _ := ParseBaseTypeID(o.Properties.StringValue(PropBaseTypeID))
	return id
}

// Name returns cmis:name.
func (o *ObjectData) Name() string {
	if o == nil {
		return ""
	}
	return o.Properties.StringValue(PropName)
}

// Principal identifies a user or group in an ACE.
type Principal struct {
	ID string
	Extensions
}

// Ace is one access control entry.
type Ace struct {
	Principal   *Principal
	Permissions []string
	IsDirect    bool
	Extensions
}

// PrincipalID returns the principal id, or "" when there is no principal.
func (a *Ace) PrincipalID() string {
	if a == nil || a.Principal == nil {
		return ""
	}
	return a.Principal.ID
}

// Acl is an access control list. Aces keep server order.
type Acl struct {
	Aces    []*Ace
	IsExact *bool
	Extensions
}

// AllowableActions is the set of actions the current user may perform.
type AllowableActions struct {
	Actions map[string]struct{}
	Extensions
}

// NewAllowableActions returns a set holding the given actions.
func NewAllowableActions(actions ...string) *AllowableActions {
	a := &AllowableActions{Actions: make(map[string]struct{}, len(actions))}
	for _, action := range actions {
		a.Actions[action] = struct{}{}
	}
	return a
}

// Has reports whether action is allowed.
func (a *AllowableActions) Has(action string) bool {
	if a == nil {
		return false
	}
	_, ok := a.Actions[action]
	return ok
}

// List returns the allowed actions sorted by name.
func (a *AllowableActions) List() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.Actions))
	for action := range a.Actions {
		out = append(out, action)
	}
	sort.Strings(out)
	return out
}

// RenditionData describes an alternative representation of a document.
type RenditionData struct {
	StreamID            string
	MimeType            string
	Length              *big.Int
	Kind                string
	Title               string
	Height              *big.Int
	Width               *big.Int
	RenditionDocumentID string
	Extensions
}

// ChangeEventInfo is attached to objects returned by the change log.
type ChangeEventInfo struct {
	ChangeType ChangeType
	ChangeTime *time.Time
	Extensions
}

// PolicyIDList lists the ids of policies applied to an object.
type PolicyIDList struct {
	IDs []string
	Extensions
}

// FailedToDelete lists the ids a deleteTree call could not remove.
type FailedToDelete struct {
	IDs []string
	Extensions
}

// ContentStream is document content sent with a create or update request.
type ContentStream struct {
	Filename string
	MimeType string
	// Length is -1 when unknown.
	Length int64
	Stream io.Reader
}
