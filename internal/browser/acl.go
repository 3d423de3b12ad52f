package browser

import (
	"context"

	"github.com/nucleus/cmis-core/internal/convert"
	"github.com/nucleus/cmis-core/internal/form"
	"github.com/nucleus/cmis-core/pkg/cmis"
)

// =============================================================================
// ACL
// =============================================================================

// GetAcl reads the ACL of an object.
func (b *Binding) GetAcl(ctx context.Context, repositoryID, objectID string, onlyBasicPermissions bool) (*cmis.Acl, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorACL)
	if err != nil {
		return nil, err
	}
	setBool(query, paramOnlyBasicPermissions, onlyBasicPermissions)

	raw, err := b.read(ctx, target, query)
	if err != nil {
		return nil, err
	}
	return convert.ConvertAcl(raw)
}

// ApplyAcl adds and removes ACEs and returns the resulting ACL.
// propagation is objectonly, propagate or repositorydetermined; empty
// leaves the server default.
func (b *Binding) ApplyAcl(ctx context.Context, repositoryID, objectID string, addAces, removeAces *cmis.Acl, propagation string) (*cmis.Acl, error) {
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return nil, err
	}

	f := form.NewForm(actionApplyACL).
		AddAddAces(addAces).
		AddRemoveAces(removeAces).
		Add(form.ControlACLPropagation, propagation)

	raw, err := b.postJSON(ctx, target, f)
	if err != nil {
		return nil, err
	}
	return convert.ConvertAcl(raw)
}

// =============================================================================
// POLICIES
// =============================================================================

// ApplyPolicy applies a policy to an object.
func (b *Binding) ApplyPolicy(ctx context.Context, repositoryID, policyID, objectID string) error {
	return b.policyAction(ctx, actionApplyPolicy, repositoryID, policyID, objectID)
}

// RemovePolicy removes a policy from an object.
func (b *Binding) RemovePolicy(ctx context.Context, repositoryID, policyID, objectID string) error {
	return b.policyAction(ctx, actionRemovePolicy, repositoryID, policyID, objectID)
}

func (b *Binding) policyAction(ctx context.Context, action, repositoryID, policyID, objectID string) error {
	if policyID == "" || objectID == "" {
		return cmis.NewError(cmis.ErrInvalidArgument, "policy id and object id must be set")
	}
	target, err := b.targetURL(ctx, repositoryID, objectID)
	if err != nil {
		return err
	}
	f := form.NewForm(action).Add(paramPolicyID, policyID)
	return b.postAndConsume(ctx, target, f)
}

// GetAppliedPolicies lists the policies applied to an object.
func (b *Binding) GetAppliedPolicies(ctx context.Context, repositoryID, objectID, filter string) ([]*cmis.ObjectData, error) {
	target, query, err := b.objectURL(ctx, repositoryID, objectID, selectorPolicies)
	if err != nil {
		return nil, err
	}
	setString(query, paramFilter, filter)

	raw, err := b.read(ctx, target, b.succinctParam(query))
	if err != nil {
		return nil, err
	}
	return convert.ConvertObjects(raw, b.resolver(ctx, repositoryID))
}
