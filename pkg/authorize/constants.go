package authorize

import "fmt"

type Action string
type Resource string
type Role string
type PolicyEffect string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"

	WildcardAction Action = "*"
)

var KnownActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {},
}

const (
	ResourceLead      Resource = "lead"
	ResourceAdminUser Resource = "admin_user"

	WildcardResource Resource = "*"
)

var KnownResources = map[Resource]struct{}{
	ResourceLead: {}, ResourceAdminUser: {},
}

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

var KnownRoles = map[Role]struct{}{
	RoleAdmin: {}, RoleEditor: {},
}

const (
	EffectAllow PolicyEffect = "allow"
	EffectDeny  PolicyEffect = "deny"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := KnownRoles[r]; !ok {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidArgs, s)
	}
	return r, nil
}

// PermissionPolicy is one p line: role, resource, action, effect.
type PermissionPolicy struct {
	Role     Role
	Resource Resource
	Action   Action
	Effect   PolicyEffect
}

// DefaultModel is RBAC with role inheritance and explicit deny.
const DefaultModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act, eft

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow)) && !some(where (p.eft == deny))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
