package authorize

// DefaultPolicies: editors read leads, admins do everything.
func DefaultPolicies() []PermissionPolicy {
	return []PermissionPolicy{
		{RoleEditor, ResourceLead, ActionRead, EffectAllow},
		{RoleAdmin, ResourceLead, ActionUpdate, EffectAllow},
		{RoleAdmin, ResourceAdminUser, WildcardAction, EffectAllow},
	}
}

// DefaultInheritance maps a role to the role whose permissions it also has.
func DefaultInheritance() map[Role]Role {
	return map[Role]Role{RoleAdmin: RoleEditor}
}
