package authz

import "fmt"

// RoleSeed is one built-in role with its default policy set.
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds defines the back-office role matrix. "admin" owns the
// whole back office; "support" reads everything and handles order,
// customer and artisan workflows.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
				{Object: "/admin/password", Action: "PUT"},
			},
		},
		{
			Role: "admin",
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role:     "support",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/customers/:id/status", Action: "PATCH"},
				{Object: "/admin/artisans/:id/review", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles seeds the built-in roles and their policies. Safe
// to run on every boot; existing rules are left alone.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
