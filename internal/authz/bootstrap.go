package authz

import "fmt"

// RoleSeed 内置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
	// Immutable 标记内置角色不可被后台修改
	Immutable bool
}

// BuiltinRoleSeeds 返回内置角色种子
// 只读审计角色覆盖全部后台查询, 运营与财务在其上增加各自的写权限
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role:      "readonly_auditor",
			Immutable: true,
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:      "operations",
			Inherits:  []string{"readonly_auditor"},
			Immutable: true,
			Policies: []Policy{
				{Object: "/admin/customers", Action: "POST"},
				{Object: "/admin/customers/:id", Action: "PUT"},
				{Object: "/admin/influencers", Action: "POST"},
				{Object: "/admin/influencers/:id/status", Action: "PUT"},
				{Object: "/admin/sales", Action: "POST"},
				{Object: "/admin/sales/:id/verify", Action: "POST"},
				{Object: "/admin/sales/:id/reject", Action: "POST"},
				{Object: "/admin/stores", Action: "POST"},
				{Object: "/admin/stores/:id", Action: "PUT"},
				{Object: "/admin/stores/:id", Action: "DELETE"},
			},
		},
		{
			Role:      "finance",
			Inherits:  []string{"readonly_auditor"},
			Immutable: true,
			Policies: []Policy{
				{Object: "/admin/payouts", Action: "POST"},
				{Object: "/admin/payouts/:id/review", Action: "POST"},
				{Object: "/admin/tiers/:kind", Action: "PUT"},
				{Object: "/admin/settings", Action: "PUT"},
			},
		},
	}
}

// IsBuiltinRole 判断是否内置不可变角色
func IsBuiltinRole(role string) bool {
	normalized, err := NormalizeRole(role)
	if err != nil {
		return false
	}
	for _, seed := range BuiltinRoleSeeds() {
		if !seed.Immutable {
			continue
		}
		seedRole, err := NormalizeRole(seed.Role)
		if err != nil {
			continue
		}
		if seedRole == normalized {
			return true
		}
	}
	return false
}

// BootstrapBuiltinRoles 初始化内置角色与策略
// 策略按种子覆盖写入, 保证升级后内置角色行为一致
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		if _, err := s.enforcer.RemoveFilteredPolicy(0, role); err != nil {
			return fmt.Errorf("reset builtin role policies failed: %w", err)
		}
		for _, policy := range seed.Policies {
			rule := []string{role, NormalizeObject(policy.Object), NormalizeAction(policy.Action)}
			if _, err := s.enforcer.AddPolicy(rule); err != nil {
				return fmt.Errorf("seed builtin role policy failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			has, err := s.enforcer.HasNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("check builtin role inherit failed: %w", err)
			}
			if has {
				continue
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("seed builtin role inherit failed: %w", err)
			}
		}
	}
	return nil
}
