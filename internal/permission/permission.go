package permission

import (
	"time"

	"github.com/aditirto/identity-service/internal/core/rbac"

	permissionDatamodel "github.com/aditirto/identity-service/internal/core/datamodel/permission"
)

// Permission is one (role, action, resource) authorization rule.
type Permission struct {
	Role      rbac.Role     `json:"role"`
	Action    rbac.Action   `json:"action"`
	Resource  rbac.Resource `json:"resource"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Filter narrows list/update operations. Nil fields match everything; set
// fields are AND-combined.
type Filter struct {
	Role     *rbac.Role
	Action   *rbac.Action
	Resource *rbac.Resource
}

func FromDataModel(dm *permissionDatamodel.Permission) *Permission {
	return &Permission{
		Role:      rbac.Role(dm.Role),
		Action:    rbac.Action(dm.Action),
		Resource:  rbac.Resource(dm.Resource),
		IsActive:  dm.IsActive,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
}
