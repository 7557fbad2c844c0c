package rbac

import (
	errors "github.com/aditirto/identity-service/internal"
)

// Role is the coarse access level assigned to a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSupport Role = "support"
	RoleUser    Role = "user"
)

// Action is one of the CRUD verbs a permission can grant.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is an entity class guarded by permissions.
type Resource string

const (
	ResourceUser       Resource = "user"
	ResourcePermission Resource = "permission"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSupport, RoleUser:
		return Role(s), nil
	}
	return "", errors.NewValidationError("invalid role: "+s, errors.ErrCodeInvalidRole)
}

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return Action(s), nil
	}
	return "", errors.NewValidationError("invalid action: "+s, errors.ErrCodeInvalidAction)
}

func ParseResource(s string) (Resource, error) {
	switch Resource(s) {
	case ResourceUser, ResourcePermission:
		return Resource(s), nil
	}
	return "", errors.NewValidationError("invalid resource: "+s, errors.ErrCodeInvalidResource)
}

// MatrixEntry is one (role, resource, actions) row of the default matrix.
type MatrixEntry struct {
	Role     Role
	Resource Resource
	Actions  []Action
}

// DefaultMatrix is the permission set installed on first deployment. Only
// admin holds create; no route exercises it today, but the rows exist so
// enabling such an endpoint is a matrix change rather than a migration.
var DefaultMatrix = []MatrixEntry{
	{Role: RoleAdmin, Resource: ResourceUser, Actions: []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}},
	{Role: RoleAdmin, Resource: ResourcePermission, Actions: []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}},
	{Role: RoleSupport, Resource: ResourceUser, Actions: []Action{ActionRead, ActionUpdate, ActionDelete}},
	{Role: RoleSupport, Resource: ResourcePermission, Actions: []Action{ActionRead}},
	{Role: RoleUser, Resource: ResourceUser, Actions: []Action{ActionRead, ActionUpdate, ActionDelete}},
	{Role: RoleUser, Resource: ResourcePermission, Actions: []Action{ActionRead}},
}
