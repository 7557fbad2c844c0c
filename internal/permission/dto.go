package permission

import (
	"net/url"

	"github.com/aditirto/identity-service/internal/core/rbac"
)

type StatusUpdateDTO struct {
	IsActive *bool `json:"is_active"`
}

// ParseFilter builds a Filter from query parameters, rejecting unknown enum
// values instead of silently matching nothing.
func ParseFilter(query url.Values) (Filter, error) {
	var f Filter

	if s := query.Get("role"); s != "" {
		role, err := rbac.ParseRole(s)
		if err != nil {
			return Filter{}, err
		}
		f.Role = &role
	}
	if s := query.Get("action"); s != "" {
		action, err := rbac.ParseAction(s)
		if err != nil {
			return Filter{}, err
		}
		f.Action = &action
	}
	if s := query.Get("resource"); s != "" {
		resource, err := rbac.ParseResource(s)
		if err != nil {
			return Filter{}, err
		}
		f.Resource = &resource
	}
	return f, nil
}
