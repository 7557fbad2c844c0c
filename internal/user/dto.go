package user

// UpdateProfileDTO carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func (d UpdateProfileDTO) IsEmpty() bool {
	return d.FirstName == nil && d.LastName == nil
}
