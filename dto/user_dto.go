package dto

type CreateUserDTO struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// UpdateUserDTO — the self-service update surface. Email, role and
// password are not settable through this path.
type UpdateUserDTO struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}
