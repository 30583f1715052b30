package request

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SeedAdminRequest describes the admin account created by the seed-admin
// command. ResetPassword re-hashes the password of an existing admin.
type SeedAdminRequest struct {
	Name          string `validate:"required"`
	Email         string `validate:"required,email"`
	Phone         string `validate:"required"`
	Password      string `validate:"required,min=6,max=100"`
	ResetPassword bool
}
