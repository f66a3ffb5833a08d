package dto

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the public slice of an authenticated account.
type LoginUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	OK    bool      `json:"ok"`
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}
