package dto

// SignUpRequest is the JSON body for POST /auth/signup.
// Presence of each field is validated in the service for stable messages.
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the JSON body for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleRequest is the identity assertion relayed for POST /auth/google.
// The OAuth exchange happens on the client; this carries its result.
type GoogleRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// UpdateUserRequest is the JSON body for PUT /users/update/:id.
// All fields are optional; absent or empty fields are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}
