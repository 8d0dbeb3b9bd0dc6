package service

// CreateUserRequest carries the fields needed to register an account.
// Password arrives in plaintext here and leaves this layer only as a digest.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	EmailID     string `json:"email_id"`
	DateOfBirth string `json:"date_of_birth"`
}

// TokenResponse is the login result.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
