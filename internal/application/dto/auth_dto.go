package dto

// LoginRequest credenciales de inicio de sesión. El identificador puede ser
// email o username; se clasifica por la presencia de '@'.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// RefreshRequest entrada para renovar el par de tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPairResponse par de tokens emitidos por login y refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
