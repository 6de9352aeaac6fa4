package vault

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidUsername    = errors.New("username required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrNotFound           = errors.New("credential not found")
	ErrInvalidCredential  = errors.New("invalid credential")
)
