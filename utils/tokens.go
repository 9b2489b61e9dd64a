package utils

import (
	"os"
	"time"

	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken is the claim set the identity service embeds in access tokens.
// The booking core only verifies and reads it.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}

// CreateAccessToken signs an access token for the given principal. Token
// issuance proper lives in the identity service; this signer exists for
// local development and tests.
func CreateAccessToken(id uint, role string) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), 24*time.Hour)

	token, err := signer.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return "", err
	}

	return string(token), nil
}
