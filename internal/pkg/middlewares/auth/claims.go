package auth

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidRole  = errors.New("invalid role claim")
)

// Claims токена, выпущенного сервисом аутентификации.
type Claims struct {
	UserID userID `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// userID платформа выдаёт то строкой, то числом.
type userID string

func (u *userID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = userID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*u = userID(n.String())
	return nil
}
