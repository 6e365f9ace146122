package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by both access and refresh tokens. The claim keys ("ID",
// "Role") are part of the wire contract with existing clients. Role rides in
// the token itself, so a role change only takes effect when a new token is
// issued; tokens already in the wild keep the old role until they expire.
type Claims struct {
	UserID string `json:"ID"`
	Role   int    `json:"Role"`
	jwt.RegisteredClaims
}

func NewToken(secret, issuer string, ttl time.Duration, claims Claims) (string, error) {
	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
