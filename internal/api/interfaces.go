package api

import (
	"github.com/golang-jwt/jwt/v5"
)

type JWTServiceI interface {
	GenerateToken(owner string) (string, error)
	ParseToken(tokenString string) (*JWTClaims, error)
}

type JWTClaims struct {
	jwt.RegisteredClaims
	Owner string `json:"owner"`
}
