package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type AccessClaims struct {
	Email string   `json:"email"`
	UID   uint     `json:"uid"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func parseAccess(tokenStr string, secret []byte, opts ...jwt.ParserOption) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, opts...)
	if err != nil || !tkn.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return nil, err
	}
	return &claims, nil
}

// AccessClaimsFromToken fully validates the token: signature, expiry, the lot.
func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	return parseAccess(tokenStr, secret)
}

// ExpiredAccessClaimsFromToken verifies the signature but skips claim
// validation, so an expired token still parses. This is the refresh-flow
// entry point: a tampered token fails here, an expired one does not.
func ExpiredAccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	claims, err := parseAccess(tokenStr, secret, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
