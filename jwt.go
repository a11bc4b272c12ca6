package main

import (
	"errors"
	"time"

	"agrilink/models"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const tokenTTL = 24 * time.Hour

type tokenClaims struct {
	UserID primitive.ObjectID
	Role   models.Role
}

// signJWT creates an HS256 token with 24h expiration.
func signJWT(secret string, userID primitive.ObjectID, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.Hex(),
		"role": string(role),
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
		"iss":  "agrilink",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseJWT validates token and returns the subject and role.
func parseJWT(secret, tokenStr string) (tokenClaims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("agrilink"))
	if err != nil || !tok.Valid {
		return tokenClaims{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return tokenClaims{}, errors.New("no subject")
	}
	uid, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return tokenClaims{}, err
	}
	role, _ := claims["role"].(string)
	if role == "" {
		role = string(models.RoleFarmer)
	}
	return tokenClaims{UserID: uid, Role: models.Role(role)}, nil
}
