package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoPublicKey = errors.New("no JWT_PUBLIC_KEY or JWT_PUBLIC_KEY_FILE env variable set")

// UploaderClaims identify whoever may write to the demo archive.
type UploaderClaims struct {
	Uploader string `json:"uploader"`
	jwt.RegisteredClaims
}

type JWT struct {
	publicKey     *rsa.PublicKey
	signingMethod jwt.SigningMethod
}

func loadPublicKey() (*rsa.PublicKey, error) {
	publicKeyStr, ok := os.LookupEnv("JWT_PUBLIC_KEY")
	if ok {
		return jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyStr))
	}
	publicKeyPath, ok := os.LookupEnv("JWT_PUBLIC_KEY_FILE")
	if !ok {
		return nil, ErrNoPublicKey
	}
	publicKeyBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read JWT public key: %w", err)
	}
	return jwt.ParseRSAPublicKeyFromPEM(publicKeyBytes)
}

func NewJWT() (*JWT, error) {
	publicKey, err := loadPublicKey()
	if err != nil {
		return nil, err
	}
	return NewJWTWithKey(publicKey), nil
}

func NewJWTWithKey(publicKey *rsa.PublicKey) *JWT {
	return &JWT{
		publicKey:     publicKey,
		signingMethod: jwt.SigningMethodRS256,
	}
}

func (j *JWT) ParseUploaderClaims(tokenString string) (*UploaderClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&UploaderClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*UploaderClaims)
	if !ok || claims.Uploader == "" {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
