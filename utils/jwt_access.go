package utils

import (
	"log"
	"os"
)

// JWTSecretKey verifies the admin panel's session tokens on the callable
// notification endpoint. Tokens are issued by the dashboard's auth system.
var JWTSecretKey string

func InitJWT() {
	// For tests, use a default value if the environment variable isn't set
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}
}
