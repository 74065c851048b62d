// Command token prints a signed access token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/auth"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/config"
	"github.com/marcos-nsantos/imgpipe/internal/infrastructure/observability"
)

func main() {
	userFlag := flag.String("user", "", "uploader id (random when empty)")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_ACCESS_TOKEN_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, "console", "token")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			logger.Fatal("invalid user id", zap.String("user", *userFlag), zap.Error(err))
		}
	}

	lifetime := cfg.JWT.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	jwtSvc := auth.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.Issuer, lifetime)
	token, expiresAt, err := jwtSvc.GenerateAccessToken(userID)
	if err != nil {
		logger.Fatal("failed to sign token", zap.Error(err))
	}

	logger.Debug("signed access token", zap.Stringer("user", userID), zap.Duration("ttl", lifetime))
	fmt.Printf("user:    %s\nexpires: %s\ntoken:   %s\n", userID, expiresAt.Format(time.RFC3339), token)
}
