package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedDownload is the payload carried by a presigned archive download URL.
type SignedDownload struct {
	UserID      string
	ArchivePath string
	TokenID     string
	ExpiresAt   time.Time
}

// URLSignerService generates and validates short-lived tokens for archive
// downloads. When a Redis client is supplied, tokens are single-use: the
// jti is tombstoned on first redemption.
type URLSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

func NewURLSignerService(secretKey []byte, redis *redis.Client) *URLSignerService {
	return &URLSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// SignDownload generates a presigned token for one archive file.
func (s *URLSignerService) SignDownload(userID, archivePath string, ttl time.Duration) (string, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"user_id": userID,
		"path":    archivePath,
		"jti":     tokenID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a presigned download token and, when Redis is
// available, burns it so it cannot be replayed.
func (s *URLSignerService) ValidateToken(ctx context.Context, tokenString string) (*SignedDownload, error) {
	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, _ := claims["user_id"].(string)
	path, _ := claims["path"].(string)
	tokenID, _ := claims["jti"].(string)
	if userID == "" || path == "" || tokenID == "" {
		return nil, errors.New("token missing required claims")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("token missing expiry")
	}

	if s.redis != nil {
		burnKey := "download_token:" + tokenID
		set, err := s.redis.SetNX(ctx, burnKey, "used", time.Until(exp.Time)).Result()
		if err == nil && !set {
			return nil, errors.New("token already used")
		}
	}

	return &SignedDownload{
		UserID:      userID,
		ArchivePath: path,
		TokenID:     tokenID,
		ExpiresAt:   exp.Time,
	}, nil
}
