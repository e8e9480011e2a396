package codes

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	keyPrefix    = "tg-link:"
	maxAttempts  = 5
)

// Storage keeps short-lived codes that link a Telegram chat to a member.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// Issue stores a fresh code for userID that expires after ttl.
func (s *Storage) Issue(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		code, err := generate()
		if err != nil {
			return "", err
		}
		ok, err := s.redis.SetNX(ctx, keyPrefix+code, userID, ttl).Result()
		if err != nil {
			return "", fmt.Errorf("failed to store code: %w", err)
		}
		if ok {
			return code, nil
		}
	}
	return "", errors.New("failed to find a free code")
}

// Consume returns the user the code was issued to and removes it.
// Unknown or expired codes yield errorz.ErrInvalidCode.
func (s *Storage) Consume(ctx context.Context, code string) (string, error) {
	userID, err := s.redis.GetDel(ctx, keyPrefix+code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errorz.ErrInvalidCode
		}
		return "", err
	}
	return userID, nil
}

func generate() (string, error) {
	code := make([]byte, codeLength)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
