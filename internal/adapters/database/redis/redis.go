package redis

import (
	"context"
	"fmt"

	"github.com/pubquiz-fans/site/internal/adapters/database/redis/codes"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Codes *codes.Storage

	rdb *redis.Client
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	codeStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := codeStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping codes storage: %w", err)
	}

	return &Client{
		Codes: codes.NewStorage(codeStorage),
		rdb:   codeStorage,
	}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
