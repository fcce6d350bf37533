// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/critique/internal/platform/constants"
	"github.com/taibuivan/critique/internal/platform/redis"
)

// minDenyTTL keeps a key alive for tokens that are about to expire.
const minDenyTTL = time.Second

// RedisDenylist implements [Denylist] using Redis.
type RedisDenylist struct {
	client redis.Client
}

// NewRedisDenylist creates a new Redis-backed [Denylist].
func NewRedisDenylist(client redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

/*
Revoke records tokenID with SET NX so that exactly one caller wins.

Parameters:
  - ctx: context.Context
  - tokenID: string (JWT 'jti')
  - ttl: time.Duration (Remaining token lifetime)

Returns:
  - bool: true when this call recorded the ID
  - error: Connectivity errors
*/
func (denylist *RedisDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl < minDenyTTL {
		ttl = minDenyTTL
	}

	key := constants.RedisPrefixRevokedToken + tokenID
	stored, err := denylist.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_denylist_revoke_failed: %w", err)
	}

	return stored, nil
}
