package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// sessionIdleTTL evicts abandoned sessions. Every save refreshes the TTL,
// so an active negotiation never expires mid-game.
const sessionIdleTTL = 24 * time.Hour

func sessionKey(userID string) string { return "session:" + userID }

// Save stores the session JSON under the user's key and refreshes the
// idle TTL.
func (c *Client) Save(ctx context.Context, userID string, s *negotiation.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return c.rdb.Set(ctx, sessionKey(userID), raw, sessionIdleTTL).Err()
}

// Find retrieves the user's session, or (nil, nil) when absent.
func (c *Client) Find(ctx context.Context, userID string) (*negotiation.Session, error) {
	raw, err := c.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var s negotiation.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete discards the user's session.
func (c *Client) Delete(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, sessionKey(userID)).Err()
}
