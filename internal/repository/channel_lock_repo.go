package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const channelLockKeyPrefix = "chat:lock:"

// ChannelLockStore holds the admin-controlled lock flag for chat channels.
// The flag has no TTL; it persists until explicitly cleared.
type ChannelLockStore struct {
	client *redis.Client
}

func NewChannelLockStore(client *redis.Client) *ChannelLockStore {
	return &ChannelLockStore{client: client}
}

func (s *ChannelLockStore) Lock(ctx context.Context, channelID int64) error {
	return s.client.Set(ctx, channelLockKey(channelID), "1", 0).Err()
}

func (s *ChannelLockStore) Unlock(ctx context.Context, channelID int64) error {
	return s.client.Del(ctx, channelLockKey(channelID)).Err()
}

func (s *ChannelLockStore) IsLocked(ctx context.Context, channelID int64) (bool, error) {
	err := s.client.Get(ctx, channelLockKey(channelID)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func channelLockKey(channelID int64) string {
	return fmt.Sprintf("%s%d", channelLockKeyPrefix, channelID)
}
