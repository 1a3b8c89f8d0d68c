package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cadastra/cadastra/internal/model"
)

const (
	// partyCachePrefix is the Redis key prefix for party records.
	partyCachePrefix = "party:"
	// partyCacheTTL is the time-to-live for cached parties.
	partyCacheTTL = 5 * time.Minute
)

// PartyKey builds the Redis key for a party ID.
func PartyKey(id string) string {
	return partyCachePrefix + id
}

// GetParty retrieves a cached party by ID.
// Returns nil on a cache miss or a corrupted entry; misses are not errors.
func (c *Cache) GetParty(ctx context.Context, id string) (*model.Party, error) {
	data, err := c.client.Get(ctx, PartyKey(id)).Bytes()
	if err != nil {
		return nil, nil //nolint:nilerr
	}

	var party model.Party
	if err := json.Unmarshal(data, &party); err != nil {
		return nil, nil //nolint:nilerr
	}
	return &party, nil
}

// SetParty caches a party record.
func (c *Cache) SetParty(ctx context.Context, party *model.Party) error {
	data, err := json.Marshal(party)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PartyKey(party.ID), data, partyCacheTTL).Err()
}

// InvalidateParty removes a party from the cache after a mutation.
func (c *Cache) InvalidateParty(ctx context.Context, id string) error {
	return c.client.Del(ctx, PartyKey(id)).Err()
}
