package market

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/realm-api/internal/entities"
	"github.com/KirkDiggler/realm-api/internal/errors"
	redisclient "github.com/KirkDiggler/realm-api/internal/redis"
	"github.com/KirkDiggler/realm-api/internal/repositories/unitofwork"
)

const (
	listingKeyPrefix  = "listing:"
	sellerIndexPrefix = "listing:seller:"
	openIndexPrefix   = "listing:open:"

	defaultListLimit = 50

	errListingNil     = "listing cannot be nil"
	errListingIDEmpty = "listing ID cannot be empty"
)

// Key returns the redis key holding a listing
func Key(id string) string {
	return listingKeyPrefix + id
}

func sellerKey(sellerID string) string {
	return sellerIndexPrefix + sellerID
}

// open listings are indexed per currency, scored by creation time
func openKey(currency entities.Currency) string {
	return openIndexPrefix + string(currency)
}

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis listing repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed listing repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errListingIDEmpty)
	}

	result, err := r.client.Get(ctx, Key(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("listing with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get listing")
	}

	var l entities.MarketListing
	if err := json.Unmarshal([]byte(result), &l); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal listing data")
	}

	return &GetOutput{Listing: &l}, nil
}

func (r *redisRepository) ListOpen(ctx context.Context, input ListOpenInput) (*ListOpenOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var ids []string
	var err error
	switch {
	case input.SellerID != "":
		ids, err = r.client.SMembers(ctx, sellerKey(input.SellerID)).Result()
	case input.Currency != "":
		if !input.Currency.IsValid() {
			return nil, errors.InvalidArgumentf("unknown currency %q", input.Currency)
		}
		ids, err = r.client.ZRevRange(ctx, openKey(input.Currency), 0, int64(limit-1)).Result()
	default:
		for _, currency := range []entities.Currency{entities.CurrencyGold, entities.CurrencyDiamonds} {
			var part []string
			part, err = r.client.ZRevRange(ctx, openKey(currency), 0, int64(limit-1)).Result()
			if err != nil {
				break
			}
			ids = append(ids, part...)
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read listing index")
	}

	slog.DebugContext(ctx, "listing ids from index",
		"seller_id", input.SellerID,
		"currency", input.Currency,
		"count", len(ids))

	listings, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	open := make([]*entities.MarketListing, 0, len(listings))
	for _, l := range listings {
		if l.IsSold || (input.Currency != "" && l.CurrencyType != input.Currency) {
			continue
		}
		open = append(open, l)
	}
	sortNewestFirst(open)
	if len(open) > limit {
		open = open[:limit]
	}

	return &ListOpenOutput{Listings: open}, nil
}

func (r *redisRepository) Put(before, after *entities.MarketListing) (unitofwork.Write, error) {
	if after == nil {
		return nil, errors.InvalidArgument(errListingNil)
	}
	if after.ID == "" {
		return nil, errors.InvalidArgument(errListingIDEmpty)
	}

	var expected int64
	if before != nil {
		if before.IsSold && !after.IsSold {
			return nil, errors.FailedPreconditionf("listing %s is sold and cannot reopen", after.ID)
		}
		expected = before.Version
	}
	after.Version = expected + 1

	data, err := json.Marshal(after)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal listing data")
	}

	next := *after
	return &unitofwork.Put{
		Key:      Key(next.ID),
		Expected: expected,
		Value:    data,
		Index: func(ctx context.Context, pipe redis.Pipeliner) {
			if next.IsSold {
				pipe.ZRem(ctx, openKey(next.CurrencyType), next.ID)
				pipe.SRem(ctx, sellerKey(next.SellerID), next.ID)
				return
			}
			pipe.ZAdd(ctx, openKey(next.CurrencyType), redis.Z{Score: float64(next.CreatedAt), Member: next.ID})
			pipe.SAdd(ctx, sellerKey(next.SellerID), next.ID)
		},
	}, nil
}

func (r *redisRepository) Delete(l *entities.MarketListing) unitofwork.Write {
	id, seller, currency := l.ID, l.SellerID, l.CurrencyType
	return &unitofwork.Delete{
		Key:      Key(id),
		Expected: l.Version,
		Index: func(ctx context.Context, pipe redis.Pipeliner) {
			pipe.ZRem(ctx, openKey(currency), id)
			pipe.SRem(ctx, sellerKey(seller), id)
		},
	}
}

func (r *redisRepository) load(ctx context.Context, ids []string) ([]*entities.MarketListing, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = Key(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get listings")
	}

	listings := make([]*entities.MarketListing, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			slog.WarnContext(ctx, "indexed listing not found",
				"listing_id", ids[i])
			continue
		}

		var l entities.MarketListing
		if err := json.Unmarshal([]byte(raw), &l); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal listing %s", ids[i])
		}
		listings = append(listings, &l)
	}
	return listings, nil
}

func sortNewestFirst(listings []*entities.MarketListing) {
	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].CreatedAt != listings[j].CreatedAt {
			return listings[i].CreatedAt > listings[j].CreatedAt
		}
		return listings[i].ID < listings[j].ID
	})
}
