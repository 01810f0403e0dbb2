package listing

import (
	"context"
	"encoding/json"
	"time"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	draftKeyPrefix = "rental-portal:draft:"
	ownerKeyPrefix = "rental-portal:drafts-by-owner:"
)

var _ DraftStore = (*RedisDraftStore)(nil)

// RedisDraftStore keeps drafts as JSON strings that expire after ttl. Each owner
// has a set of draft ids; ids whose draft has expired are pruned on read.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings the server
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, perrors.Wrapf(err, "ping redis at %s", opts.Addr)
	}
	return client, nil
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func (s *RedisDraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	data, err := s.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, perrors.Wrapf(perrors.ErrDraftNotFound, "draft %s", id)
	}
	if err != nil {
		return nil, perrors.Wrapf(err, "get draft %s", id)
	}
	return decodeDraft(data)
}

func (s *RedisDraftStore) Save(ctx context.Context, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return perrors.Wrapf(err, "encode draft %s", draft.ID)
	}
	ownerKey := ownerKeyPrefix + draft.OwnerID
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, draftKeyPrefix+draft.ID, data, s.ttl)
		pipe.SAdd(ctx, ownerKey, draft.ID)
		if s.ttl > 0 {
			pipe.Expire(ctx, ownerKey, s.ttl)
		}
		return nil
	})
	return perrors.Wrapf(err, "save draft %s", draft.ID)
}

func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	d, err := s.Get(ctx, id)
	if perrors.Is(err, perrors.ErrDraftNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, draftKeyPrefix+id)
		pipe.SRem(ctx, ownerKeyPrefix+d.OwnerID, id)
		return nil
	})
	return perrors.Wrapf(err, "delete draft %s", id)
}

func (s *RedisDraftStore) ListByOwner(ctx context.Context, ownerID string) ([]*Draft, error) {
	ownerKey := ownerKeyPrefix + ownerID
	ids, err := s.client.SMembers(ctx, ownerKey).Result()
	if err != nil {
		return nil, perrors.Wrapf(err, "list drafts for %s", ownerID)
	}
	drafts := make([]*Draft, 0, len(ids))
	if len(ids) == 0 {
		return drafts, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = draftKeyPrefix + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, perrors.Wrapf(err, "load drafts for %s", ownerID)
	}

	var expired []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		d, err := decodeDraft([]byte(raw))
		if err != nil {
			log.Warn().Err(err).Str("draft_id", ids[i]).Msg("Skipping unreadable draft")
			continue
		}
		drafts = append(drafts, d)
	}
	if len(expired) > 0 {
		if err := s.client.SRem(ctx, ownerKey, expired...).Err(); err != nil {
			log.Warn().Err(err).Str("owner_id", ownerID).Msg("Failed to prune expired drafts")
		}
	}
	sortDrafts(drafts)
	return drafts, nil
}
