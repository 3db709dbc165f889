package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mindly-be/internal/entity"
	"mindly-be/internal/repository/contract"
	"mindly-be/pkg/wellness"

	"github.com/redis/go-redis/v9"
)

// appendTurnScript pushes both messages and the metrics entry in one step and
// assigns the entry index from a per-session counter.
var appendTurnScript = redis.NewScript(`
local idx = redis.call('INCR', KEYS[3]) - 1
redis.call('RPUSH', KEYS[1], ARGV[1], ARGV[2])
local entry = cjson.decode(ARGV[3])
entry['index'] = idx
redis.call('RPUSH', KEYS[2], cjson.encode(entry))
local maxTurns = tonumber(ARGV[4])
if maxTurns > 0 then
  redis.call('LTRIM', KEYS[2], -maxTurns, -1)
  redis.call('LTRIM', KEYS[1], -2 * maxTurns, -1)
end
redis.call('SET', KEYS[4], '1')
local ttl = tonumber(ARGV[5])
if ttl > 0 then
  for i = 1, 4 do
    redis.call('PEXPIRE', KEYS[i], ttl)
  end
end
return idx
`)

// SessionRepository persists sessions in Redis so they survive restarts and
// are shared between instances.
type SessionRepository struct {
	rdb      *redis.Client
	prefix   string
	ttl      time.Duration
	maxTurns int
}

var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration, maxTurns int) *SessionRepository {
	return &SessionRepository{
		rdb:      rdb,
		prefix:   "mindly:session:",
		ttl:      ttl,
		maxTurns: maxTurns,
	}
}

type sessionKeys struct {
	history string
	metrics string
	seq     string
	marker  string
}

func (r *SessionRepository) keys(sessionId string) sessionKeys {
	// hash tag keeps all keys of a session in one cluster slot
	base := fmt.Sprintf("%s{%s}", r.prefix, sessionId)
	return sessionKeys{
		history: base + ":history",
		metrics: base + ":metrics",
		seq:     base + ":seq",
		marker:  base,
	}
}

func (r *SessionRepository) GetOrCreate(ctx context.Context, sessionId string) (*entity.Session, error) {
	k := r.keys(sessionId)
	if err := r.rdb.SetNX(ctx, k.marker, "1", r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("create session %s: %w", sessionId, err)
	}
	return r.load(ctx, sessionId, k)
}

func (r *SessionRepository) Get(ctx context.Context, sessionId string) (*entity.Session, bool, error) {
	k := r.keys(sessionId)
	n, err := r.rdb.Exists(ctx, k.marker).Result()
	if err != nil {
		return nil, false, fmt.Errorf("check session %s: %w", sessionId, err)
	}
	if n == 0 {
		return nil, false, nil
	}
	s, err := r.load(ctx, sessionId, k)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

func (r *SessionRepository) AppendTurn(ctx context.Context, sessionId, userMessage, botReply string, metrics wellness.Metrics) (entity.MetricsEntry, error) {
	entry := entity.MetricsEntry{Index: -1, Metrics: metrics.Clone(), Message: userMessage}
	payload, err := json.Marshal(entry)
	if err != nil {
		return entity.MetricsEntry{}, fmt.Errorf("marshal metrics entry: %w", err)
	}

	k := r.keys(sessionId)
	idx, err := appendTurnScript.Run(ctx, r.rdb,
		[]string{k.history, k.metrics, k.seq, k.marker},
		userMessage, botReply, string(payload), r.maxTurns, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return entity.MetricsEntry{}, fmt.Errorf("append turn to session %s: %w", sessionId, err)
	}

	entry.Index = idx
	return entry, nil
}

func (r *SessionRepository) load(ctx context.Context, sessionId string, k sessionKeys) (*entity.Session, error) {
	var historyCmd, metricsCmd *redis.StringSliceCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		historyCmd = pipe.LRange(ctx, k.history, 0, -1)
		metricsCmd = pipe.LRange(ctx, k.metrics, 0, -1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionId, err)
	}

	rawEntries := metricsCmd.Val()
	log := make([]entity.MetricsEntry, 0, len(rawEntries))
	for _, raw := range rawEntries {
		var e entity.MetricsEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("decode metrics entry of session %s: %w", sessionId, err)
		}
		log = append(log, e)
	}

	history := historyCmd.Val()
	if history == nil {
		history = []string{}
	}
	return &entity.Session{
		Id:         sessionId,
		History:    history,
		MetricsLog: log,
	}, nil
}
