package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"
)

// ErrInvalidConfig возвращается при некорректных параметрах лимитера
var ErrInvalidConfig = errors.New("ratelimit: invalid config")

// Limiter ограничивает число запросов на ключ (пользователь или IP)
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryStore token bucket на ключ в памяти процесса.
// Ключи, не использовавшиеся дольше idleTTL, удаляются: к этому моменту bucket
// уже полностью восстановлен, и новый limiter ведёт себя так же.
type MemoryStore struct {
	mu        sync.Mutex
	limiters  map[string]*memoryEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryStore создает лимитер на requests запросов за window с запасом burst
func NewMemoryStore(requests int, window time.Duration, burst int) (*MemoryStore, error) {
	if requests <= 0 || window <= 0 || burst <= 0 {
		return nil, ErrInvalidConfig
	}

	interval := window / time.Duration(requests)
	idleTTL := time.Duration(burst) * interval
	if idleTTL < window {
		idleTTL = window
	}

	return &MemoryStore{
		limiters: make(map[string]*memoryEntry),
		limit:    rate.Every(interval),
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}, nil
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	entry, ok := s.limiters[key]
	if !ok {
		entry = &memoryEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1), nil
}

// sweep не чаще раза в idleTTL удаляет простаивающие ключи
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.idleTTL {
		return
	}
	s.lastSweep = now

	for key, entry := range s.limiters {
		if now.Sub(entry.lastSeen) >= s.idleTTL {
			delete(s.limiters, key)
		}
	}
}

// RedisStore счётчик с фиксированным окном в Redis; общий для всех реплик сервиса
type RedisStore struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisStore создает лимитер на limit запросов за window
func NewRedisStore(client *redis.Client, prefix string, limit int, window time.Duration) (*RedisStore, error) {
	if client == nil || limit <= 0 || window <= 0 {
		return nil, ErrInvalidConfig
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}, nil
}

// Allow увеличивает счётчик и читает его TTL одной транзакцией.
// Ключ без TTL (например, Expire не дошёл до Redis) получает окно при следующем запросе,
// поэтому счётчик не может остаться навсегда.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := s.prefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.TTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, err
	}

	if needsExpire(ttl.Val()) {
		if err := s.client.Expire(ctx, redisKey, s.window).Err(); err != nil {
			return false, err
		}
	}

	return incr.Val() <= s.limit, nil
}

// needsExpire true для ключа без срока жизни (TTL отрицательный)
func needsExpire(ttl time.Duration) bool {
	return ttl < 0
}
