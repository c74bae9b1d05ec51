package session

import (
	"context"
	"edu_portal/pkg/logger"
	"errors"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const sessionIDKey = "sid"

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisStore cookie 中只保存会话 ID，token 存在 Redis
type RedisStore struct {
	cookies *sessions.CookieStore
	rdb     redisClient
	name    string
	ttl     time.Duration
}

func NewRedisStore(rdb redisClient, o Options, ttl time.Duration, keyPairs ...[]byte) *RedisStore {
	s := sessions.NewCookieStore(keyPairs...)
	s.Options = cookieOptions(o)
	return &RedisStore{cookies: s, rdb: rdb, name: o.Name, ttl: ttl}
}

func (s *RedisStore) key(sid string) string {
	return "edu_portal:session:" + sid
}

func (s *RedisStore) sessionID(r *http.Request) (*sessions.Session, string) {
	sess, _ := s.cookies.Get(r, s.name)
	sid, _ := sess.Values[sessionIDKey].(string)
	return sess, sid
}

func (s *RedisStore) Token(r *http.Request) string {
	_, sid := s.sessionID(r)
	if sid == "" {
		return ""
	}

	token, err := s.rdb.Get(r.Context(), s.key(sid)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Failed to read session token", zap.Error(err))
		}
		return ""
	}
	return token
}

func (s *RedisStore) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	sess, sid := s.sessionID(r)
	if sid == "" {
		sid = uuid.New().String()
		sess.Values[sessionIDKey] = sid
		if err := sess.Save(r, w); err != nil {
			return err
		}
	}
	return s.rdb.Set(r.Context(), s.key(sid), token, s.ttl).Err()
}

func (s *RedisStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, sid := s.sessionID(r)
	if sid == "" {
		return nil
	}
	if err := s.rdb.Del(r.Context(), s.key(sid)).Err(); err != nil {
		return err
	}
	delete(sess.Values, sessionIDKey)
	return sess.Save(r, w)
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
