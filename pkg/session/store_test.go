package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/securecookie"
)

var testKeys = [][]byte{securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32)}

func testOptions() Options {
	return Options{Name: "edu_portal", MaxAge: 3600}
}

// carry 把响应中的 Set-Cookie 带到下一次请求上
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestCookieStoreRoundTrip(t *testing.T) {
	s := NewCookieStore(testOptions(), testKeys...)

	if got := s.Token(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Fatalf("token without cookie = %q", got)
	}

	rec := httptest.NewRecorder()
	if err := s.SetToken(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "tok-1"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	req := carry(rec)
	if got := s.Token(req); got != "tok-1" {
		t.Fatalf("token = %q, want tok-1", got)
	}

	rec = httptest.NewRecorder()
	if err := s.Clear(rec, req); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := s.Token(carry(rec)); got != "" {
		t.Fatalf("token after clear = %q", got)
	}
}

func TestCookieStoreRejectsForeignCookie(t *testing.T) {
	other := NewCookieStore(testOptions(), securecookie.GenerateRandomKey(32))
	rec := httptest.NewRecorder()
	if err := other.SetToken(rec, httptest.NewRequest(http.MethodPost, "/", nil), "forged"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	s := NewCookieStore(testOptions(), testKeys...)
	if got := s.Token(carry(rec)); got != "" {
		t.Fatalf("token from foreign cookie = %q", got)
	}
}

type fakeRedis struct {
	data map[string]string
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := f.data[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	cmd := redis.NewStatusCmd(ctx, "set", key)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	cmd := redis.NewIntCmd(ctx, "del")
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "ping")
	cmd.SetVal("PONG")
	return cmd
}

func TestRedisStoreRoundTrip(t *testing.T) {
	rdb := &fakeRedis{data: map[string]string{}}
	s := NewRedisStore(rdb, testOptions(), time.Hour, testKeys...)

	rec := httptest.NewRecorder()
	if err := s.SetToken(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "tok-2"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if len(rdb.data) != 1 {
		t.Fatalf("redis entries = %d, want 1", len(rdb.data))
	}

	req := carry(rec)
	if got := s.Token(req); got != "tok-2" {
		t.Fatalf("token = %q, want tok-2", got)
	}

	rec = httptest.NewRecorder()
	if err := s.Clear(rec, req); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(rdb.data) != 0 {
		t.Fatal("token should be removed from redis")
	}
	if got := s.Token(req); got != "" {
		t.Fatalf("token after clear = %q", got)
	}

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
