package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// TokenKey 会话中保存 bearer token 的键；不存在即未登录
const TokenKey = "token"

// Store 保存当前浏览器会话的 bearer token
type Store interface {
	Token(r *http.Request) string
	SetToken(w http.ResponseWriter, r *http.Request, token string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type Options struct {
	Name   string
	MaxAge int
	Secure bool
}

func cookieOptions(o Options) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   o.MaxAge,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieStore 把 token 放进签名加密的 cookie
type CookieStore struct {
	store *sessions.CookieStore
	name  string
}

func NewCookieStore(o Options, keyPairs ...[]byte) *CookieStore {
	s := sessions.NewCookieStore(keyPairs...)
	s.Options = cookieOptions(o)
	return &CookieStore{store: s, name: o.Name}
}

func (s *CookieStore) Token(r *http.Request) string {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[TokenKey].(string)
	return token
}

func (s *CookieStore) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	sess, _ := s.store.Get(r, s.name)
	sess.Values[TokenKey] = token
	return sess.Save(r, w)
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	if _, ok := sess.Values[TokenKey]; !ok && sess.IsNew {
		return nil
	}
	delete(sess.Values, TokenKey)
	return sess.Save(r, w)
}
