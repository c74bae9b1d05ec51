package apiclient

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// TokenSubject 读取令牌中的 sub 仅用于日志；不校验签名，令牌对前端是不透明的
func TokenSubject(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	sub, _ := claims.GetSubject()
	return sub
}
