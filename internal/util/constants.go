package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

const (
	PaymentMethodCard     = "CARD"
	PaymentSuccessCode    = "PAYMENT_SUCCESS"
	DefaultPopularLimit   = 10
	RequestIDHeader       = "X-Request-ID"
	ContextKeyRequestID   = "request_id"
	ContextKeyCurrentUser = "current_user"
	ContextKeyToken       = "token"
	ContextKeyNotice      = "session_notice"
)
