package apiclient

import (
	"bytes"
	"context"
	"edu_portal/internal/util"
	"edu_portal/pkg/logger"
	"edu_portal/pkg/monitoring"
	"edu_portal/pkg/tracing"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// 错误响应体最多读取的字节数
const maxErrorBody = 4 << 10

// Client 学习平台后端的 HTTP 客户端。只负责传输与错误分类，不做缓存和重试
type Client struct {
	mu      sync.RWMutex
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Reconfigure 配置热加载时替换后端地址与超时
func (c *Client) Reconfigure(baseURL string, timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.http = &http.Client{Timeout: timeout}
}

func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

type Request struct {
	Method string
	Path   string
	// Route 用于指标与链路的低基数路径模板，如 /missions/{id}
	Route string
	Token string
	Query url.Values
	JSON  interface{}
	Form  url.Values
}

// Do 发送请求并把 2xx 响应体解码到 out（out 为 nil 时丢弃）
func (c *Client) Do(ctx context.Context, r Request, out interface{}) error {
	route := r.Route
	if route == "" {
		route = r.Path
	}

	ctx, span := tracing.Tracer.Start(ctx, "backend "+r.Method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
		),
	)
	defer span.End()

	start := time.Now()
	status, err := c.do(ctx, r, out)

	outcome := "ok"
	if err != nil {
		outcome = kindLabel(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	span.SetAttributes(attribute.Int("http.status_code", status))
	monitoring.ObserveBackendCall(r.Method, route, outcome, time.Since(start))

	logger.Log.Debug("backend call",
		zap.String("method", r.Method),
		zap.String("route", route),
		zap.Int("status", status),
		zap.String("outcome", outcome),
		zap.String("request_id", RequestIDFrom(ctx)),
		zap.String("subject", TokenSubject(r.Token)),
		zap.Duration("latency", time.Since(start)),
	)

	return err
}

func (c *Client) do(ctx context.Context, r Request, out interface{}) (int, error) {
	c.mu.RLock()
	base, hc := c.baseURL, c.http
	c.mu.RUnlock()

	target := base + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.JSON != nil:
		data, err := json.Marshal(r.JSON)
		if err != nil {
			return 0, util.ValidationError(fmt.Sprintf("요청 데이터를 만들 수 없습니다: %v", err))
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return 0, &util.APIError{Kind: util.ErrNetwork, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	if id := RequestIDFrom(ctx); id != "" {
		req.Header.Set(util.RequestIDHeader, id)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := hc.Do(req)
	if err != nil {
		return 0, &util.APIError{Kind: util.ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		kind := util.ErrServer
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = util.ErrAuth
		}
		return resp.StatusCode, &util.APIError{Kind: kind, Status: resp.StatusCode, Detail: errorDetail(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, &util.APIError{
			Kind:   util.ErrServer,
			Status: resp.StatusCode,
			Detail: "응답을 해석할 수 없습니다: " + err.Error(),
		}
	}

	return resp.StatusCode, nil
}

// errorDetail 优先取后端 {"detail": "..."}，否则返回原始响应体
func errorDetail(raw []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		return string(payload.Detail)
	}
	return strings.TrimSpace(string(raw))
}

func kindLabel(err error) string {
	switch {
	case errors.Is(err, util.ErrAuth):
		return "auth"
	case errors.Is(err, util.ErrNetwork):
		return "network"
	case errors.Is(err, util.ErrValidation):
		return "validation"
	default:
		return "server"
	}
}

// PathID 生成 /prefix/{id}/suffix 形式的路径
func PathID(prefix string, id int, suffix ...string) string {
	p := prefix + "/" + strconv.Itoa(id)
	for _, s := range suffix {
		p += s
	}
	return p
}
