// Package apiclient работает с удалённым API продажи билетов. Каждый endpoint отвечает
// конвертом {code, message, result}; клиент его разворачивает и не делает повторов.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"bus-admin/pkg/config"
	"bus-admin/pkg/metrics"
)

type tokenKey struct{}

// WithToken заставляет вызовы с ctx авторизоваться указанным bearer-токеном.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Client struct {
	http         *resty.Client
	serviceToken string
	logger       *zap.Logger
}

func New(cfg config.BackendConfig, logger *zap.Logger) *Client {
	logger = logger.Named("backend_client")

	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(logger.Sugar())

	return &Client{
		http:         http,
		serviceToken: cfg.ServiceToken,
		logger:       logger,
	}
}

// GetResult выполняет GET path?query и декодирует result из конверта в out.
// endpoint - метка с малой кардинальностью для метрик и ошибок.
func (c *Client) GetResult(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	return c.get(ctx, endpoint, path, nil, query, out)
}

func (c *Client) get(
	ctx context.Context,
	endpoint string,
	path string,
	pathParams map[string]string,
	query url.Values,
	out any,
) error {
	env := &Envelope[json.RawMessage]{}
	errEnv := &Envelope[json.RawMessage]{}

	req := c.http.R().
		SetContext(ctx).
		SetResult(env).
		SetError(errEnv)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if token := c.tokenFor(ctx); token != "" {
		req.SetAuthToken(token)
	}

	start := time.Now()
	resp, err := req.Get(path)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		c.observe(endpoint, "transport")
		c.logger.Warn("Ошибка запроса к бэкенду", zap.String("endpoint", endpoint), zap.Error(err))
		return &Error{Endpoint: endpoint, Err: err}
	}

	if resp.IsError() {
		c.observe(endpoint, "http_error")
		c.logger.Warn("Бэкенд ответил статусом ошибки",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode()),
			zap.Int("code", errEnv.Code),
			zap.String("message", errEnv.Message),
		)
		return &Error{Endpoint: endpoint, Status: resp.StatusCode(), Code: errEnv.Code, Message: errEnv.Message}
	}

	if env.Code != CodeOK {
		c.observe(endpoint, "rejected")
		c.logger.Warn("Бэкенд отклонил запрос",
			zap.String("endpoint", endpoint),
			zap.Int("code", env.Code),
			zap.String("message", env.Message),
		)
		return &Error{Endpoint: endpoint, Status: resp.StatusCode(), Code: env.Code, Message: env.Message}
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			c.observe(endpoint, "decode")
			return &Error{Endpoint: endpoint, Status: resp.StatusCode(), Code: env.Code, Err: fmt.Errorf("decode result: %w", err)}
		}
	}

	c.observe(endpoint, "ok")
	c.logger.Debug("Запрос к бэкенду выполнен",
		zap.String("endpoint", endpoint),
		zap.Duration("took", resp.Time()),
	)
	return nil
}

func (c *Client) tokenFor(ctx context.Context) string {
	if token := tokenFromContext(ctx); token != "" {
		return token
	}
	return c.serviceToken
}

func (c *Client) observe(endpoint, outcome string) {
	metrics.BackendRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}
