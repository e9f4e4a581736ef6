package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// TokenSource 返回调用平台接口所需的访问令牌。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource 使用固定令牌。
type StaticTokenSource struct {
	Value string
}

func (s *StaticTokenSource) Token(context.Context) (string, error) {
	if s == nil || s.Value == "" {
		return "", errors.New("静态令牌未配置")
	}
	return s.Value, nil
}

// PasswordTokenConfig 描述密码模式换取令牌所需的参数。
type PasswordTokenConfig struct {
	Endpoint string
	Username string
	Password string
	Timeout  time.Duration
}

// PasswordTokenSource 通过用户名密码换取令牌，并在过期前复用。
type PasswordTokenSource struct {
	cfg    PasswordTokenConfig
	client *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewPasswordTokenSource 校验配置并构建密码模式令牌源。
func NewPasswordTokenSource(cfg PasswordTokenConfig) (*PasswordTokenSource, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("认证地址不能为空")
	}
	if cfg.Username == "" {
		return nil, errors.New("认证用户名不能为空")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PasswordTokenSource{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// Token 返回缓存的令牌，过期后重新换取。
func (p *PasswordTokenSource) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.token != "" && time.Now().Before(p.expires) {
		return p.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"username": p.cfg.Username,
		"password": p.cfg.Password,
	})
	if err != nil {
		return "", fmt.Errorf("序列化认证请求失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("构建认证请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求认证接口失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("认证接口返回状态 %d", resp.StatusCode)
	}

	var out struct {
		AccessToken string `json:"accessToken"`
		ExpiresIn   int64  `json:"expiresIn"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("解析认证响应失败: %w", err)
	}
	if out.AccessToken == "" {
		return "", errors.New("认证响应缺少令牌")
	}

	p.token = out.AccessToken
	ttl := time.Duration(out.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	// 提前一分钟过期，避免边界上拿到失效令牌。
	if ttl > 2*time.Minute {
		ttl -= time.Minute
	}
	p.expires = time.Now().Add(ttl)
	return p.token, nil
}
