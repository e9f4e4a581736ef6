package ioc

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"crm2grid/internal/app"
	"crm2grid/internal/platform"
)

// InitPlatformClient 构建平台数据源客户端。
// base_url 为空时退化为静态客户端，可选地从场景文件加载演示数据。
func InitPlatformClient(cfg app.Config, logger *zap.Logger) (platform.Client, error) {
	baseURL := strings.TrimSpace(cfg.Platform.BaseURL)
	if baseURL == "" {
		client := &platform.StaticClient{}
		if path := strings.TrimSpace(cfg.Platform.ScenarioFile); path != "" {
			sc, err := platform.LoadScenario(path)
			if err != nil {
				return nil, err
			}
			client.Load(sc)
			if logger != nil {
				logger.Info("static platform client loaded scenario", zap.String("file", path))
			}
		} else if logger != nil {
			logger.Warn("platform base_url empty, using empty static client")
		}
		return client, nil
	}

	var tokenSource platform.TokenSource
	if cfg.Platform.AuthEndpoint != "" && cfg.Platform.Username != "" {
		ts, err := platform.NewPasswordTokenSource(platform.PasswordTokenConfig{
			Endpoint: cfg.Platform.AuthEndpoint,
			Username: cfg.Platform.Username,
			Password: cfg.Platform.Password,
			Timeout:  5 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("构建令牌源失败: %w", err)
		}
		tokenSource = ts
	} else if cfg.Platform.StaticToken != "" {
		tokenSource = &platform.StaticTokenSource{Value: cfg.Platform.StaticToken}
	}

	return platform.NewHTTPClient(platform.HTTPConfig{
		BaseURL:        baseURL,
		TokenSource:    tokenSource,
		AuthHeaderName: cfg.Platform.AuthHeader,
		Timeout:        time.Duration(cfg.Platform.TimeoutSecond) * time.Second,
		PageSize:       cfg.Platform.PageSize,
		Retry: platform.RetryConfig{
			Attempts: cfg.Platform.Retry.Attempts,
			Backoff:  time.Duration(cfg.Platform.Retry.BackoffSeconds) * time.Second,
		},
	})
}
