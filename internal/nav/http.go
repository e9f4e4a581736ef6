package nav

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crm2grid/internal/grid"
)

// HTTPNavigator 调用外部导航服务把页面意图换成 URL。
type HTTPNavigator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPNavigator 构建外部导航服务客户端。
func NewHTTPNavigator(endpoint string, timeout time.Duration) (*HTTPNavigator, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("导航服务地址不能为空")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPNavigator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// GenerateURL 把页面意图 POST 给导航服务，期待 {"url": "..."} 响应。
func (n *HTTPNavigator) GenerateURL(ctx context.Context, ref grid.PageReference) (string, error) {
	payload, err := json.Marshal(ref)
	if err != nil {
		return "", fmt.Errorf("序列化页面意图失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("构建导航请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求导航服务失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("导航服务返回状态 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("解析导航响应失败: %w", err)
	}
	if out.URL == "" {
		return "", errors.New("导航响应缺少 url 字段")
	}
	return out.URL, nil
}
