package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"crm2grid/internal/util"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultPageSize = 50
	// 平台网关约定的令牌头，未配置时使用标准 Authorization。
	defaultAuthHeader = "Authorization"
)

// RetryConfig 控制读接口失败后的重试行为。
type RetryConfig struct {
	Attempts int
	Backoff  time.Duration
}

// HTTPConfig 描述平台 UI 接口客户端的连接参数。
type HTTPConfig struct {
	BaseURL        string
	TokenSource    TokenSource
	AuthHeaderName string
	Timeout        time.Duration
	PageSize       int
	Retry          RetryConfig
	// Client 可注入自定义 http.Client，主要供测试使用。
	Client *http.Client
}

// HTTPClient 通过平台 UI 接口读取记录与相关列表。
type HTTPClient struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTPClient 校验配置并构建 HTTP 客户端。
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("平台地址不能为空")
	}
	cfg.BaseURL = base
	if cfg.AuthHeaderName == "" {
		cfg.AuthHeaderName = defaultAuthHeader
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{cfg: cfg, client: client}, nil
}

// GetRecord 拉取单条记录。
func (c *HTTPClient) GetRecord(ctx context.Context, recordID string, fields []string) (*RawRecord, error) {
	if recordID == "" {
		return nil, errors.New("记录标识不能为空")
	}
	query := url.Values{}
	if len(fields) > 0 {
		query.Set("fields", strings.Join(fields, ","))
	}
	var rec RawRecord
	if err := c.getJSON(ctx, "/ui-api/records/"+url.PathEscape(recordID), query, &rec); err != nil {
		return nil, fmt.Errorf("拉取记录 %s 失败: %w", recordID, err)
	}
	return &rec, nil
}

// GetRelatedListMetadata 拉取指定关系的展示配置。
func (c *HTTPClient) GetRelatedListMetadata(ctx context.Context, parentObjectAPIName, relationshipName, recordTypeID string) (RelatedListMetadata, error) {
	if parentObjectAPIName == "" || relationshipName == "" {
		return RelatedListMetadata{}, errors.New("对象名与关系名不能为空")
	}
	query := url.Values{}
	if recordTypeID != "" {
		query.Set("recordTypeId", recordTypeID)
	}
	path := "/ui-api/related-list-info/" + url.PathEscape(parentObjectAPIName) + "/" + url.PathEscape(relationshipName)
	var meta RelatedListMetadata
	if err := c.getJSON(ctx, path, query, &meta); err != nil {
		return RelatedListMetadata{}, fmt.Errorf("拉取相关列表元数据 %s/%s 失败: %w", parentObjectAPIName, relationshipName, err)
	}
	return meta, nil
}

// ListRelatedListSummaries 拉取对象下全部相关列表的汇总。
func (c *HTTPClient) ListRelatedListSummaries(ctx context.Context, parentObjectAPIName, recordTypeID string) ([]RelatedListSummary, error) {
	if parentObjectAPIName == "" {
		return nil, errors.New("对象名不能为空")
	}
	query := url.Values{}
	if recordTypeID != "" {
		query.Set("recordTypeId", recordTypeID)
	}
	var out struct {
		Lists []RelatedListSummary `json:"lists"`
	}
	if err := c.getJSON(ctx, "/ui-api/related-list-info/"+url.PathEscape(parentObjectAPIName), query, &out); err != nil {
		return nil, fmt.Errorf("拉取相关列表汇总 %s 失败: %w", parentObjectAPIName, err)
	}
	return out.Lists, nil
}

// GetRelatedListRecords 逐页拉取父记录下的全部子记录并合并。
func (c *HTTPClient) GetRelatedListRecords(ctx context.Context, parentRecordID, relationshipName string, fields []string) (RecordPage, error) {
	if parentRecordID == "" || relationshipName == "" {
		return RecordPage{}, errors.New("父记录标识与关系名不能为空")
	}
	path := "/ui-api/related-list-records/" + url.PathEscape(parentRecordID) + "/" + url.PathEscape(relationshipName)

	merged := RecordPage{}
	pageToken := ""
	for {
		query := url.Values{}
		if len(fields) > 0 {
			query.Set("fields", strings.Join(fields, ","))
		}
		query.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page RecordPage
		if err := c.getJSON(ctx, path, query, &page); err != nil {
			return RecordPage{}, fmt.Errorf("拉取相关列表记录 %s/%s 失败: %w", parentRecordID, relationshipName, err)
		}
		merged.Records = append(merged.Records, page.Records...)
		merged.Count = page.Count
		if page.NextPageToken == nil || *page.NextPageToken == "" {
			break
		}
		pageToken = *page.NextPageToken
	}
	if merged.Count == 0 {
		merged.Count = len(merged.Records)
	}
	return merged, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	full := c.cfg.BaseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	attempts := c.cfg.Retry.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	backoff := c.cfg.Retry.Backoff
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}

	return util.Retry(ctx, attempts, backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
		if err != nil {
			return fmt.Errorf("构建请求失败: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.cfg.TokenSource != nil {
			token, err := c.cfg.TokenSource.Token(ctx)
			if err != nil {
				return fmt.Errorf("获取令牌失败: %w", err)
			}
			if c.cfg.AuthHeaderName == defaultAuthHeader {
				req.Header.Set(defaultAuthHeader, "Bearer "+token)
			} else {
				req.Header.Set(c.cfg.AuthHeaderName, token)
			}
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("请求 %s 失败: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("请求 %s 返回状态 %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("解析 %s 响应失败: %w", path, err)
		}
		return nil
	})
}
