package platform

import (
	"context"
	"sync"
	"time"
)

type cachedSummaries struct {
	lists   []RelatedListSummary
	expires time.Time
}

type cachedMetadata struct {
	meta    RelatedListMetadata
	expires time.Time
}

// CachingClient 在内层客户端之上缓存元数据与汇总，记录与页面数据不缓存。
type CachingClient struct {
	inner Client
	ttl   time.Duration

	mu        sync.Mutex
	summaries map[string]cachedSummaries
	metadata  map[string]cachedMetadata
}

// NewCachingClient 构建带 TTL 的缓存装饰器，ttl 不大于零时退化为直通。
func NewCachingClient(inner Client, ttl time.Duration) *CachingClient {
	return &CachingClient{
		inner:     inner,
		ttl:       ttl,
		summaries: make(map[string]cachedSummaries),
		metadata:  make(map[string]cachedMetadata),
	}
}

// GetRecord 记录数据不缓存，直接透传。
func (c *CachingClient) GetRecord(ctx context.Context, recordID string, fields []string) (*RawRecord, error) {
	return c.inner.GetRecord(ctx, recordID, fields)
}

// GetRelatedListRecords 子记录不缓存，直接透传。
func (c *CachingClient) GetRelatedListRecords(ctx context.Context, parentRecordID, relationshipName string, fields []string) (RecordPage, error) {
	return c.inner.GetRelatedListRecords(ctx, parentRecordID, relationshipName, fields)
}

// GetRelatedListMetadata 优先命中缓存，过期后回源并刷新。
func (c *CachingClient) GetRelatedListMetadata(ctx context.Context, parentObjectAPIName, relationshipName, recordTypeID string) (RelatedListMetadata, error) {
	key := listKey(parentObjectAPIName, relationshipName) + "/" + recordTypeID
	if c.ttl > 0 {
		c.mu.Lock()
		entry, ok := c.metadata[key]
		c.mu.Unlock()
		if ok && time.Now().Before(entry.expires) {
			return entry.meta, nil
		}
	}
	meta, err := c.inner.GetRelatedListMetadata(ctx, parentObjectAPIName, relationshipName, recordTypeID)
	if err != nil {
		return RelatedListMetadata{}, err
	}
	if c.ttl > 0 {
		c.mu.Lock()
		c.metadata[key] = cachedMetadata{meta: meta, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return meta, nil
}

// ListRelatedListSummaries 优先命中缓存，过期后回源并刷新。
func (c *CachingClient) ListRelatedListSummaries(ctx context.Context, parentObjectAPIName, recordTypeID string) ([]RelatedListSummary, error) {
	key := parentObjectAPIName + "/" + recordTypeID
	if c.ttl > 0 {
		c.mu.Lock()
		entry, ok := c.summaries[key]
		c.mu.Unlock()
		if ok && time.Now().Before(entry.expires) {
			return entry.lists, nil
		}
	}
	lists, err := c.inner.ListRelatedListSummaries(ctx, parentObjectAPIName, recordTypeID)
	if err != nil {
		return nil, err
	}
	if c.ttl > 0 {
		c.mu.Lock()
		c.summaries[key] = cachedSummaries{lists: lists, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return lists, nil
}

// RefreshSummaries 主动回源刷新指定对象的汇总缓存，返回首个遇到的错误。
func (c *CachingClient) RefreshSummaries(ctx context.Context, objectAPINames []string) error {
	var firstErr error
	for _, object := range objectAPINames {
		lists, err := c.inner.ListRelatedListSummaries(ctx, object, "")
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.mu.Lock()
		c.summaries[object+"/"] = cachedSummaries{lists: lists, expires: time.Now().Add(c.ttl)}
		c.mu.Unlock()
	}
	return firstErr
}

// Purge 清除全部缓存条目。
func (c *CachingClient) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries = make(map[string]cachedSummaries)
	c.metadata = make(map[string]cachedMetadata)
}

// Stats 返回当前缓存条目数，供运行指标输出。
func (c *CachingClient) Stats() (summaryEntries, metadataEntries int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.summaries), len(c.metadata)
}
