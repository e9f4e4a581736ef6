package platform

import (
	"context"
	"errors"
	"testing"
	"time"
)

// countingClient 记录每个接口被调用的次数。
type countingClient struct {
	inner        Client
	recordCalls  int
	metaCalls    int
	summaryCalls int
	pageCalls    int
}

func (c *countingClient) GetRecord(ctx context.Context, recordID string, fields []string) (*RawRecord, error) {
	c.recordCalls++
	return c.inner.GetRecord(ctx, recordID, fields)
}

func (c *countingClient) GetRelatedListMetadata(ctx context.Context, object, relationship, recordType string) (RelatedListMetadata, error) {
	c.metaCalls++
	return c.inner.GetRelatedListMetadata(ctx, object, relationship, recordType)
}

func (c *countingClient) ListRelatedListSummaries(ctx context.Context, object, recordType string) ([]RelatedListSummary, error) {
	c.summaryCalls++
	return c.inner.ListRelatedListSummaries(ctx, object, recordType)
}

func (c *countingClient) GetRelatedListRecords(ctx context.Context, parent, relationship string, fields []string) (RecordPage, error) {
	c.pageCalls++
	return c.inner.GetRelatedListRecords(ctx, parent, relationship, fields)
}

func TestCachingClientCachesMetadataAndSummaries(t *testing.T) {
	counting := &countingClient{inner: NewStaticClient(testScenario())}
	cache := NewCachingClient(counting, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cache.GetRelatedListMetadata(ctx, "Account", "Cases", ""); err != nil {
			t.Fatalf("get metadata: %v", err)
		}
		if _, err := cache.ListRelatedListSummaries(ctx, "Account", ""); err != nil {
			t.Fatalf("list summaries: %v", err)
		}
	}
	if counting.metaCalls != 1 {
		t.Fatalf("expect 1 metadata fetch, got %d", counting.metaCalls)
	}
	if counting.summaryCalls != 1 {
		t.Fatalf("expect 1 summary fetch, got %d", counting.summaryCalls)
	}

	// 记录与子记录永远不缓存。
	for i := 0; i < 2; i++ {
		if _, err := cache.GetRecord(ctx, "003C1", nil); err != nil {
			t.Fatalf("get record: %v", err)
		}
		if _, err := cache.GetRelatedListRecords(ctx, "001A1", "Cases", nil); err != nil {
			t.Fatalf("get related records: %v", err)
		}
	}
	if counting.recordCalls != 2 || counting.pageCalls != 2 {
		t.Fatalf("records must pass through, got record=%d page=%d", counting.recordCalls, counting.pageCalls)
	}
}

func TestCachingClientZeroTTLPassThrough(t *testing.T) {
	counting := &countingClient{inner: NewStaticClient(testScenario())}
	cache := NewCachingClient(counting, 0)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := cache.GetRelatedListMetadata(ctx, "Account", "Cases", ""); err != nil {
			t.Fatalf("get metadata: %v", err)
		}
	}
	if counting.metaCalls != 2 {
		t.Fatalf("zero ttl should pass through, got %d calls", counting.metaCalls)
	}
}

func TestCachingClientRefreshSummaries(t *testing.T) {
	static := NewStaticClient(testScenario())
	counting := &countingClient{inner: static}
	cache := NewCachingClient(counting, time.Minute)
	ctx := context.Background()

	if err := cache.RefreshSummaries(ctx, []string{"Account"}); err != nil {
		t.Fatalf("refresh summaries: %v", err)
	}
	if counting.summaryCalls != 1 {
		t.Fatalf("expect 1 refresh fetch, got %d", counting.summaryCalls)
	}

	// 刷新后的条目直接命中缓存。
	if _, err := cache.ListRelatedListSummaries(ctx, "Account", ""); err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	if counting.summaryCalls != 1 {
		t.Fatalf("refresh should prime cache, got %d fetches", counting.summaryCalls)
	}

	boom := errors.New("boom")
	static.Err = boom
	err := cache.RefreshSummaries(ctx, []string{"Account", "Contact"})
	if !errors.Is(err, boom) {
		t.Fatalf("expect first refresh error surfaced, got %v", err)
	}
}

func TestCachingClientPurgeAndStats(t *testing.T) {
	cache := NewCachingClient(NewStaticClient(testScenario()), time.Minute)
	ctx := context.Background()

	if _, err := cache.GetRelatedListMetadata(ctx, "Account", "Cases", ""); err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if _, err := cache.ListRelatedListSummaries(ctx, "Account", ""); err != nil {
		t.Fatalf("list summaries: %v", err)
	}
	summaries, metadata := cache.Stats()
	if summaries != 1 || metadata != 1 {
		t.Fatalf("expect 1/1 cached entries, got %d/%d", summaries, metadata)
	}

	cache.Purge()
	summaries, metadata = cache.Stats()
	if summaries != 0 || metadata != 0 {
		t.Fatalf("purge should clear entries, got %d/%d", summaries, metadata)
	}
}
