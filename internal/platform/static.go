package platform

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Scenario 描述静态客户端可加载的一组演示数据。
type Scenario struct {
	Records      []RawRecord           `yaml:"records" json:"records"`
	RelatedLists []ScenarioRelatedList `yaml:"relatedLists" json:"relatedLists"`
	Summaries    []ScenarioSummaries   `yaml:"summaries" json:"summaries"`
}

// ScenarioRelatedList 把一个关系的元数据与父记录下的子记录绑在一起。
type ScenarioRelatedList struct {
	ParentObjectAPIName string              `yaml:"parentObjectApiName" json:"parentObjectApiName"`
	RelationshipName    string              `yaml:"relationshipName" json:"relationshipName"`
	ParentRecordID      string              `yaml:"parentRecordId" json:"parentRecordId"`
	Metadata            RelatedListMetadata `yaml:"metadata" json:"metadata"`
	Records             []RawRecord         `yaml:"records" json:"records"`
}

// ScenarioSummaries 是某个对象下的汇总条目集合。
type ScenarioSummaries struct {
	ParentObjectAPIName string               `yaml:"parentObjectApiName" json:"parentObjectApiName"`
	Lists               []RelatedListSummary `yaml:"lists" json:"lists"`
}

// LoadScenario 从 YAML 文件读取演示数据。
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("读取场景文件失败: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("解析场景文件 %s 失败: %w", path, err)
	}
	return sc, nil
}

// StaticClient 基于内存数据实现 Client，用于演示与测试。
// 零值可用，未注册的键返回 NotFound 风格错误。
type StaticClient struct {
	mu        sync.RWMutex
	records   map[string]*RawRecord
	metadata  map[string]RelatedListMetadata
	summaries map[string][]RelatedListSummary
	related   map[string][]RawRecord

	// Err 非空时所有方法直接返回该错误，用于演练上游故障。
	Err error
}

// NewStaticClient 从场景数据构建静态客户端。
func NewStaticClient(sc Scenario) *StaticClient {
	c := &StaticClient{}
	c.Load(sc)
	return c
}

// Load 合并一份场景数据，重复键以后写入者为准。
func (c *StaticClient) Load(sc Scenario) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMaps()
	for i := range sc.Records {
		rec := sc.Records[i]
		c.records[rec.ID] = &rec
	}
	for _, rl := range sc.RelatedLists {
		c.metadata[listKey(rl.ParentObjectAPIName, rl.RelationshipName)] = rl.Metadata
		if rl.ParentRecordID != "" {
			c.related[listKey(rl.ParentRecordID, rl.RelationshipName)] = rl.Records
		}
	}
	for _, s := range sc.Summaries {
		c.summaries[s.ParentObjectAPIName] = s.Lists
	}
}

// AddRecord 注册单条记录。
func (c *StaticClient) AddRecord(rec RawRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureMaps()
	c.records[rec.ID] = &rec
}

func (c *StaticClient) ensureMaps() {
	if c.records == nil {
		c.records = make(map[string]*RawRecord)
	}
	if c.metadata == nil {
		c.metadata = make(map[string]RelatedListMetadata)
	}
	if c.summaries == nil {
		c.summaries = make(map[string][]RelatedListSummary)
	}
	if c.related == nil {
		c.related = make(map[string][]RawRecord)
	}
}

func listKey(owner, relationship string) string {
	return owner + "/" + relationship
}

// GetRecord 返回注册过的记录副本，静态实现不做字段裁剪。
func (c *StaticClient) GetRecord(_ context.Context, recordID string, _ []string) (*RawRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Err != nil {
		return nil, c.Err
	}
	rec, ok := c.records[recordID]
	if !ok {
		return nil, fmt.Errorf("记录 %s 不存在", recordID)
	}
	cp := *rec
	return &cp, nil
}

// GetRelatedListMetadata 返回注册过的展示配置。
func (c *StaticClient) GetRelatedListMetadata(_ context.Context, parentObjectAPIName, relationshipName, _ string) (RelatedListMetadata, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Err != nil {
		return RelatedListMetadata{}, c.Err
	}
	meta, ok := c.metadata[listKey(parentObjectAPIName, relationshipName)]
	if !ok {
		return RelatedListMetadata{}, fmt.Errorf("相关列表 %s/%s 未定义", parentObjectAPIName, relationshipName)
	}
	return meta, nil
}

// ListRelatedListSummaries 返回注册过的汇总条目，未注册时返回空列表。
func (c *StaticClient) ListRelatedListSummaries(_ context.Context, parentObjectAPIName, _ string) ([]RelatedListSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Err != nil {
		return nil, c.Err
	}
	lists := c.summaries[parentObjectAPIName]
	out := make([]RelatedListSummary, len(lists))
	copy(out, lists)
	return out, nil
}

// GetRelatedListRecords 返回注册在父记录下的子记录，静态实现不做分页。
func (c *StaticClient) GetRelatedListRecords(_ context.Context, parentRecordID, relationshipName string, _ []string) (RecordPage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Err != nil {
		return RecordPage{}, c.Err
	}
	records, ok := c.related[listKey(parentRecordID, relationshipName)]
	if !ok {
		return RecordPage{Records: []RawRecord{}}, nil
	}
	out := make([]RawRecord, len(records))
	copy(out, records)
	return RecordPage{Records: out, Count: len(out)}, nil
}
