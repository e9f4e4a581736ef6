package platform

import "context"

// RecordService 提供单条记录的读取能力。
type RecordService interface {
	// GetRecord 按记录标识拉取记录，fields 为需要返回的限定字段路径。
	GetRecord(ctx context.Context, recordID string, fields []string) (*RawRecord, error)
}

// RelatedListService 提供相关列表元数据、汇总与记录的读取能力。
type RelatedListService interface {
	// GetRelatedListMetadata 拉取父对象上指定关系的展示配置。
	GetRelatedListMetadata(ctx context.Context, parentObjectAPIName, relationshipName, recordTypeID string) (RelatedListMetadata, error)
	// ListRelatedListSummaries 拉取父对象下全部相关列表的汇总条目。
	ListRelatedListSummaries(ctx context.Context, parentObjectAPIName, recordTypeID string) ([]RelatedListSummary, error)
	// GetRelatedListRecords 拉取父记录下指定关系的全部子记录。
	GetRelatedListRecords(ctx context.Context, parentRecordID, relationshipName string, fields []string) (RecordPage, error)
}

// Client 聚合平台 UI 接口的全部读取能力。
type Client interface {
	RecordService
	RelatedListService
}
