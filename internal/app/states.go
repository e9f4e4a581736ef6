package app

// SourceState 是单个数据源的加载状态。
type SourceState string

const (
	StateLoading SourceState = "loading"
	StateLoaded  SourceState = "loaded"
	StateError   SourceState = "error"
)

// StateSet 聚合组件依赖的四个数据源状态。
// 失败的数据源标记为 error，同样算加载结束，界面不会停在转圈上。
type StateSet struct {
	Record   SourceState `json:"record"`
	Summary  SourceState `json:"summary"`
	Metadata SourceState `json:"metadata"`
	Records  SourceState `json:"records"`
}

// NewStateSet 返回四个数据源都处于 loading 的初始状态。
func NewStateSet() StateSet {
	return StateSet{
		Record:   StateLoading,
		Summary:  StateLoading,
		Metadata: StateLoading,
		Records:  StateLoading,
	}
}

// Settled 报告四个数据源是否全部结束加载。
func (s StateSet) Settled() bool {
	return s.Record != StateLoading &&
		s.Summary != StateLoading &&
		s.Metadata != StateLoading &&
		s.Records != StateLoading
}

// HasError 报告是否有数据源以失败告终。
func (s StateSet) HasError() bool {
	return s.Record == StateError ||
		s.Summary == StateError ||
		s.Metadata == StateError ||
		s.Records == StateError
}
