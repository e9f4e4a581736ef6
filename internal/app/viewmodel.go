package app

import (
	"crm2grid/internal/domain"
	"crm2grid/internal/platform"
)

// ViewModel 是渲染组件消费的完整视图数据快照。
type ViewModel struct {
	Title      string                `json:"title"`
	IconName   string                `json:"iconName,omitempty"`
	IconColor  string                `json:"iconColor,omitempty"`
	Count      int                   `json:"count"`
	HasRecords bool                  `json:"hasRecords"`
	Columns    []domain.WidgetColumn `json:"columns"`
	Rows       []domain.DisplayRow   `json:"rows"`
	ViewAllURL string                `json:"viewAllUrl,omitempty"`
	State      StateSet              `json:"state"`
	Loaded     bool                  `json:"loaded"`
	HasError   bool                  `json:"hasError"`
	Generation uint64                `json:"generation"`
}

// buildViewModel 由组件的当前工作集拼出视图快照。
func buildViewModel(
	state StateSet,
	summary *platform.RelatedListSummary,
	fallbackTitle string,
	cols []domain.ColumnDescriptor,
	rows []domain.DisplayRow,
	count int,
	viewAllURL string,
	gen uint64,
) ViewModel {
	vm := ViewModel{
		Title:      fallbackTitle,
		Count:      count,
		Columns:    domain.BuildWidgetColumns(cols),
		Rows:       rows,
		ViewAllURL: viewAllURL,
		State:      state,
		Loaded:     state.Settled(),
		HasError:   state.HasError(),
		Generation: gen,
	}
	if vm.Rows == nil {
		vm.Rows = []domain.DisplayRow{}
	}
	vm.HasRecords = len(vm.Rows) > 0
	if summary != nil {
		if summary.LabelPlural != "" {
			vm.Title = summary.LabelPlural
		} else if summary.Label != "" {
			vm.Title = summary.Label
		}
		vm.IconName = summary.IconName
		vm.IconColor = summary.IconColor
	}
	return vm
}
