package app

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"crm2grid/internal/grid"
	"crm2grid/internal/platform"
)

func siblingParams() SiblingParams {
	return SiblingParams{
		Params: Params{
			RecordID:         "003C1",
			ObjectAPIName:    "Contact",
			RelationshipName: "Cases",
		},
		ParentObjectAPIName: "Account",
		ParentFieldName:     "AccountId",
	}
}

func newSiblingComponent(client *fakeClient) *SiblingListComponent {
	navigator := &navStub{}
	projector := &grid.Projector{Nav: navigator, Logger: zap.NewNop()}
	return NewSiblingListComponent(client, projector, navigator, zap.NewNop(), siblingParams())
}

func TestSiblingParamsValidate(t *testing.T) {
	if err := siblingParams().Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	missingParent := siblingParams()
	missingParent.ParentObjectAPIName = ""
	if err := missingParent.Validate(); err == nil {
		t.Fatalf("expected error for missing parent object")
	}
	missingField := siblingParams()
	missingField.ParentFieldName = ""
	if err := missingField.Validate(); err == nil {
		t.Fatalf("expected error for missing parent field")
	}
	missingBase := siblingParams()
	missingBase.RecordID = ""
	if err := missingBase.Validate(); err == nil {
		t.Fatalf("expected error for missing record id")
	}
}

func TestSiblingListComponentLoads(t *testing.T) {
	client := newFakeClient()
	c := newSiblingComponent(client)

	c.RefreshNow(context.Background())
	vm := c.View()

	if !vm.Loaded || vm.HasError {
		t.Fatalf("expect clean load, got state=%+v", vm.State)
	}
	if vm.State.Record != StateLoaded {
		t.Fatalf("record source should be loaded: %+v", vm.State)
	}
	if len(vm.Rows) != 2 || vm.Count != 2 {
		t.Fatalf("rows mismatch: %d count=%d", len(vm.Rows), vm.Count)
	}
	if vm.Title != "工单" {
		t.Fatalf("title mismatch: %s", vm.Title)
	}
	// 查看全部指向父记录下的完整列表。
	if vm.ViewAllURL != "https://x.example.com/rel/001A1" {
		t.Fatalf("view-all url mismatch: %s", vm.ViewAllURL)
	}

	// 取当前记录时只要求父字段。
	client.mu.Lock()
	fields := client.lastRecordFields
	client.mu.Unlock()
	if !reflect.DeepEqual(fields, []string{"Contact.AccountId"}) {
		t.Fatalf("record fetch fields mismatch: %v", fields)
	}
}

func TestSiblingListComponentParentFetchError(t *testing.T) {
	client := newFakeClient()
	client.recordErr = errors.New("record down")
	c := newSiblingComponent(client)

	c.RefreshNow(context.Background())
	vm := c.View()

	if !vm.Loaded || !vm.HasError {
		t.Fatalf("expect settled error view: %+v", vm.State)
	}
	want := StateSet{Record: StateError, Summary: StateError, Metadata: StateError, Records: StateError}
	if vm.State != want {
		t.Fatalf("all sources should settle as error, got %+v", vm.State)
	}
	// 父记录拿不到时后续数据源不再请求。
	if _, summary, meta, page := client.calls(); summary+meta+page != 0 {
		t.Fatalf("downstream fetches should be skipped: %d/%d/%d", summary, meta, page)
	}
}

func TestSiblingListComponentNoParentValue(t *testing.T) {
	client := newFakeClient()
	client.record = &platform.RawRecord{ID: "003C1", APIName: "Contact"}
	c := newSiblingComponent(client)

	c.RefreshNow(context.Background())
	vm := c.View()

	if !vm.Loaded || vm.HasError {
		t.Fatalf("missing parent should degrade without error: %+v", vm.State)
	}
	if len(vm.Rows) != 0 || vm.HasRecords || vm.ViewAllURL != "" {
		t.Fatalf("expect empty view, got rows=%d viewAll=%q", len(vm.Rows), vm.ViewAllURL)
	}
	if _, summary, meta, page := client.calls(); summary+meta+page != 0 {
		t.Fatalf("downstream fetches should be skipped: %d/%d/%d", summary, meta, page)
	}
}

func TestSiblingListComponentRecordsError(t *testing.T) {
	client := newFakeClient()
	client.pageErr = errors.New("records down")
	c := newSiblingComponent(client)

	c.RefreshNow(context.Background())
	vm := c.View()

	if vm.State.Records != StateError {
		t.Fatalf("records failure should be flagged: %+v", vm.State)
	}
	// 查看全部链接在取数之前就已经就绪。
	if vm.ViewAllURL != "https://x.example.com/rel/001A1" {
		t.Fatalf("view-all url should survive records failure: %s", vm.ViewAllURL)
	}
}

func TestSiblingListComponentRecordFilter(t *testing.T) {
	client := newFakeClient()
	c := newSiblingComponent(client)
	c.RecordFilter = func(records []platform.RawRecord) []platform.RawRecord {
		kept := make([]platform.RawRecord, 0, len(records))
		for _, r := range records {
			if r.ID != "500C1" {
				kept = append(kept, r)
			}
		}
		return kept
	}

	c.RefreshNow(context.Background())
	vm := c.View()

	if len(vm.Rows) != 1 || vm.Rows[0].ID() != "500C2" {
		t.Fatalf("filter should drop records before projection, got %d rows", len(vm.Rows))
	}
	// 计数仍取服务端口径，筛选只影响展示行。
	if vm.Count != 2 {
		t.Fatalf("count should keep page total, got %d", vm.Count)
	}
}

func TestSiblingListComponentSetParams(t *testing.T) {
	client := newFakeClient()
	c := newSiblingComponent(client)
	ctx := context.Background()

	c.SetParams(ctx, siblingParams())
	c.Wait()
	if record, _, _, _ := client.calls(); record != 0 {
		t.Fatalf("unchanged params must not refresh, got %d record calls", record)
	}

	next := siblingParams()
	next.RecordID = "003C2"
	c.SetParams(ctx, next)
	c.Wait()
	if record, _, _, page := client.calls(); record != 1 || page != 1 {
		t.Fatalf("changed params should refresh, got record=%d page=%d", record, page)
	}
}
