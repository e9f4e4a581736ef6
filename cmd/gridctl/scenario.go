package main

import "crm2grid/internal/platform"

const (
	demoAccountID    = "001A000001"
	demoContactID    = "003C000001"
	demoRelationship = "Cases"
)

// demoScenario 构建内置演示数据：一个客户、一个联系人和两条工单，
// 其中一条工单带可解析的联系人查找，另一条没有。
func demoScenario() platform.Scenario {
	nestedContact := &platform.RawRecord{
		ID:      demoContactID,
		APIName: "Contact",
		Fields: map[string]platform.FieldValue{
			"Name": {Value: "王芳", DisplayValue: "王芳"},
		},
	}

	caseOne := platform.RawRecord{
		ID:      "500C000001",
		APIName: "Case",
		Fields: map[string]platform.FieldValue{
			"Subject":     {Value: "无法登录控制台"},
			"Status":      {Value: "New", DisplayValue: "新建"},
			"CreatedDate": {Value: "2024-03-01T08:30:00Z", DisplayValue: "2024-03-01 16:30"},
			"ContactId":   {Value: demoContactID, DisplayValue: "王芳"},
			"Contact":     {Value: nestedContact},
		},
	}
	caseTwo := platform.RawRecord{
		ID:      "500C000002",
		APIName: "Case",
		Fields: map[string]platform.FieldValue{
			"Subject":     {Value: "发票抬头变更"},
			"Status":      {Value: "Working", DisplayValue: "处理中"},
			"CreatedDate": {Value: "2024-03-03T02:10:00Z", DisplayValue: "2024-03-03 10:10"},
		},
	}

	return platform.Scenario{
		Records: []platform.RawRecord{
			{
				ID:      demoContactID,
				APIName: "Contact",
				Fields: map[string]platform.FieldValue{
					"Name":      {Value: "王芳", DisplayValue: "王芳"},
					"AccountId": {Value: demoAccountID, DisplayValue: "明远贸易"},
				},
			},
			{
				ID:      demoAccountID,
				APIName: "Account",
				Fields: map[string]platform.FieldValue{
					"Name": {Value: "明远贸易", DisplayValue: "明远贸易"},
				},
			},
		},
		RelatedLists: []platform.ScenarioRelatedList{
			{
				ParentObjectAPIName: "Account",
				RelationshipName:    demoRelationship,
				ParentRecordID:      demoAccountID,
				Metadata: platform.RelatedListMetadata{
					Label:          "工单",
					ObjectAPINames: []string{"Case"},
					DisplayColumns: []platform.RelatedListColumn{
						{FieldAPIName: "Subject", Label: "主题", DataType: "text", Sortable: true},
						{FieldAPIName: "Status", Label: "状态", DataType: "picklist"},
						{FieldAPIName: "CreatedDate", Label: "创建时间", DataType: "datetime", Sortable: true},
						{FieldAPIName: "ContactId", Label: "联系人", DataType: "string", LookupID: "Contact.Id"},
					},
				},
				Records: []platform.RawRecord{caseOne, caseTwo},
			},
		},
		Summaries: []platform.ScenarioSummaries{
			{
				ParentObjectAPIName: "Account",
				Lists: []platform.RelatedListSummary{
					{
						RelatedListID: demoRelationship,
						Label:         "工单",
						LabelPlural:   "工单",
						IconName:      "standard:case",
						IconColor:     "F2CF5B",
						ObjectAPIName: "Case",
					},
					{
						RelatedListID: "Contacts",
						Label:         "联系人",
						LabelPlural:   "联系人",
						IconName:      "standard:contact",
						IconColor:     "A094ED",
						ObjectAPIName: "Contact",
					},
				},
			},
		},
	}
}
