package router

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"crm2grid/internal/app"
)

// ListHandler 负责相关列表视图相关的 HTTP 请求。
type ListHandler struct {
	svc    *app.Service
	logger *zap.Logger
}

// NewListHandler 构建一个新的 ListHandler。
func NewListHandler(svc *app.Service, logger *zap.Logger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

// RegisterRoutes 将相关列表路由注册到给定的路由组。
func (h *ListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/related-lists/query", h.handleQuery)

	comps := rg.Group("/components")
	comps.POST("", h.handleCreate)
	comps.GET("/:id/view", h.handleView)
	comps.PATCH("/:id/params", h.handleSetParams)
	comps.POST("/:id/refresh", h.handleRefresh)
	comps.DELETE("/:id", h.handleDelete)
}

type queryRequest struct {
	Sibling             bool   `json:"sibling"`
	RecordID            string `json:"recordId"`
	ObjectAPIName       string `json:"objectApiName"`
	RelationshipName    string `json:"relationshipName"`
	RecordTypeID        string `json:"recordTypeId"`
	ParentObjectAPIName string `json:"parentObjectApiName"`
	ParentFieldName     string `json:"parentFieldName"`
}

func (r queryRequest) directParams() app.Params {
	return app.Params{
		RecordID:         r.RecordID,
		ObjectAPIName:    r.ObjectAPIName,
		RelationshipName: r.RelationshipName,
		RecordTypeID:     r.RecordTypeID,
	}
}

func (r queryRequest) siblingParams() app.SiblingParams {
	return app.SiblingParams{
		Params:              r.directParams(),
		ParentObjectAPIName: r.ParentObjectAPIName,
		ParentFieldName:     r.ParentFieldName,
	}
}

// handleQuery 一次性跑完整个投影管线并返回视图。
func (h *ListHandler) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request payload"})
		return
	}

	var (
		vm  app.ViewModel
		err error
	)
	if req.Sibling {
		vm, err = h.svc.QuerySibling(c.Request.Context(), req.siblingParams())
	} else {
		vm, err = h.svc.QueryDirect(c.Request.Context(), req.directParams())
	}
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, vm)
}

type createRequest struct {
	Kind   string          `json:"kind"`
	Params json.RawMessage `json:"params"`
}

type createResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// handleCreate 注册一个有状态组件实例，后台开始首次加载。
func (h *ListHandler) handleCreate(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request payload"})
		return
	}

	// 实例的刷新生命周期跟随实例本身，不随本次请求结束而取消。
	var (
		inst *app.Instance
		err  error
	)
	switch app.ComponentKind(req.Kind) {
	case app.KindRelatedList:
		var p app.Params
		if jsonErr := json.Unmarshal(req.Params, &p); jsonErr != nil {
			c.JSON(400, gin.H{"error": "invalid params payload"})
			return
		}
		inst, err = h.svc.CreateDirect(context.Background(), p)
	case app.KindSiblingList:
		var p app.SiblingParams
		if jsonErr := json.Unmarshal(req.Params, &p); jsonErr != nil {
			c.JSON(400, gin.H{"error": "invalid params payload"})
			return
		}
		inst, err = h.svc.CreateSibling(context.Background(), p)
	default:
		c.JSON(400, gin.H{"error": "unknown component kind"})
		return
	}
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, createResponse{ID: inst.ID, Kind: string(inst.Kind)})
}

// handleView 返回实例当前的视图快照。
func (h *ListHandler) handleView(c *gin.Context) {
	inst, ok := h.svc.Registry().Get(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"error": "component not found"})
		return
	}
	c.JSON(200, inst.Component.View())
}

// handleSetParams 更新实例参数，参数变化会触发后台重新加载。
func (h *ListHandler) handleSetParams(c *gin.Context) {
	inst, ok := h.svc.Registry().Get(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"error": "component not found"})
		return
	}

	switch comp := inst.Component.(type) {
	case *app.RelatedListComponent:
		var p app.Params
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(400, gin.H{"error": "invalid params payload"})
			return
		}
		if err := p.Validate(); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		comp.SetParams(context.Background(), p)
	case *app.SiblingListComponent:
		var p app.SiblingParams
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(400, gin.H{"error": "invalid params payload"})
			return
		}
		if err := p.Validate(); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		comp.SetParams(context.Background(), p)
	default:
		if h.logger != nil {
			h.logger.Error("unknown component type in registry", zap.String("id", inst.ID))
		}
		c.JSON(500, gin.H{"error": "unknown component type"})
		return
	}
	c.JSON(200, gin.H{"id": inst.ID, "status": "accepted"})
}

// handleRefresh 触发一次后台完整刷新。
func (h *ListHandler) handleRefresh(c *gin.Context) {
	inst, ok := h.svc.Registry().Get(c.Param("id"))
	if !ok {
		c.JSON(404, gin.H{"error": "component not found"})
		return
	}
	inst.Component.Refresh(context.Background())
	c.JSON(202, gin.H{"id": inst.ID, "status": "refreshing"})
}

// handleDelete 注销实例。
func (h *ListHandler) handleDelete(c *gin.Context) {
	if !h.svc.Registry().Remove(c.Param("id")) {
		c.JSON(404, gin.H{"error": "component not found"})
		return
	}
	c.JSON(200, gin.H{"status": "deleted"})
}
