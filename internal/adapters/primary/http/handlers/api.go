package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"api-dispatcher-service/internal/core/domain"
)

type specRequest struct {
	File string         `json:"file"`
	Spec map[string]any `json:"spec"`
}

type routeResponse struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
}

type apiResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Version   string          `json:"version"`
	Source    string          `json:"source,omitempty"`
	Servers   []string        `json:"servers,omitempty"`
	Routes    []routeResponse `json:"routes,omitempty"`
	RouteN    int             `json:"route_count"`
	MountedAt time.Time       `json:"mounted_at"`
}

func toAPIResponse(api *domain.MountedAPI, withRoutes bool) apiResponse {
	resp := apiResponse{
		ID:        api.ID.String(),
		Title:     api.Title,
		Version:   string(api.Version),
		Source:    api.Source,
		Servers:   api.Servers,
		RouteN:    len(api.Routes),
		MountedAt: api.MountedAt,
	}
	if withRoutes {
		for _, rule := range api.Routes {
			resp.Routes = append(resp.Routes, routeResponse{
				Method:      rule.Method,
				Path:        rule.Path,
				OperationID: rule.OperationID,
			})
		}
	}
	return resp
}

// loadDocument resolves the spec from the request body, either by file path
// or as an inline document.
func (h *Handler) loadDocument(req specRequest) (*domain.Document, error) {
	switch {
	case req.File != "":
		return h.specs.Load(req.File)
	case len(req.Spec) > 0:
		return h.specs.FromMap(req.Spec)
	default:
		return nil, domain.ErrMissingSpecSource
	}
}

func (h *Handler) ListAPIs(c *gin.Context) {
	apis := h.dispatch.List()
	resp := make([]apiResponse, 0, len(apis))
	for _, api := range apis {
		resp = append(resp, toAPIResponse(api, false))
	}
	c.JSON(http.StatusOK, gin.H{"apis": resp, "total": len(resp)})
}

func (h *Handler) GetAPI(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidAPIID)
		return
	}
	api, err := h.dispatch.Get(id)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toAPIResponse(api, true))
}

func (h *Handler) MountAPI(c *gin.Context) {
	var req specRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.loadDocument(req)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	api, err := h.Mount(doc)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAPIResponse(api, true))
}

func (h *Handler) UnmountAPI(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidAPIID)
		return
	}
	if err := h.dispatch.Unmount(id); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unmounted"})
}

func (h *Handler) ValidateSpec(c *gin.Context) {
	var req specRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	doc, err := h.loadDocument(req)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	report, err := h.dispatch.Validate(doc)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": report.Valid, "errors": report.Errors})
}
