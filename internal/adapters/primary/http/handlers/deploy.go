package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"api-dispatcher-service/internal/core/domain"
	ports "api-dispatcher-service/internal/core/ports/output"
)

type deployRequest struct {
	Cloud        string         `json:"cloud"`
	Kind         string         `json:"kind"` // "spec" (default) or "app"
	Stage        string         `json:"stage"`
	File         string         `json:"file"`
	Spec         map[string]any `json:"spec"`
	SettingsFile string         `json:"settings_file"`
	AppLocation  string         `json:"app_location"`
	ProjectName  string         `json:"project_name"`
	Service      string         `json:"service"`
}

type deploymentResponse struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Cloud     string         `json:"cloud"`
	Stage     string         `json:"stage,omitempty"`
	Title     string         `json:"title,omitempty"`
	Status    string         `json:"status"`
	Release   domain.Release `json:"release"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toDeploymentResponse(d *domain.Deployment) deploymentResponse {
	return deploymentResponse{
		ID:        d.ID.String(),
		Kind:      string(d.Kind),
		Cloud:     d.Cloud,
		Stage:     d.Stage,
		Title:     d.Title,
		Status:    string(d.Status),
		Release:   d.Release,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (h *Handler) CreateDeployment(c *gin.Context) {
	var req deployRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Cloud == "" {
		req.Cloud = h.defaultCloud
	}
	if req.Stage == "" {
		req.Stage = h.defaultStage
	}
	if req.Cloud == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cloud is required"})
		return
	}

	var (
		d   *domain.Deployment
		err error
	)
	if req.Kind == string(domain.DeploymentKindApp) {
		d, err = h.deploy.DeployApp(c.Request.Context(), req.Cloud, ports.AppDeployment{
			SettingsFile: req.SettingsFile,
			AppLocation:  req.AppLocation,
			Stage:        req.Stage,
			ProjectName:  req.ProjectName,
			Service:      req.Service,
		})
	} else {
		var doc *domain.Document
		doc, err = h.loadDocument(specRequest{File: req.File, Spec: req.Spec})
		if err != nil {
			mapDomainError(c, err)
			return
		}
		d, err = h.deploy.DeploySpec(c.Request.Context(), doc, req.Cloud, req.Stage, req.SettingsFile)
	}
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toDeploymentResponse(d))
}

func (h *Handler) ListDeployments(c *gin.Context) {
	deployments, err := h.deploy.List(c.Request.Context())
	if err != nil {
		mapDomainError(c, err)
		return
	}
	resp := make([]deploymentResponse, 0, len(deployments))
	for _, d := range deployments {
		resp = append(resp, toDeploymentResponse(d))
	}
	c.JSON(http.StatusOK, gin.H{"deployments": resp, "total": len(resp)})
}

func (h *Handler) GetDeployment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidDeploymentID)
		return
	}
	d, err := h.deploy.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeploymentResponse(d))
}

func (h *Handler) DeleteDeployment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		mapDomainError(c, domain.ErrInvalidDeploymentID)
		return
	}
	if err := h.deploy.Undeploy(c.Request.Context(), id); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *Handler) SyncMirror(c *gin.Context) {
	var req struct {
		Only []string `json:"only"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := h.sync.Refresh(c.Request.Context(), req.Only); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "synced"})
}
