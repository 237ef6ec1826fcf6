package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"

	"api-dispatcher-service/internal/core/services"
)

type Handler struct {
	engine   *gin.Engine
	specs    *services.SpecService
	dispatch *services.DispatchService
	deploy   *services.DeployService
	sync     *services.SyncService
	registry HandlerRegistry

	defaultCloud string
	defaultStage string

	mu    sync.Mutex
	wired map[string]bool // "METHOD path" pairs already registered on the engine
}

func New(
	engine *gin.Engine,
	specs *services.SpecService,
	dispatch *services.DispatchService,
	deploy *services.DeployService,
	sync *services.SyncService,
	registry HandlerRegistry,
) *Handler {
	return &Handler{
		engine:   engine,
		specs:    specs,
		dispatch: dispatch,
		deploy:   deploy,
		sync:     sync,
		registry: registry,
		wired:    make(map[string]bool),
	}
}

// SetDeployDefaults sets the cloud and stage used when a deployment request
// leaves them out.
func (h *Handler) SetDeployDefaults(cloud, stage string) {
	h.defaultCloud = cloud
	h.defaultStage = stage
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Mounted APIs
	r.GET("/apis", h.ListAPIs)
	r.GET("/apis/:id", h.GetAPI)
	r.POST("/apis", h.MountAPI)
	r.DELETE("/apis/:id", h.UnmountAPI)

	// Validation
	r.POST("/validate", h.ValidateSpec)

	// Deployments
	r.GET("/deployments", h.ListDeployments)
	r.GET("/deployments/:id", h.GetDeployment)
	r.POST("/deployments", h.CreateDeployment)
	r.DELETE("/deployments/:id", h.DeleteDeployment)

	// Upstream mirror
	r.POST("/sync", h.SyncMirror)
}
