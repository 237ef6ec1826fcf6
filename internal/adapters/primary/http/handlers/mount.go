package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"api-dispatcher-service/internal/core/domain"
)

// HandlerRegistry maps operation ids to gin handlers. A key may be
// namespaced with the spec's controller hint (`controller.operationId`);
// namespaced entries win over bare operation ids.
type HandlerRegistry map[string]gin.HandlerFunc

func (r HandlerRegistry) resolve(rule domain.RouteRule) gin.HandlerFunc {
	if rule.Controller != "" {
		if h, ok := r[rule.Controller+"."+rule.OperationID]; ok {
			return h
		}
	}
	if h, ok := r[rule.OperationID]; ok {
		return h
	}
	return nil
}

// Mount validates a document, registers it with the dispatcher and wires its
// fresh routes onto the engine.
func (h *Handler) Mount(doc *domain.Document) (*domain.MountedAPI, error) {
	api, fresh, err := h.dispatch.Mount(doc)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, rule := range fresh {
		key := rule.ClaimKey()
		if h.wired[key] {
			// Route survived an earlier unmount; gin cannot re-register it.
			continue
		}
		if h.wireRoute(rule) {
			h.wired[key] = true
		}
	}
	log.WithFields(log.Fields{
		"api":    api.Title,
		"routes": len(fresh),
	}).Info("mounted API")
	return api, nil
}

// wireRoute registers one rule on the engine. gin panics when a route
// conflicts with the existing tree (a static segment under a wildcard, for
// example); such rules are skipped so the rest of the spec still mounts.
func (h *Handler) wireRoute(rule domain.RouteRule) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("skipping route %s %s, conflicts with an existing route: %v", rule.Method, rule.Path, r)
			ok = false
		}
	}()
	h.engine.Handle(rule.Method, ginPath(rule.Path), h.routeHandler(rule))
	return true
}

func (h *Handler) routeHandler(rule domain.RouteRule) gin.HandlerFunc {
	handler := h.registry.resolve(rule)
	if handler == nil {
		if rule.OperationID != "" {
			log.Warnf("no handler registered for operation %s, serving stub", rule.OperationID)
		}
		handler = notImplemented(rule)
	}
	if len(rule.ParamTypes) == 0 {
		return handler
	}
	return func(c *gin.Context) {
		for name, paramType := range rule.ParamTypes {
			if !paramMatches(c.Param(name), paramType) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
					"error": fmt.Sprintf("no route for %s", c.Request.URL.Path),
				})
				return
			}
		}
		handler(c)
	}
}

func notImplemented(rule domain.RouteRule) gin.HandlerFunc {
	operation := rule.OperationID
	if operation == "" {
		operation = rule.Method + " " + rule.Path
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": fmt.Sprintf("operation %s is not implemented", operation),
		})
	}
}

// ginPath converts a `{name}` path template to gin's `:name` form.
func ginPath(path string) string {
	return strings.NewReplacer("{", ":", "}", "").Replace(path)
}

// paramMatches enforces the declared type of a path parameter. The original
// router expressed these as typed URL converters, which never match on the
// wrong type; a mismatch is therefore a missing route, not a bad request.
func paramMatches(value, paramType string) bool {
	switch paramType {
	case "integer":
		_, err := strconv.ParseInt(value, 10, 64)
		return err == nil
	case "number":
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	case "boolean":
		return value == "true" || value == "false"
	default:
		return true
	}
}
