package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/cspark/internal/domain/bundle"
	"github.com/yanqian/cspark/internal/domain/extractor"
	"github.com/yanqian/cspark/internal/domain/generator"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	extractorSvc extractor.Service
	generatorSvc generator.Service
	bundleSvc    bundle.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(extractorSvc extractor.Service, generatorSvc generator.Service, bundleSvc bundle.Service, logger *slog.Logger) *Handler {
	return &Handler{
		extractorSvc: extractorSvc,
		generatorSvc: generatorSvc,
		bundleSvc:    bundleSvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// Extract fetches a page and returns its readable text.
func (h *Handler) Extract(c *gin.Context) {
	var req extractor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, extractFailure(NewHTTPError(http.StatusBadRequest, "invalid_request", "request body must be JSON with a url field", err)))
		return
	}

	res, err := h.extractorSvc.Extract(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, extractFailure(fromDomainError(err)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": res})
}

// ExtractStatus is the static health probe of the extract endpoint.
func (h *Handler) ExtractStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "extract",
		"usage":   "POST /api/extract with {\"url\": \"https://...\"}",
	})
}

// Generate runs a single generation task.
func (h *Handler) Generate(c *gin.Context) {
	var req generator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.generatorSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GenerateAll runs every task for one input and returns the successful ones.
func (h *Handler) GenerateAll(c *gin.Context) {
	var req bundle.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.bundleSvc.GenerateAll(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TrendsStatus describes a trends endpoint that is not implemented yet.
func (h *Handler) TrendsStatus(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"endpoint":    "trends/" + name,
			"implemented": false,
		})
	}
}

// TrendsEcho returns the posted body without processing it.
func (h *Handler) TrendsEcho(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "could not read request body", err))
			return
		}
		var input any
		if len(strings.TrimSpace(string(raw))) > 0 {
			if err := json.Unmarshal(raw, &input); err != nil {
				abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "request body must be valid JSON", err))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"endpoint":    "trends/" + name,
			"input":       input,
			"implemented": false,
		})
	}
}

func extractFailure(err *HTTPError) *HTTPError {
	err.Extra = gin.H{"success": false}
	return err
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
