package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// CapabilityReporter reports which optional document capabilities are enabled
type CapabilityReporter interface {
	ExportAvailable() bool
	PrintAvailable() bool
}

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	caps      CapabilityReporter
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. caps may be nil.
func NewSystemHandler(name, version string, caps CapabilityReporter) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		caps:      caps,
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	GoVersion    string             `json:"go_version"`
	Uptime       string             `json:"uptime"`
	Capabilities CapabilityResponse `json:"capabilities"`
}

// CapabilityResponse lists the optional capabilities of this instance
type CapabilityResponse struct {
	ScreenView   bool `json:"screen_view"`
	BrowserPrint bool `json:"browser_print"`
	PDFExport    bool `json:"pdf_export"`
	ServerPrint  bool `json:"server_print"`
}

func (h *SystemHandler) capabilities() CapabilityResponse {
	caps := CapabilityResponse{ScreenView: true, BrowserPrint: true}
	if h.caps != nil {
		caps.PDFExport = h.caps.ExportAvailable()
		caps.ServerPrint = h.caps.PrintAvailable()
	}
	return caps
}

// GetSystemInfo returns version, uptime and enabled capabilities
// GET /api/v1/system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:         h.name,
		Version:      h.version,
		GoVersion:    runtime.Version(),
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Capabilities: h.capabilities(),
	})
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping is a liveness probe
// GET /api/v1/system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Health reports readiness without the response envelope
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
