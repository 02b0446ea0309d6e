package handler

import (
	"net/http"

	"github.com/briefing/backend/internal/interfaces/http/router"
)

// SummaryDocumentRoutes creates the route group serving the document itself
func SummaryDocumentRoutes(handler *SummaryHandler) *router.DomainGroup {
	group := router.NewDomainGroup("executive-summary", "/executive-summary")
	group.Handle(http.MethodGet, "", "Executive summary document (screen and print)", handler.GetPage)
	return group
}

// SummaryAssetRoutes creates the route group serving the assets under the
// prefix the rendered page references
func SummaryAssetRoutes(handler *SummaryHandler) *router.DomainGroup {
	group := router.NewDomainGroup("summary-assets", handler.AssetPrefix())
	group.Handle(http.MethodGet, "/*filepath", "Document assets", handler.GetAsset)
	return group
}

// SummaryAPIRoutes creates the route group for outline, export and print endpoints
func SummaryAPIRoutes(handler *SummaryHandler) *router.DomainGroup {
	group := router.NewDomainGroup("summary", "/summary")
	group.Handle(http.MethodGet, "/outline", "Visual outline per medium", handler.GetOutline)
	group.Handle(http.MethodGet, "/export.pdf", "PDF export through the headless host", handler.ExportPDF)
	group.Handle(http.MethodPost, "/print", "Fire the server-side print trigger", handler.Print)
	group.Handle(http.MethodGet, "/exports", "Stored PDF exports", handler.ListExports)
	group.Handle(http.MethodGet, "/exports/:name", "Download a stored PDF export", handler.DownloadExport)
	return group
}

// SystemRoutes creates the route group for system endpoints
func SystemRoutes(handler *SystemHandler) *router.DomainGroup {
	group := router.NewDomainGroup("system", "/system")
	group.Handle(http.MethodGet, "/info", "Version, uptime and capabilities", handler.GetSystemInfo)
	group.Handle(http.MethodGet, "/ping", "Liveness probe", handler.Ping)
	return group
}
