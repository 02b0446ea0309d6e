package handler

// ExportRequest carries the query options of a PDF export
type ExportRequest struct {
	Disposition string `form:"disposition" binding:"omitempty,oneof=inline attachment"`
	Store       bool   `form:"store"`
}

// ExportListResponse lists stored PDF exports
type ExportListResponse struct {
	Exports []string `json:"exports"`
	Count   int      `json:"count"`
}
