package dto

import "github.com/JoaoVF25/dashboard/internal/domain/models"

// UploadResponse is returned by POST /api/v1/portfolio/upload after the
// resolver found a usable table in the uploaded file.
//
// ParseConfig echoes the winning (encoding, separator, skip-rows)
// combination so users can understand how their file was read; Skipped
// counts input rows dropped during normalization (missing or non-positive
// quantities).
type UploadResponse struct {
	Rows        []models.PortfolioRow `json:"rows"`
	ParseConfig string                `json:"parse_config" example:"encoding=utf-8 separator=';' skip_rows=0"`
	Skipped     int                   `json:"skipped" example:"1"`
}

// SaveVersionRequest is the body of POST /api/v1/portfolios/{name}/versions.
type SaveVersionRequest struct {
	Rows     []models.PortfolioRow `json:"rows" binding:"required"`
	Metadata map[string]string     `json:"metadata,omitempty"`
}

// SaveVersionResponse reports the version number assigned to a saved
// portfolio snapshot.
type SaveVersionResponse struct {
	Portfolio string `json:"portfolio" example:"IDIV"`
	Version   int    `json:"version" example:"3"`
}

// AnalysisRequest is the body of POST /api/v1/analysis. Rows usually come
// straight from an UploadResponse or a loaded portfolio version.
type AnalysisRequest struct {
	Rows []models.PortfolioRow `json:"rows" binding:"required"`
}
