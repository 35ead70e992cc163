package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
	"github.com/JoaoVF25/dashboard/internal/domain/dto"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
	"github.com/JoaoVF25/dashboard/internal/middleware"
	"github.com/JoaoVF25/dashboard/internal/service"
)

// maxUploadBytes bounds uploaded portfolio files. Brokerage exports are a
// few kilobytes; 10 MiB is already generous.
const maxUploadBytes = 10 << 20

// Handler provides the HTTP handlers for the dashboard API.
//
// Responsibilities:
//   - Validate incoming request bodies, files, and parameters
//   - Delegate to the analysis and portfolio services
//   - Translate service results and sentinel errors into JSON responses
type Handler struct {
	analysis   service.AnalysisService
	portfolios service.PortfolioService
}

// NewHandler constructs a Handler over the given services.
func NewHandler(analysis service.AnalysisService, portfolios service.PortfolioService) *Handler {
	return &Handler{analysis: analysis, portfolios: portfolios}
}

// UploadPortfolio godoc
// @Summary      Upload a portfolio file
// @Description  Parses a CSV or Excel portfolio export and returns the normalized rows
// @Tags         portfolio
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Portfolio file (.csv, .xlsx, .xls)"
// @Success      200   {object}  dto.UploadResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse   "Bad Request"
// @Failure      422   {object}  dto.ErrorResponse   "Unreadable file"
// @Router       /api/v1/portfolio/upload [post]
func (h *Handler) UploadPortfolio(c *gin.Context) {
	// ─── Read the uploaded file ───────────────────────────────
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("file is required", err))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("file too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("failed to open upload", err))
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("failed to read upload", err))
		return
	}

	// ─── Resolve the table ────────────────────────────────────
	result, err := h.analysis.ResolveUpload(fileHeader.Filename, content)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnsupportedFormat):
			middleware.AbortWithError(c, http.StatusBadRequest, "unsupported file format", err)
		case errors.Is(err, apperr.ErrNoReadableTable):
			middleware.AbortWithError(c, http.StatusUnprocessableEntity, "no readable table found", err)
		default:
			middleware.AbortWithError(c, http.StatusInternalServerError, "failed to parse file", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Rows:        result.Rows,
		ParseConfig: result.Config.String(),
		Skipped:     result.Skipped,
	})
}

// Analyze godoc
// @Summary      Run liquidity analysis
// @Description  Computes volume medians, weights, and days-to-liquidate for the given rows
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AnalysisRequest  true  "Portfolio rows"
// @Success      200      {object}  models.AnalysisReport  "Success"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500      {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/analysis [post]
func (h *Handler) Analyze(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}
	if len(req.Rows) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("rows must not be empty", nil))
		return
	}

	report, err := h.analysis.Analyze(c.Request.Context(), req.Rows)
	if err != nil {
		// Only cancellation reaches here; provider trouble lives on the report.
		middleware.AbortWithError(c, http.StatusInternalServerError, "analysis aborted", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListPortfolios godoc
// @Summary      List saved portfolios
// @Tags         portfolio
// @Produce      json
// @Success      200  {array}   string
// @Failure      503  {object}  dto.ErrorResponse  "Store unavailable"
// @Router       /api/v1/portfolios [get]
func (h *Handler) ListPortfolios(c *gin.Context) {
	names, err := h.portfolios.ListPortfolios(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, names)
}

// SaveVersion godoc
// @Summary      Save a new portfolio version
// @Description  Appends the given rows as the next version of the named portfolio
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        name     path      string                  true  "Portfolio name"
// @Param        request  body      dto.SaveVersionRequest  true  "Rows and optional metadata"
// @Success      201      {object}  dto.SaveVersionResponse  "Created"
// @Failure      400      {object}  dto.ErrorResponse        "Bad Request"
// @Failure      503      {object}  dto.ErrorResponse        "Store unavailable"
// @Router       /api/v1/portfolios/{name}/versions [post]
func (h *Handler) SaveVersion(c *gin.Context) {
	name := portfolioName(c)
	if name == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("portfolio name is required", nil))
		return
	}

	var req dto.SaveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body", err))
		return
	}
	if len(req.Rows) == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("rows must not be empty", nil))
		return
	}

	version, err := h.portfolios.SaveVersion(c.Request.Context(), name, req.Rows, req.Metadata)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.SaveVersionResponse{Portfolio: name, Version: version})
}

// GetPortfolio godoc
// @Summary      Load a portfolio version
// @Description  Returns the rows of the requested version, or the latest when unspecified
// @Tags         portfolio
// @Produce      json
// @Param        name     path      string  true   "Portfolio name"
// @Param        version  query     int     false  "Version number (latest when omitted)"
// @Success      200      {array}   models.PortfolioRow
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse  "Unknown portfolio or version"
// @Router       /api/v1/portfolios/{name} [get]
func (h *Handler) GetPortfolio(c *gin.Context) {
	name := portfolioName(c)

	version := 0
	if s := c.Query("version"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("version must be a positive integer", err))
			return
		}
		version = parsed
	}

	rows, err := h.portfolios.Load(c.Request.Context(), name, version)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// History godoc
// @Summary      Portfolio version history
// @Description  Summarizes every saved version of the portfolio, newest first
// @Tags         portfolio
// @Produce      json
// @Param        name  path      string  true  "Portfolio name"
// @Success      200   {array}   models.VersionSummary
// @Failure      503   {object}  dto.ErrorResponse  "Store unavailable"
// @Router       /api/v1/portfolios/{name}/history [get]
func (h *Handler) History(c *gin.Context) {
	summaries, err := h.portfolios.History(c.Request.Context(), portfolioName(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if summaries == nil {
		summaries = []models.VersionSummary{}
	}
	c.JSON(http.StatusOK, summaries)
}

// Compare godoc
// @Summary      Compare two portfolio versions
// @Description  Returns added and removed symbols plus quantity changes between two versions
// @Tags         portfolio
// @Produce      json
// @Param        name  path      string  true  "Portfolio name"
// @Param        from  query     int     true  "Base version"
// @Param        to    query     int     true  "Target version"
// @Success      200   {object}  models.PortfolioDiff
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404   {object}  dto.ErrorResponse  "Unknown version"
// @Router       /api/v1/portfolios/{name}/compare [get]
func (h *Handler) Compare(c *gin.Context) {
	from, err := strconv.Atoi(c.Query("from"))
	if err != nil || from < 1 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("from must be a positive integer", err))
		return
	}
	to, err := strconv.Atoi(c.Query("to"))
	if err != nil || to < 1 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("to must be a positive integer", err))
		return
	}

	diff, err := h.portfolios.Compare(c.Request.Context(), portfolioName(c), from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, diff)
}

// DeletePortfolio godoc
// @Summary      Delete a portfolio
// @Description  Removes the portfolio and all its saved versions
// @Tags         portfolio
// @Produce      json
// @Param        name  path  string  true  "Portfolio name"
// @Success      204   "No Content"
// @Failure      503   {object}  dto.ErrorResponse  "Store unavailable"
// @Router       /api/v1/portfolios/{name} [delete]
func (h *Handler) DeletePortfolio(c *gin.Context) {
	if err := h.portfolios.Delete(c.Request.Context(), portfolioName(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func portfolioName(c *gin.Context) string {
	return strings.TrimSpace(c.Param("name"))
}
