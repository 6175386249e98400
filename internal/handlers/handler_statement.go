package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portssvc "github.com/nyumbani/property_ledger/internal/core/ports/services"
	"github.com/nyumbani/property_ledger/internal/dto"
	"github.com/nyumbani/property_ledger/internal/middleware"
)

// statementHandler handles HTTP requests for statement operations.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
	currencyService  portssvc.CurrencyReaderSvc
}

// newStatementHandler creates a new statementHandler.
func newStatementHandler(ss portssvc.StatementSvcFacade, cs portssvc.CurrencyReaderSvc) *statementHandler {
	return &statementHandler{statementService: ss, currencyService: cs}
}

// registerStatementRoutes registers the statement routes.
func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade, currencyService portssvc.CurrencyReaderSvc) {
	h := newStatementHandler(statementService, currencyService)

	statements := rg.Group("/tenants/:tenantID/statements")
	{
		statements.POST("", h.generateStatement)
		statements.GET("", h.listStatements)
		statements.GET("/:statementID", h.getStatement)
		statements.POST("/:statementID/send", h.markStatementSent)
		statements.POST("/:statementID/view", h.markStatementViewed)
	}
}

// currencyPrecision looks up the minor-unit precision for display formatting.
// Statements are only generated for accounts in registered currencies, so a
// lookup miss falls back to two decimal places rather than failing the read.
func (h *statementHandler) currencyPrecision(ctx context.Context, currencyCode string) int {
	currency, err := h.currencyService.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Currency lookup failed, using default precision",
			slog.String("currencyCode", currencyCode), slog.String("error", err.Error()))
		return 2
	}
	return currency.Precision
}

// generateStatement godoc
// @Summary Generate a statement
// @Description Replays an account's entries over the period into a statement
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.GenerateStatementRequest true "Statement period and account"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid period or input"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/statements [post]
func (h *statementHandler) generateStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.GenerateStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	statement, err := h.statementService.GenerateStatement(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate statement")
		return
	}

	precision := h.currencyPrecision(c.Request.Context(), statement.CurrencyCode)
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement, precision))
}

// listStatements godoc
// @Summary List statements for an account
// @Tags statements
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID query string true "Account ID"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListStatementsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/statements [get]
func (h *statementHandler) listStatements(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var params dto.ListStatementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	accountID, err := domain.ParseAccountID(params.AccountID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID format"})
		return
	}

	statements, nextToken, err := h.statementService.ListStatementsByAccount(c.Request.Context(), tenantID, accountID, params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list statements")
		return
	}

	resp := dto.ListStatementsResponse{
		Statements: make([]dto.StatementResponse, len(statements)),
		NextToken:  nextToken,
	}
	for i := range statements {
		precision := h.currencyPrecision(c.Request.Context(), statements[i].CurrencyCode)
		resp.Statements[i] = dto.ToStatementResponse(&statements[i], precision)
	}
	c.JSON(http.StatusOK, resp)
}

// getStatement godoc
// @Summary Get a statement by ID
// @Tags statements
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 404 {object} map[string]string "Statement not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/statements/{statementID} [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	h.readStatement(c, func(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID, _ string) (*domain.Statement, error) {
		return h.statementService.GetStatementByID(ctx, tenantID, statementID)
	}, http.StatusOK)
}

// markStatementSent godoc
// @Summary Mark a statement as sent
// @Tags statements
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 409 {object} map[string]string "Statement not in a sendable state"
// @Security BearerAuth
// @Router /tenants/{tenantID}/statements/{statementID}/send [post]
func (h *statementHandler) markStatementSent(c *gin.Context) {
	h.readStatement(c, h.statementService.MarkStatementSent, http.StatusOK)
}

// markStatementViewed godoc
// @Summary Mark a statement as viewed
// @Description Records the first view; repeated views are idempotent
// @Tags statements
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   statementID path string true "Statement ID"
// @Success 200 {object} dto.StatementResponse
// @Failure 409 {object} map[string]string "Statement was never sent"
// @Security BearerAuth
// @Router /tenants/{tenantID}/statements/{statementID}/view [post]
func (h *statementHandler) markStatementViewed(c *gin.Context) {
	h.readStatement(c, h.statementService.MarkStatementViewed, http.StatusOK)
}

// readStatement handles the shared path of the single-statement endpoints:
// parse IDs, invoke the operation, format the response.
func (h *statementHandler) readStatement(c *gin.Context, op func(context.Context, domain.TenantID, domain.StatementID, string) (*domain.Statement, error), status int) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	statementID, err := domain.ParseStatementID(c.Param("statementID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid statement ID format"})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	statement, err := op(c.Request.Context(), tenantID, statementID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to process statement request")
		return
	}

	precision := h.currencyPrecision(c.Request.Context(), statement.CurrencyCode)
	c.JSON(status, dto.ToStatementResponse(statement, precision))
}
