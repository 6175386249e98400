package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portssvc "github.com/nyumbani/property_ledger/internal/core/ports/services"
	"github.com/nyumbani/property_ledger/internal/dto"
	"github.com/nyumbani/property_ledger/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{accountService: as, ledgerService: ls}
}

// registerAccountRoutes registers routes related to accounts under a tenant.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := newAccountHandler(accountService, ledgerService)

	accounts := rg.Group("/tenants/:tenantID/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.GET("/:accountID/entries", h.listAccountEntries)
		accounts.POST("/:accountID/freeze", h.freezeAccount)
		accounts.POST("/:accountID/unfreeze", h.unfreezeAccount)
		accounts.POST("/:accountID/close", h.closeAccount)
	}
}

func accountIDFromPath(c *gin.Context) (domain.AccountID, bool) {
	accountID, err := domain.ParseAccountID(c.Param("accountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID format"})
		return "", false
	}
	return accountID, true
}

// createAccount godoc
// @Summary Create a new account
// @Description Opens an account for a party/purpose/currency combination within a tenant
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	created, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(created))
}

// listAccounts godoc
// @Summary List a tenant's accounts
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	accountID, ok := accountIDFromPath(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, accountID)
	if err != nil {
		respondServiceError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccountEntries godoc
// @Summary List an account's ledger entries
// @Description Pages through an account's immutable posting history, newest first
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous response"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{accountID}/entries [get]
func (h *accountHandler) listAccountEntries(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	accountID, ok := accountIDFromPath(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.ledgerService.ListEntriesByAccount(c.Request.Context(), tenantID, accountID, params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list account entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: dto.ToEntryResponses(entries), NextToken: nextToken})
}

// freezeAccount godoc
// @Summary Freeze an account
// @Description Blocks all transactions on the account until it is unfrozen
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path string true "Account ID"
// @Param   request body dto.FreezeAccountRequest true "Freeze reason"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account is closed"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{accountID}/freeze [post]
func (h *accountHandler) freezeAccount(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	accountID, ok := accountIDFromPath(c)
	if !ok {
		return
	}

	var req dto.FreezeAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.FreezeAccount(c.Request.Context(), tenantID, accountID, req.Reason, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to freeze account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// unfreezeAccount godoc
// @Summary Unfreeze an account
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account is not frozen"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{accountID}/unfreeze [post]
func (h *accountHandler) unfreezeAccount(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	accountID, ok := accountIDFromPath(c)
	if !ok {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.UnfreezeAccount(c.Request.Context(), tenantID, accountID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to unfreeze account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// closeAccount godoc
// @Summary Close an account
// @Description Permanently closes a zero-balance account
// @Tags accounts
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account has a nonzero balance or is already closed"
// @Security BearerAuth
// @Router /tenants/{tenantID}/accounts/{accountID}/close [post]
func (h *accountHandler) closeAccount(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	accountID, ok := accountIDFromPath(c)
	if !ok {
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.CloseAccount(c.Request.Context(), tenantID, accountID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to close account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
