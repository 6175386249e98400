package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portssvc "github.com/nyumbani/property_ledger/internal/core/ports/services"
	"github.com/nyumbani/property_ledger/internal/dto"
	"github.com/nyumbani/property_ledger/internal/middleware"
	"github.com/nyumbani/property_ledger/internal/utils/accounting"
)

// journalHandler handles HTTP requests that post to or read the ledger.
type journalHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(ls portssvc.LedgerSvcFacade) *journalHandler {
	return &journalHandler{ledgerService: ls}
}

// registerJournalRoutes registers the posting and journal read routes.
// Template routes build their line sets through the standard templates and
// then run the same posting path as raw journals.
func registerJournalRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newJournalHandler(ledgerService)

	journals := rg.Group("/tenants/:tenantID/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/reverse", h.reverseJournal)

		journals.POST("/rent-charges", h.postRentCharge)
		journals.POST("/rent-payments", h.postRentPayment)
		journals.POST("/deposit-payments", h.postDepositPayment)
		journals.POST("/deposit-refunds", h.postDepositRefund)
		journals.POST("/owner-disbursements", h.postOwnerDisbursement)
		journals.POST("/owner-contributions", h.postOwnerContribution)
		journals.POST("/late-fees", h.postLateFee)
	}
}

// postLines runs validated journal lines through the posting protocol and
// writes the standard response.
func (h *journalHandler) postLines(c *gin.Context, tenantID domain.TenantID, lines []domain.JournalLine, effectiveDate time.Time, userID string) {
	entries, err := h.ledgerService.PostJournal(c.Request.Context(), tenantID, lines, effectiveDate, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entries))
}

// postJournal godoc
// @Summary Post a journal
// @Description Posts a balanced set of journal lines atomically to the ledger
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   journal body dto.CreateJournalRequest true "Journal lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Unbalanced journal or invalid input"
// @Failure 409 {object} map[string]string "Account cannot transact"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals [post]
func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	lines, err := req.ToJournalLines()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.postLines(c, tenantID, lines, req.EffectiveDate, userID)
}

// getJournal godoc
// @Summary Get a journal's entries
// @Tags journals
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	journalID, err := domain.ParseJournalID(c.Param("journalID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID format"})
		return
	}

	entries, err := h.ledgerService.GetJournal(c.Request.Context(), tenantID, journalID)
	if err != nil {
		respondServiceError(c, err, "Failed to get journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entries))
}

// reverseJournal godoc
// @Summary Reverse a journal
// @Description Posts a new journal flipping every line of the original; history stays append-only
// @Tags journals
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   journalID path string true "Journal ID"
// @Success 201 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}
	journalID, err := domain.ParseJournalID(c.Param("journalID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid journal ID format"})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.ReverseJournal(c.Request.Context(), tenantID, journalID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to reverse journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entries))
}

// postRentCharge godoc
// @Summary Post a rent charge
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.RentChargeRequest true "Rent charge details"
// @Success 201 {object} dto.JournalResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals/rent-charges [post]
func (h *journalHandler) postRentCharge(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.RentChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	amount, err := domain.FromMinorUnits(req.AmountMinorUnits, req.CurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, err := accounting.RentCharge(accounting.RentChargeAccounts{
		CustomerLiability: domain.AccountID(req.CustomerLiabilityAccountID),
		OwnerOperating:    domain.AccountID(req.OwnerOperatingAccountID),
	}, amount, req.Reference)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.postLines(c, tenantID, lines, req.EffectiveDate, userID)
}

// postRentPayment godoc
// @Summary Post a rent payment with the platform fee split
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.RentPaymentRequest true "Rent payment details"
// @Success 201 {object} dto.JournalResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals/rent-payments [post]
func (h *journalHandler) postRentPayment(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.RentPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	gross, err := domain.FromMinorUnits(req.GrossMinorUnits, req.CurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fee, err := domain.FromMinorUnits(req.FeeMinorUnits, req.CurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, err := accounting.RentPayment(accounting.RentPaymentAccounts{
		CustomerLiability: domain.AccountID(req.CustomerLiabilityAccountID),
		PlatformHolding:   domain.AccountID(req.PlatformHoldingAccountID),
		PlatformRevenue:   domain.AccountID(req.PlatformRevenueAccountID),
	}, gross, fee, req.Reference)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.postLines(c, tenantID, lines, req.EffectiveDate, userID)
}

func (h *journalHandler) postDepositPayment(c *gin.Context) {
	h.postDeposit(c, accounting.DepositPayment)
}

func (h *journalHandler) postDepositRefund(c *gin.Context) {
	h.postDeposit(c, accounting.DepositRefund)
}

// postDeposit handles the shared shape of deposit payments and refunds.
func (h *journalHandler) postDeposit(c *gin.Context, template func(accounting.DepositAccounts, domain.Money, string) ([]domain.JournalLine, error)) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	amount, err := domain.FromMinorUnits(req.AmountMinorUnits, req.CurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, err := template(accounting.DepositAccounts{
		CustomerDeposit: domain.AccountID(req.CustomerDepositAccountID),
		PlatformHolding: domain.AccountID(req.PlatformHoldingAccountID),
	}, amount, req.Reference)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.postLines(c, tenantID, lines, req.EffectiveDate, userID)
}

func (h *journalHandler) postOwnerDisbursement(c *gin.Context) {
	h.postOwnerTransfer(c, accounting.OwnerDisbursement)
}

func (h *journalHandler) postOwnerContribution(c *gin.Context) {
	h.postOwnerTransfer(c, accounting.OwnerContribution)
}

// postOwnerTransfer handles the shared shape of owner disbursements and
// contributions.
func (h *journalHandler) postOwnerTransfer(c *gin.Context, template func(accounting.OwnerAccounts, domain.Money, string) ([]domain.JournalLine, error)) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.OwnerTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	amount, err := domain.FromMinorUnits(req.AmountMinorUnits, req.CurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, err := template(accounting.OwnerAccounts{
		OwnerOperating:  domain.AccountID(req.OwnerOperatingAccountID),
		PlatformHolding: domain.AccountID(req.PlatformHoldingAccountID),
	}, amount, req.Reference)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.postLines(c, tenantID, lines, req.EffectiveDate, userID)
}

// postLateFee godoc
// @Summary Post a late fee
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   request body dto.LateFeeRequest true "Late fee details"
// @Success 201 {object} dto.JournalResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals/late-fees [post]
func (h *journalHandler) postLateFee(c *gin.Context) {
	tenantID, ok := tenantIDFromPath(c)
	if !ok {
		return
	}

	var req dto.LateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	amount, err := domain.FromMinorUnits(req.AmountMinorUnits, req.CurrencyCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lines, err := accounting.LateFee(accounting.RentChargeAccounts{
		CustomerLiability: domain.AccountID(req.CustomerLiabilityAccountID),
		OwnerOperating:    domain.AccountID(req.OwnerOperatingAccountID),
	}, amount, req.Reference)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.postLines(c, tenantID, lines, req.EffectiveDate, userID)
}
