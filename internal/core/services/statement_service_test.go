package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portsrepo "github.com/nyumbani/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/nyumbani/property_ledger/internal/core/ports/services"
	"github.com/nyumbani/property_ledger/internal/core/services"
	"github.com/nyumbani/property_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepositoryFacade = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) FindStatementByID(ctx context.Context, tenantID domain.TenantID, statementID domain.StatementID) (*domain.Statement, error) {
	args := m.Called(ctx, tenantID, statementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) ListStatementsByAccount(ctx context.Context, tenantID domain.TenantID, accountID domain.AccountID, limit int, nextToken *string) ([]domain.Statement, *string, error) {
	args := m.Called(ctx, tenantID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Statement), returnedNextToken, args.Error(2)
}

func (m *MockStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockStatementRepository) UpdateStatementStatus(ctx context.Context, statement domain.Statement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

// --- Test Suite Setup ---
type StatementServiceTestSuite struct {
	suite.Suite
	mockStatementRepo *MockStatementRepository
	mockLedgerRepo    *MockLedgerRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.StatementSvcFacade
	tenantID          domain.TenantID
	userID            string
	liabilityAccount  domain.Account
	operatingAccount  domain.Account
	periodStart       time.Time
	periodEnd         time.Time
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockStatementRepo = new(MockStatementRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewStatementService(suite.mockStatementRepo, suite.mockLedgerRepo, suite.mockAccountRepo)

	suite.tenantID = domain.NewTenantID()
	suite.userID = uuid.NewString()
	suite.liabilityAccount = domain.Account{
		AccountID:    domain.NewAccountID(),
		TenantID:     suite.tenantID,
		AccountType:  domain.CustomerLiability,
		Status:       domain.AccountActive,
		CurrencyCode: "KES",
	}
	suite.operatingAccount = domain.Account{
		AccountID:    domain.NewAccountID(),
		TenantID:     suite.tenantID,
		AccountType:  domain.OwnerOperating,
		Status:       domain.AccountActive,
		CurrencyCode: "KES",
	}
	suite.periodStart = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.periodEnd = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *StatementServiceTestSuite) generateRequest(accountID domain.AccountID) dto.GenerateStatementRequest {
	return dto.GenerateStatementRequest{
		AccountID:     accountID.String(),
		StatementType: string(domain.CustomerStatement),
		PeriodStart:   suite.periodStart,
		PeriodEnd:     suite.periodEnd,
	}
}

// --- Test Cases ---

func (suite *StatementServiceTestSuite) TestGenerateStatement_Success() {
	ctx := context.Background()
	account := suite.liabilityAccount
	req := suite.generateRequest(account.AccountID)

	entries := []domain.LedgerEntry{
		{
			EntryType:     domain.EntryRentCharge,
			Direction:     domain.Debit,
			Amount:        domain.Money{AmountMinor: 20000, Currency: "KES"},
			EffectiveDate: suite.periodStart.AddDate(0, 0, 4),
			Description:   "Rent charge",
		},
		{
			EntryType:     domain.EntryRentPayment,
			Direction:     domain.Credit,
			Amount:        domain.Money{AmountMinor: 5000, Currency: "KES"},
			EffectiveDate: suite.periodStart.AddDate(0, 0, 10),
			Description:   "Rent payment applied",
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()
	// Prior history left the account at 1,000.00 on its debit-normal side.
	suite.mockLedgerRepo.On("SumEntriesBefore", ctx, suite.tenantID, account.AccountID, suite.periodStart).Return(int64(100000), int64(0), nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccountInPeriod", ctx, suite.tenantID, account.AccountID, suite.periodStart, suite.periodEnd).Return(entries, nil).Once()

	var saved domain.Statement
	suite.mockStatementRepo.On("SaveStatement", ctx, mock.AnythingOfType("domain.Statement")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Statement)
		}).
		Return(nil).Once()

	statement, err := suite.service.GenerateStatement(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)
	suite.Equal(domain.StatementGenerated, statement.Status)
	suite.Equal(int64(100000), statement.OpeningMinor)
	suite.Equal(int64(20000), statement.TotalDebits)
	suite.Equal(int64(5000), statement.TotalCredits)
	suite.Equal(int64(15000), statement.NetChange)
	suite.Equal(int64(115000), statement.ClosingMinor)
	suite.Require().Len(statement.Lines, 2)
	suite.Equal(int64(120000), statement.Lines[0].BalanceMinor)
	suite.Equal(int64(115000), statement.Lines[1].BalanceMinor)
	suite.Len(statement.Summaries, 2)
	suite.NotNil(statement.GeneratedAt)

	// Persisted already in GENERATED state.
	suite.Equal(domain.StatementGenerated, saved.Status)
	suite.mockStatementRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGenerateStatement_NoPriorHistory() {
	ctx := context.Background()
	account := suite.liabilityAccount
	req := suite.generateRequest(account.AccountID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()
	suite.mockLedgerRepo.On("SumEntriesBefore", ctx, suite.tenantID, account.AccountID, suite.periodStart).Return(int64(0), int64(0), nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccountInPeriod", ctx, suite.tenantID, account.AccountID, suite.periodStart, suite.periodEnd).Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockStatementRepo.On("SaveStatement", ctx, mock.Anything).Return(nil).Once()

	statement, err := suite.service.GenerateStatement(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(0), statement.OpeningMinor)
	suite.Equal(int64(0), statement.ClosingMinor)
	suite.Empty(statement.Lines)
}

func (suite *StatementServiceTestSuite) TestGenerateStatement_CreditNormalOpeningNegative() {
	ctx := context.Background()
	account := suite.operatingAccount
	req := suite.generateRequest(account.AccountID)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()
	// The owner is owed 300.00: credits exceed debits, so the statement's
	// debit-positive opening comes out negative.
	suite.mockLedgerRepo.On("SumEntriesBefore", ctx, suite.tenantID, account.AccountID, suite.periodStart).Return(int64(0), int64(30000), nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccountInPeriod", ctx, suite.tenantID, account.AccountID, suite.periodStart, suite.periodEnd).Return([]domain.LedgerEntry{}, nil).Once()
	suite.mockStatementRepo.On("SaveStatement", ctx, mock.Anything).Return(nil).Once()

	statement, err := suite.service.GenerateStatement(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(-30000), statement.OpeningMinor)
	suite.Equal(int64(-30000), statement.ClosingMinor)
}

func (suite *StatementServiceTestSuite) TestGenerateStatement_BackdatedReversalStaysInItsPeriod() {
	ctx := context.Background()
	account := suite.liabilityAccount
	req := suite.generateRequest(account.AccountID)

	// A January charge of 100.00 was reversed after February activity had
	// already posted, with the reversal back-dated to the original January
	// effective date. The two cancel out before the period starts, so the
	// opening must be zero even though the reversal's running balance
	// reflected the later activity.
	inPeriod := []domain.LedgerEntry{
		{
			EntryType:     domain.EntryRentCharge,
			Direction:     domain.Debit,
			Amount:        domain.Money{AmountMinor: 20000, Currency: "KES"},
			EffectiveDate: suite.periodStart.AddDate(0, 0, 9),
			Description:   "Rent charge",
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()
	suite.mockLedgerRepo.On("SumEntriesBefore", ctx, suite.tenantID, account.AccountID, suite.periodStart).Return(int64(10000), int64(10000), nil).Once()
	suite.mockLedgerRepo.On("ListEntriesByAccountInPeriod", ctx, suite.tenantID, account.AccountID, suite.periodStart, suite.periodEnd).Return(inPeriod, nil).Once()
	suite.mockStatementRepo.On("SaveStatement", ctx, mock.Anything).Return(nil).Once()

	statement, err := suite.service.GenerateStatement(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(0), statement.OpeningMinor)
	suite.Equal(int64(20000), statement.ClosingMinor)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGenerateStatement_BadPeriod() {
	ctx := context.Background()
	req := dto.GenerateStatementRequest{
		AccountID:     suite.liabilityAccount.AccountID.String(),
		StatementType: string(domain.AccountStatement),
		PeriodStart:   suite.periodEnd,
		PeriodEnd:     suite.periodStart,
	}

	_, err := suite.service.GenerateStatement(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StatementServiceTestSuite) TestMarkStatementSent_Success() {
	ctx := context.Background()
	statementID := domain.NewStatementID()
	statement := domain.Statement{
		StatementID: statementID,
		TenantID:    suite.tenantID,
		Status:      domain.StatementGenerated,
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.tenantID, statementID).Return(&statement, nil).Once()
	suite.mockStatementRepo.On("UpdateStatementStatus", ctx, mock.AnythingOfType("domain.Statement")).Return(nil).Once()

	sent, err := suite.service.MarkStatementSent(ctx, suite.tenantID, statementID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatementSent, sent.Status)
	suite.NotNil(sent.SentAt)
	suite.mockStatementRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestMarkStatementSent_WrongState() {
	ctx := context.Background()
	statementID := domain.NewStatementID()
	statement := domain.Statement{
		StatementID: statementID,
		TenantID:    suite.tenantID,
		Status:      domain.StatementViewed,
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.tenantID, statementID).Return(&statement, nil).Once()

	_, err := suite.service.MarkStatementSent(ctx, suite.tenantID, statementID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockStatementRepo.AssertNotCalled(suite.T(), "UpdateStatementStatus", mock.Anything, mock.Anything)
}

func (suite *StatementServiceTestSuite) TestMarkStatementViewed_Idempotent() {
	ctx := context.Background()
	statementID := domain.NewStatementID()
	viewedAt := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	statement := domain.Statement{
		StatementID: statementID,
		TenantID:    suite.tenantID,
		Status:      domain.StatementViewed,
		ViewedAt:    &viewedAt,
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.tenantID, statementID).Return(&statement, nil).Once()
	suite.mockStatementRepo.On("UpdateStatementStatus", ctx, mock.AnythingOfType("domain.Statement")).Return(nil).Once()

	viewed, err := suite.service.MarkStatementViewed(ctx, suite.tenantID, statementID, suite.userID)

	// Repeat views keep the first viewed timestamp.
	suite.Require().NoError(err)
	suite.Equal(domain.StatementViewed, viewed.Status)
	suite.Equal(&viewedAt, viewed.ViewedAt)
}

func (suite *StatementServiceTestSuite) TestMarkStatementViewed_Draft() {
	ctx := context.Background()
	statementID := domain.NewStatementID()
	statement := domain.Statement{
		StatementID: statementID,
		TenantID:    suite.tenantID,
		Status:      domain.StatementDraft,
	}

	suite.mockStatementRepo.On("FindStatementByID", ctx, suite.tenantID, statementID).Return(&statement, nil).Once()

	_, err := suite.service.MarkStatementViewed(ctx, suite.tenantID, statementID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

// --- Run Test Suite ---
func TestStatementService(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
