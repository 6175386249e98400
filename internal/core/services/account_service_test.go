package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/nyumbani/property_ledger/internal/apperrors"
	"github.com/nyumbani/property_ledger/internal/core/domain"
	portsrepo "github.com/nyumbani/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/nyumbani/property_ledger/internal/core/ports/services"
	"github.com/nyumbani/property_ledger/internal/core/services"
	"github.com/nyumbani/property_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TenantRepository ---
type MockTenantRepository struct {
	mock.Mock
}

var _ portsrepo.TenantRepositoryFacade = (*MockTenantRepository)(nil)

func (m *MockTenantRepository) FindTenantByID(ctx context.Context, tenantID domain.TenantID) (*domain.Tenant, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) ListTenants(ctx context.Context, limit int, offset int) ([]domain.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) SaveTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdateTenant(ctx context.Context, tenant domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockTenantRepo   *MockTenantRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.AccountSvcFacade
	tenantID         domain.TenantID
	userID           string
	activeTenant     domain.Tenant
	kesCurrency      domain.Currency
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTenantRepo = new(MockTenantRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockTenantRepo, suite.mockCurrencyRepo)

	suite.tenantID = domain.NewTenantID()
	suite.userID = uuid.NewString()
	suite.activeTenant = domain.Tenant{
		TenantID: suite.tenantID,
		Name:     "Nyumbani Estates",
		Status:   domain.TenantActive,
	}
	suite.kesCurrency = domain.Currency{
		CurrencyCode: "KES",
		Symbol:       "KSh",
		Name:         "Kenyan Shilling",
		Precision:    2,
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Unit 4B - Tenant Liability",
		AccountType:  domain.CustomerLiability,
		CurrencyCode: "KES",
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&suite.activeTenant, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "KES").Return(&suite.kesCurrency, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.tenantID, account.TenantID)
	suite.Equal(domain.AccountActive, account.Status)
	suite.Equal(int64(0), account.BalanceMinor)
	suite.Equal(int64(0), account.EntryCount)
	suite.Equal(suite.userID, account.CreatedBy)

	suite.mockTenantRepo.AssertExpectations(suite.T())
	suite.mockCurrencyRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_BadType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Bad",
		AccountType:  domain.AccountType("SAVINGS"),
		CurrencyCode: "KES",
	}

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrBadAccountType)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTenantRepo.AssertNotCalled(suite.T(), "FindTenantByID", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DisabledTenant() {
	ctx := context.Background()
	disabled := suite.activeTenant
	disabled.Status = domain.TenantDisabled
	req := dto.CreateAccountRequest{
		Name:         "Unit 2A",
		AccountType:  domain.OwnerOperating,
		CurrencyCode: "KES",
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&disabled, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTenantNotActive)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCurrency() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Unit 2A",
		AccountType:  domain.OwnerOperating,
		CurrencyCode: "XXX",
	}

	suite.mockTenantRepo.On("FindTenantByID", ctx, suite.tenantID).Return(&suite.activeTenant, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.tenantID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnknownCurrency)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestFreezeAccount_Success() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:    domain.NewAccountID(),
		TenantID:     suite.tenantID,
		AccountType:  domain.CustomerLiability,
		Status:       domain.AccountActive,
		CurrencyCode: "KES",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountStatus", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	frozen, err := suite.service.FreezeAccount(ctx, suite.tenantID, account.AccountID, "chargeback dispute", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountFrozen, frozen.Status)
	suite.Equal("chargeback dispute", frozen.FrozenReason)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestFreezeAccount_Closed() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   domain.NewAccountID(),
		TenantID:    suite.tenantID,
		AccountType: domain.CustomerLiability,
		Status:      domain.AccountClosed,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.FreezeAccount(ctx, suite.tenantID, account.AccountID, "too late", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUnfreezeAccount_NotFrozen() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   domain.NewAccountID(),
		TenantID:    suite.tenantID,
		AccountType: domain.CustomerLiability,
		Status:      domain.AccountActive,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.UnfreezeAccount(ctx, suite.tenantID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_NonzeroBalance() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:    domain.NewAccountID(),
		TenantID:     suite.tenantID,
		AccountType:  domain.OwnerOperating,
		Status:       domain.AccountActive,
		CurrencyCode: "KES",
		BalanceMinor: 150,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()

	_, err := suite.service.CloseAccount(ctx, suite.tenantID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStateConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCloseAccount_Success() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:    domain.NewAccountID(),
		TenantID:     suite.tenantID,
		AccountType:  domain.OwnerOperating,
		Status:       domain.AccountActive,
		CurrencyCode: "KES",
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.tenantID, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountStatus", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	closed, err := suite.service.CloseAccount(ctx, suite.tenantID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountClosed, closed.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	ctx := context.Background()
	repoErr := assert.AnError

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.tenantID, 20, 0).Return(nil, repoErr).Once()

	_, err := suite.service.ListAccounts(ctx, suite.tenantID, 20, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
