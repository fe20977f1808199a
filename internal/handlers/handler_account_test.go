package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quillbooks/bookkeeping_app/internal/apperrors"
	"github.com/quillbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/quillbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/quillbooks/bookkeeping_app/internal/core/services"
	"github.com/quillbooks/bookkeeping_app/internal/dto"
	"github.com/quillbooks/bookkeeping_app/internal/handlers"
	"github.com/quillbooks/bookkeeping_app/internal/middleware"
	"github.com/quillbooks/bookkeeping_app/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ModifyAccount(ctx context.Context, accountID string, req dto.ModifyAccountRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByAlternativeNumber(ctx context.Context, alternativeAccountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, alternativeAccountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ExecuteCommand(ctx context.Context, accountID string, req dto.AccountCommandRequest, actor string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, actor string) error {
	args := m.Called(ctx, accountID, actor)
	return args.Error(0)
}

func (m *MockAccountService) ListAccountEntries(ctx context.Context, accountID string, dateRange domain.DateRange, limit int, nextToken *string) ([]domain.AccountEntry, *string, error) {
	args := m.Called(ctx, accountID, dateRange, limit, nextToken)
	var entries []domain.AccountEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.AccountEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockAccountService) ListCommands(ctx context.Context, accountID string) ([]domain.AccountCommand, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountCommand), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.ActorMiddleware())

	suite.mockAccountService = new(MockAccountService)

	// Only the account routes are exercised here; the other services stay nil.
	svcs := &services.Container{Account: suite.mockAccountService}
	handlers.RegisterRoutes(suite.router, &config.Config{}, svcs)
}

func (suite *AccountHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{
		Identifier:       "7100.10",
		Name:             "Main current account",
		Type:             domain.Asset,
		LedgerIdentifier: "7100",
		Balance:          decimal.Zero,
	}
	created := &domain.Account{
		Identifier: "7100.10",
		Name:       "Main current account",
		Type:       domain.Asset,
		LedgerID:   "7100",
		Balance:    decimal.Zero,
		State:      domain.Open,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Identifier == "7100.10" && r.LedgerIdentifier == "7100"
		}),
		"clerk-1",
	).Return(created, nil).Once()

	body, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "clerk-1")

	w := suite.serve(req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("7100.10", resp.Identifier)
	suite.Equal(domain.Open, resp.State)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingActor() {
	body, _ := json.Marshal(dto.CreateAccountRequest{
		Identifier:       "7100.10",
		Name:             "Main current account",
		Type:             domain.Asset,
		LedgerIdentifier: "7100",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	body, _ := json.Marshal(map[string]any{
		"identifier":       "7100.10",
		"name":             "Main current account",
		"type":             "TREASURE",
		"ledgerIdentifier": "7100",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "clerk-1")

	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountService.On("GetAccount", mock.Anything, "missing").
		Return(nil, fmt.Errorf("account missing: %w", apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/missing", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestExecuteCommand_Conflict() {
	suite.mockAccountService.On("ExecuteCommand",
		mock.Anything, "7100.10",
		dto.AccountCommandRequest{Action: domain.ActionClose},
		"clerk-1",
	).Return(nil, fmt.Errorf("balance not zero: %w", apperrors.ErrConflict)).Once()

	body, _ := json.Marshal(dto.AccountCommandRequest{Action: domain.ActionClose})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts/7100.10/commands", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.ActorHeader, "clerk-1")

	w := suite.serve(req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccountEntries_Success() {
	dateRange, err := domain.ParseDateRange("2026-01-01..2026-01-31")
	suite.Require().NoError(err)

	entries := []domain.AccountEntry{
		{EntryID: "e1", AccountID: "7100.10", Amount: decimal.NewFromInt(100)},
	}
	token := "next-page"
	suite.mockAccountService.On("ListAccountEntries",
		mock.Anything, "7100.10", dateRange, 10, (*string)(nil),
	).Return(entries, &token, nil).Once()

	url := "/api/v1/accounts/7100.10/entries?dateRange=2026-01-01..2026-01-31&limit=10"
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := suite.serve(req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *AccountHandlerTestSuite) TestListAccountEntries_BadDateRange() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/7100.10/entries?dateRange=yesterday", nil)
	w := suite.serve(req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccountEntries")
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Success() {
	suite.mockAccountService.On("DeleteAccount", mock.Anything, "7100.10", "clerk-1").
		Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/accounts/7100.10", nil)
	req.Header.Set(middleware.ActorHeader, "clerk-1")

	w := suite.serve(req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func TestAccountHandlerTestSuite(t *testing.T) {
	handlers.RegisterValidators()
	suite.Run(t, new(AccountHandlerTestSuite))
}
