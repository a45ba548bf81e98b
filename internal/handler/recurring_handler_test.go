package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/service"
	"github.com/rooty/finance/finance-backend/internal/testutil"
	"github.com/rooty/finance/finance-backend/internal/util"
	"github.com/shopspring/decimal"
)

func newRecurringHandler() (*RecurringHandler, *testutil.MockRecurringRuleRepository, *testutil.MockTransactionRepository) {
	ruleRepo := testutil.NewMockRecurringRuleRepository()
	transactionRepo := testutil.NewMockTransactionRepository()
	accountRepo := testutil.NewMockAccountRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	accountRepo.AddAccount(&domain.Account{ID: 1, Name: "Checking"})
	recurringService := service.NewRecurringService(ruleRepo, transactionRepo, accountRepo, categoryRepo)
	return NewRecurringHandler(recurringService), ruleRepo, transactionRepo
}

func TestCreateRule_Success(t *testing.T) {
	e := echo.New()
	handler, _, _ := newRecurringHandler()

	reqBody := `{"accountId": 1, "amount": 1200, "direction": "EXPENSE", "period": "MONTHLY", "startDate": "2024-01-01", "autoPost": true}`
	req := httptest.NewRequest(http.MethodPost, "/api/recurring-rules", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateRule(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response RecurringRuleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Period != "MONTHLY" {
		t.Errorf("Expected period MONTHLY, got %s", response.Period)
	}
	if response.StartDate != "2024-01-01" {
		t.Errorf("Expected start date 2024-01-01, got %s", response.StartDate)
	}
	if !response.AutoPost {
		t.Error("Expected autoPost to be true")
	}
}

func TestCreateRule_EndBeforeStart(t *testing.T) {
	e := echo.New()
	handler, _, _ := newRecurringHandler()

	reqBody := `{"accountId": 1, "amount": 1200, "direction": "EXPENSE", "period": "MONTHLY", "startDate": "2024-06-01", "endDate": "2024-01-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/recurring-rules", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateRule(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGenerateNext_PostsOccurrence(t *testing.T) {
	e := echo.New()
	handler, ruleRepo, transactionRepo := newRecurringHandler()
	ruleRepo.AddRule(&domain.RecurringRule{
		ID:        1,
		AccountID: 1,
		Amount:    decimal.NewFromInt(750),
		Direction: domain.DirectionExpense,
		Period:    domain.PeriodMonthly,
		StartDate: util.Date(2024, time.January, 1),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/recurring-rules/1/generate-next", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.GenerateNext(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(transactionRepo.Transactions) != 1 {
		t.Errorf("Expected 1 transaction, got %d", len(transactionRepo.Transactions))
	}
}

func TestGenerateNext_NothingDueStill204(t *testing.T) {
	e := echo.New()
	handler, ruleRepo, transactionRepo := newRecurringHandler()
	ruleRepo.AddRule(&domain.RecurringRule{
		ID:        1,
		AccountID: 1,
		Amount:    decimal.NewFromInt(750),
		Direction: domain.DirectionExpense,
		Period:    domain.PeriodMonthly,
		StartDate: util.Today().AddDate(0, 2, 0), // not yet due
	})

	req := httptest.NewRequest(http.MethodPost, "/api/recurring-rules/1/generate-next", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.GenerateNext(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(transactionRepo.Transactions) != 0 {
		t.Errorf("Expected no transactions, got %d", len(transactionRepo.Transactions))
	}
}

func TestGenerateNext_ForcePostsFutureOccurrence(t *testing.T) {
	e := echo.New()
	handler, ruleRepo, transactionRepo := newRecurringHandler()
	ruleRepo.AddRule(&domain.RecurringRule{
		ID:        1,
		AccountID: 1,
		Amount:    decimal.NewFromInt(750),
		Direction: domain.DirectionExpense,
		Period:    domain.PeriodMonthly,
		StartDate: util.Today().AddDate(0, 2, 0),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/recurring-rules/1/generate-next?force=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.GenerateNext(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(transactionRepo.Transactions) != 1 {
		t.Errorf("Expected 1 transaction, got %d", len(transactionRepo.Transactions))
	}
}

func TestGenerateNext_RuleNotFound(t *testing.T) {
	e := echo.New()
	handler, _, _ := newRecurringHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/recurring-rules/42/generate-next", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.GenerateNext(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
