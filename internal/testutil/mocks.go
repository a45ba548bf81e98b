package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	Accounts map[int64]*domain.Account
	NextID   int64
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[int64]*domain.Account),
		NextID:   1,
	}
}

// Create creates a new account
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	account.ID = m.NextID
	m.NextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	m.Accounts[account.ID] = account
	return account, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id int64) (*domain.Account, error) {
	if account, ok := m.Accounts[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// List retrieves accounts, optionally including archived ones
func (m *MockAccountRepository) List(includeArchived bool) ([]*domain.Account, error) {
	var accounts []*domain.Account
	for _, account := range m.Accounts {
		if account.Archived && !includeArchived {
			continue
		}
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

// Update updates an account
func (m *MockAccountRepository) Update(account *domain.Account) (*domain.Account, error) {
	if _, ok := m.Accounts[account.ID]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	account.UpdatedAt = time.Now()
	m.Accounts[account.ID] = account
	return account, nil
}

// SumInitialBalances sums initial balances across all accounts
func (m *MockAccountRepository) SumInitialBalances() (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, account := range m.Accounts {
		sum = sum.Add(account.InitialBalance)
	}
	return sum, nil
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.Accounts[account.ID] = account
	if account.ID >= m.NextID {
		m.NextID = account.ID + 1
	}
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int64]*domain.Category
	NextID     int64
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int64]*domain.Category),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id int64) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// List retrieves all categories
func (m *MockCategoryRepository) List() ([]*domain.Category, error) {
	var categories []*domain.Category
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// Update updates a category
func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[category.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	category.UpdatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

// Delete removes a category
func (m *MockCategoryRepository) Delete(id int64) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository. Guarded by a mutex so generation races can
// be exercised in tests.
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions map[int64]*domain.Transaction
	NextID       int64
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int64]*domain.Transaction),
		NextID:       1,
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(transaction), nil
}

// CreateOccurrence inserts a rule occurrence unless one already exists for
// the same rule and date
func (m *MockTransactionRepository) CreateOccurrence(transaction *domain.Transaction) (*domain.Transaction, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.Transactions {
		if existing.RecurringRuleID != nil && transaction.RecurringRuleID != nil &&
			*existing.RecurringRuleID == *transaction.RecurringRuleID &&
			existing.Date.Equal(transaction.Date) {
			return nil, false, nil
		}
	}
	return m.insert(transaction), true, nil
}

func (m *MockTransactionRepository) insert(transaction *domain.Transaction) *domain.Transaction {
	transaction.ID = m.NextID
	m.NextID++
	transaction.CreatedAt = time.Now()
	m.Transactions[transaction.ID] = transaction
	return transaction
}

// GetByID retrieves a transaction by ID
func (m *MockTransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if transaction, ok := m.Transactions[id]; ok {
		return transaction, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// ListByDateRange retrieves transactions with date in [from, to]
func (m *MockTransactionRepository) ListByDateRange(from, to time.Time) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var transactions []*domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.Date.Before(from) || transaction.Date.After(to) {
			continue
		}
		transactions = append(transactions, transaction)
	}
	sortByDate(transactions)
	return transactions, nil
}

// ListThrough retrieves all transactions dated on or before the given date
func (m *MockTransactionRepository) ListThrough(date time.Time) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var transactions []*domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.Date.After(date) {
			continue
		}
		transactions = append(transactions, transaction)
	}
	sortByDate(transactions)
	return transactions, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// LastDateForRule returns the latest transaction date tied to the rule
func (m *MockTransactionRepository) LastDateForRule(ruleID int64) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var last *time.Time
	for _, transaction := range m.Transactions {
		if transaction.RecurringRuleID == nil || *transaction.RecurringRuleID != ruleID {
			continue
		}
		if last == nil || transaction.Date.After(*last) {
			date := transaction.Date
			last = &date
		}
	}
	return last, nil
}

// SumAmountsThrough sums all transaction amounts dated on or before the date
func (m *MockTransactionRepository) SumAmountsThrough(date time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.Date.After(date) {
			continue
		}
		sum = sum.Add(transaction.Amount)
	}
	return sum, nil
}

// CountByCategory counts transactions referencing the category
func (m *MockTransactionRepository) CountByCategory(categoryID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, transaction := range m.Transactions {
		if transaction.CategoryID != nil && *transaction.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[transaction.ID] = transaction
	if transaction.ID >= m.NextID {
		m.NextID = transaction.ID + 1
	}
}

func sortByDate(transactions []*domain.Transaction) {
	sort.Slice(transactions, func(i, j int) bool {
		if transactions[i].Date.Equal(transactions[j].Date) {
			return transactions[i].ID < transactions[j].ID
		}
		return transactions[i].Date.Before(transactions[j].Date)
	})
}

// MockRecurringRuleRepository is a mock implementation of domain.RecurringRuleRepository
type MockRecurringRuleRepository struct {
	Rules  map[int64]*domain.RecurringRule
	NextID int64
}

// NewMockRecurringRuleRepository creates a new MockRecurringRuleRepository
func NewMockRecurringRuleRepository() *MockRecurringRuleRepository {
	return &MockRecurringRuleRepository{
		Rules:  make(map[int64]*domain.RecurringRule),
		NextID: 1,
	}
}

// Create creates a new recurring rule
func (m *MockRecurringRuleRepository) Create(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	rule.ID = m.NextID
	m.NextID++
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()
	m.Rules[rule.ID] = rule
	return rule, nil
}

// GetByID retrieves a recurring rule by ID
func (m *MockRecurringRuleRepository) GetByID(id int64) (*domain.RecurringRule, error) {
	if rule, ok := m.Rules[id]; ok {
		return rule, nil
	}
	return nil, domain.ErrRuleNotFound
}

// List retrieves all recurring rules
func (m *MockRecurringRuleRepository) List() ([]*domain.RecurringRule, error) {
	var rules []*domain.RecurringRule
	for _, rule := range m.Rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

// ListAutoPost retrieves all rules flagged for automatic posting
func (m *MockRecurringRuleRepository) ListAutoPost() ([]*domain.RecurringRule, error) {
	var rules []*domain.RecurringRule
	for _, rule := range m.Rules {
		if rule.AutoPost {
			rules = append(rules, rule)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}

// Update updates a recurring rule
func (m *MockRecurringRuleRepository) Update(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	if _, ok := m.Rules[rule.ID]; !ok {
		return nil, domain.ErrRuleNotFound
	}
	rule.UpdatedAt = time.Now()
	m.Rules[rule.ID] = rule
	return rule, nil
}

// Delete removes a recurring rule
func (m *MockRecurringRuleRepository) Delete(id int64) error {
	if _, ok := m.Rules[id]; !ok {
		return domain.ErrRuleNotFound
	}
	delete(m.Rules, id)
	return nil
}

// CountByCategory counts recurring rules referencing the category
func (m *MockRecurringRuleRepository) CountByCategory(categoryID int64) (int64, error) {
	var count int64
	for _, rule := range m.Rules {
		if rule.CategoryID != nil && *rule.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// AddRule adds a recurring rule to the mock repository (helper for tests)
func (m *MockRecurringRuleRepository) AddRule(rule *domain.RecurringRule) {
	m.Rules[rule.ID] = rule
	if rule.ID >= m.NextID {
		m.NextID = rule.ID + 1
	}
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[int64]*domain.Budget
	NextID  int64
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[int64]*domain.Budget),
		NextID:  1,
	}
}

// Create creates a new budget
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	budget.ID = m.NextID
	m.NextID++
	budget.CreatedAt = time.Now()
	budget.UpdatedAt = time.Now()
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(id int64) (*domain.Budget, error) {
	if budget, ok := m.Budgets[id]; ok {
		return budget, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// List retrieves all budgets
func (m *MockBudgetRepository) List() ([]*domain.Budget, error) {
	var budgets []*domain.Budget
	for _, budget := range m.Budgets {
		budgets = append(budgets, budget)
	}
	sort.Slice(budgets, func(i, j int) bool { return budgets[i].ID < budgets[j].ID })
	return budgets, nil
}

// Update updates a budget
func (m *MockBudgetRepository) Update(budget *domain.Budget) (*domain.Budget, error) {
	if _, ok := m.Budgets[budget.ID]; !ok {
		return nil, domain.ErrBudgetNotFound
	}
	budget.UpdatedAt = time.Now()
	m.Budgets[budget.ID] = budget
	return budget, nil
}

// Delete removes a budget
func (m *MockBudgetRepository) Delete(id int64) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// CountByCategory counts budgets referencing the category
func (m *MockBudgetRepository) CountByCategory(categoryID int64) (int64, error) {
	var count int64
	for _, budget := range m.Budgets {
		if budget.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) {
	m.Budgets[budget.ID] = budget
	if budget.ID >= m.NextID {
		m.NextID = budget.ID + 1
	}
}

// MockAppSettingsRepository is a mock implementation of domain.AppSettingsRepository
type MockAppSettingsRepository struct {
	Settings *domain.AppSettings
}

// NewMockAppSettingsRepository creates a new MockAppSettingsRepository
func NewMockAppSettingsRepository() *MockAppSettingsRepository {
	return &MockAppSettingsRepository{}
}

// Get returns the settings row, creating defaults when missing
func (m *MockAppSettingsRepository) Get() (*domain.AppSettings, error) {
	if m.Settings == nil {
		m.Settings = domain.DefaultSettings()
	}
	return m.Settings, nil
}

// Update persists the settings row
func (m *MockAppSettingsRepository) Update(settings *domain.AppSettings) (*domain.AppSettings, error) {
	settings.ID = domain.SettingsID
	m.Settings = settings
	return settings, nil
}
