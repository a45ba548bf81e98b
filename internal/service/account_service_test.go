package service

import (
	"strings"
	"testing"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAccount(t *testing.T) {
	service := NewAccountService(testutil.NewMockAccountRepository())

	account, err := service.CreateAccount(AccountInput{
		Name:           " Checking ",
		InitialBalance: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Checking", account.Name)
	assert.Equal(t, "checking", account.Type)
	assert.False(t, account.Archived)
}

func TestCreateAccount_NameTooLong(t *testing.T) {
	service := NewAccountService(testutil.NewMockAccountRepository())

	_, err := service.CreateAccount(AccountInput{Name: strings.Repeat("x", domain.MaxNameLength+1)})
	assert.ErrorIs(t, err, domain.ErrNameTooLong)
}

func TestUpdateAccount_Archive(t *testing.T) {
	repo := testutil.NewMockAccountRepository()
	repo.AddAccount(&domain.Account{ID: 1, Name: "Old savings", Type: "savings"})
	service := NewAccountService(repo)

	updated, err := service.UpdateAccount(1, AccountInput{
		Name:     "Old savings",
		Type:     "savings",
		Archived: true,
	})
	require.NoError(t, err)
	assert.True(t, updated.Archived)

	// Archived accounts drop out of the default listing but stay reachable.
	visible, err := service.ListAccounts(false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := service.ListAccounts(true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetAccount_NotFound(t *testing.T) {
	service := NewAccountService(testutil.NewMockAccountRepository())

	_, err := service.GetAccount(9)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
