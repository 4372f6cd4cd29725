package session

import (
	"testing"

	"github.com/Therakar/banklist/model"
	"github.com/Therakar/banklist/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movs(amounts ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(amounts))
	for i, a := range amounts {
		out[i] = decimal.NewFromInt(a)
	}
	return out
}

// newBank builds a two-account store: Alice Anderson ("aa", PIN 1234) with a
// single 100 deposit, and Bob Brown ("bb", PIN 5678) with no movements.
func newBank(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store, err := storage.NewMemoryStore(
		&model.Account{
			Owner:        "Alice Anderson",
			PIN:          1234,
			InterestRate: decimal.NewFromInt(1),
			Movements:    movs(100),
		},
		&model.Account{
			Owner:        "Bob Brown",
			PIN:          5678,
			InterestRate: decimal.NewFromInt(1),
		},
	)
	require.NoError(t, err)
	return store
}

func login(t *testing.T, store storage.Store, username string, pin int) *Session {
	t.Helper()
	sess := New(store)
	_, err := sess.Login(username, pin)
	require.NoError(t, err)
	return sess
}

func TestLogin(t *testing.T) {
	store := newBank(t)

	t.Run("success", func(t *testing.T) {
		sess := New(store)
		acc, err := sess.Login("aa", 1234)
		require.NoError(t, err)
		assert.Equal(t, "Alice Anderson", acc.Owner)
		assert.True(t, sess.LoggedIn())
	})

	t.Run("wrong pin", func(t *testing.T) {
		sess := New(store)
		_, err := sess.Login("aa", 1111)
		assert.ErrorIs(t, err, ErrLoginFailed)
		assert.False(t, sess.LoggedIn())
	})

	t.Run("unknown username", func(t *testing.T) {
		sess := New(store)
		_, err := sess.Login("zz", 1234)
		assert.ErrorIs(t, err, ErrLoginFailed)
	})
}

func TestTransfer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newBank(t)
		sess := login(t, store, "aa", 1234)

		require.NoError(t, sess.Transfer("bb", decimal.NewFromInt(50)))

		alice, err := store.FindByUsername("aa")
		require.NoError(t, err)
		bob, err := store.FindByUsername("bb")
		require.NoError(t, err)
		assert.True(t, alice.Movements[len(alice.Movements)-1].Equal(decimal.NewFromInt(-50)))
		assert.True(t, bob.Movements[len(bob.Movements)-1].Equal(decimal.NewFromInt(50)))
		assert.True(t, model.Balance(alice.Movements).Equal(decimal.NewFromInt(50)))
	})

	t.Run("rejections leave both accounts unchanged", func(t *testing.T) {
		store := newBank(t)
		sess := login(t, store, "aa", 1234)

		cases := []struct {
			name   string
			to     string
			amount int64
			want   error
		}{
			{"more than the balance", "bb", 150, storage.ErrInsufficientFunds},
			{"zero amount", "bb", 0, ErrInvalidAmount},
			{"negative amount", "bb", -5, ErrInvalidAmount},
			{"unknown recipient", "zz", 10, storage.ErrNotFound},
			{"self transfer", "aa", 10, ErrSelfTransfer},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := sess.Transfer(tc.to, decimal.NewFromInt(tc.amount))
				assert.ErrorIs(t, err, tc.want)
			})
		}

		alice, err := store.FindByUsername("aa")
		require.NoError(t, err)
		bob, err := store.FindByUsername("bb")
		require.NoError(t, err)
		assert.Len(t, alice.Movements, 1)
		assert.Empty(t, bob.Movements)
	})

	t.Run("panics with no account logged in", func(t *testing.T) {
		sess := New(newBank(t))
		assert.Panics(t, func() { _ = sess.Transfer("bb", decimal.NewFromInt(1)) })
	})
}

func TestRequestLoan(t *testing.T) {
	// Steven's history: largest deposit is 400.
	newSteven := func(t *testing.T) (*storage.MemoryStore, *Session) {
		t.Helper()
		store, err := storage.NewMemoryStore(&model.Account{
			Owner:        "Steven Thomas Williams",
			PIN:          3333,
			InterestRate: decimal.RequireFromString("0.7"),
			Movements:    movs(200, -200, 340, -300, -20, 50, 400, -460),
		})
		require.NoError(t, err)
		return store, login(t, store, "stw", 3333)
	}

	t.Run("granted when a deposit covers 10%", func(t *testing.T) {
		store, sess := newSteven(t)
		require.NoError(t, sess.RequestLoan(decimal.NewFromInt(2000)))

		acc, err := store.FindByUsername("stw")
		require.NoError(t, err)
		require.Len(t, acc.Movements, 9)
		assert.True(t, acc.Movements[8].Equal(decimal.NewFromInt(2000)))
	})

	t.Run("denied without collateral", func(t *testing.T) {
		store, sess := newSteven(t)
		err := sess.RequestLoan(decimal.NewFromInt(5000))
		assert.ErrorIs(t, err, ErrNoCollateral)

		acc, ferr := store.FindByUsername("stw")
		require.NoError(t, ferr)
		assert.Len(t, acc.Movements, 8)
	})

	t.Run("a deposit at exactly 10% qualifies", func(t *testing.T) {
		_, sess := newSteven(t)
		require.NoError(t, sess.RequestLoan(decimal.NewFromInt(4000)))
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, sess := newSteven(t)
		assert.ErrorIs(t, sess.RequestLoan(decimal.Zero), ErrInvalidAmount)
	})

	t.Run("panics with no account logged in", func(t *testing.T) {
		store, _ := newSteven(t)
		sess := New(store)
		assert.Panics(t, func() { _ = sess.RequestLoan(decimal.NewFromInt(1)) })
	})
}

func TestCloseAccount(t *testing.T) {
	t.Run("success removes the account and ends the session", func(t *testing.T) {
		store := newBank(t)
		sess := login(t, store, "aa", 1234)

		require.NoError(t, sess.CloseAccount("aa", 1234))
		assert.False(t, sess.LoggedIn())

		_, err := store.FindByUsername("aa")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// Bob is untouched.
		_, err = store.FindByUsername("bb")
		assert.NoError(t, err)
	})

	t.Run("wrong pin", func(t *testing.T) {
		store := newBank(t)
		sess := login(t, store, "aa", 1234)

		err := sess.CloseAccount("aa", 9999)
		assert.ErrorIs(t, err, ErrConfirmMismatch)
		assert.True(t, sess.LoggedIn())

		_, err = store.FindByUsername("aa")
		assert.NoError(t, err)
	})

	t.Run("wrong username", func(t *testing.T) {
		store := newBank(t)
		sess := login(t, store, "aa", 1234)
		assert.ErrorIs(t, sess.CloseAccount("bb", 1234), ErrConfirmMismatch)
	})

	t.Run("panics with no account logged in", func(t *testing.T) {
		sess := New(newBank(t))
		assert.Panics(t, func() { _ = sess.CloseAccount("aa", 1234) })
	})
}
