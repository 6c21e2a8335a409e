package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"path"
	"sync"
	"testing"
	"time"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/events"
	"catatuang/internal/models"
	"catatuang/internal/repositories/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *mapCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	store     *memory.Store
	cache     *mapCache
	publisher *recordingPublisher
	svc       Service

	wallet  *models.Wallet
	salary  *models.UserCategory
	food    *models.UserCategory
	foreign struct {
		wallet   *models.Wallet
		category *models.UserCategory
	}
}

const (
	owner    = uint(1)
	stranger = uint(2)
)

func setup(t *testing.T, opening string) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		store:     memory.New(),
		cache:     newMapCache(),
		publisher: &recordingPublisher{},
	}
	f.svc = NewService(f.store, f.cache, f.publisher, nil)

	f.wallet = &models.Wallet{UserID: owner, Name: "BCA", Balance: dec(opening)}
	require.NoError(t, f.store.Wallets().Create(ctx, f.wallet))
	f.salary = &models.UserCategory{UserID: owner, Name: "Gaji", Type: models.TransactionTypeIncome}
	require.NoError(t, f.store.Categories().Create(ctx, f.salary))
	f.food = &models.UserCategory{UserID: owner, Name: "Makanan", Type: models.TransactionTypeExpense}
	require.NoError(t, f.store.Categories().Create(ctx, f.food))

	f.foreign.wallet = &models.Wallet{UserID: stranger, Name: "Other", Balance: dec("700")}
	require.NoError(t, f.store.Wallets().Create(ctx, f.foreign.wallet))
	f.foreign.category = &models.UserCategory{UserID: stranger, Name: "Other", Type: models.TransactionTypeIncome}
	require.NoError(t, f.store.Categories().Create(ctx, f.foreign.category))

	return f
}

func (f *fixture) balance(t *testing.T, userID, walletID uint) decimal.Decimal {
	t.Helper()
	w, err := f.store.Wallets().GetOwned(context.Background(), userID, walletID)
	require.NoError(t, err)
	return w.Balance
}

func (f *fixture) income(amount string) Input {
	return Input{
		WalletID:        f.wallet.ID,
		CategoryID:      f.salary.ID,
		Amount:          dec(amount),
		TransactionDate: models.NewDate(2024, 1, 15),
		Type:            models.TransactionTypeIncome,
	}
}

func (f *fixture) expense(amount string) Input {
	return Input{
		WalletID:        f.wallet.ID,
		CategoryID:      f.food.ID,
		Amount:          dec(amount),
		TransactionDate: models.NewDate(2024, 1, 16),
		Type:            models.TransactionTypeExpense,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestNewService_PanicsWithoutLedger(t *testing.T) {
	assert.PanicsWithValue(t, "ledger is required", func() {
		NewService(nil, nil, nil, nil)
	})
}

func TestCreateUpdateDelete_KeepsWalletBalance(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000000")

	tx, err := f.svc.Create(ctx, owner, f.income("500000"))
	require.NoError(t, err)
	assertDecimal(t, "1500000", f.balance(t, owner, f.wallet.ID))
	require.NotNil(t, tx.Wallet)
	require.NotNil(t, tx.Category)
	assert.Equal(t, "Gaji", tx.Category.Name)

	updated, err := f.svc.Update(ctx, owner, tx.ID, f.expense("200000"))
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeExpense, updated.Type)
	assert.Equal(t, f.food.ID, updated.CategoryID)
	assertDecimal(t, "800000", f.balance(t, owner, f.wallet.ID))

	require.NoError(t, f.svc.Delete(ctx, owner, tx.ID))
	assertDecimal(t, "1000000", f.balance(t, owner, f.wallet.ID))

	_, err = f.svc.Get(ctx, owner, tx.ID)
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)

	assert.Equal(t, []events.Type{
		events.TransactionCreated,
		events.TransactionUpdated,
		events.TransactionDeleted,
	}, f.publisher.types())
}

func TestCreateThenDelete_RestoresBalance(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		amount string
		input  func(f *fixture, amount string) Input
		after  string
	}{
		{"income", "0.10", (*fixture).income, "100.10"},
		{"expense", "0.20", (*fixture).expense, "99.80"},
		{"expense past zero", "250.55", (*fixture).expense, "-150.55"},
		{"amount rounded half up", "10.005", (*fixture).income, "110.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, "100")

			tx, err := f.svc.Create(ctx, owner, tt.input(f, tt.amount))
			require.NoError(t, err)
			assertDecimal(t, tt.after, f.balance(t, owner, f.wallet.ID))

			require.NoError(t, f.svc.Delete(ctx, owner, tx.ID))
			assertDecimal(t, "100", f.balance(t, owner, f.wallet.ID))
		})
	}
}

func TestUpdate_MovesBetweenWallets(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	second := &models.Wallet{UserID: owner, Name: "GoPay", Balance: dec("500")}
	require.NoError(t, f.store.Wallets().Create(ctx, second))

	tx, err := f.svc.Create(ctx, owner, f.expense("100"))
	require.NoError(t, err)
	assertDecimal(t, "900", f.balance(t, owner, f.wallet.ID))

	in := f.income("50")
	in.WalletID = second.ID
	updated, err := f.svc.Update(ctx, owner, tx.ID, in)
	require.NoError(t, err)
	assert.Equal(t, second.ID, updated.WalletID)

	assertDecimal(t, "1000", f.balance(t, owner, f.wallet.ID))
	assertDecimal(t, "550", f.balance(t, owner, second.ID))

	require.Len(t, f.publisher.events, 2)
	moved := f.publisher.events[1]
	require.NotNil(t, moved.PreviousWalletID)
	assert.Equal(t, f.wallet.ID, *moved.PreviousWalletID)
	assert.Equal(t, second.ID, moved.WalletID)
}

func TestUpdate_SameWalletComposes(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "0")

	tx, err := f.svc.Create(ctx, owner, f.income("100"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, owner, tx.ID, f.income("30"))
	require.NoError(t, err)
	assertDecimal(t, "30", f.balance(t, owner, f.wallet.ID))
	assert.Nil(t, f.publisher.events[1].PreviousWalletID)
}

func TestCreate_ForeignResourcesAreNotFound(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(f *fixture, in *Input)
		wantErr error
	}{
		{
			name:    "foreign wallet",
			mutate:  func(f *fixture, in *Input) { in.WalletID = f.foreign.wallet.ID },
			wantErr: apperrors.ErrWalletNotFound,
		},
		{
			name:    "missing wallet",
			mutate:  func(f *fixture, in *Input) { in.WalletID = 999 },
			wantErr: apperrors.ErrWalletNotFound,
		},
		{
			name:    "foreign category",
			mutate:  func(f *fixture, in *Input) { in.CategoryID = f.foreign.category.ID },
			wantErr: apperrors.ErrCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, "1000")
			in := f.income("10")
			tt.mutate(f, &in)

			_, err := f.svc.Create(ctx, owner, in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

			assertDecimal(t, "1000", f.balance(t, owner, f.wallet.ID))
			assertDecimal(t, "700", f.balance(t, stranger, f.foreign.wallet.ID))
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestForeignTransactionIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	tx, err := f.svc.Create(ctx, owner, f.income("10"))
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, stranger, tx.ID)
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)

	in := f.income("10")
	in.WalletID = f.foreign.wallet.ID
	in.CategoryID = f.foreign.category.ID
	_, err = f.svc.Update(ctx, stranger, tx.ID, in)
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, stranger, tx.ID), apperrors.ErrTransactionNotFound)

	assertDecimal(t, "1010", f.balance(t, owner, f.wallet.ID))
	assertDecimal(t, "700", f.balance(t, stranger, f.foreign.wallet.ID))
}

func TestUpdate_ToForeignWalletIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	tx, err := f.svc.Create(ctx, owner, f.income("10"))
	require.NoError(t, err)

	in := f.income("10")
	in.WalletID = f.foreign.wallet.ID
	_, err = f.svc.Update(ctx, owner, tx.ID, in)
	assert.ErrorIs(t, err, apperrors.ErrWalletNotFound)

	assertDecimal(t, "1010", f.balance(t, owner, f.wallet.ID))
	assertDecimal(t, "700", f.balance(t, stranger, f.foreign.wallet.ID))
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *Input)
		field  string
	}{
		{"zero amount", func(in *Input) { in.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(in *Input) { in.Amount = dec("-5") }, "amount"},
		{"amount rounds to zero", func(in *Input) { in.Amount = dec("0.004") }, "amount"},
		{"amount too large", func(in *Input) { in.Amount = dec("10000000000000") }, "amount"},
		{"unknown type", func(in *Input) { in.Type = "transfer" }, "type"},
		{"missing date", func(in *Input) { in.TransactionDate = models.Date{} }, "transaction_date"},
		{"missing wallet", func(in *Input) { in.WalletID = 0 }, "wallet_id"},
		{"missing category", func(in *Input) { in.CategoryID = 0 }, "category_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, "1000")
			in := f.income("10")
			tt.mutate(&in)

			_, err := f.svc.Create(ctx, owner, in)
			require.Error(t, err)

			de, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.KindValidation, de.Kind)
			assert.Contains(t, de.Fields, tt.field)
			assertDecimal(t, "1000", f.balance(t, owner, f.wallet.ID))
		})
	}
}

func TestCreate_SmallestAmountAccepted(t *testing.T) {
	f := setup(t, "0")

	_, err := f.svc.Create(context.Background(), owner, f.income("0.005"))
	require.NoError(t, err)
	assertDecimal(t, "0.01", f.balance(t, owner, f.wallet.ID))
}

func TestCreate_BlankDescriptionStoredAsNull(t *testing.T) {
	f := setup(t, "0")
	in := f.income("1")
	blank := "   "
	in.Description = &blank

	tx, err := f.svc.Create(context.Background(), owner, in)
	require.NoError(t, err)
	assert.Nil(t, tx.Description)
}

func assertInternal(t *testing.T, err error, message string) {
	t.Helper()
	de, ok := apperrors.As(err)
	require.True(t, ok, "expected a DomainError, got %v", err)
	assert.Equal(t, apperrors.KindInternal, de.Kind)
	assert.Equal(t, message, de.Message)
}

func TestCreate_RollsBackWhenBalanceWriteFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	f.store.FailOn(memory.OpWalletUpdateBalance, errors.New("connection reset"))

	_, err := f.svc.Create(ctx, owner, f.income("10"))
	assertInternal(t, err, "Failed to create transaction")

	assertDecimal(t, "1000", f.balance(t, owner, f.wallet.ID))
	page, err := f.svc.List(ctx, owner, Filter{})
	require.NoError(t, err)
	assert.Zero(t, page.Pagination.Total)
	assert.Empty(t, f.publisher.events)
}

func TestUpdate_RollsBackWhenRowWriteFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	tx, err := f.svc.Create(ctx, owner, f.income("10"))
	require.NoError(t, err)

	f.store.FailOn(memory.OpTransactionUpdate, errors.New("connection reset"))
	_, err = f.svc.Update(ctx, owner, tx.ID, f.expense("300"))
	assertInternal(t, err, "Failed to update transaction")

	assertDecimal(t, "1010", f.balance(t, owner, f.wallet.ID))
	got, err := f.svc.Get(ctx, owner, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionTypeIncome, got.Type)
	assertDecimal(t, "10", got.Amount)
}

func TestDelete_RollsBackWhenRowDeleteFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	tx, err := f.svc.Create(ctx, owner, f.expense("10"))
	require.NoError(t, err)

	f.store.FailOn(memory.OpTransactionDelete, errors.New("connection reset"))
	err = f.svc.Delete(ctx, owner, tx.ID)
	assertInternal(t, err, "Failed to delete transaction")

	assertDecimal(t, "990", f.balance(t, owner, f.wallet.ID))
	_, err = f.svc.Get(ctx, owner, tx.ID)
	assert.NoError(t, err)
}

func TestSideEffectFailuresDoNotFailTheMutation(t *testing.T) {
	f := setup(t, "0")
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.Create(context.Background(), owner, f.income("5"))
	require.NoError(t, err)
	assertDecimal(t, "5", f.balance(t, owner, f.wallet.ID))
}

func TestRandomMutations_KeepBalancesEqualToTransactionSums(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	second := &models.Wallet{UserID: owner, Name: "GoPay", Balance: dec("250")}
	require.NoError(t, f.store.Wallets().Create(ctx, second))
	opening := map[uint]decimal.Decimal{f.wallet.ID: dec("1000"), second.ID: dec("250")}
	walletIDs := []uint{f.wallet.ID, second.ID}

	rng := rand.New(rand.NewSource(20240115))
	randomInput := func() Input {
		in := f.income("0")
		if rng.Intn(2) == 0 {
			in = f.expense("0")
		}
		in.WalletID = walletIDs[rng.Intn(len(walletIDs))]
		in.Amount = decimal.New(int64(rng.Intn(1000000)+1), -2)
		return in
	}

	live := make(map[uint]Input)
	var ids []uint
	for step := 0; step < 500; step++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(ids) == 0:
			in := randomInput()
			tx, err := f.svc.Create(ctx, owner, in)
			require.NoError(t, err, "step %d", step)
			live[tx.ID] = in
			ids = append(ids, tx.ID)
		case op == 1:
			id := ids[rng.Intn(len(ids))]
			in := randomInput()
			_, err := f.svc.Update(ctx, owner, id, in)
			require.NoError(t, err, "step %d", step)
			live[id] = in
		default:
			i := rng.Intn(len(ids))
			require.NoError(t, f.svc.Delete(ctx, owner, ids[i]), "step %d", step)
			delete(live, ids[i])
			ids = append(ids[:i], ids[i+1:]...)
		}
	}

	want := make(map[uint]decimal.Decimal, len(opening))
	for id, amount := range opening {
		want[id] = amount
	}
	for _, in := range live {
		signed := in.Amount
		if in.Type == models.TransactionTypeExpense {
			signed = signed.Neg()
		}
		want[in.WalletID] = want[in.WalletID].Add(signed)
	}
	for _, id := range walletIDs {
		assertDecimal(t, want[id].String(), f.balance(t, owner, id))
	}
}

func TestConcurrentCreates_SerializeOnWallet(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "0")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for _, amount := range []string{"100", "50"} {
			wg.Add(1)
			go func(amount string) {
				defer wg.Done()
				_, err := f.svc.Create(ctx, owner, f.income(amount))
				assert.NoError(t, err)
			}(amount)
		}
	}
	wg.Wait()

	assertDecimal(t, "1500", f.balance(t, owner, f.wallet.ID))
}

func TestList_FiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "0")

	second := &models.Wallet{UserID: owner, Name: "GoPay"}
	require.NoError(t, f.store.Wallets().Create(ctx, second))

	create := func(in Input, date models.Date) *models.Transaction {
		in.TransactionDate = date
		tx, err := f.svc.Create(ctx, owner, in)
		require.NoError(t, err)
		return tx
	}

	jan := create(f.income("10"), models.NewDate(2024, 1, 5))
	feb := create(f.expense("20"), models.NewDate(2024, 2, 5))
	febLater := create(f.income("30"), models.NewDate(2024, 2, 5))
	onSecond := f.expense("40")
	onSecond.WalletID = second.ID
	mar := create(onSecond, models.NewDate(2024, 3, 1))

	_, err := f.svc.Create(ctx, stranger, Input{
		WalletID:        f.foreign.wallet.ID,
		CategoryID:      f.foreign.category.ID,
		Amount:          dec("1"),
		TransactionDate: models.NewDate(2024, 2, 1),
		Type:            models.TransactionTypeIncome,
	})
	require.NoError(t, err)

	ids := func(p *Page) []uint {
		out := make([]uint, 0, len(p.Data))
		for _, tx := range p.Data {
			out = append(out, tx.ID)
		}
		return out
	}
	date := func(y int, m time.Month, d int) *models.Date {
		v := models.NewDate(y, m, d)
		return &v
	}
	income := models.TransactionTypeIncome
	bogus := models.TransactionType("transfer")

	tests := []struct {
		name   string
		filter Filter
		want   []uint
	}{
		{"all newest first", Filter{}, []uint{mar.ID, febLater.ID, feb.ID, jan.ID}},
		{"inclusive range", Filter{StartDate: date(2024, 2, 5), EndDate: date(2024, 3, 1)}, []uint{mar.ID, febLater.ID, feb.ID}},
		{"type", Filter{Type: &income}, []uint{febLater.ID, jan.ID}},
		{"unknown type ignored", Filter{Type: &bogus}, []uint{mar.ID, febLater.ID, feb.ID, jan.ID}},
		{"wallet", Filter{WalletID: &second.ID}, []uint{mar.ID}},
		{"foreign wallet yields nothing", Filter{WalletID: &f.foreign.wallet.ID}, []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.svc.List(ctx, owner, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(page))
			assert.Equal(t, int64(len(tt.want)), page.Pagination.Total)
			for _, tx := range page.Data {
				assert.NotNil(t, tx.Wallet)
				assert.NotNil(t, tx.Category)
			}
		})
	}
}

func TestList_Paginates(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "0")

	for i := 0; i < 25; i++ {
		_, err := f.svc.Create(ctx, owner, f.income("1"))
		require.NoError(t, err)
	}

	first, err := f.svc.List(ctx, owner, Filter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Data, PageSize)
	assert.Equal(t, int64(25), first.Pagination.Total)
	assert.Equal(t, 2, first.Pagination.LastPage)

	second, err := f.svc.List(ctx, owner, Filter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Data, 5)
	assert.Equal(t, 2, second.Pagination.Page)
}

func TestList_EndBeforeStartIsInvalid(t *testing.T) {
	f := setup(t, "0")
	start := models.NewDate(2024, 2, 1)
	end := models.NewDate(2024, 1, 1)

	_, err := f.svc.List(context.Background(), owner, Filter{StartDate: &start, EndDate: &end})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSummary_Totals(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "1000")

	for _, in := range []Input{f.income("500"), f.income("250.50"), f.expense("100.25")} {
		_, err := f.svc.Create(ctx, owner, in)
		require.NoError(t, err)
	}
	outside := f.income("999")
	outside.TransactionDate = models.NewDate(2023, 12, 31)
	_, err := f.svc.Create(ctx, owner, outside)
	require.NoError(t, err)

	start := models.NewDate(2024, 1, 1)
	end := models.NewDate(2024, 1, 31)
	summary, err := f.svc.Summary(ctx, owner, Period{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", summary.Period.StartDate.String())
	assert.Equal(t, "2024-01-31", summary.Period.EndDate.String())
	assertDecimal(t, "750.50", summary.Summary.TotalIncome)
	assertDecimal(t, "100.25", summary.Summary.TotalExpense)
	assertDecimal(t, "650.25", summary.Summary.Balance)
	// Live total over every wallet, including the out of period income.
	assertDecimal(t, "2649.25", summary.Summary.WalletBalance)
}

func TestSummary_DefaultsToCurrentMonth(t *testing.T) {
	f := setup(t, "0")
	f.svc.(*service).now = func() time.Time {
		return time.Date(2024, 2, 14, 9, 30, 0, 0, time.UTC)
	}

	summary, err := f.svc.Summary(context.Background(), owner, Period{})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", summary.Period.StartDate.String())
	assert.Equal(t, "2024-02-29", summary.Period.EndDate.String())

	start := models.NewDate(2024, 2, 10)
	summary, err = f.svc.Summary(context.Background(), owner, Period{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10", summary.Period.StartDate.String())
	assert.Equal(t, "2024-02-29", summary.Period.EndDate.String())
}

func TestSummary_CachedUntilNextMutation(t *testing.T) {
	ctx := context.Background()
	f := setup(t, "0")
	start := models.NewDate(2024, 1, 1)
	end := models.NewDate(2024, 1, 31)
	period := Period{StartDate: &start, EndDate: &end}

	_, err := f.svc.Create(ctx, owner, f.income("10"))
	require.NoError(t, err)

	first, err := f.svc.Summary(ctx, owner, period)
	require.NoError(t, err)
	assertDecimal(t, "10", first.Summary.TotalIncome)

	// A failing aggregate proves the second read is served from cache.
	f.store.FailOn(memory.OpTransactionSum, errors.New("should not be called"))
	cached, err := f.svc.Summary(ctx, owner, period)
	require.NoError(t, err)
	assertDecimal(t, "10", cached.Summary.TotalIncome)
	f.store.FailOn(memory.OpTransactionSum, nil)

	_, err = f.svc.Create(ctx, owner, f.income("5"))
	require.NoError(t, err)

	fresh, err := f.svc.Summary(ctx, owner, period)
	require.NoError(t, err)
	assertDecimal(t, "15", fresh.Summary.TotalIncome)
	assertDecimal(t, "15", fresh.Summary.WalletBalance)
}

func TestSummary_AggregateFailureIsInternal(t *testing.T) {
	f := setup(t, "0")
	f.store.FailOn(memory.OpTransactionSum, errors.New("timeout"))

	_, err := f.svc.Summary(context.Background(), owner, Period{})
	assertInternal(t, err, "Failed to load transaction summary")
}
