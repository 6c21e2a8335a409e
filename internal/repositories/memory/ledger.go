// Package memory is an in-process repositories.Ledger. Units of work are
// serialized with every other write and stage their changes on a copy of the
// state that replaces the shared one only on commit, so readers outside a
// unit never see uncommitted rows.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"catatuang/internal/models"
	"catatuang/internal/repositories"

	"github.com/shopspring/decimal"
)

// Operation names accepted by FailOn.
const (
	OpWalletUpdateBalance = "wallets.update_balance"
	OpWalletLock          = "wallets.lock"
	OpTransactionCreate   = "transactions.create"
	OpTransactionUpdate   = "transactions.update"
	OpTransactionDelete   = "transactions.delete"
	OpTransactionSum      = "transactions.sum"
)

type state struct {
	wallets      map[uint]models.Wallet
	walletTypes  map[uint]models.UserWalletType
	categories   map[uint]models.UserCategory
	transactions map[uint]models.Transaction
	nextID       map[string]uint
}

func newState() *state {
	return &state{
		wallets:      make(map[uint]models.Wallet),
		walletTypes:  make(map[uint]models.UserWalletType),
		categories:   make(map[uint]models.UserCategory),
		transactions: make(map[uint]models.Transaction),
		nextID:       make(map[string]uint),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.walletTypes {
		c.walletTypes[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	for k, v := range s.nextID {
		c.nextID[k] = v
	}
	return c
}

func (s *state) id(table string) uint {
	s.nextID[table]++
	return s.nextID[table]
}

var _ repositories.Ledger = (*Store)(nil)

// Store is a repositories.Ledger kept in memory.
type Store struct {
	unit   sync.Mutex // held by a unit of work and by writes outside one
	mu     sync.Mutex // guards st
	st     *state
	staged bool
	faults *faults
	now    func() time.Time
}

func New() *Store {
	return &Store{
		st:     newState(),
		faults: &faults{byOp: make(map[string]error)},
		now:    time.Now,
	}
}

type faults struct {
	mu   sync.Mutex
	byOp map[string]error
}

// take returns and clears the failure registered for op.
func (f *faults) take(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.byOp[op]; ok {
		delete(f.byOp, op)
		return err
	}
	return nil
}

// FailOn makes the next call of op return err, inside or outside a unit.
func (s *Store) FailOn(op string, err error) {
	s.faults.mu.Lock()
	defer s.faults.mu.Unlock()
	s.faults.byOp[op] = err
}

// write serializes a write with units of work. Staged stores are already
// owned by the unit that created them.
func (s *Store) write() func() {
	if s.staged {
		return func() {}
	}
	s.unit.Lock()
	return s.unit.Unlock
}

func (s *Store) Wallets() repositories.WalletRepository         { return walletRepo{s} }
func (s *Store) WalletTypes() repositories.WalletTypeRepository { return walletTypeRepo{s} }
func (s *Store) Categories() repositories.CategoryRepository    { return categoryRepo{s} }
func (s *Store) Transactions() repositories.TransactionRepository {
	return transactionRepo{s}
}

// ExecuteInTransaction runs fn against a staged copy of the state. The copy
// replaces the shared state only when fn succeeds.
func (s *Store) ExecuteInTransaction(_ context.Context, fn func(repositories.Ledger) error) error {
	s.unit.Lock()
	defer s.unit.Unlock()

	s.mu.Lock()
	staged := &Store{
		st:     s.st.clone(),
		staged: true,
		faults: s.faults,
		now:    s.now,
	}
	s.mu.Unlock()

	if err := fn(staged); err != nil {
		return err
	}

	s.mu.Lock()
	s.st = staged.st
	s.mu.Unlock()
	return nil
}

type walletRepo struct{ s *Store }

func (r walletRepo) Create(_ context.Context, w *models.Wallet) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if w.UserWalletTypeID != nil {
		if _, ok := r.s.st.walletTypes[*w.UserWalletTypeID]; !ok {
			return repositories.ErrForeignKeyViolation
		}
	}
	w.ID = r.s.st.id("wallets")
	w.Balance = w.Balance.Round(2)
	w.CreatedAt = r.s.now()
	w.UpdatedAt = w.CreatedAt
	stored := *w
	stored.WalletType = nil
	r.s.st.wallets[w.ID] = stored
	return nil
}

func (r walletRepo) GetOwned(_ context.Context, userID, id uint) (*models.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.st.wallets[id]
	if !ok || w.UserID != userID {
		return nil, repositories.ErrWalletNotFound
	}
	return r.s.withWalletType(w), nil
}

func (r walletRepo) ListByUser(_ context.Context, userID uint) ([]models.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.Wallet
	for _, w := range r.s.st.wallets {
		if w.UserID == userID {
			out = append(out, *r.s.withWalletType(w))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r walletRepo) Update(_ context.Context, w *models.Wallet) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.wallets[w.ID]
	if !ok || stored.UserID != w.UserID {
		return repositories.ErrWalletNotFound
	}
	if w.UserWalletTypeID != nil {
		if _, ok := r.s.st.walletTypes[*w.UserWalletTypeID]; !ok {
			return repositories.ErrForeignKeyViolation
		}
	}
	stored.Name = w.Name
	stored.UserWalletTypeID = w.UserWalletTypeID
	stored.UpdatedAt = r.s.now()
	r.s.st.wallets[w.ID] = stored
	return nil
}

func (r walletRepo) Delete(_ context.Context, userID, id uint) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.st.wallets[id]
	if !ok || w.UserID != userID {
		return repositories.ErrWalletNotFound
	}
	for _, tx := range r.s.st.transactions {
		if tx.WalletID == id {
			return repositories.ErrForeignKeyViolation
		}
	}
	delete(r.s.st.wallets, id)
	return nil
}

func (r walletRepo) LockOwned(_ context.Context, userID, id uint) (*models.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.faults.take(OpWalletLock); err != nil {
		return nil, err
	}
	w, ok := r.s.st.wallets[id]
	if !ok || w.UserID != userID {
		return nil, repositories.ErrWalletNotFound
	}
	return &w, nil
}

func (r walletRepo) UpdateBalance(_ context.Context, id uint, balance decimal.Decimal) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.faults.take(OpWalletUpdateBalance); err != nil {
		return err
	}
	w, ok := r.s.st.wallets[id]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	w.Balance = balance
	w.UpdatedAt = r.s.now()
	r.s.st.wallets[id] = w
	return nil
}

func (r walletRepo) TotalBalance(_ context.Context, userID uint) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := decimal.Zero
	for _, w := range r.s.st.wallets {
		if w.UserID == userID {
			total = total.Add(w.Balance)
		}
	}
	return total, nil
}

// withWalletType must be called with mu held.
func (s *Store) withWalletType(w models.Wallet) *models.Wallet {
	if w.UserWalletTypeID != nil {
		if wt, ok := s.st.walletTypes[*w.UserWalletTypeID]; ok {
			w.WalletType = &wt
		}
	}
	return &w
}

type walletTypeRepo struct{ s *Store }

func (r walletTypeRepo) Create(_ context.Context, wt *models.UserWalletType) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wt.ID = r.s.st.id("user_wallet_types")
	wt.CreatedAt = r.s.now()
	wt.UpdatedAt = wt.CreatedAt
	r.s.st.walletTypes[wt.ID] = *wt
	return nil
}

func (r walletTypeRepo) GetOwned(_ context.Context, userID, id uint) (*models.UserWalletType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wt, ok := r.s.st.walletTypes[id]
	if !ok || wt.UserID != userID {
		return nil, repositories.ErrWalletTypeNotFound
	}
	return &wt, nil
}

func (r walletTypeRepo) ListByUser(_ context.Context, userID uint) ([]models.UserWalletType, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.UserWalletType
	for _, wt := range r.s.st.walletTypes {
		if wt.UserID == userID {
			out = append(out, wt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r walletTypeRepo) Update(_ context.Context, wt *models.UserWalletType) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.walletTypes[wt.ID]
	if !ok || stored.UserID != wt.UserID {
		return repositories.ErrWalletTypeNotFound
	}
	stored.Name = wt.Name
	stored.Icon = wt.Icon
	stored.UpdatedAt = r.s.now()
	r.s.st.walletTypes[wt.ID] = stored
	return nil
}

func (r walletTypeRepo) Delete(_ context.Context, userID, id uint) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wt, ok := r.s.st.walletTypes[id]
	if !ok || wt.UserID != userID {
		return repositories.ErrWalletTypeNotFound
	}
	delete(r.s.st.walletTypes, id)
	for wid, w := range r.s.st.wallets {
		if w.UserWalletTypeID != nil && *w.UserWalletTypeID == id {
			w.UserWalletTypeID = nil
			r.s.st.wallets[wid] = w
		}
	}
	return nil
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) Create(_ context.Context, c *models.UserCategory) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c.ID = r.s.st.id("user_categories")
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.st.categories[c.ID] = *c
	return nil
}

func (r categoryRepo) GetOwned(_ context.Context, userID, id uint) (*models.UserCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.st.categories[id]
	if !ok || c.UserID != userID {
		return nil, repositories.ErrCategoryNotFound
	}
	return &c, nil
}

func (r categoryRepo) ListByUser(_ context.Context, userID uint, txType *models.TransactionType) ([]models.UserCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []models.UserCategory
	for _, c := range r.s.st.categories {
		if c.UserID != userID || (txType != nil && c.Type != *txType) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r categoryRepo) Update(_ context.Context, c *models.UserCategory) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.categories[c.ID]
	if !ok || stored.UserID != c.UserID {
		return repositories.ErrCategoryNotFound
	}
	stored.Name = c.Name
	stored.Type = c.Type
	stored.Icon = c.Icon
	stored.UpdatedAt = r.s.now()
	r.s.st.categories[c.ID] = stored
	return nil
}

func (r categoryRepo) Delete(_ context.Context, userID, id uint) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.st.categories[id]
	if !ok || c.UserID != userID {
		return repositories.ErrCategoryNotFound
	}
	for _, tx := range r.s.st.transactions {
		if tx.CategoryID == id {
			return repositories.ErrForeignKeyViolation
		}
	}
	delete(r.s.st.categories, id)
	return nil
}

type transactionRepo struct{ s *Store }

func (r transactionRepo) Create(_ context.Context, tx *models.Transaction) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.faults.take(OpTransactionCreate); err != nil {
		return err
	}
	if err := r.s.checkRefs(tx); err != nil {
		return err
	}
	tx.ID = r.s.st.id("transactions")
	tx.CreatedAt = r.s.now()
	tx.UpdatedAt = tx.CreatedAt
	r.s.st.transactions[tx.ID] = bare(*tx)
	return nil
}

func (r transactionRepo) Update(_ context.Context, tx *models.Transaction) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.faults.take(OpTransactionUpdate); err != nil {
		return err
	}
	stored, ok := r.s.st.transactions[tx.ID]
	if !ok || stored.UserID != tx.UserID {
		return repositories.ErrTransactionNotFound
	}
	if err := r.s.checkRefs(tx); err != nil {
		return err
	}
	tx.CreatedAt = stored.CreatedAt
	tx.UpdatedAt = r.s.now()
	r.s.st.transactions[tx.ID] = bare(*tx)
	return nil
}

func (r transactionRepo) Delete(_ context.Context, userID, id uint) error {
	defer r.s.write()()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.faults.take(OpTransactionDelete); err != nil {
		return err
	}
	tx, ok := r.s.st.transactions[id]
	if !ok || tx.UserID != userID {
		return repositories.ErrTransactionNotFound
	}
	delete(r.s.st.transactions, id)
	return nil
}

func (r transactionRepo) GetOwned(_ context.Context, userID, id uint) (*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx, ok := r.s.st.transactions[id]
	if !ok || tx.UserID != userID {
		return nil, repositories.ErrTransactionNotFound
	}
	return r.s.withRelations(tx), nil
}

func (r transactionRepo) LockOwned(_ context.Context, userID, id uint) (*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx, ok := r.s.st.transactions[id]
	if !ok || tx.UserID != userID {
		return nil, repositories.ErrTransactionNotFound
	}
	return &tx, nil
}

func (r transactionRepo) List(_ context.Context, f repositories.TransactionFilter) ([]models.Transaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []models.Transaction
	for _, tx := range r.s.st.transactions {
		if matches(tx, f) {
			matched = append(matched, tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.TransactionDate.Equal(b.TransactionDate.Time) {
			return a.TransactionDate.After(b.TransactionDate.Time)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	total := int64(len(matched))
	start := f.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}

	page := make([]models.Transaction, 0, end-start)
	for _, tx := range matched[start:end] {
		page = append(page, *r.s.withRelations(tx))
	}
	return page, total, nil
}

func (r transactionRepo) SumByType(_ context.Context, userID uint, txType models.TransactionType, start, end models.Date) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.faults.take(OpTransactionSum); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, tx := range r.s.st.transactions {
		if tx.UserID != userID || tx.Type != txType {
			continue
		}
		if tx.TransactionDate.Before(start.Time) || tx.TransactionDate.After(end.Time) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}

func (r transactionRepo) CountByWallet(_ context.Context, walletID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, tx := range r.s.st.transactions {
		if tx.WalletID == walletID {
			n++
		}
	}
	return n, nil
}

func (r transactionRepo) CountByCategory(_ context.Context, categoryID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, tx := range r.s.st.transactions {
		if tx.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// checkRefs must be called with mu held.
func (s *Store) checkRefs(tx *models.Transaction) error {
	if _, ok := s.st.wallets[tx.WalletID]; !ok {
		return repositories.ErrForeignKeyViolation
	}
	if _, ok := s.st.categories[tx.CategoryID]; !ok {
		return repositories.ErrForeignKeyViolation
	}
	return nil
}

// withRelations must be called with mu held.
func (s *Store) withRelations(tx models.Transaction) *models.Transaction {
	if w, ok := s.st.wallets[tx.WalletID]; ok {
		tx.Wallet = &w
	}
	if c, ok := s.st.categories[tx.CategoryID]; ok {
		tx.Category = &c
	}
	return &tx
}

func bare(tx models.Transaction) models.Transaction {
	tx.Wallet = nil
	tx.Category = nil
	return tx
}

func matches(tx models.Transaction, f repositories.TransactionFilter) bool {
	if tx.UserID != f.UserID {
		return false
	}
	if f.StartDate != nil && tx.TransactionDate.Before(f.StartDate.Time) {
		return false
	}
	if f.EndDate != nil && tx.TransactionDate.After(f.EndDate.Time) {
		return false
	}
	if f.Type != nil && tx.Type != *f.Type {
		return false
	}
	if f.WalletID != nil && tx.WalletID != *f.WalletID {
		return false
	}
	return true
}
