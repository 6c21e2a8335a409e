package repositories

import (
	"context"
	"fmt"
	"time"

	"catatuang/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", translateError(err, ErrTransactionNotFound))
	}
	return nil
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	tx.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", tx.ID, tx.UserID).
		Updates(map[string]interface{}{
			"wallet_id":        tx.WalletID,
			"category_id":      tx.CategoryID,
			"amount":           tx.Amount,
			"description":      tx.Description,
			"transaction_date": tx.TransactionDate,
			"type":             tx.Type,
			"updated_at":       tx.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", translateError(result.Error, ErrTransactionNotFound))
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) GetOwned(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Wallet").
		Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) LockOwned(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}
	return &tx, nil
}

func filterScope(f TransactionFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("user_id = ?", f.UserID)
		if f.StartDate != nil {
			db = db.Where("transaction_date >= ?", *f.StartDate)
		}
		if f.EndDate != nil {
			db = db.Where("transaction_date <= ?", *f.EndDate)
		}
		if f.Type != nil {
			db = db.Where("type = ?", *f.Type)
		}
		if f.WalletID != nil {
			db = db.Where("wallet_id = ?", *f.WalletID)
		}
		return db
	}
}

func (r *transactionRepository) List(ctx context.Context, filter TransactionFilter) ([]models.Transaction, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Scopes(filterScope(filter)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Scopes(filterScope(filter)).
		Preload("Wallet").
		Preload("Category").
		Order("transaction_date DESC, created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&transactions).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

func (r *transactionRepository) SumByType(ctx context.Context, userID uint, txType models.TransactionType, start, end models.Date) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND type = ? AND transaction_date BETWEEN ? AND ?", userID, txType, start, end).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s transactions: %w", txType, err)
	}
	return total, nil
}

func (r *transactionRepository) CountByWallet(ctx context.Context, walletID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("wallet_id = ?", walletID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count wallet transactions: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}
	return count, nil
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.UserCategory) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translateError(err, ErrCategoryNotFound))
	}
	return nil
}

func (r *categoryRepository) GetOwned(ctx context.Context, userID, id uint) (*models.UserCategory, error) {
	var category models.UserCategory
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&category).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) ListByUser(ctx context.Context, userID uint, txType *models.TransactionType) ([]models.UserCategory, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if txType != nil {
		query = query.Where("type = ?", *txType)
	}

	var categories []models.UserCategory
	if err := query.Order("type ASC, name ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.UserCategory) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserCategory{}).
		Where("id = ? AND user_id = ?", category.ID, category.UserID).
		Updates(map[string]interface{}{
			"name": category.Name,
			"type": category.Type,
			"icon": category.Icon,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.UserCategory{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", translateError(result.Error, ErrCategoryNotFound))
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
