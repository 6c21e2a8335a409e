package repositories

import (
	"context"
	"fmt"

	"catatuang/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(ctx context.Context, wallet *models.Wallet) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", translateError(err, ErrWalletNotFound))
	}
	return nil
}

func (r *walletRepository) GetOwned(ctx context.Context, userID, id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Preload("WalletType").
		Where("id = ? AND user_id = ?", id, userID).
		First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID uint) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := r.db.WithContext(ctx).
		Preload("WalletType").
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

func (r *walletRepository) Update(ctx context.Context, wallet *models.Wallet) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ? AND user_id = ?", wallet.ID, wallet.UserID).
		Updates(map[string]interface{}{
			"name":                wallet.Name,
			"user_wallet_type_id": wallet.UserWalletTypeID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", translateError(result.Error, ErrWalletNotFound))
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Wallet{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete wallet: %w", translateError(result.Error, ErrWalletNotFound))
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) LockOwned(ctx context.Context, userID, id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) UpdateBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", id).
		Update("balance", balance)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) TotalBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Select("COALESCE(SUM(balance), 0)").
		Where("user_id = ?", userID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum wallet balances: %w", err)
	}
	return total, nil
}

type walletTypeRepository struct {
	db *gorm.DB
}

func NewWalletTypeRepository(db *gorm.DB) WalletTypeRepository {
	return &walletTypeRepository{db: db}
}

func (r *walletTypeRepository) Create(ctx context.Context, walletType *models.UserWalletType) error {
	if err := r.db.WithContext(ctx).Create(walletType).Error; err != nil {
		return fmt.Errorf("failed to create wallet type: %w", translateError(err, ErrWalletTypeNotFound))
	}
	return nil
}

func (r *walletTypeRepository) GetOwned(ctx context.Context, userID, id uint) (*models.UserWalletType, error) {
	var walletType models.UserWalletType
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&walletType).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletTypeNotFound
		}
		return nil, fmt.Errorf("failed to get wallet type: %w", err)
	}
	return &walletType, nil
}

func (r *walletTypeRepository) ListByUser(ctx context.Context, userID uint) ([]models.UserWalletType, error) {
	var walletTypes []models.UserWalletType
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC, id ASC").Find(&walletTypes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet types: %w", err)
	}
	return walletTypes, nil
}

func (r *walletTypeRepository) Update(ctx context.Context, walletType *models.UserWalletType) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserWalletType{}).
		Where("id = ? AND user_id = ?", walletType.ID, walletType.UserID).
		Updates(map[string]interface{}{
			"name": walletType.Name,
			"icon": walletType.Icon,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletTypeNotFound
	}
	return nil
}

func (r *walletTypeRepository) Delete(ctx context.Context, userID, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.UserWalletType{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete wallet type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWalletTypeNotFound
	}
	return nil
}
