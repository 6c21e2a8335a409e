// Command seed creates a demo account with categories, wallets and a few
// transactions. Run with -fresh to roll the schema back and reapply it first.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"catatuang/internal/config"
	apperrors "catatuang/internal/errors"
	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/repositories/cache"
	"catatuang/internal/services/auth"
	"catatuang/internal/services/category"
	"catatuang/internal/services/transaction"
	"catatuang/internal/services/wallet"
	"catatuang/internal/services/wallettype"
	"catatuang/internal/utils"

	"github.com/shopspring/decimal"
)

const (
	demoName     = "Demo User"
	demoEmail    = "demo@catatuang.com"
	demoPassword = "password123"
)

func main() {
	fresh := flag.Bool("fresh", false, "roll back and reapply every migration before seeding")
	flag.Parse()

	config.LoadEnv()
	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:     logger.ParseLevel(cfg.LogLevel),
		Component: logger.ComponentSeed,
	})

	if err := run(context.Background(), cfg, *fresh, log); err != nil {
		log.Error("seeding failed", logger.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, fresh bool, log *logger.Logger) error {
	if fresh {
		log.Info("resetting database")
		if err := repositories.ResetDatabase(cfg.Database.URL()); err != nil {
			return err
		}
	} else if err := repositories.RunMigrations(cfg.Database.URL()); err != nil {
		return err
	}

	db, err := repositories.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "seed"
	}
	ledger := repositories.NewLedger(db)
	userRepo := repositories.NewUserRepository(db, cache.Noop{}, log)
	authService := auth.NewService(userRepo, utils.NewTokenManager(secret, time.Hour), log)

	session, err := authService.Register(ctx, auth.RegisterInput{
		Name:                 demoName,
		Email:                demoEmail,
		Password:             demoPassword,
		PasswordConfirmation: demoPassword,
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation || errors.Is(err, apperrors.ErrEmailTaken) {
			log.Info("demo account already exists", "email", demoEmail)
			return nil
		}
		return err
	}
	userID := session.User.ID

	categories := category.NewService(ledger, log)
	categoryIDs := make(map[string]uint)
	for _, in := range []category.Input{
		{Name: "Gaji", Type: models.TransactionTypeIncome, Icon: icon("briefcase")},
		{Name: "Bonus", Type: models.TransactionTypeIncome, Icon: icon("gift")},
		{Name: "Makanan", Type: models.TransactionTypeExpense, Icon: icon("utensils")},
		{Name: "Transportasi", Type: models.TransactionTypeExpense, Icon: icon("car")},
		{Name: "Belanja", Type: models.TransactionTypeExpense, Icon: icon("shopping-bag")},
		{Name: "Tagihan", Type: models.TransactionTypeExpense, Icon: icon("file-text")},
	} {
		c, err := categories.Create(ctx, userID, in)
		if err != nil {
			return err
		}
		categoryIDs[c.Name] = c.ID
	}

	walletTypes := wallettype.NewService(ledger.WalletTypes(), log)
	typeIDs := make(map[string]uint)
	for _, in := range []wallettype.Input{
		{Name: "Bank", Icon: icon("landmark")},
		{Name: "E-Wallet", Icon: icon("smartphone")},
		{Name: "Tunai", Icon: icon("wallet")},
	} {
		wt, err := walletTypes.Create(ctx, userID, in)
		if err != nil {
			return err
		}
		typeIDs[wt.Name] = wt.ID
	}

	wallets := wallet.NewService(ledger, cache.Noop{}, log)
	walletIDs := make(map[string]uint)
	for _, w := range []struct {
		name, kind, balance string
	}{
		{"BCA", "Bank", "5000000"},
		{"GoPay", "E-Wallet", "250000"},
		{"Dompet", "Tunai", "100000"},
	} {
		typeID := typeIDs[w.kind]
		balance := decimal.RequireFromString(w.balance)
		created, err := wallets.Create(ctx, userID, wallet.CreateInput{
			Name:             w.name,
			UserWalletTypeID: &typeID,
			Balance:          &balance,
		})
		if err != nil {
			return err
		}
		walletIDs[created.Name] = created.ID
	}

	// Transactions go through the ledger so the opening balances move with them.
	transactions := transaction.NewService(ledger, cache.Noop{}, nil, log)
	today := models.DateOf(time.Now())
	for _, t := range []struct {
		wallet, category, amount, description string
		txType                                models.TransactionType
	}{
		{"BCA", "Gaji", "8000000", "Gaji bulanan", models.TransactionTypeIncome},
		{"GoPay", "Makanan", "45000", "Makan siang", models.TransactionTypeExpense},
		{"BCA", "Tagihan", "350000", "Listrik", models.TransactionTypeExpense},
	} {
		description := t.description
		if _, err := transactions.Create(ctx, userID, transaction.Input{
			WalletID:        walletIDs[t.wallet],
			CategoryID:      categoryIDs[t.category],
			Amount:          decimal.RequireFromString(t.amount),
			Description:     &description,
			TransactionDate: today,
			Type:            t.txType,
		}); err != nil {
			return err
		}
	}

	log.Info("demo account seeded", "email", demoEmail)
	return nil
}

func icon(name string) *string {
	return &name
}
