package events

import (
	"context"
	"encoding/json"
	"testing"

	"catatuang/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	tx := &models.Transaction{
		ID:       9,
		UserID:   3,
		WalletID: 4,
		Amount:   decimal.RequireFromString("500000"),
		Type:     models.TransactionTypeIncome,
	}

	event := NewEvent(TransactionCreated, tx)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, TransactionCreated, event.Type)
	assert.Equal(t, uint(9), event.TransactionID)
	assert.Equal(t, uint(4), event.WalletID)
	assert.Nil(t, event.PreviousWalletID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestEvent_JSONShape(t *testing.T) {
	prev := uint(2)
	event := NewEvent(TransactionUpdated, &models.Transaction{
		ID:     1,
		Amount: decimal.RequireFromString("12.50"),
		Type:   models.TransactionTypeExpense,
	})
	event.PreviousWalletID = &prev

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "transaction.updated", decoded["type"])
	assert.Equal(t, "12.5", decoded["amount"])
	assert.Equal(t, "expense", decoded["transaction_type"])
	assert.Equal(t, float64(2), decoded["previous_wallet_id"])
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}

func TestAMQPPublisher_HealthCheckWithoutConnection(t *testing.T) {
	p := &AMQPPublisher{}
	assert.Error(t, p.HealthCheck(context.Background()))
	assert.NoError(t, p.Close())
}
