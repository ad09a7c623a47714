package payment_guard

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"credverify/internal/pkg/consts"
	"credverify/internal/pkg/logger"
)

const keyPrefix = "credverify:payment_in_progress:"

// PaymentGuardRepository marks a borrower as having a payment in flight so a
// second concurrent payment for the same borrower is rejected instead of
// interleaving. Entries expire on their own in case a crash skips the delete.
type PaymentGuardRepository struct {
	client *redis.Client
}

func NewPaymentGuardRepository(client *redis.Client) *PaymentGuardRepository {
	return &PaymentGuardRepository{client: client}
}

func (r *PaymentGuardRepository) CheckEntryExists(ctx context.Context, borrower string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+borrower).Result()
	if err != nil {
		logger.CtxError(ctx, "Error checking payment in progress", err, slog.String("borrower", borrower))
		return false, err
	}
	return n > 0, nil
}

func (r *PaymentGuardRepository) CreateEntry(ctx context.Context, borrower string, ttl time.Duration) error {
	ok, err := r.client.SetNX(ctx, keyPrefix+borrower, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		logger.CtxError(ctx, "Failed to create payment in progress entry", err, slog.String("borrower", borrower))
		return err
	}
	if !ok {
		return consts.ErrorTransactionInProgress
	}
	logger.CtxDebug(ctx, "Created payment in progress entry", slog.String("borrower", borrower))
	return nil
}

func (r *PaymentGuardRepository) DeleteEntry(ctx context.Context, borrower string) error {
	if err := r.client.Del(ctx, keyPrefix+borrower).Err(); err != nil {
		logger.CtxError(ctx, "Failed to delete payment in progress entry", err, slog.String("borrower", borrower))
		return err
	}
	return nil
}
