// Package events fans the system's lifecycle, settlement and achievement
// messages out to the configured brokers. Services call it only through
// on-commit hooks, so nothing is ever published for an aborted operation.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"credverify/internal/pkg/logger"
	"credverify/internal/pkg/models"
)

// LifecyclePublisher is the Pub/Sub surface used for loan lifecycle, score
// and achievement messages.
type LifecyclePublisher interface {
	PublishMessage(ctx context.Context, message any) (string, error)
}

// SettlementPublisher is the Kafka surface used for payment settlements.
type SettlementPublisher interface {
	PublishSettlement(ctx context.Context, event models.SettlementEventMessage) error
}

// Publisher tolerates missing brokers: a nil client turns that stream into a
// logged no-op, which keeps local bring-up possible without cloud access.
type Publisher struct {
	lifecycle   LifecyclePublisher
	achievement LifecyclePublisher
	settlement  SettlementPublisher
}

func NewPublisher(lifecycle, achievement LifecyclePublisher, settlement SettlementPublisher) *Publisher {
	return &Publisher{
		lifecycle:   lifecycle,
		achievement: achievement,
		settlement:  settlement,
	}
}

func (p *Publisher) PublishLoanEvent(ctx context.Context, event models.LoanEventMessage) {
	if p.lifecycle == nil {
		logger.CtxDebug(ctx, "lifecycle publisher not configured, dropping event",
			slog.String("event_type", event.EventType))
		return
	}
	if _, err := p.lifecycle.PublishMessage(ctx, event); err != nil {
		logger.CtxError(ctx, "failed to publish loan event", err,
			slog.String("event_type", event.EventType),
			slog.Uint64("loan_id", event.LoanID))
	}
}

func (p *Publisher) PublishSettlementEvent(ctx context.Context, event models.SettlementEventMessage) {
	if p.settlement == nil {
		logger.CtxDebug(ctx, "settlement publisher not configured, dropping event",
			slog.Uint64("loan_id", event.LoanID))
		return
	}
	if err := p.settlement.PublishSettlement(ctx, event); err != nil {
		logger.CtxError(ctx, "failed to publish settlement event", err,
			slog.Uint64("loan_id", event.LoanID))
	}
}

// Issue requests issuance of the non-transferable achievement record for a
// completed loan and returns the new record id.
func (p *Publisher) Issue(ctx context.Context, owner string, loanID uint64, finalScore int64, metadataRef string) (string, error) {
	recordID := uuid.New().String()
	message := models.AchievementIssueMessage{
		RecordID:    recordID,
		Owner:       owner,
		LoanID:      loanID,
		FinalScore:  finalScore,
		MetadataRef: metadataRef,
		Timestamp:   time.Now().UTC(),
	}
	if p.achievement == nil {
		logger.CtxDebug(ctx, "achievement publisher not configured, dropping issuance",
			slog.Uint64("loan_id", loanID))
		return recordID, nil
	}
	if _, err := p.achievement.PublishMessage(ctx, message); err != nil {
		return "", err
	}
	return recordID, nil
}
