package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"credverify/internal/pkg/models"
)

type MockLifecyclePublisher struct {
	mock.Mock
}

func (m *MockLifecyclePublisher) PublishMessage(ctx context.Context, message any) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

type MockSettlementPublisher struct {
	mock.Mock
}

func (m *MockSettlementPublisher) PublishSettlement(ctx context.Context, event models.SettlementEventMessage) error {
	return m.Called(ctx, event).Error(0)
}

func TestPublishLoanEvent(t *testing.T) {
	lifecycle := &MockLifecyclePublisher{}
	lifecycle.On("PublishMessage", mock.Anything, mock.Anything).Return("msg-1", nil)
	publisher := NewPublisher(lifecycle, nil, nil)

	publisher.PublishLoanEvent(context.Background(), models.LoanEventMessage{
		EventType: models.EventLoanCreated,
		LoanID:    1,
	})
	lifecycle.AssertNumberOfCalls(t, "PublishMessage", 1)
}

func TestPublishLoanEventDropsWithoutBroker(t *testing.T) {
	publisher := NewPublisher(nil, nil, nil)

	// Must not panic, the event is logged and dropped.
	publisher.PublishLoanEvent(context.Background(), models.LoanEventMessage{EventType: models.EventLoanCreated})
}

func TestPublishLoanEventSwallowsBrokerError(t *testing.T) {
	lifecycle := &MockLifecyclePublisher{}
	lifecycle.On("PublishMessage", mock.Anything, mock.Anything).Return("", errors.New("broker down"))
	publisher := NewPublisher(lifecycle, nil, nil)

	publisher.PublishLoanEvent(context.Background(), models.LoanEventMessage{EventType: models.EventLoanCreated})
	lifecycle.AssertExpectations(t)
}

func TestPublishSettlementEvent(t *testing.T) {
	settlement := &MockSettlementPublisher{}
	event := models.SettlementEventMessage{LoanID: 7, AmountPulled: 108}
	settlement.On("PublishSettlement", mock.Anything, event).Return(nil)
	publisher := NewPublisher(nil, nil, settlement)

	publisher.PublishSettlementEvent(context.Background(), event)
	settlement.AssertExpectations(t)
}

func TestIssuePublishesAchievementMessage(t *testing.T) {
	achievement := &MockLifecyclePublisher{}
	achievement.On("PublishMessage", mock.Anything, mock.MatchedBy(func(message any) bool {
		msg, ok := message.(models.AchievementIssueMessage)
		return ok && msg.Owner == "alice" && msg.LoanID == 7 && msg.FinalScore == 426 && msg.RecordID != ""
	})).Return("msg-1", nil)
	publisher := NewPublisher(nil, achievement, nil)

	recordID, err := publisher.Issue(context.Background(), "alice", 7, 426, "loans/7")
	require.NoError(t, err)
	assert.NotEmpty(t, recordID)
	achievement.AssertExpectations(t)
}

func TestIssueWithoutBrokerStillReturnsRecordID(t *testing.T) {
	publisher := NewPublisher(nil, nil, nil)

	recordID, err := publisher.Issue(context.Background(), "alice", 7, 426, "loans/7")
	require.NoError(t, err)
	assert.NotEmpty(t, recordID)
}

func TestIssuePropagatesBrokerError(t *testing.T) {
	achievement := &MockLifecyclePublisher{}
	achievement.On("PublishMessage", mock.Anything, mock.Anything).Return("", errors.New("broker down"))
	publisher := NewPublisher(nil, achievement, nil)

	_, err := publisher.Issue(context.Background(), "alice", 7, 426, "loans/7")
	assert.Error(t, err)
}
