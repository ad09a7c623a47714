package producer

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"credverify/internal/pkg/config"
	"credverify/internal/pkg/logger"
	"credverify/internal/pkg/models"
)

type Producer struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaProducer(cfg config.KafkaConfig) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Server,
		"security.protocol":  cfg.SecurityProtocol,
		"sasl.mechanisms":    cfg.SASLMechanism,
		"sasl.username":      cfg.SASLUsername,
		"sasl.password":      cfg.SASLPassword,
		"session.timeout.ms": cfg.SessionTimeoutMs,
		"client.id":          cfg.ClientID,
		"log_level":          0})
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: p,
		topic:    cfg.SettlementTopic,
	}, nil
}

// PublishSettlement produces one settlement event keyed by loan id.
func (p *Producer) PublishSettlement(ctx context.Context, event models.SettlementEventMessage) error {
	value, err := json.Marshal(event)
	if err != nil {
		logger.CtxError(ctx, "failed to marshal settlement event", err)
		return err
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Value:          value,
		Key:            []byte(strconv.FormatUint(event.LoanID, 10)),
	}
	if err := p.producer.Produce(msg, nil); err != nil {
		logger.CtxError(ctx, "failed to produce settlement event", err,
			slog.Uint64("loan_id", event.LoanID))
		return err
	}
	return nil
}

// Flush drains the delivery queue, typically during shutdown.
func (p *Producer) Flush(timeoutMs int) int {
	return p.producer.Flush(timeoutMs)
}

func (p *Producer) Close() {
	p.producer.Close()
}
