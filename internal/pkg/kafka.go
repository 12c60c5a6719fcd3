package pkg

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// MembershipProducer 发送成员变更事件到 kafka
type MembershipProducer struct {
	writer *kafka.Writer
}

func NewMembershipProducer(cfg KafkaConfig) *MembershipProducer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &MembershipProducer{writer: w}
}

func (p *MembershipProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// Send 以社区 id 作为分区键，保证同一社区事件有序
func (p *MembershipProducer) Send(ctx context.Context, communityID uint64, event string, payload json.RawMessage) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatUint(communityID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}
