package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"toolshare/internal/model"
	"toolshare/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.MembershipOutbox) error

// OutboxRelayer 把待发送的成员事件转发到 kafka
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.relayOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) relayOnce(ctx context.Context) {
	list, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		slog.Error("outbox list failed", "error", err)
		return
	}

	for i := range list {
		ob := &list[i]
		if err := r.sender(ctx, ob); err != nil {
			slog.Warn("outbox send failed", "id", ob.ID, "event", ob.EventType, "error", err)
			if err := r.repo.MarkFailed(ctx, ob.ID); err != nil {
				slog.Error("outbox mark failed error", "id", ob.ID, "error", err)
			}
			continue
		}
		if err := r.repo.MarkSent(ctx, ob.ID); err != nil {
			slog.Error("outbox mark sent error", "id", ob.ID, "error", err)
		}
	}
}

// KafkaSender 默认 sender：payload 原样转发，事件类型进 header
func KafkaSender(producer interface {
	Send(ctx context.Context, communityID uint64, event string, payload json.RawMessage) error
}) Sender {
	return func(ctx context.Context, ob *model.MembershipOutbox) error {
		return producer.Send(ctx, ob.CommunityID, ob.EventType, json.RawMessage(ob.Payload))
	}
}
