package service

import (
	"context"
	"log/slog"
	"time"

	"toolshare/internal/repository/mysql"

	"gorm.io/gorm"
)

// InviteSweeper 周期性把超期未受理的 Open 邀请置为 Expired
type InviteSweeper struct {
	repo      *mysql.InvitationRepository
	ttl       time.Duration
	batchSize int
	interval  time.Duration
}

func NewInviteSweeper(db *gorm.DB, ref *mysql.RefLookup, ttl time.Duration) *InviteSweeper {
	return &InviteSweeper{
		repo:      &mysql.InvitationRepository{DB: db, Ref: ref},
		ttl:       ttl,
		batchSize: 200,
		interval:  time.Minute,
	}
}

func (s *InviteSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(ctx)
		}
	}
}

func (s *InviteSweeper) sweepOnce(ctx context.Context) {
	cutoff := time.Now().Add(-s.ttl)
	for {
		n, err := s.repo.ExpireOpenBefore(ctx, cutoff, s.batchSize)
		if err != nil {
			slog.Error("invite sweep failed", "error", err)
			return
		}
		if n > 0 {
			slog.Info("expired stale invitations", "count", n)
		}
		if n < int64(s.batchSize) {
			return
		}
	}
}
