package service

import (
	"context"
	"errors"
	"testing"

	"toolshare/internal/model"
	"toolshare/internal/repository/mysql"

	"github.com/stretchr/testify/require"
)

func TestOutboxRelayer_RelayOnce(t *testing.T) {
	db, ref := getTestDatabase(t)
	svc := NewCommunityService(db, ref, nil)

	creator := createTestUser(t, db, "u1@example.com")
	_, err := svc.CreateCommunity(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	var sent []*model.MembershipOutbox
	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.MembershipOutbox) error {
		sent = append(sent, ob)
		return nil
	})
	relayer.relayOnce(context.Background())

	require.Len(t, sent, 1)
	require.Equal(t, "community_created", sent[0].EventType)

	pending, err := (&mysql.OutboxRepository{DB: db}).ListPending(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, pending)

	// 再跑一次不会重复发送
	relayer.relayOnce(context.Background())
	require.Len(t, sent, 1)
}

func TestOutboxRelayer_SendFailure(t *testing.T) {
	db, ref := getTestDatabase(t)
	svc := NewCommunityService(db, ref, nil)

	creator := createTestUser(t, db, "u1@example.com")
	_, err := svc.CreateCommunity(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.MembershipOutbox) error {
		return errors.New("broker down")
	})
	relayer.relayOnce(context.Background())

	var ob model.MembershipOutbox
	require.NoError(t, db.First(&ob).Error)
	require.EqualValues(t, 2, ob.Status)
	require.Equal(t, 1, ob.Retry)
}
