package service

import (
	"context"
	"testing"
	"time"

	"github.com/pubquiz-fans/site/internal/domain/common/errorz"
	"github.com/pubquiz-fans/site/internal/domain/entity"
	"github.com/pubquiz-fans/site/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()
	storage := &fakeNotificationStorage{}
	service := NewNotificationService(types.Nop(), storage)
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	event := entity.Event{ID: testEventID, Title: "Quiz night #12"}
	mine, err := service.NotifyPromotion(ctx, "alice", event)
	require.NoError(t, err)
	theirs, err := service.NotifyPromotion(ctx, "bob", event)
	require.NoError(t, err)

	t.Run("someone else's notification", func(t *testing.T) {
		err := service.MarkRead(ctx, theirs.ID, "alice")
		assert.ErrorIs(t, err, errorz.ErrNotFound)

		unread, err := service.UnreadCount(ctx, "bob")
		require.NoError(t, err)
		assert.EqualValues(t, 1, unread)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, service.MarkRead(ctx, "nope", "alice"), errorz.ErrNotFound)
	})

	t.Run("own notification", func(t *testing.T) {
		require.NoError(t, service.MarkRead(ctx, mine.ID, "alice"))

		list, err := service.List(ctx, "alice", 0)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].ReadAt)
		assert.Equal(t, now, *list[0].ReadAt)

		require.NoError(t, service.MarkRead(ctx, mine.ID, "alice"))
	})

	t.Run("mark all read", func(t *testing.T) {
		_, err := service.NotifyPromotion(ctx, "bob", event)
		require.NoError(t, err)

		require.NoError(t, service.MarkAllRead(ctx, "bob"))

		unread, err := service.UnreadCount(ctx, "bob")
		require.NoError(t, err)
		assert.Zero(t, unread)
	})

	t.Run("missing ids", func(t *testing.T) {
		assert.ErrorIs(t, service.MarkRead(ctx, "", "alice"), errorz.ErrValidation)
	})
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	storage := &fakeNotificationStorage{}
	service := NewNotificationService(types.Nop(), storage)

	for i := 0; i < 3; i++ {
		_, err := service.NotifyPromotion(ctx, "alice", entity.Event{ID: testEventID, Title: "Quiz"})
		require.NoError(t, err)
	}

	list, err := service.List(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = service.List(ctx, "carol", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
