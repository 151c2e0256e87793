package db_test

import (
	"context"
	"testing"

	"bidportal/db"
	"bidportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlerts(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	u := createUser(t, s, "Std", "std@x.org", models.RoleStandard, nil)
	bid := createBid(t, s, "B", "X", models.BidOpen, day(0), day(5))

	_, err := s.CreateAlert(ctx, models.NewAlert{UserID: u.ID, Message: " "})
	assert.ErrorIs(t, err, db.ErrEmptyMessage)

	first, err := s.CreateAlert(ctx, models.NewAlert{UserID: u.ID, BidID: &bid, Message: "Bid updated"})
	require.NoError(t, err)
	second, err := s.CreateAlert(ctx, models.NewAlert{UserID: u.ID, Message: "Welcome", Category: "Notice"})
	require.NoError(t, err)

	alerts, err := s.ListAlerts(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, second, alerts[0].ID)
	assert.Equal(t, "Notice", alerts[0].Category)
	assert.Equal(t, first, alerts[1].ID)
	assert.Equal(t, models.DefaultAlertCategory, alerts[1].Category)
	require.NotNil(t, alerts[1].BidID)
	assert.Equal(t, bid, *alerts[1].BidID)
	assert.False(t, bool(alerts[1].Read))

	require.NoError(t, s.MarkAlertRead(ctx, first))
	alerts, err = s.ListAlerts(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, bool(alerts[1].Read))

	assert.ErrorIs(t, s.MarkAlertRead(ctx, 999), db.ErrNotFound)
}

func TestListParticipantsForBid(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()
	bid := createBid(t, s, "B", "X", models.BidOpen, day(0), day(5))
	a := createUser(t, s, "A", "a@x.org", models.RoleStandard, nil)
	b := createUser(t, s, "B", "b@x.org", models.RoleStandard, nil)

	ids, err := s.ListParticipantsForBid(ctx, bid)
	require.NoError(t, err)
	assert.Empty(t, ids)

	for _, u := range []models.User{a, b} {
		_, err := s.JoinBid(ctx, bid, u.ID)
		require.NoError(t, err)
	}
	ids, err = s.ListParticipantsForBid(ctx, bid)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, ids)
}
