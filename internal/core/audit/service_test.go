package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/shared/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(&Event{}))
	return NewService(db.GORM)
}

func TestService_Activity(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	s.Record(ctx, Event{SessionID: "a", Action: ActionLogin})
	s.Record(ctx, Event{SessionID: "a", Action: ActionRoleSelected, Role: "admin", Metadata: Metadata(map[string]string{"role": "admin"})})
	s.Record(ctx, Event{SessionID: "b", Action: ActionLogin})

	report, err := s.Activity(ctx, "all", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), report.Total)
	assert.Equal(t, map[string]int64{ActionLogin: 2, ActionRoleSelected: 1}, report.Actions)
	assert.Len(t, report.Recent, 2)
}

func TestService_AssignsIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	e := &Event{Action: ActionLogout}
	require.NoError(t, s.Log(ctx, e))
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", e.ID.String())

	events, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, e.ID, events[0].ID)
}

func TestMetadata(t *testing.T) {
	assert.Nil(t, Metadata(nil))
	assert.JSONEq(t, `{"a":1}`, string(Metadata(map[string]int{"a": 1})))
	assert.Nil(t, Metadata(func() {}))
}
