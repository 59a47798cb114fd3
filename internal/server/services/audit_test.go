package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit_TwoLoginsTwoEntriesNewestFirst(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "alice")
	root := e.admin(t, "root")

	clock := time.Date(2024, 3, 1, 14, 5, 0, 0, time.UTC)
	e.audit.now = func() time.Time { return clock }
	require.NoError(t, e.audit.RecordLogin(ctx, u.ID, models.RoleUser))
	clock = clock.Add(time.Second)
	require.NoError(t, e.audit.RecordLogin(ctx, u.ID, models.RoleUser))

	got, err := e.audit.GetLoginHistory(ctx, root)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.True(t, got[0].LoginTime.After(got[1].LoginTime))
	assert.Equal(t, "alice", got[0].DisplayName.String)
	assert.Equal(t, "Friday, 01 March 2024 at 02:05 PM", got[1].Formatted(time.UTC))
}

func TestAudit_DeletedUserKeepsEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "alice")
	root := e.admin(t, "root")

	require.NoError(t, e.audit.RecordLogin(ctx, u.ID, models.RoleUser))
	require.NoError(t, e.profiles.DeleteUser(ctx, root, u.ID))

	got, err := e.audit.GetLoginHistory(ctx, root)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, u.ID, got[0].SubjectID)
	assert.False(t, got[0].DisplayName.Valid)
}

func TestAudit_AdminOnlyAndRoleChecked(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "alice")

	_, err := e.audit.GetLoginHistory(ctx, u)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	assert.ErrorIs(t, e.audit.RecordLogin(ctx, u.ID, models.Role("guest")), common.ErrInvalidRole)
}

func TestAudit_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("db error: locked")
	s := NewAuditService(nil, &fakeRepoManager{l: &fakeHistoryRepo{createErr: boom}}, logging.Nop())

	assert.ErrorIs(t, s.RecordLogin(context.Background(), 1, models.RoleAdmin), boom)
}
