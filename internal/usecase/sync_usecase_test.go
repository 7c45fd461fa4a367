package usecase

import (
	"context"
	"testing"
	"time"

	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/model"
	"timeclock-sync/internal/repository/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type steppingClock struct {
	at time.Time
}

func (c *steppingClock) now() time.Time {
	return c.at
}

func (c *steppingClock) advance(d time.Duration) {
	c.at = c.at.Add(d)
}

func newSyncFixture(t *testing.T) (*repotest.DB, *SyncUsecase, *steppingClock) {
	clock := &steppingClock{at: serverNow}
	db := repotest.Open(t, clock.now)
	uc := NewSyncUsecase(db.Store, time.UTC, zap.NewNop()).WithClock(clock.now)
	return db, uc, clock
}

// seedRecent adds active employees modified 1h, 2h, ... before serverNow, in the given order.
func seedRecent(db *repotest.DB, regs ...string) {
	for i, reg := range regs {
		db.Employee(reg, reg, true, serverNow.Add(-time.Duration(i+1)*time.Hour))
	}
}

func registrationNumbers(items []model.EmployeeView) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.RegistrationNumber)
	}
	return out
}

var kiosk = Caller{IP: "10.0.0.20", Subject: "api_user"}

func TestSyncEmployees_FirstThenIncremental(t *testing.T) {
	db, uc, clock := newSyncFixture(t)
	ctx := context.Background()

	seedEmployee(db, "Ana Ruiz", "E001", true)
	luis := seedEmployee(db, "Luis Mora", "E002", true)
	seedEmployee(db, "Old Timer", "E003", false)

	first, err := uc.SyncEmployees(ctx, SyncQuery{}, kiosk)
	require.NoError(t, err)
	assert.True(t, first.IsFirstSync)
	assert.Nil(t, first.LastSync)
	assert.Equal(t, model.SyncTypeEmployees, first.SyncType)
	assert.Equal(t, int64(2), first.TotalCount, "first sync only carries active employees")
	assert.Equal(t, 2, first.Count)
	assert.False(t, first.HasMore)

	clock.advance(time.Minute)
	second, err := uc.SyncEmployees(ctx, SyncQuery{}, kiosk)
	require.NoError(t, err)
	assert.False(t, second.IsFirstSync)
	require.NotNil(t, second.LastSync)
	assert.True(t, second.LastSync.Equal(first.CurrentSync))
	assert.Zero(t, second.Count)
	assert.Zero(t, second.TotalCount)
	assert.Empty(t, second.Items)

	clock.advance(time.Minute)
	db.UpdateEmployee(luis.ID, map[string]any{"active": false})
	clock.advance(time.Minute)

	third, err := uc.SyncEmployees(ctx, SyncQuery{}, kiosk)
	require.NoError(t, err)
	require.Equal(t, 1, third.Count)
	assert.Equal(t, "E002", third.Items[0].RegistrationNumber)
	assert.False(t, third.Items[0].Active, "deactivations are reported once")

	logs := db.SyncLogs()
	require.Len(t, logs, 3)
	for _, l := range logs {
		assert.Equal(t, model.SyncSuccess, l.Status)
		assert.Equal(t, "10.0.0.20", l.SourceIP)
		assert.Equal(t, "api_user", l.Subject)
		assert.Nil(t, l.DeviceID)
		assert.Zero(t, l.PageOffset)
	}
	assert.Equal(t, 2, logs[0].RecordsSynced)
	assert.Nil(t, logs[0].PreviousSyncDate)
	require.NotNil(t, logs[2].PreviousSyncDate)
	assert.True(t, logs[2].PreviousSyncDate.Equal(second.CurrentSync))
}

func TestSyncEmployees_WalksEveryPageOfFirstSync(t *testing.T) {
	db, uc, clock := newSyncFixture(t)
	ctx := context.Background()
	seedRecent(db, "E001", "E002", "E003")
	db.Employee("Gone", "E900", false, serverNow.Add(-time.Hour))

	first, err := uc.SyncEmployees(ctx, SyncQuery{Limit: 2}, kiosk)
	require.NoError(t, err)
	assert.True(t, first.IsFirstSync)
	assert.Equal(t, []string{"E001", "E002"}, registrationNumbers(first.Items))
	assert.Equal(t, int64(3), first.TotalCount)
	assert.True(t, first.HasMore)

	clock.advance(time.Second)
	rest, err := uc.SyncEmployees(ctx, SyncQuery{Limit: 2, Offset: 2}, kiosk)
	require.NoError(t, err)
	assert.True(t, rest.IsFirstSync, "later pages belong to the same first sync")
	assert.Nil(t, rest.LastSync)
	assert.True(t, rest.CurrentSync.Equal(first.CurrentSync))
	assert.Equal(t, []string{"E003"}, registrationNumbers(rest.Items))
	assert.Equal(t, int64(3), rest.TotalCount)
	assert.False(t, rest.HasMore)

	clock.advance(time.Minute)
	next, err := uc.SyncEmployees(ctx, SyncQuery{Limit: 2}, kiosk)
	require.NoError(t, err)
	assert.False(t, next.IsFirstSync)
	require.NotNil(t, next.LastSync)
	assert.True(t, next.LastSync.Equal(first.CurrentSync), "the cycle start is the next watermark")
	assert.Zero(t, next.Count)

	logs := db.SyncLogs()
	require.Len(t, logs, 3)
	assert.Equal(t, []int{0, 2, 0}, []int{logs[0].PageOffset, logs[1].PageOffset, logs[2].PageOffset})
	assert.Nil(t, logs[1].PreviousSyncDate)
}

func TestSyncEmployees_ChangesDuringCycleAreNotLost(t *testing.T) {
	db, uc, clock := newSyncFixture(t)
	ctx := context.Background()
	seedRecent(db, "E001", "E002", "E003")
	e002, err := db.Store.Employees().FindByRegistrationNumber(ctx, "E002")
	require.NoError(t, err)

	delivered := map[string]bool{}
	page, err := uc.SyncEmployees(ctx, SyncQuery{Limit: 1}, kiosk)
	require.NoError(t, err)
	for _, reg := range registrationNumbers(page.Items) {
		delivered[reg] = true
	}

	// deactivated before its page was fetched
	clock.advance(time.Second)
	db.UpdateEmployee(e002.ID, map[string]any{"active": false})

	for offset := 1; page.HasMore; offset++ {
		clock.advance(time.Second)
		page, err = uc.SyncEmployees(ctx, SyncQuery{Limit: 1, Offset: offset}, kiosk)
		require.NoError(t, err)
		for _, reg := range registrationNumbers(page.Items) {
			delivered[reg] = true
		}
	}

	clock.advance(time.Minute)
	next, err := uc.SyncEmployees(ctx, SyncQuery{}, kiosk)
	require.NoError(t, err)
	require.Equal(t, []string{"E002"}, registrationNumbers(next.Items))
	assert.False(t, next.Items[0].Active)
	delivered["E002"] = true

	assert.Equal(t, map[string]bool{"E001": true, "E002": true, "E003": true}, delivered)
}

func TestSyncEmployees_StreamsAreIndependent(t *testing.T) {
	db, uc, clock := newSyncFixture(t)
	ctx := context.Background()
	seedEmployee(db, "Ana Ruiz", "E001", true)

	deviceA, deviceB := "kiosk-a", "kiosk-b"

	_, err := uc.SyncEmployees(ctx, SyncQuery{DeviceID: &deviceA}, kiosk)
	require.NoError(t, err)
	clock.advance(time.Minute)

	b, err := uc.SyncEmployees(ctx, SyncQuery{DeviceID: &deviceB}, kiosk)
	require.NoError(t, err)
	assert.True(t, b.IsFirstSync)
	assert.Equal(t, 1, b.Count)

	global, err := uc.SyncEmployees(ctx, SyncQuery{}, kiosk)
	require.NoError(t, err)
	assert.True(t, global.IsFirstSync)

	again, err := uc.SyncEmployees(ctx, SyncQuery{DeviceID: &deviceA}, kiosk)
	require.NoError(t, err)
	assert.False(t, again.IsFirstSync)
	assert.Zero(t, again.Count)
}

func TestSyncEmployees_FullAndSince(t *testing.T) {
	db, uc, clock := newSyncFixture(t)
	ctx := context.Background()
	seedRecent(db, "E001", "E002", "E003")

	_, err := uc.SyncEmployees(ctx, SyncQuery{}, kiosk)
	require.NoError(t, err)

	clock.advance(time.Minute)
	full, err := uc.SyncEmployees(ctx, SyncQuery{Full: true, Limit: 2}, kiosk)
	require.NoError(t, err)
	assert.Equal(t, model.SyncTypeFull, full.SyncType)
	assert.False(t, full.IsFirstSync)
	assert.Equal(t, int64(3), full.TotalCount)
	assert.Equal(t, []string{"E001", "E002"}, registrationNumbers(full.Items))

	clock.advance(time.Second)
	rest, err := uc.SyncEmployees(ctx, SyncQuery{Limit: 2, Offset: 2}, kiosk)
	require.NoError(t, err)
	assert.Equal(t, model.SyncTypeFull, rest.SyncType, "later pages follow the cycle's full flag")
	assert.Equal(t, []string{"E003"}, registrationNumbers(rest.Items))

	clock.advance(time.Second)
	since, err := uc.SyncEmployees(ctx, SyncQuery{Since: "2026-03-01T07:30:00"}, kiosk)
	require.NoError(t, err)
	assert.False(t, since.IsFirstSync)
	assert.Equal(t, []string{"E001"}, registrationNumbers(since.Items))

	_, err = uc.SyncEmployees(ctx, SyncQuery{Since: "soon"}, kiosk)
	requireCode(t, err, apperror.CodeInvalidParameter)
	logs := db.SyncLogs()
	assert.Equal(t, model.SyncError, logs[len(logs)-1].Status)
}

func TestSyncEmployees_FailureIsLogged(t *testing.T) {
	st := &brokenLogStore{Store: repotest.Open(t, nil).Store, failListing: true}
	log, logs := observedLogger()
	uc := NewSyncUsecase(st, time.UTC, log).WithClock(fixedClock(serverNow))

	_, err := uc.SyncEmployees(context.Background(), SyncQuery{}, kiosk)
	require.ErrorIs(t, err, errListDown, "the original error wins over the log failure")
	assert.Equal(t, 1, logs.FilterMessage("could not record failed sync").Len())
}

func TestListSyncLogs(t *testing.T) {
	db, uc, clock := newSyncFixture(t)
	ctx := context.Background()
	seedEmployee(db, "Ana Ruiz", "E001", true)
	device := "kiosk-1"

	for i := 0; i < 3; i++ {
		_, err := uc.SyncEmployees(ctx, SyncQuery{DeviceID: &device}, kiosk)
		require.NoError(t, err)
		clock.advance(time.Minute)
	}
	_, err := uc.SyncEmployees(ctx, SyncQuery{}, kiosk)
	require.NoError(t, err)

	page, err := uc.ListLogs(ctx, SyncLogQuery{DeviceID: &device, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.True(t, page.Items[0].SyncDate.After(page.Items[1].SyncDate))

	page, err = uc.ListLogs(ctx, SyncLogQuery{Status: model.SyncError})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.NotNil(t, page.Items)
}
