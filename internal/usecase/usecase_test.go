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

var serverNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedEmployee(db *repotest.DB, name, reg string, active bool) model.Employee {
	return db.Employee(name, reg, active, serverNow.Add(-48*time.Hour))
}

func requireCode(t *testing.T, err error, code string) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.From(err)
	assert.Equal(t, code, appErr.Code, "error: %v", err)
	return appErr
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name          string
		limit, offset int
		want          Page
	}{
		{"defaults", 0, 0, Page{Limit: 100, Offset: 0}},
		{"negative limit", -5, 0, Page{Limit: 1, Offset: 0}},
		{"above max", 5000, 10, Page{Limit: 1000, Offset: 10}},
		{"negative offset", 20, -3, Page{Limit: 20, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPage(tt.limit, tt.offset))
		})
	}
}

func TestParseCheckDate(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"2026-03-01T08:00:00", "2026-03-01 08:00:00", true},
		{"2026-03-01 08:00:00", "2026-03-01 08:00:00", true},
		{"2026-03-01T08:00", "2026-03-01 08:00:00", true},
		{"2026-03-01T08:00:00.750", "2026-03-01 08:00:00", true},
		{"2026-03-01T13:00:00Z", "2026-03-01 08:00:00", true},
		{"2026-03-01T08:00:00-05:00", "2026-03-01 08:00:00", true},
		{"01/03/2026 08:00", "", false},
		{"2026-13-01T08:00:00", "", false},
		{"yesterday", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCheckDate(tt.raw, bogota)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(model.CheckDateLayout))
			assert.Equal(t, bogota, got.Location())
		})
	}
}

func TestSyncRecorder_FailureIsSwallowed(t *testing.T) {
	st := &brokenLogStore{Store: repotest.Open(t, nil).Store}
	log, logs := observedLogger()

	rec := syncRecorder{store: st, log: log}
	rec.failure(context.Background(), model.SyncLog{SyncType: model.SyncTypeEmployees}, assert.AnError)

	require.Equal(t, 1, logs.FilterMessage("could not record failed sync").Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Equal(t, assert.AnError.Error(), entry.ContextMap()["cause"])
}
