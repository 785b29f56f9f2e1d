package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/mocks"
)

func TestLogAction(t *testing.T) {
	var stored *audit.AuditLog
	repo := &mocks.AuditRepositoryMock{CreateFn: func(ctx context.Context, l *audit.AuditLog) error { stored = l; return nil }}
	svc := impl.NewAuditService(repo, nil)
	tenantID, propertyID := uuid.New(), uuid.New()

	err := svc.LogAction(context.Background(), &audit.CreateAuditLogRequest{
		TenantID:   &tenantID,
		ActorID:    &tenantID,
		ActorRole:  "owner",
		Action:     audit.ActionDelete,
		Resource:   audit.ResourceProperty,
		ResourceID: &propertyID,
		IPAddress:  "10.0.0.1",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "delete", stored.Action)
	assert.Equal(t, "property", stored.Resource)
	assert.Equal(t, &propertyID, stored.ResourceID)
	assert.False(t, stored.Timestamp.IsZero())
}

func TestLogAction_Error(t *testing.T) {
	repo := &mocks.AuditRepositoryMock{CreateFn: func(ctx context.Context, l *audit.AuditLog) error { return errors.New("insert failed") }}
	svc := impl.NewAuditService(repo, nil)

	err := svc.LogAction(context.Background(), &audit.CreateAuditLogRequest{Action: audit.ActionLogin, Resource: audit.ResourceSession})
	assert.EqualError(t, err, "insert failed")
}

func TestGetAuditLogs_DefaultsLimit(t *testing.T) {
	var got *audit.AuditLogFilter
	repo := &mocks.AuditRepositoryMock{
		ListFn: func(ctx context.Context, f *audit.AuditLogFilter) ([]*audit.AuditLog, error) {
			got = f
			return []*audit.AuditLog{{ID: uuid.New()}}, nil
		},
		CountFn: func(ctx context.Context, f *audit.AuditLogFilter) (int, error) { return 7, nil },
	}
	svc := impl.NewAuditService(repo, nil)

	logs, total, err := svc.GetAuditLogs(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, 7, total)
	assert.Equal(t, 100, got.Limit)

	_, _, err = svc.GetAuditLogs(context.Background(), &audit.AuditLogFilter{Limit: 10000})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Limit)
}

func TestPruneAuditLogs(t *testing.T) {
	var cutoff time.Time
	repo := &mocks.AuditRepositoryMock{DeleteBeforeFn: func(ctx context.Context, c time.Time) (int64, error) {
		cutoff = c
		return 12, nil
	}}
	svc := impl.NewAuditService(repo, nil)

	n, err := svc.PruneAuditLogs(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.WithinDuration(t, time.Now().Add(-90*24*time.Hour), cutoff, time.Minute)

	_, err = svc.PruneAuditLogs(context.Background(), time.Hour)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
