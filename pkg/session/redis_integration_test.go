//go:build integration
// +build integration

package session_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dukex/projecthub/pkg/models"
	"github.com/dukex/projecthub/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err := container.PortEndpoint(ctx, "6379/tcp", "redis")
	require.NoError(t, err)

	return endpoint + "/0"
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	url := setupRedis(t)

	store, err := session.NewRedisStore(ctx, url, time.Minute, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.HealthCheck(ctx))

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Second)
	sess.Authenticated = true
	sess.Identity = "demo@a360.com"
	sess.LoginAt = &now
	sess.SetReport(&models.GeneratedReport{
		ID:    "r1",
		Kind:  models.ReportKindTranscript,
		Title: "Generated Transcript",
		Body:  "MEDICAL TRANSCRIPT",
	})

	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Authenticated)
	assert.Equal(t, "demo@a360.com", loaded.Identity)
	require.NotNil(t, loaded.LoginAt)
	assert.True(t, now.Equal(*loaded.LoginAt))

	report, ok := loaded.Report(models.ReportKindTranscript)
	require.True(t, ok)
	assert.Equal(t, "MEDICAL TRANSCRIPT", report.Body)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	url := setupRedis(t)

	store, err := session.NewRedisStore(ctx, url, time.Second, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := store.Get(ctx, sess.ID)

		return err != nil
	}, 5*time.Second, 100*time.Millisecond)
}
