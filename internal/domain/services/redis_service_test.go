package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) InterfaceRedisService {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisServiceWithClient(client)
}

func TestRedisPing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewRedisServiceWithClient(client)

	require.NoError(t, svc.Ping())

	// Redis下线后Ping应报错
	mr.Close()
	assert.Error(t, svc.Ping())
}

func TestRedisSetGetDelete(t *testing.T) {
	svc := setupTestRedis(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, svc.Set("test:key", payload{Name: "Room 101", Count: 2}, time.Minute))

	var got payload
	require.NoError(t, svc.Get("test:key", &got))
	assert.Equal(t, "Room 101", got.Name)
	assert.Equal(t, 2, got.Count)

	require.NoError(t, svc.Delete("test:key"))
	assert.Error(t, svc.Get("test:key", &got), "删除后读取应失败")
}

func TestRedisDashboardSummaryRoundTrip(t *testing.T) {
	svc := setupTestRedis(t)

	summary := DashboardSummary{TotalRooms: 3, OccupiedRooms: 2, RevenueMinor: 150000, Revenue: 1500}
	require.NoError(t, svc.CacheDashboardSummary(summary, time.Minute))

	var got DashboardSummary
	require.NoError(t, svc.GetDashboardSummary(&got))
	assert.Equal(t, summary, got)

	require.NoError(t, svc.InvalidateDashboardSummary())
	assert.Error(t, svc.GetDashboardSummary(&got))
}
