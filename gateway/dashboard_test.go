package gateway

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/mealshop/pkg/models"
)

func TestDashboardRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seedUser(t, models.RoleUser)

	rec, _ := env.do(t, http.MethodPost, "/api/v1/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/dashboard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardSnapshot(t *testing.T) {
	env := newTestEnv(t)
	_, admin := env.seedUser(t, models.RoleAdmin)

	env.dashboard.stats = models.DashboardStats{
		TotalUsers:         7,
		TotalPackages:      3,
		TotalProducts:      12,
		TotalPendingOrders: 2,
		TotalDoneOrders:    5,
		OrderedUsers:       4,
	}
	env.dashboard.stats.ChartData.MonthlyUsers[0] = 3
	env.dashboard.stats.ChartData.MonthlyOrders[11] = 6

	rec, body := env.do(t, http.MethodPost, "/api/v1/dashboard", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(body.Data, &stats))
	assert.Equal(t, int64(7), stats.TotalUsers)
	assert.Equal(t, int64(4), stats.OrderedUsers)

	// both histograms serialize all twelve buckets, zeros included
	assert.Equal(t, int64(3), stats.ChartData.MonthlyUsers[0])
	assert.Equal(t, int64(0), stats.ChartData.MonthlyUsers[1])
	assert.Equal(t, int64(6), stats.ChartData.MonthlyOrders[11])
}
