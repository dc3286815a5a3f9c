package models

// DashboardStats is the snapshot the admin dashboard renders. The monthly
// slices always hold twelve buckets, January first; quiet months stay zero.
type DashboardStats struct {
	TotalUsers         int64     `json:"totalUsers"`
	TotalPackages      int64     `json:"totalPackages"`
	TotalProducts      int64     `json:"totalProducts"`
	TotalPendingOrders int64     `json:"totalPendingOrders"`
	TotalDoneOrders    int64     `json:"totalDoneOrders"`
	OrderedUsers       int64     `json:"orderedUsers"`
	ChartData          ChartData `json:"chartData"`
}

type ChartData struct {
	MonthlyUsers  [12]int64 `json:"monthlyUsers"`
	MonthlyOrders [12]int64 `json:"monthlyOrders"`
}
