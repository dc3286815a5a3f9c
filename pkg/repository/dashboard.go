package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/mealshop/pkg/models"
)

type DashboardRepository struct {
	users    *mongo.Collection
	products *mongo.Collection
	packages *mongo.Collection
	orders   *mongo.Collection
}

// monthCount is one $group bucket: _id holds the 1-based calendar month.
type monthCount struct {
	Month int64 `bson:"_id"`
	Count int64 `bson:"count"`
}

// Stats recomputes the dashboard snapshot from the live collections.
// Nothing here is cached; every call pays the full aggregation cost.
func (r *DashboardRepository) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	var err error

	if stats.TotalUsers, err = r.users.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalPackages, err = r.packages.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = r.products.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.TotalPendingOrders, err = r.orders.CountDocuments(ctx, bson.M{"progress": models.ProgressPending}); err != nil {
		return nil, err
	}
	if stats.TotalDoneOrders, err = r.orders.CountDocuments(ctx, bson.M{"progress": models.ProgressDone}); err != nil {
		return nil, err
	}

	if stats.OrderedUsers, err = r.countOrderedUsers(ctx); err != nil {
		return nil, err
	}

	userMonths, err := groupByMonth(ctx, r.users, "$createdAt")
	if err != nil {
		return nil, err
	}
	orderMonths, err := groupByMonth(ctx, r.orders, "$orderDate")
	if err != nil {
		return nil, err
	}
	stats.ChartData.MonthlyUsers = fillMonthBuckets(userMonths)
	stats.ChartData.MonthlyOrders = fillMonthBuckets(orderMonths)

	return stats, nil
}

// countOrderedUsers counts distinct users with at least one order.
func (r *DashboardRepository) countOrderedUsers(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user"},
		}}},
		bson.D{{Key: "$count", Value: "orderedUsers"}},
	}

	cursor, err := r.orders.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		OrderedUsers int64 `bson:"orderedUsers"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].OrderedUsers, nil
}

func groupByMonth(ctx context.Context, coll *mongo.Collection, dateField string) ([]monthCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$month", Value: dateField}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []monthCount
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// fillMonthBuckets maps 1-based calendar months onto the fixed 12-slot
// chart array. Months outside 1..12 are discarded.
func fillMonthBuckets(entries []monthCount) [12]int64 {
	var buckets [12]int64
	for _, e := range entries {
		if e.Month < 1 || e.Month > 12 {
			continue
		}
		buckets[e.Month-1] = e.Count
	}
	return buckets
}
