package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/mealshop/pkg/apperr"
	"github.com/example/mealshop/pkg/config"
)

const (
	collUsers    = "users"
	collProducts = "products"
	collPackages = "packages"
	collOrders   = "orders"
)

type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

func NewMongo(cfg *config.MongoDBConfig) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	return &Mongo{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Users() *UserRepository {
	return &UserRepository{coll: m.database.Collection(collUsers)}
}

func (m *Mongo) Products() *ProductRepository {
	return &ProductRepository{coll: m.database.Collection(collProducts)}
}

func (m *Mongo) Packages() *PackageRepository {
	return &PackageRepository{coll: m.database.Collection(collPackages)}
}

func (m *Mongo) Orders() *OrderRepository {
	return &OrderRepository{coll: m.database.Collection(collOrders)}
}

func (m *Mongo) Dashboard() *DashboardRepository {
	return &DashboardRepository{
		users:    m.database.Collection(collUsers),
		products: m.database.Collection(collProducts),
		packages: m.database.Collection(collPackages),
		orders:   m.database.Collection(collOrders),
	}
}

// ParseID checks the hex shape of a path-supplied id before any lookup.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.MalformedID(id)
	}
	return oid, nil
}

// pageOpts translates 1-based page/limit into find options.
func pageOpts(page, limit int) *options.FindOptions {
	return options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
}
