package gateway

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/mealshop/pkg/models"
)

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	List(ctx context.Context, exclude primitive.ObjectID, page, limit int) ([]models.User, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, username, email, role string) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	MarkVerified(ctx context.Context, email string) (bool, error)
}

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	FindByName(ctx context.Context, name string) (*models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
	List(ctx context.Context, page, limit int) ([]models.Product, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type PackageStore interface {
	Insert(ctx context.Context, p *models.Package) error
	FindByName(ctx context.Context, name string) (*models.Package, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Package, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Package, error)
	List(ctx context.Context, page, limit int) ([]models.Package, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, p *models.Package, include []primitive.ObjectID) (*models.Package, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	PullProduct(ctx context.Context, productID primitive.ObjectID) (int64, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindOutstanding(ctx context.Context, userID primitive.ObjectID) (*models.Order, error)
	List(ctx context.Context, page, limit int) ([]models.Order, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	UpdateProgress(ctx context.Context, id primitive.ObjectID, progress string) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type DashboardStore interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type OTPStore interface {
	SaveOTP(ctx context.Context, email, codeHash string, ttl time.Duration) error
	OTPHash(ctx context.Context, email string) (string, error)
	DropOTP(ctx context.Context, email string) error
}
