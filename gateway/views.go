package gateway

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/mealshop/pkg/models"
)

// Views are read-time joins: referenced documents' fields substituted into
// the response, never written back to the store.

type productSummary struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type refSummary struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type userSummary struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type packageView struct {
	ID        primitive.ObjectID `json:"id"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Include   []productSummary   `json:"include"`
	Image     string             `json:"image,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type orderItemView struct {
	Product  *refSummary `json:"product,omitempty"`
	Package  *refSummary `json:"package,omitempty"`
	Quantity int         `json:"quantity"`
}

type orderView struct {
	ID          primitive.ObjectID `json:"id"`
	User        *userSummary       `json:"user,omitempty"`
	Items       []orderItemView    `json:"items"`
	TotalAmount float64            `json:"totalAmount"`
	OrderDate   time.Time          `json:"orderDate"`
	Progress    string             `json:"progress"`
	PhoneNumber string             `json:"phoneNumber"`
	WhereToSend string             `json:"whereToSend"`
}

// buildPackageViews resolves every include reference in one batch query.
// Dangling references (a product deleted mid-cascade) are skipped.
func (g *Gateway) buildPackageViews(ctx context.Context, packages []models.Package) ([]packageView, error) {
	var ids []primitive.ObjectID
	for _, p := range packages {
		ids = append(ids, p.Include...)
	}

	products, err := g.products.FindByIDs(ctx, models.DedupeIDs(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	views := make([]packageView, 0, len(packages))
	for _, p := range packages {
		view := packageView{
			ID:        p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Include:   []productSummary{},
			Image:     p.Image,
			CreatedAt: p.CreatedAt,
		}
		for _, id := range p.Include {
			prod, ok := byID[id]
			if !ok {
				continue
			}
			view.Include = append(view.Include, productSummary{
				Name:        prod.Name,
				Price:       prod.Price,
				Description: prod.Description,
			})
		}
		views = append(views, view)
	}
	return views, nil
}

// buildOrderViews resolves user, product and package references for a page
// of orders with one batch query per collection.
func (g *Gateway) buildOrderViews(ctx context.Context, orders []models.Order, withUser bool) ([]orderView, error) {
	var userIDs, productIDs, packageIDs []primitive.ObjectID
	for _, o := range orders {
		userIDs = append(userIDs, o.User)
		for _, item := range o.Items {
			if item.Product != nil {
				productIDs = append(productIDs, *item.Product)
			}
			if item.Package != nil {
				packageIDs = append(packageIDs, *item.Package)
			}
		}
	}

	products, err := g.products.FindByIDs(ctx, models.DedupeIDs(productIDs))
	if err != nil {
		return nil, err
	}
	packages, err := g.packages.FindByIDs(ctx, models.DedupeIDs(packageIDs))
	if err != nil {
		return nil, err
	}

	productsByID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}
	packagesByID := make(map[primitive.ObjectID]models.Package, len(packages))
	for _, p := range packages {
		packagesByID[p.ID] = p
	}

	usersByID := map[primitive.ObjectID]models.User{}
	if withUser {
		users, err := g.users.FindByIDs(ctx, models.DedupeIDs(userIDs))
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		view := orderView{
			ID:          o.ID,
			Items:       []orderItemView{},
			TotalAmount: o.TotalAmount,
			OrderDate:   o.OrderDate,
			Progress:    o.Progress,
			PhoneNumber: o.PhoneNumber,
			WhereToSend: o.WhereToSend,
		}
		if withUser {
			if u, ok := usersByID[o.User]; ok {
				view.User = &userSummary{Username: u.Username, Email: u.Email}
			}
		}
		for _, item := range o.Items {
			iv := orderItemView{Quantity: item.Quantity}
			if item.Product != nil {
				if p, ok := productsByID[*item.Product]; ok {
					iv.Product = &refSummary{Name: p.Name, Price: p.Price}
				}
			}
			if item.Package != nil {
				if p, ok := packagesByID[*item.Package]; ok {
					iv.Package = &refSummary{Name: p.Name, Price: p.Price}
				}
			}
			view.Items = append(view.Items, iv)
		}
		views = append(views, view)
	}
	return views, nil
}
