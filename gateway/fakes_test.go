package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/example/mealshop/pkg/config"
	"github.com/example/mealshop/pkg/models"
)

//
// ---------- in-memory store fakes ----------
//

type fakeUsers struct {
	items []*models.User
}

func (f *fakeUsers) Insert(_ context.Context, u *models.User) error {
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	f.items = append(f.items, u)
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	var out []models.User
	for _, u := range f.items {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUsers) List(_ context.Context, exclude primitive.ObjectID, page, limit int) ([]models.User, int64, error) {
	var all []models.User
	for _, u := range f.items {
		if u.ID != exclude {
			all = append(all, *u)
		}
	}
	return paginate(all, page, limit), int64(len(all)), nil
}

func (f *fakeUsers) Update(_ context.Context, id primitive.ObjectID, username, email, role string) (*models.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			if username != "" {
				u.Username = username
			}
			if email != "" {
				u.Email = email
			}
			if role != "" {
				u.Role = role
			}
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i, u := range f.items {
		if u.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) MarkVerified(_ context.Context, email string) (bool, error) {
	for _, u := range f.items {
		if u.Email == email {
			u.IsVerified = true
			return true, nil
		}
	}
	return false, nil
}

type fakeProducts struct {
	items []*models.Product
}

func (f *fakeProducts) Insert(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	f.items = append(f.items, p)
	return nil
}

func (f *fakeProducts) FindByName(_ context.Context, name string) (*models.Product, error) {
	for _, p := range f.items {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	var out []models.Product
	for _, p := range f.items {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeProducts) List(_ context.Context, page, limit int) ([]models.Product, int64, error) {
	all := make([]models.Product, 0, len(f.items))
	for _, p := range f.items {
		all = append(all, *p)
	}
	return paginate(all, page, limit), int64(len(all)), nil
}

func (f *fakeProducts) Update(_ context.Context, id primitive.ObjectID, in *models.Product) (*models.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			p.Name = in.Name
			p.Price = in.Price
			p.Description = in.Description
			if in.Image != "" {
				p.Image = in.Image
			}
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakePackages struct {
	items []*models.Package
}

func (f *fakePackages) Insert(_ context.Context, p *models.Package) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	f.items = append(f.items, p)
	return nil
}

func (f *fakePackages) FindByName(_ context.Context, name string) (*models.Package, error) {
	for _, p := range f.items {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePackages) FindByID(_ context.Context, id primitive.ObjectID) (*models.Package, error) {
	for _, p := range f.items {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePackages) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Package, error) {
	var out []models.Package
	for _, p := range f.items {
		for _, id := range ids {
			if p.ID == id {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePackages) List(_ context.Context, page, limit int) ([]models.Package, int64, error) {
	all := make([]models.Package, 0, len(f.items))
	for _, p := range f.items {
		all = append(all, *p)
	}
	return paginate(all, page, limit), int64(len(all)), nil
}

func (f *fakePackages) Update(_ context.Context, id primitive.ObjectID, in *models.Package, include []primitive.ObjectID) (*models.Package, error) {
	for _, p := range f.items {
		if p.ID == id {
			p.Name = in.Name
			p.Price = in.Price
			if include != nil {
				p.Include = include
			}
			if in.Image != "" {
				p.Image = in.Image
			}
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePackages) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i, p := range f.items {
		if p.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePackages) PullProduct(_ context.Context, productID primitive.ObjectID) (int64, error) {
	var modified int64
	for _, p := range f.items {
		kept := p.Include[:0]
		removed := false
		for _, id := range p.Include {
			if id == productID {
				removed = true
				continue
			}
			kept = append(kept, id)
		}
		p.Include = kept
		if removed {
			modified++
		}
	}
	return modified, nil
}

type fakeOrders struct {
	items []*models.Order
}

func (f *fakeOrders) Insert(_ context.Context, o *models.Order) error {
	o.ID = primitive.NewObjectID()
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	f.items = append(f.items, o)
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, o := range f.items {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) FindOutstanding(_ context.Context, userID primitive.ObjectID) (*models.Order, error) {
	for _, o := range f.items {
		if o.User == userID && (o.Progress == models.ProgressPending || o.Progress == models.ProgressAccepted) {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) List(_ context.Context, page, limit int) ([]models.Order, int64, error) {
	all := make([]models.Order, 0, len(f.items))
	for _, o := range f.items {
		all = append(all, *o)
	}
	return paginate(all, page, limit), int64(len(all)), nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.items {
		if o.User == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) UpdateProgress(_ context.Context, id primitive.ObjectID, progress string) (*models.Order, error) {
	for _, o := range f.items {
		if o.ID == id {
			o.Progress = progress
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeOrders) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i, o := range f.items {
		if o.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeDashboard struct {
	stats models.DashboardStats
}

func (f *fakeDashboard) Stats(_ context.Context) (*models.DashboardStats, error) {
	cp := f.stats
	return &cp, nil
}

type fakeOTP struct {
	codes map[string]string
}

func (f *fakeOTP) SaveOTP(_ context.Context, email, codeHash string, _ time.Duration) error {
	if f.codes == nil {
		f.codes = map[string]string{}
	}
	f.codes[email] = codeHash
	return nil
}

func (f *fakeOTP) OTPHash(_ context.Context, email string) (string, error) {
	return f.codes[email], nil
}

func (f *fakeOTP) DropOTP(_ context.Context, email string) error {
	delete(f.codes, email)
	return nil
}

func paginate[T any](all []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(all) {
		return []T{}
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

//
// ---------- test harness ----------
//

type testEnv struct {
	gw        *Gateway
	users     *fakeUsers
	products  *fakeProducts
	packages  *fakePackages
	orders    *fakeOrders
	dashboard *fakeDashboard
	otp       *fakeOTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:     &fakeUsers{},
		products:  &fakeProducts{},
		packages:  &fakePackages{},
		orders:    &fakeOrders{},
		dashboard: &fakeDashboard{},
		otp:       &fakeOTP{},
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  time.Hour,
			OTPTTL:    10 * time.Minute,
		},
		Upload: config.UploadConfig{
			Dir:        t.TempDir(),
			MaxSizeMiB: 5,
			PublicPath: "/uploads",
		},
	}

	env.gw = NewGateway(cfg, zap.NewNop(), Stores{
		Users:     env.users,
		Products:  env.products,
		Packages:  env.packages,
		Orders:    env.orders,
		Dashboard: env.dashboard,
		OTP:       env.otp,
	})
	env.gw.SetupRoutes()
	return env
}

// seedUser adds a user directly to the store and returns a bearer token.
func (e *testEnv) seedUser(t *testing.T, role string) (*models.User, string) {
	t.Helper()

	u := &models.User{
		Username: "tester-" + role,
		Email:    role + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, e.users.Insert(context.Background(), u))

	token, err := e.gw.tokens.Issue(u.ID.Hex(), u.Role)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price}
	require.NoError(t, e.products.Insert(context.Background(), p))
	return p
}

func (e *testEnv) seedPackage(t *testing.T, name string, price float64, include ...primitive.ObjectID) *models.Package {
	t.Helper()
	p := &models.Package{Name: name, Price: price, Include: include}
	require.NoError(t, e.packages.Insert(context.Background(), p))
	return p
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.gw.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
			"body: %s", rec.Body.String())
	}
	return rec, env
}
