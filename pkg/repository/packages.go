package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/mealshop/pkg/models"
)

type PackageRepository struct {
	coll *mongo.Collection
}

func (r *PackageRepository) Insert(ctx context.Context, p *models.Package) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	_, err := r.coll.InsertOne(ctx, p)
	return err
}

func (r *PackageRepository) FindByName(ctx context.Context, name string) (*models.Package, error) {
	var p models.Package
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Package, error) {
	var p models.Package
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Package, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var packages []models.Package
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *PackageRepository) List(ctx context.Context, page, limit int) ([]models.Package, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := pageOpts(page, limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	packages := []models.Package{}
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, 0, err
	}
	return packages, total, nil
}

// Update overwrites name/price and, when include is non-nil, the reference
// list. A nil include preserves whatever the document already holds.
func (r *PackageRepository) Update(ctx context.Context, id primitive.ObjectID, p *models.Package, include []primitive.ObjectID) (*models.Package, error) {
	set := bson.M{
		"name":  p.Name,
		"price": p.Price,
	}
	if include != nil {
		set["include"] = include
	}
	if p.Image != "" {
		set["image"] = p.Image
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *PackageRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// PullProduct removes a deleted product's id from every include list.
// Runs after the product delete; the two steps are not transactional, so a
// failure here leaves dangling references until the next successful pull.
func (r *PackageRepository) PullProduct(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"include": productID},
		bson.M{"$pull": bson.M{"include": productID}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
