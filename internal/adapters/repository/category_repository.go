package repository

import (
	"context"
	"time"

	"github.com/devsmahesh/e-commerce-backend-sub001/internal/apperrors"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/models"
	"github.com/devsmahesh/e-commerce-backend-sub001/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// maxCategoryDepth bounds the ancestor-chain walk. A chain longer than this
// means the stored data already contains a cycle (or an absurdly deep tree);
// the walk fails with a data-integrity error instead of looping.
const maxCategoryDepth = 32

type CategoryRepository interface {
	List(ctx context.Context, includeInactive bool) ([]models.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	Create(ctx context.Context, input models.CreateCategoryInput) (models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, input models.UpdateCategoryInput) (models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type MongoCategoryRepository struct {
	DB *mongo.Database
}

func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &MongoCategoryRepository{DB: db}
}

func (r *MongoCategoryRepository) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	collection := r.DB.Collection("categories")
	filter := bson.M{}
	if !includeInactive {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *MongoCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	collection := r.DB.Collection("categories")
	var category models.Category
	if err := collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Category{}, apperrors.NotFound("category not found")
		}
		return models.Category{}, err
	}
	return category, nil
}

func (r *MongoCategoryRepository) Create(ctx context.Context, input models.CreateCategoryInput) (models.Category, error) {
	collection := r.DB.Collection("categories")

	// Fast-path check; the unique index on slug is the authoritative guard.
	if err := ensureSlugFree(ctx, input.Slug, r.slugTaken(primitive.NilObjectID)); err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		Name:      input.Name,
		Slug:      input.Slug,
		Image:     input.Image,
		IsActive:  true,
		Order:     input.Order,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if input.ParentID != "" {
		parentID, err := primitive.ObjectIDFromHex(input.ParentID)
		if err != nil {
			return models.Category{}, apperrors.BadRequest("invalid parent category ID")
		}
		if _, err := r.GetByID(ctx, parentID); err != nil {
			return models.Category{}, apperrors.NotFound("parent category not found")
		}
		category.ParentID = &parentID
	}

	res, err := collection.InsertOne(ctx, category)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Category{}, apperrors.Conflict("category slug already exists")
		}
		return models.Category{}, err
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return category, nil
}

func (r *MongoCategoryRepository) Update(ctx context.Context, id primitive.ObjectID, input models.UpdateCategoryInput) (models.Category, error) {
	collection := r.DB.Collection("categories")

	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Category{}, err
	}

	set := bson.M{"updatedAt": time.Now()}
	unset := bson.M{}

	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Slug != nil && *input.Slug != existing.Slug {
		if err := ensureSlugFree(ctx, *input.Slug, r.slugTaken(id)); err != nil {
			return models.Category{}, err
		}
		set["slug"] = *input.Slug
	}
	if input.ParentID != nil {
		if *input.ParentID == "" {
			// Detach: the category becomes a root.
			unset["parentId"] = ""
		} else {
			parentID, err := primitive.ObjectIDFromHex(*input.ParentID)
			if err != nil {
				return models.Category{}, apperrors.BadRequest("invalid parent category ID")
			}
			if parentID == id {
				return models.Category{}, apperrors.BadRequest("category cannot be its own parent")
			}
			if _, err := r.GetByID(ctx, parentID); err != nil {
				return models.Category{}, apperrors.NotFound("parent category not found")
			}
			isDesc, err := walkAncestors(ctx, parentID, id, r.parentOf)
			if err != nil {
				return models.Category{}, err
			}
			if isDesc {
				return models.Category{}, apperrors.BadRequest("cannot move category under its own descendant")
			}
			set["parentId"] = parentID
		}
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	if _, err := collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Category{}, apperrors.Conflict("category slug already exists")
		}
		return models.Category{}, err
	}

	return r.GetByID(ctx, id)
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	if err := ensureDeletable(ctx, id, r.productRefCount, r.childCategoryCount); err != nil {
		return err
	}

	_, err := r.DB.Collection("categories").DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoCategoryRepository) slugTaken(exclude primitive.ObjectID) func(context.Context, string) (bool, error) {
	return func(ctx context.Context, slug string) (bool, error) {
		filter := bson.M{"slug": slug}
		if !exclude.IsZero() {
			filter["_id"] = bson.M{"$ne": exclude}
		}
		n, err := r.DB.Collection("categories").CountDocuments(ctx, filter)
		return n > 0, err
	}
}

func (r *MongoCategoryRepository) productRefCount(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.DB.Collection("products").CountDocuments(ctx, bson.M{"categoryId": id})
}

func (r *MongoCategoryRepository) childCategoryCount(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.DB.Collection("categories").CountDocuments(ctx, bson.M{"parentId": id})
}

// ensureSlugFree validates the slug format and reports Conflict when taken
// reports an existing holder.
func ensureSlugFree(ctx context.Context, slug string, taken func(context.Context, string) (bool, error)) error {
	if !utils.IsValidSlug(slug) {
		return apperrors.BadRequest("slug must be lowercase and hyphen-separated")
	}
	exists, err := taken(ctx, slug)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.Conflict("category slug already exists")
	}
	return nil
}

// ensureDeletable blocks deletion while products or child categories still
// reference the category.
func ensureDeletable(
	ctx context.Context,
	id primitive.ObjectID,
	productRefs, childRefs func(context.Context, primitive.ObjectID) (int64, error),
) error {
	n, err := productRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.BadRequest("category is still referenced by products")
	}

	n, err = childRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.BadRequest("category still has child categories")
	}
	return nil
}

// parentOf resolves the parent id of a category, nil for roots.
func (r *MongoCategoryRepository) parentOf(ctx context.Context, id primitive.ObjectID) (*primitive.ObjectID, error) {
	var doc struct {
		ParentID *primitive.ObjectID `bson:"parentId"`
	}
	err := r.DB.Collection("categories").
		FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"parentId": 1})).
		Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Dangling parent reference; treat as a root so the walk terminates.
			return nil, nil
		}
		return nil, err
	}
	return doc.ParentID, nil
}

// walkAncestors follows parent references upward from start and reports
// whether target is among them. The walk is bounded by maxCategoryDepth;
// hitting the bound means the stored chain is corrupt.
func walkAncestors(
	ctx context.Context,
	start, target primitive.ObjectID,
	parentOf func(context.Context, primitive.ObjectID) (*primitive.ObjectID, error),
) (bool, error) {
	current := start
	for depth := 0; depth < maxCategoryDepth; depth++ {
		if current == target {
			return true, nil
		}
		parent, err := parentOf(ctx, current)
		if err != nil {
			return false, err
		}
		if parent == nil {
			return false, nil
		}
		current = *parent
	}
	return false, apperrors.Internal("category hierarchy exceeds maximum depth; data may contain a cycle", nil)
}
