package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// MediaRepositoryImpl implements domain.MediaRepository on MongoDB.
type MediaRepositoryImpl struct {
	col *mongo.Collection
}

type dbMedia struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	URL          string             `bson:"url"`
	AltText      string             `bson:"alt_text,omitempty"`
	CloudinaryID string             `bson:"cloudinary_id,omitempty"`
	Filename     string             `bson:"filename,omitempty"`
	Size         int64              `bson:"size,omitempty"`
}

// NewMediaRepository creates a new media repository.
func NewMediaRepository(db *mongo.Database) domain.MediaRepository {
	return &MediaRepositoryImpl{col: db.Collection("media")}
}

// Create implements domain.MediaRepository.
func (r *MediaRepositoryImpl) Create(ctx context.Context, media *domain.Media) error {
	doc := &dbMedia{
		URL:          media.URL,
		AltText:      media.AltText,
		CloudinaryID: media.CloudinaryID,
		Filename:     media.Filename,
		Size:         media.Size,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	media.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// FindByID implements domain.MediaRepository.
func (r *MediaRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Media, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc dbMedia
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	return mediaToDomain(&doc), nil
}

// FindByIDs implements domain.MediaRepository: one query for the whole
// id-set, joined in memory by the caller.
func (r *MediaRepositoryImpl) FindByIDs(ctx context.Context, ids []string) ([]*domain.Media, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*domain.Media
	for cur.Next(ctx) {
		var doc dbMedia
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, mediaToDomain(&doc))
	}
	return out, cur.Err()
}

func mediaToDomain(doc *dbMedia) *domain.Media {
	return &domain.Media{
		ID:           doc.ID.Hex(),
		URL:          doc.URL,
		AltText:      doc.AltText,
		CloudinaryID: doc.CloudinaryID,
		Filename:     doc.Filename,
		Size:         doc.Size,
	}
}

// CategoryRepositoryImpl implements domain.CategoryRepository on MongoDB.
type CategoryRepositoryImpl struct {
	col *mongo.Collection
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *mongo.Database) domain.CategoryRepository {
	return &CategoryRepositoryImpl{col: db.Collection("categories")}
}

// FindByID implements domain.CategoryRepository.
func (r *CategoryRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc struct {
		ID     primitive.ObjectID `bson:"_id"`
		Name   string             `bson:"name"`
		Domain string             `bson:"domain,omitempty"`
	}
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &domain.Category{ID: doc.ID.Hex(), Name: doc.Name, Domain: doc.Domain}, nil
}
