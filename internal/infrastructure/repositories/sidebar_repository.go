package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// SidebarRepositoryImpl implements domain.SidebarRepository on MongoDB.
// One document per user; the layout blob is stored opaque.
type SidebarRepositoryImpl struct {
	col *mongo.Collection
}

type dbSidebar struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID primitive.ObjectID `bson:"userId"`
	Items  string             `bson:"items"`
}

// NewSidebarRepository creates a new sidebar repository.
func NewSidebarRepository(db *mongo.Database) domain.SidebarRepository {
	return &SidebarRepositoryImpl{col: db.Collection("sidebars")}
}

// FindByUserID implements domain.SidebarRepository.
func (r *SidebarRepositoryImpl) FindByUserID(ctx context.Context, userID string) (*domain.Sidebar, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	var doc dbSidebar
	if err := r.col.FindOne(ctx, bson.M{"userId": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSidebarNotFound
		}
		return nil, err
	}
	return &domain.Sidebar{ID: doc.ID.Hex(), UserID: doc.UserID.Hex(), Items: doc.Items}, nil
}

// Upsert implements domain.SidebarRepository; created reports whether a new
// document was inserted.
func (r *SidebarRepositoryImpl) Upsert(ctx context.Context, sidebar *domain.Sidebar) (bool, error) {
	oid, err := objectID(sidebar.UserID)
	if err != nil {
		return false, err
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": oid},
		bson.M{"$set": bson.M{"items": sidebar.Items}, "$setOnInsert": bson.M{"userId": oid}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	if res.UpsertedID != nil {
		sidebar.ID = res.UpsertedID.(primitive.ObjectID).Hex()
	}
	return res.UpsertedCount > 0, nil
}
