package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// AccessRepositoryImpl implements domain.AccessRepository backed by the
// roles and permissions collections.
type AccessRepositoryImpl struct {
	roles       *mongo.Collection
	permissions *mongo.Collection
}

// NewAccessRepository creates a new access repository.
func NewAccessRepository(db *mongo.Database) domain.AccessRepository {
	return &AccessRepositoryImpl{
		roles:       db.Collection("roles"),
		permissions: db.Collection("permissions"),
	}
}

// FindRole implements domain.AccessRepository.
func (r *AccessRepositoryImpl) FindRole(ctx context.Context, id string) (*domain.Role, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := r.roles.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPermissionDenied
		}
		return nil, err
	}
	return &domain.Role{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

// FindPermissions implements domain.AccessRepository. Unknown ids are
// skipped rather than failing the whole lookup.
func (r *AccessRepositoryImpl) FindPermissions(ctx context.Context, ids []string) ([]*domain.Permission, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.permissions.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var perms []*domain.Permission
	for cur.Next(ctx) {
		var doc struct {
			ID     primitive.ObjectID `bson:"_id"`
			Name   string             `bson:"name"`
			Module string             `bson:"module"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		perms = append(perms, &domain.Permission{
			ID:     doc.ID.Hex(),
			Name:   doc.Name,
			Module: doc.Module,
		})
	}
	return perms, cur.Err()
}
