package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// SiteRepositoryImpl implements domain.SiteRepository: tenant records and
// their navigation items.
type SiteRepositoryImpl struct {
	domains    *mongo.Collection
	navigation *mongo.Collection
}

// NewSiteRepository creates a new site repository.
func NewSiteRepository(db *mongo.Database) domain.SiteRepository {
	return &SiteRepositoryImpl{
		domains:    db.Collection("domains"),
		navigation: db.Collection("navigation_items"),
	}
}

// FindByName implements domain.SiteRepository.
func (r *SiteRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Site, error) {
	var doc struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := r.domains.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, err
	}
	return &domain.Site{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

// FindNavigationItems implements domain.SiteRepository.
func (r *SiteRepositoryImpl) FindNavigationItems(ctx context.Context, domainID, itemType string) ([]*domain.NavigationItem, error) {
	oid, err := objectID(domainID)
	if err != nil {
		return nil, err
	}

	cur, err := r.navigation.Find(ctx, bson.M{"domain_id": oid, "type": itemType})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []*domain.NavigationItem
	for cur.Next(ctx) {
		var doc struct {
			ID       primitive.ObjectID `bson:"_id"`
			Label    string             `bson:"label"`
			Type     string             `bson:"type"`
			DomainID primitive.ObjectID `bson:"domain_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, &domain.NavigationItem{
			ID:       doc.ID.Hex(),
			Label:    doc.Label,
			Type:     doc.Type,
			DomainID: doc.DomainID.Hex(),
		})
	}
	return items, cur.Err()
}
