package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// PostRepositoryImpl implements domain.PostRepository on MongoDB.
type PostRepositoryImpl struct {
	col *mongo.Collection
}

type dbPost struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Title           string               `bson:"title"`
	Slug            string               `bson:"slug"`
	PostType        string               `bson:"post_type"`
	Domain          string               `bson:"domain"`
	Content         string               `bson:"content,omitempty"`
	Author          primitive.ObjectID   `bson:"author"`
	PublicationDate time.Time            `bson:"publicationDate"`
	Categories      []primitive.ObjectID `bson:"categories,omitempty"`
	Tags            []string             `bson:"tags,omitempty"`
	FeaturedImage   primitive.ObjectID   `bson:"featuredImage,omitempty"`
	Status          string               `bson:"status"`
	Comments        []string             `bson:"comments,omitempty"`
	Deleted         bool                 `bson:"deleted"`
	PostMeta        primitive.ObjectID   `bson:"postMeta,omitempty"`
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *mongo.Database) domain.PostRepository {
	return &PostRepositoryImpl{col: db.Collection("posts")}
}

// Create implements domain.PostRepository.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	doc, err := postToDB(post)
	if err != nil {
		return err
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	post.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// FindByID implements domain.PostRepository. Soft-deleted posts are visible
// here; only listing hides them.
func (r *PostRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc dbPost
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return postToDomain(&doc), nil
}

// Update implements domain.PostRepository.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *domain.Post) error {
	doc, err := postToDB(post)
	if err != nil {
		return err
	}
	oid, err := objectID(post.ID)
	if err != nil {
		return err
	}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	return err
}

// List implements domain.PostRepository: tenant- and type-scoped, never
// deleted, optional status, optional case-insensitive substring search,
// newest publication first.
func (r *PostRepositoryImpl) List(ctx context.Context, filter domain.PostListFilter) ([]*domain.Post, error) {
	query := listQuery(filter.Domain, filter.PostType, filter.Status)
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"content": regex},
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publicationDate", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var doc dbPost
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		posts = append(posts, postToDomain(&doc))
	}
	return posts, cur.Err()
}

// Count implements domain.PostRepository; it ignores pagination so totals
// cover the whole filter.
func (r *PostRepositoryImpl) Count(ctx context.Context, tenant, postType string, status domain.PostStatus) (int64, error) {
	return r.col.CountDocuments(ctx, listQuery(tenant, postType, status))
}

// ListTitles implements domain.PostRepository for the page picker.
func (r *PostRepositoryImpl) ListTitles(ctx context.Context, tenant, postType string, limit int) ([]*domain.Post, error) {
	opts := options.Find().SetProjection(bson.M{"title": 1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{"domain": tenant, "post_type": postType}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []*domain.Post
	for cur.Next(ctx) {
		var doc dbPost
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		posts = append(posts, postToDomain(&doc))
	}
	return posts, cur.Err()
}

// SoftDelete implements domain.PostRepository. The record stays; every
// listing path filters it out.
func (r *PostRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

// listQuery builds the tenant- and type-scoped filter. Only the three known
// status values constrain the query; "All" or anything unrecognized means no
// status constraint.
func listQuery(tenant, postType string, status domain.PostStatus) bson.M {
	query := bson.M{
		"domain":    tenant,
		"post_type": postType,
		"deleted":   false,
	}
	switch status {
	case domain.StatusTrash, domain.StatusDraft, domain.StatusPublished:
		query["status"] = string(status)
	}
	return query
}

func postToDB(post *domain.Post) (*dbPost, error) {
	doc := &dbPost{
		Title:           post.Title,
		Slug:            post.Slug,
		PostType:        post.PostType,
		Domain:          post.Domain,
		Content:         post.Content,
		PublicationDate: post.PublicationDate,
		Categories:      objectIDs(post.Categories),
		Tags:            post.Tags,
		Status:          string(post.Status),
		Comments:        post.Comments,
		Deleted:         post.Deleted,
	}
	if post.ID != "" {
		oid, err := objectID(post.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	if post.AuthorID != "" {
		oid, err := objectID(post.AuthorID)
		if err != nil {
			return nil, err
		}
		doc.Author = oid
	}
	if post.FeaturedImage != "" {
		if oid, err := primitive.ObjectIDFromHex(post.FeaturedImage); err == nil {
			doc.FeaturedImage = oid
		}
	}
	if post.PostMetaID != "" {
		if oid, err := primitive.ObjectIDFromHex(post.PostMetaID); err == nil {
			doc.PostMeta = oid
		}
	}
	return doc, nil
}

func postToDomain(doc *dbPost) *domain.Post {
	post := &domain.Post{
		ID:              doc.ID.Hex(),
		Title:           doc.Title,
		Slug:            doc.Slug,
		PostType:        doc.PostType,
		Domain:          doc.Domain,
		Content:         doc.Content,
		AuthorID:        doc.Author.Hex(),
		PublicationDate: doc.PublicationDate,
		Categories:      hexIDs(doc.Categories),
		Tags:            doc.Tags,
		Status:          domain.PostStatus(doc.Status),
		Comments:        doc.Comments,
		Deleted:         doc.Deleted,
	}
	if !doc.FeaturedImage.IsZero() {
		post.FeaturedImage = doc.FeaturedImage.Hex()
	}
	if !doc.PostMeta.IsZero() {
		post.PostMetaID = doc.PostMeta.Hex()
	}
	return post
}

// PostMetaRepositoryImpl implements domain.PostMetaRepository on MongoDB.
type PostMetaRepositoryImpl struct {
	col *mongo.Collection
}

type dbPostMeta struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty"`
	Title                string               `bson:"title"`
	CustomFields         []domain.CustomField `bson:"customFields"`
	CustomRepeaterFields []domain.CustomField `bson:"customRepeaterFields"`
}

// NewPostMetaRepository creates a new post metadata repository.
func NewPostMetaRepository(db *mongo.Database) domain.PostMetaRepository {
	return &PostMetaRepositoryImpl{col: db.Collection("postmetas")}
}

// Create implements domain.PostMetaRepository.
func (r *PostMetaRepositoryImpl) Create(ctx context.Context, meta *domain.PostMeta) error {
	doc := &dbPostMeta{
		Title:                meta.Title,
		CustomFields:         meta.CustomFields,
		CustomRepeaterFields: meta.CustomRepeaterFields,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	meta.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// FindByID implements domain.PostMetaRepository.
func (r *PostMetaRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.PostMeta, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc dbPostMeta
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return &domain.PostMeta{
		ID:                   doc.ID.Hex(),
		Title:                doc.Title,
		CustomFields:         doc.CustomFields,
		CustomRepeaterFields: doc.CustomRepeaterFields,
	}, nil
}

// Update implements domain.PostMetaRepository. A dangling reference surfaces
// as ErrPostNotFound so callers can re-create the document.
func (r *PostMetaRepositoryImpl) Update(ctx context.Context, meta *domain.PostMeta) error {
	oid, err := objectID(meta.ID)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":                meta.Title,
		"customFields":         meta.CustomFields,
		"customRepeaterFields": meta.CustomRepeaterFields,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}
