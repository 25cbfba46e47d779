package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// PostServiceImpl implements domain.PostService
type PostServiceImpl struct {
	postRepo     domain.PostRepository
	metaRepo     domain.PostMetaRepository
	mediaRepo    domain.MediaRepository
	categoryRepo domain.CategoryRepository
	siteRepo     domain.SiteRepository
}

// NewPostService creates a new post service
func NewPostService(
	postRepo domain.PostRepository,
	metaRepo domain.PostMetaRepository,
	mediaRepo domain.MediaRepository,
	categoryRepo domain.CategoryRepository,
	siteRepo domain.SiteRepository,
) domain.PostService {
	return &PostServiceImpl{
		postRepo:     postRepo,
		metaRepo:     metaRepo,
		mediaRepo:    mediaRepo,
		categoryRepo: categoryRepo,
		siteRepo:     siteRepo,
	}
}

// Slugify derives a URL slug from a title: lower-case, spaces to hyphens,
// nothing else.
func Slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// Upsert implements domain.PostService. An existing id must belong to the
// caller or nothing is written. The metadata document is created or updated
// alongside the post, each referencing the other.
func (s *PostServiceImpl) Upsert(ctx context.Context, input *domain.PostInput, authorID, tenant string) (*domain.Post, *domain.PostMeta, bool, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !domain.ValidPostStatus(status) {
		return nil, nil, false, domain.NewFieldError("status", fmt.Sprintf("unknown status %q", input.Status), nil)
	}

	if input.ID != "" {
		post, meta, err := s.update(ctx, input, authorID, status)
		return post, meta, false, err
	}
	post, meta, err := s.create(ctx, input, authorID, tenant, status)
	return post, meta, true, err
}

func (s *PostServiceImpl) create(ctx context.Context, input *domain.PostInput, authorID, tenant string, status domain.PostStatus) (*domain.Post, *domain.PostMeta, error) {
	meta := &domain.PostMeta{
		Title:                input.Title,
		CustomFields:         filterFields(input.CustomFields),
		CustomRepeaterFields: filterFields(input.CustomRepeaterFields),
	}
	if err := s.metaRepo.Create(ctx, meta); err != nil {
		return nil, nil, fmt.Errorf("failed to create post meta: %w", err)
	}

	post := &domain.Post{
		Title:           input.Title,
		Slug:            Slugify(input.Title),
		PostType:        input.PostType,
		Domain:          tenant,
		Content:         input.Content,
		AuthorID:        authorID,
		PublicationDate: input.PublicationDate,
		Categories:      input.Categories,
		Tags:            input.Tags,
		FeaturedImage:   input.FeaturedImage,
		Status:          status,
		Comments:        input.Comments,
		PostMetaID:      meta.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, meta, nil
}

func (s *PostServiceImpl) update(ctx context.Context, input *domain.PostInput, authorID string, status domain.PostStatus) (*domain.Post, *domain.PostMeta, error) {
	post, err := s.postRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, nil, err
	}
	if post.AuthorID != authorID {
		return nil, nil, domain.ErrPermissionDenied
	}

	post.Title = input.Title
	post.Slug = Slugify(input.Title)
	post.Content = input.Content
	post.PublicationDate = input.PublicationDate
	post.Categories = input.Categories
	post.Tags = input.Tags
	post.FeaturedImage = input.FeaturedImage
	post.Status = status
	post.Comments = input.Comments

	meta := &domain.PostMeta{
		ID:                   post.PostMetaID,
		Title:                input.Title,
		CustomFields:         filterFields(input.CustomFields),
		CustomRepeaterFields: filterFields(input.CustomRepeaterFields),
	}
	if meta.ID != "" {
		if err := s.metaRepo.Update(ctx, meta); err != nil {
			if !errors.Is(err, domain.ErrPostNotFound) {
				return nil, nil, fmt.Errorf("failed to update post meta: %w", err)
			}
			// Dangling reference: the meta document is gone, re-create it.
			meta.ID = ""
		}
	}
	if meta.ID == "" {
		if err := s.metaRepo.Create(ctx, meta); err != nil {
			return nil, nil, fmt.Errorf("failed to create post meta: %w", err)
		}
		post.PostMetaID = meta.ID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, meta, nil
}

// filterFields drops entries whose values never materialized on the client
// side (nil or the literal string "undefined").
func filterFields(fields []domain.CustomField) []domain.CustomField {
	out := make([]domain.CustomField, 0, len(fields))
	for _, f := range fields {
		if f.Value == nil {
			continue
		}
		if s, ok := f.Value.(string); ok && s == "undefined" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Get implements domain.PostService. Lookups by id see soft-deleted posts.
func (s *PostServiceImpl) Get(ctx context.Context, id string) (*domain.PostDetail, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &domain.PostDetail{Post: post}

	if post.PostMetaID != "" {
		meta, err := s.metaRepo.FindByID(ctx, post.PostMetaID)
		if err == nil {
			detail.Meta = meta
		}
	}
	if post.FeaturedImage != "" {
		media, err := s.mediaRepo.FindByID(ctx, post.FeaturedImage)
		if err == nil {
			detail.FeaturedImage = media
		}
	}
	for _, catID := range post.Categories {
		cat, err := s.categoryRepo.FindByID(ctx, catID)
		if err != nil {
			continue
		}
		detail.Categories = append(detail.Categories, cat)
	}

	return detail, nil
}

// List implements domain.PostService. Counts ignore both pagination and the
// active status filter; featured images are batch-fetched by the
// id set and joined in memory; category names are hydrated concurrently and
// zipped back in post order.
func (s *PostServiceImpl) List(ctx context.Context, filter domain.PostListFilter) (*domain.PostList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	total, err := s.postRepo.Count(ctx, filter.Domain, filter.PostType, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}
	drafts, err := s.postRepo.Count(ctx, filter.Domain, filter.PostType, domain.StatusDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to count drafts: %w", err)
	}
	published, err := s.postRepo.Count(ctx, filter.Domain, filter.PostType, domain.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to count published: %w", err)
	}

	images, err := s.fetchImages(ctx, posts)
	if err != nil {
		return nil, err
	}
	categoryNames := s.fetchCategoryNames(ctx, posts)

	items := make([]*domain.PostListItem, len(posts))
	for i, post := range posts {
		item := &domain.PostListItem{Post: post, Categories: categoryNames[i]}
		if media, ok := images[post.FeaturedImage]; ok {
			item.Images = []*domain.Media{media}
		}
		items[i] = item
	}

	return &domain.PostList{
		Posts:          items,
		TotalCount:     total,
		DraftCount:     drafts,
		PublishedCount: published,
		CurrentPage:    filter.Page,
	}, nil
}

func (s *PostServiceImpl) fetchImages(ctx context.Context, posts []*domain.Post) (map[string]*domain.Media, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, post := range posts {
		if post.FeaturedImage != "" && !seen[post.FeaturedImage] {
			seen[post.FeaturedImage] = true
			ids = append(ids, post.FeaturedImage)
		}
	}
	if len(ids) == 0 {
		return map[string]*domain.Media{}, nil
	}

	media, err := s.mediaRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch featured images: %w", err)
	}
	byID := make(map[string]*domain.Media, len(media))
	for _, m := range media {
		byID[m.ID] = m
	}
	return byID, nil
}

// fetchCategoryNames resolves the category names of each post concurrently.
// The indexed slice keeps results aligned with the input order; unresolvable
// references are skipped.
func (s *PostServiceImpl) fetchCategoryNames(ctx context.Context, posts []*domain.Post) [][]string {
	names := make([][]string, len(posts))
	var wg sync.WaitGroup
	for i, post := range posts {
		wg.Add(1)
		go func(i int, catIDs []string) {
			defer wg.Done()
			for _, id := range catIDs {
				cat, err := s.categoryRepo.FindByID(ctx, id)
				if err != nil {
					continue
				}
				names[i] = append(names[i], cat.Name)
			}
		}(i, post.Categories)
	}
	wg.Wait()
	return names
}

// ListOptions implements domain.PostService. Pages come from the posts
// collection; any other type lists the site's navigation labels.
func (s *PostServiceImpl) ListOptions(ctx context.Context, tenant, itemType string) ([]domain.TitleOption, error) {
	if itemType == "page" {
		posts, err := s.postRepo.ListTitles(ctx, tenant, "page", 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list page titles: %w", err)
		}
		options := make([]domain.TitleOption, 0, len(posts))
		for _, p := range posts {
			options = append(options, domain.TitleOption{Value: p.ID, Label: p.Title})
		}
		return options, nil
	}

	site, err := s.siteRepo.FindByName(ctx, tenant)
	if err != nil {
		return nil, err
	}
	items, err := s.siteRepo.FindNavigationItems(ctx, site.ID, itemType)
	if err != nil {
		return nil, fmt.Errorf("failed to list navigation items: %w", err)
	}
	options := make([]domain.TitleOption, 0, len(items))
	for _, item := range items {
		options = append(options, domain.TitleOption{Value: Slugify(item.Label), Label: item.Label})
	}
	return options, nil
}

// SoftDelete implements domain.PostService. The metadata document is left in
// place; only the post is flagged.
func (s *PostServiceImpl) SoftDelete(ctx context.Context, id string) error {
	return s.postRepo.SoftDelete(ctx, id)
}

// QuickEdit implements domain.PostService. Only the listed fields can change
// and an unrecognized status leaves the stored one untouched.
func (s *PostServiceImpl) QuickEdit(ctx context.Context, id string, edit domain.QuickEdit) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if edit.Title != "" {
		post.Title = edit.Title
	}
	if edit.Slug != "" {
		post.Slug = edit.Slug
	}
	if !edit.PublicationDate.IsZero() {
		post.PublicationDate = edit.PublicationDate
	}
	if domain.ValidPostStatus(edit.Status) {
		post.Status = edit.Status
	}

	return s.postRepo.Update(ctx, post)
}
