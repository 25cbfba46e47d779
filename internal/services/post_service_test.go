package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Sushil1248/innfostride-backend/domain"
	"github.com/Sushil1248/innfostride-backend/internal/mocks"
)

type postFixture struct {
	postRepo   *mocks.MockPostRepository
	metaRepo   *mocks.MockPostMetaRepository
	mediaRepo  *mocks.MockMediaRepository
	categories *mocks.MockCategoryRepository
	sites      *mocks.MockSiteRepository
	svc        domain.PostService
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	f := &postFixture{
		postRepo:   mocks.NewMockPostRepository(),
		metaRepo:   mocks.NewMockPostMetaRepository(),
		mediaRepo:  mocks.NewMockMediaRepository(),
		categories: mocks.NewMockCategoryRepository(),
		sites:      mocks.NewMockSiteRepository(),
	}
	f.svc = NewPostService(f.postRepo, f.metaRepo, f.mediaRepo, f.categories, f.sites)
	return f
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Hello  World", "hello--world"},
		{"MIXED Case Title", "mixed-case-title"},
		{"already-slugged", "already-slugged"},
		{"Keep.Dots&Chars!", "keep.dots&chars!"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestPostServiceImpl_Upsert_CreateLinksMetaBothWays(t *testing.T) {
	f := newPostFixture(t)

	var createdPost *domain.Post
	f.postRepo.CreateFunc = func(ctx context.Context, post *domain.Post) error {
		post.ID = "post1"
		createdPost = post
		return nil
	}
	f.metaRepo.CreateFunc = func(ctx context.Context, meta *domain.PostMeta) error {
		meta.ID = "meta1"
		return nil
	}

	input := &domain.PostInput{
		Title:    "Hello World",
		PostType: "post",
		Content:  "body",
		CustomFields: []domain.CustomField{
			{Key: "color", Value: "red"},
			{Key: "dropped", Value: nil},
			{Key: "also_dropped", Value: "undefined"},
		},
	}
	post, meta, created, err := f.svc.Upsert(context.Background(), input, "author1", "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a fresh post")
	}
	if post.Slug != "hello-world" {
		t.Errorf("expected slug hello-world, got %s", post.Slug)
	}
	if post.AuthorID != "author1" || post.Domain != "example.com" {
		t.Errorf("ownership/tenant not applied: %+v", post)
	}
	if post.Status != domain.StatusDraft {
		t.Errorf("expected default draft status, got %s", post.Status)
	}
	if post.PostMetaID != "meta1" {
		t.Errorf("post does not reference meta: %q", post.PostMetaID)
	}
	if len(meta.CustomFields) != 1 || meta.CustomFields[0].Key != "color" {
		t.Errorf("undefined fields not filtered: %+v", meta.CustomFields)
	}
	if createdPost == nil {
		t.Fatal("post never persisted")
	}
}

func TestPostServiceImpl_Upsert_ForeignAuthorRejected(t *testing.T) {
	f := newPostFixture(t)

	f.postRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Post, error) {
		return &domain.Post{ID: id, AuthorID: "someone-else"}, nil
	}
	f.postRepo.UpdateFunc = func(ctx context.Context, post *domain.Post) error {
		t.Error("foreign post must not be written")
		return nil
	}
	f.metaRepo.UpdateFunc = func(ctx context.Context, meta *domain.PostMeta) error {
		t.Error("foreign post metadata must not be written")
		return nil
	}

	_, _, _, err := f.svc.Upsert(context.Background(), &domain.PostInput{ID: "post1", Title: "t", PostType: "post"}, "author1", "example.com")
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestPostServiceImpl_Upsert_UpdateRecomputesSlug(t *testing.T) {
	f := newPostFixture(t)

	f.postRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Post, error) {
		return &domain.Post{ID: id, AuthorID: "author1", Slug: "old-slug", PostMetaID: "meta1"}, nil
	}

	var updated *domain.Post
	f.postRepo.UpdateFunc = func(ctx context.Context, post *domain.Post) error {
		updated = post
		return nil
	}

	_, _, created, err := f.svc.Upsert(context.Background(),
		&domain.PostInput{ID: "post1", Title: "New Title Here", PostType: "post", Status: domain.StatusPublished},
		"author1", "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing post")
	}
	if updated.Slug != "new-title-here" {
		t.Errorf("slug not recomputed: %s", updated.Slug)
	}
	if updated.Status != domain.StatusPublished {
		t.Errorf("status not applied: %s", updated.Status)
	}
}

func TestPostServiceImpl_Upsert_DanglingMetaRecreated(t *testing.T) {
	f := newPostFixture(t)

	f.postRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Post, error) {
		return &domain.Post{ID: id, AuthorID: "author1", PostMetaID: "meta-gone"}, nil
	}
	f.metaRepo.UpdateFunc = func(ctx context.Context, meta *domain.PostMeta) error {
		return domain.ErrPostNotFound
	}
	f.metaRepo.CreateFunc = func(ctx context.Context, meta *domain.PostMeta) error {
		meta.ID = "meta-fresh"
		return nil
	}
	var updated *domain.Post
	f.postRepo.UpdateFunc = func(ctx context.Context, post *domain.Post) error {
		updated = post
		return nil
	}

	fields := []domain.CustomField{{Key: "color", Value: "red"}}
	_, meta, _, err := f.svc.Upsert(context.Background(),
		&domain.PostInput{ID: "post1", Title: "Title", PostType: "post", CustomFields: fields},
		"author1", "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.ID != "meta-fresh" {
		t.Errorf("expected a fresh meta document, got id %q", meta.ID)
	}
	if len(meta.CustomFields) != 1 || meta.CustomFields[0].Key != "color" {
		t.Errorf("custom fields lost on re-create: %+v", meta.CustomFields)
	}
	if updated == nil || updated.PostMetaID != "meta-fresh" {
		t.Errorf("post not re-attached to the fresh meta: %+v", updated)
	}
}

func TestPostServiceImpl_Get_SeesSoftDeleted(t *testing.T) {
	f := newPostFixture(t)

	f.postRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Post, error) {
		return &domain.Post{ID: id, Deleted: true, PostMetaID: "meta1", Categories: []string{"cat1"}}, nil
	}
	f.categories.FindByIDFunc = func(ctx context.Context, id string) (*domain.Category, error) {
		return &domain.Category{ID: id, Name: "News"}, nil
	}

	detail, err := f.svc.Get(context.Background(), "post1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !detail.Post.Deleted {
		t.Error("soft-deleted post should still be fetchable by id")
	}
	if detail.Meta == nil {
		t.Error("expected meta hydrated")
	}
	if len(detail.Categories) != 1 || detail.Categories[0].Name != "News" {
		t.Errorf("categories not hydrated: %+v", detail.Categories)
	}
}

func TestPostServiceImpl_List_JoinsImagesAndCategories(t *testing.T) {
	f := newPostFixture(t)

	f.postRepo.ListFunc = func(ctx context.Context, filter domain.PostListFilter) ([]*domain.Post, error) {
		return []*domain.Post{
			{ID: "p1", FeaturedImage: "m1", Categories: []string{"c1", "c2"}},
			{ID: "p2", Categories: []string{"c2"}},
		}, nil
	}
	f.postRepo.CountFunc = func(ctx context.Context, domainName, postType string, status domain.PostStatus) (int64, error) {
		switch status {
		case "":
			return 10, nil
		case domain.StatusDraft:
			return 3, nil
		case domain.StatusPublished:
			return 7, nil
		}
		t.Errorf("unexpected count with status %q", status)
		return 0, nil
	}
	f.mediaRepo.FindByIDsFunc = func(ctx context.Context, ids []string) ([]*domain.Media, error) {
		if len(ids) != 1 || ids[0] != "m1" {
			t.Errorf("expected batch fetch of [m1], got %v", ids)
		}
		return []*domain.Media{{ID: "m1", URL: "https://cdn/m1"}}, nil
	}
	names := map[string]string{"c1": "News", "c2": "Tech"}
	f.categories.FindByIDFunc = func(ctx context.Context, id string) (*domain.Category, error) {
		return &domain.Category{ID: id, Name: names[id]}, nil
	}

	list, err := f.svc.List(context.Background(), domain.PostListFilter{Domain: "example.com", PostType: "post", Status: domain.StatusDraft})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if list.TotalCount != 10 || list.DraftCount != 3 || list.PublishedCount != 7 {
		t.Errorf("counts wrong: %+v", list)
	}
	if list.CurrentPage != 1 {
		t.Errorf("expected page default 1, got %d", list.CurrentPage)
	}
	if len(list.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(list.Posts))
	}
	if len(list.Posts[0].Images) != 1 || list.Posts[0].Images[0].ID != "m1" {
		t.Errorf("featured image not joined: %+v", list.Posts[0].Images)
	}
	if len(list.Posts[1].Images) != 0 {
		t.Errorf("post without image got %+v", list.Posts[1].Images)
	}
	if got := list.Posts[0].Categories; len(got) != 2 || got[0] != "News" || got[1] != "Tech" {
		t.Errorf("category names out of order: %v", got)
	}
	if got := list.Posts[1].Categories; len(got) != 1 || got[0] != "Tech" {
		t.Errorf("second post categories: %v", got)
	}
}

func TestPostServiceImpl_QuickEdit_IgnoresUnknownStatus(t *testing.T) {
	f := newPostFixture(t)

	f.postRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Post, error) {
		return &domain.Post{ID: id, Title: "Old", Status: domain.StatusPublished}, nil
	}

	var updated *domain.Post
	f.postRepo.UpdateFunc = func(ctx context.Context, post *domain.Post) error {
		updated = post
		return nil
	}

	err := f.svc.QuickEdit(context.Background(), "post1", domain.QuickEdit{
		Title:  "New",
		Status: domain.PostStatus("bogus"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "New" {
		t.Errorf("title not applied: %s", updated.Title)
	}
	if updated.Status != domain.StatusPublished {
		t.Errorf("unknown status must be ignored, got %s", updated.Status)
	}
}

func TestPostServiceImpl_ListOptions(t *testing.T) {
	f := newPostFixture(t)

	f.postRepo.ListTitlesFunc = func(ctx context.Context, domainName, postType string, limit int) ([]*domain.Post, error) {
		return []*domain.Post{{ID: "p1", Title: "About"}}, nil
	}
	f.sites.FindByNameFunc = func(ctx context.Context, name string) (*domain.Site, error) {
		return &domain.Site{ID: "site1", Name: name}, nil
	}
	f.sites.FindNavigationItemsFunc = func(ctx context.Context, domainID, itemType string) ([]*domain.NavigationItem, error) {
		return []*domain.NavigationItem{{ID: "n1", Label: "Latest News", Type: itemType}}, nil
	}

	pages, err := f.svc.ListOptions(context.Background(), "example.com", "page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pages) != 1 || pages[0].Value != "p1" || pages[0].Label != "About" {
		t.Errorf("page options: %+v", pages)
	}

	nav, err := f.svc.ListOptions(context.Background(), "example.com", "custom_post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nav) != 1 || nav[0].Value != "latest-news" || nav[0].Label != "Latest News" {
		t.Errorf("nav options must use the label slug as value: %+v", nav)
	}
}
