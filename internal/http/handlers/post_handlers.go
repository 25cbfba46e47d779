package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// PostHandlers handles the content surface: posts, quick edit, title
// options and media upload.
type PostHandlers struct {
	postSvc  domain.PostService
	mediaSvc domain.MediaService
}

// NewPostHandlers creates new post handlers
func NewPostHandlers(postSvc domain.PostService, mediaSvc domain.MediaService) *PostHandlers {
	return &PostHandlers{postSvc: postSvc, mediaSvc: mediaSvc}
}

// PostRequest represents the upsert payload.
type PostRequest struct {
	ID                   string               `json:"id"`
	Title                string               `json:"title" binding:"required"`
	PostType             string               `json:"post_type" binding:"required"`
	Content              string               `json:"content"`
	PublicationDate      time.Time            `json:"publicationDate"`
	Categories           []string             `json:"categories"`
	Tags                 []string             `json:"tags"`
	FeaturedImage        string               `json:"featuredImage"`
	Status               string               `json:"status"`
	Comments             []string             `json:"comments"`
	CustomFields         []domain.CustomField `json:"customFields"`
	CustomRepeaterFields []domain.CustomField `json:"customRepeaterFields"`
}

func tenantFrom(c *gin.Context) string {
	if v, ok := c.Get("tenant"); ok {
		return v.(string)
	}
	return ""
}

// Upsert creates or updates a post together with its metadata document.
func (h *PostHandlers) Upsert(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := &domain.PostInput{
		ID:                   req.ID,
		Title:                req.Title,
		PostType:             req.PostType,
		Content:              req.Content,
		PublicationDate:      req.PublicationDate,
		Categories:           req.Categories,
		Tags:                 req.Tags,
		FeaturedImage:        req.FeaturedImage,
		Status:               domain.PostStatus(req.Status),
		Comments:             req.Comments,
		CustomFields:         req.CustomFields,
		CustomRepeaterFields: req.CustomRepeaterFields,
	}

	post, meta, created, err := h.postSvc.Upsert(c.Request.Context(), input, userID, tenantFrom(c))
	if err != nil {
		writePostError(c, err)
		return
	}

	status := http.StatusOK
	message := "Post updated"
	if created {
		status = http.StatusCreated
		message = "Post created"
	}
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"post":    postJSON(post),
		"postMeta": gin.H{
			"_id":                  meta.ID,
			"title":                meta.Title,
			"customFields":         meta.CustomFields,
			"customRepeaterFields": meta.CustomRepeaterFields,
		},
	})
}

// List returns one page of posts with counts, featured images and category
// names hydrated.
func (h *PostHandlers) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := domain.PostListFilter{
		Domain:   tenantFrom(c),
		PostType: c.Param("post_type"),
		Status:   domain.PostStatus(c.Query("status")),
		Search:   c.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	list, err := h.postSvc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	posts := make([]gin.H, 0, len(list.Posts))
	for _, item := range list.Posts {
		p := postJSON(item.Post)
		p["images"] = item.Images
		p["categories"] = item.Categories
		posts = append(posts, p)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"posts":           posts,
		"total_count":     list.TotalCount,
		"draft_count":     list.DraftCount,
		"published_count": list.PublishedCount,
		"current_page":    list.CurrentPage,
	})
}

// Get returns one post by id, soft-deleted or not, with its joins.
func (h *PostHandlers) Get(c *gin.Context) {
	detail, err := h.postSvc.Get(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		writePostError(c, err)
		return
	}

	body := gin.H{"success": true, "post": postJSON(detail.Post)}
	if detail.Meta != nil {
		body["postMeta"] = gin.H{
			"_id":                  detail.Meta.ID,
			"title":                detail.Meta.Title,
			"customFields":         detail.Meta.CustomFields,
			"customRepeaterFields": detail.Meta.CustomRepeaterFields,
		}
	}
	if detail.FeaturedImage != nil {
		body["featuredImage"] = detail.FeaturedImage
	}
	categories := make([]gin.H, 0, len(detail.Categories))
	for _, cat := range detail.Categories {
		categories = append(categories, gin.H{"_id": cat.ID, "name": cat.Name})
	}
	body["categoryObject"] = categories

	c.JSON(http.StatusOK, body)
}

// Delete soft-deletes a post. The record and its metadata stay in place.
func (h *PostHandlers) Delete(c *gin.Context) {
	if err := h.postSvc.SoftDelete(c.Request.Context(), c.Param("post_id")); err != nil {
		writePostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}

// QuickEditRequest represents the restricted partial update.
type QuickEditRequest struct {
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Status          string    `json:"status"`
	PublicationDate time.Time `json:"publicationDate"`
}

// QuickEdit applies the list view's restricted field updates.
func (h *PostHandlers) QuickEdit(c *gin.Context) {
	var req QuickEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	edit := domain.QuickEdit{
		Title:           req.Title,
		Slug:            req.Slug,
		Status:          domain.PostStatus(req.Status),
		PublicationDate: req.PublicationDate,
	}
	if err := h.postSvc.QuickEdit(c.Request.Context(), c.Param("post_id"), edit); err != nil {
		writePostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post updated"})
}

// Options lists page titles or navigation labels as value/label pairs.
func (h *PostHandlers) Options(c *gin.Context) {
	options, err := h.postSvc.ListOptions(c.Request.Context(), tenantFrom(c), c.Param("type"))
	if err != nil {
		if errors.Is(err, domain.ErrSiteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Domain not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list options"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "options": options})
}

// UploadMedia accepts a multipart file, pushes it to the object store and
// records the media document.
func (h *PostHandlers) UploadMedia(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	media, err := h.mediaSvc.Upload(c.Request.Context(), data, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload media"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "media": media})
}

func postJSON(post *domain.Post) gin.H {
	return gin.H{
		"_id":             post.ID,
		"title":           post.Title,
		"slug":            post.Slug,
		"post_type":       post.PostType,
		"domain":          post.Domain,
		"content":         post.Content,
		"author":          post.AuthorID,
		"publicationDate": post.PublicationDate,
		"categories":      post.Categories,
		"tags":            post.Tags,
		"featuredImage":   post.FeaturedImage,
		"status":          post.Status,
		"deleted":         post.Deleted,
		"postMeta":        post.PostMetaID,
	}
}

func writePostError(c *gin.Context, err error) {
	var field *domain.FieldError
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
	case errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this post"})
	case errors.As(err, &field):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "field_error": field.Field, "message": field.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed"})
	}
}
