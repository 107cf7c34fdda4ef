package service

import (
	"context"
	"strings"

	"go-blog-api/internal/model"
)

// BlogStore is the repository surface the blog routes consume. Update and
// Delete enforce the ownership gate and report ErrBlogNotFound or
// ErrForbidden.
type BlogStore interface {
	Create(ctx context.Context, b model.Blog) (model.Blog, error)
	Get(ctx context.Context, id int64) (model.Blog, error)
	ListActive(ctx context.Context) ([]model.Blog, error)
	Update(ctx context.Context, id int64, title string, content string, actingAuthorID int64) (model.Blog, error)
	Delete(ctx context.Context, id int64, actingAuthorID int64) error
}

type BlogService struct {
	blogs BlogStore
}

func NewBlogService(blogs BlogStore) *BlogService {
	return &BlogService{blogs: blogs}
}

// Slugify derives a URL-safe slug from a title: spaces become hyphens,
// everything is lowercased. Slugs are not unique.
func Slugify(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}

func (s *BlogService) Create(ctx context.Context, title string, content string, authorID int64) (model.Blog, error) {
	return s.blogs.Create(ctx, model.Blog{
		Title:    title,
		Slug:     Slugify(title),
		Content:  content,
		AuthorID: authorID,
	})
}

func (s *BlogService) Get(ctx context.Context, id int64) (model.Blog, error) {
	return s.blogs.Get(ctx, id)
}

func (s *BlogService) ListActive(ctx context.Context) ([]model.Blog, error) {
	return s.blogs.ListActive(ctx)
}

func (s *BlogService) Update(ctx context.Context, id int64, title string, content string, actingAuthorID int64) (model.Blog, error) {
	return s.blogs.Update(ctx, id, title, content, actingAuthorID)
}

func (s *BlogService) Delete(ctx context.Context, id int64, actingAuthorID int64) error {
	return s.blogs.Delete(ctx, id, actingAuthorID)
}
