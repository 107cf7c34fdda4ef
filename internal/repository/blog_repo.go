package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-blog-api/internal/model"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) Create(ctx context.Context, b model.Blog) (model.Blog, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO blogs (title, slug, content, author_id, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, is_active, created_at`,
		b.Title, b.Slug, b.Content, b.AuthorID).
		Scan(&b.ID, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return model.Blog{}, fmt.Errorf("create blog: %w", err)
	}
	return b, nil
}

func (r *BlogRepository) Get(ctx context.Context, id int64) (model.Blog, error) {
	var b model.Blog
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, slug, content, author_id, is_active, created_at
		 FROM blogs WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.AuthorID, &b.IsActive, &b.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Blog{}, model.ErrBlogNotFound
	}
	if err != nil {
		return model.Blog{}, fmt.Errorf("get blog: %w", err)
	}
	return b, nil
}

func (r *BlogRepository) ListActive(ctx context.Context) ([]model.Blog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, slug, content, author_id, is_active, created_at
		 FROM blogs WHERE is_active = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list active blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0)
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.AuthorID, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// Update overwrites title and content, never the slug. The ownership gate
// runs inside one transaction with the row locked, so the check and the
// write are atomic for the caller.
func (r *BlogRepository) Update(ctx context.Context, id int64, title string, content string, actingAuthorID int64) (model.Blog, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Blog{}, fmt.Errorf("begin update blog: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockAndCheckOwner(ctx, tx, id, actingAuthorID); err != nil {
		return model.Blog{}, err
	}

	var b model.Blog
	err = tx.QueryRow(ctx,
		`UPDATE blogs SET title = $2, content = $3 WHERE id = $1
		 RETURNING id, title, slug, content, author_id, is_active, created_at`,
		id, title, content).
		Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.AuthorID, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return model.Blog{}, fmt.Errorf("update blog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Blog{}, fmt.Errorf("commit update blog: %w", err)
	}
	return b, nil
}

// Delete applies the exact same ownership gate as Update. After a
// successful delete the row is no longer retrievable.
func (r *BlogRepository) Delete(ctx context.Context, id int64, actingAuthorID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete blog: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockAndCheckOwner(ctx, tx, id, actingAuthorID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete blog: %w", err)
	}
	return nil
}

func lockAndCheckOwner(ctx context.Context, tx pgx.Tx, id int64, actingAuthorID int64) error {
	var authorID int64
	err := tx.QueryRow(ctx,
		`SELECT author_id FROM blogs WHERE id = $1 FOR UPDATE`, id).
		Scan(&authorID)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrBlogNotFound
	}
	if err != nil {
		return fmt.Errorf("lock blog row: %w", err)
	}

	if authorID != actingAuthorID {
		return model.ErrForbidden
	}
	return nil
}
