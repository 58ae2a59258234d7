package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-bloglist-api/internal/model"
)

const blogColumns = `id::text, title, author, url, likes, user_id::text, created_at`

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) Create(ctx context.Context, b model.Blog) (model.Blog, error) {
	if err := b.Validate(); err != nil {
		return model.Blog{}, err
	}
	if err := checkID(b.UserID); err != nil {
		return model.Blog{}, err
	}

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO blogs (id, title, author, url, likes, user_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		b.ID, b.Title, b.Author, b.URL, b.Likes, b.UserID, b.CreatedAt)
	if err != nil {
		return model.Blog{}, classify("create blog", "Blog", err)
	}
	return b, nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (model.Blog, error) {
	if err := checkID(id); err != nil {
		return model.Blog{}, err
	}

	b, err := scanBlog(r.pool.QueryRow(ctx,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Blog{}, model.ErrBlogNotFound
	}
	if err != nil {
		return model.Blog{}, classify("find blog by id", "Blog", err)
	}
	return b, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+blogColumns+` FROM blogs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]model.Blog, 0)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// UpdateLikes replaces the counter; the last concurrent write wins.
func (r *BlogRepository) UpdateLikes(ctx context.Context, id string, likes int) (model.Blog, error) {
	if err := checkID(id); err != nil {
		return model.Blog{}, err
	}
	if err := model.ValidateLikes(likes); err != nil {
		return model.Blog{}, err
	}

	b, err := scanBlog(r.pool.QueryRow(ctx,
		`UPDATE blogs SET likes = $2 WHERE id = $1 RETURNING `+blogColumns, id, likes))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Blog{}, model.ErrBlogNotFound
	}
	if err != nil {
		return model.Blog{}, classify("update blog likes", "Blog", err)
	}
	return b, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return classify("delete blog", "Blog", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBlogNotFound
	}
	return nil
}

func (r *BlogRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return count, nil
}

func scanBlog(row pgx.Row) (model.Blog, error) {
	var b model.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes, &b.UserID, &b.CreatedAt)
	return b, err
}
