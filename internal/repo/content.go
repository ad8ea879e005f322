package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Alijeyrad/interiora_backend/internal/service/content"
)

// ContentRepo implements content.Store.
type ContentRepo struct {
	db querier
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

func (r *ContentRepo) ListFeaturedGallery(ctx context.Context, limit int) ([]content.GalleryItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, image_url, thumbnail_url, tags, display_order
		FROM gallery_items
		WHERE is_published AND is_featured
		ORDER BY display_order ASC, created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list gallery: %w", err)
	}
	defer rows.Close()

	var out []content.GalleryItem
	for rows.Next() {
		var (
			it          content.GalleryItem
			desc, thumb sql.NullString
		)
		if err := rows.Scan(&it.ID, &it.Title, &desc, &it.ImageURL, &thumb, pq.Array(&it.Tags), &it.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan gallery item: %w", err)
		}
		it.Description, it.ThumbnailURL = desc.String, thumb.String
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *ContentRepo) ListPublishedTestimonials(ctx context.Context, limit int) ([]content.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_name, client_photo_url, rating, review_text, project_type, location, display_order
		FROM testimonials
		WHERE is_published
		ORDER BY display_order ASC, created_at ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var out []content.Testimonial
	for rows.Next() {
		var (
			t                   content.Testimonial
			photo, ptype, loc sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.ClientName, &photo, &t.Rating, &t.ReviewText, &ptype, &loc, &t.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan testimonial: %w", err)
		}
		t.ClientPhotoURL, t.ProjectType, t.Location = photo.String, ptype.String, loc.String
		out = append(out, t)
	}
	return out, rows.Err()
}

// NewGalleryItem is what the asset CLI inserts after an upload.
type NewGalleryItem struct {
	Title        string
	Description  string
	ImageURL     string
	Tags         []string
	Featured     bool
	DisplayOrder int
}

func (r *ContentRepo) CreateGalleryItem(ctx context.Context, in NewGalleryItem) (content.GalleryItem, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	var it content.GalleryItem
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO gallery_items (title, description, image_url, tags, is_published, is_featured, display_order)
		VALUES ($1, $2, $3, $4, true, $5, $6)
		RETURNING id`,
		in.Title, nullString(in.Description), in.ImageURL, pq.Array(in.Tags), in.Featured, in.DisplayOrder,
	).Scan(&it.ID)
	if err != nil {
		return content.GalleryItem{}, fmt.Errorf("insert gallery item: %w", err)
	}
	it.Title, it.Description, it.ImageURL, it.Tags, it.DisplayOrder = in.Title, in.Description, in.ImageURL, in.Tags, in.DisplayOrder
	return it, nil
}
