package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/interiora_backend/pkg/s3"
)

// GalleryItem is a published portfolio image.
type GalleryItem struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Tags         []string  `json:"tags"`
	DisplayOrder int       `json:"-"`
}

// Testimonial is a published client review.
type Testimonial struct {
	ID             uuid.UUID `json:"id"`
	ClientName     string    `json:"client_name"`
	ClientPhotoURL string    `json:"client_photo_url,omitempty"`
	Rating         int       `json:"rating"`
	ReviewText     string    `json:"review_text"`
	ProjectType    string    `json:"project_type,omitempty"`
	Location       string    `json:"location,omitempty"`
	DisplayOrder   int       `json:"-"`
}

const (
	MinRating = 0
	MaxRating = 5

	DefaultGalleryLimit      = 8
	DefaultTestimonialsLimit = 6
)

// Store reads published content. Both queries order by display_order.
type Store interface {
	ListFeaturedGallery(ctx context.Context, limit int) ([]GalleryItem, error)
	ListPublishedTestimonials(ctx context.Context, limit int) ([]Testimonial, error)
}

// URLSigner turns a bucket object key into a fetchable URL.
type URLSigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

type Service interface {
	ListFeaturedGallery(ctx context.Context) ([]GalleryItem, error)
	ListTestimonials(ctx context.Context) ([]Testimonial, error)
}

type Options struct {
	GalleryLimit      int
	TestimonialsLimit int
}

type contentService struct {
	store  Store
	signer URLSigner
	opts   Options
}

// New builds the content service. signer may be nil, in which case object
// keys are returned unchanged.
func New(store Store, signer URLSigner, opts Options) Service {
	if opts.GalleryLimit <= 0 {
		opts.GalleryLimit = DefaultGalleryLimit
	}
	if opts.TestimonialsLimit <= 0 {
		opts.TestimonialsLimit = DefaultTestimonialsLimit
	}
	return &contentService{store: store, signer: signer, opts: opts}
}

func (s *contentService) ListFeaturedGallery(ctx context.Context) ([]GalleryItem, error) {
	start := time.Now()
	items, err := s.store.ListFeaturedGallery(ctx, s.opts.GalleryLimit)
	if err != nil {
		return nil, err
	}
	if len(items) > s.opts.GalleryLimit {
		items = items[:s.opts.GalleryLimit]
	}

	for i := range items {
		items[i].ImageURL = s.resolve(ctx, items[i].ImageURL)
		items[i].ThumbnailURL = s.resolve(ctx, items[i].ThumbnailURL)
		if items[i].Tags == nil {
			items[i].Tags = []string{}
		}
	}

	slog.Debug("content: gallery loaded", "count", len(items), "took", time.Since(start))
	return items, nil
}

func (s *contentService) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	items, err := s.store.ListPublishedTestimonials(ctx, s.opts.TestimonialsLimit)
	if err != nil {
		return nil, err
	}
	if len(items) > s.opts.TestimonialsLimit {
		items = items[:s.opts.TestimonialsLimit]
	}

	for i := range items {
		items[i].Rating = ClampRating(items[i].Rating)
		items[i].ClientPhotoURL = s.resolve(ctx, items[i].ClientPhotoURL)
	}
	return items, nil
}

func (s *contentService) resolve(ctx context.Context, ref string) string {
	if s.signer == nil || !s3.IsObjectKey(ref) {
		return ref
	}
	u, err := s.signer.PresignGet(ctx, ref)
	if err != nil {
		slog.Warn("content: presign failed", "key", ref, "err", err)
		return ref
	}
	return u
}

func ClampRating(r int) int {
	return min(max(r, MinRating), MaxRating)
}
