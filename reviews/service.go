package reviews

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Bilal-Yasir34/apex-store/models"
)

var (
	ErrMissingFields  = errors.New("name and comment are required")
	ErrReviewNotFound = errors.New("review not found")
)

// Repo is the remote review store.
type Repo interface {
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
	Insert(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, reviewID uint) error
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

type GormRepo struct {
	db *gorm.DB
}

func (r *GormRepo) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	return reviews, nil
}

func (r *GormRepo) Insert(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (r *GormRepo) Delete(ctx context.Context, reviewID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, reviewID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// Service implements the review cycle. Reviews are a remote-first resource:
// the displayed list always comes from a fresh fetch, and a delete changes
// local state only after the remote store confirmed it — the opposite of the
// local-first cart.
type Service struct {
	repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Fetch returns all reviews for a product, newest first. No reviews is an
// empty slice, not an error.
func (s *Service) Fetch(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// Submit validates and stores a review. Blank name or comment rejects before
// any remote call. Ratings are clamped to 1..5.
func (s *Service) Submit(ctx context.Context, productID, userName string, rating int, comment string, userID *string) (*models.Review, error) {
	if userName == "" || comment == "" {
		return nil, ErrMissingFields
	}
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}

	review := &models.Review{
		ProductID: productID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		UserID:    userID,
	}
	if err := s.repo.Insert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review from the remote store. Callers drop it from their
// displayed list only when this returns nil.
func (s *Service) Delete(ctx context.Context, reviewID uint) error {
	return s.repo.Delete(ctx, reviewID)
}
