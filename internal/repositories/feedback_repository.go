package repositories

import (
	"errors"

	"feedback_backend/internal/models"

	"gorm.io/gorm"
)

var ErrFeedbackNotFound = errors.New("feedback not found")

type FeedbackRepository interface {
	FindByID(id string) (*models.Feedback, error)
	FindByProduct(productID string) ([]models.Feedback, error)
	FindByUser(userID string) ([]models.Feedback, error)
	FindAll(limit, offset int) ([]models.Feedback, error)
	Create(feedback *models.Feedback) error
	Update(feedback *models.Feedback) error
	Delete(id string) error
	DeleteByProduct(productID string) (int64, error)
	DeleteByUser(userID string) (int64, error)

	// CalculateAverageRating returns the arithmetic mean over the product's
	// feedback rows, 0 with no rows.
	CalculateAverageRating(productID string) (float64, error)
}

type FeedbackRepositoryImpl struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &FeedbackRepositoryImpl{db: db}
}

func (r *FeedbackRepositoryImpl) FindByID(id string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.db.First(&feedback, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepositoryImpl) FindByProduct(productID string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepositoryImpl) FindByUser(userID string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepositoryImpl) FindAll(limit, offset int) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&feedbacks).Error
	return feedbacks, err
}

func (r *FeedbackRepositoryImpl) Create(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepositoryImpl) Update(feedback *models.Feedback) error {
	return r.db.Save(feedback).Error
}

func (r *FeedbackRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Feedback{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func (r *FeedbackRepositoryImpl) DeleteByProduct(productID string) (int64, error) {
	result := r.db.Delete(&models.Feedback{}, "product_id = ?", productID)
	return result.RowsAffected, result.Error
}

func (r *FeedbackRepositoryImpl) DeleteByUser(userID string) (int64, error) {
	result := r.db.Delete(&models.Feedback{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}

func (r *FeedbackRepositoryImpl) CalculateAverageRating(productID string) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Feedback{}).Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg).Error
	return avg, err
}
