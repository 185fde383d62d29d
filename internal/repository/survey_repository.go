package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"invested/internal/model"
)

// SurveyRepository defines survey-answer persistence operations. Answers are
// unique on (user_id, question_id); resubmitting a question overwrites the
// prior value.
type SurveyRepository interface {
	// UpsertAnswers writes the batch atomically: all answers commit together
	// or not at all. Races between concurrent submissions of the same
	// question resolve via the unique index, last write wins.
	UpsertAnswers(ctx context.Context, answers []model.SurveyAnswer) error
	// ListByUser returns all stored answers ordered by creation time ascending.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SurveyAnswer, error)
	// DeleteByUser bulk-clears a user's answers.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type surveyRepository struct {
	db *gorm.DB
}

// NewSurveyRepository builds a GORM-backed repository.
func NewSurveyRepository(db *gorm.DB) SurveyRepository {
	return &surveyRepository{db: db}
}

func (r *surveyRepository) UpsertAnswers(ctx context.Context, answers []model.SurveyAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"answer", "updated_at"}),
			}).Create(&answers[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *surveyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.SurveyAnswer, error) {
	var answers []model.SurveyAnswer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *surveyRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.SurveyAnswer{}).Error
}
