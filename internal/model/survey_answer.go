package model

import (
	"time"

	"github.com/google/uuid"
)

// SurveyAnswer stores one respondent's answer to one catalog question.
// Answer holds the storage encoding of the value (see survey.EncodeValue);
// the row is representation-agnostic about answer cardinality.
type SurveyAnswer struct {
	ID         uint      `json:"-" gorm:"primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:char(36);not null;uniqueIndex:idx_user_question"`
	QuestionID string    `json:"questionId" gorm:"size:64;not null;uniqueIndex:idx_user_question"`
	Answer     string    `json:"answer" gorm:"size:2048;not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
