// Command seed provisions a demo user with a completed survey for local
// development.
package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"invested/internal/config"
	"invested/internal/db"
	"invested/internal/model"
	"invested/internal/repository"
	"invested/internal/survey"
)

const (
	demoEmail    = "demo@invested.local"
	demoPassword = "Password1"
	demoName     = "Demo User"
)

var demoAnswers = []survey.Answer{
	{QuestionID: "employment", Value: survey.Single("Full-time employed")},
	{QuestionID: "finances", Value: survey.Single("I break even most months")},
	{QuestionID: "debt", Value: survey.Multiple([]string{"Credit card debt", "Student loans"})},
	{QuestionID: "emergency_savings", Value: survey.Single("Yes, but less than $1,000")},
	{QuestionID: "financial_knowledge", Value: survey.Single("Somewhat confident")},
	{QuestionID: "budget_experience", Value: survey.Single("Yes, but I don't follow it")},
	{QuestionID: "learning_sources", Value: survey.Multiple([]string{"Social media (TikTok, YouTube)", "Trial and error"})},
	{QuestionID: "financial_worry", Value: survey.Single("Credit card debt piling up")},
	{QuestionID: "financial_success", Value: survey.Single("Paying off a credit card")},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Session{}, &model.SurveyAnswer{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	surveyRepo := repository.NewSurveyRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user = &model.User{
			ID:           uuid.New(),
			Email:        demoEmail,
			PasswordHash: string(hash),
			Name:         demoName,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s", demoEmail)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		log.Printf("Demo user %s already exists", demoEmail)
	}

	rows := make([]model.SurveyAnswer, 0, len(demoAnswers))
	for _, a := range demoAnswers {
		encoded, err := survey.EncodeValue(a.Value)
		if err != nil {
			log.Fatalf("Failed to encode answer %s: %v", a.QuestionID, err)
		}
		rows = append(rows, model.SurveyAnswer{
			UserID:     user.ID,
			QuestionID: a.QuestionID,
			Answer:     encoded,
		})
	}
	if err := surveyRepo.UpsertAnswers(ctx, rows); err != nil {
		log.Fatalf("Failed to seed survey answers: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo login: %s / %s", demoEmail, demoPassword)
	log.Printf("  - Survey answers seeded: %d", len(rows))
}
