package services_test

import (
	"time"

	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
)

func init() {
	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func studentSession() *models.Session {
	return &models.Session{
		Token:  "test-token",
		UserID: "student-1",
		Name:   "Ana",
		Role:   models.RoleStudent,
	}
}

func mentorSession() *models.Session {
	return &models.Session{
		Token:  "test-token",
		UserID: "mentor-1",
		Name:   "Bruno",
		Role:   models.RoleMentor,
	}
}

func at(hour int) *time.Time {
	t := time.Date(2026, time.March, 10, hour, 0, 0, 0, time.UTC)
	return &t
}

func mentorParticipant(id, name string) models.Participant {
	return models.Participant{ID: id, Name: name, Role: models.RoleMentor}
}

func studentParticipant(id, name string) models.Participant {
	return models.Participant{ID: id, Name: name, Role: models.RoleStudent}
}

func messageAt(id string, sender, recipient models.Participant, content string, sentAt *time.Time) models.Message {
	return models.Message{
		ID:        id,
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		SentAt:    sentAt,
	}
}
