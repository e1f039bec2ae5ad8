package services

import (
	"context"

	"github.com/mentorhub/mentorhub-web/internal/models"
)

// MessagingAPI is the slice of the core backend the chat feature consumes.
type MessagingAPI interface {
	SentMessages(ctx context.Context, token, userID string) ([]models.Message, error)
	ReceivedMessages(ctx context.Context, token, userID string) ([]models.Message, error)
	SendMessage(ctx context.Context, token, senderID, recipientID, content string) (*models.Message, error)
}

// RosterAPI lists potential chat counterparts.
type RosterAPI interface {
	Students(ctx context.Context, token string) ([]models.Participant, error)
	AvailableMentors(ctx context.Context, token string) ([]models.Participant, error)
}

// ScheduleAPI is the mentoring-session slice of the core backend.
type ScheduleAPI interface {
	MentoringSessions(ctx context.Context, token string) ([]models.MentoringSession, error)
	UpdateMentoringSession(ctx context.Context, token, id string, req models.UpdateSessionRequest) (*models.MentoringSession, error)
	DeleteMentoringSession(ctx context.Context, token, id string) error
}

// AuthAPI is the authentication and profile slice of the core backend.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Me(ctx context.Context, token string) (*models.Profile, error)
	UpdateAvatar(ctx context.Context, token, avatarURL string) error
}
