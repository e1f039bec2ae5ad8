package handlers

import (
	"context"

	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockAuthAPI is a mock implementation of services.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResult), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResult), args.Error(1)
}

func (m *MockAuthAPI) Me(ctx context.Context, token string) (*models.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockAuthAPI) UpdateAvatar(ctx context.Context, token, avatarURL string) error {
	args := m.Called(ctx, token, avatarURL)
	return args.Error(0)
}

// MockScheduleAPI is a mock implementation of services.ScheduleAPI
type MockScheduleAPI struct {
	mock.Mock
}

func (m *MockScheduleAPI) MentoringSessions(ctx context.Context, token string) ([]models.MentoringSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MentoringSession), args.Error(1)
}

func (m *MockScheduleAPI) UpdateMentoringSession(ctx context.Context, token, id string, req models.UpdateSessionRequest) (*models.MentoringSession, error) {
	args := m.Called(ctx, token, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentoringSession), args.Error(1)
}

func (m *MockScheduleAPI) DeleteMentoringSession(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

// MockMessagingAPI is a mock implementation of services.MessagingAPI
type MockMessagingAPI struct {
	mock.Mock
}

func (m *MockMessagingAPI) SentMessages(ctx context.Context, token, userID string) ([]models.Message, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessagingAPI) ReceivedMessages(ctx context.Context, token, userID string) ([]models.Message, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockMessagingAPI) SendMessage(ctx context.Context, token, senderID, recipientID, content string) (*models.Message, error) {
	args := m.Called(ctx, token, senderID, recipientID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

// MockRosterAPI is a mock implementation of services.RosterAPI
type MockRosterAPI struct {
	mock.Mock
}

func (m *MockRosterAPI) Students(ctx context.Context, token string) ([]models.Participant, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participant), args.Error(1)
}

func (m *MockRosterAPI) AvailableMentors(ctx context.Context, token string) ([]models.Participant, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participant), args.Error(1)
}
