package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mentorhub/mentorhub-web/internal/cache"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatService(messages *MockMessagingAPI, rosters *MockRosterAPI) *services.ChatService {
	return services.NewChatService(messages, rosters, cache.NewRosterCache(0, true))
}

func TestChatService_CounterpartLists_StudentSeesMentors(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	mockRosters := new(MockRosterAPI)
	service := newChatService(mockMessages, mockRosters)
	ctx := context.Background()
	sess := studentSession()

	me := studentParticipant(sess.UserID, sess.Name)
	mentor := mentorParticipant("mentor-1", "Bruno")
	fresh := mentorParticipant("mentor-2", "Carla")

	mockMessages.On("SentMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{messageAt("m1", me, mentor, "oi", at(10))}, nil).Once()
	mockMessages.On("ReceivedMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil).Once()
	mockRosters.On("AvailableMentors", ctx, sess.Token).
		Return([]models.Participant{mentor, fresh}, nil).Once()

	lists, err := service.CounterpartLists(ctx, sess, "")
	require.NoError(t, err)
	require.Len(t, lists.WithChats, 1)
	assert.Equal(t, "mentor-1", lists.WithChats[0].ID)
	require.Len(t, lists.Available, 1)
	assert.Equal(t, "mentor-2", lists.Available[0].ID)

	mockMessages.AssertExpectations(t)
	mockRosters.AssertExpectations(t)
	mockRosters.AssertNotCalled(t, "Students")
}

func TestChatService_CounterpartLists_AdminHasNoChatRole(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	mockRosters := new(MockRosterAPI)
	service := newChatService(mockMessages, mockRosters)

	sess := &models.Session{Token: "t", UserID: "admin-1", Role: models.RoleAdmin}

	_, err := service.CounterpartLists(context.Background(), sess, "")
	assert.ErrorIs(t, err, services.ErrNoCounterpart)
	mockMessages.AssertNotCalled(t, "SentMessages")
}

func TestChatService_Send_FailureRollsBackOptimisticEntry(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	mockRosters := new(MockRosterAPI)
	service := newChatService(mockMessages, mockRosters)
	ctx := context.Background()
	sess := studentSession()
	mentor := mentorParticipant("mentor-1", "Bruno")

	mockMessages.On("SendMessage", ctx, sess.Token, sess.UserID, mentor.ID, "hello").
		Return(nil, errors.New("backend down")).Once()

	_, err := service.Send(ctx, sess, mentor, "hello")
	require.Error(t, err)

	// The rolled-back entry must not reappear in the conversation
	mockMessages.On("SentMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil).Once()
	mockMessages.On("ReceivedMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil).Once()

	conv, err := service.Conversation(ctx, sess, mentor.ID)
	require.NoError(t, err)
	assert.Empty(t, conv.Messages)

	mockMessages.AssertExpectations(t)
}

func TestChatService_Send_EmptyContentRejectedBeforeNetwork(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	service := newChatService(mockMessages, new(MockRosterAPI))

	_, err := service.Send(context.Background(), studentSession(), mentorParticipant("mentor-1", "Bruno"), "")
	assert.ErrorIs(t, err, services.ErrEmptyMessage)
	mockMessages.AssertNotCalled(t, "SendMessage")
}

func TestChatService_Send_ConfirmedEntryNotDuplicatedOnRefetch(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	mockRosters := new(MockRosterAPI)
	service := newChatService(mockMessages, mockRosters)
	ctx := context.Background()
	sess := studentSession()

	me := studentParticipant(sess.UserID, sess.Name)
	mentor := mentorParticipant("mentor-1", "Bruno")
	created := messageAt("server-42", me, mentor, "hello", at(11))

	mockMessages.On("SendMessage", ctx, sess.Token, sess.UserID, mentor.ID, "hello").
		Return(&created, nil).Once()

	result, err := service.Send(ctx, sess, mentor, "hello")
	require.NoError(t, err)
	assert.Equal(t, "server-42", result.Message.ID)
	assert.False(t, result.Message.Pending)

	// Refetch already includes the confirmed message
	mockMessages.On("SentMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{created}, nil).Once()
	mockMessages.On("ReceivedMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil).Once()

	conv, err := service.Conversation(ctx, sess, mentor.ID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1, "confirmed optimistic entry must merge, not duplicate")
	assert.Equal(t, "server-42", conv.Messages[0].ID)
	assert.Equal(t, models.OwnMessageLabel, conv.Messages[0].UserName)
}

func TestChatService_Send_ConfirmedEntryShownUntilBackendCatchesUp(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	service := newChatService(mockMessages, new(MockRosterAPI))
	ctx := context.Background()
	sess := studentSession()

	me := studentParticipant(sess.UserID, sess.Name)
	mentor := mentorParticipant("mentor-1", "Bruno")
	created := messageAt("server-42", me, mentor, "hello", at(11))

	mockMessages.On("SendMessage", ctx, sess.Token, sess.UserID, mentor.ID, "hello").
		Return(&created, nil).Once()

	_, err := service.Send(ctx, sess, mentor, "hello")
	require.NoError(t, err)

	// Refetch does not include the message yet
	mockMessages.On("SentMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil).Once()
	mockMessages.On("ReceivedMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil).Once()

	conv, err := service.Conversation(ctx, sess, mentor.ID)
	require.NoError(t, err)
	require.Len(t, conv.Messages, 1, "confirmed entry must not transiently disappear")
	assert.Equal(t, "server-42", conv.Messages[0].ID)
}

func TestChatService_Send_FirstMessagePromotesCounterpart(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	mockRosters := new(MockRosterAPI)
	service := newChatService(mockMessages, mockRosters)
	ctx := context.Background()
	sess := studentSession()

	me := studentParticipant(sess.UserID, sess.Name)
	mentor := mentorParticipant("mentor-1", "Bruno")
	fresh := mentorParticipant("mentor-2", "Carla")

	mockMessages.On("SentMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{messageAt("m1", me, mentor, "oi", at(10))}, nil).Once()
	mockMessages.On("ReceivedMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil).Once()
	mockRosters.On("AvailableMentors", ctx, sess.Token).
		Return([]models.Participant{mentor, fresh}, nil).Once()

	_, err := service.CounterpartLists(ctx, sess, "")
	require.NoError(t, err)

	created := messageAt("server-7", me, fresh, "primeira", at(12))
	mockMessages.On("SendMessage", ctx, sess.Token, sess.UserID, fresh.ID, "primeira").
		Return(&created, nil).Once()

	result, err := service.Send(ctx, sess, fresh, "primeira")
	require.NoError(t, err)
	require.NotNil(t, result.Lists)
	require.Len(t, result.Lists.WithChats, 2)
	assert.Equal(t, "mentor-2", result.Lists.WithChats[0].ID, "promoted to head exactly once")
	assert.Equal(t, "primeira", result.Lists.WithChats[0].LastMessage)
	assert.Empty(t, result.Lists.Available)
}

func TestChatService_Conversation_StaleSelectionDiscarded(t *testing.T) {
	mockMessages := new(MockMessagingAPI)
	service := newChatService(mockMessages, new(MockRosterAPI))
	ctx := context.Background()
	sess := studentSession()

	me := studentParticipant(sess.UserID, sess.Name)
	mentorA := mentorParticipant("mentor-a", "Bruno")
	mentorB := mentorParticipant("mentor-b", "Carla")

	history := []models.Message{
		messageAt("m1", me, mentorA, "para A", at(9)),
		messageAt("m2", me, mentorB, "para B", at(10)),
	}

	// While the fetch for mentor A is in flight, the user opens mentor B.
	switched := false
	mockMessages.On("SentMessages", ctx, sess.Token, sess.UserID).
		Return(history, nil).
		Run(func(args mock.Arguments) {
			if switched {
				return
			}
			switched = true
			conv, err := service.Conversation(ctx, sess, mentorB.ID)
			require.NoError(t, err)
			require.Len(t, conv.Messages, 1)
			assert.Equal(t, "m2", conv.Messages[0].ID)
		})
	mockMessages.On("ReceivedMessages", ctx, sess.Token, sess.UserID).
		Return([]models.Message{}, nil)

	_, err := service.Conversation(ctx, sess, mentorA.ID)
	assert.ErrorIs(t, err, services.ErrStaleSelection)
}
