package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newScheduleRouter(sess *models.Session, mockAPI *MockScheduleAPI) *gin.Engine {
	handler := NewScheduleHandler(services.NewScheduleService(mockAPI))

	router := gin.New()
	router.Use(withSession(sess))
	router.GET("/mentor/sessoes", handler.List)
	router.DELETE("/mentor/sessoes/:id", handler.Delete)
	router.PUT("/mentor/sessoes/:id/link", handler.UpdateLink)
	router.POST("/mentor/sessoes/:id/iniciar", handler.Start)
	router.POST("/mentor/sessoes/ativa/encerrar", handler.EndActive)
	return router
}

func mentorOwnedSession(mentorID, id, date string, sessionType models.SessionType, link string) models.MentoringSession {
	return models.MentoringSession{
		ID:     id,
		Mentor: models.Participant{ID: mentorID, Name: "Bruno", Role: models.RoleMentor},
		Title:  "Go mentoring",
		Date:   date,
		Type:   sessionType,
		Link:   link,
	}
}

func TestScheduleHandler_List_WithDayFilter(t *testing.T) {
	mockAPI := new(MockScheduleAPI)
	sess := testMentorSession()

	mockAPI.On("MentoringSessions", mock.Anything, sess.Token).
		Return([]models.MentoringSession{
			mentorOwnedSession(sess.UserID, "s1", "2026-04-10T09:00:00Z", models.SessionVideoCall, "x"),
			mentorOwnedSession(sess.UserID, "s2", "2026-04-11T09:00:00Z", models.SessionChat, ""),
		}, nil).Once()

	router := newScheduleRouter(sess, mockAPI)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mentor/sessoes?dia=2026-04-10", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ScheduleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sessions, 1)
	assert.Equal(t, "s1", resp.Sessions[0].ID)
	assert.Len(t, resp.Calendar, 2, "calendar always covers the full list")
	mockAPI.AssertExpectations(t)
}

func TestScheduleHandler_List_InvalidDayFilter(t *testing.T) {
	router := newScheduleRouter(testMentorSession(), new(MockScheduleAPI))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mentor/sessoes?dia=10-04-2026", http.NoBody))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler_Delete_RefuseReason(t *testing.T) {
	mockAPI := new(MockScheduleAPI)
	sess := testMentorSession()

	mockAPI.On("MentoringSessions", mock.Anything, sess.Token).
		Return([]models.MentoringSession{
			mentorOwnedSession(sess.UserID, "s1", "2026-04-10", models.SessionChat, ""),
		}, nil).Once()
	mockAPI.On("DeleteMentoringSession", mock.Anything, sess.Token, "s1").Return(nil).Once()

	router := newScheduleRouter(sess, mockAPI)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mentor/sessoes", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("DELETE", "/mentor/sessoes/s1?motivo=refuse", http.NoBody))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Session refused")
	mockAPI.AssertExpectations(t)
}

func TestScheduleHandler_UpdateLink_EmptyLinkRejected(t *testing.T) {
	mockAPI := new(MockScheduleAPI)
	sess := testMentorSession()

	mockAPI.On("MentoringSessions", mock.Anything, sess.Token).
		Return([]models.MentoringSession{
			mentorOwnedSession(sess.UserID, "s1", "2026-04-10", models.SessionVideoCall, "old"),
		}, nil).Once()

	router := newScheduleRouter(sess, mockAPI)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mentor/sessoes", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	// binding rejects a missing link, the service rejects whitespace
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/mentor/sessoes/s1/link", `{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/mentor/sessoes/s1/link", `{"link":"   "}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockAPI.AssertNotCalled(t, "UpdateMentoringSession")
}

func TestScheduleHandler_Start_ChatConflict(t *testing.T) {
	mockAPI := new(MockScheduleAPI)
	sess := testMentorSession()

	mockAPI.On("MentoringSessions", mock.Anything, sess.Token).
		Return([]models.MentoringSession{
			mentorOwnedSession(sess.UserID, "c1", "2026-04-10", models.SessionChat, ""),
			mentorOwnedSession(sess.UserID, "c2", "2026-04-11", models.SessionChat, ""),
		}, nil).Once()

	router := newScheduleRouter(sess, mockAPI)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mentor/sessoes", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/mentor/sessoes/c1/iniciar", ""))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/mentor/sessoes/c2/iniciar", ""))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleHandler_Start_VideoWithoutLink(t *testing.T) {
	mockAPI := new(MockScheduleAPI)
	sess := testMentorSession()

	mockAPI.On("MentoringSessions", mock.Anything, sess.Token).
		Return([]models.MentoringSession{
			mentorOwnedSession(sess.UserID, "s1", "2026-04-10", models.SessionVideoCall, ""),
		}, nil).Once()

	router := newScheduleRouter(sess, mockAPI)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/mentor/sessoes", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/mentor/sessoes/s1/iniciar", ""))
	assert.Equal(t, http.StatusConflict, w.Code)
}
