package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prepwise/interview-coach/internal/ai"
	"github.com/prepwise/interview-coach/internal/chat"
	"github.com/prepwise/interview-coach/internal/config"
	"github.com/prepwise/interview-coach/internal/httpapi"
	"github.com/prepwise/interview-coach/internal/httpapi/handlers"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&chat.Session{}, &chat.Message{}, &chat.InputHistory{}))

	repo := chat.NewRepo(db)

	// unconfigured gateway: replies with the sentinel, never errors
	reg := ai.NewRegistry()
	reg.Register("openrouter", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		_ = model
		return ai.NewOpenRouterProvider("", "", "openai/gpt-4o-mini", "", ""), nil
	})

	h := handlers.NewHandler(
		chat.NewSessionService(repo),
		chat.NewService(repo, reg, "openrouter", 5, nil),
		chat.NewHistoryService(repo, nil),
	)
	return httpapi.NewRouter(config.Config{CORSOrigins: "*"}, h)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionLifecycleWithUnconfiguredGateway(t *testing.T) {
	r := newTestRouter(t)

	// create
	w := doJSON(t, r, http.MethodPost, "/sessions", `{"title":"Mock Interview","model":"X"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var sess chat.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.ID)
	require.Equal(t, 0, sess.QuestionsAsked)
	require.Equal(t, "0 mins", sess.Duration)
	require.Equal(t, "X", sess.Model)

	// chat with the gateway unavailable: sentinel reply, still a success
	w = doJSON(t, r, http.MethodPost, "/chat",
		fmt.Sprintf(`{"sessionId":%q,"message":"What is Big-O?"}`, sess.ID))
	require.Equal(t, http.StatusOK, w.Code)

	var reply chat.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	require.Equal(t, "assistant", reply.Type)
	require.Equal(t, ai.UnconfiguredReply, reply.Content)

	// counter advanced
	w = doJSON(t, r, http.MethodGet, "/sessions/"+sess.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got chat.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, 1, got.QuestionsAsked)

	// both turns are listed chronologically
	w = doJSON(t, r, http.MethodGet, "/chat/"+sess.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var msgs []chat.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	require.Equal(t, "user", msgs[0].Type)
	require.Equal(t, "assistant", msgs[1].Type)

	// delete cascades; message listing comes back empty, not null
	w = doJSON(t, r, http.MethodDelete, "/sessions/"+sess.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/sessions/"+sess.ID, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "detail")

	w = doJSON(t, r, http.MethodGet, "/chat/"+sess.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestCreateSession_TitleRequired(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", `{"model":"X"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "detail")
}

func TestSendMessage_ValidatesBody(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/chat", `{"message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/chat", `{"sessionId":"s1","message":"hi","messageType":"video"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSession_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/sessions/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"detail":"Session not found"}`, w.Body.String())
}

func TestUpdateStats_QueryParams(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", `{"title":"stats"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var sess chat.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))

	w = doJSON(t, r, http.MethodPatch,
		"/sessions/"+sess.ID+"/update-stats?questionsAsked=7&duration=15+mins", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/sessions/"+sess.ID, "")
	var got chat.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, 7, got.QuestionsAsked)
	require.Equal(t, "15 mins", got.Duration)
}

func TestDeleteMessages_ReportsCount(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/sessions", `{"title":"t"}`)
	var sess chat.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))

	for i := 0; i < 2; i++ {
		w = doJSON(t, r, http.MethodPost, "/chat",
			fmt.Sprintf(`{"sessionId":%q,"message":"q%d"}`, sess.ID, i))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/chat/"+sess.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true,"deletedCount":4}`, w.Body.String())
}

func TestInputHistoryEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/input-history", `{"sessionId":"s1","input":"first"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/input-history", `{"sessionId":"s2","input":"second"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/input-history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var inputs []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inputs))
	require.Equal(t, []string{"second", "first"}, inputs)

	w = doJSON(t, r, http.MethodGet, "/input-history/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []chat.InputHistory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "first", entries[0].Input)

	w = doJSON(t, r, http.MethodPost, "/input-history", `{"sessionId":"s1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
