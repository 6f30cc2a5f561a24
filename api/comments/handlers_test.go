package comments_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/waveform-comments/api/auth"
	"github.com/killallgit/waveform-comments/api/comments"
	"github.com/killallgit/waveform-comments/api/types"
	"github.com/killallgit/waveform-comments/internal/database"
	"github.com/killallgit/waveform-comments/internal/models"
	authService "github.com/killallgit/waveform-comments/internal/services/auth"
	commentsService "github.com/killallgit/waveform-comments/internal/services/comments"
	"github.com/killallgit/waveform-comments/internal/services/tracks"
	"github.com/killallgit/waveform-comments/internal/services/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CommentTestSuite struct {
	t      *testing.T
	router *gin.Engine
	track  *models.Track
	sam    string
	alex   string
}

func setupCommentTestSuite(t *testing.T) *CommentTestSuite {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	tokens, err := authService.NewService("test-secret", "waveform-comments", time.Hour)
	require.NoError(t, err)

	deps := &types.Dependencies{
		DB:           db,
		TokenService: tokens,
		UserService:  users.NewService(users.NewRepository(db.DB)),
		TrackService: tracks.NewService(tracks.NewRepository(db.DB)),
	}
	deps.CommentService = commentsService.NewService(commentsService.NewRepository(db.DB), deps.TrackService)

	track, err := deps.TrackService.CreateTrack(ctx, "Night Drive", "/music/night-drive.mp3", 120)
	require.NoError(t, err)

	tokenFor := func(name string) string {
		user, err := deps.UserService.GetOrCreate(ctx, name)
		require.NoError(t, err)
		token, err := tokens.IssueToken(user.ID, user.Name)
		require.NoError(t, err)
		return token
	}

	router := gin.New()
	comments.RegisterRoutes(router.Group("/api/v1"), deps, auth.NewHandler(tokens, deps.UserService).AuthMiddleware())

	return &CommentTestSuite{
		t:      t,
		router: router,
		track:  track,
		sam:    tokenFor("sam"),
		alex:   tokenFor("alex"),
	}
}

func (s *CommentTestSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *CommentTestSuite) post(token string, req types.CreateCommentRequest) *httptest.ResponseRecorder {
	return s.do(http.MethodPost, "/api/v1/comments", token, req)
}

func TestCreateComment(t *testing.T) {
	suite := setupCommentTestSuite(t)

	w := suite.post(suite.sam, types.CreateCommentRequest{
		TrackID:  suite.track.ID,
		Content:  "nice drop",
		Time:     40,
		RegionID: "region-1",
		Color:    "rgba(255, 0, 0, 0.5)",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Comment)
	assert.Equal(t, types.StatusOK, resp.Status)
	assert.Equal(t, "nice drop", resp.Comment.Content)
	assert.Equal(t, "sam", resp.Comment.UserName)
	require.NotNil(t, resp.Comment.Marker)
	assert.Equal(t, 40.0, resp.Comment.Marker.Time)
	assert.Equal(t, "region-1", resp.Comment.Marker.RegionID)
	assert.Equal(t, resp.Comment.ID, resp.Comment.Marker.CommentID)
}

func TestCreateComment_Errors(t *testing.T) {
	suite := setupCommentTestSuite(t)

	tests := []struct {
		name    string
		token   string
		req     types.CreateCommentRequest
		status  int
		message string
	}{
		{name: "no token", req: types.CreateCommentRequest{TrackID: suite.track.ID, Content: "x"}, status: http.StatusUnauthorized},
		{name: "missing content", token: suite.sam, req: types.CreateCommentRequest{TrackID: suite.track.ID}, status: http.StatusBadRequest, message: "Invalid request body"},
		{name: "blank content", token: suite.sam, req: types.CreateCommentRequest{TrackID: suite.track.ID, Content: "   ", RegionID: "r"}, status: http.StatusBadRequest, message: "content cannot be empty"},
		{name: "negative time", token: suite.sam, req: types.CreateCommentRequest{TrackID: suite.track.ID, Content: "x", Time: -2, RegionID: "r"}, status: http.StatusBadRequest},
		{name: "missing region", token: suite.sam, req: types.CreateCommentRequest{TrackID: suite.track.ID, Content: "x", Time: 3}, status: http.StatusBadRequest, message: "region_id is required"},
		{name: "unknown track", token: suite.sam, req: types.CreateCommentRequest{TrackID: 999, Content: "x", RegionID: "r"}, status: http.StatusNotFound, message: "track not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := suite.post(tt.token, tt.req)
			assert.Equal(t, tt.status, w.Code)

			var resp types.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, types.StatusError, resp.Status)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
		})
	}
}

func TestGetTrackComments(t *testing.T) {
	suite := setupCommentTestSuite(t)

	for i, content := range []string{"intro", "nice drop"} {
		w := suite.post(suite.sam, types.CreateCommentRequest{
			TrackID:  suite.track.ID,
			Content:  content,
			Time:     float64(10 * (i + 1)),
			RegionID: fmt.Sprintf("region-%d", i),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/tracks/%d/comments", suite.track.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.CommentsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "nice drop", resp.Comments[0].Content)
	assert.Equal(t, "intro", resp.Comments[1].Content)

	w = suite.do(http.MethodGet, "/api/v1/tracks/999/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/tracks/abc/comments", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTrackComments_EmptyList(t *testing.T) {
	suite := setupCommentTestSuite(t)

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/tracks/%d/comments", suite.track.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"comments":[]`)
}

func TestDeleteComment(t *testing.T) {
	suite := setupCommentTestSuite(t)

	w := suite.post(suite.sam, types.CreateCommentRequest{TrackID: suite.track.ID, Content: "nice drop", Time: 40, RegionID: "region-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.CommentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/v1/comments/%d", created.Comment.ID)

	assert.Equal(t, http.StatusUnauthorized, suite.do(http.MethodDelete, path, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, suite.do(http.MethodDelete, path, suite.alex, nil).Code)
	assert.Equal(t, http.StatusOK, suite.do(http.MethodDelete, path, suite.sam, nil).Code)
	assert.Equal(t, http.StatusNotFound, suite.do(http.MethodDelete, path, suite.sam, nil).Code)
	assert.Equal(t, http.StatusBadRequest, suite.do(http.MethodDelete, "/api/v1/comments/zero", suite.sam, nil).Code)
}
