package youtube_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/youtube"
)

func newServer(t *testing.T, videos, comments string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/videos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "statistics", r.URL.Query().Get("part"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(videos))
	})
	mux.HandleFunc("/commentThreads", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
		_, _ = w.Write([]byte(comments))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetVideo(t *testing.T) {
	srv := newServer(t,
		`{"items":[{"statistics":{"likeCount":"1234","viewCount":"99999"}}]}`,
		`{"items":[{"snippet":{"topLevelComment":{"snippet":{"authorDisplayName":"민지","textDisplay":"좋아요","likeCount":7}}}}]}`,
	)

	c := youtube.NewClientWithHTTP(srv.URL, "k", 5, srv.Client())
	info, err := c.GetVideo(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", info.ID)
	assert.EqualValues(t, 1234, info.LikeCount)
	require.Len(t, info.Comments, 1)
	assert.Equal(t, domain.VideoComment{Author: "민지", Text: "좋아요", LikeCount: 7}, info.Comments[0])
}

func TestClient_GetVideoNotFound(t *testing.T) {
	srv := newServer(t, `{"items":[]}`, `{"items":[]}`)

	c := youtube.NewClientWithHTTP(srv.URL, "k", 5, srv.Client())
	_, err := c.GetVideo(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrVideoNotFound)
}

func TestClient_HiddenLikes(t *testing.T) {
	srv := newServer(t, `{"items":[{"statistics":{}}]}`, `{"items":[]}`)

	c := youtube.NewClientWithHTTP(srv.URL, "k", 5, srv.Client())
	info, err := c.GetVideo(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Zero(t, info.LikeCount)
	assert.NotNil(t, info.Comments)
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusForbidden)
	}))
	defer srv.Close()

	c := youtube.NewClientWithHTTP(srv.URL, "k", 5, srv.Client())
	_, err := c.GetVideo(context.Background(), "abc123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrVideoNotFound)
}
