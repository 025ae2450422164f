package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hanwool95/game-socket-server/internal/domain"
)

const defaultMaxComments = 20

// Client reads video statistics and top-level comments from the YouTube
// Data API.
type Client struct {
	apiURL      string
	apiKey      string
	maxComments int
	http        *http.Client
}

func NewClient(apiURL, apiKey string, maxComments int, timeout time.Duration) *Client {
	return NewClientWithHTTP(apiURL, apiKey, maxComments, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewClientWithHTTP(apiURL, apiKey string, maxComments int, client *http.Client) *Client {
	if maxComments <= 0 {
		maxComments = defaultMaxComments
	}
	return &Client{
		apiURL:      strings.TrimRight(apiURL, "/"),
		apiKey:      apiKey,
		maxComments: maxComments,
		http:        client,
	}
}

type videosResponse struct {
	Items []struct {
		Statistics struct {
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					AuthorDisplayName string `json:"authorDisplayName"`
					TextDisplay       string `json:"textDisplay"`
					LikeCount         int64  `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *Client) GetVideo(ctx context.Context, id string) (*domain.VideoInfo, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	likes, err := c.likeCount(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := c.comments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.VideoInfo{
		ID:        id,
		LikeCount: likes,
		Comments:  comments,
	}, nil
}

func (c *Client) likeCount(ctx context.Context, id string) (int64, error) {
	var body videosResponse
	err := c.get(ctx, "videos", url.Values{
		"part": {"statistics"},
		"id":   {id},
	}, &body)
	if err != nil {
		return 0, err
	}
	if len(body.Items) == 0 {
		return 0, domain.ErrVideoNotFound
	}

	raw := body.Items[0].Statistics.LikeCount
	if raw == "" {
		// Likes hidden by the uploader.
		return 0, nil
	}
	likes, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse like count %q: %w", raw, err)
	}
	return likes, nil
}

func (c *Client) comments(ctx context.Context, id string) ([]domain.VideoComment, error) {
	var body commentThreadsResponse
	err := c.get(ctx, "commentThreads", url.Values{
		"part":       {"snippet"},
		"videoId":    {id},
		"maxResults": {strconv.Itoa(c.maxComments)},
	}, &body)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.VideoComment, 0, len(body.Items))
	for _, item := range body.Items {
		s := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, domain.VideoComment{
			Author:    s.AuthorDisplayName,
			Text:      s.TextDisplay,
			LikeCount: s.LikeCount,
		})
	}
	return comments, nil
}

func (c *Client) get(ctx context.Context, resource string, query url.Values, out any) error {
	query.Set("key", c.apiKey)
	endpoint := c.apiURL + "/" + resource + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("youtube %s: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrVideoNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube %s: status %d", resource, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("youtube %s: decode: %w", resource, err)
	}
	return nil
}
