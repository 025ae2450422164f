package catalog

import "github.com/hanwool95/game-socket-server/internal/domain"

// videoResponse represents a video's statistics and comments
type videoResponse struct {
	LikeCount int64                 `json:"likeCount" example:"1234"` // Number of likes
	Comments  []domain.VideoComment `json:"comments"`                 // Top-level comments
}
