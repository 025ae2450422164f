package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/json"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/logging"
)

type Handler struct {
	cards  domain.CardRepository
	videos domain.VideoClient
	logger logging.Logger
}

// NewHandler builds the catalog handler. cards may be nil when no document
// store is configured.
func NewHandler(cards domain.CardRepository, videos domain.VideoClient, logger logging.Logger) *Handler {
	return &Handler{
		cards:  cards,
		videos: videos,
		logger: logger,
	}
}

// GetPackCardsHandler godoc
// @Summary      Pokemon card pack
// @Description  Lists the cards of a pack by pack name
// @Tags         catalog
// @Produce      json
// @Param        name  path  string  true  "Pack name"
// @Success      200 {array} domain.PackCard
// @Failure      503 {object} map[string]interface{} "Catalog disabled"
// @Failure      500 {object} map[string]interface{} "Internal server error"
// @Router       /pokemon-card/pack/{name} [get]
func (h *Handler) GetPackCardsHandler(w http.ResponseWriter, r *http.Request) {
	if h.cards == nil {
		json.WriteError(w, http.StatusServiceUnavailable, errors.New("catalog disabled"), "Card catalog is not enabled")
		return
	}

	name := chi.URLParam(r, "name")
	cards, err := h.cards.FindByPack(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			json.WriteValidationError(w, errors.New("pack name is missing"))
			return
		}
		h.logger.Error(logging.MongoDB, logging.Select, "failed to read pack", map[logging.ExtraKey]any{
			logging.Path:         name,
			logging.ErrorMessage: err.Error(),
		})
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, cards)
}

// GetVideoHandler godoc
// @Summary      YouTube video info
// @Description  Returns the like count and top-level comments of a video
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "Video ID"
// @Success      200 {object} videoResponse
// @Failure      404 {object} map[string]interface{} "Video not found"
// @Failure      502 {object} map[string]interface{} "Upstream error"
// @Router       /youtube/video/{id} [get]
func (h *Handler) GetVideoHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	info, err := h.videos.GetVideo(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVideoNotFound):
			json.WriteNotFoundError(w, "Video not found")
		case errors.Is(err, domain.ErrInvalidInput):
			json.WriteValidationError(w, errors.New("video id is missing"))
		default:
			h.logger.Error(logging.General, logging.ExternalService, "youtube request failed", map[logging.ExtraKey]any{
				logging.Path:         id,
				logging.ErrorMessage: err.Error(),
			})
			json.WriteBadGatewayError(w, "Failed to fetch YouTube data")
		}
		return
	}

	json.Write(w, http.StatusOK, videoResponse{
		LikeCount: info.LikeCount,
		Comments:  info.Comments,
	})
}
