package domain

import (
	"context"
	"errors"
)

var ErrVideoNotFound = errors.New("video not found")

type PackCard struct {
	ID       string `bson:"_id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Pack     string `bson:"pack" json:"pack"`
	ImageURL string `bson:"image_url" json:"imageUrl"`
	Rarity   string `bson:"rarity,omitempty" json:"rarity,omitempty"`
}

type CardRepository interface {
	FindByPack(ctx context.Context, pack string) ([]PackCard, error)
}

type VideoComment struct {
	Author    string `json:"author"`
	Text      string `json:"text"`
	LikeCount int64  `json:"likeCount"`
}

type VideoInfo struct {
	ID        string         `json:"id"`
	LikeCount int64          `json:"likeCount"`
	Comments  []VideoComment `json:"comments"`
}

type VideoClient interface {
	GetVideo(ctx context.Context, id string) (*VideoInfo, error)
}
