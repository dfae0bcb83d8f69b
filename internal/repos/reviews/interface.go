package reviews

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAlreadyReviewed = errors.New("user already reviewed this game")
	ErrReviewNotFound  = errors.New("review not found")
)

type Review struct {
	ID        int64
	GameID    int64
	UserID    int64
	Username  string
	Rating    int
	Body      string
	Likes     int
	Liked     bool
	CreatedAt time.Time
}

type Reviews interface {
	Add(ctx context.Context, userID, gameID int64, rating int, body string) (int64, error)
	// ListByGame returns the game's reviews; Liked reflects whether viewerID
	// has liked each review (viewerID 0 means anonymous).
	ListByGame(ctx context.Context, gameID, viewerID int64) ([]Review, error)
	SetLike(ctx context.Context, reviewID, userID int64, liked bool) error
}
