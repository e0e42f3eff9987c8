package repository

import (
	"context"
	"errors"

	"reporting-service/domain/dto"
	"reporting-service/domain/model"
)

// Fetch outcomes other than success. Implementations wrap one of these so
// callers can tell "nothing there" from "could not ask".
var (
	ErrNotFound    = errors.New("catalog: not found")
	ErrUnavailable = errors.New("catalog: unavailable")
)

// ICatalog is the read-only gateway to the remote user/video catalog API.
type ICatalog interface {
	FetchAllUsers(ctx context.Context) ([]model.User, error)
	FetchAllVideos(ctx context.Context, filter dto.VideoFilter) ([]model.Video, error)
	FetchUser(ctx context.Context, userID int) (*model.User, error)
}
