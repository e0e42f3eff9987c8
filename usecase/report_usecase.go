package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"reporting-service/domain/dto"
	"reporting-service/domain/model"
	"reporting-service/domain/repository"
	"reporting-service/infrastructure/logger"
	"reporting-service/infrastructure/metrics"
)

// TopCategoriesLimit caps SummaryReport.TopCategories.
const TopCategoriesLimit = 5

// ErrUserNotFound is returned by BuildUserActivityReport when the user id
// does not resolve.
var ErrUserNotFound = errors.New("User not found")

type IReportUsecase interface {
	BuildSummaryReport(ctx context.Context) (*dto.SummaryReport, error)
	BuildUserActivityReport(ctx context.Context, userID int) (*dto.UserActivityReport, error)
}

type ReportUsecase struct {
	catalog repository.ICatalog
}

func NewReportUsecase(catalog repository.ICatalog) IReportUsecase {
	return &ReportUsecase{catalog: catalog}
}

// BuildSummaryReport counts users and videos and ranks video categories.
func (u *ReportUsecase) BuildSummaryReport(ctx context.Context) (*dto.SummaryReport, error) {
	defer observe("summary", time.Now())

	users, err := u.fetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := u.fetchVideos(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.SummaryReport{
		TotalUsers:    len(users),
		TotalVideos:   len(videos),
		TopCategories: TopCategories(videos, TopCategoriesLimit),
	}, nil
}

// BuildUserActivityReport aggregates the videos owned by userID. Videos are
// not fetched when the user does not resolve.
func (u *ReportUsecase) BuildUserActivityReport(ctx context.Context, userID int) (*dto.UserActivityReport, error) {
	defer observe("user_activity", time.Now())

	user, err := u.catalog.FetchUser(ctx, userID)
	if err != nil {
		if degradable(err) {
			logger.GetLogger().WithField("userId", userID).WithField("error", err).Info("User lookup failed")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	videos, err := u.fetchVideos(ctx)
	if err != nil {
		return nil, err
	}

	owned := make([]model.Video, 0)
	totalDuration := 0.0
	for _, v := range videos {
		if !v.OwnedBy(userID) {
			continue
		}
		owned = append(owned, v)
		totalDuration += v.DurationSeconds()
	}

	return &dto.UserActivityReport{
		User:                 user.Summary(),
		TotalVideos:          len(owned),
		TotalDurationSeconds: int(totalDuration),
		VideosByCategory:     CountByCategory(owned),
		Videos:               owned,
	}, nil
}

func (u *ReportUsecase) fetchUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.catalog.FetchAllUsers(ctx)
	if err != nil {
		if degradable(err) {
			logger.GetLogger().WithField("error", err).Warn("Users unavailable, reporting as empty")
			return []model.User{}, nil
		}
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (u *ReportUsecase) fetchVideos(ctx context.Context) ([]model.Video, error) {
	videos, err := u.catalog.FetchAllVideos(ctx, dto.VideoFilter{})
	if err != nil {
		if degradable(err) {
			logger.GetLogger().WithField("error", err).Warn("Videos unavailable, reporting as empty")
			return []model.Video{}, nil
		}
		return nil, fmt.Errorf("failed to fetch videos: %w", err)
	}
	return videos, nil
}

// degradable reports whether a gateway error collapses to "no data".
func degradable(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrUnavailable)
}

func observe(report string, start time.Time) {
	metrics.ReportBuildDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())
}

// CountByCategory maps each present category to its number of videos.
func CountByCategory(videos []model.Video) map[string]int {
	counts := make(map[string]int)
	for _, v := range videos {
		if v.HasCategory() {
			counts[*v.Category]++
		}
	}
	return counts
}

// TopCategories returns up to limit categories by descending count. Ties keep
// the order in which the category was first seen.
func TopCategories(videos []model.Video, limit int) []dto.CategoryCount {
	ranked := make([]dto.CategoryCount, 0)
	index := make(map[string]int)
	for _, v := range videos {
		if !v.HasCategory() {
			continue
		}
		if i, ok := index[*v.Category]; ok {
			ranked[i].Count++
			continue
		}
		index[*v.Category] = len(ranked)
		ranked = append(ranked, dto.CategoryCount{Category: *v.Category, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
