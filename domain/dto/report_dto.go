package dto

import "reporting-service/domain/model"

// CategoryCount is a single entry of SummaryReport.TopCategories.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SummaryReport aggregates totals across the whole catalog.
type SummaryReport struct {
	TotalUsers    int             `json:"total_users"`
	TotalVideos   int             `json:"total_videos"`
	TopCategories []CategoryCount `json:"top_categories"`
}

// UserActivityReport aggregates the videos owned by a single user.
type UserActivityReport struct {
	User                 model.UserSummary `json:"user"`
	TotalVideos          int               `json:"total_videos"`
	TotalDurationSeconds int               `json:"total_duration_seconds"`
	VideosByCategory     map[string]int    `json:"videos_by_category"`
	Videos               []model.Video     `json:"videos"`
}

// ErrorResponse is the body returned for every non-2xx report response.
type ErrorResponse struct {
	Error string `json:"error"`
}
