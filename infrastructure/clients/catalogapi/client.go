package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"reporting-service/domain/dto"
	"reporting-service/domain/model"
	"reporting-service/domain/repository"
	"reporting-service/infrastructure/logger"
	"reporting-service/infrastructure/metrics"

	"github.com/google/go-querystring/query"
)

const (
	endpointUsers  = "users"
	endpointVideos = "videos"
	endpointUser   = "user"
)

// Header holds static request headers sent with every call.
type Header struct {
	Accept    string
	UserAgent string
}

type CatalogClient struct {
	baseURL string
	header  Header
	client  *http.Client
}

// NewCatalogClient builds a gateway for the catalog API rooted at baseURL.
// timeout bounds every outward call; no retry is attempted.
func NewCatalogClient(baseURL string, timeout time.Duration, header Header) repository.ICatalog {
	return &CatalogClient{
		baseURL: baseURL,
		header:  header,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *CatalogClient) FetchAllUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, endpointUsers, "/users", nil, &users); err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (c *CatalogClient) FetchAllVideos(ctx context.Context, filter dto.VideoFilter) ([]model.Video, error) {
	params, err := query.Values(filter)
	if err != nil {
		return nil, fmt.Errorf("encode video filter: %w", err)
	}

	var records []json.RawMessage
	if err := c.get(ctx, endpointVideos, "/videos", params, &records); err != nil {
		return nil, fmt.Errorf("fetch videos: %w", err)
	}
	return decodeVideos(records), nil
}

// decodeVideos decodes records one at a time; a record that is not a JSON
// object is skipped so it cannot blank the whole listing.
func decodeVideos(records []json.RawMessage) []model.Video {
	videos := make([]model.Video, 0, len(records))
	for i, record := range records {
		var video model.Video
		if !model.IsJSONObject(record) {
			logger.GetLogger().WithField("index", i).Warn("Skipping video record that is not an object")
			continue
		}
		if err := json.Unmarshal(record, &video); err != nil {
			logger.GetLogger().WithField("index", i).WithField("error", err).Warn("Skipping undecodable video record")
			continue
		}
		videos = append(videos, video)
	}
	return videos
}

func (c *CatalogClient) FetchUser(ctx context.Context, userID int) (*model.User, error) {
	var user *model.User
	if err := c.get(ctx, endpointUser, "/users/"+strconv.Itoa(userID), nil, &user); err != nil {
		return nil, fmt.Errorf("fetch user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("fetch user %d: %w", userID, repository.ErrNotFound)
	}
	return user, nil
}

// get performs a GET request and unwraps the {success, data} envelope into out.
func (c *CatalogClient) get(ctx context.Context, endpoint, path string, params url.Values, out interface{}) error {
	start := time.Now()
	defer func() {
		metrics.CatalogFetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	err := c.do(ctx, path, params, out)
	metrics.CatalogFetches.WithLabelValues(endpoint, outcome(err)).Inc()
	if err != nil {
		logger.GetLogger().
			WithField("path", path).
			WithField("error", err).
			Warn("Catalog API fetch failed")
	}
	return err
}

func (c *CatalogClient) do(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", repository.ErrUnavailable, err)
	}
	if c.header.Accept != "" {
		req.Header.Set("Accept", c.header.Accept)
	}
	if c.header.UserAgent != "" {
		req.Header.Set("User-Agent", c.header.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return repository.ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: status %d", repository.ErrUnavailable, resp.StatusCode)
	}

	var envelope dto.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode envelope: %v", repository.ErrUnavailable, err)
	}
	if !envelope.Success {
		if envelope.Message != "" {
			return fmt.Errorf("%w: %s", repository.ErrNotFound, envelope.Message)
		}
		return repository.ErrNotFound
	}
	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", repository.ErrUnavailable, err)
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, repository.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeUnavailable
	}
}
