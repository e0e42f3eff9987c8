package gateway_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reporting-service/domain/dto"
	"reporting-service/domain/model"
	"reporting-service/domain/repository"
	"reporting-service/infrastructure/gateway"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FetchAllUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockCatalog) FetchAllVideos(ctx context.Context, filter dto.VideoFilter) ([]model.Video, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}

func (m *MockCatalog) FetchUser(ctx context.Context, userID int) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockCatalogCache struct {
	mock.Mock
	enabled bool
}

func (m *MockCatalogCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCatalogCache) Enabled() bool {
	return m.enabled
}

func TestCatalogRepository_CacheDisabled_Forwards(t *testing.T) {
	client := new(MockCatalog)
	cache := &MockCatalogCache{enabled: false}

	users := []model.User{{ID: 1, Name: "User 1"}}
	client.On("FetchAllUsers", mock.Anything).Return(users, nil).Twice()

	repo := gateway.NewCatalogRepository(client, cache, time.Minute)

	for i := 0; i < 2; i++ {
		res, err := repo.FetchAllUsers(context.Background())
		require.NoError(t, err)
		assert.Equal(t, users, res)
	}

	client.AssertExpectations(t)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogRepository_CacheHit_SkipsClient(t *testing.T) {
	client := new(MockCatalog)
	cache := &MockCatalogCache{enabled: true}

	cache.On("Get", mock.Anything, "user:1", mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*model.User)
			*dest = model.User{ID: 1, Name: "Cached", Email: "cached@test.com"}
		}).
		Return(true, nil).
		Once()

	repo := gateway.NewCatalogRepository(client, cache, time.Minute)
	user, err := repo.FetchUser(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Cached", user.Name)
	client.AssertNotCalled(t, "FetchUser", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestCatalogRepository_CacheMiss_StoresResult(t *testing.T) {
	client := new(MockCatalog)
	cache := &MockCatalogCache{enabled: true}

	filter := dto.VideoFilter{Category: "Design"}
	videos := []model.Video{{ID: 1, Title: "Video 1"}}

	cache.On("Get", mock.Anything, "videos?category=Design", mock.Anything).Return(false, nil).Once()
	client.On("FetchAllVideos", mock.Anything, filter).Return(videos, nil).Once()
	cache.On("Set", mock.Anything, "videos?category=Design", videos, 30*time.Second).Return(nil).Once()

	repo := gateway.NewCatalogRepository(client, cache, 30*time.Second)
	res, err := repo.FetchAllVideos(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, videos, res)
	client.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCatalogRepository_ClientError_NotCached(t *testing.T) {
	client := new(MockCatalog)
	cache := &MockCatalogCache{enabled: true}

	cache.On("Get", mock.Anything, "user:999", mock.Anything).Return(false, nil).Once()
	client.On("FetchUser", mock.Anything, 999).Return(nil, repository.ErrNotFound).Once()

	repo := gateway.NewCatalogRepository(client, cache, time.Minute)
	user, err := repo.FetchUser(context.Background(), 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, user)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	client.AssertExpectations(t)
}

func TestCatalogRepository_NilUser_NotCached(t *testing.T) {
	client := new(MockCatalog)
	cache := &MockCatalogCache{enabled: true}

	cache.On("Get", mock.Anything, "user:7", mock.Anything).Return(false, nil).Once()
	client.On("FetchUser", mock.Anything, 7).Return(nil, nil).Once()

	repo := gateway.NewCatalogRepository(client, cache, time.Minute)
	user, err := repo.FetchUser(context.Background(), 7)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, user)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	client.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCatalogRepository_CacheReadError_FallsBackToClient(t *testing.T) {
	client := new(MockCatalog)
	cache := &MockCatalogCache{enabled: true}

	users := []model.User{{ID: 2}}
	cache.On("Get", mock.Anything, "users", mock.Anything).Return(false, assert.AnError).Once()
	client.On("FetchAllUsers", mock.Anything).Return(users, nil).Once()
	cache.On("Set", mock.Anything, "users", users, time.Minute).Return(assert.AnError).Once()

	repo := gateway.NewCatalogRepository(client, cache, time.Minute)
	res, err := repo.FetchAllUsers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, users, res)
	client.AssertExpectations(t)
	cache.AssertExpectations(t)
}
