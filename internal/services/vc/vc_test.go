package vc_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureradar/venture-radar/internal/models"
	vc "github.com/ventureradar/venture-radar/internal/services/vc"
	"github.com/ventureradar/venture-radar/internal/storage/repository"
)

// Мок для VCRepository
type VCRepoMock struct {
	mock.Mock
}

func (m *VCRepoMock) CreateVC(ctx context.Context, entry models.VC) (int, error) {
	args := m.Called(ctx, entry)
	return args.Int(0), args.Error(1)
}

func (m *VCRepoMock) ReadVC(ctx context.Context, id int) (*models.VC, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VC), args.Error(1)
}

func (m *VCRepoMock) ListVCs(ctx context.Context, filter models.VCFilter) ([]*models.VC, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VC), args.Error(1)
}

func (m *VCRepoMock) UpdateVC(ctx context.Context, entry models.VC, id int) (int, error) {
	args := m.Called(ctx, entry, id)
	return args.Int(0), args.Error(1)
}

func (m *VCRepoMock) RemoveVC(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestVCService_Create(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	// Новый фонд получает статус Pending, nil-срезы заменяются пустыми
	repo.On("CreateVC", mock.Anything, mock.MatchedBy(func(entry models.VC) bool {
		return entry.Status == "Pending" &&
			entry.Focus != nil && len(entry.Focus) == 0 &&
			entry.Stage != nil && len(entry.Stage) == 0
	})).Return(6, nil).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	id, err := service.Create(context.Background(), models.DummyVC{
		Name:    "Index Ventures",
		Website: "https://indexventures.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, id)
	repo.AssertExpectations(t)
}

func TestVCService_Read_NotFound(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	cache.On("Get", mock.Anything, "vc:999", mock.Anything).Return(false, nil).Once()
	repo.On("ReadVC", mock.Anything, 999).Return(nil, repository.ErrNotFound).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	got, err := service.Read(context.Background(), 999)
	require.ErrorIs(t, err, vc.ErrNotFound)
	assert.Nil(t, got)
}

func TestVCService_Read_CachesResult(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	expected := &models.VC{ID: 1, Name: "Sequoia Capital", Website: "https://sequoiacap.com"}

	cache.On("Get", mock.Anything, "vc:1", mock.Anything).Return(false, nil).Once()
	repo.On("ReadVC", mock.Anything, 1).Return(expected, nil).Once()
	cache.On("Set", mock.Anything, "vc:1", expected, time.Hour).Return(nil).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	got, err := service.Read(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
	cache.AssertExpectations(t)
}

func TestVCService_List_DefaultsLimit(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	repo.On("ListVCs", mock.Anything, models.VCFilter{Limit: 50}).
		Return([]*models.VC{}, nil).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	_, err := service.List(context.Background(), models.VCFilter{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVCService_List_CapsLimit(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	repo.On("ListVCs", mock.Anything, models.VCFilter{Limit: 200}).
		Return([]*models.VC{}, nil).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	_, err := service.List(context.Background(), models.VCFilter{Limit: 1000})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVCService_Update_NotFound(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	repo.On("UpdateVC", mock.Anything, mock.Anything, 999).Return(0, nil).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	err := service.Update(context.Background(), models.DummyVC{Name: "Ghost", Website: "https://x.yz"}, 999)
	require.ErrorIs(t, err, vc.ErrNotFound)
}

func TestVCService_Update_InvalidatesCache(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	repo.On("UpdateVC", mock.Anything, mock.Anything, 1).Return(1, nil).Once()
	cache.On("Invalidate", mock.Anything, "vc:1").Return(nil).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	err := service.Update(context.Background(), models.DummyVC{Name: "Sequoia Capital", Website: "https://sequoiacap.com"}, 1)
	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestVCService_Remove_NotFound(t *testing.T) {
	repo := new(VCRepoMock)
	cache := new(CacheMock)

	cache.On("Invalidate", mock.Anything, "vc:999").Return(nil).Once()
	repo.On("RemoveVC", mock.Anything, 999).Return(0, nil).Once()

	service := vc.NewVCService(repo, cache, newNoopLogger())

	err := service.Remove(context.Background(), 999)
	require.ErrorIs(t, err, vc.ErrNotFound)
}
