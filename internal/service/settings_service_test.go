package service

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

var (
	testPDF = []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n")
	testPNG = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 0x49, 0x48, 0x44, 0x52}
)

// memorySettings хранит настройки в памяти.
type memorySettings struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMemorySettings() *memorySettings {
	return &memorySettings{values: make(map[string]string)}
}

func (m *memorySettings) Get(ctx context.Context, key string) (*models.AdminSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.values[key]
	if !ok {
		return nil, repository.ErrSettingNotFound
	}
	return &models.AdminSetting{Key: key, Value: v, UpdatedAt: time.Now()}, nil
}

func (m *memorySettings) Upsert(ctx context.Context, key, value string) (*models.AdminSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.values[key] = value
	return &models.AdminSetting{Key: key, Value: value, UpdatedAt: time.Now()}, nil
}

func (m *memorySettings) List(ctx context.Context) ([]models.AdminSetting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AdminSetting, 0, len(m.values))
	for k, v := range m.values {
		out = append(out, models.AdminSetting{Key: k, Value: v})
	}
	return out, nil
}

func newTestFileStorage(t *testing.T) *storage.FileStorage {
	t.Helper()
	fs, err := storage.NewFileStorage(t.TempDir(), "https://site.example", 1)
	require.NoError(t, err)
	return fs
}

func TestSettingsService_ResumeNotSet(t *testing.T) {
	svc := NewSettingsService(newMemorySettings(), newTestFileStorage(t))

	_, err := svc.Resume(context.Background())
	assert.Equal(t, apperror.ErrResumeNotSet, err)
}

func TestSettingsService_ResumeFileMissing(t *testing.T) {
	settings := newMemorySettings()
	settings.values[models.SettingResumeFilename] = "resume.pdf"
	svc := NewSettingsService(settings, newTestFileStorage(t))

	_, err := svc.Resume(context.Background())
	assert.Equal(t, apperror.ErrResumeNotSet, err)
}

func TestSettingsService_UploadResumeReplacesOtherFormat(t *testing.T) {
	settings := newMemorySettings()
	files := newTestFileStorage(t)
	svc := NewSettingsService(settings, files)
	ctx := context.Background()

	_, _, err := files.SaveAs(ctx, storage.BucketResumes, "resume.docx", strings.NewReader("old"))
	require.NoError(t, err)
	settings.values[models.SettingResumeFilename] = "resume.docx"

	info, err := svc.UploadResume(ctx, "CV final.pdf", bytes.NewReader(testPDF))
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", info.Filename)
	assert.Equal(t, "https://site.example/files/resumes/resume.pdf", info.URL)
	assert.Equal(t, "resume.pdf", settings.values[models.SettingResumeFilename])

	assert.True(t, files.Exists(filepath.Join(storage.BucketResumes, "resume.pdf")))
	assert.False(t, files.Exists(filepath.Join(storage.BucketResumes, "resume.docx")))

	current, err := svc.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, info, current)
}

func TestSettingsService_UploadResumeRejectsImage(t *testing.T) {
	settings := newMemorySettings()
	svc := NewSettingsService(settings, newTestFileStorage(t))

	_, err := svc.UploadResume(context.Background(), "resume.pdf", bytes.NewReader(testPNG))
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, settings.values)
}

func TestSettingsService_SetOnlyEditableKeys(t *testing.T) {
	svc := NewSettingsService(newMemorySettings(), newTestFileStorage(t))
	ctx := context.Background()

	_, err := svc.Set(ctx, models.SettingResumeFilename, "../../etc/passwd")
	assert.True(t, apperror.IsValidation(err))

	setting, err := svc.Set(ctx, models.SettingAssistantContext, "  new context  ")
	require.NoError(t, err)
	assert.Equal(t, "new context", setting.Value)

	value, ok, err := svc.Get(ctx, models.SettingAssistantContext)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new context", value)
}

func TestSettingsService_GetStoreError(t *testing.T) {
	settings := newMemorySettings()
	settings.err = errors.New("db down")
	svc := NewSettingsService(settings, newTestFileStorage(t))

	_, _, err := svc.Get(context.Background(), models.SettingAssistantContext)
	assert.Error(t, err)
}

type mockMediaRepo struct {
	mock.Mock
}

func (m *mockMediaRepo) Create(ctx context.Context, media *models.MediaFile) error {
	args := m.Called(ctx, media)
	if args.Error(0) == nil {
		media.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockMediaRepo) ListByBucket(ctx context.Context, bucket string) ([]models.MediaFile, error) {
	args := m.Called(ctx, bucket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaFile), args.Error(1)
}

func (m *mockMediaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MediaFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaFile), args.Error(1)
}

func (m *mockMediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func TestMediaService_UploadAndDeleteImage(t *testing.T) {
	repo := new(mockMediaRepo)
	files := newTestFileStorage(t)
	svc := NewMediaService(repo, files)
	ctx := context.Background()
	userID := uuid.New()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.MediaFile) bool {
		return m.FileType == "image/png" && *m.UserID == userID && m.Bucket == storage.BucketImages
	})).Return(nil)

	media, err := svc.UploadImage(ctx, userID, "../covers/cover.png", bytes.NewReader(testPNG))
	require.NoError(t, err)
	assert.Equal(t, "cover.png", media.OriginalName)
	assert.True(t, strings.HasPrefix(media.FilePath, storage.BucketImages+"/"))
	assert.True(t, strings.HasSuffix(media.FilePath, ".png"))
	assert.Equal(t, "https://site.example/files/"+media.FilePath, media.URL)
	assert.Equal(t, int64(len(testPNG)), media.FileSize)
	assert.True(t, files.Exists(media.FilePath))

	repo.On("GetByID", mock.Anything, media.ID).Return(media, nil)
	repo.On("Delete", mock.Anything, media.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, media.ID))
	assert.False(t, files.Exists(media.FilePath))
}

func TestMediaService_ListImagesResolvesURLs(t *testing.T) {
	repo := new(mockMediaRepo)
	svc := NewMediaService(repo, newTestFileStorage(t))

	repo.On("ListByBucket", mock.Anything, storage.BucketImages).Return([]models.MediaFile{
		{ID: uuid.New(), FilePath: "images/a.png"},
		{ID: uuid.New(), FilePath: "images/b.webp"},
	}, nil)

	items, err := svc.ListImages(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://site.example/files/images/a.png", items[0].URL)
	assert.Equal(t, "https://site.example/files/images/b.webp", items[1].URL)
}

func TestMediaService_UploadRejectsPDF(t *testing.T) {
	repo := new(mockMediaRepo)
	svc := NewMediaService(repo, newTestFileStorage(t))

	_, err := svc.UploadImage(context.Background(), uuid.New(), "cover.png", bytes.NewReader(testPDF))
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMediaService_DeleteMissing(t *testing.T) {
	repo := new(mockMediaRepo)
	svc := NewMediaService(repo, newTestFileStorage(t))
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, repository.ErrMediaNotFound)

	assert.Equal(t, apperror.ErrMediaNotFound, svc.Delete(context.Background(), id))
}
