package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
	"github.com/ignatzorin/portfolio-backend/internal/pkg/apperror"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/storage"
)

// resumeBaseName имя файла резюме без расширения.
const resumeBaseName = "resume"

// editableSettings ключи, которые можно менять через API напрямую.
// resume_filename меняется только загрузкой файла.
var editableSettings = map[string]struct{}{
	models.SettingAssistantContext: {},
}

// SettingRepository описывает хранилище admin_settings.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*models.AdminSetting, error)
	Upsert(ctx context.Context, key, value string) (*models.AdminSetting, error)
	List(ctx context.Context) ([]models.AdminSetting, error)
}

// FileStore описывает файловое хранилище.
type FileStore interface {
	Save(ctx context.Context, bucket, ext string, r io.Reader) (string, int64, error)
	SaveAs(ctx context.Context, bucket, name string, r io.Reader) (string, int64, error)
	Delete(ctx context.Context, relativePath string) error
	Exists(relativePath string) bool
	PublicURL(relativePath string) string
}

// ResumeInfo ссылка на актуальное резюме.
type ResumeInfo struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// SettingsService управляет настройками и файлом резюме.
type SettingsService struct {
	repo  SettingRepository
	files FileStore
}

// NewSettingsService создаёт сервис настроек.
func NewSettingsService(repo SettingRepository, files FileStore) *SettingsService {
	return &SettingsService{repo: repo, files: files}
}

// List возвращает все настройки.
func (s *SettingsService) List(ctx context.Context) ([]models.AdminSetting, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

// Get возвращает значение настройки. ok=false, если ключ не задан.
func (s *SettingsService) Get(ctx context.Context, key string) (string, bool, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return "", false, nil
		}
		return "", false, apperror.Internal(err)
	}
	return setting.Value, true, nil
}

// Set сохраняет редактируемую настройку.
func (s *SettingsService) Set(ctx context.Context, key, value string) (*models.AdminSetting, error) {
	if _, ok := editableSettings[key]; !ok {
		return nil, apperror.Validation(fmt.Sprintf("настройку %s нельзя менять напрямую", key))
	}

	setting, err := s.repo.Upsert(ctx, key, strings.TrimSpace(value))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return setting, nil
}

// Resume возвращает публичную ссылку на резюме.
func (s *SettingsService) Resume(ctx context.Context) (*ResumeInfo, error) {
	filename, ok, err := s.Get(ctx, models.SettingResumeFilename)
	if err != nil {
		return nil, err
	}
	if !ok || filename == "" {
		return nil, apperror.ErrResumeNotSet
	}

	rel := path.Join(storage.BucketResumes, filename)
	if !s.files.Exists(rel) {
		logger.L().WithField("filename", filename).Warn("settings service: файл резюме не найден")
		return nil, apperror.ErrResumeNotSet
	}

	return &ResumeInfo{
		URL:      s.files.PublicURL(rel),
		Filename: filename,
	}, nil
}

// UploadResume сохраняет резюме как resumes/resume.<ext> и записывает имя в настройки.
func (s *SettingsService) UploadResume(ctx context.Context, originalName string, r io.Reader) (*ResumeInfo, error) {
	kind, body, err := storage.Detect(r, originalName, storage.ResumeKinds)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	previous, _, err := s.Get(ctx, models.SettingResumeFilename)
	if err != nil {
		return nil, err
	}

	filename := resumeBaseName + kind.Ext
	if _, _, err := s.files.SaveAs(ctx, storage.BucketResumes, filename, body); err != nil {
		return nil, uploadError(err)
	}

	if _, err := s.repo.Upsert(ctx, models.SettingResumeFilename, filename); err != nil {
		return nil, apperror.Internal(err)
	}

	// Резюме другого формата больше не нужно
	if previous != "" && previous != filename {
		if err := s.files.Delete(ctx, path.Join(storage.BucketResumes, previous)); err != nil {
			logger.L().WithFields(logrus.Fields{
				"file":  previous,
				"error": err.Error(),
			}).Warn("settings: не удалось удалить старое резюме")
		}
	}

	return &ResumeInfo{
		URL:      s.files.PublicURL(path.Join(storage.BucketResumes, filename)),
		Filename: filename,
	}, nil
}

func uploadError(err error) error {
	if errors.Is(err, storage.ErrTooLarge) {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return apperror.Internal(err)
}
