package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Бакеты хранилища.
const (
	BucketImages  = "images"
	BucketResumes = "resumes"
)

// ErrTooLarge файл больше допустимого размера.
var ErrTooLarge = errors.New("storage: размер файла превышает лимит")

// FileStorage хранит загруженные файлы по бакетам в локальном каталоге.
type FileStorage struct {
	rootPath       string
	publicBaseURL  string
	maxUploadBytes int64
}

// NewFileStorage создаёт файловое хранилище.
// publicBaseURL используется для построения ссылок вида {base}/files/{bucket}/{name}.
func NewFileStorage(rootPath, publicBaseURL string, maxUploadMB int64) (*FileStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &FileStorage{
		rootPath:       rootPath,
		publicBaseURL:  strings.TrimRight(publicBaseURL, "/"),
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Root возвращает корень хранилища для раздачи статики.
func (s *FileStorage) Root() string {
	return s.rootPath
}

// Save сохраняет файл под уникальным именем и возвращает относительный путь.
func (s *FileStorage) Save(ctx context.Context, bucket, ext string, r io.Reader) (string, int64, error) {
	name := uuid.NewString() + normalizeExt(ext)
	return s.SaveAs(ctx, bucket, name, r)
}

// SaveAs сохраняет файл под заданным именем, заменяя существующий.
// Запись идёт во временный файл, поэтому читатели не видят файл наполовину.
func (s *FileStorage) SaveAs(ctx context.Context, bucket, name string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	bucket = sanitizeFilename(bucket)
	name = sanitizeFilename(name)

	bucketDir := filepath.Join(s.rootPath, bucket)
	if err := os.MkdirAll(bucketDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог бакета: %w", err)
	}

	targetPath := filepath.Join(bucketDir, name)
	f, err := os.CreateTemp(bucketDir, name+".*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	tempPath := f.Name()
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("%w (%d байт)", ErrTooLarge, s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return path.Join(bucket, name), written, nil
}

// Delete удаляет файл из хранилища. Отсутствующий файл не считается ошибкой.
func (s *FileStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// Exists проверяет наличие файла.
func (s *FileStorage) Exists(relativePath string) bool {
	target, err := s.resolve(relativePath)
	if err != nil {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

// PublicURL строит публичную ссылку на файл.
func (s *FileStorage) PublicURL(relativePath string) string {
	return s.publicBaseURL + "/files/" + strings.TrimLeft(filepath.ToSlash(relativePath), "/")
}

// resolve переводит относительный путь в абсолютный, не выпуская за пределы корня.
func (s *FileStorage) resolve(relativePath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash("/" + relativePath))
	target := filepath.Join(s.rootPath, clean)

	rel, err := filepath.Rel(s.rootPath, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("storage: недопустимый путь %q", relativePath)
	}
	return target, nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
