package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/h2non/filetype"
)

// sniffBytes сколько байт читается для определения типа. DOCX требует заглянуть глубже в zip.
const sniffBytes = 8 << 10

// ErrUnsupportedType тип файла не входит в разрешённый набор.
var ErrUnsupportedType = errors.New("storage: неподдерживаемый тип файла")

// FileKind разрешённый тип файла: MIME и расширение, под которым он сохраняется.
type FileKind struct {
	MIME string
	Ext  string
}

// ImageKinds изображения для работ и обложек постов.
var ImageKinds = map[string]FileKind{
	"image/jpeg": {MIME: "image/jpeg", Ext: ".jpg"},
	"image/png":  {MIME: "image/png", Ext: ".png"},
	"image/gif":  {MIME: "image/gif", Ext: ".gif"},
	"image/webp": {MIME: "image/webp", Ext: ".webp"},
}

// ResumeKinds документы, которые можно загрузить как резюме.
var ResumeKinds = map[string]FileKind{
	"application/pdf":    {MIME: "application/pdf", Ext: ".pdf"},
	"application/msword": {MIME: "application/msword", Ext: ".doc"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {
		MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Ext:  ".docx",
	},
}

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Detect определяет тип по магическим байтам и возвращает reader, который
// снова начинается с первого байта. Имя файла учитывается только для DOCX,
// который без полного разбора zip может определиться как обычный архив.
func Detect(r io.Reader, originalName string, allowed map[string]FileKind) (FileKind, io.Reader, error) {
	head := make([]byte, sniffBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FileKind{}, nil, fmt.Errorf("storage: не удалось прочитать файл: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return FileKind{}, nil, fmt.Errorf("%w: пустой файл", ErrUnsupportedType)
	}

	replay := io.MultiReader(bytes.NewReader(head), r)

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return FileKind{}, nil, fmt.Errorf("%w: тип не распознан", ErrUnsupportedType)
	}

	mime := kind.MIME.Value
	if mime == "application/zip" && strings.EqualFold(filepath.Ext(originalName), ".docx") {
		mime = docxMIME
	}

	fk, ok := allowed[mime]
	if !ok {
		return FileKind{}, nil, fmt.Errorf("%w (%s). Разрешены: %s", ErrUnsupportedType, mime, strings.Join(AllowedMIMEs(allowed), ", "))
	}

	return fk, replay, nil
}

// AllowedMIMEs возвращает отсортированный список MIME типов.
func AllowedMIMEs(allowed map[string]FileKind) []string {
	out := make([]string, 0, len(allowed))
	for mime := range allowed {
		out = append(out, mime)
	}
	sort.Strings(out)
	return out
}
