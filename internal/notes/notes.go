// Package notes сохраняет заметки в файлы markdown.
package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"auranote/internal/storage"
)

const (
	// TimestampLayout - формат времени в имени файла (точность до секунды).
	TimestampLayout = "2006-01-02-15-04-05"
	// Extension - расширение файлов заметок.
	Extension = ".md"
)

// DirectoryResolver возвращает папку для заметок.
type DirectoryResolver interface {
	SaveDirectory() string
}

// Persister записывает заметки на диск.
//
// Две заметки, сохранённые в одну и ту же секунду, получают одно имя файла и
// вторая перезаписывает первую.
type Persister struct {
	dirs   DirectoryResolver
	prefix string
	now    func() time.Time
}

// New создаёт Persister. prefix - локализованное слово "note".
func New(dirs DirectoryResolver, prefix string) *Persister {
	return &Persister{
		dirs:   dirs,
		prefix: prefix,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени.
func (p *Persister) WithClock(now func() time.Time) *Persister {
	p.now = now
	return p
}

// FileName строит имя файла заметки для момента t.
func (p *Persister) FileName(t time.Time) string {
	return p.prefix + "-" + t.Format(TimestampLayout) + Extension
}

// Save сохраняет заметку и возвращает путь к файлу.
// Пустая (после trim) заметка - успешный no-op с пустым путём.
func (p *Persister) Save(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	dir := p.dirs.SaveDirectory()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("notes: create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, p.FileName(p.now()))
	if err := storage.WriteFileAtomic(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("notes: write %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("bytes", len(content)).Msg("Заметка сохранена")
	return path, nil
}
