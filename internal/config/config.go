// Package config предоставляет хранилище настроек приложения (store.json).
//
// Хранилище открывается заново на каждую операцию и не держит состояние в
// памяти: параллельные чтения и записи упорядочиваются файловой блокировкой.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog/log"

	"auranote/internal/storage"
)

const (
	// AppID - имя каталога приложения в пользовательском конфиге.
	AppID = "auranote"
	// NotesFolder - имя папки заметок по умолчанию внутри "Документов".
	NotesFolder = "AuraNote"
	// FileName - имя файла хранилища.
	FileName = "store.json"

	keySaveDirectory = "save_directory"
	keyMuteSound     = "mute_sound"
	keyTheme         = "theme"
	keyFontSize      = "fontSize"
	keyLocale        = "locale"
)

// Размер шрифта окна заметки в rem.
const (
	DefaultFontSize = 1.25
	MinFontSize     = 0.5
	MaxFontSize     = 3.0
	FontSizeStep    = 0.125
)

// ErrInvalidDirectory возвращается при попытке сохранить некорректный путь.
var ErrInvalidDirectory = errors.New("config: invalid save directory")

// Store хранит настройки в JSON документе.
type Store struct {
	path       string
	defaultDir string
}

// New создаёт хранилище в стандартном каталоге конфигурации пользователя.
func New() (*Store, error) {
	path, err := xdg.ConfigFile(filepath.Join(AppID, FileName))
	if err != nil {
		return nil, fmt.Errorf("config: resolve store path: %w", err)
	}
	return NewStore(path, DefaultSaveDirectory()), nil
}

// NewStore создаёт хранилище с явными путями.
func NewStore(path, defaultDir string) *Store {
	return &Store{path: path, defaultDir: defaultDir}
}

// DefaultSaveDirectory возвращает папку заметок по умолчанию.
func DefaultSaveDirectory() string {
	docs := xdg.UserDirs.Documents
	if docs == "" {
		docs = filepath.Join(xdg.Home, "Documents")
	}
	return filepath.Join(docs, NotesFolder)
}

// Path возвращает путь к файлу хранилища.
func (s *Store) Path() string {
	return s.path
}

// DefaultDirectory возвращает вычисляемую папку по умолчанию.
func (s *Store) DefaultDirectory() string {
	return s.defaultDir
}

// SaveDirectory возвращает папку для заметок. Никогда не возвращает ошибку:
// отсутствующее или устаревшее значение заменяется папкой по умолчанию,
// которая при этом не записывается обратно.
func (s *Store) SaveDirectory() string {
	var dir string
	found, err := s.get(keySaveDirectory, &dir)
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Не удалось прочитать хранилище")
		return s.defaultDir
	}
	if !found || dir == "" {
		return s.defaultDir
	}

	// Относительный путь разрешался бы от текущего каталога процесса
	if !filepath.IsAbs(dir) {
		log.Debug().Str("dir", dir).Msg("Сохранённая папка не абсолютная, используем папку по умолчанию")
		return s.defaultDir
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Debug().Str("dir", dir).Msg("Сохранённая папка недоступна, используем папку по умолчанию")
		return s.defaultDir
	}
	return dir
}

// SetSaveDirectory сохраняет выбранную пользователем папку.
func (s *Store) SetSaveDirectory(dir string) error {
	canonical, err := canonicalDir(dir)
	if err != nil {
		return err
	}
	return s.set(keySaveDirectory, canonical)
}

// MuteSound возвращает true если звук подтверждения выключен.
func (s *Store) MuteSound() bool {
	var muted bool
	if _, err := s.get(keyMuteSound, &muted); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Не удалось прочитать хранилище")
		return false
	}
	return muted
}

// SetMuteSound включает/выключает звук подтверждения.
func (s *Store) SetMuteSound(muted bool) error {
	return s.set(keyMuteSound, muted)
}

// ToggleMuteSound переключает звук и возвращает новое значение.
func (s *Store) ToggleMuteSound() (bool, error) {
	muted := !s.MuteSound()
	if err := s.SetMuteSound(muted); err != nil {
		return !muted, err
	}
	return muted, nil
}

// DarkTheme возвращает true для тёмной темы (по умолчанию).
func (s *Store) DarkTheme() bool {
	dark := true
	if _, err := s.get(keyTheme, &dark); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Не удалось прочитать хранилище")
		return true
	}
	return dark
}

// SetDarkTheme сохраняет тему.
func (s *Store) SetDarkTheme(dark bool) error {
	return s.set(keyTheme, dark)
}

// ToggleTheme переключает тему и возвращает новое значение.
func (s *Store) ToggleTheme() (bool, error) {
	dark := !s.DarkTheme()
	if err := s.SetDarkTheme(dark); err != nil {
		return !dark, err
	}
	return dark, nil
}

// FontSize возвращает размер шрифта в rem. Непозитивное значение
// игнорируется, выход за границы обрезается.
func (s *Store) FontSize() float64 {
	var size float64
	found, err := s.get(keyFontSize, &size)
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Не удалось прочитать хранилище")
		return DefaultFontSize
	}
	if !found || size <= 0 {
		return DefaultFontSize
	}
	return clampFontSize(size)
}

// SetFontSize сохраняет размер шрифта и возвращает сохранённое значение.
func (s *Store) SetFontSize(size float64) (float64, error) {
	size = clampFontSize(size)
	if err := s.set(keyFontSize, size); err != nil {
		return s.FontSize(), err
	}
	return size, nil
}

// StepFontSize увеличивает или уменьшает шрифт на FontSizeStep.
func (s *Store) StepFontSize(increase bool) (float64, error) {
	size := s.FontSize()
	if increase {
		size += FontSizeStep
	} else {
		size -= FontSizeStep
	}
	return s.SetFontSize(size)
}

func clampFontSize(size float64) float64 {
	return math.Min(math.Max(size, MinFontSize), MaxFontSize)
}

// Locale возвращает сохранённый код языка или "".
func (s *Store) Locale() string {
	var code string
	if _, err := s.get(keyLocale, &code); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Не удалось прочитать хранилище")
		return ""
	}
	return code
}

// SetLocale сохраняет выбранный язык.
func (s *Store) SetLocale(code string) error {
	return s.set(keyLocale, code)
}

func canonicalDir(dir string) (string, error) {
	err := validation.Validate(dir,
		validation.Required,
		validation.By(func(value interface{}) error {
			if !filepath.IsAbs(filepath.Clean(value.(string))) {
				return errors.New("must be an absolute path")
			}
			return nil
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidDirectory, dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}
	return filepath.Clean(abs), nil
}

func (s *Store) lock() *flock.Flock {
	return flock.New(s.path + ".lock")
}

// get читает значение ключа под разделяемой блокировкой.
func (s *Store) get(key string, dst interface{}) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return false, fmt.Errorf("config: create store dir: %w", err)
	}

	fl := s.lock()
	if err := fl.RLock(); err != nil {
		return false, fmt.Errorf("config: lock store: %w", err)
	}
	defer fl.Unlock()

	doc, err := s.read()
	if err != nil {
		return false, err
	}

	raw, ok := doc[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("config: decode %s: %w", key, err)
	}
	return true, nil
}

// set записывает значение ключа под эксклюзивной блокировкой.
// Неизвестные ключи документа сохраняются как есть.
func (s *Store) set(key string, value interface{}) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("config: create store dir: %w", err)
	}

	fl := s.lock()
	if err := fl.Lock(); err != nil {
		return fmt.Errorf("config: lock store: %w", err)
	}
	defer fl.Unlock()

	doc, err := s.read()
	if err != nil {
		// Повреждённый документ перезаписываем, иначе настройку не сохранить никогда
		log.Warn().Err(err).Str("path", s.path).Msg("Хранилище повреждено, создаём заново")
		doc = map[string]json.RawMessage{}
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("config: encode %s: %w", key, err)
	}
	doc[key] = raw

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode store: %w", err)
	}
	return storage.WriteFileAtomic(s.path, data, 0644)
}

// read загружает документ. Отсутствие файла - нормальная ситуация.
func (s *Store) read() (map[string]json.RawMessage, error) {
	doc := map[string]json.RawMessage{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read store: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse store: %w", err)
	}
	return doc, nil
}
