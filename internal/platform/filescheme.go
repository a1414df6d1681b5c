package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/vitrine/internal/log"
	"github.com/zjrosen/vitrine/internal/pubsub"
)

// DefaultSchemeDebounce coalesces editor save bursts into one change.
const DefaultSchemeDebounce = 100 * time.Millisecond

// FileScheme reads the OS preference from a file and watches it for changes.
// The file holds "dark" (or "prefer-dark"); anything else, including a
// missing file, means light.
type FileScheme struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[bool]
	done      chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	dark bool
}

var _ SchemeQuery = (*FileScheme)(nil)

// NewFileScheme reads path and starts watching its directory.
func NewFileScheme(path string, debounce time.Duration) (*FileScheme, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultSchemeDebounce
	}

	s := &FileScheme{
		fsWatcher: fsw,
		path:      path,
		debounce:  debounce,
		broker:    pubsub.NewBroker[bool](),
		done:      make(chan struct{}),
		dark:      readScheme(path),
	}
	go s.loop()

	log.Debug(log.CatPlatform, "Watching scheme file", "path", path, "dark", s.dark)
	return s, nil
}

func (s *FileScheme) Matches() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

func (s *FileScheme) OnChange(fn func(bool)) func() {
	return s.broker.SubscribeFunc(func(e pubsub.Event[bool]) { fn(e.Payload) })
}

// Close stops watching. Safe to call more than once.
func (s *FileScheme) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.fsWatcher.Close()
		s.broker.Close()
	})
	return err
}

// loop processes file system events with debouncing.
func (s *FileScheme) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-s.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			s.reload()

		case err, ok := <-s.fsWatcher.Errors:
			if !ok {
				return
			}
			log.WarnErr(log.CatPlatform, "Scheme watcher error", err, "path", s.path)

		case <-s.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (s *FileScheme) reload() {
	dark := readScheme(s.path)

	s.mu.Lock()
	changed := dark != s.dark
	s.dark = dark
	s.mu.Unlock()

	if changed {
		log.Info(log.CatPlatform, "OS scheme changed", "dark", dark)
		s.broker.Publish(pubsub.SchemeChange, dark)
	}
}

func readScheme(path string) bool {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return false
	}
	v := strings.ToLower(strings.TrimSpace(string(data)))
	return v == "dark" || v == "prefer-dark"
}
