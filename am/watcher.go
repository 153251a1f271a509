package am

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/chronos/errors"
	"github.com/teranos/chronos/logger"
)

const (
	// DefaultDebounce is how long a watcher waits for writes to settle.
	DefaultDebounce = 500 * time.Millisecond

	// ownWriteGrace extends own-write suppression past the debounce window.
	ownWriteGrace = 100 * time.Millisecond
)

// Reload is passed to callbacks once watched files have settled.
type Reload struct {
	Config *Config
	// Changed lists the watched files written since the previous reload, sorted.
	Changed []string
	// ConfigChanged is set when the config file itself is among Changed.
	ConfigChanged bool
}

// ReloadCallback is called after every successful reload.
type ReloadCallback func(Reload) error

// ConfigWatcher follows a config file and any number of data files (fact
// documents) and reloads the config when one of them changes.
//
// Parent directories are watched rather than the files, so editors that save
// by renaming a temporary file over the original are still seen.
type ConfigWatcher struct {
	configPath string
	files      map[string]bool
	fsw        *fsnotify.Watcher

	mu        sync.Mutex
	callbacks []ReloadCallback
	pending   map[string]bool
	ownWrites map[string]time.Time
	timer     *time.Timer
	debounce  time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

var (
	globalWatcher   *ConfigWatcher
	globalWatcherMu sync.Mutex
)

// NewConfigWatcher watches configPath and extra. Every file must exist. An
// empty configPath watches only extra and reloads from the default sources.
func NewConfigWatcher(configPath string, extra ...string) (*ConfigWatcher, error) {
	cw := &ConfigWatcher{
		files:     make(map[string]bool),
		pending:   make(map[string]bool),
		ownWrites: make(map[string]time.Time),
		debounce:  DefaultDebounce,
		done:      make(chan struct{}),
	}

	paths := extra
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", configPath)
		}
		cw.configPath = abs
		paths = append([]string{configPath}, extra...)
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, errors.Wrapf(err, "cannot watch %s", p)
		}
		cw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "failed to watch %s", dir)
		}
	}
	cw.fsw = fsw
	return cw, nil
}

// SetDebounce changes how long the watcher waits for writes to settle.
func (cw *ConfigWatcher) SetDebounce(d time.Duration) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.debounce = d
}

// OnReload registers a callback.
func (cw *ConfigWatcher) OnReload(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// MarkOwnWrite suppresses events for path for one debounce window plus a
// short grace period. Save calls it before writing.
func (cw *ConfigWatcher) MarkOwnWrite(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.ownWrites[abs] = time.Now().Add(cw.debounce + ownWriteGrace)
}

// Start begins watching in a background goroutine.
func (cw *ConfigWatcher) Start() {
	go cw.watchLoop()
}

func (cw *ConfigWatcher) watchLoop() {
	for {
		select {
		case <-cw.done:
			return

		case event, ok := <-cw.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cw.observe(filepath.Clean(event.Name), event.Op)

		case err, ok := <-cw.fsw.Errors:
			if !ok {
				return
			}
			logger.Warnw("Config watcher error", logger.FieldError, err)
		}
	}
}

// observe records a change to name and restarts the debounce timer.
func (cw *ConfigWatcher) observe(name string, op fsnotify.Op) {
	if !cw.files[name] {
		return
	}

	cw.mu.Lock()
	defer cw.mu.Unlock()

	if until, ok := cw.ownWrites[name]; ok {
		if time.Now().Before(until) {
			logger.Debugw("Config watcher ignoring own write", logger.FieldFile, name)
			return
		}
		delete(cw.ownWrites, name)
	}

	logger.Debugw("Config watcher detected change", logger.FieldFile, name, "op", op.String())
	cw.pending[name] = true
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, func() {
		if err := cw.reload(); err != nil {
			logger.Errorw("Config reload failed", logger.FieldError, err)
		}
	})
}

func (cw *ConfigWatcher) load() (*Config, error) {
	if cw.configPath != "" {
		return LoadFromFile(cw.configPath)
	}
	Reset()
	return Load()
}

// reload loads the config and hands it, with the settled changes, to every
// callback. A config that fails to load is reported and the callbacks are
// skipped; the pending changes are kept for the next attempt.
func (cw *ConfigWatcher) reload() error {
	cfg, err := cw.load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	cw.mu.Lock()
	r := Reload{Config: cfg, Changed: make([]string, 0, len(cw.pending))}
	for name := range cw.pending {
		r.Changed = append(r.Changed, name)
		if name == cw.configPath {
			r.ConfigChanged = true
		}
	}
	cw.pending = make(map[string]bool)
	callbacks := append([]ReloadCallback(nil), cw.callbacks...)
	cw.mu.Unlock()
	sort.Strings(r.Changed)

	logger.Infow("Config reloaded",
		logger.FieldPath, cw.configPath,
		logger.FieldCount, len(r.Changed),
	)
	for _, callback := range callbacks {
		if err := callback(r); err != nil {
			logger.Warnw("Config reload callback error", logger.FieldError, err)
		}
	}
	return nil
}

// Stop stops watching. It is safe to call more than once.
func (cw *ConfigWatcher) Stop() error {
	cw.mu.Lock()
	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.mu.Unlock()

	var err error
	cw.stopOnce.Do(func() {
		close(cw.done)
		err = cw.fsw.Close()
	})
	return err
}

// SetGlobalWatcher sets the watcher Save notifies before writing.
func SetGlobalWatcher(watcher *ConfigWatcher) {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	globalWatcher = watcher
}

// GetGlobalWatcher returns the watcher set by SetGlobalWatcher, or nil.
func GetGlobalWatcher() *ConfigWatcher {
	globalWatcherMu.Lock()
	defer globalWatcherMu.Unlock()
	return globalWatcher
}
