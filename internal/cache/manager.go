// Package cache implements the cached object manager of spec.md §4.3:
// a process-wide, concurrency-safe store that lazily loads serialized
// equipment definitions from disk, deduplicates concurrent loads for
// the same key, and evicts idle payloads on a background tick.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nightsky-studio/zzzcalc/internal/log"
)

// Loader turns one definition file's raw bytes into a typed, owned
// product. Folder loaders are the only place the cache touches a
// domain type; the manager itself only ever holds `any`.
type Loader func(raw []byte) (any, error)

// Folder is a registered definition category (spec.md §4.3: agents,
// weapons, dds, rotations).
type Folder struct {
	Name      string
	Ext       string
	Loader    Loader
	Recursive bool
}

// Manager is the cached object manager. Pass it explicitly to request
// handlers as a dependency (spec.md §9); it is not reached for via
// ambient/global state.
type Manager struct {
	mu      sync.RWMutex
	baseDir string
	cfg     Config
	folders map[string]Folder
	entries map[string]*entry

	group singleflight.Group

	ticker     *time.Ticker
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewManager starts a manager rooted at baseDir (spec.md §6's
// process-wide base-directory variable) and launches its background
// eviction activity immediately.
func NewManager(baseDir string, cfg Config) *Manager {
	m := &Manager{
		baseDir: baseDir,
		cfg:     cfg,
		folders: make(map[string]Folder),
		entries: make(map[string]*entry),
		ticker:  time.NewTicker(cfg.TickInterval),
		stopCh:  make(chan struct{}),
	}
	go m.launch()
	return m
}

func (m *Manager) launch() {
	for {
		select {
		case <-m.ticker.C:
			m.evictOnce()
		case <-m.stopCh:
			return
		}
	}
}

// Shutdown signals the eviction activity to drain and stops the
// ticker. Safe to call more than once.
func (m *Manager) Shutdown() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.ticker.Stop()
	})
}

// RegisterFolder records a loader for a definition category and
// whether its prewarm scan recurses one level (spec.md §4.3,
// used by the nested "rotations/<agent_id>/<rotation_id>" layout).
func (m *Manager) RegisterFolder(name, ext string, loader Loader, recursive bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.folders[name] = Folder{Name: name, Ext: ext, Loader: loader, Recursive: recursive}
}

// AddEntry records that "<folder>/<id>" exists and is loadable,
// without allocating its payload yet.
func (m *Manager) AddEntry(folder, id string) error {
	return m.addEntryKey(folder, folder+"/"+id)
}

// AddEntryPath is the nested-key overload for entries whose key is
// not simply "<folder>/<id>", such as rotations.
func (m *Manager) AddEntryPath(path string) error {
	folder := path
	if i := strings.IndexByte(path, '/'); i >= 0 {
		folder = path[:i]
	}
	return m.addEntryKey(folder, path)
}

func (m *Manager) addEntryKey(folder, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.folders[folder]; !ok {
		return errFolderNotRegistered(folder)
	}
	if _, ok := m.entries[key]; ok {
		return nil
	}
	m.entries[key] = &entry{folder: folder, state: stateEmpty}
	return nil
}

// Get is the synchronous lazy-load path: loads on first access,
// caches, and returns a shared handle (spec.md §4.3).
func (m *Manager) Get(key string) (*Handle, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, errNotRegistered(key)
	}

	m.mu.Lock()
	if e.state == stateLoaded {
		e.idleTicks = 0
		h := m.borrow(e)
		m.mu.Unlock()
		return h, nil
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do(key, func() (any, error) {
		return m.load(key, e.folder)
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	e.state = stateLoaded
	e.payload = v
	e.idleTicks = 0
	h := m.borrow(e)
	m.mu.Unlock()

	return h, nil
}

// GetAsync is Get's future-returning counterpart (spec.md §4.3).
func (m *Manager) GetAsync(key string) *Future {
	f := newFuture()
	go func() {
		h, err := m.Get(key)
		f.resolve(h, err)
	}()
	return f
}

// borrow increments the entry's active-borrow counter and returns a
// handle whose Release decrements it, per the "active borrow"
// reference-counting substitute described in spec.md §9.
func (m *Manager) borrow(e *entry) *Handle {
	atomic.AddInt64(&e.borrows, 1)
	released := false
	return &Handle{
		value: e.payload,
		release: func() {
			if released {
				return
			}
			released = true
			atomic.AddInt64(&e.borrows, -1)
		},
	}
}

func (m *Manager) load(key, folder string) (any, error) {
	m.mu.RLock()
	f, ok := m.folders[folder]
	m.mu.RUnlock()
	if !ok {
		return nil, errFolderNotRegistered(folder)
	}

	path := filepath.Join(m.baseDir, "data", key) + "." + f.Ext
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errNotFoundOnDisk(path, err)
	}

	payload, err := f.Loader(raw)
	if err != nil {
		return nil, errParseFailed(key, err)
	}
	return payload, nil
}

// Clear drops all payloads and registrations; the caller is expected
// to repopulate via Prewarm or explicit AddEntry calls (spec.md §4.3).
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry)
}

// evictOnce runs one eviction-scan tick (spec.md §4.3): entries with
// no active external borrows accrue idle ticks; past the threshold
// their payload is dropped but the registration survives.
func (m *Manager) evictOnce() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, e := range m.entries {
		if e.state != stateLoaded {
			continue
		}
		if atomic.LoadInt64(&e.borrows) == 0 {
			e.idleTicks++
			if e.idleTicks >= m.cfg.IdleThreshold {
				e.payload = nil
				e.state = stateEmpty
				e.idleTicks = 0
				log.Debug("cache: evicted idle entry", "key", key)
			}
		} else {
			e.idleTicks = 0
		}
	}
}

// Prewarm scans every registered folder's directory on disk and
// records an entry for each definition file found, one folder per
// goroutine (spec.md §5 "parallel threads"; grounded on the teacher's
// errgroup-based parallel fetch pattern).
func (m *Manager) Prewarm(ctx context.Context) error {
	m.mu.RLock()
	folders := make([]Folder, 0, len(m.folders))
	for _, f := range m.folders {
		folders = append(folders, f)
	}
	m.mu.RUnlock()

	g, _ := errgroup.WithContext(ctx)
	for _, f := range folders {
		f := f
		g.Go(func() error {
			return m.scanFolder(f)
		})
	}
	return g.Wait()
}

func (m *Manager) scanFolder(f Folder) error {
	dir := filepath.Join(m.baseDir, "data", f.Name)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errNotFoundOnDisk(dir, err)
	}

	for _, de := range dirEntries {
		if de.IsDir() {
			if f.Recursive {
				if err := m.scanNested(f, dir, de.Name()); err != nil {
					return err
				}
			}
			continue
		}
		id, ok := strings.CutSuffix(de.Name(), "."+f.Ext)
		if !ok {
			continue
		}
		if err := m.AddEntry(f.Name, id); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) scanNested(f Folder, dir, sub string) error {
	nestedDir := filepath.Join(dir, sub)
	dirEntries, err := os.ReadDir(nestedDir)
	if err != nil {
		return errNotFoundOnDisk(nestedDir, err)
	}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		id, ok := strings.CutSuffix(de.Name(), "."+f.Ext)
		if !ok {
			continue
		}
		if err := m.AddEntryPath(f.Name + "/" + sub + "/" + id); err != nil {
			return err
		}
	}
	return nil
}
