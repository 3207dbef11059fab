package monitor

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Suffixes of in-flight downloads and editor temp files; these settle into a
// rename event for the final name, so the partial file itself is ignored.
var tempSuffixes = []string{".part", ".crdownload", ".tmp"}

// Config for a watch-folder monitor.
type Config struct {
	SourceDir string
	DestDir   string
	// StabilityPolls and StabilityDelay control how long a new file must
	// keep a constant non-zero size before it is considered fully written.
	StabilityPolls int
	StabilityDelay time.Duration
	// OnProcessed is invoked with the destination path after a file has
	// been accumulated and moved. Optional.
	OnProcessed func(path string)
}

// Monitor watches a source folder, accumulates the content of every settled
// file and moves it to the destination folder.
type Monitor struct {
	cfg     Config
	acc     *Accumulator
	log     *slog.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func New(cfg Config, acc *Accumulator, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	if cfg.StabilityPolls <= 0 {
		cfg.StabilityPolls = 10
	}
	if cfg.StabilityDelay <= 0 {
		cfg.StabilityDelay = 500 * time.Millisecond
	}
	return &Monitor{cfg: cfg, acc: acc, log: log}
}

func (m *Monitor) Accumulator() *Accumulator {
	return m.acc
}

// Start begins watching the source folder. Returns false if the monitor is
// already running or the watch cannot be established.
func (m *Monitor) Start() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		m.log.Warn("monitor already running")
		return false
	}

	if err := os.MkdirAll(m.cfg.DestDir, 0o755); err != nil {
		m.log.Error("creating destination folder failed", "dir", m.cfg.DestDir, "err", err)
		return false
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		m.log.Error("creating watcher failed", "err", err)
		return false
	}
	if err := watcher.Add(m.cfg.SourceDir); err != nil {
		m.log.Error("watching source folder failed", "dir", m.cfg.SourceDir, "err", err)
		_ = watcher.Close()
		return false
	}

	m.watcher = watcher
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.running = true

	go m.run()
	m.log.Info("monitor started", "source", m.cfg.SourceDir, "dest", m.cfg.DestDir)
	return true
}

// Stop halts the watch loop. Returns false if the monitor is not running.
func (m *Monitor) Stop() bool {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		m.log.Warn("monitor not running")
		return false
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopCh)
	<-m.doneCh
	if err := m.watcher.Close(); err != nil {
		m.log.Error("closing watcher failed", "err", err)
	}
	m.log.Info("monitor stopped")
	return true
}

func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) run() {
	defer close(m.doneCh)
	for {
		select {
		case <-m.stopCh:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				m.handleNewFile(event.Name)
			}
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.log.Error("watcher error", "err", err)
		}
	}
}

func (m *Monitor) handleNewFile(path string) {
	name := filepath.Base(path)
	if isTempFile(name) {
		m.log.Debug("ignoring temp file", "file", name)
		return
	}
	dest := filepath.Join(m.cfg.DestDir, name)
	if _, err := os.Stat(dest); err == nil {
		m.log.Info("file already processed, skipping", "file", name)
		return
	}

	if !m.waitStable(path) {
		m.log.Warn("file never stabilized, skipping", "file", name)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		m.log.Error("reading file failed", "file", name, "err", err)
		return
	}
	added, err := m.acc.AddCSV(string(content))
	if err != nil {
		m.log.Error("parsing file failed", "file", name, "err", err)
		return
	}
	m.log.Info("file accumulated", "file", name, "newRows", added, "totalRows", m.acc.Len())

	if err := moveFile(path, dest); err != nil {
		m.log.Error("moving file failed", "file", name, "err", err)
		return
	}
	if m.cfg.OnProcessed != nil {
		m.cfg.OnProcessed(dest)
	}
}

// waitStable polls the file size until it holds steady across one interval.
// A zero-size file never counts as stable.
func (m *Monitor) waitStable(path string) bool {
	var last int64 = -1
	for i := 0; i < m.cfg.StabilityPolls; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		size := info.Size()
		if size > 0 && size == last {
			return true
		}
		last = size
		time.Sleep(m.cfg.StabilityDelay)
	}
	return false
}

func isTempFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range tempSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// moveFile renames, falling back to copy+remove for cross-device moves.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
