package legalize

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigFile is the on-disk shape of a legalizer tunables file.
type ConfigFile struct {
	MaxDisplacementRows       int     `json:"max_displacement_rows"`
	PaddingLeft               int     `json:"padding_left"`
	PaddingRight              int     `json:"padding_right"`
	InitialPower              string  `json:"initial_power"`
	DisallowOneSiteGaps       bool    `json:"disallow_one_site_gaps"`
	DiamondSearchHeight       int     `json:"diamond_search_height"`
	DiamondSearchDiv          int     `json:"diamond_search_div"`
	DenseUtilizationThreshold float64 `json:"dense_utilization_threshold"`
	BinSearchWidth            int     `json:"bin_search_width"`
	ShiftMoveRegionScale      int     `json:"shift_move_region_scale"`
}

// ToOptions converts a parsed config file into an Options value, starting
// from DefaultOptions so an omitted field keeps its default rather than
// zeroing out.
func (c ConfigFile) ToOptions() Options {
	opts := DefaultOptions()
	if c.MaxDisplacementRows != 0 {
		opts.MaxDisplacementRows = c.MaxDisplacementRows
	}
	opts.PaddingLeft = c.PaddingLeft
	opts.PaddingRight = c.PaddingRight
	if c.InitialPower != "" {
		opts.InitialPower = parsePower(c.InitialPower)
	}
	opts.DisallowOneSiteGaps = c.DisallowOneSiteGaps
	if c.DiamondSearchHeight != 0 {
		opts.DiamondSearchHeight = c.DiamondSearchHeight
	}
	if c.DiamondSearchDiv != 0 {
		opts.DiamondSearchDiv = c.DiamondSearchDiv
	}
	if c.DenseUtilizationThreshold != 0 {
		opts.DenseUtilizationThreshold = c.DenseUtilizationThreshold
	}
	if c.BinSearchWidth != 0 {
		opts.BinSearchWidth = c.BinSearchWidth
	}
	if c.ShiftMoveRegionScale != 0 {
		opts.ShiftMoveRegionScale = c.ShiftMoveRegionScale
	}
	return opts
}

// LoadConfigFile reads and parses a JSON tunables file.
func LoadConfigFile(path string) (ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ConfigFile{}, fmt.Errorf("legalize: reading config %s: %w", path, err)
	}
	var cf ConfigFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return ConfigFile{}, fmt.Errorf("legalize: parsing config %s: %w", path, err)
	}
	return cf, nil
}

// ConfigWatcher hot-reloads a tunables file: a long-running host calls
// Options() to get the tunables in effect for the *next* run. Neither
// cmd/legalize nor the gRPC service uses it; both read their tunables
// once at startup. A run already in progress is never affected
// by a file change observed mid-flight — the watcher only swaps the
// cached Options value, it never reaches into a live Legalizer.
type ConfigWatcher struct {
	mu      sync.RWMutex
	path    string
	current Options
	watcher *fsnotify.Watcher
	diag    *Diagnostics
}

// NewConfigWatcher loads path once synchronously and starts watching it
// for changes in the background.
func NewConfigWatcher(path string, diag *Diagnostics) (*ConfigWatcher, error) {
	cf, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("legalize: starting config watcher: %w", err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("legalize: watching config %s: %w", path, err)
	}

	cw := &ConfigWatcher{path: path, current: cf.ToOptions(), watcher: w, diag: diag}
	go cw.run()
	return cw, nil
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cf, err := LoadConfigFile(cw.path)
			if err != nil {
				if cw.diag != nil {
					cw.diag.Warn("config", "reload of %s failed: %v", cw.path, err)
				}
				continue
			}
			cw.mu.Lock()
			cw.current = cf.ToOptions()
			cw.mu.Unlock()
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			if cw.diag != nil {
				cw.diag.Warn("config", "watch error: %v", err)
			}
		}
	}
}

// Options returns the tunables currently in effect.
func (cw *ConfigWatcher) Options() Options {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.current
}

// Close stops the background watcher.
func (cw *ConfigWatcher) Close() error {
	return cw.watcher.Close()
}
