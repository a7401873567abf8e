package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Artifacts are loaded once per path and cached for the process lifetime.
var (
	cacheMu      sync.Mutex
	modelCache   = make(map[string]*RandomForest)
	featureCache = make(map[string][]string)
)

// LoadModel deserializes the model artifact at path. Repeated calls with the
// same path return the cached instance without re-reading the file.
func LoadModel(path string) (*RandomForest, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if model, ok := modelCache[path]; ok {
		return model, nil
	}
	model := &RandomForest{}
	if err := model.Load(path); err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	modelCache[path] = model
	return model, nil
}

// LoadFeatureNames deserializes the ordered feature-name list at path. On
// failure it returns an empty list alongside the error.
func LoadFeatureNames(path string) ([]string, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if names, ok := featureCache[path]; ok {
		return names, nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return []string{}, fmt.Errorf("load feature names %s: %w", path, err)
	}
	var names []string
	if err := json.Unmarshal(payload, &names); err != nil {
		return []string{}, fmt.Errorf("load feature names %s: %w", path, err)
	}
	if len(names) == 0 {
		return []string{}, fmt.Errorf("load feature names %s: artifact is empty", path)
	}
	featureCache[path] = names
	return names, nil
}

// ResetCache drops all cached artifacts. Test helper.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	modelCache = make(map[string]*RandomForest)
	featureCache = make(map[string][]string)
}

// WatchArtifacts warns when an artifact file changes on disk after loading.
// Loaded artifacts stay immutable; a restart picks up the new files. The
// returned func stops the watcher.
func WatchArtifacts(logger *zap.Logger, paths ...string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := make(map[string]bool, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		watched[abs] = true
		// Watch the directory: editors and atomic writes replace the file.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				abs, err := filepath.Abs(event.Name)
				if err != nil || !watched[abs] {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					logger.Warn("artifact changed on disk; restart to load it",
						zap.String("path", event.Name),
						zap.String("op", event.Op.String()))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("artifact watcher error", zap.Error(err))
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
