// Package walker traverses a project tree and hands every in-scope
// file's contents to a callback, optionally across a worker pool.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/relictool/relic/internal/ignore"
)

// WalkFunc receives each in-scope file. relativePath is slash-separated
// and relative to the walk root. When err is non-nil, content is nil and
// the file could not be read. Returning an error is logged, not fatal.
type WalkFunc func(relativePath string, content []byte, err error) error

// Walk traverses the tree under rootDir, skipping everything the matcher
// excludes, and calls walkFn for each remaining file. It returns the
// skipped items and any error that stopped the traversal.
func Walk(rootDir string, matcher *ignore.Matcher, walkFn WalkFunc, opts ...Option) ([]SkippedItem, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: absolute path for %q: %w", rootDir, err)
	}

	tracker := newSkippedTracker()

	var wg sync.WaitGroup
	var filesChan chan workItem

	if options.Concurrent {
		filesChan = make(chan workItem, options.MaxWorkers*2)
		for i := 0; i < options.MaxWorkers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for item := range filesChan {
					processFile(item, options, walkFn, tracker)
				}
			}()
		}
	}

	walkErr := filepath.WalkDir(absRootDir, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-options.Context.Done():
			return options.Context.Err()
		default:
		}

		isDir := d != nil && d.IsDir()

		relativePath, relErr := filepath.Rel(absRootDir, path)
		if relErr != nil {
			options.Logger.Error("walker: relative path for %q: %v", path, relErr)
			tracker.track(path, ReasonPathError, isDir)
			return nil
		}
		relativePath = filepath.ToSlash(relativePath)

		if err != nil {
			reason := ReasonWalkError
			if os.IsPermission(err) {
				reason = ReasonPermission
			}
			options.Logger.Warn("walker: %q: %v", relativePath, err)
			tracker.track(relativePath, reason, isDir)
			if isDir && reason == ReasonPermission {
				return filepath.SkipDir
			}
			return nil
		}

		if relativePath == "." {
			return nil
		}

		if matcher.ShouldIgnore(relativePath, isDir) {
			tracker.track(relativePath, ReasonIgnored, isDir)
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		if isDir {
			return nil
		}

		item := workItem{path: path, relativePath: relativePath}
		if options.Concurrent {
			select {
			case <-options.Context.Done():
				return options.Context.Err()
			case filesChan <- item:
			}
		} else {
			processFile(item, options, walkFn, tracker)
		}

		return nil
	})

	if options.Concurrent {
		close(filesChan)
		wg.Wait()
	}

	return tracker.items(), walkErr
}

type workItem struct {
	path         string
	relativePath string
}

// processFile reads one file and hands it to the callback.
func processFile(item workItem, options WalkOptions, walkFn WalkFunc, tracker *skippedTracker) {
	info, err := os.Lstat(item.path)
	if err != nil {
		tracker.track(item.relativePath, ReasonStatError, false)
		_ = walkFn(item.relativePath, nil, fmt.Errorf("stat: %w", err))
		return
	}

	if !info.Mode().IsRegular() {
		tracker.track(item.relativePath, ReasonNotRegular, false)
		return
	}

	if options.MaxFileSize > 0 && info.Size() > options.MaxFileSize {
		options.Logger.Debug("walker: %q exceeds size limit (%d > %d bytes)",
			item.relativePath, info.Size(), options.MaxFileSize)
		tracker.track(item.relativePath, ReasonSizeLimit, false)
		return
	}

	content, err := os.ReadFile(item.path)
	if err != nil {
		tracker.track(item.relativePath, ReasonReadError, false)
		_ = walkFn(item.relativePath, nil, fmt.Errorf("read: %w", err))
		return
	}

	if err := walkFn(item.relativePath, content, nil); err != nil {
		options.Logger.Error("walker: callback for %q: %v", item.relativePath, err)
	}
}
