package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/grindlemire/btngen/internal/log"
)

// watchDebounce is how long the watcher waits for more events before
// regenerating. Editors often emit several writes per save.
const watchDebounce = 100 * time.Millisecond

// watchRoot is a directory to watch, and whether its subdirectories are
// watched too.
type watchRoot struct {
	dir       string
	recursive bool
}

// watchRoots maps generate paths to the directories that contain them.
func watchRoots(paths []string) []watchRoot {
	var roots []watchRoot
	for _, path := range paths {
		if root, ok := recursiveRoot(path); ok {
			roots = append(roots, watchRoot{dir: root, recursive: true})
			continue
		}
		if isGlob(path) {
			// Watch everything below the glob's static prefix.
			base := globBase(path)
			roots = append(roots, watchRoot{dir: base, recursive: true})
			continue
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			roots = append(roots, watchRoot{dir: path})
			continue
		}
		roots = append(roots, watchRoot{dir: filepath.Dir(path)})
	}
	return roots
}

// globBase returns the longest leading directory of pattern free of glob
// metacharacters.
func globBase(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

// watchFiles regenerates .dcx files matched by paths whenever they are
// created or written, until ctx is cancelled.
func (opts *generateOptions) watchFiles(ctx context.Context, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Directories whose new subdirectories are watched as well.
	recursive := make(map[string]bool)
	for _, root := range watchRoots(paths) {
		if root.recursive {
			err = addWatchRecursive(watcher, root.dir, recursive)
		} else {
			err = watcher.Add(root.dir)
		}
		if err != nil {
			return fmt.Errorf("watching %s: %w", root.dir, err)
		}
		log.Watch("watching %s (recursive=%t)", root.dir, root.recursive)
	}

	fmt.Fprintln(opts.stderr, "Watching for changes. Press Ctrl+C to stop.")

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending = make(map[string]bool)
	)
	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
		} else {
			timer.Reset(watchDebounce)
		}
		timerC = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			log.Watch("stopped")
			return nil

		case <-timerC:
			timerC = nil
			changed := pending
			pending = make(map[string]bool)
			if err := opts.regenerate(ctx, paths, changed); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Watch("watcher error: %v", err)

		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Create) && recursive[filepath.Dir(evt.Name)] {
				if fi, statErr := os.Stat(evt.Name); statErr == nil && fi.IsDir() {
					if addErr := addWatchRecursive(watcher, evt.Name, recursive); addErr != nil {
						log.Watch("add watch failed: path=%q err=%v", evt.Name, addErr)
					}
				}
			}
			if shouldRegenerate(evt) {
				log.Watch("%s %s", evt.Op, evt.Name)
				pending[filepath.Clean(evt.Name)] = true
				resetTimer()
			}
		}
	}
}

// regenerate re-runs generation for the changed files that paths still
// select.
func (opts *generateOptions) regenerate(ctx context.Context, paths []string, changed map[string]bool) error {
	files, err := collectDcxFiles(paths)
	if err != nil {
		log.Watch("collecting files: %v", err)
		return nil
	}

	var selected []string
	for _, f := range files {
		if changed[f] {
			selected = append(selected, f)
		}
	}
	if len(selected) == 0 {
		return nil
	}

	results, err := opts.generateFiles(ctx, selected)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if failed := opts.report(results); failed > 0 {
		fmt.Fprintf(opts.stderr, "%d file(s) had errors\n", failed)
	}
	return nil
}

// shouldRegenerate reports whether evt touched a visible .dcx file.
func shouldRegenerate(evt fsnotify.Event) bool {
	if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(evt.Name)
	return strings.HasSuffix(base, sourceExt) && !strings.HasPrefix(base, ".")
}

// addWatchRecursive watches root and every directory below it that a
// recursive walk would visit.
func addWatchRecursive(watcher *fsnotify.Watcher, root string, recursive map[string]bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		recursive[filepath.Clean(path)] = true
		return watcher.Add(path)
	})
}
