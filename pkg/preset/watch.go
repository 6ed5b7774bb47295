package preset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/overtone/pkg/framework/debug"
	"github.com/justyntemme/overtone/pkg/framework/param"
)

// Watch reloads the preset at path into reg whenever the file is written or
// replaced, until ctx is done. Each successfully applied preset is offered on
// the returned channel, which is closed when watching stops. Bad files are
// logged and skipped so a half-saved edit does not stop playback.
func Watch(ctx context.Context, path string, reg *param.Registry, log *debug.Logger) (<-chan *Preset, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("can't create watcher: %w", err)
	}

	// Editors often save by renaming a temp file over the original, which
	// drops a watch on the file itself. Watch the directory instead.
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch preset: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch preset: %w", err)
	}

	applied := make(chan *Preset, 1)

	go func() {
		defer close(applied)
		defer watcher.Close()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				p, err := LoadFile(abs)
				if err != nil {
					log.Warn("reload skipped: %v", err)
					continue
				}
				if err := p.Apply(reg); err != nil {
					log.Warn("reload skipped: %v", err)
					continue
				}
				log.Info("applied preset %q", p.Name)

				select {
				case applied <- p:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("watcher: %v", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return applied, nil
}
