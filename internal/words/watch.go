// internal/words/watch.go
//
// Hot reload for configured list files. Watches the parent directories so
// editor atomic saves (rename + create) keep working, and re-runs Load on
// any change to a watched file. A failed reload keeps the previous lists.

package words

import (
	"errors"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch reloads the lists whenever wordsPath or phrasesPath changes on disk.
// Empty paths (embedded defaults) are ignored; watching nothing is an error.
// The returned stop function releases the watcher.
func Watch(wordsPath, phrasesPath string) (stop func(), err error) {
	targets := make(map[string]struct{})
	dirs := make(map[string]struct{})
	for _, p := range []string{wordsPath, phrasesPath} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	if len(targets) == 0 {
		return nil, errors.New("words: no list files to watch")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for d := range dirs {
		if err := w.Add(d); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				abs, err := filepath.Abs(ev.Name)
				if err != nil {
					continue
				}
				if _, watched := targets[abs]; !watched {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := Load(wordsPath, phrasesPath); err != nil {
					log.Warn().Err(err).Str("file", ev.Name).Msg("word list reload failed, keeping previous lists")
					continue
				}
				wc, pc := Stats()
				log.Info().Str("file", ev.Name).Int("words", wc).Int("phrases", pc).Msg("word lists reloaded")
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("word list watcher error")
			}
		}
	}()

	return func() { _ = w.Close() }, nil
}
