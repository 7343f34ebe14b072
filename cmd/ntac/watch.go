package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jpillora/backoff"
	"github.com/urfave/cli/v2"

	"github.com/txta-go/txta/internal/cache"
)

var watchCommand = &cli.Command{
	Name:      "watch",
	Usage:     "watch a directory and re-check .xta/.xml documents as they change",
	ArgsUsage: "<dir>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "cache", Value: ".ntac-cache.json", Usage: "incremental-check cache path"},
	},
	Action: func(c *cli.Context) error {
		dir := c.Args().First()
		if dir == "" {
			dir = "."
		}
		store, err := cache.Load(c.String("cache"))
		if err != nil {
			return fmt.Errorf("load cache: %w", err)
		}

		watcher, err := openWatcher(dir)
		if err != nil {
			return err
		}
		defer watcher.Close()

		log.Printf("watching %s (cache: %s)", dir, c.String("cache"))
		return watchLoop(watcher, store)
	},
}

// openWatcher retries fsnotify.NewWatcher/Add with an exponential backoff,
// the way a long-lived watcher has to tolerate a directory that is briefly
// unavailable (a network mount still mounting, a directory mid-rename).
func openWatcher(dir string) (*fsnotify.Watcher, error) {
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    5 * time.Second,
		Factor: 2,
		Jitter: true,
	}
	var lastErr error
	for attempt := 0; attempt < 5; attempt++ {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			lastErr = err
			time.Sleep(b.Duration())
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			lastErr = err
			time.Sleep(b.Duration())
			continue
		}
		return watcher, nil
	}
	return nil, fmt.Errorf("open watcher on %s: %w", dir, lastErr)
}

func watchLoop(watcher *fsnotify.Watcher, store *cache.Cache) error {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			handleChange(store, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Println(err)
		}
	}
}

func handleChange(store *cache.Cache, path string) {
	if !strings.HasSuffix(path, ".xta") && !strings.HasSuffix(path, ".xml") {
		return
	}
	changed, err := store.NeedsRecheck(path)
	if err != nil {
		log.Printf("stat %s: %v", path, err)
		return
	}
	if !changed {
		return
	}
	_, collector, perr := loadSystem(path)
	printDiagnostics(collector)
	if perr != nil {
		log.Printf("%s: %v", filepath.Base(path), perr)
		return
	}
	if err := store.Save(); err != nil {
		log.Printf("save cache: %v", err)
	}
	log.Printf("%s rechecked, %d diagnostic(s)", filepath.Base(path), len(collector.Diags))
}
