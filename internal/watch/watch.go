// Package watch re-runs a callback whenever a file's content changes.
package watch

import (
	"context"
	"errors"
	"hash/fnv"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	logx "crontab/pkg/logx"
)

const (
	defaultDebounce    = 250 * time.Millisecond
	restartBackoffBase = 250 * time.Millisecond
	restartBackoffMax  = 5 * time.Second
)

// Watcher watches Path and calls OnChange with its content once at start and
// again after every change. Unchanged content does not trigger a call.
type Watcher struct {
	Path string
	// Debounce collapses bursts of events (editors write in several steps).
	Debounce time.Duration
	// MaxRate caps OnChange calls per second; <= 0 means unlimited.
	MaxRate  int
	Logger   logx.Logger
	OnChange func(ctx context.Context, content []byte) error

	lastHash uint64
	seen     bool
}

// Run blocks until ctx is cancelled, then returns nil. It fails early only
// when the initial read fails or OnChange is missing.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return errors.New("watch: OnChange is required")
	}
	if w.Logger.IsZero() {
		w.Logger = logx.Nop()
	}
	log := w.Logger.With(logx.String("comp", "watch"), logx.String("path", w.Path))

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	limit := rate.Inf
	if w.MaxRate > 0 {
		limit = rate.Limit(w.MaxRate)
	}
	limiter := rate.NewLimiter(limit, 1)

	data, err := os.ReadFile(w.Path)
	if err != nil {
		return err
	}
	w.fire(ctx, log, limiter, data)

	dir := filepath.Dir(w.Path)
	file := filepath.Base(w.Path)
	bo := newBackoff(restartBackoffBase, restartBackoffMax)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fw, err := fsnotify.NewWatcher()
		if err == nil {
			if err = fw.Add(dir); err != nil {
				_ = fw.Close()
			}
		}
		if err != nil {
			wait := bo.next()
			log.Warn("watch init failed; retrying", logx.Err(err), logx.Duration("backoff", wait))
			if !sleep(ctx, wait) {
				return nil
			}
			continue
		}

		bo.reset()
		log.Debug("watcher started", logx.String("dir", dir))
		w.loop(ctx, log, fw, file, debounce, limiter)
		_ = fw.Close()

		if ctx.Err() != nil {
			return nil
		}
		wait := bo.next()
		log.Warn("watcher stopped; restarting", logx.Duration("backoff", wait))
		if !sleep(ctx, wait) {
			return nil
		}
	}
}

// loop consumes events until ctx ends or the fsnotify watcher breaks.
func (w *Watcher) loop(ctx context.Context, log logx.Logger, fw *fsnotify.Watcher, file string, debounce time.Duration, limiter *rate.Limiter) {
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Base(ev.Name), file) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			log.Trace("change detected", logx.String("op", ev.Op.String()))
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				log.Warn("event overflow; forcing re-read", logx.Err(err))
				timer.Reset(debounce)
				continue
			}
			log.Warn("watch error", logx.Err(err))
		case <-timer.C:
			data, err := os.ReadFile(w.Path)
			if err != nil {
				// mid-save rename or deletion; the next event retries
				log.Debug("read failed", logx.Err(err))
				continue
			}
			w.fire(ctx, log, limiter, data)
		}
	}
}

func (w *Watcher) fire(ctx context.Context, log logx.Logger, limiter *rate.Limiter, data []byte) {
	h := digest(data)
	if w.seen && h == w.lastHash {
		log.Debug("content unchanged; skipping")
		return
	}
	if err := limiter.Wait(ctx); err != nil {
		return
	}
	w.seen, w.lastHash = true, h
	if err := w.OnChange(ctx, data); err != nil {
		log.Warn("change handler failed", logx.Err(err))
	}
}

func digest(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}

// backoff is a capped exponential delay with up to 50% jitter.
type backoff struct {
	base, max, cur time.Duration
	rng            *rand.Rand
}

func newBackoff(base, ceiling time.Duration) *backoff {
	return &backoff{base: base, max: ceiling, cur: base, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (b *backoff) next() time.Duration {
	wait := b.cur + time.Duration(b.rng.Int63n(int64(b.cur/2)+1))
	b.cur = min(b.cur*2, b.max)
	return wait
}

func (b *backoff) reset() { b.cur = b.base }

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
