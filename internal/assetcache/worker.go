package assetcache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrOffline is returned when the network is unreachable and no cached
// copy exists for the requested asset.
var ErrOffline = errors.New("offline and not cached")

// State is the worker lifecycle position. Interception only happens
// once the worker is activated.
type State int

const (
	StateNew State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActivated
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	default:
		return "unknown"
	}
}

type eventKind int

const (
	eventInstall eventKind = iota
	eventActivate
)

// lifecycleEvent carries a completion channel so the handler can run
// to completion before the next lifecycle event is taken.
type lifecycleEvent struct {
	kind eventKind
	ctx  context.Context
	done chan error
}

// Worker pre-caches the shell manifest at install, sweeps stale cache
// versions at activation, and then intercepts GET fetches: cache-first
// for same-origin assets, network-first for everything else.
type Worker struct {
	log       *logrus.Logger
	store     *Store
	cacheName string
	origin    *url.URL
	manifest  []string
	client    *http.Client

	mu    sync.RWMutex
	state State
	cache *Cache

	events chan lifecycleEvent
	stop   chan struct{}
}

func NewWorker(log *logrus.Logger, store *Store, origin *url.URL, version string, manifest []string, client *http.Client) *Worker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Worker{
		log:       log,
		store:     store,
		cacheName: "clinic-shell-" + version,
		origin:    origin,
		manifest:  manifest,
		client:    client,
		state:     StateNew,
		events:    make(chan lifecycleEvent),
		stop:      make(chan struct{}),
	}
}

// CacheName is the versioned cache this worker owns.
func (w *Worker) CacheName() string {
	return w.cacheName
}

func (w *Worker) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Worker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// Run processes lifecycle events one at a time until Close is called.
func (w *Worker) Run() {
	for {
		select {
		case ev := <-w.events:
			switch ev.kind {
			case eventInstall:
				ev.done <- w.install(ev.ctx)
			case eventActivate:
				ev.done <- w.activate(ev.ctx)
			}
		case <-w.stop:
			return
		}
	}
}

// Start runs the lifecycle loop on its own goroutine.
func (w *Worker) Start() {
	go w.Run()
}

func (w *Worker) Close() {
	close(w.stop)
}

func (w *Worker) dispatch(ctx context.Context, kind eventKind) error {
	ev := lifecycleEvent{kind: kind, ctx: ctx, done: make(chan error, 1)}
	select {
	case w.events <- ev:
	case <-w.stop:
		return errors.New("worker stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-ev.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Install pre-populates the versioned cache with the full manifest.
// Any single failed fetch fails the whole install and nothing is
// written.
func (w *Worker) Install(ctx context.Context) error {
	return w.dispatch(ctx, eventInstall)
}

// Activate sweeps every cache whose name is not this worker's and
// begins intercepting immediately.
func (w *Worker) Activate(ctx context.Context) error {
	return w.dispatch(ctx, eventActivate)
}

func (w *Worker) install(ctx context.Context) error {
	w.setState(StateInstalling)

	entries := make([]*Entry, 0, len(w.manifest))
	for _, path := range w.manifest {
		target := w.origin.ResolveReference(&url.URL{Path: path}).String()
		entry, err := w.fetchEntry(ctx, target)
		if err != nil {
			w.setState(StateNew)
			return fmt.Errorf("install %s: %w", path, err)
		}
		entries = append(entries, entry)
	}

	cache, err := w.store.Open(w.cacheName)
	if err != nil {
		w.setState(StateNew)
		return err
	}
	for _, entry := range entries {
		if err := cache.Put(entry); err != nil {
			w.setState(StateNew)
			return fmt.Errorf("install %s: %w", entry.URL, err)
		}
	}

	w.mu.Lock()
	w.cache = cache
	w.state = StateInstalled
	w.mu.Unlock()

	w.log.Infof("Asset cache %s installed (%d assets)", w.cacheName, len(entries))

	return nil
}

func (w *Worker) activate(ctx context.Context) error {
	w.mu.RLock()
	installed := w.state == StateInstalled || w.state == StateActivated
	w.mu.RUnlock()
	if !installed {
		return fmt.Errorf("cannot activate from state %s", w.State())
	}

	w.setState(StateActivating)

	names, err := w.store.Names()
	if err != nil {
		w.setState(StateInstalled)
		return err
	}
	for _, name := range names {
		if name == w.cacheName {
			continue
		}
		if err := w.store.Delete(name); err != nil {
			w.log.Warnf("Failed to retire stale cache %s: %v", name, err)
			continue
		}
		w.log.Infof("Retired stale cache %s", name)
	}

	w.setState(StateActivated)

	return nil
}

// Fetch intercepts a request per the interception contract. Non-GET
// requests and requests issued before activation pass straight
// through to the network.
func (w *Worker) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || w.State() != StateActivated {
		passthrough := req.Clone(ctx)
		if passthrough.URL.Host == "" {
			passthrough.URL = w.origin.ResolveReference(passthrough.URL)
		}
		return w.client.Do(passthrough)
	}

	if w.isSameOrigin(req.URL) {
		return w.fetchCacheFirst(ctx, req)
	}
	return w.fetchNetworkFirst(ctx, req)
}

func (w *Worker) isSameOrigin(u *url.URL) bool {
	if u.Host == "" {
		return true
	}
	return u.Scheme == w.origin.Scheme && u.Host == w.origin.Host
}

func (w *Worker) currentCache() *Cache {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cache
}

func (w *Worker) fetchCacheFirst(ctx context.Context, req *http.Request) (*http.Response, error) {
	target := w.origin.ResolveReference(req.URL).String()
	cache := w.currentCache()

	entry, err := cache.Match(target)
	if err != nil {
		w.log.Warnf("Cache read failed for %s: %v", target, err)
	}
	if entry != nil {
		return entry.Response(req), nil
	}

	entry, err = w.fetchEntry(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	// Store-back is best effort; the response is served either way.
	if perr := cache.Put(entry); perr != nil {
		w.log.Warnf("Cache write failed for %s: %v", target, perr)
	}
	return entry.Response(req), nil
}

func (w *Worker) fetchNetworkFirst(ctx context.Context, req *http.Request) (*http.Response, error) {
	target := req.URL.String()
	cache := w.currentCache()

	entry, err := w.fetchEntry(ctx, target)
	if err == nil {
		if perr := cache.Put(entry); perr != nil {
			w.log.Warnf("Cache write failed for %s: %v", target, perr)
		}
		return entry.Response(req), nil
	}

	cached, merr := cache.Match(target)
	if merr != nil {
		w.log.Warnf("Cache read failed for %s: %v", target, merr)
	}
	if cached != nil {
		return cached.Response(req), nil
	}
	return nil, fmt.Errorf("fetch %s: %w", target, ErrOffline)
}

func (w *Worker) fetchEntry(ctx context.Context, target string) (*Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	res, err := w.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return &Entry{
		URL:      target,
		Status:   res.StatusCode,
		Header:   res.Header.Clone(),
		Body:     body,
		StoredAt: time.Now(),
	}, nil
}

// Response materializes the entry as a served HTTP response.
func (e *Entry) Response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}
