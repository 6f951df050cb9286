// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries call the registered hooks; main decides what they do. By default
// every hook is a no-op. [LogHooks] writes events to a charmbracelet logger;
// `apollon serve` installs it, and --verbose makes its debug lines visible.
//
// Register hooks at application startup:
//
//	observability.NewLogHooks(logger).Install()
//
// Libraries emit events:
//
//	observability.Pipeline().OnGenerateStart(ctx, curvatures, depth)
//	// ... generate ...
//	observability.Pipeline().OnGenerateComplete(ctx, circles, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the generate/render pipeline.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, curvatures [3]float64, depth int)
	OnGenerateComplete(ctx context.Context, circles int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnGenerateStart(context.Context, [3]float64, int)                 {}
func (NoopPipelineHooks) OnGenerateComplete(context.Context, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// registry is swapped as a whole, so readers never lock.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var (
	current atomic.Pointer[registry]
	writeMu sync.Mutex
)

func init() { Reset() }

func update(fn func(r *registry)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset restores the no-op hooks.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
