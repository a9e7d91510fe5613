// Package refresh re-queries the option catalog once the user stops
// editing their selection.
package refresh

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/abhisek/fitplan/internal/catalog"
	"github.com/abhisek/fitplan/internal/fitness"
)

// DefaultWindow is the quiescence window used when none is configured.
const DefaultWindow = 3 * time.Second

// Request is the state a refetch is made for.
type Request struct {
	Age       int
	Selection fitness.SelectionSet
}

// Result pairs a fetch outcome with the request that produced it.
type Result struct {
	Request Request
	catalog.Result
}

// FetchFunc performs one refetch. It must honour ctx cancellation.
type FetchFunc func(ctx context.Context, req Request) catalog.Result

// Config configures a Controller.
type Config struct {
	Window time.Duration
	Clock  Clock
}

// Controller debounces selection changes into catalog refetches.
//
// Every Notify restarts the quiescence window. When the window elapses
// without another Notify, the latest request is fetched. At most one fetch
// runs at a time: a trigger during a fetch waits for it, and the finished
// fetch's result is dropped in favour of the newer request.
type Controller struct {
	window time.Duration
	clock  Clock
	fetch  FetchFunc

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	results chan Result
	wg      sync.WaitGroup

	mu       sync.Mutex
	timer    Timer
	gen      uint64
	latest   Request
	inFlight bool
	pending  bool
	closed   bool
}

// New creates a Controller. Close must be called to release it.
func New(cfg Config, fetch FetchFunc) *Controller {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		window:  cfg.Window,
		clock:   cfg.Clock,
		fetch:   fetch,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		results: make(chan Result),
	}
}

// Results delivers completed refetches. It is closed by Close.
func (c *Controller) Results() <-chan Result {
	return c.results
}

// Notify records a selection change and restarts the quiescence window.
func (c *Controller) Notify(req Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.gen++
	c.latest = Request{Age: req.Age, Selection: req.Selection.Clone()}
	if c.timer != nil {
		c.timer.Stop()
	}
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.window, func() { c.fire(gen) })
}

// Busy reports whether a refetch is scheduled or running.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil || c.inFlight
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		return
	}
	c.timer = nil

	if c.inFlight {
		c.pending = true
		return
	}
	c.inFlight = true
	c.wg.Add(1)
	go c.run(c.latest)
}

func (c *Controller) run(req Request) {
	defer c.wg.Done()
	for {
		log.WithField("age", req.Age).Debug("refreshing catalog")
		res := c.fetch(c.ctx, req)

		next, again := c.advance(false)
		if again {
			log.Debug("dropping superseded catalog refresh")
			req = next
			continue
		}
		if c.isClosed() {
			return
		}

		select {
		case c.results <- Result{Request: req, Result: res}:
		case <-c.done:
			return
		}

		next, again = c.advance(true)
		if !again {
			return
		}
		req = next
	}
}

// advance decides what the worker does after a fetch or a delivery: pick
// up a pending request, or (when idle is set) mark the worker finished.
func (c *Controller) advance(idle bool) (Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending && !c.closed {
		c.pending = false
		return c.latest, true
	}
	if idle {
		c.inFlight = false
	}
	return Request{}, false
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Close cancels any scheduled or running refetch, waits for the worker to
// exit and closes Results. It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.cancel()
	close(c.done)
	c.wg.Wait()
	close(c.results)
}
