package listview

import (
	"sync"
	"time"
)

// CloseAnimation is how long a closing drawer stays mounted.
const CloseAnimation = 200 * time.Millisecond

type DrawerState int

const (
	DrawerClosed DrawerState = iota
	DrawerOpen
	DrawerClosing
)

func (s DrawerState) String() string {
	switch s {
	case DrawerOpen:
		return "open"
	case DrawerClosing:
		return "closing"
	default:
		return "closed"
	}
}

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timerAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

type DrawerOption func(*drawerOptions)

type drawerOptions struct {
	delay     time.Duration
	afterFunc AfterFunc
	manual    bool
}

// WithCloseDelay overrides CloseAnimation.
func WithCloseDelay(d time.Duration) DrawerOption {
	return func(o *drawerOptions) { o.delay = d }
}

// WithAfterFunc replaces time.AfterFunc, mainly for tests.
func WithAfterFunc(f AfterFunc) DrawerOption {
	return func(o *drawerOptions) { o.afterFunc = f }
}

// WithManualFinish disables the close timer. The owner must call Finish
// with the generation returned by Close once its transition has ended.
func WithManualFinish() DrawerOption {
	return func(o *drawerOptions) { o.manual = true }
}

// Drawer keeps the content of a slide-in panel mounted while it animates
// out. The content shown while closing is always the content that was
// shown when the close was requested.
//
// Every full open starts a new generation. A pending close completes only
// if its generation is still current, so a reopen during the close
// transition can never be unmounted by the stale timer.
type Drawer[T any] struct {
	mu       sync.Mutex
	state    DrawerState
	content  T
	gen      uint64
	stop     func() bool
	opts     drawerOptions
	onClosed func()
}

func NewDrawer[T any](opts ...DrawerOption) *Drawer[T] {
	o := drawerOptions{delay: CloseAnimation, afterFunc: timerAfterFunc}
	for _, opt := range opts {
		opt(&o)
	}

	return &Drawer[T]{opts: o}
}

// OnClosed registers fn to run each time the drawer reaches Closed. fn runs
// without the drawer lock held.
func (d *Drawer[T]) OnClosed(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.onClosed = fn
}

// Open shows content. From Closed or Closing it freezes a new snapshot under
// a new generation; while already Open it refreshes the content in place.
func (d *Drawer[T]) Open(content T) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case DrawerOpen:
		d.content = content
	case DrawerClosing:
		d.cancelTimer()

		fallthrough
	default:
		d.gen++
		d.state = DrawerOpen
		d.content = content
	}

	return d.gen
}

// Refresh replaces the content only while the drawer is Open. A closing
// drawer keeps the content it had when the close was requested.
func (d *Drawer[T]) Refresh(content T) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DrawerOpen {
		return false
	}

	d.content = content

	return true
}

// Close starts the close transition and returns its generation. Closing an
// already closing or closed drawer is a no-op and reports false.
func (d *Drawer[T]) Close() (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != DrawerOpen {
		return d.gen, false
	}

	d.state = DrawerClosing

	if !d.opts.manual {
		gen := d.gen
		d.stop = d.opts.afterFunc(d.opts.delay, func() { d.Finish(gen) })
	}

	return d.gen, true
}

// Finish completes the close transition of generation gen. Signals for any
// other generation, or when not closing, are ignored.
func (d *Drawer[T]) Finish(gen uint64) bool {
	d.mu.Lock()

	if d.state != DrawerClosing || gen != d.gen {
		d.mu.Unlock()
		return false
	}

	var zero T

	d.state = DrawerClosed
	d.content = zero
	d.stop = nil
	onClosed := d.onClosed

	d.mu.Unlock()

	if onClosed != nil {
		onClosed()
	}

	return true
}

func (d *Drawer[T]) cancelTimer() {
	if d.stop != nil {
		d.stop()
		d.stop = nil
	}
}

func (d *Drawer[T]) State() DrawerState {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.state
}

// Content returns the mounted content. ok is false once Closed.
func (d *Drawer[T]) Content() (content T, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.content, d.state != DrawerClosed
}

func (d *Drawer[T]) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.gen
}
