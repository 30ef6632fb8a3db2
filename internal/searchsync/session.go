package searchsync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"GameStore/internal/listing"
	"GameStore/internal/render"
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler creates the debounce timers.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Fetcher runs the listing request; *listing.Client implements it.
type Fetcher interface {
	List(ctx context.Context, term string) (listing.Response, error)
}

type Options struct {
	Debounce     time.Duration
	FetchTimeout time.Duration
	Scheduler    Scheduler
	Log          *zap.Logger

	// OnRender is called with the new view after every visible change.
	// It runs with the session locked and must not call back into it.
	OnRender func(render.View)
}

// Session drives Update. Events are applied one at a time, so timer
// callbacks, fetch completions and user input never interleave.
type Session struct {
	mu       sync.Mutex
	state    State
	timer    Timer
	cancel   context.CancelFunc
	inFlight sync.WaitGroup

	fetcher      Fetcher
	history      History
	sched        Scheduler
	fetchTimeout time.Duration
	onRender     func(render.View)
	log          *zap.Logger
}

// NewSession opens the frontend at start, as a page load would, and
// issues the first fetch when start is the results view.
func NewSession(start Location, f Fetcher, h History, opts Options) *Session {
	if opts.Scheduler == nil {
		opts.Scheduler = wallClock{}
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = listing.DefaultTimeout
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.OnRender == nil {
		opts.OnRender = func(render.View) {}
	}

	s := &Session{
		state:        NewState(start, opts.Debounce),
		fetcher:      f,
		history:      h,
		sched:        opts.Scheduler,
		fetchTimeout: opts.FetchTimeout,
		onRender:     opts.OnRender,
		log:          opts.Log,
	}
	s.Dispatch(Navigated{To: start})
	return s
}

func (s *Session) Type(text string)     { s.Dispatch(Typed{Text: text}) }
func (s *Session) Submit()              { s.Dispatch(Submitted{}) }
func (s *Session) Clear()               { s.Dispatch(Cleared{}) }
func (s *Session) Navigate(to Location) { s.Dispatch(Navigated{To: to}) }

// Close tears the session down and waits for in-flight fetches to return.
// Pending timers never fire afterwards.
func (s *Session) Close() {
	s.Dispatch(TornDown{})

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.inFlight.Wait()
}

// State returns a snapshot of the controller state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) View() render.View {
	return s.State().View()
}

func (s *Session) Dispatch(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, effects := Update(s.state, ev)
	s.state = next

	rendered := false
	for _, eff := range effects {
		switch eff := eff.(type) {
		case ArmTimer:
			s.stopTimer()
			gen := eff.Gen
			s.timer = s.sched.AfterFunc(eff.After, func() { s.Dispatch(DebounceElapsed{Gen: gen}) })
		case CancelTimer:
			s.stopTimer()
		case Navigate:
			s.navigate(eff)
		case StartFetch:
			s.startFetch(eff)
		case Render:
			if !rendered {
				rendered = true
				s.onRender(s.state.View())
			}
		}
	}
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) navigate(n Navigate) {
	if s.history == nil {
		return
	}
	if n.Replace {
		s.history.Replace(n.To)
		return
	}
	s.history.Push(n.To)
}

// startFetch abandons the previous request; its completion would be
// discarded by Update anyway.
func (s *Session) startFetch(f StartFetch) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.fetchTimeout)
	s.cancel = cancel

	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		defer cancel()

		resp, err := s.fetcher.List(ctx, f.Term)
		if err != nil && ctx.Err() != context.Canceled {
			s.log.Warn("listing fetch failed", zap.String("search", f.Term), zap.Uint64("seq", f.Seq), zap.Error(err))
		}
		s.Dispatch(FetchCompleted{Seq: f.Seq, Term: f.Term, Items: resp.Items, Err: err})
	}()
}
