package searchsync

import (
	"strings"
	"time"

	"GameStore/internal/listing"
	"GameStore/internal/render"
)

const DefaultDebounce = 250 * time.Millisecond

// Fetch tracks the newest listing request issued for the URL term.
type Fetch struct {
	Seq     uint64
	Term    string
	Loading bool
	Failed  bool
	Items   []listing.Item
}

type State struct {
	Location Location
	Input    string
	Debounce time.Duration

	// TimerGen identifies the armed debounce timer; elapsed events
	// carrying another generation are stale.
	TimerGen   uint64
	TimerArmed bool

	Fetch  Fetch
	Closed bool
}

// NewState starts on loc with the input showing its term. Nothing is
// fetched until the first Navigated event.
func NewState(loc Location, debounce time.Duration) State {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return State{Location: loc, Input: loc.Search, Debounce: debounce}
}

func (s State) View() render.View {
	v := render.View{
		Page:       render.PageHome,
		Input:      s.Input,
		Term:       s.Location.Search,
		DebounceMS: s.Debounce.Milliseconds(),
	}
	if s.Location.OnGames() {
		v.Page = render.PageGames
		v.Loading = s.Fetch.Loading
		v.Failed = s.Fetch.Failed
		v.Items = s.Fetch.Items
	}
	return v
}

type Event interface{ isEvent() }

// Typed is a keystroke; Text is the whole input value afterwards.
type Typed struct{ Text string }

type DebounceElapsed struct{ Gen uint64 }

// Submitted is Enter or an explicit search button.
type Submitted struct{}

// Cleared is the clear button.
type Cleared struct{}

// Navigated is a location change the controller did not cause: first
// load, refresh, back/forward, or a link.
type Navigated struct{ To Location }

type FetchCompleted struct {
	Seq   uint64
	Term  string
	Items []listing.Item
	Err   error
}

type TornDown struct{}

func (Typed) isEvent()           {}
func (DebounceElapsed) isEvent() {}
func (Submitted) isEvent()       {}
func (Cleared) isEvent()         {}
func (Navigated) isEvent()       {}
func (FetchCompleted) isEvent()  {}
func (TornDown) isEvent()        {}

type Effect interface{ isEffect() }

// ArmTimer replaces any armed debounce timer.
type ArmTimer struct {
	Gen   uint64
	After time.Duration
}

type CancelTimer struct{}

// Navigate updates the browser URL. Replace keeps live typing out of the
// back stack.
type Navigate struct {
	To      Location
	Replace bool
}

type StartFetch struct {
	Seq  uint64
	Term string
}

// Render asks the host to redraw from the current state.
type Render struct{}

func (ArmTimer) isEffect()    {}
func (CancelTimer) isEffect() {}
func (Navigate) isEffect()    {}
func (StartFetch) isEffect()  {}
func (Render) isEffect()      {}

// Update is the only place the search state changes. It is pure: the
// returned effects describe the timers, navigations and fetches the host
// must perform.
func Update(s State, ev Event) (State, []Effect) {
	if s.Closed {
		return s, nil
	}

	switch ev := ev.(type) {
	case Typed:
		s.Input = ev.Text
		s.TimerGen++
		s.TimerArmed = true
		return s, []Effect{ArmTimer{Gen: s.TimerGen, After: s.Debounce}, Render{}}

	case DebounceElapsed:
		if !s.TimerArmed || ev.Gen != s.TimerGen {
			return s, nil
		}
		s.TimerArmed = false

		term := strings.TrimSpace(s.Input)
		if s.Location.OnGames() {
			if term == s.Location.Search {
				return s, nil
			}
			return commit(s, Games(term), true, nil)
		}
		if term == "" {
			return s, nil
		}
		return commit(s, Games(term), false, nil)

	case Submitted:
		var effs []Effect
		s, effs = cancelTimer(s)
		target := Games(strings.TrimSpace(s.Input))
		if target == s.Location {
			return s, effs
		}
		return commit(s, target, false, effs)

	case Cleared:
		s.Input = ""
		var effs []Effect
		s, effs = cancelTimer(s)
		if !s.Location.OnGames() || s.Location == Games("") {
			return s, append(effs, Render{})
		}
		return commit(s, Games(""), false, effs)

	case Navigated:
		var effs []Effect
		s, effs = cancelTimer(s)
		s.Location = ev.To
		if !ev.To.OnGames() {
			return s, append(effs, Render{})
		}
		s.Input = ev.To.Search
		var fetch []Effect
		s, fetch = startFetch(s)
		return s, append(append(effs, fetch...), Render{})

	case FetchCompleted:
		if ev.Seq != s.Fetch.Seq || ev.Term != s.Location.Search || !s.Location.OnGames() {
			return s, nil
		}
		s.Fetch.Loading = false
		if ev.Err != nil {
			s.Fetch.Failed = true
			s.Fetch.Items = []listing.Item{}
		} else {
			s.Fetch.Failed = false
			s.Fetch.Items = ev.Items
			if s.Fetch.Items == nil {
				s.Fetch.Items = []listing.Item{}
			}
		}
		return s, []Effect{Render{}}

	case TornDown:
		var effs []Effect
		s, effs = cancelTimer(s)
		s.Closed = true
		s.Fetch.Loading = false
		return s, effs
	}

	return s, nil
}

// commit moves to a results location the controller chose itself. The
// input is left alone so a trailing space being typed is not eaten.
func commit(s State, to Location, replace bool, effs []Effect) (State, []Effect) {
	s.Location = to
	effs = append(effs, Navigate{To: to, Replace: replace})

	var fetch []Effect
	s, fetch = startFetch(s)
	return s, append(append(effs, fetch...), Render{})
}

func startFetch(s State) (State, []Effect) {
	s.Fetch = Fetch{
		Seq:     s.Fetch.Seq + 1,
		Term:    s.Location.Search,
		Loading: true,
		Items:   s.Fetch.Items,
	}
	return s, []Effect{StartFetch{Seq: s.Fetch.Seq, Term: s.Fetch.Term}}
}

func cancelTimer(s State) (State, []Effect) {
	if !s.TimerArmed {
		return s, nil
	}
	s.TimerArmed = false
	return s, []Effect{CancelTimer{}}
}
