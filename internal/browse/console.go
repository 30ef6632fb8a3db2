// Package browse is a line-oriented terminal frontend for the catalog.
package browse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"GameStore/internal/render"
	"GameStore/internal/searchsync"
)

const help = `commands:
  <text>     set the search box to <text> (an empty line clears it by typing)
  :submit    search now
  :clear     press the clear button
  :home      open the home page
  :games     open the games page
  :back      history back
  :forward   history forward
  :refresh   reload the current page
  :quit      exit
`

// Console reads commands and redraws the text view after every change.
type Console struct {
	Out          io.Writer
	Fetcher      searchsync.Fetcher
	Debounce     time.Duration
	FetchTimeout time.Duration
	Log          *zap.Logger

	mu sync.Mutex
}

// Run drives one session starting at start until :quit, end of input or
// ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader, start searchsync.Location) error {
	if c.Log == nil {
		c.Log = zap.NewNop()
	}

	hist := searchsync.NewMemoryHistory(start)
	sess := searchsync.NewSession(start, c.Fetcher, hist, searchsync.Options{
		Debounce:     c.Debounce,
		FetchTimeout: c.FetchTimeout,
		Log:          c.Log,
		OnRender:     c.draw,
	})
	defer sess.Close()

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	errs := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		errs <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case line := <-lines:
			if !c.exec(sess, hist, line) {
				return nil
			}
		}
	}
}

// exec applies one input line and reports whether to keep going.
func (c *Console) exec(sess *searchsync.Session, hist *searchsync.MemoryHistory, line string) bool {
	if !strings.HasPrefix(line, ":") {
		sess.Type(line)
		return true
	}

	switch cmd := strings.TrimSpace(line); cmd {
	case ":submit":
		sess.Submit()
	case ":clear":
		sess.Clear()
	case ":home":
		visit(sess, hist, searchsync.Home())
	case ":games":
		visit(sess, hist, searchsync.Games(""))
	case ":back":
		if loc, ok := hist.Back(); ok {
			sess.Navigate(loc)
		} else {
			c.printf("no previous page\n")
		}
	case ":forward":
		if loc, ok := hist.Forward(); ok {
			sess.Navigate(loc)
		} else {
			c.printf("no next page\n")
		}
	case ":refresh":
		sess.Navigate(hist.Current())
	case ":quit", ":q":
		return false
	default:
		c.printf("unknown command %s\n%s", cmd, help)
	}
	return true
}

// visit follows a link: the browser pushes the entry, then the page loads.
func visit(sess *searchsync.Session, hist *searchsync.MemoryHistory, to searchsync.Location) {
	hist.Push(to)
	sess.Navigate(to)
}

func (c *Console) draw(v render.View) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.Out, "----")
	if err := render.Text(c.Out, v); err != nil {
		c.Log.Warn("render failed", zap.Error(err))
	}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.Out, format, args...)
}

// Help is the command summary.
func Help() string { return help }
