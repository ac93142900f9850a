// Package browser provides a headless stand-in for the hosting page.
package browser

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-auth-widget/session"
)

var _ session.Navigator = (*Frame)(nil)

// Frame tracks the URL of the hosting page and implements the widget's
// navigation effects. A Redirect would navigate a real browser away;
// here it only records the target, which is all the widget ever
// observes.
type Frame struct {
	lock       sync.RWMutex
	currentURL string
	logger     zerolog.Logger
}

// FrameOption defines a function type to modify the Frame instance.
type FrameOption func(*Frame)

// WithLogger sets the frame logger.
func WithLogger(logger zerolog.Logger) FrameOption {
	return func(f *Frame) {
		f.logger = logger
	}
}

// NewFrame creates a frame positioned at startURL.
func NewFrame(startURL string, options ...FrameOption) *Frame {
	frame := &Frame{
		currentURL: startURL,
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(frame)
	}
	return frame
}

// Redirect navigates the frame to an absolute URL.
func (f *Frame) Redirect(url string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.logger.Info().Str("url", url).Msg("navigating")
	f.currentURL = url
}

// ReplaceURL swaps the frame URL without navigating.
func (f *Frame) ReplaceURL(url string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.logger.Debug().Str("url", url).Msg("replacing url")
	f.currentURL = url
}

// CurrentURL returns the URL the frame is positioned at.
func (f *Frame) CurrentURL() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.currentURL
}
