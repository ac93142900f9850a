// Package sessionfakes provides in-memory fakes for the widget's
// collaborator interfaces, recording every issued effect.
package sessionfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-widget/internal/utils"
	"github.com/jrsteele09/go-auth-widget/session"
)

var _ session.Exchanger = (*FakeExchanger)(nil)

// FakeExchanger answers every exchange with a fixed token or error.
type FakeExchanger struct {
	lock     sync.Mutex
	rawToken string
	err      error
	calls    []string
}

func NewFakeExchanger(rawToken string, err error) *FakeExchanger {
	return &FakeExchanger{rawToken: rawToken, err: err}
}

func (f *FakeExchanger) Exchange(_ context.Context, reservationID string) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.calls = append(f.calls, reservationID)
	if f.err != nil {
		return "", f.err
	}
	return f.rawToken, nil
}

// Calls returns the reservation ids received, in order.
func (f *FakeExchanger) Calls() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.calls...)
}

var _ session.Storage = (*FakeStorage)(nil)

// FakeStorage is an in-memory session.Storage recording writes and
// removals. Error fields, when set, fail the corresponding operation.
type FakeStorage struct {
	lock      sync.Mutex
	values    map[string]string
	GetErr    error
	SetErr    error
	RemoveErr error
	sets      []string
	removes   []string
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{values: make(map[string]string)}
}

// Seed stores a value directly, bypassing call recording.
func (f *FakeStorage) Seed(key, value string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.values[key] = value
}

func (f *FakeStorage) Get(_ context.Context, key string) (*string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	value, ok := f.values[key]
	if !ok {
		return nil, nil
	}
	return utils.Ptr(value), nil
}

func (f *FakeStorage) Set(_ context.Context, key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.SetErr != nil {
		return f.SetErr
	}
	f.values[key] = value
	f.sets = append(f.sets, value)
	return nil
}

func (f *FakeStorage) Remove(_ context.Context, key string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.removes = append(f.removes, key)
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	delete(f.values, key)
	return nil
}

// Sets returns the values written, in order.
func (f *FakeStorage) Sets() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.sets...)
}

// Removes returns the keys removed, in order.
func (f *FakeStorage) Removes() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.removes...)
}

var _ session.Navigator = (*FakeNavigator)(nil)

// FakeNavigator records navigation effects instead of performing them.
type FakeNavigator struct {
	lock      sync.Mutex
	redirects []string
	replaced  []string
}

func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{}
}

func (f *FakeNavigator) Redirect(url string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.redirects = append(f.redirects, url)
}

func (f *FakeNavigator) ReplaceURL(url string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.replaced = append(f.replaced, url)
}

// Redirects returns the redirect targets, in order.
func (f *FakeNavigator) Redirects() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.redirects...)
}

// Replaced returns the URLs substituted without navigation, in order.
func (f *FakeNavigator) Replaced() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.replaced...)
}
