package framework

import (
	"context"
	"errors"
	"sync"
)

var ErrEmptyNavigation = errors.New("navigation requires at least one path command")

// Navigator moves the current request to another route.
type Navigator interface {
	Navigate(ctx context.Context, commands []string) (bool, error)
}

// Navigation records the first navigation requested while a route loads.
type Navigation struct {
	mu       sync.Mutex
	commands []string
}

type navigationKey struct{}

func WithNavigation(ctx context.Context) (context.Context, *Navigation) {
	navigation := &Navigation{}
	return context.WithValue(ctx, navigationKey{}, navigation), navigation
}

func NavigationFrom(ctx context.Context) (*Navigation, bool) {
	if ctx == nil {
		return nil, false
	}
	navigation, ok := ctx.Value(navigationKey{}).(*Navigation)
	return navigation, ok && navigation != nil
}

func (n *Navigation) request(commands []string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.commands != nil {
		return false
	}
	n.commands = append([]string(nil), commands...)
	return true
}

// Commands returns the recorded commands, or nil when nothing was requested.
func (n *Navigation) Commands() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.commands == nil {
		return nil
	}
	return append([]string(nil), n.commands...)
}

func (n *Navigation) Target() (string, bool) {
	commands := n.Commands()
	if commands == nil {
		return "", false
	}
	return CommandsPath(commands), true
}

// Router is the application's Navigator. It only records the navigation on
// the request scope; the engine performs the redirect once loading finishes.
type Router struct{}

func NewRouter() *Router {
	return &Router{}
}

func (*Router) Navigate(ctx context.Context, commands []string) (bool, error) {
	if len(commands) == 0 {
		return false, ErrEmptyNavigation
	}

	navigation, ok := NavigationFrom(ctx)
	if !ok {
		return false, nil
	}
	return navigation.request(commands), nil
}
