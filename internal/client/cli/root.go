package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if email, ok := a.session.Current(); ok {
		s = email + " "
	}
	if a.widgetReady.Load() {
		s = s + "widget"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL on a.reader until the user leaves. The sign-in widget
// watcher runs alongside and stops with it.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to MarketFeed CLI (type 'help' for commands)")
	if email, ok := a.session.Current(); ok {
		printlnFn("Signed in as", email)
	}

	go a.StartProviderWatcher(ctx, a.config.ProviderInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
