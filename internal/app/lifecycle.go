package app

import (
	"sync"

	"student-records/internal/logger"
	"student-records/internal/shutdown"

	"fyne.io/fyne/v2"
)

// Lifecycle ties the Fyne application to the shutdown manager
type Lifecycle struct {
	fyneApp     fyne.App
	shutdownMgr *shutdown.Manager
	logger      logger.Logger
	quitOnce    sync.Once
}

func NewLifecycle(fyneApp fyne.App, mgr *shutdown.Manager, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		fyneApp:     fyneApp,
		shutdownMgr: mgr,
		logger:      log,
	}
}

// Quit runs after the user confirms. It releases resources and stops the UI loop.
func (l *Lifecycle) Quit() {
	l.quitOnce.Do(func() {
		l.logger.Info("Lifecycle", "quit confirmed", nil)
		l.shutdownMgr.Shutdown()
		l.fyneApp.Quit()
	})
}

// ListenForSignals quits the UI loop on SIGINT or SIGTERM
func (l *Lifecycle) ListenForSignals() {
	l.shutdownMgr.Listen(func() {
		fyne.Do(l.fyneApp.Quit)
	})
}

// Shutdown releases registered components; safe to call more than once
func (l *Lifecycle) Shutdown() {
	l.shutdownMgr.Shutdown()
}
