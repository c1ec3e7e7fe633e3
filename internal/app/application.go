package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"student-records/internal/config"
	"student-records/internal/controllers"
	"student-records/internal/database"
	"student-records/internal/gateway"
	"student-records/internal/logger"
	"student-records/internal/shutdown"
	"student-records/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName = "Student Record Management System"
	AppID   = "com.studentrecords.manager"

	MinWindowWidth  = 900
	MinWindowHeight = 600
)

// Version is overridden at build time with -ldflags "-X".
var Version = "2.0.0"

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	config     *config.Config
	logger     logger.Logger
	store      *gateway.Gateway
	controller *controllers.MainController
	view       *views.MainView
	lifecycle  *Lifecycle
}

// New connects to the database and builds the main window.
// A failed connection is returned as an error; nothing is shown in that case.
func New(cfg *config.Config) (*Application, error) {
	return build(app.NewWithID(AppID), cfg)
}

func build(fyneApp fyne.App, cfg *config.Config) (*Application, error) {
	logOut, closeLog, err := openLogOutput(cfg.Log.File)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOut,
	})
	if err != nil {
		closeLog()
		return nil, err
	}

	log.Info("Application", "starting application", map[string]interface{}{
		"version": Version,
		"driver":  cfg.Database.Driver,
	})

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Register("log output", shutdown.ShutdownFunc(closeLog))

	db, dialect, err := database.Open(shutdownMgr.Context(), cfg.Database, log)
	if err != nil {
		log.Error("Application", err, nil)
		shutdownMgr.Shutdown()
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	store := gateway.New(db, dialect, log)
	shutdownMgr.Register("student gateway", store)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(max(cfg.Window.Width, MinWindowWidth), max(cfg.Window.Height, MinWindowHeight)))
	window.SetFullScreen(cfg.Window.Fullscreen)
	window.CenterOnScreen()
	window.SetMaster()

	application := &Application{
		fyneApp: fyneApp,
		window:  window,
		config:  cfg,
		logger:  log,
		store:   store,
	}
	application.lifecycle = NewLifecycle(fyneApp, shutdownMgr, log)

	application.view = views.NewMainView(fyneApp, window)
	application.controller = controllers.NewMainController(
		shutdownMgr.Context(),
		store,
		renderChart,
		log,
		application.lifecycle.Quit,
	)
	application.controller.SetMainView(application.view)

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

// Run shows the main window and blocks until the application quits
func (a *Application) Run() error {
	a.lifecycle.ListenForSignals()

	a.window.Show()
	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	a.lifecycle.Shutdown()
	return nil
}

// Controller returns the main controller
func (a *Application) Controller() *controllers.MainController {
	return a.controller
}

// View returns the main view
func (a *Application) View() *views.MainView {
	return a.view
}

// Shutdown releases the database handle and log output
func (a *Application) Shutdown() {
	a.lifecycle.Shutdown()
}

func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

