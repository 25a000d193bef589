// Package display shows composed frames in a borderless fullscreen window
// and turns user input into session requests.
package display

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/genricoloni/photoshow/internal/domain"
	"go.uber.org/zap"
)

const (
	appID       = "io.github.genricoloni.photoshow"
	windowTitle = "photoshow"
)

// Window is the fullscreen slideshow window. Show and Close may be called
// from any goroutine; Run must be called from main.
type Window struct {
	logger  *zap.Logger
	session *domain.Session
	app     fyne.App
	win     fyne.Window
	surface *surface
}

// NewWindow creates the fullscreen window on a new fyne application
func NewWindow(logger *zap.Logger, session *domain.Session) *Window {
	return newWindow(logger, session, app.NewWithID(appID))
}

func newWindow(logger *zap.Logger, session *domain.Session, a fyne.App) *Window {
	w := &Window{
		logger:  logger,
		session: session,
		app:     a,
		win:     a.NewWindow(windowTitle),
	}

	w.surface = newSurface(w.skip, w.stop)
	w.win.SetContent(w.surface)
	w.win.SetPadded(false)
	w.win.SetFullScreen(true)
	w.win.SetOnClosed(session.Stop)
	w.win.Canvas().SetOnTypedKey(w.typedKey)

	return w
}

// Show replaces the frame on screen
func (w *Window) Show(frame image.Image) {
	fyne.Do(func() {
		w.surface.image.Image = frame
		w.surface.image.Refresh()
	})
}

// Close quits the application, which makes Run return
func (w *Window) Close() {
	fyne.Do(w.app.Quit)
}

// Run shows the window and blocks in the UI event loop until Close
func (w *Window) Run() {
	w.win.ShowAndRun()
}

func (w *Window) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyEscape:
		w.stop()
	case fyne.KeySpace:
		w.skip()
	}
}

func (w *Window) skip() {
	w.logger.Debug("Skip requested")
	w.session.Skip()
}

func (w *Window) stop() {
	w.logger.Info("Stop requested")
	w.session.Stop()
}

// surface fills the window with the current frame on black, hides the
// pointer and reports taps
type surface struct {
	widget.BaseWidget
	image       *canvas.Image
	onTap       func()
	onDoubleTap func()
}

func newSurface(onTap, onDoubleTap func()) *surface {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth

	s := &surface{image: img, onTap: onTap, onDoubleTap: onDoubleTap}
	s.ExtendBaseWidget(s)
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(color.Black)
	return widget.NewSimpleRenderer(container.NewStack(background, s.image))
}

// Tapped advances to the next photo
func (s *surface) Tapped(*fyne.PointEvent) {
	s.onTap()
}

// DoubleTapped ends the slideshow
func (s *surface) DoubleTapped(*fyne.PointEvent) {
	s.onDoubleTap()
}

func (s *surface) Cursor() desktop.Cursor {
	return desktop.HiddenCursor
}
