package ui

import (
	"LocalCanvas/internal/board"
	"LocalCanvas/internal/persist"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

const appID = "io.localcanvas.app"

// Options configure the desktop window.
type Options struct {
	Width, Height int
	StoreKey      string
	Board         board.Options
}

// preferencesStore keeps the saved drawing in the app's preferences.
type preferencesStore struct {
	prefs fyne.Preferences
}

var _ persist.Store = preferencesStore{}

func (p preferencesStore) Get(key string) (string, bool) {
	v := p.prefs.String(key)
	return v, v != ""
}

func (p preferencesStore) Set(key, value string) error {
	p.prefs.SetString(key, value)
	return nil
}

func (p preferencesStore) Remove(key string) error {
	p.prefs.RemoveValue(key)
	return nil
}

// NewBoard builds the widget and the board drawing on it, restoring the
// last session from the app's preferences.
func NewBoard(a fyne.App, opts Options) *BoardWidget {
	surface := NewBoardWidget(opts.Width, opts.Height)
	bridge := persist.NewBridge(preferencesStore{prefs: a.Preferences()}, opts.StoreKey)
	bd := board.New(surface, bridge, opts.Board)
	bd.Load()
	surface.Attach(bd)
	return surface
}

func RunApp(opts Options) {
	myApp := app.NewWithID(appID)
	myWindow := myApp.NewWindow("Local Canvas")
	myWindow.Resize(fyne.NewSize(1024, 768))

	surface := NewBoard(myApp, opts)
	toolbar := NewToolbar(surface, myWindow)

	content := container.NewBorder(toolbar, surface.StatusBar(), nil, nil, container.NewScroll(surface))

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
