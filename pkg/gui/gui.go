// Package gui provides the selection window: pick a video and a display
// language, then start a recognition session.
package gui

import (
	"context"
	"runtime"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/ideamans/go-l10n"

	"github.com/user/harview/pkg/language"
	"github.com/user/harview/pkg/ports"
)

// Title is the selection window title.
const Title = "Human Activity Recognition"

// VideoExtensions lists the file types offered by the video picker.
var VideoExtensions = []string{".mp4", ".avi", ".mov", ".mkv"}

// Launcher runs one session and blocks until it ends.
// The context is canceled when the selection window closes.
type Launcher func(ctx context.Context, video string, lang language.Language) error

// UI is the selection window.
type UI struct {
	window fyne.Window
	launch Launcher
	logger ports.Logger

	// do runs UI updates from the session goroutine on the fyne thread.
	do func(func())

	mu      sync.Mutex
	video   string
	lang    language.Language
	running bool
	cancel  context.CancelFunc

	languages *widget.RadioGroup
	selectBtn *widget.Button
	fileLabel *widget.Label
	startBtn  *widget.Button
	status    *widget.Label
}

// New builds the selection window in app.
func New(app fyne.App, launch Launcher, logger ports.Logger) *UI {
	u := &UI{
		window: app.NewWindow(l10n.T(Title)),
		launch: launch,
		logger: logger.WithComponent("gui"),
		do:     fyne.Do,
		lang:   language.Default,
	}

	names := make([]string, 0, len(language.All()))
	for _, l := range language.All() {
		names = append(names, l.String())
	}
	u.languages = widget.NewRadioGroup(names, u.selectLanguage)
	u.languages.Required = true
	u.languages.SetSelected(language.Default.String())

	u.selectBtn = widget.NewButton(l10n.T("Select Video"), u.openDialog)
	u.fileLabel = widget.NewLabel(l10n.T("No file selected"))
	u.fileLabel.Wrapping = fyne.TextWrapBreak
	u.startBtn = widget.NewButton(l10n.T("Start"), u.Start)
	u.startBtn.Disable()
	u.status = widget.NewLabel("")

	heading := widget.NewLabelWithStyle(l10n.T(Title), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	u.window.SetContent(container.NewVBox(
		heading,
		widget.NewLabel(l10n.T("Select Language:")),
		u.languages,
		u.selectBtn,
		u.fileLabel,
		u.startBtn,
		u.status,
	))
	u.window.Resize(fyne.NewSize(400, 300))
	u.window.SetOnClosed(u.Stop)

	return u
}

// Window returns the underlying fyne window.
func (u *UI) Window() fyne.Window {
	return u.window
}

// ShowAndRun shows the window and runs the fyne event loop.
func (u *UI) ShowAndRun() {
	u.window.ShowAndRun()
}

// Selection returns the chosen video and language.
func (u *UI) Selection() (string, language.Language) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.video, u.lang
}

// Running reports whether a session is active.
func (u *UI) Running() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.running
}

// SetVideo records the chosen file and enables Start.
func (u *UI) SetVideo(path string) {
	u.mu.Lock()
	u.video = path
	running := u.running
	u.mu.Unlock()

	if path == "" {
		u.fileLabel.SetText(l10n.T("No file selected"))
	} else {
		u.fileLabel.SetText(path)
	}
	u.refresh(running)
}

// Start launches a session for the current selection. It does nothing while
// a session is running or before a file is chosen.
func (u *UI) Start() {
	u.mu.Lock()
	if u.running || u.video == "" || u.launch == nil {
		u.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	u.running = true
	u.cancel = cancel
	video, lang := u.video, u.lang
	u.mu.Unlock()

	u.refresh(true)
	u.status.SetText(l10n.T("Running..."))

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		err := u.launch(ctx, video, lang)
		cancel()
		u.do(func() { u.finish(err) })
	}()
}

// Stop cancels the running session, if any.
func (u *UI) Stop() {
	u.mu.Lock()
	cancel := u.cancel
	u.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (u *UI) finish(err error) {
	u.mu.Lock()
	u.running = false
	u.cancel = nil
	u.mu.Unlock()

	if err != nil {
		u.logger.Error("Session failed: %s", err)
		u.status.SetText(l10n.F("Error: %s", err))
	} else {
		u.status.SetText(l10n.T("Finished"))
	}
	u.refresh(false)
}

// refresh enables Start only when a file is chosen and nothing is running.
func (u *UI) refresh(running bool) {
	u.mu.Lock()
	ready := u.video != "" && !running
	u.mu.Unlock()

	if ready {
		u.startBtn.Enable()
	} else {
		u.startBtn.Disable()
	}
	if running {
		u.languages.Disable()
		u.selectBtn.Disable()
	} else {
		u.languages.Enable()
		u.selectBtn.Enable()
	}
}

func (u *UI) selectLanguage(name string) {
	l, err := language.Parse(name)
	if err != nil {
		return
	}
	u.mu.Lock()
	u.lang = l
	u.mu.Unlock()
}

func (u *UI) openDialog() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			u.logger.Warn("File dialog failed: %s", err)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		u.SetVideo(path)
	}, u.window)
	d.SetFilter(storage.NewExtensionFileFilter(VideoExtensions))
	d.Show()
}
