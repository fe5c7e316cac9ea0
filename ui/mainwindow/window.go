// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"algo-visualizer/internal/app"
	"algo-visualizer/internal/config"
	"algo-visualizer/internal/image"
	"algo-visualizer/internal/version"
	"algo-visualizer/pkg/colorutil"
	"algo-visualizer/ui/panels"
	"algo-visualizer/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appDescription = "This is an Algorithm Visualizer."
	noTopicMessage = "Please select a topic"
	exitMessage    = "Returning Home Page. Please wait."

	exitSteps = 100

	iconW = 160
	iconH = 80
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	pages    map[app.PageID]panels.Page
	settings *panels.SettingsPanel

	// Home page
	homeTitle   *widget.RichText
	topicSelect *widget.Select
	homeMessage *widget.Label

	// Topic navigation
	tabs    *container.AppTabs
	exitBar *widget.ProgressBar

	body      *fyne.Container
	statusBar *widget.Label

	// exitDelay is the pause between progress steps when leaving a topic.
	exitDelay time.Duration
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	cfg := state.Config()
	win := fyneApp.NewWindow(cfg.Page.Title)

	mw := &MainWindow{
		Window:    win,
		app:       fyneApp,
		state:     state,
		prefs:     p,
		exitDelay: 10 * time.Millisecond,
	}

	mw.createPages()
	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	win.SetOnClosed(func() {
		if err := mw.prefs.SaveIfChanged(); err != nil {
			state.Logger().Error("Prefs: save failed", "error", err)
		}
	})

	mw.restoreTopic()
	return mw
}

// createPages builds every page once. Tabs are rebuilt on topic changes but
// the pages and their state are kept.
func (mw *MainWindow) createPages() {
	mw.settings = panels.NewSettingsPanel(mw.state)
	mw.settings.SetWindow(mw.Window)

	mw.pages = map[app.PageID]panels.Page{
		app.PageColorMode:      panels.NewColorModePanel(mw.state, mw.prefs),
		app.PageGrayscale:      panels.NewGrayscalePanel(mw.state, mw.prefs),
		app.PageTransformation: panels.NewTransformPanel(mw.state, mw.prefs),
		app.PageTest:           panels.NewTestPanel(mw.state, "Test"),
		app.PageTest2:          panels.NewTestPanel(mw.state, "Test 2"),
		app.PageHelp:           panels.NewHelpPanel(mw.state),
		app.PageSettings:       mw.settings,
	}
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.statusBar = widget.NewLabel("Ready")
	mw.body = container.NewStack()

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.body,                           // center
	)
	mw.SetContent(content)
}

// homeView is the topic chooser shown when no topic is selected.
func (mw *MainWindow) homeView() fyne.CanvasObject {
	cfg := mw.state.Config()
	mw.homeTitle = widget.NewRichTextFromMarkdown("# " + cfg.Page.Title)

	topics := app.Topics()
	table := widget.NewTable(
		func() (int, int) { return len(topics) + 1, 2 },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			switch {
			case id.Row == 0 && id.Col == 0:
				label.SetText("Topics")
			case id.Row == 0:
				label.SetText("Description")
			case id.Col == 0:
				label.SetText(topics[id.Row-1].Name)
			default:
				label.SetText(topics[id.Row-1].Description)
			}
		},
	)
	table.SetColumnWidth(0, 260)
	table.SetColumnWidth(1, 520)

	mw.topicSelect = widget.NewSelect(app.TopicNames(), nil)
	mw.topicSelect.PlaceHolder = "Choose a topic"
	mw.homeMessage = widget.NewLabel("")
	goButton := widget.NewButton("Go to the topic", mw.onGoToTopic)

	column := container.NewVBox(
		mw.homeTitle,
		widget.NewLabel(appDescription),
		container.NewGridWrap(fyne.NewSize(780, 120), table),
		mw.topicSelect,
		goButton,
		mw.homeMessage,
	)
	if icon := loadIcon(cfg, mw.state.Logger()); icon != nil {
		column.Objects = append([]fyne.CanvasObject{icon}, column.Objects...)
	}
	return container.NewCenter(column)
}

// topicView shows the pages of topic followed by the assistance pages.
func (mw *MainWindow) topicView(topic app.Topic) fyne.CanvasObject {
	mw.tabs = container.NewAppTabs()
	for _, page := range append(topic.Pages, app.AssistancePages()...) {
		mw.tabs.Append(container.NewTabItemWithIcon(page.Title, app.PageIcon(page), mw.pageContent(page.ID)))
	}
	if mw.state.Config().Page.InitialSidebarState == config.SidebarCollapsed {
		mw.tabs.SetTabLocation(container.TabLocationTop)
	} else {
		mw.tabs.SetTabLocation(container.TabLocationLeading)
	}

	exitIndex := len(mw.tabs.Items) - 1
	mw.tabs.OnSelected = func(item *container.TabItem) {
		if mw.tabs.SelectedIndex() == exitIndex {
			mw.onExit()
		}
	}

	if mw.state.Config().Page.Layout == config.LayoutCentered {
		return container.NewPadded(container.NewPadded(mw.tabs))
	}
	return mw.tabs
}

// pageContent returns the content of page id, or the exit screen.
func (mw *MainWindow) pageContent(id app.PageID) fyne.CanvasObject {
	if id == app.PageExit {
		mw.exitBar = widget.NewProgressBar()
		return container.NewCenter(container.NewVBox(
			widget.NewLabel(exitMessage),
			container.NewGridWrap(fyne.NewSize(400, 40), mw.exitBar),
		))
	}
	if page, ok := mw.pages[id]; ok {
		return page.Container()
	}
	return widget.NewLabel("Page not available")
}

// loadIcon returns the configured icon scaled down for the home page, or
// nil when there is none.
func loadIcon(cfg *config.Config, logger *slog.Logger) fyne.CanvasObject {
	path := cfg.IconPath()
	if path == "" {
		return nil
	}
	layer, err := image.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Window: failed to load icon", "path", path, "error", err)
		}
		return nil
	}
	img := fynecanvas.NewImageFromImage(image.Thumbnail(layer.Image, iconW, iconH))
	img.FillMode = fynecanvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(iconW, iconH))
	return img
}

// showTopic switches the body to topic, or to the home page for "".
func (mw *MainWindow) showTopic(name string) {
	var view fyne.CanvasObject
	if topic, ok := app.FindTopic(name); ok {
		view = mw.topicView(topic)
		mw.SetTitle(mw.state.Config().Page.Title + " - " + topic.Name)
	} else {
		mw.tabs = nil
		view = mw.homeView()
		mw.SetTitle(mw.state.Config().Page.Title)
	}
	mw.body.Objects = []fyne.CanvasObject{view}
	mw.body.Refresh()
}

// restoreTopic reopens the topic of the last session.
func (mw *MainWindow) restoreTopic() {
	last := mw.prefs.String(prefs.KeyLastTopic)
	if _, ok := app.FindTopic(last); ok {
		if err := mw.state.SetTopic(last); err == nil {
			return
		}
	}
	mw.showTopic("")
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Sample Image...", mw.onOpenSampleImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Home", mw.onHome),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	items := mw.state.Config().Page.MenuItems
	var helpItems []*fyne.MenuItem
	if items.GetHelp != "" {
		helpItems = append(helpItems, fyne.NewMenuItem("Get Help", func() { mw.openURL(items.GetHelp) }))
	}
	if items.ReportABug != "" {
		helpItems = append(helpItems, fyne.NewMenuItem("Report a Bug", func() { mw.openURL(items.ReportABug) }))
	}
	helpItems = append(helpItems, fyne.NewMenuItem("About", mw.onAbout))
	helpMenu := fyne.NewMenu("Help", helpItems...)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventTopicChanged, func(data interface{}) {
		name, _ := data.(string)
		mw.prefs.SetString(prefs.KeyLastTopic, name)
		mw.showTopic(name)
	})

	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*image.Layer); ok {
			mw.updateStatus("Sample image: " + layer.Name())
		}
	})

	mw.state.On(app.EventColorChanged, func(data interface{}) {
		var rgb colorutil.RGB
		switch c := data.(type) {
		case colorutil.RGB:
			rgb = c
		case colorutil.HSB:
			rgb = c.RGB()
		default:
			return
		}
		mw.updateStatus("Color: " + rgb.Hex() + " (" + rgb.String() + ")")
	})

	mw.state.On(app.EventConfigReloaded, func(data interface{}) {
		mw.setupMenus()
		mw.showTopic(mw.state.Topic())
		mw.updateStatus("Configuration reloaded")
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onGoToTopic() {
	choice := mw.topicSelect.Selected
	if choice == "" {
		mw.homeMessage.SetText(noTopicMessage)
		return
	}
	mw.homeMessage.SetText("")
	if err := mw.state.SetTopic(choice); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

// onExit shows the progress bar and returns to the home page.
func (mw *MainWindow) onExit() {
	bar := mw.exitBar
	delay := mw.exitDelay
	go func() {
		for i := 1; i <= exitSteps; i++ {
			time.Sleep(delay)
			if bar != nil {
				bar.SetValue(float64(i) / exitSteps)
			}
		}
		mw.onHome()
	}()
}

func (mw *MainWindow) onHome() {
	if err := mw.state.SetTopic(""); err != nil {
		mw.state.Logger().Error("Navigation: failed to return home", "error", err)
	}
}

func (mw *MainWindow) onOpenSampleImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.OpenSampleImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(image.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// OpenSampleImage loads path as the sample image and remembers it.
func (mw *MainWindow) OpenSampleImage(path string) error {
	if err := mw.state.LoadSampleImage(path); err != nil {
		return err
	}
	mw.prefs.SetString(prefs.KeyLastImage, path)
	return nil
}

func (mw *MainWindow) openURL(raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		dialog.ShowInformation("Help", raw, mw.Window)
		return
	}
	if err := mw.app.OpenURL(u); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onAbout() {
	text := version.String()
	if about := mw.state.Config().Page.MenuItems.About; about != "" {
		text += "\n\n" + about
	}
	dialog.ShowInformation("About", text, mw.Window)
}
