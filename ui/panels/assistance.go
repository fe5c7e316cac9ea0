package panels

import (
	"fmt"
	"strconv"
	"strings"

	"algo-visualizer/internal/app"
	"algo-visualizer/internal/config"
	"algo-visualizer/internal/logging"
	"algo-visualizer/internal/version"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const helpText = `# Help

Choose a topic on the home page and press **Go to the topic**. The pages of
the topic appear as tabs, followed by the assistance pages.

## Fundamental Image Processing

- **Color Mode** converts between RGB and HSB. Move the RGB sliders to see
  the hue, saturation and brightness of the color, or the HSB sliders to see
  its channel intensities.
- **Grayscale** converts the sample image to grayscale and applies the log
  and power-law transforms. The tone curves show how input intensities map
  to output intensities.
- **Graphic Transformation** rotates, scales, translates and flips the
  sample image about its center.

Open another sample image with **File > Open Sample Image**.

## Settings

The settings page edits configuration.toml. Changes made to the file in an
editor are picked up while the application runs.

Choose **Exit** to return to the home page.`

// HelpPanel shows the usage notes and the configured help links.
type HelpPanel struct {
	state *app.State
	links *widget.RichText

	content fyne.CanvasObject
}

// NewHelpPanel creates the help page.
func NewHelpPanel(state *app.State) *HelpPanel {
	hp := &HelpPanel{
		state: state,
		links: widget.NewRichTextFromMarkdown(""),
	}
	hp.links.Wrapping = fyne.TextWrapWord

	body := widget.NewRichTextFromMarkdown(helpText)
	body.Wrapping = fyne.TextWrapWord

	hp.content = container.NewVScroll(container.NewVBox(
		body,
		widget.NewSeparator(),
		hp.links,
		widget.NewLabel(version.String()),
	))

	state.On(app.EventConfigReloaded, func(interface{}) { hp.Refresh() })
	hp.Refresh()
	return hp
}

// Container returns the panel container.
func (hp *HelpPanel) Container() fyne.CanvasObject {
	return hp.content
}

// Refresh re-renders the links from the current configuration.
func (hp *HelpPanel) Refresh() {
	hp.links.ParseMarkdown(linksMarkdown(hp.state.Config().Page.MenuItems))
}

// linksMarkdown lists the configured help links. Empty entries are omitted.
func linksMarkdown(items config.MenuItems) string {
	var b strings.Builder
	if items.GetHelp != "" {
		fmt.Fprintf(&b, "- Get help: %s\n", items.GetHelp)
	}
	if items.ReportABug != "" {
		fmt.Fprintf(&b, "- Report a bug: %s\n", items.ReportABug)
	}
	if items.About != "" {
		fmt.Fprintf(&b, "\n%s\n", items.About)
	}
	return b.String()
}

// SettingsPanel edits and saves the configuration file.
type SettingsPanel struct {
	state  *app.State
	window fyne.Window

	title     *widget.Entry
	testImage *widget.Entry
	layout    *widget.Select
	sidebar   *widget.Select
	logLevel  *widget.Select
	logToFile *widget.Check
	logColor  *widget.Check
	width     *widget.Entry
	height    *widget.Entry
	getHelp   *widget.Entry
	reportBug *widget.Entry
	about     *widget.Entry

	content fyne.CanvasObject
}

// NewSettingsPanel creates the settings page.
func NewSettingsPanel(state *app.State) *SettingsPanel {
	sp := &SettingsPanel{
		state:     state,
		title:     widget.NewEntry(),
		testImage: widget.NewEntry(),
		layout:    widget.NewSelect([]string{config.LayoutWide, config.LayoutCentered}, nil),
		sidebar:   widget.NewSelect([]string{config.SidebarAuto, config.SidebarExpanded, config.SidebarCollapsed}, nil),
		logLevel:  widget.NewSelect([]string{"debug", "info", "warning", "error"}, nil),
		logToFile: widget.NewCheck("Write log file", nil),
		logColor:  widget.NewCheck("Colored console output", nil),
		width:     widget.NewEntry(),
		height:    widget.NewEntry(),
		getHelp:   widget.NewEntry(),
		reportBug: widget.NewEntry(),
		about:     widget.NewMultiLineEntry(),
	}

	form := widget.NewForm(
		widget.NewFormItem("Title", sp.title),
		widget.NewFormItem("Sample image", sp.testImage),
		widget.NewFormItem("Layout", sp.layout),
		widget.NewFormItem("Sidebar", sp.sidebar),
		widget.NewFormItem("Log level", sp.logLevel),
		widget.NewFormItem("", sp.logToFile),
		widget.NewFormItem("", sp.logColor),
		widget.NewFormItem("Window width", sp.width),
		widget.NewFormItem("Window height", sp.height),
		widget.NewFormItem("Get help", sp.getHelp),
		widget.NewFormItem("Report a bug", sp.reportBug),
		widget.NewFormItem("About", sp.about),
	)

	save := widget.NewButton("Save", func() {
		if err := sp.Save(); err != nil {
			sp.showError(err)
		}
	})
	revert := widget.NewButton("Revert", sp.Refresh)

	sp.content = container.NewVScroll(container.NewVBox(
		widget.NewCard("Settings", "Saved to "+config.DefaultFileName, form),
		container.NewHBox(save, revert),
	))

	state.On(app.EventConfigReloaded, func(interface{}) { sp.Refresh() })
	sp.Refresh()
	return sp
}

// SetWindow sets the parent window for dialogs.
func (sp *SettingsPanel) SetWindow(w fyne.Window) {
	sp.window = w
}

// Container returns the panel container.
func (sp *SettingsPanel) Container() fyne.CanvasObject {
	return sp.content
}

// Refresh loads the form from the current configuration.
func (sp *SettingsPanel) Refresh() {
	cfg := sp.state.Config()
	sp.title.SetText(cfg.Page.Title)
	sp.testImage.SetText(cfg.Image.TestImage)
	sp.layout.SetSelected(cfg.Page.Layout)
	sp.sidebar.SetSelected(cfg.Page.InitialSidebarState)
	if level, err := logging.ParseLevel(cfg.Log.Level); err == nil {
		sp.logLevel.SetSelected(strings.ToLower(logging.LevelName(level)))
	}
	sp.logToFile.SetChecked(cfg.Log.ToFile)
	sp.logColor.SetChecked(cfg.Log.Color)
	sp.width.SetText(strconv.Itoa(cfg.Window.Width))
	sp.height.SetText(strconv.Itoa(cfg.Window.Height))
	sp.getHelp.SetText(cfg.Page.MenuItems.GetHelp)
	sp.reportBug.SetText(cfg.Page.MenuItems.ReportABug)
	sp.about.SetText(cfg.Page.MenuItems.About)
}

// Edited returns a copy of the current configuration with the form applied.
func (sp *SettingsPanel) Edited() (*config.Config, error) {
	cfg := sp.state.Config().Clone()
	cfg.Page.Title = sp.title.Text
	cfg.Image.TestImage = sp.testImage.Text
	cfg.Page.Layout = sp.layout.Selected
	cfg.Page.InitialSidebarState = sp.sidebar.Selected
	cfg.Log.Level = sp.logLevel.Selected
	cfg.Log.ToFile = sp.logToFile.Checked
	cfg.Log.Color = sp.logColor.Checked
	cfg.Page.MenuItems = config.MenuItems{
		GetHelp:    sp.getHelp.Text,
		ReportABug: sp.reportBug.Text,
		About:      sp.about.Text,
	}

	var err error
	if cfg.Window.Width, err = strconv.Atoi(strings.TrimSpace(sp.width.Text)); err != nil {
		return nil, fmt.Errorf("%w: window width %q", config.ErrInvalid, sp.width.Text)
	}
	if cfg.Window.Height, err = strconv.Atoi(strings.TrimSpace(sp.height.Text)); err != nil {
		return nil, fmt.Errorf("%w: window height %q", config.ErrInvalid, sp.height.Text)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the edited configuration and applies it.
func (sp *SettingsPanel) Save() error {
	cfg, err := sp.Edited()
	if err != nil {
		return err
	}
	path := cfg.Path()
	if path == "" {
		path = config.DefaultFileName
	}
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	sp.state.SetConfig(cfg)
	return nil
}

func (sp *SettingsPanel) showError(err error) {
	sp.state.Logger().Warn("Settings: save failed", "error", err)
	if sp.window != nil {
		dialog.ShowError(err, sp.window)
	}
}

// TestPanel is a placeholder page that reports the current topic.
type TestPanel struct {
	state *app.State
	label *widget.Label

	content fyne.CanvasObject
}

// NewTestPanel creates a test page titled title.
func NewTestPanel(state *app.State, title string) *TestPanel {
	tp := &TestPanel{
		state: state,
		label: widget.NewLabel(""),
	}
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	tp.content = container.NewVBox(heading, tp.label)

	state.On(app.EventTopicChanged, func(interface{}) { tp.Refresh() })
	tp.Refresh()
	return tp
}

// Container returns the panel container.
func (tp *TestPanel) Container() fyne.CanvasObject {
	return tp.content
}

// Refresh shows the current topic.
func (tp *TestPanel) Refresh() {
	tp.label.SetText(currentPageText(tp.state.Topic()))
}

func currentPageText(topic string) string {
	if topic == "" {
		return "Current Page: None"
	}
	return "Current Page: " + topic
}
