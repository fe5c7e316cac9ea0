package app

import "errors"

// ErrUnknownTopic is returned when selecting a topic that does not exist.
var ErrUnknownTopic = errors.New("unknown topic")

// PageID identifies a page of the dashboard.
type PageID string

const (
	PageColorMode      PageID = "color-mode"
	PageGrayscale      PageID = "grayscale"
	PageTransformation PageID = "graphic-transformation"
	PageTest           PageID = "test-page"
	PageTest2          PageID = "test-page-2"
	PageHelp           PageID = "help"
	PageSettings       PageID = "settings"
	PageExit           PageID = "exit"
)

// AssistanceGroup is the navigation group appended to every topic.
const AssistanceGroup = "Assistance"

// Topic names.
const (
	TopicImageProcessing = "Fundamental Image Processing"
	TopicTest            = "Test"
)

// Page is one navigable page.
type Page struct {
	ID    PageID
	Title string
	Icon  string // fyne theme icon name
}

// Topic groups the pages shown after choosing it on the home page.
type Topic struct {
	Name        string
	Description string
	Pages       []Page
}

var topics = []Topic{
	{
		Name:        TopicImageProcessing,
		Description: "Color spaces, grayscale intensity transforms and geometric transforms.",
		Pages: []Page{
			{ID: PageColorMode, Title: "Color Mode", Icon: "colorPalette"},
			{ID: PageGrayscale, Title: "Grayscale", Icon: "mediaPhoto"},
			{ID: PageTransformation, Title: "Graphic Transformation", Icon: "viewRefresh"},
		},
	},
	{
		Name:        TopicTest,
		Description: "Placeholder pages for trying out the navigation.",
		Pages: []Page{
			{ID: PageTest, Title: "Test Page", Icon: "settings"},
			{ID: PageTest2, Title: "Test Page 2", Icon: "settings"},
		},
	},
}

var assistance = []Page{
	{ID: PageHelp, Title: "Help", Icon: "help"},
	{ID: PageSettings, Title: "Settings", Icon: "settings"},
	{ID: PageExit, Title: "Exit", Icon: "logout"},
}

// Topics returns the topics in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	for i, t := range topics {
		t.Pages = append([]Page(nil), t.Pages...)
		out[i] = t
	}
	return out
}

// TopicNames returns the topic names in display order.
func TopicNames() []string {
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names
}

// FindTopic looks up a topic by name.
func FindTopic(name string) (Topic, bool) {
	for _, t := range Topics() {
		if t.Name == name {
			return t, true
		}
	}
	return Topic{}, false
}

// AssistancePages returns the Help, Settings and Exit pages.
func AssistancePages() []Page {
	return append([]Page(nil), assistance...)
}
