package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{TopicImageProcessing, TopicTest}, TopicNames())

	topic, ok := FindTopic(TopicImageProcessing)
	require.True(t, ok)
	var titles []string
	for _, p := range topic.Pages {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Color Mode", "Grayscale", "Graphic Transformation"}, titles)

	topic, ok = FindTopic(TopicTest)
	require.True(t, ok)
	assert.Equal(t, PageTest, topic.Pages[0].ID)
	assert.Equal(t, PageTest2, topic.Pages[1].ID)

	_, ok = FindTopic("")
	assert.False(t, ok)
}

func TestTopicsReturnsCopies(t *testing.T) {
	all := Topics()
	all[0].Pages[0].Title = "changed"
	all[0].Name = "changed"

	again := Topics()
	assert.Equal(t, TopicImageProcessing, again[0].Name)
	assert.Equal(t, "Color Mode", again[0].Pages[0].Title)
}

func TestAssistancePages(t *testing.T) {
	pages := AssistancePages()
	require.Len(t, pages, 3)
	assert.Equal(t, []PageID{PageHelp, PageSettings, PageExit},
		[]PageID{pages[0].ID, pages[1].ID, pages[2].ID})

	for _, p := range pages {
		assert.NotNil(t, PageIcon(p), p.Title)
	}
	assert.NotNil(t, PageIcon(Page{Icon: "no-such-icon"}))
}
