package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch link", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch link with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"embed link", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"old style /v/ link", "https://www.youtube.com/v/dQw4w9WgXcQ?fs=1", "dQw4w9WgXcQ"},
		{"thumbnail vi/ path", "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "dQw4w9WgXcQ"},
		{"angle brackets stripped", "<https://youtu.be/dQw4w9WgXcQ>", "dQw4w9WgXcQ"},
		{"id with dash and underscore", "https://youtu.be/a-b_c123XYZ", "a-b_c123XYZ"},
		{"no marker returned verbatim", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"plain text without marker", "not a url at all", "not a url at all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YouTubeVideoID(tt.in))
		})
	}
}

func TestVideoFieldsValidate(t *testing.T) {
	f := VideoFields{Title: "Launch recap", VideoID: "https://youtu.be/dQw4w9WgXcQ"}
	assert.Empty(t, f.Validate())

	f = VideoFields{Title: "  ", VideoID: ""}
	errs := f.Validate()
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "videoID")
}
