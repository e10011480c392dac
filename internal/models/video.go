package models

import (
	"strings"
	"time"
)

type Video struct {
	ID        string    `bson:"_id"`
	Title     string    `bson:"title"`
	VideoID   string    `bson:"video_id"`
	OwnerID   string    `bson:"owner"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type VideoView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	VideoID   string    `json:"videoID"`
	OwnerID   string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Video) Public() VideoView {
	return VideoView{
		ID:        v.ID,
		Title:     v.Title,
		VideoID:   v.VideoID,
		OwnerID:   v.OwnerID,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type VideoFields struct {
	Title   string `json:"title"`
	VideoID string `json:"videoID"`
}

func (f *VideoFields) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(f.Title) == "" {
		errors["title"] = "Video title is required"
	}
	if strings.TrimSpace(f.VideoID) == "" {
		errors["videoID"] = "Video link is required"
	}

	return errors
}

var youtubeMarkers = []string{"vi/", "v=", "/v/", "youtu.be/", "/embed/"}

// YouTubeVideoID pulls a video identifier out of a pasted YouTube URL. It
// looks for the first known path marker and takes the identifier characters
// that follow; input without a marker is returned as-is (angle brackets
// stripped). Heuristic, not a format validation.
func YouTubeVideoID(raw string) string {
	s := strings.NewReplacer("<", "", ">", "").Replace(raw)

	at, markerLen := -1, 0
	for _, m := range youtubeMarkers {
		if i := strings.Index(s, m); i >= 0 && (at < 0 || i < at) {
			at, markerLen = i, len(m)
		}
	}
	if at < 0 {
		return s
	}

	rest := s[at+markerLen:]
	end := strings.IndexFunc(rest, func(r rune) bool {
		switch {
		case r >= '0' && r <= '9':
			return false
		case r >= 'a' && r <= 'z':
			return false
		case r >= 'A' && r <= 'Z':
			return false
		case r == '_' || r == '-':
			return false
		}
		return true
	})
	if end >= 0 {
		rest = rest[:end]
	}
	return rest
}
