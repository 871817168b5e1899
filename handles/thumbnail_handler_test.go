package handles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveThumbnailURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"},
		{"https://youtube.com/watch?v=abc123", "https://i.ytimg.com/vi/abc123/hqdefault.jpg"},
		{"https://youtu.be/9bZkp7q19f0", "https://i.ytimg.com/vi/9bZkp7q19f0/hqdefault.jpg"},
		{"https://www.youtube.com/shorts/xyz789", "https://i.ytimg.com/vi/xyz789/hqdefault.jpg"},
		{"https://www.youtube.com/embed/e1", "https://i.ytimg.com/vi/e1/hqdefault.jpg"},
		{"https://vimeo.com/76979871", "https://vumbnail.com/76979871.jpg"},
		{"https://example.com/video.mp4", ""},
		{"not a url at all ://", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, deriveThumbnailURL(tc.url), "url=%s", tc.url)
	}
}
