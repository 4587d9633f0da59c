package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/jd3600/sonar/internal/types"
)

var mimeTypes = map[string]string{
	".mp3":  "audio/mp3",
	".wav":  "audio/wav",
	".aac":  "audio/aac",
	".m4a":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mov":  "video/mov",
	".avi":  "video/avi",
	".webm": "video/webm",
	".flv":  "video/x-flv",
}

// MIMEType picks the upload mime type from the file extension, falling back
// to the default container of the media kind.
func MIMEType(path string, kind types.MediaKind) string {
	if m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	if kind == types.Video {
		return "video/mp4"
	}
	return "audio/mp3"
}
