package feedgen

import "strings"

// mimeByExt maps media file extensions to enclosure MIME types.
// Ordered so .jpeg is not shadowed by .jpg substring matching.
var mimeByExt = []struct {
	Ext  string
	Type string
}{
	{".jpeg", "image/jpeg"},
	{".jpg", "image/jpeg"},
	{".png", "image/png"},
	{".gif", "image/gif"},
	{".webp", "image/webp"},
	{".mp4", "video/mp4"},
	{".webm", "video/webm"},
	{".mov", "video/quicktime"},
	{".m4v", "video/x-m4v"},
	{".avi", "video/x-msvideo"},
	{".mkv", "video/x-matroska"},
}

// GuessMIME returns the MIME type for a media URL based on the file
// extension anywhere in the URL, or fallback when nothing matches.
func GuessMIME(mediaURL, fallback string) string {
	lower := strings.ToLower(mediaURL)
	for _, m := range mimeByExt {
		if strings.Contains(lower, m.Ext) {
			return m.Type
		}
	}
	return fallback
}
