package models

import (
	"strings"
	"time"
)

// MediaKind represents the kind of media file
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaCategory represents the site section a media file is placed in
type MediaCategory string

const (
	MediaCategoryHero      MediaCategory = "hero"
	MediaCategoryServices  MediaCategory = "services"
	MediaCategoryMaterials MediaCategory = "materials"
	MediaCategoryGallery   MediaCategory = "gallery"
)

// MediaItem represents one media file found under the media root
type MediaItem struct {
	ID        string        `json:"id"`
	Filename  string        `json:"filename"`
	URL       string        `json:"url"`
	Kind      MediaKind     `json:"kind"`
	Category  MediaCategory `json:"category"`
	AltText   string        `json:"alt"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	PosterURL string        `json:"posterUrl,omitempty"`
	MimeType  string        `json:"mimeType"`
	Tags      []string      `json:"tags"`
	Featured  bool          `json:"featured"`
}

// MediaCounts holds the number of items in each bucket
type MediaCounts struct {
	Hero      int `json:"hero"`
	Services  int `json:"services"`
	Materials int `json:"materials"`
	Gallery   int `json:"gallery"`
}

// MediaIndex is an immutable snapshot of the categorized media catalog
type MediaIndex struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Counts      MediaCounts  `json:"counts"`
	Hero        []*MediaItem `json:"hero"`
	Services    []*MediaItem `json:"services"`
	Materials   []*MediaItem `json:"materials"`
	Gallery     []*MediaItem `json:"gallery"`
	All         []*MediaItem `json:"all"`
}

// Default display dimensions used when the real size is unknown
const (
	DefaultImageWidth  = 1600
	DefaultImageHeight = 1067
	DefaultVideoWidth  = 1920
	DefaultVideoHeight = 1080
)

// FallbackMimeType is reported for extensions missing from MimeTypes
const FallbackMimeType = "application/octet-stream"

// ImageExtensions lists the image extensions picked up by the indexer.
// Keys are lowercase and include the leading dot.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// VideoExtensions lists the video extensions picked up by the indexer.
var VideoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
}

// MimeTypes maps media extensions to their MIME types
var MimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

// IsMediaExtension reports whether ext (any case, leading dot) is allow-listed
func IsMediaExtension(ext string) bool {
	ext = strings.ToLower(ext)
	return ImageExtensions[ext] || VideoExtensions[ext]
}

// KindForExtension returns the media kind for an allow-listed extension.
// Anything that is not a video extension is treated as an image.
func KindForExtension(ext string) MediaKind {
	if VideoExtensions[strings.ToLower(ext)] {
		return MediaKindVideo
	}
	return MediaKindImage
}

// MimeTypeForExtension returns the MIME type for ext, or FallbackMimeType
func MimeTypeForExtension(ext string) string {
	if mimeType, ok := MimeTypes[strings.ToLower(ext)]; ok {
		return mimeType
	}
	return FallbackMimeType
}
