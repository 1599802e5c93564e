package storage

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// MediaMountPath is the URL prefix the media root is served under
const MediaMountPath = "/media"

// EncodeMediaID derives a stable, reversible identifier from a
// slash-separated path relative to the media root
func EncodeMediaID(relPath string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(relPath))
}

// DecodeMediaID reverses EncodeMediaID
func DecodeMediaID(id string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return "", fmt.Errorf("invalid media id: %w", err)
	}
	return string(raw), nil
}

// PublicURL builds the public URL of a media file by escaping each segment
// of its relative path and prefixing the media mount path
func PublicURL(relPath string) string {
	segments := strings.Split(relPath, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return MediaMountPath + "/" + strings.Join(segments, "/")
}

// Stem returns a filename without its extension, lowercased
func Stem(filename string) string {
	return strings.ToLower(strings.TrimSuffix(filename, path.Ext(filename)))
}
