package services

import (
	"path"
	"sort"
	"strings"
	"time"

	"github.com/stilessandgravel/backend/internal/metrics"
	"github.com/stilessandgravel/backend/internal/models"
	"github.com/stilessandgravel/backend/internal/storage"
	"go.uber.org/zap"
)

// MediaStorage is the interface that wraps read access to the media root
type MediaStorage interface {
	// Method ListMediaFiles returns the slash-separated path, relative to the media root, of every allow-listed media file.
	//
	// Paths are returned in lexical walk order, which is the enumeration order of the built index.
	// A missing media root must yield an empty slice and a nil error.
	ListMediaFiles() ([]string, error)
	// Method ImageConfig decodes the header of the image at "relPath" and returns its pixel width and height.
	//
	// An error is returned for unreadable or undecodable files; the caller falls back to default dimensions.
	ImageConfig(relPath string) (int, int, error)
}

type mediaService struct {
	storage MediaStorage
	logger  *zap.Logger
	now     func() time.Time
}

// NewMediaService creates a new media service
func NewMediaService(storage MediaStorage, logger *zap.Logger) *mediaService {
	return &mediaService{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// BuildIndex scans the media root and builds a fresh media index.
//
// Scan failures never fail the build: an unreadable media root results in an empty index.
func (s *mediaService) BuildIndex() *models.MediaIndex {
	start := time.Now()

	files, err := s.storage.ListMediaFiles()
	if err != nil {
		s.logger.Warn("failed to scan media root, building empty index", zap.Error(err))
		files = nil
	}

	items := make([]*models.MediaItem, 0, len(files))
	for _, relPath := range files {
		items = append(items, s.newMediaItem(relPath))
	}

	assignPosters(items)

	index := &models.MediaIndex{
		Hero:      featuredFirst(filterByCategory(items, models.MediaCategoryHero)),
		Services:  featuredFirst(filterByCategory(items, models.MediaCategoryServices)),
		Materials: filterByCategory(items, models.MediaCategoryMaterials),
		Gallery:   filterByCategory(items, models.MediaCategoryGallery),
		All:       items,
	}
	index.Counts = models.MediaCounts{
		Hero:      len(index.Hero),
		Services:  len(index.Services),
		Materials: len(index.Materials),
		Gallery:   len(index.Gallery),
	}
	index.GeneratedAt = s.now().UTC()

	duration := time.Since(start)
	s.recordBuild(index, duration)

	return index
}

// ReportSkippedDir records a directory that could not be read during a scan
func (s *mediaService) ReportSkippedDir(relPath string, err error) {
	s.logger.Warn("skipping unreadable media directory", zap.String("dir", relPath), zap.Error(err))
	metrics.MediaScanSkippedDirs.Inc()
}

// newMediaItem classifies one media file. Overrides win over inferred values.
func (s *mediaService) newMediaItem(relPath string) *models.MediaItem {
	filename := path.Base(relPath)
	ext := strings.ToLower(path.Ext(filename))
	kind := models.KindForExtension(ext)

	category := inferCategory(filename)
	tags := inferTags(filename)
	featured := false
	if override, ok := placementOverrides[filename]; ok {
		category = override.Category
		if override.Tags != nil {
			tags = append([]string{}, override.Tags...)
		}
		featured = override.Featured
	}

	width, height := s.dimensions(relPath, kind)

	return &models.MediaItem{
		ID:       storage.EncodeMediaID(relPath),
		Filename: filename,
		URL:      storage.PublicURL(relPath),
		Kind:     kind,
		Category: category,
		AltText:  altText(filename, category),
		Width:    width,
		Height:   height,
		MimeType: models.MimeTypeForExtension(ext),
		Tags:     tags,
		Featured: featured,
	}
}

func (s *mediaService) dimensions(relPath string, kind models.MediaKind) (int, int) {
	if kind == models.MediaKindVideo {
		return models.DefaultVideoWidth, models.DefaultVideoHeight
	}

	width, height, err := s.storage.ImageConfig(relPath)
	if err != nil || width <= 0 || height <= 0 {
		s.logger.Debug("using default image dimensions", zap.String("path", relPath), zap.Error(err))
		return models.DefaultImageWidth, models.DefaultImageHeight
	}
	return width, height
}

func (s *mediaService) recordBuild(index *models.MediaIndex, duration time.Duration) {
	metrics.MediaIndexBuildsTotal.Inc()
	metrics.MediaIndexLastBuildDuration.Set(duration.Seconds())
	metrics.MediaIndexItems.WithLabelValues(string(models.MediaCategoryHero)).Set(float64(index.Counts.Hero))
	metrics.MediaIndexItems.WithLabelValues(string(models.MediaCategoryServices)).Set(float64(index.Counts.Services))
	metrics.MediaIndexItems.WithLabelValues(string(models.MediaCategoryMaterials)).Set(float64(index.Counts.Materials))
	metrics.MediaIndexItems.WithLabelValues(string(models.MediaCategoryGallery)).Set(float64(index.Counts.Gallery))

	s.logger.Info("media index built",
		zap.Int("items", len(index.All)),
		zap.Int("hero", index.Counts.Hero),
		zap.Int("services", index.Counts.Services),
		zap.Int("materials", index.Counts.Materials),
		zap.Int("gallery", index.Counts.Gallery),
		zap.Duration("duration", duration),
	)
}

// assignPosters pairs every video with the image sharing its stem, falling
// back to the first enumerated image
func assignPosters(items []*models.MediaItem) {
	var firstImage *models.MediaItem
	byStem := make(map[string]*models.MediaItem)
	for _, item := range items {
		if item.Kind != models.MediaKindImage {
			continue
		}
		if firstImage == nil {
			firstImage = item
		}
		byStem[storage.Stem(item.Filename)] = item
	}
	if firstImage == nil {
		return
	}

	for _, item := range items {
		if item.Kind != models.MediaKindVideo {
			continue
		}
		poster, ok := byStem[storage.Stem(item.Filename)]
		if !ok {
			poster = firstImage
		}
		item.PosterURL = poster.URL
	}
}

func filterByCategory(items []*models.MediaItem, category models.MediaCategory) []*models.MediaItem {
	filtered := []*models.MediaItem{}
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// featuredFirst moves featured items ahead of the rest, keeping relative order
func featuredFirst(items []*models.MediaItem) []*models.MediaItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Featured && !items[j].Featured
	})
	return items
}
