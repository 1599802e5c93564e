package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stilessandgravel/backend/internal/models"
)

// Keyword groups checked against the lowercased filename, in priority order
var (
	heroKeywords     = []string{"truck", "dump", "delivery", "hauler", "load", "trailer"}
	serviceKeywords  = []string{"grading", "grapple", "brush", "wood", "clearing", "skid", "cat", "excavat"}
	materialKeywords = []string{"sand", "gravel", "stone", "topsoil", "dirt", "limestone", "asphalt", "concrete"}
)

// materialTags is the tag vocabulary inferred from filenames
var materialTags = []string{
	"sand",
	"topsoil",
	"pea",
	"gravel",
	"rock",
	"landscape",
	"stone",
	"fill",
	"dirt",
	"stabilized",
	"concrete",
	"asphalt",
	"limestone",
}

// placementOverride is a curated classification for one known file.
// A nil Tags slice means tags are still inferred from the filename.
type placementOverride struct {
	Category models.MediaCategory
	Tags     []string
	Featured bool
}

// placementOverrides is keyed by exact, case-sensitive filename
var placementOverrides = map[string]placementOverride{
	"stiles-sand-gravel-dup-trucks-southwest-michigan-02.jpeg": {
		Category: models.MediaCategoryHero,
		Tags:     []string{"dump-trucks", "delivery", "truck"},
		Featured: true,
	},
	"stiles-sand-gravel-material-delivery-trailer-battle-creek-mi-04.jpeg": {
		Category: models.MediaCategoryHero,
		Tags:     []string{"trailer", "delivery", "truck"},
	},
	"stiles-sand-gravel-rock-delivery-battle-creek-mi-01.jpeg": {
		Category: models.MediaCategoryHero,
		Tags:     []string{"delivery", "stockpile", "truck"},
	},
	"stiles-sand-gravel-dump-truck-delivery-battle-creek-mi-video-01.mov": {
		Category: models.MediaCategoryServices,
		Tags:     []string{"delivery", "in-action", "video"},
		Featured: true,
	},
	"stiles-sand-gravel-grading-site-prep-michigan-01.jpeg": {
		Category: models.MediaCategoryServices,
		Tags:     []string{"grading", "site-prep"},
		Featured: true,
	},
	"stiles-sand-site-prep-michigan-01.jpeg": {
		Category: models.MediaCategoryServices,
		Tags:     []string{"grading", "site-prep"},
	},
	"stiles-sand-gravel-crushed-asphalt-battle-creek-mi-02.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"crushed-asphalt", "asphalt"},
	},
	"stiles-sand-gravel-crushed-asphalt-sample-battle-creek-mi-03.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"crushed-asphalt", "asphalt", "sample"},
	},
	"stiles-sand-gravel-crushed-stone-delivery-battle-creek-mi-01.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"crushed-stone", "stone"},
	},
	"stiles-sand-gravel-crushed-stone-delivery-southwest-michigan-01.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"crushed-stone", "stone"},
	},
	"stiles-sand-gravel-sand-battle-creek-mi-02.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"sand"},
	},
	"stiles-sand-gravel-topsoil-battle-creek-mi-02.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"topsoil"},
	},
	"stiles-sand-gravel-fill-dirt-battle-creek-mi-02.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"fill-dirt", "fill", "dirt"},
	},
	"stiles-sand-gravel-limestone-battle-creek-mi-02.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"limestone"},
	},
	"stiles-sand-gravel-landscape-stone-battle-creek-mi-01.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"landscape-stone", "landscape", "stone"},
	},
	"stiles-sand-gravel-pea-gravel-battle-creek-mi-01.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"pea-gravel", "pea", "gravel"},
	},
	"stiles-sand-pea-gravel-southwest-michigan-01.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"pea-gravel", "pea", "gravel"},
	},
	"stiles-sand-pea-gravel-large-battle-creek-mi-03.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"pea-gravel", "pea", "gravel"},
	},
	"stiles-sand-gravel-river-rock-battle-creek-mi-02.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"river-rock", "rock", "stone"},
	},
	"stiles-sand-gravel-stabilized-gravel-delivery-battle-creek-mi-01.jpeg": {
		Category: models.MediaCategoryMaterials,
		Tags:     []string{"stabilized-gravel", "stabilized", "gravel"},
	},
}

var altTemplates = map[models.MediaCategory]string{
	models.MediaCategoryHero:      "Dump truck delivering gravel in Battle Creek, MI (%s)",
	models.MediaCategoryServices:  "Stiles Sand & Gravel equipment at work in Southwest Michigan (%s)",
	models.MediaCategoryMaterials: "Bulk landscaping material ready for delivery (%s)",
	models.MediaCategoryGallery:   "Stiles Sand & Gravel project gallery image (%s)",
}

var (
	separatorRun = regexp.MustCompile(`[-_]+`)
	trailingExt  = regexp.MustCompile(`\.[^.]+$`)
)

// inferCategory picks the first keyword group matching the filename
func inferCategory(filename string) models.MediaCategory {
	lower := strings.ToLower(filename)
	switch {
	case containsAny(lower, heroKeywords):
		return models.MediaCategoryHero
	case containsAny(lower, serviceKeywords):
		return models.MediaCategoryServices
	case containsAny(lower, materialKeywords):
		return models.MediaCategoryMaterials
	default:
		return models.MediaCategoryGallery
	}
}

// inferTags returns every vocabulary tag found in the filename, in vocabulary order
func inferTags(filename string) []string {
	lower := strings.ToLower(filename)
	tags := []string{}
	for _, tag := range materialTags {
		if strings.Contains(lower, tag) {
			tags = append(tags, tag)
		}
	}
	return tags
}

// displayName turns "pea_gravel--pile.jpg" into "pea gravel pile"
func displayName(filename string) string {
	cleaned := separatorRun.ReplaceAllString(filename, " ")
	cleaned = trailingExt.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

func altText(filename string, category models.MediaCategory) string {
	tmpl, ok := altTemplates[category]
	if !ok {
		tmpl = altTemplates[models.MediaCategoryGallery]
	}
	return fmt.Sprintf(tmpl, displayName(filename))
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
