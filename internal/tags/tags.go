package tags

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"exifstudio/internal/services"
)

// Tag is a single named metadata field with its presentation grouping.
type Tag struct {
	Name  string
	Value any
	Group string
}

// Presentation groups, in display order.
const (
	GroupGPS   = "GPS"
	GroupImage = "Image"
	GroupPhoto = "Photo"
	GroupOther = "Other"
)

// GroupOrder lists the presentation groups in display order.
var GroupOrder = []string{GroupImage, GroupPhoto, GroupGPS, GroupOther}

// CommonTags are the fields most users care about, in display order.
var CommonTags = []string{
	"Make",
	"Model",
	"DateTime",
	"ExposureTime",
	"FNumber",
	"ISOSpeedRatings",
	"FocalLength",
	"ImageWidth",
	"ImageHeight",
	"GPSLatitude",
	"GPSLongitude",
	"Software",
	"Orientation",
}

var displayNames = map[string]string{
	"fileName":        "File Name",
	"fileSize":        "File Size",
	"mimeType":        "MIME Type",
	"Make":            "Camera Make",
	"Model":           "Camera Model",
	"DateTime":        "Date Taken",
	"GPSLatitude":     "GPS Latitude",
	"GPSLongitude":    "GPS Longitude",
	"ExposureTime":    "Exposure Time",
	"FNumber":         "F-Number",
	"ISOSpeedRatings": "ISO",
	"FocalLength":     "Focal Length",
	"ImageWidth":      "Width",
	"ImageHeight":     "Height",
	"Orientation":     "Orientation",
}

// tagNamePattern matches names exiftool accepts on the command line.
var tagNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

var titleCaser = cases.Title(language.Und)

// Parse builds a Tag with its presentation group for a raw name/value pair.
func Parse(name string, value any) Tag {
	return Tag{Name: name, Value: value, Group: Group(name)}
}

// Group returns the presentation group for a tag name.
func Group(name string) string {
	switch {
	case strings.HasPrefix(name, "GPS"):
		return GroupGPS
	case strings.HasPrefix(name, "Image"):
		return GroupImage
	case strings.HasPrefix(name, "Photo"):
		return GroupPhoto
	default:
		return GroupOther
	}
}

// Validate reports whether a tag name can be sent to the engine.
func Validate(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return services.Wrap(services.ErrTagInvalid, "tags", "validate", "tag name is empty", nil)
	}
	if !tagNamePattern.MatchString(trimmed) {
		return services.Wrap(services.ErrTagInvalid, "tags", "validate", fmt.Sprintf("tag name %q contains unsupported characters", name), nil)
	}
	return nil
}

// DisplayName maps a tag name to its human-friendly label. Unknown names are
// split on underscores/dashes and title-cased.
func DisplayName(name string) string {
	if label, ok := displayNames[name]; ok {
		return label
	}
	return slugToTitle(name)
}

func slugToTitle(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, word := range words {
		words[i] = titleCaser.String(strings.ToLower(word))
	}
	return strings.Join(words, " ")
}
