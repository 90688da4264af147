package tags_test

import (
	"errors"
	"testing"

	"exifstudio/internal/services"
	"exifstudio/internal/tags"
)

func TestGroup(t *testing.T) {
	cases := map[string]string{
		"GPSLatitude":  tags.GroupGPS,
		"ImageWidth":   tags.GroupImage,
		"PhotoISO":     tags.GroupPhoto,
		"Make":         tags.GroupOther,
		"Orientation":  tags.GroupOther,
		"GPSLongitude": tags.GroupGPS,
	}
	for name, want := range cases {
		if got := tags.Group(name); got != want {
			t.Fatalf("Group(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	tag := tags.Parse("GPSLatitude", 51.5)
	if tag.Group != tags.GroupGPS || tag.Value != 51.5 {
		t.Fatalf("unexpected tag: %+v", tag)
	}
}

func TestValidate(t *testing.T) {
	if err := tags.Validate("Make"); err != nil {
		t.Fatalf("Make should validate: %v", err)
	}
	if err := tags.Validate("ISOSpeedRatings"); err != nil {
		t.Fatalf("ISOSpeedRatings should validate: %v", err)
	}
	for _, bad := range []string{"", "   ", "-leading", "has space", "semi;colon", "1numeric"} {
		err := tags.Validate(bad)
		if err == nil {
			t.Fatalf("Validate(%q) should fail", bad)
		}
		if !errors.Is(err, services.ErrTagInvalid) {
			t.Fatalf("Validate(%q) = %v, want ErrTagInvalid", bad, err)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := tags.DisplayName("Make"); got != "Camera Make" {
		t.Fatalf("DisplayName(Make) = %q", got)
	}
	if got := tags.DisplayName("FNumber"); got != "F-Number" {
		t.Fatalf("DisplayName(FNumber) = %q", got)
	}
	if got := tags.DisplayName("lens_serial-number"); got != "Lens Serial Number" {
		t.Fatalf("DisplayName(lens_serial-number) = %q", got)
	}
}

func TestNormalizeExifDate(t *testing.T) {
	if got := tags.NormalizeExifDate("2024:01:02 03:04:05"); got != "2024-01-02 03:04:05" {
		t.Fatalf("NormalizeExifDate = %q", got)
	}
	if got := tags.NormalizeExifDate("not a date"); got != "not a date" {
		t.Fatalf("pass-through broken: %q", got)
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		2048:    "2.00 KiB",
		1048576: "1.00 MiB",
	}
	for in, want := range cases {
		if got := tags.FormatFileSize(in); got != want {
			t.Fatalf("FormatFileSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := tags.Truncate("short", 10); got != "short" {
		t.Fatalf("Truncate short = %q", got)
	}
	if got := tags.Truncate("a very long tag value here", 10); got != "a very ..." {
		t.Fatalf("Truncate long = %q", got)
	}
}
