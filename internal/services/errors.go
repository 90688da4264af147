package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEngineInit        = errors.New("engine init failed")
	ErrFileRead          = errors.New("file read failed")
	ErrDecode            = errors.New("decode failed")
	ErrWrite             = errors.New("write failed")
	ErrTagInvalid        = errors.New("invalid tag")
	ErrFormatUnsupported = errors.New("unsupported format")
	ErrUnknown           = errors.New("unknown error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrUnknown
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Code returns the stable diagnostic code for an error from the taxonomy.
// Unrecognized errors map to UNKNOWN.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrEngineInit):
		return "ENGINE_INIT_FAILED"
	case errors.Is(err, ErrFileRead):
		return "FILE_READ_FAILED"
	case errors.Is(err, ErrDecode):
		return "DECODE_FAILED"
	case errors.Is(err, ErrWrite):
		return "WRITE_FAILED"
	case errors.Is(err, ErrTagInvalid):
		return "TAG_INVALID"
	case errors.Is(err, ErrFormatUnsupported):
		return "FORMAT_UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
