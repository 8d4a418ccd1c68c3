package jsonview

import (
	"fmt"
	"strings"
)

// DateDetection controls which numeric encodings are recognized as dates.
type DateDetection string

const (
	DateDetectAll       DateDetection = "all"
	DateDetectSerial    DateDetection = "serial"
	DateDetectTimestamp DateDetection = "timestamp"
	DateDetectNone      DateDetection = "none"
)

// ListDetection controls which values are rendered as lists.
type ListDetection string

const (
	// ListDetectAll accepts JSON arrays and strings encoding a JSON array.
	ListDetectAll ListDetection = "all"
	// ListDetectArray accepts JSON arrays only.
	ListDetectArray ListDetection = "array"
	ListDetectNone  ListDetection = "none"
)

// MissingCellPolicy controls rows that lack a column present in the sheet.
type MissingCellPolicy string

const (
	MissingCellEmpty MissingCellPolicy = "empty"
	MissingCellError MissingCellPolicy = "error"
)

const (
	// DefaultDateFormat is the UTC long form browsers use for Date.toUTCString.
	DefaultDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

	// Both default windows span 2000-01-01 up to 2100-01-01.
	DefaultDateSerialMin = 36526
	DefaultDateSerialMax = 73051
	DefaultTimestampMin  = 946684800
	DefaultTimestampMax  = 4102444800

	DefaultMediaPrefix   = "media_"
	DefaultMediaWidth    = 1200
	DefaultMediaFormat   = "pjpg"
	DefaultMediaOptimize = "medium"

	DefaultTextClass    = "text"
	DefaultHeadingLevel = 2
)

// Config holds all renderer configuration options.
type Config struct {
	DateDetection DateDetection `json:"dateDetection,omitempty" yaml:"dateDetection,omitempty"`
	DateFormat    string        `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty"`
	DateSerialMin float64       `json:"dateSerialMin,omitempty" yaml:"dateSerialMin,omitempty"`
	DateSerialMax float64       `json:"dateSerialMax,omitempty" yaml:"dateSerialMax,omitempty"`
	Date1904      bool          `json:"date1904,omitempty" yaml:"date1904,omitempty"`
	TimestampMin  float64       `json:"timestampMin,omitempty" yaml:"timestampMin,omitempty"`
	TimestampMax  float64       `json:"timestampMax,omitempty" yaml:"timestampMax,omitempty"`

	MediaPrefix   string `json:"mediaPrefix,omitempty" yaml:"mediaPrefix,omitempty"`
	MediaWidth    int    `json:"mediaWidth,omitempty" yaml:"mediaWidth,omitempty"`
	MediaFormat   string `json:"mediaFormat,omitempty" yaml:"mediaFormat,omitempty"`
	MediaOptimize string `json:"mediaOptimize,omitempty" yaml:"mediaOptimize,omitempty"`

	ListDetection  ListDetection     `json:"listDetection,omitempty" yaml:"listDetection,omitempty"`
	TextClass      string            `json:"textClass,omitempty" yaml:"textClass,omitempty"`
	HeadingLevel   int               `json:"headingLevel,omitempty" yaml:"headingLevel,omitempty"`
	MissingCells   MissingCellPolicy `json:"missingCells,omitempty" yaml:"missingCells,omitempty"`
	ResolutionMode ResolutionMode    `json:"resolutionMode,omitempty" yaml:"resolutionMode,omitempty"`
	Sanitize       bool              `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`

	LinkHook  LinkRenderHook  `json:"-" yaml:"-"`
	ImageHook ImageRenderHook `json:"-" yaml:"-"`
}

func (c Config) applyDefaults() Config {
	if c.DateDetection == "" {
		c.DateDetection = DateDetectAll
	}
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	// Window bounds default independently; zero means unset.
	if c.DateSerialMin == 0 {
		c.DateSerialMin = DefaultDateSerialMin
	}
	if c.DateSerialMax == 0 {
		c.DateSerialMax = DefaultDateSerialMax
	}
	if c.TimestampMin == 0 {
		c.TimestampMin = DefaultTimestampMin
	}
	if c.TimestampMax == 0 {
		c.TimestampMax = DefaultTimestampMax
	}
	if c.MediaPrefix == "" {
		c.MediaPrefix = DefaultMediaPrefix
	}
	if c.MediaWidth == 0 {
		c.MediaWidth = DefaultMediaWidth
	}
	if c.MediaFormat == "" {
		c.MediaFormat = DefaultMediaFormat
	}
	if c.MediaOptimize == "" {
		c.MediaOptimize = DefaultMediaOptimize
	}
	if c.ListDetection == "" {
		c.ListDetection = ListDetectAll
	}
	if c.TextClass == "" {
		c.TextClass = DefaultTextClass
	}
	if c.HeadingLevel == 0 {
		c.HeadingLevel = DefaultHeadingLevel
	}
	if c.MissingCells == "" {
		c.MissingCells = MissingCellEmpty
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}

	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.DateDetection != DateDetectAll && c.DateDetection != DateDetectSerial &&
		c.DateDetection != DateDetectTimestamp && c.DateDetection != DateDetectNone {
		return fmt.Errorf("invalid dateDetection %q", c.DateDetection)
	}
	if c.DateFormat == "" || !hasDateReferenceTokens(c.DateFormat) {
		return fmt.Errorf("invalid dateFormat %q: must contain Go reference date components", c.DateFormat)
	}
	if c.DateSerialMin < 0 || c.DateSerialMin >= c.DateSerialMax {
		return fmt.Errorf("invalid date serial window [%g, %g)", c.DateSerialMin, c.DateSerialMax)
	}
	if c.TimestampMin < 0 || c.TimestampMin >= c.TimestampMax {
		return fmt.Errorf("invalid timestamp window [%g, %g)", c.TimestampMin, c.TimestampMax)
	}
	if c.DateSerialMax > c.TimestampMin && c.TimestampMax > c.DateSerialMin {
		return fmt.Errorf("date serial window [%g, %g) overlaps timestamp window [%g, %g)",
			c.DateSerialMin, c.DateSerialMax, c.TimestampMin, c.TimestampMax)
	}
	if strings.TrimSpace(c.MediaPrefix) == "" || strings.Contains(c.MediaPrefix, "/") {
		return fmt.Errorf("invalid mediaPrefix %q", c.MediaPrefix)
	}
	if c.MediaWidth < 1 {
		return fmt.Errorf("mediaWidth must be positive, got %d", c.MediaWidth)
	}
	if !isQueryToken(c.MediaFormat) {
		return fmt.Errorf("invalid mediaFormat %q", c.MediaFormat)
	}
	if !isQueryToken(c.MediaOptimize) {
		return fmt.Errorf("invalid mediaOptimize %q", c.MediaOptimize)
	}
	if c.ListDetection != ListDetectAll && c.ListDetection != ListDetectArray && c.ListDetection != ListDetectNone {
		return fmt.Errorf("invalid listDetection %q", c.ListDetection)
	}
	if strings.TrimSpace(c.TextClass) == "" || strings.ContainsAny(c.TextClass, " \t\n") {
		return fmt.Errorf("invalid textClass %q", c.TextClass)
	}
	switch Kind(c.TextClass) {
	case KindDate, KindImage, KindLink, KindList, KindNumber:
		return fmt.Errorf("textClass %q collides with a cell kind", c.TextClass)
	}
	if c.HeadingLevel < 1 || c.HeadingLevel > 6 {
		return fmt.Errorf("headingLevel must be between 1 and 6, got %d", c.HeadingLevel)
	}
	if c.MissingCells != MissingCellEmpty && c.MissingCells != MissingCellError {
		return fmt.Errorf("invalid missingCells policy %q", c.MissingCells)
	}
	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}

	return nil
}

func hasDateReferenceTokens(format string) bool {
	format = strings.TrimSpace(format)
	if format == "" {
		return false
	}

	referenceTokens := []string{
		"2006", "06", "Jan", "January", "1", "01",
		"2", "02", "_2", "Mon", "Monday", "15", "3", "03", "4", "04",
		"5", "05", "PM", "pm", "MST", "-0700", "-07:00", "Z0700", "Z07:00", "Z07",
	}
	for _, token := range referenceTokens {
		if strings.Contains(format, token) {
			return true
		}
	}
	return false
}

// isQueryToken reports whether s can be appended to a query string unescaped.
func isQueryToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
