package jsonview

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Kind is the semantic classification of a cell. Its value doubles as the
// CSS class of the rendered cell container.
type Kind string

const (
	KindDate   Kind = "date"
	KindImage  Kind = "image"
	KindLink   Kind = "link"
	KindList   Kind = "list"
	KindNumber Kind = "number"
	KindText   Kind = "text"
)

// DateBasis records which numeric encoding produced a date.
type DateBasis string

const (
	DateBasisSerial    DateBasis = "serial"
	DateBasisTimestamp DateBasis = "timestamp"
)

// Descriptor is the classified, render-ready form of one raw cell value.
type Descriptor struct {
	Kind Kind
	Raw  Value

	// Text is the display text: the formatted date, the number literal,
	// the link or media path, or the verbatim text.
	Text      string
	Time      time.Time
	DateBasis DateBasis
	Href      string
	Src       string
	Items     []string
}

var decimalPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?$`)

type detectRule struct {
	kind  Kind
	match func(Value) (Descriptor, bool)
}

// Detector classifies raw cell values. The first matching rule wins.
type Detector struct {
	config Config
	rules  []detectRule
}

// NewDetector creates a Detector with the given config.
func NewDetector(config Config) (*Detector, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newDetector(cfg), nil
}

func newDetector(cfg Config) *Detector {
	d := &Detector{config: cfg}
	d.rules = []detectRule{
		{kind: KindDate, match: d.matchDate},
		{kind: KindImage, match: d.matchImage},
		{kind: KindLink, match: d.matchLink},
		{kind: KindList, match: d.matchList},
		{kind: KindNumber, match: d.matchNumber},
	}
	return d
}

// Precedence returns the kinds in the order they are tried. KindText is always last.
func (d *Detector) Precedence() []Kind {
	kinds := make([]Kind, 0, len(d.rules)+1)
	for _, r := range d.rules {
		kinds = append(kinds, r.kind)
	}
	return append(kinds, KindText)
}

// Detect classifies v. It never fails; unmatched values are TEXT.
func (d *Detector) Detect(v Value) Descriptor {
	for _, r := range d.rules {
		if desc, ok := r.match(v); ok {
			desc.Kind = r.kind
			desc.Raw = v
			return desc
		}
	}
	return Descriptor{Kind: KindText, Raw: v, Text: v.Text()}
}

func (d *Detector) matchDate(v Value) (Descriptor, bool) {
	if d.config.DateDetection == DateDetectNone {
		return Descriptor{}, false
	}
	literal, ok := numericLiteral(v)
	if !ok {
		return Descriptor{}, false
	}
	f, err := cast.ToFloat64E(literal)
	if err != nil || math.IsInf(f, 0) {
		return Descriptor{}, false
	}

	if d.config.DateDetection != DateDetectTimestamp && f >= d.config.DateSerialMin && f < d.config.DateSerialMax {
		t, err := excelize.ExcelDateToTime(f, d.config.Date1904)
		if err == nil {
			return d.dateDescriptor(t.UTC().Round(time.Millisecond), DateBasisSerial), true
		}
	}
	if d.config.DateDetection != DateDetectSerial && f >= d.config.TimestampMin && f < d.config.TimestampMax {
		sec, frac := math.Modf(f)
		t := time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
		return d.dateDescriptor(t, DateBasisTimestamp), true
	}
	return Descriptor{}, false
}

func (d *Detector) dateDescriptor(t time.Time, basis DateBasis) Descriptor {
	return Descriptor{
		Text:      t.Format(d.config.DateFormat),
		Time:      t,
		DateBasis: basis,
	}
}

// matchImage recognizes media paths: a path whose last segment starts with the media prefix.
func (d *Detector) matchImage(v Value) (Descriptor, bool) {
	if v.Type != StringValue {
		return Descriptor{}, false
	}
	base := v.Str
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	slash := strings.LastIndex(base, "/")
	if slash < 0 {
		return Descriptor{}, false
	}
	segment := base[slash+1:]
	if len(segment) <= len(d.config.MediaPrefix) || !strings.HasPrefix(segment, d.config.MediaPrefix) {
		return Descriptor{}, false
	}

	return Descriptor{
		Text: v.Str,
		Src:  base + d.mediaQuery(),
	}, true
}

func (d *Detector) mediaQuery() string {
	return fmt.Sprintf("?width=%d&format=%s&optimize=%s", d.config.MediaWidth, d.config.MediaFormat, d.config.MediaOptimize)
}

// matchLink recognizes site-relative paths: any string starting with "/" that is not an image.
func (d *Detector) matchLink(v Value) (Descriptor, bool) {
	if v.Type != StringValue || !strings.HasPrefix(v.Str, "/") {
		return Descriptor{}, false
	}
	return Descriptor{Text: v.Str, Href: v.Str}, true
}

func (d *Detector) matchList(v Value) (Descriptor, bool) {
	switch {
	case d.config.ListDetection == ListDetectNone:
		return Descriptor{}, false
	case v.Type == ArrayValue:
		return listDescriptor(v), true
	case v.Type == StringValue && d.config.ListDetection == ListDetectAll:
		trimmed := strings.TrimSpace(v.Str)
		if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
			return Descriptor{}, false
		}
		decoded, err := ParseValue([]byte(trimmed))
		if err != nil || decoded.Type != ArrayValue {
			return Descriptor{}, false
		}
		desc := listDescriptor(decoded)
		desc.Text = v.Str
		return desc, true
	}
	return Descriptor{}, false
}

func listDescriptor(array Value) Descriptor {
	items := make([]string, 0, len(array.Items))
	for _, item := range array.Items {
		items = append(items, item.Text())
	}
	return Descriptor{Text: array.JSON(), Items: items}
}

func (d *Detector) matchNumber(v Value) (Descriptor, bool) {
	literal, ok := numericLiteral(v)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{Text: literal}, true
}

// numericLiteral returns the original text of a JSON number or of a string
// that is a plain decimal number with nothing around it.
func numericLiteral(v Value) (string, bool) {
	switch v.Type {
	case NumberValue:
		return v.Num.String(), true
	case StringValue:
		if decimalPattern.MatchString(v.Str) {
			return v.Str, true
		}
	}
	return "", false
}
