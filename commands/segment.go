package commands

import "strings"

type SegmentKind uint8

const (
	SegmentOk SegmentKind = iota
	SegmentIgnored
	SegmentAutocomplete
	SegmentInvalid
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentOk:
		return "ok"
	case SegmentIgnored:
		return "ignored"
	case SegmentAutocomplete:
		return "autocomplete"
	case SegmentInvalid:
		return "invalid"
	}
	return "unknown"
}

type Segment struct {
	source string
	Start  int
	End    int
	Kind   SegmentKind
	// set for SegmentAutocomplete
	Suggestion string
	// non-empty if the segment failed to match, kept when a suggestion is attached
	Reason string
}

func (s Segment) Content() string {
	return s.source[s.Start:s.End]
}

func (s Segment) Len() int {
	return s.End - s.Start
}

func (s Segment) Valid() bool {
	return s.Reason == ""
}

// SuggestionSuffix is the part of the suggestion not typed yet.
func (s Segment) SuggestionSuffix() string {
	if s.Kind != SegmentAutocomplete {
		return ""
	}
	content := s.Content()
	if len(s.Suggestion) <= len(content) ||
		!strings.EqualFold(s.Suggestion[:len(content)], content) {
		return ""
	}
	return s.Suggestion[len(content):]
}

func (s Segment) String() string {
	return s.Content()
}
