package commands

import (
	"github.com/samber/lo"
)

type ResultKind uint8

const (
	Parsed ResultKind = iota
	CannotContinue
	TooShort
)

func (k ResultKind) String() string {
	switch k {
	case Parsed:
		return "parsed"
	case CannotContinue:
		return "cannot continue"
	case TooShort:
		return "too short"
	}
	return "unknown"
}

type Result struct {
	Kind     ResultKind
	Segments []Segment
	// set when Kind is Parsed
	Command Command
	// optional hint of what is expected next, set when Kind is TooShort
	Message string
}

func (r Result) Reasons() []string {
	return lo.FilterMap(r.Segments, func(seg Segment, _ int) (string, bool) {
		return seg.Reason, seg.Reason != ""
	})
}

// Completion returns the last significant segment if it carries a suggestion.
func (r Result) Completion() (Segment, bool) {
	for i := len(r.Segments) - 1; i >= 0; i-- {
		seg := r.Segments[i]
		if seg.Kind == SegmentIgnored {
			continue
		}
		return seg, seg.Kind == SegmentAutocomplete
	}
	return Segment{}, false
}

// Complete replaces the suggested segment of text with its suggestion.
func (r Result) Complete(text string) (string, bool) {
	seg, ok := r.Completion()
	if !ok || seg.End > len(text) || seg.source != text {
		return text, false
	}
	return text[:seg.Start] + seg.Suggestion + text[seg.End:], true
}
