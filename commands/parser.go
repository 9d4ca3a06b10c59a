package commands

import (
	"cmp"
	"fmt"
	"io/fs"
	"math"
	"path/filepath"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/reusee/tapebf/cells"
	"github.com/reusee/tapebf/durations"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

var commandNames = []string{
	"start",
	"pause",
	"step",
	"set",
	"load",
	"quit",
}

var variableNames = []string{
	"instruction pointer",
	"ip",
	"data pointer",
	"dp",
	"data",
	"d",
	"speed",
	"bound",
}

const equals = "="

var equalsNames = []string{equals}

type Parser[T cells.Cell] struct {
	FS FileSystem
}

func NewParser[T cells.Cell]() Parser[T] {
	return Parser[T]{
		FS: OSFileSystem{},
	}
}

func Parse[T cells.Cell](text string, autocomplete bool) Result {
	return NewParser[T]().Parse(text, autocomplete)
}

func (p Parser[T]) Parse(text string, autocomplete bool) Result {
	fsys := p.FS
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	s := &scanner[T]{
		text:         text,
		autocomplete: autocomplete,
		fold:         cases.Fold(),
		fs:           fsys,
	}
	return s.command()
}

type scanner[T cells.Cell] struct {
	text         string
	pos          int
	autocomplete bool
	fold         cases.Caser
	fs           FileSystem
	segments     []Segment
}

func (s *scanner[T]) atEnd() bool {
	return s.pos >= len(s.text)
}

func (s *scanner[T]) folded(start, end int) string {
	return s.fold.String(s.text[start:end])
}

func (s *scanner[T]) segment(start, end int) Segment {
	return Segment{
		source: s.text,
		Start:  start,
		End:    end,
		Kind:   SegmentOk,
	}
}

func (s *scanner[T]) push(seg Segment) {
	s.segments = append(s.segments, seg)
	s.pos = seg.End
}

// space consumes whitespace as an ignored segment.
func (s *scanner[T]) space() {
	end := s.pos
	for end < len(s.text) {
		r, size := utf8.DecodeRuneInString(s.text[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	if end > s.pos {
		seg := s.segment(s.pos, end)
		seg.Kind = SegmentIgnored
		s.push(seg)
	}
}

// word returns the extent of the next run of non-space characters, stopping before any of stops.
func (s *scanner[T]) word(stops string) (start, end int) {
	start = s.pos
	end = start
	for end < len(s.text) {
		r, size := utf8.DecodeRuneInString(s.text[end:])
		if unicode.IsSpace(r) || strings.ContainsRune(stops, r) {
			break
		}
		end += size
	}
	return
}

// rest returns the remaining text without trailing whitespace.
func (s *scanner[T]) rest() (start, end int) {
	start = s.pos
	end = start + len(strings.TrimRightFunc(s.text[start:], unicode.IsSpace))
	return
}

func (s *scanner[T]) invalid(seg Segment, reason string, candidates []string) Segment {
	seg.Kind = SegmentInvalid
	seg.Reason = reason
	if candidates == nil {
		return seg
	}
	typed := s.fold.String(seg.Content())
	prefixed := ""
	for _, candidate := range candidates {
		if strings.HasPrefix(s.fold.String(candidate), typed) {
			prefixed = candidate
			break
		}
	}
	if prefixed == "" {
		if hint := closest(typed, candidates); hint != "" {
			seg.Reason += fmt.Sprintf(" (did you mean '%s'?)", hint)
		}
	} else if s.autocomplete {
		seg.Kind = SegmentAutocomplete
		seg.Suggestion = prefixed
	}
	return seg
}

func closest(word string, candidates []string) string {
	ranks := fuzzy.RankFindFold(word, candidates)
	if len(ranks) == 0 {
		return ""
	}
	slices.SortStableFunc(ranks, func(a, b fuzzy.Rank) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if ranks[0].Distance == 0 {
		return ""
	}
	return ranks[0].Target
}

func (s *scanner[T]) parsed(command Command) Result {
	return Result{
		Kind:     Parsed,
		Segments: s.segments,
		Command:  command,
	}
}

func (s *scanner[T]) cannotContinue() Result {
	return Result{
		Kind:     CannotContinue,
		Segments: s.segments,
	}
}

func (s *scanner[T]) tooShort(message string) Result {
	return Result{
		Kind:     TooShort,
		Segments: s.segments,
		Message:  message,
	}
}

// finish accepts trailing whitespace only.
func (s *scanner[T]) finish(command Command) Result {
	s.space()
	if s.atEnd() {
		return s.parsed(command)
	}
	start, end := s.rest()
	seg := s.segment(start, end)
	seg = s.invalid(seg, fmt.Sprintf("unexpected '%s'", seg.Content()), nil)
	s.push(seg)
	return s.cannotContinue()
}

func (s *scanner[T]) command() Result {
	if s.text == "" {
		return s.tooShort("")
	}
	s.space()
	if s.atEnd() {
		return s.tooShort("")
	}

	start, end := s.word("")
	seg := s.segment(start, end)
	switch s.folded(start, end) {

	case "start":
		s.push(seg)
		return s.finish(Start{})

	case "pause":
		s.push(seg)
		return s.finish(Pause{})

	case "quit":
		s.push(seg)
		return s.finish(Quit{})

	case "step":
		s.push(seg)
		return s.step()

	case "set":
		s.push(seg)
		return s.set()

	case "load":
		s.push(seg)
		return s.load()

	}

	s.push(s.invalid(
		seg,
		fmt.Sprintf("unrecognised command '%s'", seg.Content()),
		commandNames,
	))
	return s.cannotContinue()
}

func (s *scanner[T]) step() Result {
	s.space()
	if s.atEnd() {
		return s.parsed(Step{Count: 1})
	}
	start, end := s.word("")
	seg := s.segment(start, end)
	n, ok := s.index(&seg)
	if ok && n == 0 {
		seg = s.invalid(seg, "count must be positive", nil)
		ok = false
	}
	s.push(seg)
	if !ok {
		return s.cannotContinue()
	}
	return s.finish(Step{Count: n})
}

type target uint8

const (
	targetInstructionPointer target = iota + 1
	targetDataPointer
	targetData
	targetSpeed
	targetBound
)

func (s *scanner[T]) set() Result {
	s.space()
	if s.atEnd() {
		return s.tooShort("variable name required")
	}

	variable, ok := s.target()
	if !ok {
		return s.cannotContinue()
	}

	switch variable {

	case targetData:
		return s.setData()

	case targetInstructionPointer, targetDataPointer:
		if res, ok := s.assign("expecting ="); !ok {
			return res
		}
		start, end := s.word("")
		seg := s.segment(start, end)
		var idx int
		if variable == targetInstructionPointer {
			idx, ok = s.index(&seg)
		} else {
			idx, ok = s.address(&seg)
		}
		s.push(seg)
		if !ok {
			return s.cannotContinue()
		}
		if variable == targetInstructionPointer {
			return s.finish(SetInstructionPointer{Index: idx})
		}
		return s.finish(SetDataPointer{Index: idx})

	case targetSpeed:
		if res, ok := s.assign("expecting ="); !ok {
			return res
		}
		start, end := s.rest()
		seg := s.segment(start, end)
		speed, ok := s.duration(&seg)
		s.push(seg)
		if !ok {
			return s.cannotContinue()
		}
		return s.finish(SetSpeed{Speed: speed})

	case targetBound:
		if res, ok := s.assign("expecting ="); !ok {
			return res
		}
		start, end := s.word("")
		lowerSeg := s.segment(start, end)
		lower, ok := s.number(&lowerSeg)
		s.push(lowerSeg)
		if !ok {
			return s.cannotContinue()
		}
		s.space()
		if s.atEnd() {
			return s.tooShort("expecting upper bound")
		}
		start, end = s.word("")
		upperSeg := s.segment(start, end)
		upper, ok := s.number(&upperSeg)
		if ok && upper < lower {
			upperSeg = s.invalid(upperSeg, "upper bound below lower bound", nil)
			ok = false
		}
		s.push(upperSeg)
		if !ok {
			return s.cannotContinue()
		}
		return s.finish(SetBounds[T]{
			Lower: lower,
			Upper: upper,
		})

	}

	panic("unreachable")
}

// target consumes the variable name, including the two-word pointer names.
func (s *scanner[T]) target() (target, bool) {
	start, end := s.word("(")
	seg := s.segment(start, end)
	name := s.folded(start, end)

	switch name {
	case "ip":
		s.push(seg)
		return targetInstructionPointer, true
	case "dp":
		s.push(seg)
		return targetDataPointer, true
	case "d":
		s.push(seg)
		return targetData, true
	case "speed":
		s.push(seg)
		return targetSpeed, true
	case "bound":
		s.push(seg)
		return targetBound, true
	}

	if name == "instruction" || name == "data" {
		// look ahead for "pointer"
		next := end
		for next < len(s.text) {
			r, size := utf8.DecodeRuneInString(s.text[next:])
			if !unicode.IsSpace(r) {
				break
			}
			next += size
		}
		if next > end {
			saved := s.pos
			s.pos = next
			wordStart, wordEnd := s.word("")
			s.pos = saved
			second := s.folded(wordStart, wordEnd)
			merged := s.segment(start, wordEnd)
			if second == "pointer" {
				s.push(merged)
				if name == "instruction" {
					return targetInstructionPointer, true
				}
				return targetDataPointer, true
			}
			_, restEnd := s.rest()
			if wordEnd == restEnd && wordStart < wordEnd && strings.HasPrefix("pointer", second) {
				// still typing the second word
				s.push(s.invalid(
					merged,
					fmt.Sprintf("unknown variable '%s'", merged.Content()),
					variableNames,
				))
				return 0, false
			}
		}
		if name == "data" {
			s.push(seg)
			return targetData, true
		}
	}

	// name may have stopped at a parenthesis
	_, end = s.word("")
	seg = s.segment(start, end)
	s.push(s.invalid(
		seg,
		fmt.Sprintf("unknown variable '%s'", seg.Content()),
		variableNames,
	))
	return 0, false
}

// assign expects the = separator followed by more input.
func (s *scanner[T]) assign(missing string) (Result, bool) {
	s.space()
	if s.atEnd() {
		return s.tooShort(missing), false
	}
	start, end := s.word("")
	seg := s.segment(start, end)
	if seg.Content() != equals {
		s.push(s.invalid(
			seg,
			fmt.Sprintf("expected '=', got '%s'", seg.Content()),
			equalsNames,
		))
		return s.cannotContinue(), false
	}
	s.push(seg)
	s.space()
	if s.atEnd() {
		return s.tooShort("expecting value"), false
	}
	return Result{}, true
}

func (s *scanner[T]) setData() Result {
	s.space()
	if s.atEnd() {
		return s.tooShort("expecting index or =")
	}

	var idx int
	hasIndex := false

	if strings.HasPrefix(s.text[s.pos:], "(") {
		open := s.segment(s.pos, s.pos+1)
		open.Kind = SegmentIgnored
		s.push(open)
		s.space()
		if s.atEnd() {
			return s.tooShort("expecting index")
		}
		start, end := s.word(")")
		seg := s.segment(start, end)
		if start == end {
			seg = s.invalid(seg, "expecting index", nil)
			s.push(seg)
			return s.cannotContinue()
		}
		var ok bool
		idx, ok = s.address(&seg)
		s.push(seg)
		if !ok {
			return s.cannotContinue()
		}
		s.space()
		if s.atEnd() {
			return s.tooShort("expecting ')'")
		}
		if !strings.HasPrefix(s.text[s.pos:], ")") {
			start, end := s.word("")
			s.push(s.invalid(
				s.segment(start, end),
				fmt.Sprintf("expected ')', got '%s'", s.text[start:end]),
				nil,
			))
			return s.cannotContinue()
		}
		closing := s.segment(s.pos, s.pos+1)
		closing.Kind = SegmentIgnored
		s.push(closing)
		hasIndex = true
		if res, ok := s.assign("expecting ="); !ok {
			return res
		}

	} else {
		start, end := s.word("")
		if s.text[start:end] == equals {
			s.push(s.segment(start, end))
			s.space()
			if s.atEnd() {
				return s.tooShort("expecting value")
			}
		} else {
			seg := s.segment(start, end)
			var ok bool
			idx, ok = s.address(&seg)
			s.push(seg)
			if !ok {
				return s.cannotContinue()
			}
			hasIndex = true
			if res, ok := s.assign("expecting ="); !ok {
				return res
			}
		}
	}

	start, end := s.word("")
	seg := s.segment(start, end)
	value, ok := s.number(&seg)
	s.push(seg)
	if !ok {
		return s.cannotContinue()
	}
	return s.finish(SetData[T]{
		Index:    idx,
		HasIndex: hasIndex,
		Value:    value,
	})
}

func (s *scanner[T]) number(seg *Segment) (T, bool) {
	v, err := cells.Parse[T](seg.Content())
	if err != nil {
		*seg = s.invalid(*seg, "not a valid number", nil)
		return 0, false
	}
	return v, true
}

func (s *scanner[T]) index(seg *Segment) (int, bool) {
	v, err := cells.Parse[uint](seg.Content())
	if err != nil {
		*seg = s.invalid(*seg, "not a valid number", nil)
		return 0, false
	}
	if v > math.MaxInt {
		*seg = s.invalid(*seg, "index out of range", nil)
		return 0, false
	}
	return int(v), true
}

// address is an index that names a cell.
func (s *scanner[T]) address(seg *Segment) (int, bool) {
	idx, ok := s.index(seg)
	if !ok {
		return 0, false
	}
	if !cells.ValidIndex(idx) {
		*seg = s.invalid(*seg, "index out of range", nil)
		return 0, false
	}
	return idx, true
}

func (s *scanner[T]) duration(seg *Segment) (time.Duration, bool) {
	d, err := durations.Parse(seg.Content())
	if err != nil {
		*seg = s.invalid(*seg, fmt.Sprintf("not a valid duration '%s'", seg.Content()), nil)
		return 0, false
	}
	if d < 0 {
		*seg = s.invalid(*seg, "speed must not be negative", nil)
		return 0, false
	}
	return d, true
}

func (s *scanner[T]) load() Result {
	s.space()
	if s.atEnd() {
		return s.tooShort("expected file name")
	}
	start, end := s.rest()
	seg := s.segment(start, end)
	path := seg.Content()

	info, err := s.fs.Stat(path)
	if err != nil {
		seg = s.invalid(seg, "file not found", nil)
	} else if !info.Mode().IsRegular() {
		seg = s.invalid(seg, "path does not refer to a file", nil)
	}

	if s.autocomplete {
		if suggestion := s.completePath(path); suggestion != "" && suggestion != path {
			seg.Kind = SegmentAutocomplete
			seg.Suggestion = suggestion
		}
	}

	s.push(seg)
	if !seg.Valid() {
		return s.cannotContinue()
	}
	return s.finish(Load{Path: path})
}

// completePath suggests the smallest directory entry extending the typed base name.
func (s *scanner[T]) completePath(typed string) string {
	sep := strings.LastIndexFunc(typed, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	dirPart := typed[:sep+1]
	base := typed[sep+1:]
	dir := dirPart
	if dir == "" {
		dir = "."
	}

	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return ""
	}
	matches := lo.FilterMap(entries, func(entry fs.DirEntry, _ int) (string, bool) {
		return entry.Name(), strings.HasPrefix(entry.Name(), base)
	})
	if len(matches) == 0 {
		return ""
	}
	name := lo.Min(matches)
	if name == base {
		entry, _ := lo.Find(entries, func(entry fs.DirEntry) bool {
			return entry.Name() == name
		})
		if entry == nil || !entry.IsDir() {
			return ""
		}
		return dirPart + name + string(filepath.Separator)
	}
	return dirPart + name
}
