package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-drift/dwidget/pkg/widgets"
)

// Finder locates widgets in the tree.
type Finder interface {
	// Evaluate returns all matching widgets under root (depth-first pre-order).
	Evaluate(root widgets.Widget) []widgets.Widget
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	widgets []widgets.Widget
	finder  Finder
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() widgets.Widget {
	if len(r.widgets) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.description()))
	}
	return r.widgets[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() widgets.Widget {
	if len(r.widgets) == 0 {
		return nil
	}
	return r.widgets[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) widgets.Widget {
	if index < 0 || index >= len(r.widgets) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.widgets), r.description()))
	}
	return r.widgets[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []widgets.Widget {
	return r.widgets
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.widgets)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.widgets) > 0
}

// --- Concrete finders ---

type typeFinder struct {
	widgetType reflect.Type
}

func (f *typeFinder) Evaluate(root widgets.Widget) []widgets.Widget {
	return collectMatches(root, func(w widgets.Widget) bool {
		return reflect.TypeOf(w) == f.widgetType
	})
}

func (f *typeFinder) Description() string {
	return fmt.Sprintf("ByType(%s)", f.widgetType)
}

// ByType returns a finder that matches widgets of type T.
func ByType[T widgets.Widget]() Finder {
	return &typeFinder{widgetType: reflect.TypeFor[T]()}
}

type idFinder struct {
	id string
}

func (f *idFinder) Evaluate(root widgets.Widget) []widgets.Widget {
	return collectMatches(root, func(w widgets.Widget) bool {
		return w.WidgetBase().ID() == f.id
	})
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%q)", f.id)
}

// ByID returns a finder that matches widgets whose ID equals id.
func ByID(id string) Finder {
	return &idFinder{id: id}
}

type textFinder struct {
	match func(string) bool
	desc  string
}

func (f *textFinder) Evaluate(root widgets.Widget) []widgets.Widget {
	return collectMatches(root, func(w widgets.Widget) bool {
		t, ok := w.(*widgets.Text)
		return ok && f.match(t.Text())
	})
}

func (f *textFinder) Description() string {
	return f.desc
}

// ByText returns a finder that matches [widgets.Text] with exact content.
// Button captions are Text widgets and match too.
func ByText(text string) Finder {
	return &textFinder{
		match: func(s string) bool { return s == text },
		desc:  fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches [widgets.Text] containing
// substring.
func ByTextContaining(substring string) Finder {
	return &textFinder{
		match: func(s string) bool { return strings.Contains(s, substring) },
		desc:  fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

type predicateFinder struct {
	fn func(widgets.Widget) bool
}

func (f *predicateFinder) Evaluate(root widgets.Widget) []widgets.Widget {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return "ByPredicate(...)"
}

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(widgets.Widget) bool) Finder {
	return &predicateFinder{fn: fn}
}

// descendantFinder finds widgets matching 'matching' below widgets matching
// 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root widgets.Widget) []widgets.Widget {
	var results []widgets.Widget
	seen := make(map[widgets.Widget]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range ancestor.WidgetBase().ChildWidgets() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying 'matching'
// that are descendants of widgets matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds widgets matching 'matching' above widgets matching
// 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root widgets.Widget) []widgets.Widget {
	candidates := make(map[widgets.Widget]bool)
	for _, w := range f.matching.Evaluate(root) {
		candidates[w] = true
	}
	var results []widgets.Widget
	seen := make(map[widgets.Widget]bool)
	for _, desc := range f.of.Evaluate(root) {
		for p := desc.WidgetBase().Parent(); p != nil; p = p.WidgetBase().Parent() {
			if candidates[p] && !seen[p] {
				seen[p] = true
				results = append(results, p)
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches widgets satisfying 'matching'
// that are ancestors of widgets matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches performs a depth-first pre-order traversal, collecting
// widgets that satisfy the predicate.
func collectMatches(root widgets.Widget, predicate func(widgets.Widget) bool) []widgets.Widget {
	var results []widgets.Widget
	walkTree(root, func(w widgets.Widget) {
		if predicate(w) {
			results = append(results, w)
		}
	})
	return results
}

func walkTree(root widgets.Widget, visitor func(widgets.Widget)) {
	if root == nil {
		return
	}
	visitor(root)
	for _, child := range root.WidgetBase().ChildWidgets() {
		walkTree(child, visitor)
	}
}
