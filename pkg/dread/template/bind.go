package template

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/randalmurphal/dread/pkg/dread/observability"
	"go.opentelemetry.io/otel/attribute"
)

// Binder binds values into templates.
//
// Create with NewBinder() and configure with Option functions.
// Binder is safe for concurrent use after construction.
type Binder struct {
	missingAction MissingAction
	logger        *slog.Logger
	metrics       observability.MetricsRecorder
	spans         observability.SpanManager
}

// NewBinder creates a new Binder with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (unbound {key} stays as-is)
//   - no logging, no-op metrics and tracing
func NewBinder(opts ...Option) *Binder {
	b := &Binder{
		missingAction: MissingKeep,
		metrics:       observability.NoopMetrics{},
		spans:         observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// bindStats describes what one bind call did.
type bindStats struct {
	bindings  int
	bound     int
	defaulted int
}

// Bind binds data into tmpl.
//
// data must be mapping-typed: Bindings, []Binding, or a map keyed by string.
// Returns ErrEmptyTemplate or ErrNotMapping for invalid input, and an
// *UnboundError together with the partially bound result when the
// MissingAction is MissingError and simple placeholders remain.
//
// Example:
//
//	b := NewBinder()
//	out, err := b.Bind(ctx, "Hello {name}", map[string]any{"name": "World"})
//	// out: "Hello World"
func (b *Binder) Bind(ctx context.Context, tmpl string, data any) (string, error) {
	ctx, span := b.spans.StartBindSpan(ctx, len(tmpl), bindingCount(data))
	start := time.Now()

	result, stats, err := b.bind(tmpl, data)

	b.metrics.RecordBind(ctx, time.Since(start), stats.defaulted, err)
	if stats.defaulted > 0 {
		b.spans.AddSpanEvent(ctx, "defaults.applied", attribute.Int("count", stats.defaulted))
	}
	b.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogBindError(b.logger, err)
	} else {
		observability.LogBindComplete(b.logger, stats.bound, stats.defaulted,
			float64(time.Since(start).Microseconds())/1000)
	}
	return result, err
}

// MustBind binds data into tmpl and panics on error.
func (b *Binder) MustBind(ctx context.Context, tmpl string, data any) string {
	result, err := b.Bind(ctx, tmpl, data)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return result
}

// BindAll binds data into every template in tmpls.
// On error, returns nil and the first error.
func (b *Binder) BindAll(ctx context.Context, tmpls []string, data any) ([]string, error) {
	if tmpls == nil {
		return nil, nil
	}
	results := make([]string, len(tmpls))
	for i, t := range tmpls {
		out, err := b.Bind(ctx, t, data)
		if err != nil {
			return nil, fmt.Errorf("template %d: %w", i, err)
		}
		results[i] = out
	}
	return results, nil
}

// BindMap binds data into every non-empty string value of m, recursing
// into nested maps. Other values are copied as-is.
//
// Example:
//
//	headers, _ := b.BindMap(ctx, map[string]any{
//	    "Cookie": "sid={sid}; path={{path=\"/\"}}",
//	}, map[string]any{"sid": "abc"})
//	// headers["Cookie"]: "sid=abc; path=/"
func (b *Binder) BindMap(ctx context.Context, m map[string]any, data any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			if val == "" {
				result[k] = val
				continue
			}
			out, err := b.Bind(ctx, val, data)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			result[k] = out
		case map[string]any:
			out, err := b.BindMap(ctx, val, data)
			if err != nil {
				return nil, err
			}
			result[k] = out
		default:
			result[k] = v
		}
	}
	return result, nil
}

// bind is the pure transform behind Bind.
func (b *Binder) bind(tmpl string, data any) (string, bindStats, error) {
	var st bindStats
	if tmpl == "" {
		return "", st, ErrEmptyTemplate
	}
	bindings, ok := resolveBindings(data)
	if !ok {
		return "", st, fmt.Errorf("%w: got %T", ErrNotMapping, data)
	}
	st.bindings = len(bindings)

	s := tmpl
	var written []span
	for _, bd := range bindings {
		val := stringify(bd.Value)

		if i := strings.Index(s, "{"+bd.Key+"}"); i >= 0 {
			s, written = splice(s, written, i, i+len(bd.Key)+2, val)
			st.bound++
		}
		if start, end, ok := findDefaulted(s, bd.Key); ok {
			s, written = splice(s, written, start, end, val)
			st.bound++
		}
	}

	var unbound []string
	if b.missingAction != MissingKeep {
		s, unbound = replaceUnbound(s, written, b.missingAction)
	}

	s = defaultedPattern.ReplaceAllStringFunc(s, func(match string) string {
		st.defaulted++
		sub := defaultedPattern.FindStringSubmatch(match)
		return unquote(sub[2])
	})

	if len(unbound) > 0 {
		return s, st, &UnboundError{Names: unbound}
	}
	return s, st, nil
}

var (
	// defaultedPattern matches {{name=default}} with a non-greedy default.
	defaultedPattern = regexp.MustCompile(`\{\{([^{}=]+)=(.*?)\}\}`)

	// simplePattern matches {name}; matches enclosed in a second pair of
	// braces are filtered by callers.
	simplePattern = regexp.MustCompile(`\{([^{}\s"=]+)\}`)
)

// findDefaulted locates the first {{key=...}} in s. The key matches
// literally and the default is the shortest run up to "}}" on one line.
func findDefaulted(s, key string) (int, int, bool) {
	open := "{{" + key + "="
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], open)
		if i < 0 {
			return 0, 0, false
		}
		i += from
		rest := s[i+len(open):]
		j := strings.Index(rest, "}}")
		if j < 0 {
			return 0, 0, false
		}
		if nl := strings.IndexByte(rest, '\n'); nl < 0 || j < nl {
			return i, i + len(open) + j + 2, true
		}
		from = i + 1
	}
	return 0, 0, false
}

// span is a half-open byte range of the working string.
type span struct {
	start, end int
}

func (sp span) overlaps(start, end int) bool {
	return start < sp.end && end > sp.start
}

// splice replaces s[start:end] with val and keeps written pointing at the
// text produced by substitution. A replacement that touches earlier
// substituted text absorbs it.
func splice(s string, written []span, start, end int, val string) (string, []span) {
	delta := len(val) - (end - start)
	merged := span{start: start, end: start + len(val)}
	out := make([]span, 0, len(written)+1)
	for _, sp := range written {
		switch {
		case sp.end <= start && sp.start < start:
			out = append(out, sp)
		case sp.start >= end && sp.end > end:
			out = append(out, span{start: sp.start + delta, end: sp.end + delta})
		default:
			merged.start = min(merged.start, sp.start)
			if sp.end > end {
				merged.end = max(merged.end, sp.end+delta)
			}
		}
	}
	return s[:start] + val + s[end:], append(out, merged)
}

// replaceUnbound handles the simple placeholders still present in s that
// came from the template itself. Text inside written spans or inside a
// defaulted placeholder's default is not a placeholder.
func replaceUnbound(s string, written []span, action MissingAction) (string, []string) {
	var skip []span
	skip = append(skip, written...)
	for _, loc := range defaultedPattern.FindAllStringIndex(s, -1) {
		skip = append(skip, span{start: loc[0], end: loc[1]})
	}

	var names []string
	var sb strings.Builder
	last := 0
	for _, loc := range simplePattern.FindAllStringSubmatchIndex(s, -1) {
		if enclosed(s, loc[0], loc[1]) || overlapsAny(skip, loc[0], loc[1]) {
			continue
		}
		names = append(names, s[loc[2]:loc[3]])
		if action == MissingEmpty {
			sb.WriteString(s[last:loc[0]])
			last = loc[1]
		}
	}
	if action != MissingEmpty {
		return s, names
	}
	sb.WriteString(s[last:])
	return sb.String(), nil
}

func overlapsAny(spans []span, start, end int) bool {
	for _, sp := range spans {
		if sp.overlaps(start, end) {
			return true
		}
	}
	return false
}

// enclosed reports whether s[start:end] sits directly inside another pair of braces.
func enclosed(s string, start, end int) bool {
	return start > 0 && end < len(s) && s[start-1] == '{' && s[end] == '}'
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func bindingCount(data any) int {
	if b, ok := resolveBindings(data); ok {
		return len(b)
	}
	return 0
}

// defaultBinder backs the package-level functions.
var defaultBinder = NewBinder()

// Bind binds data into tmpl.
//
// Returns false when tmpl is empty or data is not mapping-typed.
// Unbound simple placeholders stay as-is.
//
// Example:
//
//	out, ok := template.Bind("Hello {name}", map[string]any{"name": "World"})
//	// out: "Hello World", ok: true
func Bind(tmpl string, data any) (string, bool) {
	result, _, err := defaultBinder.bind(tmpl, data)
	if err != nil {
		return "", false
	}
	return result, true
}
