package benchmarks

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/randalmurphal/dread/pkg/dread/observability"
	"github.com/randalmurphal/dread/pkg/dread/template"
)

const cookie = `{name}={value}; path={{path="/"}}; domain={{domain="localhost"}}`

// BenchmarkBind_Cookie measures a typical small bind.
func BenchmarkBind_Cookie(b *testing.B) {
	data := map[string]any{"name": "sid", "value": "abc"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = template.Bind(cookie, data)
	}
}

// BenchmarkBind_OrderedBindings measures bind without map sorting.
func BenchmarkBind_OrderedBindings(b *testing.B) {
	data := template.Bindings{{Key: "name", Value: "sid"}, {Key: "value", Value: "abc"}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = template.Bind(cookie, data)
	}
}

// BenchmarkBind_ManyPlaceholders measures scaling with binding count.
func BenchmarkBind_ManyPlaceholders(b *testing.B) {
	for _, n := range []int{10, 100} {
		tmpl, data := buildTemplate(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = template.Bind(tmpl, data)
			}
		})
	}
}

// BenchmarkBinder_Observability measures the overhead of noop observability.
func BenchmarkBinder_Observability(b *testing.B) {
	binder := template.NewBinder(
		template.WithMetrics(observability.NoopMetrics{}),
		template.WithSpanManager(observability.NoopSpanManager{}),
	)
	ctx := context.Background()
	data := map[string]any{"name": "sid", "value": "abc"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = binder.Bind(ctx, cookie, data)
	}
}

// BenchmarkPlaceholders measures template inspection.
func BenchmarkPlaceholders(b *testing.B) {
	tmpl, _ := buildTemplate(50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = template.Placeholders(tmpl)
	}
}

// buildTemplate returns a template with n placeholders, half defaulted,
// and bindings for the simple half.
func buildTemplate(n int) (string, template.Bindings) {
	var sb strings.Builder
	data := make(template.Bindings, 0, n/2)
	for i := 0; i < n; i++ {
		key := "k" + strconv.Itoa(i)
		if i%2 == 0 {
			sb.WriteString("{" + key + "} ")
			data = append(data, template.Binding{Key: key, Value: i})
		} else {
			sb.WriteString(`{{` + key + `="d"}} `)
		}
	}
	return sb.String(), data
}
