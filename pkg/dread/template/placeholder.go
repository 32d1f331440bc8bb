package template

// Placeholder describes one placeholder occurrence in a template.
type Placeholder struct {
	Name       string
	Default    string
	HasDefault bool
}

// Placeholders returns every placeholder occurrence in tmpl, in template
// order. Defaults are reported with surrounding quotes stripped.
func Placeholders(tmpl string) []Placeholder {
	var out []Placeholder
	for i := 0; i < len(tmpl); {
		if loc := defaultedPattern.FindStringSubmatchIndex(tmpl[i:]); loc != nil {
			if sloc := nextSimple(tmpl, i); sloc != nil && sloc[0] < i+loc[0] {
				out = append(out, Placeholder{Name: tmpl[sloc[2]:sloc[3]]})
				i = sloc[1]
				continue
			}
			out = append(out, Placeholder{
				Name:       tmpl[i+loc[2] : i+loc[3]],
				Default:    unquote(tmpl[i+loc[4] : i+loc[5]]),
				HasDefault: true,
			})
			i += loc[1]
			continue
		}
		sloc := nextSimple(tmpl, i)
		if sloc == nil {
			break
		}
		out = append(out, Placeholder{Name: tmpl[sloc[2]:sloc[3]]})
		i = sloc[1]
	}
	return out
}

// nextSimple finds the next simple placeholder at or after from that is
// not enclosed in another pair of braces. Indices are absolute.
func nextSimple(s string, from int) []int {
	for from < len(s) {
		loc := simplePattern.FindStringSubmatchIndex(s[from:])
		if loc == nil {
			return nil
		}
		for j := range loc {
			loc[j] += from
		}
		if !enclosed(s, loc[0], loc[1]) {
			return loc
		}
		from = loc[1]
	}
	return nil
}
