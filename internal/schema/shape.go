package schema

import (
	"sort"
)

// Field is one key of a Shape.
type Field struct {
	Name     string
	Rule     Rule
	Optional bool
}

func Required(name string, r Rule) Field {
	return Field{Name: name, Rule: r}
}

func Optional(name string, r Rule) Field {
	return Field{Name: name, Rule: r, Optional: true}
}

// Shape is a closed document layout: listed keys only, unless Open is set.
type Shape struct {
	Name   string
	Fields []Field
	Open   bool
}

// Extend returns a copy of s with fields added or replaced by name.
func (s Shape) Extend(name string, fields ...Field) Shape {
	out := Shape{Name: name, Open: s.Open}
	replaced := make(map[string]Field, len(fields))
	for _, f := range fields {
		replaced[f.Name] = f
	}
	for _, f := range s.Fields {
		if r, ok := replaced[f.Name]; ok {
			out.Fields = append(out.Fields, r)
			delete(replaced, f.Name)
			continue
		}
		out.Fields = append(out.Fields, f)
	}
	for _, f := range fields {
		if _, ok := replaced[f.Name]; ok {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}

// Check validates v against the shape and returns every failing field.
func (s Shape) Check(path string, v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return fail(path, "expected document, got %s", typeName(v))
	}
	var errs []string
	known := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = struct{}{}
		val, present := m[f.Name]
		if !present {
			if !f.Optional {
				errs = append(errs, fail(join(path, f.Name), "required key missing")...)
			}
			continue
		}
		errs = append(errs, f.Rule(join(path, f.Name), val)...)
	}
	if !s.Open {
		var extra []string
		for k := range m {
			if _, ok := known[k]; !ok {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			errs = append(errs, fail(join(path, k), "unexpected key")...)
		}
	}
	return errs
}

// Rule exposes the shape as a nested rule.
func (s Shape) Rule() Rule {
	return s.Check
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Doc builds an anonymous closed shape for nested documents.
func Doc(fields ...Field) Rule {
	return Shape{Fields: fields}.Check
}
