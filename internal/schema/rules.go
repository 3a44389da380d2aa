package schema

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/gookit/validate"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Rule checks one value and returns failures, each prefixed with path.
type Rule func(path string, v any) []string

func fail(path, format string, args ...any) []string {
	if path == "" {
		path = "<root>"
	}
	return []string{path + ": " + fmt.Sprintf(format, args...)}
}

func typeName(v any) string {
	if v == nil {
		return "null"
	}
	return reflect.TypeOf(v).String()
}

func Str(path string, v any) []string {
	if _, ok := v.(string); !ok {
		return fail(path, "expected string, got %s", typeName(v))
	}
	return nil
}

func Bool(path string, v any) []string {
	if _, ok := v.(bool); !ok {
		return fail(path, "expected bool, got %s", typeName(v))
	}
	return nil
}

func Int(path string, v any) []string {
	switch v.(type) {
	case int, int32, int64:
		return nil
	}
	return fail(path, "expected int, got %s", typeName(v))
}

func Time(path string, v any) []string {
	if _, ok := v.(time.Time); !ok {
		return fail(path, "expected datetime, got %s", typeName(v))
	}
	return nil
}

func ObjectID(path string, v any) []string {
	if _, ok := v.(bson.ObjectID); !ok {
		return fail(path, "expected object id, got %s", typeName(v))
	}
	return nil
}

func Null(path string, v any) []string {
	if v != nil {
		return fail(path, "expected null, got %s", typeName(v))
	}
	return nil
}

// Dict accepts any nested document.
func Dict(path string, v any) []string {
	if _, ok := v.(map[string]any); !ok {
		return fail(path, "expected document, got %s", typeName(v))
	}
	return nil
}

func EmptyDict(path string, v any) []string {
	m, ok := v.(map[string]any)
	if !ok {
		return fail(path, "expected empty document, got %s", typeName(v))
	}
	if len(m) > 0 {
		return fail(path, "expected empty document, got %d keys", len(m))
	}
	return nil
}

func EmptyList(path string, v any) []string {
	l, ok := v.([]any)
	if !ok {
		return fail(path, "expected empty list, got %s", typeName(v))
	}
	if len(l) > 0 {
		return fail(path, "expected empty list, got %d items", len(l))
	}
	return nil
}

// URL mirrors a parse-level check: absolute, with scheme and host. Non-ASCII
// paths are accepted on purpose, they are repaired later.
func URL(path string, v any) []string {
	s, ok := v.(string)
	if !ok {
		return fail(path, "expected url, got %s", typeName(v))
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fail(path, "expected url, got %q", s)
	}
	return nil
}

// Literal requires exact equality.
func Literal(want any) Rule {
	return func(path string, v any) []string {
		if v != want {
			return fail(path, "expected %#v, got %#v", want, v)
		}
		return nil
	}
}

// Enum requires a string out of a closed set.
func Enum(values ...string) Rule {
	return func(path string, v any) []string {
		s, ok := v.(string)
		if !ok || !validate.Enum(s, values) {
			return fail(path, "expected one of [%s], got %#v", strings.Join(values, ", "), v)
		}
		return nil
	}
}

// Prefix requires a string starting with p.
func Prefix(p string) Rule {
	return func(path string, v any) []string {
		s, ok := v.(string)
		if !ok || !strings.HasPrefix(s, p) {
			return fail(path, "expected string with prefix %q", p)
		}
		return nil
	}
}

// Any passes when at least one rule passes, reporting the closest miss otherwise.
func Any(rules ...Rule) Rule {
	return func(path string, v any) []string {
		var best []string
		for i, r := range rules {
			errs := r(path, v)
			if len(errs) == 0 {
				return nil
			}
			if i == 0 || len(errs) < len(best) {
				best = errs
			}
		}
		return best
	}
}

func Nullable(r Rule) Rule {
	return Any(Null, r)
}

// ListOf requires a list whose every item passes r.
func ListOf(r Rule) Rule {
	return func(path string, v any) []string {
		l, ok := v.([]any)
		if !ok {
			return fail(path, "expected list, got %s", typeName(v))
		}
		var errs []string
		for i, item := range l {
			errs = append(errs, r(fmt.Sprintf("%s[%d]", path, i), item)...)
		}
		return errs
	}
}
