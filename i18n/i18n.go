// Package i18n holds the UI message catalogs and language negotiation.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// DefaultLang is used when nothing better matches.
const DefaultLang = "it"

// Supported lists the catalog languages, default first.
var Supported = []language.Tag{language.Italian, language.English}

var matcher = language.NewMatcher(Supported)

//go:embed locales/*.yaml
var localesFS embed.FS

var catalogs = mustLoad(localesFS)

func mustLoad(fsys fs.FS) map[string]map[string]string {
	c, err := load(fsys)
	if err != nil {
		panic(err)
	}
	return c
}

// load reads one flat YAML file per language: locales/<lang>.yaml.
func load(fsys fs.FS) (map[string]map[string]string, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	out := make(map[string]map[string]string, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		msgs := map[string]string{}
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		out[strings.TrimSuffix(path.Base(p), ".yaml")] = msgs
	}
	if _, ok := out[DefaultLang]; !ok {
		return nil, fmt.Errorf("missing %s catalog", DefaultLang)
	}
	return out, nil
}

// T translates code. Unknown languages fall back to Italian, unknown codes to the code itself.
func T(lang, code string) string {
	if m, ok := catalogs[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := catalogs[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Tf translates code and formats it with args, using the language's number format.
func Tf(lang, code string, args ...any) string {
	return Printer(lang).Sprintf(T(lang, code), args...)
}

// Printer returns a printer formatting numbers the way lang writes them.
func Printer(lang string) *message.Printer {
	return message.NewPrinter(Tag(lang))
}

// Tag returns the language tag of a supported language code.
func Tag(lang string) language.Tag {
	for _, t := range Supported {
		if t.String() == lang {
			return t
		}
	}
	return Supported[0]
}

// Normalize maps any language string to a supported code.
func Normalize(lang string) string {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return DefaultLang
	}
	return Supported[idx].String()
}

// DetectLanguage picks the best supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLang
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang
	}
	return Supported[idx].String()
}

type langKey struct{}

// WithLang stores the request language in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFrom returns the request language, or DefaultLang.
func LangFrom(ctx context.Context) string {
	if v, ok := ctx.Value(langKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLang
}
