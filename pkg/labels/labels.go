// Package labels serves the per-locale page strings (navigation labels,
// headings, button captions) that surround content.
//
// Strings are loaded from one file per locale, named after the lower-case
// locale tag: en.yaml / fr.yaml (or .yml, or .toml). Nested maps are
// flattened into dot-separated keys. Lookups fall back from FR to EN and
// finally to the key itself, so a missing translation never breaks a page.
//
//	bag, err := labels.Load(os.DirFS("./content"), "labels")
//	s := bag.Get(locale.FR)
//	s.T("nav.blog")                       // "Blog"
//	s.T("home.greeting", "name", "Ana")   // "Bonjour, Ana !" for "Bonjour, %{name} !"
package labels

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/folio/pkg/locale"
)

var (
	ErrMissingDefault = errors.New("labels: default locale strings not found")
	ErrParse          = errors.New("labels: failed to parse strings file")
)

var decoders = map[string]func([]byte, any) error{
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
	".toml": toml.Unmarshal,
}

// Bag holds the flattened strings of every locale.
type Bag struct {
	sets map[locale.Locale]map[string]string
}

// New builds a bag from nested maps keyed by locale.
func New(sets map[locale.Locale]map[string]any) *Bag {
	b := &Bag{sets: make(map[locale.Locale]map[string]string, len(sets))}
	for l, tree := range sets {
		flat := map[string]string{}
		flatten("", tree, flat)
		b.sets[l] = flat
	}
	return b
}

// Load reads <dir>/en.* and <dir>/fr.* from fsys. The EN file is required.
func Load(fsys fs.FS, dir string) (*Bag, error) {
	sets := map[locale.Locale]map[string]any{}
	for _, l := range locale.All() {
		tree, err := readLocale(fsys, dir, l)
		if err != nil {
			return nil, err
		}
		if tree != nil {
			sets[l] = tree
		}
	}
	if _, ok := sets[locale.Default]; !ok {
		return nil, ErrMissingDefault
	}
	return New(sets), nil
}

func readLocale(fsys fs.FS, dir string, l locale.Locale) (map[string]any, error) {
	base := strings.ToLower(l.String())
	for _, ext := range []string{".yaml", ".yml", ".toml"} {
		name := path.Join(dir, base+ext)
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tree := map[string]any{}
		if err := decoders[ext](data, &tree); err != nil {
			return nil, errors.Join(ErrParse, fmt.Errorf("%s: %w", name, err))
		}
		return tree, nil
	}
	return nil, nil
}

func flatten(prefix string, v any, out map[string]string) {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			flatten(join(prefix, k), child, out)
		}
	case map[any]any:
		for k, child := range node {
			flatten(join(prefix, fmt.Sprint(k)), child, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(node)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Get returns the strings view for l.
func (b *Bag) Get(l locale.Locale) Strings {
	return Strings{locale: locale.Parse(l.String()), bag: b}
}

// Missing lists keys present in EN but absent in l, sorted.
func (b *Bag) Missing(l locale.Locale) []string {
	var out []string
	for k := range b.sets[locale.Default] {
		if _, ok := b.sets[l][k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Strings is a locale-bound view of a Bag.
type Strings struct {
	locale locale.Locale
	bag    *Bag
}

func (s Strings) Locale() locale.Locale {
	return s.locale
}

// T returns the string for key, substituting %{name} placeholders from
// name/value pairs in args.
func (s Strings) T(key string, args ...string) string {
	return substitute(s.lookup(key), args)
}

// Has reports whether key exists in the bound locale itself, without fallback.
func (s Strings) Has(key string) bool {
	if s.bag == nil {
		return false
	}
	_, ok := s.bag.sets[s.locale][key]
	return ok
}

func (s Strings) lookup(key string) string {
	if s.bag == nil {
		return key
	}
	if v, ok := s.bag.sets[s.locale][key]; ok {
		return v
	}
	if v, ok := s.bag.sets[locale.Default][key]; ok {
		return v
	}
	return key
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
