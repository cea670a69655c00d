// Package catalog loads the embedded gram locale files and registers their
// printf-style messages with x/text.
//
// Files live at locales/<locale>/<namespace>.yaml. Every key of a printf
// namespace is prefixed with the namespace ("board.title"); the errors
// namespace is keyed by error code and holds text/template messages.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the canonical source locale for catalogs.
	BaseLocale = "en-US"

	// ErrorsNamespace holds text/template messages keyed by error code.
	ErrorsNamespace = "errors"
)

// templateNamespaces are rendered with text/template and never reach
// x/text/message, whose printf verbs would misread them.
var templateNamespaces = map[string]bool{
	ErrorsNamespace: true,
}

// localeFile is the YAML shape of one locales/<locale>/<namespace>.yaml file.
type localeFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale, keyed by locale then namespace then key.
type Bundle struct {
	locales map[string]map[string]map[string]string
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded bundle, already registered with
// x/text/message.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the locale files compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/*/*.yaml file in fsys. The base locale must
// be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var file localeFile
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("decode %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, fmt.Errorf("locale file %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s has no files", BaseLocale)
	}
	return b, nil
}

func (b *Bundle) add(p string, file localeFile) error {
	locale := path.Base(path.Dir(p))
	namespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if file.Locale != locale {
		return fmt.Errorf("locale %q does not match directory %q", file.Locale, locale)
	}
	if file.Namespace != namespace {
		return fmt.Errorf("namespace %q does not match file name %q", file.Namespace, namespace)
	}
	if len(file.Messages) == 0 {
		return fmt.Errorf("no messages")
	}

	prefix := namespace + "."
	for key := range file.Messages {
		if strings.TrimSpace(key) != key || key == "" {
			return fmt.Errorf("key %q is blank or padded", key)
		}
		if !templateNamespaces[namespace] && !strings.HasPrefix(key, prefix) {
			return fmt.Errorf("key %q must start with %q", key, prefix)
		}
	}

	namespaces, ok := b.locales[locale]
	if !ok {
		namespaces = map[string]map[string]string{}
		b.locales[locale] = namespaces
	}
	namespaces[namespace] = file.Messages
	return nil
}

// register adds every printf namespace to x/text/message under the locale tag
// and its base language, so "pt" resolves to pt-BR copy.
func (b *Bundle) register() error {
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, conf := tag.Base(); conf != language.No {
			if baseTag := language.Make(base.String()); baseTag != tag {
				tags = append(tags, baseTag)
			}
		}
		for namespace, messages := range b.locales[locale] {
			if templateNamespaces[namespace] {
				continue
			}
			for _, key := range slices.Sorted(maps.Keys(messages)) {
				for _, t := range tags {
					if err := message.SetString(t, key, messages[key]); err != nil {
						return fmt.Errorf("register %s %q: %w", locale, key, err)
					}
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether locale has at least one file.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// Namespaces returns the sorted namespaces of locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales[strings.TrimSpace(locale)]))
}

// LocaleMessages returns a copy of every message of locale across namespaces.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	for _, messages := range b.locales[strings.TrimSpace(locale)] {
		maps.Copy(out, messages)
	}
	return out
}

// NamespaceMessages returns a copy of one namespace of locale.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	maps.Copy(out, b.locales[strings.TrimSpace(locale)][strings.TrimSpace(namespace)])
	return out
}

// NamespaceMessagesWithFallback returns the namespace of locale, or of the
// base locale when locale does not define it, along with the locale used.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages := b.NamespaceMessages(locale, namespace); len(messages) > 0 {
		return locale, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

func mustLoadAndRegisterEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.register(); err != nil {
		panic(err)
	}
	return b
}
