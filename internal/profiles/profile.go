package profiles

import (
	"fmt"

	"github.com/flort-tools/flortctl/internal/settings"
	"github.com/go-viper/mapstructure/v2"
)

// Bundle is one snapshot of every tracked setting. List fields are always
// present once loaded; scalar fields are nil when the stored profile does not
// define them, which is how older profiles without newer fields are told apart
// from profiles that set the default explicitly.
type Bundle struct {
	Patterns          []string `mapstructure:"patterns"`
	Extensions        []string `mapstructure:"extensions"`
	ManualFiles       []string `mapstructure:"manualFiles"`
	ExcludePatterns   []string `mapstructure:"excludePatterns"`
	ExcludeExtensions []string `mapstructure:"excludeExtensions"`
	IgnoreDirs        []string `mapstructure:"ignoreDirs"`

	Debug                 *bool   `mapstructure:"debug"`
	ShowConfig            *bool   `mapstructure:"showConfig"`
	Hidden                *bool   `mapstructure:"hidden"`
	All                   *bool   `mapstructure:"all"`
	IncludeBinary         *bool   `mapstructure:"includeBinary"`
	NoTree                *bool   `mapstructure:"noTree"`
	Outline               *bool   `mapstructure:"outline"`
	Manifest              *bool   `mapstructure:"manifest"`
	NoDump                *bool   `mapstructure:"noDump"`
	Verbose               *bool   `mapstructure:"verbose"`
	MaxDepth              *int    `mapstructure:"maxDepth"`
	Archive               *string `mapstructure:"archive"`
	DirectoryScanOptional *bool   `mapstructure:"directoryScanOptional"`
}

// DefaultBundle returns a bundle with every field set to its default.
func DefaultBundle() Bundle {
	return Bundle{}.Filled()
}

// Filled returns a copy with nil lists replaced by empty lists and undefined
// scalars replaced by their defaults.
func (b Bundle) Filled() Bundle {
	out := b
	out.Patterns = nonNil(b.Patterns)
	out.Extensions = nonNil(b.Extensions)
	out.ManualFiles = nonNil(b.ManualFiles)
	out.ExcludePatterns = nonNil(b.ExcludePatterns)
	out.ExcludeExtensions = nonNil(b.ExcludeExtensions)
	out.IgnoreDirs = nonNil(b.IgnoreDirs)

	for _, f := range out.bools() {
		if *f.ptr == nil {
			*f.ptr = ptr(false)
		}
	}
	if out.MaxDepth == nil {
		out.MaxDepth = ptr(0)
	}
	if out.Archive == nil {
		out.Archive = ptr("")
	}
	return out
}

// Lists returns the list fields keyed by setting name.
func (b Bundle) Lists() map[string][]string {
	return map[string][]string{
		settings.Patterns:          b.Patterns,
		settings.Extensions:        b.Extensions,
		settings.ManualFiles:       b.ManualFiles,
		settings.ExcludePatterns:   b.ExcludePatterns,
		settings.ExcludeExtensions: b.ExcludeExtensions,
		settings.IgnoreDirs:        b.IgnoreDirs,
	}
}

// Scalars returns the defined scalar fields keyed by setting name.
func (b Bundle) Scalars() map[string]any {
	out := make(map[string]any)
	for _, f := range b.bools() {
		if *f.ptr != nil {
			out[f.key] = **f.ptr
		}
	}
	if b.MaxDepth != nil {
		out[settings.MaxDepth] = *b.MaxDepth
	}
	if b.Archive != nil {
		out[settings.Archive] = *b.Archive
	}
	return out
}

// Map encodes the bundle for the store. Lists are always written, scalars
// only when defined.
func (b Bundle) Map() map[string]any {
	out := b.Scalars()
	for key, list := range b.Lists() {
		out[key] = nonNil(list)
	}
	return out
}

// Decode converts a stored profile entry into a Bundle.
func Decode(raw any) (Bundle, error) {
	var b Bundle
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &b,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Bundle{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Bundle{}, fmt.Errorf("decoding profile: %w", err)
	}
	return b, nil
}

type boolField struct {
	key string
	ptr **bool
}

func (b *Bundle) bools() []boolField {
	return []boolField{
		{settings.Debug, &b.Debug},
		{settings.ShowConfig, &b.ShowConfig},
		{settings.Hidden, &b.Hidden},
		{settings.All, &b.All},
		{settings.IncludeBinary, &b.IncludeBinary},
		{settings.NoTree, &b.NoTree},
		{settings.Outline, &b.Outline},
		{settings.Manifest, &b.Manifest},
		{settings.NoDump, &b.NoDump},
		{settings.Verbose, &b.Verbose},
		{settings.DirectoryScanOptional, &b.DirectoryScanOptional},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func ptr[T any](v T) *T {
	return &v
}
