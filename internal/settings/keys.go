package settings

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when an operation is applied to a key that is not
// tracked or has the wrong kind for that operation.
var ErrInvalidKey = errors.New("invalid setting")

// Tracked setting keys.
const (
	Patterns          = "patterns"
	Extensions        = "extensions"
	ManualFiles       = "manualFiles"
	ExcludePatterns   = "excludePatterns"
	ExcludeExtensions = "excludeExtensions"
	IgnoreDirs        = "ignoreDirs"

	Debug                 = "debug"
	ShowConfig            = "showConfig"
	Hidden                = "hidden"
	All                   = "all"
	IncludeBinary         = "includeBinary"
	NoTree                = "noTree"
	Outline               = "outline"
	Manifest              = "manifest"
	NoDump                = "noDump"
	Verbose               = "verbose"
	DirectoryScanOptional = "directoryScanOptional"

	MaxDepth = "maxDepth"
	Archive  = "archive"
)

// Bookkeeping keys.
const (
	Profiles       = "profiles"
	CurrentProfile = "currentProfile"
)

// Kind is the value type of a tracked key.
type Kind int

const (
	KindUnknown Kind = iota
	KindList
	KindBool
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindBool:
		return "boolean"
	case KindInt:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// ListKeys are the list-valued tracked keys, in display order.
var ListKeys = []string{
	Patterns, Extensions, ManualFiles,
	ExcludePatterns, ExcludeExtensions, IgnoreDirs,
}

// BoolKeys are the boolean tracked keys.
var BoolKeys = []string{
	Debug, ShowConfig, Hidden, All, IncludeBinary,
	NoTree, Outline, Manifest, NoDump, Verbose,
	DirectoryScanOptional,
}

// KindOf reports the kind of a tracked key, or KindUnknown.
func KindOf(key string) Kind {
	switch key {
	case Patterns, Extensions, ManualFiles, ExcludePatterns, ExcludeExtensions, IgnoreDirs:
		return KindList
	case Debug, ShowConfig, Hidden, All, IncludeBinary, NoTree, Outline,
		Manifest, NoDump, Verbose, DirectoryScanOptional:
		return KindBool
	case MaxDepth:
		return KindInt
	case Archive:
		return KindString
	default:
		return KindUnknown
	}
}

// RequireKind returns ErrInvalidKey unless key is tracked and one of kinds.
func RequireKind(key string, kinds ...Kind) error {
	got := KindOf(key)
	if got == KindUnknown {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidKey, key)
	}
	for _, k := range kinds {
		if got == k {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is a %s setting", ErrInvalidKey, key, got)
}
