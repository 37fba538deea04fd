package profiles

// Reserved and designated profile names.
const (
	// CherryPick runs only on explicitly selected files.
	CherryPick = "Cherry Pick"
	// DefaultProfile becomes active when the built-in profiles are seeded.
	DefaultProfile = "All Files"
)

// DefaultProfiles returns the built-in profiles written on first use.
func DefaultProfiles() map[string]Bundle {
	return map[string]Bundle{
		CherryPick: seeded(Bundle{
			Patterns:              []string{"*.*"},
			DirectoryScanOptional: ptr(true),
		}),
		DefaultProfile: seeded(Bundle{
			Patterns:          []string{"*.*"},
			ExcludePatterns:   []string{"*.log", "*.tmp"},
			ExcludeExtensions: []string{"log", "tmp", "cache"},
			IgnoreDirs:        []string{"node_modules", "__pycache__", ".git", ".svn", "vendor", "build", "dist"},
			Hidden:            ptr(true),
			All:               ptr(true),
		}),
		"Python": seeded(Bundle{
			Extensions:        []string{"py"},
			ExcludePatterns:   []string{"__pycache__/*", "*.pyc"},
			ExcludeExtensions: []string{"pyc", "pyo"},
			IgnoreDirs:        []string{"__pycache__", ".pytest_cache", "venv", ".venv", "env", ".env"},
			Outline:           ptr(true),
		}),
		"JavaScript": seeded(Bundle{
			Extensions:        []string{"js", "ts", "jsx", "tsx", "json"},
			ExcludePatterns:   []string{"node_modules/*", "dist/*", "build/*"},
			ExcludeExtensions: []string{"min.js", "bundle.js"},
			IgnoreDirs:        []string{"node_modules", "dist", "build", ".next", "coverage"},
		}),
		"C": seeded(Bundle{
			Extensions:        []string{"c", "h"},
			ExcludePatterns:   []string{"*.o", "*.obj", "*.exe"},
			ExcludeExtensions: []string{"o", "obj", "exe", "dll", "so"},
			IgnoreDirs:        []string{"build", "Debug", "Release", ".vs"},
		}),
		"C++": seeded(Bundle{
			Extensions:        []string{"cpp", "cc", "cxx", "hpp", "h", "hxx"},
			ExcludePatterns:   []string{"*.o", "*.obj", "*.exe"},
			ExcludeExtensions: []string{"o", "obj", "exe", "dll", "so"},
			IgnoreDirs:        []string{"build", "Debug", "Release", ".vs", "cmake-build-debug", "cmake-build-release"},
		}),
		"PHP": seeded(Bundle{
			Extensions:      []string{"php", "phtml", "php3", "php4", "php5"},
			ExcludePatterns: []string{"vendor/*", "cache/*"},
			IgnoreDirs:      []string{"vendor", "cache", "storage/cache", "bootstrap/cache"},
		}),
		"Markdown": seeded(Bundle{
			Extensions: []string{"md", "markdown", "mdown", "mkd"},
			NoTree:     ptr(true),
		}),
	}
}

func seeded(b Bundle) Bundle {
	return b.Filled()
}
