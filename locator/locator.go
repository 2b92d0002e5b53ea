package locator

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/datapack/model"
)

// ManifestFileName is the sidecar name inside a package directory.
const ManifestFileName = "manifest.json"

// Locator is the parsed form of a dataset location. It is immutable.
type Locator struct {
	location string
	kind     model.SourceKind
	root     string
	name     string
}

// IsRemote reports whether location uses an HTTP scheme.
func IsRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Parse classifies location and splits it into root and base name.
func Parse(location string) Locator {
	if IsRemote(location) {
		trimmed := strings.TrimRight(location, "/")
		schemeEnd := strings.Index(trimmed, "://") + len("://")
		i := strings.LastIndex(trimmed, "/")
		if i < schemeEnd {
			// Bare host: everything lives directly under it.
			return Locator{location: trimmed, kind: model.Remote, root: trimmed}
		}
		return Locator{
			location: trimmed,
			kind:     model.Remote,
			root:     trimmed[:i],
			name:     trimmed[i+1:],
		}
	}

	cleaned := filepath.Clean(location)
	return Locator{
		location: cleaned,
		kind:     model.Local,
		root:     filepath.Dir(cleaned),
		name:     filepath.ToSlash(filepath.Base(cleaned)),
	}
}

// InStore returns a Locator for an object name inside a caller-supplied
// store. The whole name becomes the base name and the root is empty.
func InStore(name string) Locator {
	cleaned := strings.Trim(path.Clean(filepath.ToSlash(name)), "/")
	if cleaned == "." {
		cleaned = ""
	}
	return Locator{location: cleaned, kind: model.Local, name: cleaned}
}

// Location returns the normalized location string.
func (l Locator) Location() string { return l.location }

// Kind returns the source kind.
func (l Locator) Kind() model.SourceKind { return l.kind }

// Root returns the directory or base URL the object names are relative to.
func (l Locator) Root() string { return l.root }

// Name returns the base name of the dataset inside Root.
func (l Locator) Name() string { return l.name }

// ChunkName returns the root-relative name of chunk n.
func (l Locator) ChunkName(n int, ext string) string {
	return path.Join(l.name, fileName(strconv.Itoa(n), ext))
}

// SingleName returns the root-relative name of the single-file form.
func (l Locator) SingleName(ext string) string {
	return fileName(l.name, ext)
}

// ManifestName returns the root-relative name of the manifest.
func (l Locator) ManifestName() string {
	return path.Join(l.name, ManifestFileName)
}

// PackagePrefix returns the prefix shared by every object of the package.
func (l Locator) PackagePrefix() string {
	if l.name == "" {
		return ""
	}
	return l.name + "/"
}

// ChunkAddress returns the full address of chunk n.
func (l Locator) ChunkAddress(n int, ext string) string {
	return l.join(l.location, fileName(strconv.Itoa(n), ext))
}

// SingleAddress returns the full address of the single-file form.
func (l Locator) SingleAddress(ext string) string {
	return fileName(l.location, ext)
}

// ParseChunkIndex extracts the chunk index from a root-relative object name.
// ok is false for names that are not canonical chunk names of this package.
func (l Locator) ParseChunkIndex(name, ext string) (n int, ok bool) {
	rest, found := strings.CutPrefix(name, l.PackagePrefix())
	if !found || strings.Contains(rest, "/") {
		return 0, false
	}
	if ext != "" {
		if rest, found = strings.CutSuffix(rest, "."+ext); !found {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 || strconv.Itoa(n) != rest {
		return 0, false
	}
	return n, true
}

func (l Locator) join(base, elem string) string {
	if l.kind == model.Remote {
		return base + "/" + elem
	}
	return filepath.Join(base, elem)
}

func fileName(stem, ext string) string {
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}
