package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/cases"
)

// Delimiter separates the region prefix from the country name in a flag identifier.
const Delimiter = "-"

// ImageExt is the file extension of flag image assets.
const ImageExt = ".png"

// ErrMalformedIdentifier indicates a flag identifier without a country name.
var ErrMalformedIdentifier = errors.New("malformed flag identifier")

// Catalog is the ordered set of unique flag identifiers available to a quiz.
// Identifiers have the form "<prefix>-<CountryName>". A Catalog is immutable
// once built.
type Catalog struct {
	region    string
	ids       []string
	index     map[string]int
	countries []string
}

// New builds a Catalog from a listing of identifiers. Duplicates are
// collapsed, keeping the first occurrence.
func New(region string, ids []string) (*Catalog, error) {
	c := &Catalog{
		region: region,
		index:  make(map[string]int, len(ids)),
	}

	seenCountry := make(map[string]bool)
	for _, id := range ids {
		name, err := parseCountry(id)
		if err != nil {
			return nil, err
		}
		if _, dup := c.index[id]; dup {
			continue
		}
		c.index[id] = len(c.ids)
		c.ids = append(c.ids, id)

		key := FoldKey(name)
		if !seenCountry[key] {
			seenCountry[key] = true
			c.countries = append(c.countries, name)
		}
	}
	return c, nil
}

// Empty returns a catalog with no identifiers.
func Empty(region string) *Catalog {
	c, _ := New(region, nil)
	return c
}

// LoadDir builds a Catalog from the image assets in region/ of fsys.
// Only regular files with the .png extension are considered; the extension
// is stripped to form the identifier.
func LoadDir(fsys fs.FS, region string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, region)
	if err != nil {
		return nil, fmt.Errorf("list %s assets: %w", region, err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.EqualFold(path.Ext(name), ImageExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, path.Ext(name)))
	}
	return New(region, ids)
}

// Region returns the asset region the catalog was built for.
func (c *Catalog) Region() string {
	return c.region
}

// Len returns the number of distinct identifiers.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns a copy of the identifiers in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// At returns the identifier at position i.
func (c *Catalog) At(i int) string {
	return c.ids[i]
}

// Contains reports whether id is in the catalog.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Countries returns the distinct country names, compared case-insensitively,
// in order of first appearance.
func (c *Catalog) Countries() []string {
	out := make([]string, len(c.countries))
	copy(out, c.countries)
	return out
}

// ImagePath returns the asset path of a flag image, "<region>/<id>.png".
func (c *Catalog) ImagePath(id string) string {
	return path.Join(c.region, id+ImageExt)
}

// CountryName derives the country name from an identifier: everything after
// the first delimiter.
func CountryName(id string) string {
	_, name, _ := strings.Cut(id, Delimiter)
	return name
}

// Prefix returns the part of the identifier before the first delimiter.
func Prefix(id string) string {
	prefix, _, _ := strings.Cut(id, Delimiter)
	return prefix
}

// SameCountry reports whether two country names are equal under Unicode
// case folding.
func SameCountry(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}

// FoldKey returns the case-folded form of a country name.
func FoldKey(name string) string {
	// Casers are stateful, so one is built per call.
	return cases.Fold().String(name)
}

func parseCountry(id string) (string, error) {
	_, name, found := strings.Cut(id, Delimiter)
	if !found || name == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedIdentifier, id)
	}
	return name, nil
}
