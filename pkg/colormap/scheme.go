package colormap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

//go:embed colorbrewer.json
var colorbrewerJSON []byte

// DefaultScheme is the scheme used when none is requested.
const DefaultScheme = "Blues"

// DefaultResolution is the palette size used when none is requested.
const DefaultResolution = 8

// Palette is one resolution of a scheme.
type Palette struct {
	Resolution int
	Colors     []string
}

// Scheme is a named family of palettes keyed by resolution.
type Scheme struct {
	Name     string
	Palettes map[int]Palette
}

// Resolutions returns the scheme's available resolutions in ascending order.
func (s Scheme) Resolutions() []int {
	out := make([]int, 0, len(s.Palettes))
	for r := range s.Palettes {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Info summarizes a scheme for listings.
type Info struct {
	Name string `json:"name"`
	Low  int    `json:"low"`
	High int    `json:"high"`
}

func (i Info) String() string {
	return fmt.Sprintf("%s: %d -- %d", i.Name, i.Low, i.High)
}

// Catalog is a set of validated color schemes.
type Catalog struct {
	schemes map[string]Scheme
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadJSON(colorbrewerJSON)
})

// Default returns the embedded ColorBrewer catalog. The returned catalog is
// shared; use Merge to build an extended copy.
func Default() *Catalog {
	c, err := defaultCatalog()
	if err != nil {
		panic(fmt.Sprintf("colormap: embedded schemes are invalid: %v", err))
	}
	return c
}

// LoadJSON parses a JSON scheme document.
func LoadJSON(data []byte) (*Catalog, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSchemeData, err, "decode scheme JSON")
	}
	return build(raw)
}

// LoadTOML parses a TOML scheme document. Resolution keys must be quoted:
//
//	[Sunset]
//	"3" = ["#fee8c8", "#fdbb84", "#e34a33"]
func LoadTOML(data []byte) (*Catalog, error) {
	var raw map[string]map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSchemeData, err, "decode scheme TOML")
	}
	return build(raw)
}

// LoadFile reads a scheme file, choosing the decoder by extension.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read scheme file %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".toml":
		return LoadTOML(data)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported scheme file %s (want .json or .toml)", path)
	}
}

func build(raw map[string]map[string]any) (*Catalog, error) {
	c := &Catalog{schemes: make(map[string]Scheme, len(raw))}
	for name, entries := range raw {
		if err := apperrors.ValidateSchemeName(name); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSchemeData, err, "scheme %q", name)
		}
		s := Scheme{Name: name, Palettes: make(map[int]Palette)}
		for key, val := range entries {
			res, err := strconv.Atoi(key)
			if err != nil {
				continue // metadata such as "type"
			}
			colors, err := parseColors(val)
			if err != nil {
				return nil, apperrors.Wrap(apperrors.ErrCodeInvalidSchemeData, err, "scheme %s resolution %d", name, res)
			}
			if res <= 0 || len(colors) != res {
				return nil, apperrors.New(apperrors.ErrCodeInvalidSchemeData,
					"scheme %s resolution %d has %d colors", name, res, len(colors))
			}
			s.Palettes[res] = Palette{Resolution: res, Colors: colors}
		}
		if len(s.Palettes) == 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidSchemeData, "scheme %s has no palettes", name)
		}
		c.schemes[name] = s
	}
	return c, nil
}

func parseColors(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of colors, got %T", v)
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("color %d: expected a string, got %T", i, item)
		}
		col, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("color %d: %w", i, err)
		}
		out[i] = col
	}
	return out, nil
}

var rgbPattern = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)

// ParseColor normalizes a hex code or rgb(r,g,b) triple to lower-case
// "#rrggbb".
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		var ch [3]float64
		for i := range ch {
			n, _ := strconv.Atoi(m[i+1])
			if n > 255 {
				return "", fmt.Errorf("%q: channel out of range", s)
			}
			ch[i] = float64(n) / 255
		}
		return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.Hex(), nil
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%q: %w", s, err)
	}
	return col.Hex(), nil
}

// Merge returns a new catalog with the schemes of other added to c. Schemes
// in other replace same-named schemes in c.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{schemes: make(map[string]Scheme, len(c.schemes)+len(other.schemes))}
	for k, v := range c.schemes {
		out.schemes[k] = v
	}
	for k, v := range other.schemes {
		out.schemes[k] = v
	}
	return out
}

// Has reports whether the catalog contains the named scheme.
func (c *Catalog) Has(name string) bool {
	_, ok := c.schemes[name]
	return ok
}

// Scheme returns the named scheme.
func (c *Catalog) Scheme(name string) (Scheme, error) {
	s, ok := c.schemes[name]
	if !ok {
		return Scheme{}, apperrors.New(apperrors.ErrCodeSchemeNotFound, "no color scheme named %q", name)
	}
	return s, nil
}

// Colors returns a copy of the palette of the named scheme at resolution.
func (c *Catalog) Colors(name string, resolution int) ([]string, error) {
	s, err := c.Scheme(name)
	if err != nil {
		return nil, err
	}
	p, ok := s.Palettes[resolution]
	if !ok {
		res := s.Resolutions()
		return nil, apperrors.New(apperrors.ErrCodeResolutionNotFound,
			"scheme %s has no resolution %d (available %d -- %d)", name, resolution, res[0], res[len(res)-1])
	}
	return append([]string(nil), p.Colors...), nil
}

// Names returns the scheme names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.schemes))
	for n := range c.schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Info lists every scheme with its lowest and highest resolution, sorted by
// name.
func (c *Catalog) Info() []Info {
	names := c.Names()
	out := make([]Info, len(names))
	for i, n := range names {
		res := c.schemes[n].Resolutions()
		out[i] = Info{Name: n, Low: res[0], High: res[len(res)-1]}
	}
	return out
}
