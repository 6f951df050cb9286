// Package colormap maps circle radii to fill colors.
//
// # Color maps
//
// A [ColorMap] is an ordered list of closed intervals, each with a color, plus
// a default color. Lookup is first-match-wins, so a value on a shared boundary
// resolves to the interval built first:
//
//	m, _ := colormap.Linear(0, 10, palette, 5) // [0,2] [2,4] [4,6] [6,8] [8,10]
//	m.ColorFor(2)                             // palette[0]
//	m.ColorFor(11)                            // "none", the default
//
// [Logarithmic] is the alternative mode that compresses dynamic range so that
// the many small circles of a deep gasket do not all share one color.
// [None] returns a map that never fills.
//
// # Color schemes
//
// A [Catalog] holds named palettes at one or more resolutions (number of
// colors). [Default] returns the embedded ColorBrewer schemes. Additional
// schemes load from JSON or TOML files with the layout
//
//	{"Blues": {"3": ["#deebf7", "#9ecae1", "#3182bd"], ...}, ...}
//
// Colors may be written as hex codes or rgb(r,g,b). Every palette is checked
// when loaded: its length must equal its resolution and every color must
// parse. Lookups can then only fail with SCHEME_NOT_FOUND or
// RESOLUTION_NOT_FOUND.
package colormap
