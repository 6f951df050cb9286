package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	GasketKey(opts GasketKeyOpts) string
	ArtifactKey(gasketHash string, opts ArtifactKeyOpts) string
}

// GasketKeyOpts identifies a generated circle sequence.
type GasketKeyOpts struct {
	Curvatures [3]float64
	Depth      int
}

// ArtifactKeyOpts identifies a rendering of a gasket.
type ArtifactKeyOpts struct {
	Format     string
	Threshold  float64
	Scheme     string
	Resolution int
	Mode       string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GasketKey formats curvatures with full precision, so seeds that differ
// in the last bit get different keys.
func (DefaultKeyer) GasketKey(opts GasketKeyOpts) string {
	c := opts.Curvatures
	return "gasket:" + Hash([]byte(joinFields(
		formatFloat(c[0]), formatFloat(c[1]), formatFloat(c[2]), strconv.Itoa(opts.Depth))))
}

func (DefaultKeyer) ArtifactKey(gasketHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + Hash([]byte(joinFields(gasketHash, opts.Format, formatFloat(opts.Threshold),
		opts.Scheme, strconv.Itoa(opts.Resolution), opts.Mode)))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// joinFields separates fields with a byte no field contains.
func joinFields(fields ...string) string { return strings.Join(fields, "\x00") }

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "apollon:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) GasketKey(opts GasketKeyOpts) string {
	return k.prefix + k.inner.GasketKey(opts)
}

func (k *ScopedKeyer) ArtifactKey(gasketHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(gasketHash, opts)
}
