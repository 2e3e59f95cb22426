package material

import (
	"fmt"

	"github.com/df07/go-direct-raytracer/pkg/core"
)

// MaxBxDFs is the capacity of a Material
const MaxBxDFs = 4

// Material is an ordered, append-only composition of BxDF terms
type Material struct {
	bxdfs []BxDF
}

// New creates a material from the given terms
func New(terms ...BxDF) (*Material, error) {
	m := &Material{bxdfs: make([]BxDF, 0, MaxBxDFs)}
	for _, b := range terms {
		if err := m.Add(b); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add appends a term
func (m *Material) Add(b BxDF) error {
	if len(m.bxdfs) >= MaxBxDFs {
		return fmt.Errorf("adding %s term: %w", b.Type(), ErrTooManyBxDFs)
	}
	m.bxdfs = append(m.bxdfs, b)
	return nil
}

// Len returns the number of terms
func (m *Material) Len() int {
	return len(m.bxdfs)
}

// BxDF returns the term at idx
func (m *Material) BxDF(idx int) (BxDF, error) {
	if idx < 0 || idx >= len(m.bxdfs) {
		return nil, fmt.Errorf("bxdf %d of %d: %w", idx, len(m.bxdfs), core.ErrIndexOutOfRange)
	}
	return m.bxdfs[idx], nil
}

func (m *Material) numMatches(mask Type) int {
	n := 0
	for _, b := range m.bxdfs {
		if b.MatchesType(mask) {
			n++
		}
	}
	return n
}

// sideMatches reports whether a term scatters to the given side of the surface
func sideMatches(b BxDF, reflected bool) bool {
	if reflected {
		return b.Type()&Reflective != 0
	}
	return b.Type()&Transmissive != 0
}

// F sums the matching terms that scatter to the side of (wo, wi).
// Terms are evaluated with wo and wi exchanged.
func (m *Material) F(normal, wo, wi core.Vec3, mask Type) core.Vec3 {
	reflected := wi.Dot(normal)*wo.Dot(normal) > 0
	var f core.Vec3
	for _, b := range m.bxdfs {
		if b.MatchesType(mask) && sideMatches(b, reflected) {
			f = f.Add(b.F(normal, wi, wo))
		}
	}
	return f
}

// SampleF picks one matching term uniformly and samples it.
// With no matching terms it returns zeros; callers must not divide by the pdf.
func (m *Material) SampleF(normal, wo core.Vec3, sampler core.Sampler, mask Type) (core.Vec3, core.Vec3, float64) {
	k := m.numMatches(mask)
	if k == 0 {
		return core.Vec3{}, core.Vec3{}, 0
	}

	pick := int(float64(k) * sampler.Get1D())
	if pick >= k {
		pick = k - 1
	}

	var chosen BxDF
	for _, b := range m.bxdfs {
		if !b.MatchesType(mask) {
			continue
		}
		if pick == 0 {
			chosen = b
			break
		}
		pick--
	}

	f, wi, pdf := chosen.SampleF(normal, wo, sampler)
	if k == 1 {
		return f, wi, pdf
	}

	if chosen.Type()&Specular != 0 {
		reflected := wi.Dot(normal)*wo.Dot(normal) > 0
		f = core.Vec3{}
		for _, b := range m.bxdfs {
			if !b.MatchesType(mask) {
				continue
			}
			if sideMatches(b, reflected) {
				f = f.Add(b.F(normal, wi, wo))
			}
			if b != chosen {
				pdf += b.PDF(normal, wi, wo)
			}
		}
	}
	return f, wi, pdf / float64(k)
}

// Rho sums the hemispherical reflectance of matching reflective terms
func (m *Material) Rho(normal, wo core.Vec3, mask Type) core.Vec3 {
	var rho core.Vec3
	for _, b := range m.bxdfs {
		if b.MatchesType(mask) && b.Type()&Reflective != 0 {
			rho = rho.Add(b.Rho(normal, wo))
		}
	}
	return rho
}
