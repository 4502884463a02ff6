package services

import (
	"fmt"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
)

// BuildProfiles creates one ProfileParameters per rest wavelength.
// Parametric profiles carry (s0, l0, n), ssdisc profiles (mbh, fedd, eta);
// custom profiles point at <CustomProfileDir><filter>.fits with the
// filter's physical pixel size.
func BuildProfiles(params *domain.SurveyParameters) ([]domain.ProfileParameters, error) {
	prof := params.Profile
	base := domain.ProfileParameters{
		Type:   prof.Type,
		Shape:  prof.Shape,
		Incl:   prof.Incl,
		Orient: prof.Orient,
	}

	switch prof.Type {
	case domain.ProfileParametric:
		base.Parametric = []float64{prof.S0, prof.L0, prof.N}
	case domain.ProfileSSDisc:
		base.Parametric = []float64{prof.MBH, prof.FEdd, prof.Eta}
	case domain.ProfileCustom:
	default:
		return nil, fmt.Errorf("%w: unknown profile type %q", domain.ErrConfiguration, prof.Type)
	}

	lrest := params.Generic.LRest
	out := make([]domain.ProfileParameters, 0, len(lrest))
	for j, l := range lrest {
		p := base
		p.LRest = l
		if prof.Type == domain.ProfileCustom {
			if j >= len(params.Filters) || j >= len(prof.PixSizePhys) {
				return nil, fmt.Errorf("%w: custom profile %d has no filter or pixel size", domain.ErrConfiguration, j)
			}
			p.Filename = params.CustomProfileDir + params.Filters[j] + ".fits"
			p.PixSizePhys = prof.PixSizePhys[j]
		}
		if p.Parametric != nil {
			p.Parametric = append([]float64(nil), base.Parametric...)
		}
		out = append(out, p)
	}
	return out, nil
}
