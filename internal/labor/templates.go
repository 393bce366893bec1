package labor

import "fmt"

// TemplateKind names a pre-built procurement vehicle definition.
type TemplateKind string

const (
	TemplateFederal     TemplateKind = "federal"
	TemplateState       TemplateKind = "state"
	TemplateCooperative TemplateKind = "coop"
)

// Template returns the pre-built vehicle for the given kind. Templates
// are fixed data; real deployments may eventually source them from
// persistence, but the values below are the negotiated defaults.
func Template(kind TemplateKind) (Vehicle, error) {
	switch kind {
	case TemplateFederal:
		return Vehicle{
			ID:         "federal_gsa",
			Name:       "Federal GSA",
			Multiplier: 0.85,
			MinMargin:  15,
			Overhead:   35,
			Rates: RateTable{
				Tech:     RoleRate{Base: 40, Burden: 30, Billed: 95},
				Lead:     RoleRate{Base: 50, Burden: 35, Billed: 125},
				PM:       RoleRate{Base: 60, Burden: 40, Billed: 145},
				Engineer: RoleRate{Base: 70, Burden: 40, Billed: 155},
			},
		}, nil
	case TemplateState:
		return Vehicle{
			ID:         "state_contract",
			Name:       "State Contract",
			Multiplier: 0.90,
			MinMargin:  18,
			Overhead:   30,
			Rates: RateTable{
				Tech:     RoleRate{Base: 38, Burden: 25, Billed: 88},
				Lead:     RoleRate{Base: 48, Burden: 30, Billed: 118},
				PM:       RoleRate{Base: 58, Burden: 35, Billed: 138},
				Engineer: RoleRate{Base: 68, Burden: 35, Billed: 148},
			},
		}, nil
	case TemplateCooperative:
		return Vehicle{
			ID:         "cooperative",
			Name:       "Cooperative",
			Multiplier: 0.92,
			MinMargin:  20,
			Overhead:   28,
			Rates: RateTable{
				Tech:     RoleRate{Base: 36, Burden: 24, Billed: 90},
				Lead:     RoleRate{Base: 46, Burden: 29, Billed: 120},
				PM:       RoleRate{Base: 56, Burden: 34, Billed: 140},
				Engineer: RoleRate{Base: 66, Burden: 34, Billed: 150},
			},
		}, nil
	}
	return Vehicle{}, fmt.Errorf("unknown template %q", kind)
}

// LoadTemplate upserts the template vehicle into the registry. An
// existing vehicle with the same id is replaced in place, keeping its
// position; otherwise the template is appended.
func (r *Registry) LoadTemplate(kind TemplateKind) (Vehicle, error) {
	v, err := Template(kind)
	if err != nil {
		return Vehicle{}, err
	}
	r.Upsert(v)
	return v, nil
}
