// Package filter applies retention criteria to parsed peptidoforms: a
// Config of independent criteria, each applied in Apply.
package filter

import "github.com/rswhitlock/proforma/pkg/core"

// Config holds the retention criteria applied by Apply. A zero-value field
// disables that criterion.
type Config struct {
	MinCharge      int
	MaxCharge      int
	RequireSources []string
	ExcludeKinds   []core.ModKind
}

// Apply returns the subset of seqs that satisfy every configured criterion
// in cfg.
func Apply(seqs []*core.Sequence, cfg Config) []*core.Sequence {
	var out []*core.Sequence
	for _, seq := range seqs {
		if Keep(seq, cfg) {
			out = append(out, seq)
		}
	}
	return out
}

// Keep reports whether seq satisfies every configured criterion in cfg.
func Keep(seq *core.Sequence, cfg Config) bool {
	if cfg.MinCharge != 0 || cfg.MaxCharge != 0 {
		if seq.Charge == nil {
			return false
		}
		if cfg.MinCharge != 0 && *seq.Charge < cfg.MinCharge {
			return false
		}
		if cfg.MaxCharge != 0 && *seq.Charge > cfg.MaxCharge {
			return false
		}
	}

	if len(cfg.RequireSources) > 0 && !hasAnySource(seq, cfg.RequireSources) {
		return false
	}

	if len(cfg.ExcludeKinds) > 0 && hasExcludedKind(seq, cfg.ExcludeKinds) {
		return false
	}

	return true
}

func hasAnySource(seq *core.Sequence, sources []string) bool {
	for _, mods := range seq.Mods {
		for _, mod := range mods {
			if mod.Value == nil {
				continue
			}
			for _, pv := range mod.Value.PipeValues {
				for _, s := range sources {
					if pv.Source == s {
						return true
					}
				}
			}
		}
	}
	return false
}

func hasExcludedKind(seq *core.Sequence, kinds []core.ModKind) bool {
	for _, mods := range seq.Mods {
		for _, mod := range mods {
			for _, k := range kinds {
				if mod.Kind == k {
					return true
				}
			}
		}
	}
	return false
}
