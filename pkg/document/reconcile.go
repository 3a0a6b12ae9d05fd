package document

import (
	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
)

// Prior is the on-disk state from the previous run.
type Prior struct {
	// Target is the published document, possibly hand edited
	Target    string
	HasTarget bool
	// Shadow is the document as generated last time
	Shadow    string
	HasShadow bool
}

// Result summarizes one reconciliation.
type Result struct {
	// Frontmatter is the preserved frontmatter, empty when none was found
	Frontmatter string
	Preserved   []string
	Discarded   []string
}

// Reconciler decides per endpoint whether the fresh fragment or a manual
// edit from the published document goes into the output.
type Reconciler struct {
	Force  bool
	Logger zerolog.Logger
}

// NewReconciler creates a reconciler
func NewReconciler(force bool, logger zerolog.Logger) *Reconciler {
	return &Reconciler{Force: force, Logger: logger}
}

// Reconcile sets ModifiedOutput on endpoints of doc whose published block
// was edited since it was generated. Endpoints must already carry Output.
func (r *Reconciler) Reconcile(doc *Document, prior Prior) Result {
	var res Result
	if !prior.HasTarget {
		return res
	}
	if fm, ok := ExtractFrontmatter(prior.Target); ok {
		res.Frontmatter = fm
	}

	for _, ep := range doc.Endpoints() {
		ep.ModifiedOutput = ""

		current, ok := ExtractBlock(prior.Target, ep.ID)
		if !ok || !prior.HasShadow {
			continue
		}
		generated, ok := ExtractBlock(prior.Shadow, ep.ID)
		if !ok || generated.Inner == current.Inner {
			continue
		}

		label := ep.Label()
		if r.Force {
			r.Logger.Warn().Str("route", label).Msg("Discarded manual changes for route " + label)
			res.Discarded = append(res.Discarded, ep.ID)
			continue
		}

		r.Logger.Warn().Str("route", label).Msg("Skipping modified route " + label)
		r.logDiff(label, generated.Full, current.Full)
		ep.ModifiedOutput = current.Full
		res.Preserved = append(res.Preserved, ep.ID)
	}
	return res
}

func (r *Reconciler) logDiff(label, generated, edited string) {
	if r.Logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(generated),
		B:        difflib.SplitLines(edited),
		FromFile: "generated",
		ToFile:   "edited",
		Context:  2,
	})
	if err != nil {
		return
	}
	r.Logger.Debug().Str("route", label).Str("diff", diff).Msg("Manual changes")
}
