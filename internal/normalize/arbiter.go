package normalize

// Reconcile weighs a stored-answer resolution against a candidate stated in
// the explanation. The asymmetry is deliberate: prose reliably says "the
// answer is X" even when the structured field has drifted, so a phrase
// candidate that names a different option overrides a successful
// resolution; but the weak trailing-number strategy is only ever accepted
// as a fallback when the stored answer resolved to nothing at all.
func Reconcile(stored Resolution, cand *Candidate, options []string) Resolution {
	if cand == nil {
		return stored
	}
	idx, ok := matchOption(options, cand.Text)

	if stored.Resolved() {
		if ok && idx != stored.Index && cand.Source == StrategyPhrase {
			return Resolution{
				Status: StatusResolved,
				Index:  idx,
				Source: SourceExplanationPhrase,
				Reason: ReasonExplanationContradiction,
			}
		}
		return stored
	}

	// Something is better than nothing: either strategy may rescue a
	// failed resolution, tagged so audits can tell it apart.
	if ok {
		return Resolution{Status: StatusResolved, Index: idx, Source: SourceExplanationFallback}
	}
	return stored
}
