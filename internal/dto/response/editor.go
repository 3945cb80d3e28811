package response

import "fleet-admin/internal/seatlayout"

// ReconcileSummary reports what the reconciler changed to reach the stored
// seat total.
type ReconcileSummary struct {
	Target   int                   `json:"target"`
	Disabled []seatlayout.Position `json:"disabled,omitempty"`
	Enabled  []seatlayout.Position `json:"enabled,omitempty"`
	Repaired bool                  `json:"repaired"`
}

type EditorResponse struct {
	State     seatlayout.EditorState `json:"state"`
	Reconcile *ReconcileSummary      `json:"reconcile,omitempty"`
}

type SubmitResponse struct {
	Configuration seatlayout.Configuration `json:"configuration"`
	Created       bool                     `json:"created"`
	Corrected     bool                     `json:"corrected"`
}

func ReconcileToSummary(res seatlayout.ReconcileResult) *ReconcileSummary {
	return &ReconcileSummary{
		Target:   res.Target,
		Disabled: res.Disabled,
		Enabled:  res.Enabled,
		Repaired: res.Repaired,
	}
}
