package handler

import (
	"net/http"

	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// MetadataHandler serves the static game metadata: personas, the five
// principled-negotiation rules, and both concession catalogs.
type MetadataHandler struct {
	baseline float64
	batna    map[negotiation.Persona]float64
}

// NewMetadataHandler creates a MetadataHandler.
func NewMetadataHandler(baseline float64, batna map[negotiation.Persona]float64) *MetadataHandler {
	return &MetadataHandler{baseline: baseline, batna: batna}
}

// Metadata handles GET /api/v1/metadata. The payload is static per
// process; clients fetch it once to render catalogs and thresholds.
func (h *MetadataHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"personas":      []negotiation.Persona{negotiation.PersonaTrump, negotiation.PersonaPutin},
		"rules":         negotiation.Rules(),
		"concessions":   negotiation.AllConcessions(),
		"baselineScore": h.baseline,
		"batna":         h.batna,
	})
}
