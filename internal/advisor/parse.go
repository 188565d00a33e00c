package advisor

import (
	"encoding/json"
	"strings"

	"github.com/freeeve/principled-summit/pkg/negotiation"
)

// decodeLoose attempts a strict JSON decode of text into v; on failure it
// retries with the outermost brace-delimited substring, which is usually
// enough to strip markdown fences or prose around the object. Reports
// whether any decode succeeded. Parse failures never propagate into the
// engine; callers substitute the documented default instead.
func decodeLoose(text string, v any) bool {
	if json.Unmarshal([]byte(text), v) == nil {
		return true
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if json.Unmarshal([]byte(text[start:end+1]), v) == nil {
			return true
		}
	}
	return false
}

// parseVerdict decodes the judge's raw output. Anything unparseable, or
// parseable with an outcome outside the three allowed values, falls back
// to the default unparseable verdict.
func parseVerdict(text string) negotiation.Verdict {
	var v negotiation.Verdict
	if !decodeLoose(text, &v) || !v.Outcome.Valid() {
		return negotiation.UnparseableVerdict()
	}
	return v
}

// parseDetection decodes the concession detector's raw output.
func parseDetection(text string) negotiation.Detection {
	var d negotiation.Detection
	if !decodeLoose(text, &d) {
		return negotiation.Detection{Matched: false, Rationale: "Unparseable"}
	}
	return d
}

// parseResponse decodes the opponent responder's raw output.
func parseResponse(text string) Response {
	var r Response
	decodeLoose(text, &r)
	return r
}

// truncate caps s at n bytes, matching the prompt-size cap used when
// serializing conversations for the model.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
