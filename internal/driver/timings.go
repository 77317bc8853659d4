package driver

import (
	"encoding/json"
	"fmt"

	"cdecl/internal/diag"
	"cdecl/internal/observ"
	"cdecl/internal/source"
)

// TimingPayload is the JSON note of an OBS7001 diagnostic.
type TimingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds an info diagnostic with the timer report; a
// full bag is grown by one so the timings are never dropped.
func appendTimingDiagnostic(bag *diag.Bag, at source.Span, payload TimingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "file"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, payload.Path)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  at,
		Notes:    []diag.Note{{Span: at, Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Merge(bag)
	overflow.Add(entry)
	*bag = *overflow
}
