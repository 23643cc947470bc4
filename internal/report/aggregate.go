// Package report derives per-stage statistics and client-list summaries
// from in-memory pipeline records.
package report

import (
	"fmt"
	"sort"

	"github.com/karyhub/dealflow/internal/stage"
	"github.com/karyhub/dealflow/internal/view"
)

// Band is the acceptable share of total records for one stage, in
// percentage points. Boundaries are inclusive.
type Band struct {
	Min float64
	Max float64
}

// BandStatus classifies a stage's rate against its band.
type BandStatus string

const (
	// StatusLow means the rate fell below the band.
	StatusLow BandStatus = "low"
	// StatusNormal means the rate sits inside the band, boundaries
	// included.
	StatusNormal BandStatus = "normal"
	// StatusHigh means the rate exceeded the band.
	StatusHigh BandStatus = "high"
)

// StageStat is the derived view of one stage's share of the pipeline.
type StageStat struct {
	Code    stage.Code
	Label   string
	Count   int
	Rate    float64 // percent of total, 0 when the pipeline is empty
	Status  BandStatus
	Message string
}

// Report is the full per-stage aggregation. Stages holds the canonical
// pipeline in order; Extras holds unrecognized stage labels so that
// counts still sum to Total.
type Report struct {
	Total  int
	Stages []StageStat
	Extras []StageStat
}

// DefaultBands returns the band configuration used when the settings
// table has no override for a stage.
func DefaultBands() map[stage.Code]Band {
	return map[stage.Code]Band{
		stage.S0: {Min: 10, Max: 30},
		stage.S1: {Min: 10, Max: 25},
		stage.S2: {Min: 10, Max: 25},
		stage.S3: {Min: 5, Max: 20},
		stage.S4: {Min: 5, Max: 15},
		stage.S5: {Min: 5, Max: 20},
		stage.S6: {Min: 0, Max: 20},
		stage.S7: {Min: 0, Max: 15},
	}
}

// Aggregate computes per-stage counts, rates, and band classification for
// the given records. Pure and deterministic; unknown stage values are
// reported under their own label in Extras.
func Aggregate(records []view.Record, bands map[stage.Code]Band) Report {
	counts := make(map[stage.Code]int)
	extraCounts := make(map[string]int)

	for _, r := range records {
		info := stage.Resolve(r.Stage)
		if info.Code != "" {
			counts[info.Code]++
		} else {
			extraCounts[info.Label]++
		}
	}

	total := len(records)
	rep := Report{Total: total}

	for _, code := range stage.Codes() {
		info, _ := stage.Lookup(code)
		st := StageStat{
			Code:  code,
			Label: info.Label,
			Count: counts[code],
			Rate:  rate(counts[code], total),
		}
		st.Status, st.Message = classify(st.Rate, bands[code])
		rep.Stages = append(rep.Stages, st)
	}

	labels := make([]string, 0, len(extraCounts))
	for label := range extraCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		rep.Extras = append(rep.Extras, StageStat{
			Label:   label,
			Count:   extraCounts[label],
			Rate:    rate(extraCounts[label], total),
			Status:  StatusNormal,
			Message: "적정 범위 내",
		})
	}

	return rep
}

func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// classify compares a rate against its band. Boundaries are inclusive;
// the message reports the signed percentage-point distance from the
// nearest band edge to one decimal.
func classify(r float64, band Band) (BandStatus, string) {
	switch {
	case r < band.Min:
		return StatusLow, fmt.Sprintf("적정 하한 대비 %+.1f%%p", r-band.Min)
	case r > band.Max:
		return StatusHigh, fmt.Sprintf("적정 상한 대비 %+.1f%%p", r-band.Max)
	default:
		return StatusNormal, "적정 범위 내"
	}
}
