package extract

import (
	"fmt"
	"sort"

	"github.com/inodb/gtf2utr/internal/classify"
	"github.com/inodb/gtf2utr/internal/gtf"
)

// LoadRegions reads classified UTR regions from a GTF stream carrying
// five_prime_utr/three_prime_utr features (the intermediate artifact, or
// any annotation with pre-classified UTRs). Features are grouped into at
// most one region per transcript and type, preserving first-seen
// transcript order; segments are sorted ascending by start.
func LoadRegions(p *gtf.Parser) ([]*classify.UTRRegion, error) {
	byKey := make(map[string]*classify.UTRRegion)
	var order []string

	for {
		rec, err := p.Next()
		if err != nil {
			return nil, fmt.Errorf("read UTR annotations: %w", err)
		}
		if rec == nil {
			break
		}

		var utrType classify.UTRType
		switch rec.Feature {
		case gtf.FeatureFivePrimeUTR:
			utrType = classify.FivePrime
		case gtf.FeatureThreePrimeUTR:
			utrType = classify.ThreePrime
		default:
			continue
		}

		tid := rec.TranscriptID()
		if tid == "" {
			continue
		}

		key := tid + "\x00" + utrType.Feature()
		r, ok := byKey[key]
		if !ok {
			r = &classify.UTRRegion{
				TranscriptID: tid,
				GeneID:       rec.GeneID(),
				GeneName:     rec.GeneName(),
				Chrom:        rec.Chrom,
				Strand:       rec.Strand,
				Type:         utrType,
			}
			byKey[key] = r
			order = append(order, key)
		}
		r.Segments = append(r.Segments, classify.Interval{Start: rec.Start, End: rec.End})
	}

	regions := make([]*classify.UTRRegion, 0, len(order))
	for _, key := range order {
		r := byKey[key]
		sort.Slice(r.Segments, func(i, j int) bool { return r.Segments[i].Start < r.Segments[j].Start })
		regions = append(regions, r)
	}
	return regions, nil
}
