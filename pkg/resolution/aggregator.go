// Package resolution orchestrates cross-mission target resolution: classify
// the raw name, fan out to every candidate mission's catalog adapter in
// parallel, join on all of them, and pick the primary mission.
package resolution

import (
	"context"
	"errors"
	"sync"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/catalog"
	"github.com/Ramsey-B/aster/pkg/classifier"
	"github.com/Ramsey-B/aster/pkg/events"
	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// Aggregator resolves raw identifiers across mission catalogs.
type Aggregator struct {
	adapters []catalog.Adapter
	emitter  *events.Emitter
	logger   ectologger.Logger
}

// NewAggregator creates an aggregator over a fixed adapter set.
func NewAggregator(adapters []catalog.Adapter, emitter *events.Emitter, logger ectologger.Logger) *Aggregator {
	return &Aggregator{adapters: adapters, emitter: emitter, logger: logger}
}

// Resolve classifies raw and looks it up in every candidate catalog
// concurrently. Per-mission NotFound is expected and folds into "mission
// absent from the map"; it never aborts the resolution. The call waits for
// all issued lookups before aggregating.
func (a *Aggregator) Resolve(ctx context.Context, raw string) (*models.ResolutionResult, error) {
	ctx, span := tracing.StartSpan(ctx, "resolution.Aggregator.Resolve")
	defer span.End()

	cls := classifier.Classify(raw)

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		targets = make(map[models.Mission]*models.MissionTarget)
	)

	attempted := make(map[models.Mission]bool)
	for _, cand := range cls.Candidates {
		adapter, err := catalog.ForMission(a.adapters, cand.Mission)
		if err != nil {
			continue
		}
		attempted[cand.Mission] = true

		wg.Add(1)
		go func(cand classifier.Candidate) {
			defer wg.Done()
			target, err := adapter.Lookup(ctx, cand)
			if err != nil {
				if !errors.Is(err, faults.ErrNotFound) {
					a.logger.WithContext(ctx).WithError(err).Errorf("%s lookup failed for %q", cand.Mission, raw)
				}
				return
			}
			mu.Lock()
			// A mission can have several candidate forms (e.g. TIC prefix and
			// bare numeral); the first successful lookup wins.
			if _, ok := targets[cand.Mission]; !ok {
				targets[cand.Mission] = target
			}
			mu.Unlock()
		}(cand)
	}
	wg.Wait()

	result := &models.ResolutionResult{
		Input:   cls.Raw,
		Targets: targets,
		Status:  status(len(targets), len(attempted)),
	}
	if len(targets) > 0 {
		result.PrimaryMission = primaryMission(cls, targets)
	}

	a.emitter.EmitResolutionCompleted(ctx, result)
	a.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"input":   cls.Raw,
		"status":  result.Status,
		"primary": result.PrimaryMission,
	}).Info("Resolution complete")

	return result, nil
}

func status(resolved, attempted int) models.ResolutionStatus {
	switch {
	case resolved == 0:
		return models.ResolutionNotFound
	case resolved < attempted:
		return models.ResolutionPartial
	default:
		return models.ResolutionSuccess
	}
}

// dispositionRank orders mission-specific vetting verdicts across the TOI and
// KOI vocabularies. Unknown or empty labels rank below everything so a mission
// with any verdict beats one with none.
func dispositionRank(label string) int {
	switch label {
	case "CONFIRMED", "CP", "KP":
		return 3
	case "CANDIDATE", "PC", "APC":
		return 2
	case "FALSE POSITIVE", "FP":
		return 1
	default:
		return 0
	}
}

// primaryMission applies the selection order: the mission whose native ID
// pattern matched, then the strongest disposition, then the fixed priority
// order TESS > KEPLER > K2.
func primaryMission(cls classifier.Classification, targets map[models.Mission]*models.MissionTarget) models.Mission {
	if m := cls.PatternMission(); m != "" {
		if _, ok := targets[m]; ok {
			return m
		}
	}

	best, bestRank, ties := models.Mission(""), -1, 0
	for _, m := range models.AllMissions {
		target, ok := targets[m]
		if !ok {
			continue
		}
		rank := dispositionRank(target.Disposition)
		if rank > bestRank {
			best, bestRank, ties = m, rank, 1
		} else if rank == bestRank {
			ties++
		}
	}
	if ties == 1 {
		return best
	}

	// AllMissions is already the fixed priority order, so the first resolved
	// mission at the top rank wins the final tie-break.
	return best
}
