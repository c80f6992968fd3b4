package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/archive"
	"github.com/Ramsey-B/aster/pkg/classifier"
	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// KeplerAdapter resolves KepID, KOI, and Kepler-N identifiers against the
// cumulative KOI table.
type KeplerAdapter struct {
	client archive.Client
	logger ectologger.Logger
}

func NewKeplerAdapter(client archive.Client, logger ectologger.Logger) *KeplerAdapter {
	return &KeplerAdapter{client: client, logger: logger}
}

func (a *KeplerAdapter) Mission() models.Mission {
	return models.MissionKepler
}

func (a *KeplerAdapter) Lookup(ctx context.Context, cand classifier.Candidate) (*models.MissionTarget, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.KeplerAdapter.Lookup")
	defer span.End()

	var row archive.Row
	var err error
	switch cand.Kind {
	case classifier.KindKepID:
		row, err = queryOne(ctx, a.client,
			fmt.Sprintf("select * from cumulative where kepid=%s", cand.Value))
	case classifier.KindKOI:
		row, err = a.lookupKOI(ctx, cand.Value)
	case classifier.KindKeplerName, classifier.KindCommonName:
		row, err = queryOne(ctx, a.client,
			fmt.Sprintf("select * from cumulative where kepler_name like %s", quoteTAP(cand.Value+"%")))
	default:
		return nil, faults.NotFoundf("%q is not a Kepler identifier", cand.Value)
	}
	if err != nil {
		a.logger.WithContext(ctx).WithError(err).Debugf("Kepler lookup missed for %q", cand.Value)
		return nil, err
	}

	kepid, ok := numericField(row, "kepid")
	if !ok {
		return nil, faults.NotFoundf("KOI row for %q has no kepid", cand.Value)
	}

	return &models.MissionTarget{
		Mission:     models.MissionKepler,
		CatalogID:   kepid,
		RA:          floatField(row, "ra"),
		Dec:         floatField(row, "dec"),
		Disposition: stringField(row, "koi_disposition"), // CONFIRMED/CANDIDATE/FALSE POSITIVE
		Raw:         row,
	}, nil
}

// lookupKOI tries the zero-padded kepoi_name form (K00752.01) first and falls
// back to the bare value.
func (a *KeplerAdapter) lookupKOI(ctx context.Context, value string) (archive.Row, error) {
	row, err := queryOne(ctx, a.client,
		fmt.Sprintf("select * from cumulative where kepoi_name=%s", quoteTAP(KOIName(value))))
	if err != nil && errors.Is(err, faults.ErrNotFound) {
		return queryOne(ctx, a.client,
			fmt.Sprintf("select * from cumulative where kepoi_name=%s", quoteTAP(value)))
	}
	return row, err
}

// KOIName formats a KOI number into the catalog's kepoi_name form, left-padded
// with zeros to eight characters (752.01 -> K00752.01).
func KOIName(value string) string {
	if len(value) < 8 {
		value = strings.Repeat("0", 8-len(value)) + value
	}
	return "K" + value
}
