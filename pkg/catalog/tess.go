package catalog

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/archive"
	"github.com/Ramsey-B/aster/pkg/classifier"
	"github.com/Ramsey-B/aster/pkg/faults"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// TESSAdapter resolves TIC and TOI identifiers against the TOI table.
type TESSAdapter struct {
	client archive.Client
	logger ectologger.Logger
}

func NewTESSAdapter(client archive.Client, logger ectologger.Logger) *TESSAdapter {
	return &TESSAdapter{client: client, logger: logger}
}

func (a *TESSAdapter) Mission() models.Mission {
	return models.MissionTESS
}

func (a *TESSAdapter) Lookup(ctx context.Context, cand classifier.Candidate) (*models.MissionTarget, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.TESSAdapter.Lookup")
	defer span.End()

	var query string
	switch cand.Kind {
	case classifier.KindTOI:
		query = fmt.Sprintf("select * from toi where toi=%s", cand.Value)
	case classifier.KindTIC:
		query = fmt.Sprintf("select * from toi where tid=%s", cand.Value)
	case classifier.KindCommonName:
		query = fmt.Sprintf("select * from toi where ctoi_alias=%s", quoteTAP(cand.Value))
	default:
		return nil, faults.NotFoundf("%q is not a TESS identifier", cand.Value)
	}

	row, err := queryOne(ctx, a.client, query)
	if err != nil {
		a.logger.WithContext(ctx).WithError(err).Debugf("TESS lookup missed for %q", cand.Value)
		return nil, err
	}

	tid, ok := numericField(row, "tid")
	if !ok {
		return nil, faults.NotFoundf("TOI row for %q has no TIC id", cand.Value)
	}

	return &models.MissionTarget{
		Mission:     models.MissionTESS,
		CatalogID:   tid,
		RA:          floatField(row, "ra"),
		Dec:         floatField(row, "dec"),
		Disposition: stringField(row, "tfopwg_disp"), // CP/KP/PC/APC/FP
		Raw:         row,
	}, nil
}
