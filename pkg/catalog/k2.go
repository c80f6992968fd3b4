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

// K2Adapter resolves EPIC identifiers against the k2targets table.
type K2Adapter struct {
	client archive.Client
	logger ectologger.Logger
}

func NewK2Adapter(client archive.Client, logger ectologger.Logger) *K2Adapter {
	return &K2Adapter{client: client, logger: logger}
}

func (a *K2Adapter) Mission() models.Mission {
	return models.MissionK2
}

func (a *K2Adapter) Lookup(ctx context.Context, cand classifier.Candidate) (*models.MissionTarget, error) {
	ctx, span := tracing.StartSpan(ctx, "catalog.K2Adapter.Lookup")
	defer span.End()

	var query string
	switch cand.Kind {
	case classifier.KindEPIC:
		query = fmt.Sprintf("select * from k2targets where epic_number=%s", cand.Value)
	case classifier.KindCommonName:
		query = fmt.Sprintf("select * from k2targets where k2_name=%s", quoteTAP(cand.Value))
	default:
		return nil, faults.NotFoundf("%q is not a K2 identifier", cand.Value)
	}

	row, err := queryOne(ctx, a.client, query)
	if err != nil {
		a.logger.WithContext(ctx).WithError(err).Debugf("K2 lookup missed for %q", cand.Value)
		return nil, err
	}

	epic, ok := numericField(row, "epic_number")
	if !ok {
		return nil, faults.NotFoundf("K2 row for %q has no epic_number", cand.Value)
	}

	return &models.MissionTarget{
		Mission:     models.MissionK2,
		CatalogID:   epic,
		RA:          floatField(row, "ra"),
		Dec:         floatField(row, "dec"),
		Disposition: stringField(row, "disposition"),
		Raw:         row,
	}, nil
}
