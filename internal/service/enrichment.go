package service

import (
	"context"
	"sync"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// enrichmentConcurrency caps parallel category lookups per request.
const enrichmentConcurrency = 8

// categoryEnricher attaches category names to product records. A failed
// lookup leaves the name empty; only cancellation aborts the batch.
type categoryEnricher struct {
	categories repository.CategoryRepository
	logger     *zap.Logger
}

func (e categoryEnricher) names(ctx context.Context, ids []string) (map[string]string, error) {
	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	var mu sync.Mutex
	names := make(map[string]string, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentConcurrency)

	for _, id := range distinct {
		g.Go(func() error {
			category, err := e.categories.FindByID(gctx, id)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.logger.Debug("Category lookup failed during enrichment",
					zap.String("category_id", id),
					zap.Error(err),
				)
				return nil
			}
			mu.Lock()
			names[id] = category.Name()
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

func (e categoryEnricher) records(ctx context.Context, products []*domain.Product) ([]ProductRecord, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.CategoryID())
	}

	names, err := e.names(ctx, ids)
	if err != nil {
		return nil, err
	}

	records := make([]ProductRecord, 0, len(products))
	for _, p := range products {
		record := toProductRecord(p)
		record.CategoryName = names[p.CategoryID()]
		records = append(records, record)
	}
	return records, nil
}

func (e categoryEnricher) record(ctx context.Context, product *domain.Product) (ProductRecord, error) {
	records, err := e.records(ctx, []*domain.Product{product})
	if err != nil {
		return ProductRecord{}, err
	}
	return records[0], nil
}
