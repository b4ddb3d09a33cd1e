package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/docexport"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type ExportedDocument struct {
	Body        []byte
	ContentType string
	Filename    string
}

type ShoppingListService interface {
	Aggregate(ctx context.Context, userID uuid.UUID) (types.ShoppingList, error)
	Export(ctx context.Context, userID uuid.UUID, format docexport.Format) (ExportedDocument, error)
}

type Renderer interface {
	Render(list types.ShoppingList, format docexport.Format) ([]byte, error)
}

type shoppingListService struct {
	log      *logger.Logger
	lines    repos.IngredientLineRepo
	renderer Renderer
	metrics  *observability.Metrics
}

func NewShoppingListService(log *logger.Logger, lines repos.IngredientLineRepo, renderer Renderer, metrics *observability.Metrics) ShoppingListService {
	return &shoppingListService{
		log:      log.With("service", "ShoppingListService"),
		lines:    lines,
		renderer: renderer,
		metrics:  metrics,
	}
}

func (s *shoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) (types.ShoppingList, error) {
	items, err := s.lines.ListCartItems(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return types.ShoppingList{}, fmt.Errorf("load cart items: %w", err)
	}
	list := AggregateCartItems(items)
	for _, it := range list.Items {
		if len(it.ConflictingUnits) > 0 {
			s.log.Warn("shopping list unit conflict",
				"user_id", userID,
				"ingredient", it.Name,
				"unit", it.MeasurementUnit,
				"conflicting_units", strings.Join(it.ConflictingUnits, ","),
			)
		}
	}
	return list, nil
}

func (s *shoppingListService) Export(ctx context.Context, userID uuid.UUID, format docexport.Format) (ExportedDocument, error) {
	list, err := s.Aggregate(ctx, userID)
	if err != nil {
		return ExportedDocument{}, err
	}
	start := time.Now()
	body, err := s.renderer.Render(list, format)
	if err != nil {
		s.metrics.ObserveExport(string(format), "error", time.Since(start))
		return ExportedDocument{}, fmt.Errorf("render shopping list: %w", err)
	}
	s.metrics.ObserveExport(string(format), "success", time.Since(start))
	return ExportedDocument{
		Body:        body,
		ContentType: format.ContentType(),
		Filename:    format.Filename(),
	}, nil
}

// AggregateCartItems sums amounts per ingredient name in first-encounter
// order. The first unit seen for a name wins; later differing units are
// recorded once each in ConflictingUnits and their amounts are still added.
func AggregateCartItems(items []repos.CartItem) types.ShoppingList {
	list := types.ShoppingList{Items: []types.ShoppingListItem{}}
	index := map[string]int{}
	for _, it := range items {
		i, ok := index[it.Name]
		if !ok {
			index[it.Name] = len(list.Items)
			list.Items = append(list.Items, types.ShoppingListItem{
				Name:            it.Name,
				MeasurementUnit: it.MeasurementUnit,
				TotalAmount:     it.Amount,
			})
			continue
		}
		agg := &list.Items[i]
		agg.TotalAmount += it.Amount
		if it.MeasurementUnit != agg.MeasurementUnit && !containsString(agg.ConflictingUnits, it.MeasurementUnit) {
			agg.ConflictingUnits = append(agg.ConflictingUnits, it.MeasurementUnit)
		}
	}
	return list
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
