package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const subscriptionFanout = 4

// SubscriptionSummary is a followed author with a preview of their recipes.
type SubscriptionSummary struct {
	Author       *types.User
	IsSubscribed bool
	Recipes      []types.RecipeSummary
	RecipesCount int64
}

type SubscriptionPage struct {
	Items []SubscriptionSummary
	Count int64
	Page  Page
}

type FollowService interface {
	Subscribe(ctx context.Context, followerID, followeeID uuid.UUID, recipesLimit *int) (*SubscriptionSummary, error)
	Unsubscribe(ctx context.Context, followerID, followeeID uuid.UUID) error
	SubscriptionSummary(ctx context.Context, followerID, followeeID uuid.UUID, recipesLimit *int) (*SubscriptionSummary, error)
	ListSubscriptions(ctx context.Context, followerID uuid.UUID, recipesLimit *int, page Page) (SubscriptionPage, error)
}

type followService struct {
	log       *logger.Logger
	aggregate domainagg.FollowAggregate
	users     repos.UserRepo
	follows   repos.FollowRepo
	recipes   repos.RecipeRepo
}

func NewFollowService(log *logger.Logger, aggregate domainagg.FollowAggregate, users repos.UserRepo, follows repos.FollowRepo, recipes repos.RecipeRepo) FollowService {
	return &followService{
		log:       log.With("service", "FollowService"),
		aggregate: aggregate,
		users:     users,
		follows:   follows,
		recipes:   recipes,
	}
}

func (s *followService) Subscribe(ctx context.Context, followerID, followeeID uuid.UUID, recipesLimit *int) (*SubscriptionSummary, error) {
	if _, err := s.aggregate.Follow(ctx, followerID, followeeID); err != nil {
		return nil, err
	}
	return s.SubscriptionSummary(ctx, followerID, followeeID, recipesLimit)
}

func (s *followService) Unsubscribe(ctx context.Context, followerID, followeeID uuid.UUID) error {
	return s.aggregate.Unfollow(ctx, followerID, followeeID)
}

func (s *followService) SubscriptionSummary(ctx context.Context, followerID, followeeID uuid.UUID, recipesLimit *int) (*SubscriptionSummary, error) {
	dbc := dbctx.Context{Ctx: ctx}
	author, err := s.users.GetByID(dbc, followeeID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	if author == nil {
		return nil, user.ErrUserNotFound
	}
	subscribed, err := s.follows.Exists(dbc, followerID, followeeID)
	if err != nil {
		return nil, fmt.Errorf("check subscription: %w", err)
	}
	return s.summarize(dbc, author, subscribed, recipesLimit)
}

// ListSubscriptions pages through followerID's subscriptions, oldest first,
// building each author's summary concurrently.
func (s *followService) ListSubscriptions(ctx context.Context, followerID uuid.UUID, recipesLimit *int, page Page) (SubscriptionPage, error) {
	if page.Limit <= 0 {
		page.Limit = DefaultPageSize
	}
	if page.Page <= 0 {
		page.Page = 1
	}
	ids, total, err := s.follows.ListFolloweeIDs(dbctx.Context{Ctx: ctx}, followerID, page.Limit, page.Offset())
	if err != nil {
		return SubscriptionPage{}, fmt.Errorf("list subscriptions: %w", err)
	}
	authors, err := s.users.GetByIDs(dbctx.Context{Ctx: ctx}, ids)
	if err != nil {
		return SubscriptionPage{}, fmt.Errorf("load authors: %w", err)
	}
	byID := make(map[uuid.UUID]*types.User, len(authors))
	for _, a := range authors {
		byID[a.ID] = a
	}

	out := make([]*SubscriptionSummary, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(subscriptionFanout)
	for i, id := range ids {
		author := byID[id]
		if author == nil {
			continue
		}
		g.Go(func() error {
			sum, err := s.summarize(dbctx.Context{Ctx: gctx}, author, true, recipesLimit)
			if err != nil {
				return err
			}
			out[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SubscriptionPage{}, err
	}

	items := make([]SubscriptionSummary, 0, len(out))
	for _, sum := range out {
		if sum != nil {
			items = append(items, *sum)
		}
	}
	return SubscriptionPage{Items: items, Count: total, Page: page}, nil
}

func (s *followService) summarize(dbc dbctx.Context, author *types.User, subscribed bool, recipesLimit *int) (*SubscriptionSummary, error) {
	counts, err := s.recipes.CountByAuthors(dbc, []uuid.UUID{author.ID})
	if err != nil {
		return nil, fmt.Errorf("count author recipes: %w", err)
	}
	sum := &SubscriptionSummary{
		Author:       author,
		IsSubscribed: subscribed,
		Recipes:      []types.RecipeSummary{},
		RecipesCount: counts[author.ID],
	}
	// nil means every recipe; an explicit zero means none.
	limit := 0
	if recipesLimit != nil {
		if *recipesLimit <= 0 {
			return sum, nil
		}
		limit = *recipesLimit
	}
	rows, err := s.recipes.ListByAuthor(dbc, author.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}
	for _, r := range rows {
		sum.Recipes = append(sum.Recipes, r.Summary())
	}
	return sum, nil
}
