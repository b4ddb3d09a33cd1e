package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/platform/objectstore"
)

// RecipeWrite is a create or update request. Nil attributes keep the stored
// value on update; on create every attribute and Image are required.
type RecipeWrite struct {
	Name        *string
	Text        *string
	CookingTime *int
	// Image is base64, optionally as a data URI.
	Image  *string
	TagIDs []uuid.UUID
	Lines  []types.LineInput
}

// RecipeView is a recipe hydrated for one viewer.
type RecipeView struct {
	Recipe           *types.Recipe
	Author           *types.User
	AuthorSubscribed bool
	IsFavorited      bool
	IsInShoppingCart bool
}

type RecipePage struct {
	Items []RecipeView
	Count int64
	Page  Page
}

type RecipeService interface {
	List(ctx context.Context, viewerID uuid.UUID, filter RecipeFilter, page Page) (RecipePage, error)
	Get(ctx context.Context, viewerID, recipeID uuid.UUID) (*RecipeView, error)
	Create(ctx context.Context, authorID uuid.UUID, in RecipeWrite) (*RecipeView, error)
	Update(ctx context.Context, actorID, recipeID uuid.UUID, in RecipeWrite, expectedVersion *int) (*RecipeView, error)
	Delete(ctx context.Context, actorID, recipeID uuid.UUID) error
}

type RecipeServiceDeps struct {
	Aggregate domainagg.RecipeAggregate
	Recipes   repos.RecipeRepo
	Lines     repos.IngredientLineRepo
	Tags      repos.TagRepo
	Relations repos.UserRecipeRelationRepo
	Users     repos.UserRepo
	Follows   repos.FollowRepo
	Images    objectstore.Store
}

type recipeService struct {
	log  *logger.Logger
	deps RecipeServiceDeps
}

func NewRecipeService(log *logger.Logger, deps RecipeServiceDeps) RecipeService {
	return &recipeService{log: log.With("service", "RecipeService"), deps: deps}
}

func (s *recipeService) List(ctx context.Context, viewerID uuid.UUID, filter RecipeFilter, page Page) (RecipePage, error) {
	if page.Limit <= 0 {
		page.Limit = DefaultPageSize
	}
	if page.Page <= 0 {
		page.Page = 1
	}
	rows, total, err := s.deps.Recipes.List(dbctx.Context{Ctx: ctx}, filter.Query(viewerID, page))
	if err != nil {
		return RecipePage{}, fmt.Errorf("list recipes: %w", err)
	}
	views, err := s.hydrate(ctx, viewerID, rows)
	if err != nil {
		return RecipePage{}, err
	}
	return RecipePage{Items: views, Count: total, Page: page}, nil
}

func (s *recipeService) Get(ctx context.Context, viewerID, recipeID uuid.UUID) (*RecipeView, error) {
	rec, err := s.deps.Recipes.GetByID(dbctx.Context{Ctx: ctx}, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if rec == nil {
		return nil, recipes.ErrRecipeNotFound
	}
	views, err := s.hydrate(ctx, viewerID, []*types.Recipe{rec})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *recipeService) Create(ctx context.Context, authorID uuid.UUID, in RecipeWrite) (*RecipeView, error) {
	const op = "Recipes.Recipe.Create"
	attrs := domainagg.RecipeAttrs{}
	if in.Name != nil {
		attrs.Name = *in.Name
	}
	if in.Text != nil {
		attrs.Text = *in.Text
	}
	if in.CookingTime != nil {
		attrs.CookingTime = *in.CookingTime
	}
	if err := recipes.ValidateWrite(in.Lines, &attrs.Name, &attrs.Text, &attrs.CookingTime); err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	raw := ""
	if in.Image != nil {
		raw = *in.Image
	}
	png, err := prepareImage(op, raw)
	if err != nil {
		return nil, err
	}
	key, err := s.upload(ctx, png)
	if err != nil {
		return nil, err
	}
	attrs.ImageKey = key

	rec, err := s.deps.Aggregate.Create(ctx, domainagg.CreateRecipeInput{
		AuthorID: authorID,
		Attrs:    attrs,
		TagIDs:   in.TagIDs,
		Lines:    in.Lines,
	})
	if err != nil {
		s.discard(ctx, key)
		return nil, err
	}
	return s.viewAfterWrite(ctx, authorID, rec)
}

func (s *recipeService) Update(ctx context.Context, actorID, recipeID uuid.UUID, in RecipeWrite, expectedVersion *int) (*RecipeView, error) {
	const op = "Recipes.Recipe.Update"
	if err := recipes.ValidateWrite(in.Lines, in.Name, in.Text, in.CookingTime); err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	patch := domainagg.RecipeAttrsPatch{Name: in.Name, Text: in.Text, CookingTime: in.CookingTime}

	newKey := ""
	if in.Image != nil {
		png, err := prepareImage(op, *in.Image)
		if err != nil {
			return nil, err
		}
		newKey, err = s.upload(ctx, png)
		if err != nil {
			return nil, err
		}
		patch.ImageKey = &newKey
	}

	res, err := s.deps.Aggregate.Update(ctx, domainagg.UpdateRecipeInput{
		RecipeID:        recipeID,
		ActorID:         actorID,
		Attrs:           patch,
		TagIDs:          in.TagIDs,
		Lines:           in.Lines,
		ExpectedVersion: expectedVersion,
	})
	if err != nil {
		s.discard(ctx, newKey)
		return nil, err
	}
	s.discard(ctx, res.PreviousKey)
	return s.viewAfterWrite(ctx, actorID, res.Recipe)
}

func (s *recipeService) Delete(ctx context.Context, actorID, recipeID uuid.UUID) error {
	res, err := s.deps.Aggregate.Delete(ctx, domainagg.DeleteRecipeInput{RecipeID: recipeID, ActorID: actorID})
	if err != nil {
		return err
	}
	s.discard(ctx, res.ImageKey)
	return nil
}

func prepareImage(op, raw string) ([]byte, error) {
	decoded, err := DecodeImageData(raw)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	png, err := ProcessRecipeImage(decoded)
	if err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	return png, nil
}

func (s *recipeService) upload(ctx context.Context, png []byte) (string, error) {
	if s.deps.Images == nil {
		return "", fmt.Errorf("image store not configured")
	}
	key := fmt.Sprintf("recipes/images/%s.png", uuid.New())
	if err := s.deps.Images.Put(ctx, key, bytes.NewReader(png)); err != nil {
		return "", fmt.Errorf("upload recipe image: %w", err)
	}
	return key, nil
}

// discard deletes an image object best-effort.
func (s *recipeService) discard(ctx context.Context, key string) {
	if key == "" || s.deps.Images == nil {
		return
	}
	if err := s.deps.Images.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn("failed to delete recipe image (ignored)", "key", key, "error", err)
	}
}

// viewAfterWrite builds the writer's view from the aggregate result without
// re-reading lines and tags.
func (s *recipeService) viewAfterWrite(ctx context.Context, viewerID uuid.UUID, rec *types.Recipe) (*RecipeView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	author, err := s.deps.Users.GetByID(dbc, rec.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	flags, err := s.viewerFlags(dbc, viewerID, []uuid.UUID{rec.ID})
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subscribedTo(dbc, viewerID, []uuid.UUID{rec.AuthorID})
	if err != nil {
		return nil, err
	}
	return &RecipeView{
		Recipe:           rec,
		Author:           author,
		AuthorSubscribed: subscribed[rec.AuthorID],
		IsFavorited:      flags.favorited[rec.ID],
		IsInShoppingCart: flags.inCart[rec.ID],
	}, nil
}

type viewerFlags struct {
	favorited map[uuid.UUID]bool
	inCart    map[uuid.UUID]bool
}

func (s *recipeService) viewerFlags(dbc dbctx.Context, viewerID uuid.UUID, recipeIDs []uuid.UUID) (viewerFlags, error) {
	out := viewerFlags{favorited: map[uuid.UUID]bool{}, inCart: map[uuid.UUID]bool{}}
	if viewerID == uuid.Nil || len(recipeIDs) == 0 {
		return out, nil
	}
	var err error
	if out.favorited, err = s.deps.Relations.RecipeIDsAmong(dbc, viewerID, types.RelationFavorite, recipeIDs); err != nil {
		return out, fmt.Errorf("load favorites: %w", err)
	}
	if out.inCart, err = s.deps.Relations.RecipeIDsAmong(dbc, viewerID, types.RelationCart, recipeIDs); err != nil {
		return out, fmt.Errorf("load cart: %w", err)
	}
	return out, nil
}

func (s *recipeService) subscribedTo(dbc dbctx.Context, viewerID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if viewerID == uuid.Nil || len(authorIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	m, err := s.deps.Follows.FolloweesAmong(dbc, viewerID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load subscriptions: %w", err)
	}
	return m, nil
}

func (s *recipeService) hydrate(ctx context.Context, viewerID uuid.UUID, rows []*types.Recipe) ([]RecipeView, error) {
	views := make([]RecipeView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	recipeIDs := make([]uuid.UUID, 0, len(rows))
	authorIDs := make([]uuid.UUID, 0, len(rows))
	seenAuthor := map[uuid.UUID]struct{}{}
	for _, r := range rows {
		recipeIDs = append(recipeIDs, r.ID)
		if _, ok := seenAuthor[r.AuthorID]; !ok {
			seenAuthor[r.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	lines, err := s.deps.Lines.ListByRecipeIDs(dbc, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load ingredient lines: %w", err)
	}
	tags, err := s.deps.Tags.ListByRecipeIDs(dbc, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	authors, err := s.deps.Users.GetByIDs(dbc, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	authorByID := make(map[uuid.UUID]*types.User, len(authors))
	for _, a := range authors {
		authorByID[a.ID] = a
	}
	flags, err := s.viewerFlags(dbc, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := s.subscribedTo(dbc, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		r.Lines = lines[r.ID]
		r.Tags = tags[r.ID]
		if r.Tags == nil {
			r.Tags = []*types.Tag{}
		}
		views = append(views, RecipeView{
			Recipe:           r,
			Author:           authorByID[r.AuthorID],
			AuthorSubscribed: subscribed[r.AuthorID],
			IsFavorited:      flags.favorited[r.ID],
			IsInShoppingCart: flags.inCart[r.ID],
		})
	}
	return views, nil
}
