package aggregates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

// IngredientResolver looks catalog entries up by id. Unknown ids are absent
// from the returned map.
type IngredientResolver interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*types.Ingredient, error)
}

type RecipeAggregateDeps struct {
	Base BaseDeps

	Recipes     repos.RecipeRepo
	Lines       repos.IngredientLineRepo
	RecipeTags  repos.RecipeTagRepo
	Tags        repos.TagRepo
	Relations   repos.UserRecipeRelationRepo
	Ingredients repos.IngredientRepo

	// Catalog, when set, replaces direct Ingredients reads.
	Catalog IngredientResolver
}

type recipeAggregate struct {
	deps RecipeAggregateDeps
}

func NewRecipeAggregate(deps RecipeAggregateDeps) domainagg.RecipeAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "RecipeAggregate")
	return &recipeAggregate{deps: deps}
}

func (a *recipeAggregate) Contract() domainagg.Contract {
	return domainagg.RecipeAggregateContract
}

func (a *recipeAggregate) Create(ctx context.Context, in domainagg.CreateRecipeInput) (*types.Recipe, error) {
	const op = "Recipes.Recipe.Create"
	if in.AuthorID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, "missing author_id", nil)
	}
	if err := a.configured(); err != nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, err.Error(), nil)
	}
	if err := recipes.ValidateWrite(in.Lines, &in.Attrs.Name, &in.Attrs.Text, &in.Attrs.CookingTime); err != nil {
		return nil, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	ingredients, err := a.resolveIngredients(ctx, op, in.Lines)
	if err != nil {
		return nil, err
	}
	tagIDs := recipes.DistinctTagIDs(in.TagIDs)

	var out *types.Recipe
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		tags, err := a.loadTags(dbc, op, tagIDs)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		rec := &types.Recipe{
			ID:          uuid.New(),
			AuthorID:    in.AuthorID,
			Name:        strings.TrimSpace(in.Attrs.Name),
			Text:        in.Attrs.Text,
			CookingTime: in.Attrs.CookingTime,
			ImageKey:    strings.TrimSpace(in.Attrs.ImageKey),
			Version:     1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := a.deps.Recipes.Create(dbc, []*types.Recipe{rec}); err != nil {
			return err
		}
		lines, err := a.writeChildren(dbc, rec.ID, in.Lines, ingredients, tags)
		if err != nil {
			return err
		}
		rec.Lines = lines
		rec.Tags = tags
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *recipeAggregate) Update(ctx context.Context, in domainagg.UpdateRecipeInput) (domainagg.UpdateRecipeResult, error) {
	const op = "Recipes.Recipe.Update"
	var out domainagg.UpdateRecipeResult
	if in.RecipeID == uuid.Nil {
		return out, domainError(domainagg.CodeNotFound, op, recipes.ErrRecipeNotFound)
	}
	if in.ActorID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing actor_id", nil)
	}
	if err := a.configured(); err != nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, err.Error(), nil)
	}
	if err := recipes.ValidateWrite(in.Lines, in.Attrs.Name, in.Attrs.Text, in.Attrs.CookingTime); err != nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, err.Error(), err)
	}
	ingredients, err := a.resolveIngredients(ctx, op, in.Lines)
	if err != nil {
		return out, err
	}
	tagIDs := recipes.DistinctTagIDs(in.TagIDs)

	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rec, err := a.deps.Recipes.GetByID(dbc, in.RecipeID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domainError(domainagg.CodeNotFound, op, recipes.ErrRecipeNotFound)
		}
		if rec.AuthorID != in.ActorID {
			return domainError(domainagg.CodeForbidden, op, recipes.ErrNotRecipeAuthor)
		}
		if err := CheckVersion(rec.Version, in.ExpectedVersion); err != nil {
			return versionConflict(op, err)
		}
		tags, err := a.loadTags(dbc, op, tagIDs)
		if err != nil {
			return err
		}

		updates := recipeUpdates(in.Attrs)
		previousKey := ""
		if in.Attrs.ImageKey != nil && strings.TrimSpace(*in.Attrs.ImageKey) != rec.ImageKey {
			previousKey = rec.ImageKey
		}
		if err := a.deps.Base.Versions.Bump(dbc, rec.ID, in.ExpectedVersion, updates); err != nil {
			switch {
			case errors.Is(err, recipes.ErrVersionConflict):
				return versionConflict(op, err)
			case errors.Is(err, recipes.ErrRecipeNotFound):
				return domainError(domainagg.CodeNotFound, op, recipes.ErrRecipeNotFound)
			}
			return err
		}

		if err := a.deps.Lines.DeleteByRecipeIDs(dbc, []uuid.UUID{rec.ID}); err != nil {
			return err
		}
		if err := a.deps.RecipeTags.DeleteByRecipeIDs(dbc, []uuid.UUID{rec.ID}); err != nil {
			return err
		}
		lines, err := a.writeChildren(dbc, rec.ID, in.Lines, ingredients, tags)
		if err != nil {
			return err
		}

		updated, err := a.deps.Recipes.GetByID(dbc, rec.ID)
		if err != nil {
			return err
		}
		if updated == nil {
			return domainError(domainagg.CodeNotFound, op, recipes.ErrRecipeNotFound)
		}
		updated.Lines = lines
		updated.Tags = tags
		out = domainagg.UpdateRecipeResult{Recipe: updated, PreviousKey: previousKey}
		return nil
	})
	return out, err
}

func (a *recipeAggregate) Delete(ctx context.Context, in domainagg.DeleteRecipeInput) (domainagg.DeleteRecipeResult, error) {
	const op = "Recipes.Recipe.Delete"
	var out domainagg.DeleteRecipeResult
	if in.RecipeID == uuid.Nil {
		return out, domainError(domainagg.CodeNotFound, op, recipes.ErrRecipeNotFound)
	}
	if in.ActorID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing actor_id", nil)
	}
	if err := a.configured(); err != nil {
		return out, domainagg.NewError(domainagg.CodeInternal, op, err.Error(), nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		rec, err := a.deps.Recipes.GetByID(dbc, in.RecipeID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domainError(domainagg.CodeNotFound, op, recipes.ErrRecipeNotFound)
		}
		if rec.AuthorID != in.ActorID {
			return domainError(domainagg.CodeForbidden, op, recipes.ErrNotRecipeAuthor)
		}
		ids := []uuid.UUID{rec.ID}
		if err := a.deps.Lines.DeleteByRecipeIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.RecipeTags.DeleteByRecipeIDs(dbc, ids); err != nil {
			return err
		}
		if err := a.deps.Relations.DeleteByRecipeIDs(dbc, ids); err != nil {
			return err
		}
		if _, err := a.deps.Recipes.Delete(dbc, rec.ID); err != nil {
			return err
		}
		out.ImageKey = rec.ImageKey
		return nil
	})
	return out, err
}

func (a *recipeAggregate) configured() error {
	d := a.deps
	if d.Recipes == nil || d.Lines == nil || d.RecipeTags == nil || d.Tags == nil || d.Relations == nil {
		return fmt.Errorf("recipe aggregate repos not configured")
	}
	if d.Catalog == nil && d.Ingredients == nil {
		return fmt.Errorf("recipe aggregate has no ingredient source")
	}
	return nil
}

// resolveIngredients runs before the transaction opens; catalog rows are
// immutable so reading them outside the write is safe.
func (a *recipeAggregate) resolveIngredients(ctx context.Context, op string, lines []recipes.LineInput) (map[uuid.UUID]*types.Ingredient, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.IngredientID)
	}
	var found map[uuid.UUID]*types.Ingredient
	if a.deps.Catalog != nil {
		m, err := a.deps.Catalog.GetByIDs(ctx, ids)
		if err != nil {
			return nil, MapError(op, err)
		}
		found = m
	} else {
		rows, err := a.deps.Ingredients.GetByIDs(dbctx.Context{Ctx: ctx}, ids)
		if err != nil {
			return nil, MapError(op, err)
		}
		found = make(map[uuid.UUID]*types.Ingredient, len(rows))
		for _, row := range rows {
			found[row.ID] = row
		}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			cause := fmt.Errorf("%w: %s", recipes.ErrUnknownIngredient, id)
			return nil, domainagg.NewError(domainagg.CodeValidation, op, cause.Error(), cause)
		}
	}
	return found, nil
}

func (a *recipeAggregate) loadTags(dbc dbctx.Context, op string, ids []uuid.UUID) ([]*types.Tag, error) {
	if len(ids) == 0 {
		return []*types.Tag{}, nil
	}
	rows, err := a.deps.Tags.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Tag, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	out := make([]*types.Tag, 0, len(ids))
	for _, id := range ids {
		tag, ok := byID[id]
		if !ok {
			cause := fmt.Errorf("%w: %s", recipes.ErrUnknownTag, id)
			return nil, domainagg.NewError(domainagg.CodeValidation, op, cause.Error(), cause)
		}
		out = append(out, tag)
	}
	return out, nil
}

func (a *recipeAggregate) writeChildren(dbc dbctx.Context, recipeID uuid.UUID, in []recipes.LineInput, ingredients map[uuid.UUID]*types.Ingredient, tags []*types.Tag) ([]*types.IngredientLine, error) {
	lines := make([]*types.IngredientLine, 0, len(in))
	for i, l := range in {
		lines = append(lines, &types.IngredientLine{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: l.IngredientID,
			Amount:       l.Amount,
			Position:     i,
		})
	}
	if _, err := a.deps.Lines.Create(dbc, lines); err != nil {
		return nil, err
	}
	for _, line := range lines {
		line.Ingredient = ingredients[line.IngredientID]
	}

	links := make([]*types.RecipeTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, &types.RecipeTag{RecipeID: recipeID, TagID: tag.ID})
	}
	if _, err := a.deps.RecipeTags.Create(dbc, links); err != nil {
		return nil, err
	}
	return lines, nil
}

func recipeUpdates(p domainagg.RecipeAttrsPatch) map[string]any {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		updates["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Text != nil {
		updates["text"] = *p.Text
	}
	if p.CookingTime != nil {
		updates["cooking_time"] = *p.CookingTime
	}
	if p.ImageKey != nil {
		updates["image_key"] = strings.TrimSpace(*p.ImageKey)
	}
	return updates
}

func versionConflict(op string, cause error) error {
	if !errors.Is(cause, recipes.ErrVersionConflict) {
		cause = fmt.Errorf("%w: %v", recipes.ErrVersionConflict, cause)
	}
	return domainagg.NewError(domainagg.CodeConflict, op, recipes.ErrVersionConflict.Error(), cause)
}
