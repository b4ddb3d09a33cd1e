package recipes

import "errors"

// Recipe write validation.
var (
	ErrEmptyIngredients    = errors.New("a recipe needs at least one ingredient")
	ErrDuplicateIngredient = errors.New("ingredients must be unique")
	ErrUnknownIngredient   = errors.New("unknown ingredient")
	ErrInvalidAmount       = errors.New("ingredient amount must not be negative")
	ErrInvalidName         = errors.New("recipe name must be 1-200 characters")
	ErrInvalidCookingTime  = errors.New("cooking time must be at least 1 minute")
	ErrInvalidText         = errors.New("recipe text must not be empty")
	ErrUnknownTag          = errors.New("unknown tag")
	ErrInvalidImage        = errors.New("invalid recipe image")
)

// Relation conflicts.
var (
	ErrAlreadyExists    = errors.New("recipe is already in the list")
	ErrRelationNotFound = errors.New("recipe is not in the list")
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotRecipeAuthor = errors.New("only the author can change this recipe")
	ErrVersionConflict = errors.New("recipe was modified concurrently")
	ErrInvalidFilter   = errors.New("invalid recipe filter")
)
