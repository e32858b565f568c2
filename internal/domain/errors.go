package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Recipe errors
	ErrMsgRecipeNotFound    = "recipe not found"
	ErrMsgNothingToUpdate   = "no fields to update"
	ErrMsgInvalidRecipeType = "invalid recipe type"

	// Ingredient errors
	ErrMsgIngredientNotFound = "ingredient not found"

	// Version errors
	ErrMsgDuplicateVersion     = "version number already exists"
	ErrMsgVersionNotFound      = "version not found"
	ErrMsgInvalidVersionNumber = "invalid version number"

	// Conversation errors
	ErrMsgConversationNotFound = "conversation not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// These errors should be used consistently across all layers of the
// application. Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for
// additional context.
var (
	ErrRecipeNotFound    = errors.New(ErrMsgRecipeNotFound)
	ErrNothingToUpdate   = errors.New(ErrMsgNothingToUpdate)
	ErrInvalidRecipeType = errors.New(ErrMsgInvalidRecipeType)

	ErrIngredientNotFound = errors.New(ErrMsgIngredientNotFound)

	ErrDuplicateVersion = errors.New(ErrMsgDuplicateVersion)
	ErrVersionNotFound  = errors.New(ErrMsgVersionNotFound)

	ErrConversationNotFound = errors.New(ErrMsgConversationNotFound)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
