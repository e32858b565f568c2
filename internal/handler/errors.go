package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"

	// Recipe operation error messages
	ErrMsgSaveRecipeFailed     = "Failed to save recipe"
	ErrMsgUpdateRecipeFailed   = "Failed to update recipe"
	ErrMsgDeleteRecipeFailed   = "Failed to delete recipe"
	ErrMsgGetRecipeFailed      = "Failed to get recipe"
	ErrMsgListRecipesFailed    = "Failed to list recipes"
	ErrMsgSearchFailed         = "Failed to search recipes"
	ErrMsgVersionHistoryFailed = "Failed to get version history"

	// Conversation error messages
	ErrMsgSaveConversationFailed = "Failed to save conversation state"
	ErrMsgGetConversationFailed  = "Failed to get conversation state"
)

// User-facing error messages mapped from domain errors.
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgRecipeNotFoundError  = "Recipe not found"
	ErrMsgVersionNotFoundError = "Version not found"
	ErrMsgConversationNotFound = "Conversation not found"
	ErrMsgInvalidInputError    = "Invalid input. Please check your request."
	ErrMsgInvalidRecipeType    = "Recipe type must be 'plate' or 'batch'"
	ErrMsgDuplicateVersion     = "Version already exists"
)
