package postgres

// Error context strings used when wrapping store failures.
const (
	ErrContextBeginTx        = "failed to begin transaction"
	ErrContextCommitTx       = "failed to commit transaction"
	ErrContextInsertRecipe   = "failed to insert recipe"
	ErrContextUpdateRecipe   = "failed to update recipe"
	ErrContextDeleteRecipe   = "failed to delete recipe"
	ErrContextQueryRecipe    = "failed to query recipe"
	ErrContextScanRecipe     = "failed to scan recipe row"
	ErrContextQueryVersions  = "failed to query versions"
	ErrContextInsertVersion  = "failed to insert version"
	ErrContextLinkIngredient = "failed to link ingredient"
	ErrContextQueryNames     = "failed to query recipe names"
	ErrContextConversation   = "failed to persist conversation"
)

// Log messages
const (
	LogMsgInitialVersionFailed = "Initial version creation failed; recipe row is committed"
	LogMsgRollbackFailed       = "Failed to rollback transaction"
)
