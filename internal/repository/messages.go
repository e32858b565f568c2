package repository

// Caller-facing result messages shared by every Recipe implementation. The
// voice layer speaks these more or less verbatim, so they stay short and
// sayable.
const (
	MsgRecipeUpdated   = "Recipe updated successfully"
	MsgRecipeDeleted   = "Recipe deleted successfully"
	MsgRecipeNotFound  = "No recipe with that name was found"
	MsgNothingToUpdate = "No fields to update"
)
