package driven

// PromptStore provides access to generation prompt templates.
// Implementations may load prompts from user-editable files or embed
// defaults in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names used by the insight stages.
const (
	// PromptInsightsSystem frames the notable-themes extraction.
	PromptInsightsSystem = "insights_system"

	// PromptInsightsUser carries the subject and snippet context.
	// Expects %s (subject) and %s (snippets JSON) placeholders.
	PromptInsightsUser = "insights_user"

	// PromptPlanSystem frames conversation-plan generation.
	PromptPlanSystem = "plan_system"

	// PromptPlanUser carries subject, prior insights, and snippets.
	// Expects %s (subject), %s (insights JSON), %s (snippets JSON).
	PromptPlanUser = "plan_user"

	// PromptCommentsSystem frames the audience-sentiment analysis.
	PromptCommentsSystem = "comments_system"

	// PromptCommentsUser carries the compacted comment sample.
	// Expects a %s (comments JSON) placeholder.
	PromptCommentsUser = "comments_user"
)
