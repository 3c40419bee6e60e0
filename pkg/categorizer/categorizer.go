package categorizer

import "context"

// Category is one label of the closed classification set.
type Category string

const (
	Politics   Category = "Politics"
	Sports     Category = "Sports"
	Technology Category = "Technology"
	Other      Category = "Other"

	// FailedToClassify is returned when the model output is not a known category.
	FailedToClassify Category = "Failed to classify."
)

var categories = [...]Category{Politics, Sports, Technology, Other}

// Categories returns the fixed category set in prompt order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// ContentCategorizer categorizes text into one of Categories or FailedToClassify.
type ContentCategorizer interface {
	Categorize(ctx context.Context, text string) (Category, error)
}
