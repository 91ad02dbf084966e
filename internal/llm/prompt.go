package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/picsort/internal/model"
)

// SystemPrompt frames the model as an image sorter.
const SystemPrompt = "You are an image sorting assistant. You look at the given image and classify it into one of the given categories. The category that fits the best will be your choice."

// BuildPrompt renders the user prompt listing every category and its
// description.
func BuildPrompt(categories []model.Category, mode Mode) string {
	var sb strings.Builder

	sb.WriteString("Given the following categories:\n")
	for _, cat := range categories {
		fmt.Fprintf(&sb, "Category: %s, Description: %s\n", cat.Name, cat.Description)
	}
	sb.WriteString("\nDetermine which category the following image belongs to.")

	switch mode {
	case ModeText:
		sb.WriteString(" Respond with the category name only, exactly as written above, and nothing else.")
	case ModeStructured:
		sb.WriteString(" Pick the category from the list and explain your choice in one or two sentences.")
	}

	return sb.String()
}
