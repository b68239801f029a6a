package runtime

import (
	"strconv"
	"strings"

	"github.com/aretw0/palisade/pkg/domain"
)

// ResolvePlaceholders substitutes the item tokens ($itemPath$,
// $itemLanguage$, $itemVersion$) in author-configured definition text.
// Unrecognized tokens pass through untouched.
func ResolvePlaceholders(text string, item domain.Item) string {
	if text == "" {
		return ""
	}
	return strings.NewReplacer(
		"$itemPath$", item.Path,
		"$itemLanguage$", item.Language,
		"$itemVersion$", strconv.Itoa(item.Version),
	).Replace(text)
}
