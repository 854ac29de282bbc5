// Package slugify derives URL slugs for user walls.
package slugify

import (
	"fmt"

	"github.com/gosimple/slug"
)

// NameAndID builds the canonical "name id" slug, e.g. "jane-doe-42".
// Embedding the ID keeps slugs unique even for identical names.
func NameAndID(name string, id uint) string {
	return slug.Make(fmt.Sprintf("%s %d", name, id))
}
