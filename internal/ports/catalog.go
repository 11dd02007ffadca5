package ports

import (
	"context"

	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
)

// ImageProbe is the outcome of checking an image URL.
type ImageProbe struct {
	URL string
	// Exists is true when the HEAD request returned 200.
	Exists bool
	// HeadStatus is the status code of the HEAD request.
	HeadStatus int
	// GetStatus is the status code of the follow-up GET, zero when not issued.
	GetStatus int
}

// CharacterSource defines access to the character catalog.
type CharacterSource interface {
	// Status issues a GET for path, relative to the catalog root, and returns the status code.
	Status(ctx context.Context, path string) (int, error)
	ListCharacters(ctx context.Context) ([]domain.Character, error)
	GetCharacter(ctx context.Context, id int) (domain.Character, error)
	// CreateCharacter POSTs c as JSON, or an empty body when c is nil.
	CreateCharacter(ctx context.Context, c *domain.Character) (int, error)
	ProbeURL(ctx context.Context, url string) (ImageProbe, error)
}
