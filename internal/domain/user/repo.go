package user

import "context"

type Repository interface {
	// GetByID returns nil, nil when the user has no stored profile yet.
	GetByID(ctx context.Context, id string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}
