package service

import (
	"context"

	"cloverpass/internal/model"
	"cloverpass/internal/repository"

	"go.uber.org/zap"
)

// ProfileService resolves an authenticated identity to its role-bearing
// profile.
type ProfileService struct {
	repo repository.IProfileRepository
	log  *zap.SugaredLogger
}

func NewProfileService(repo repository.IProfileRepository, log *zap.SugaredLogger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

// Resolve fetches the profile for a uid. A missing document and a read error
// both resolve to (nil, nil) for the caller, the identity is then treated as
// unprovisioned, but the two cases are logged distinctly. A returned profile
// always has a non-nil role list.
func (s *ProfileService) Resolve(ctx context.Context, uid string) (*model.Profile, error) {
	p, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		s.log.Errorw("profile read failed, treating caller as unprovisioned", "uid", uid, "error", err)
		return nil, nil
	}
	if p == nil {
		s.log.Infow("no profile for identity", "uid", uid)
		return nil, nil
	}
	p.Normalize()
	return p, nil
}

// ResolveStrict is like Resolve but surfaces read errors to the caller.
// Privileged endpoints use it so a backend failure is a 500, not a 401.
func (s *ProfileService) ResolveStrict(ctx context.Context, uid string) (*model.Profile, error) {
	p, err := s.repo.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	p.Normalize()
	return p, nil
}
