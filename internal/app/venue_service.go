package app

import (
	"context"

	"github.com/stagepass/stagepass/internal/domain"
)

type VenueRepository interface {
	CreateVenue(ctx context.Context, venue domain.Venue) error
	GetVenue(ctx context.Context, id string) (domain.Venue, error)
}

type VenueService struct {
	repo VenueRepository
}

func NewVenueService(repo VenueRepository) *VenueService {
	return &VenueService{repo: repo}
}

type CreateVenueInput struct {
	Name  string
	Seats []string
}

func (s *VenueService) CreateVenue(ctx context.Context, in CreateVenueInput) (domain.Venue, error) {
	if in.Name == "" {
		return domain.Venue{}, domain.ErrVenueNameRequired
	}
	if len(in.Seats) == 0 {
		return domain.Venue{}, domain.ErrSeatsRequired
	}
	seen := make(map[string]struct{}, len(in.Seats))
	for _, seat := range in.Seats {
		if _, dup := seen[seat]; dup {
			return domain.Venue{}, domain.ErrDuplicateSeat
		}
		seen[seat] = struct{}{}
	}

	venue := domain.Venue{
		ID:    newID(),
		Name:  in.Name,
		Seats: append([]string(nil), in.Seats...),
	}

	if err := s.repo.CreateVenue(ctx, venue); err != nil {
		return domain.Venue{}, err
	}
	return venue, nil
}

func (s *VenueService) GetVenue(ctx context.Context, id string) (domain.Venue, error) {
	if id == "" {
		return domain.Venue{}, domain.ErrInvalidID
	}
	return s.repo.GetVenue(ctx, id)
}
