package service

import (
	"context"
	"errors"

	"github.com/venuehub/backend/internal/db"
	"github.com/venuehub/backend/internal/model"
)

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrEventNotFound = errors.New("event not found")
)

type VenueService struct {
	repo *db.Postgres
}

func NewVenueService(repo *db.Postgres) *VenueService {
	return &VenueService{repo: repo}
}

func (s *VenueService) GetVenueList(ctx context.Context) ([]model.Venue, error) {
	return s.repo.GetVenueList(ctx)
}

func (s *VenueService) GetVenue(ctx context.Context, id int64) (*model.Venue, error) {
	venue, err := s.repo.GetVenueByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (s *VenueService) CreateVenue(ctx context.Context, req model.VenueRequest) (*model.Venue, error) {
	return s.repo.CreateVenue(ctx, req)
}

func (s *VenueService) UpdateVenue(ctx context.Context, id int64, req model.VenueRequest) (*model.Venue, error) {
	venue, err := s.repo.UpdateVenue(ctx, id, req)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}

func (s *VenueService) DeleteVenue(ctx context.Context, id int64) error {
	deleted, err := s.repo.DeleteVenue(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVenueNotFound
	}
	return nil
}
