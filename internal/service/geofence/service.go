package geofence

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/luisfsill/Ponto-Digital/internal/domain/geofence"
)

type GeofenceServiceImpl struct {
	geofenceRepo geofence.GeofenceRepository
	publicURL    string
}

func NewGeofenceService(geofenceRepo geofence.GeofenceRepository, publicURL string) geofence.GeofenceService {
	return &GeofenceServiceImpl{
		geofenceRepo: geofenceRepo,
		publicURL:    strings.TrimRight(publicURL, "/"),
	}
}

func mapGeofenceToResponse(g geofence.Geofence) geofence.GeofenceResponse {
	return geofence.GeofenceResponse{
		ID:           g.ID,
		Name:         g.Name,
		Latitude:     g.Latitude,
		Longitude:    g.Longitude,
		RadiusMeters: g.RadiusMeters,
		Active:       g.Active,
		CreatedAt:    g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    g.UpdatedAt.Format(time.RFC3339),
	}
}

// List implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) List(ctx context.Context) ([]geofence.GeofenceResponse, error) {
	fences, err := s.geofenceRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]geofence.GeofenceResponse, 0, len(fences))
	for _, g := range fences {
		responses = append(responses, mapGeofenceToResponse(g))
	}

	return responses, nil
}

// Get implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) Get(ctx context.Context, id string) (geofence.GeofenceResponse, error) {
	g, err := s.geofenceRepo.GetByID(ctx, id)
	if err != nil {
		return geofence.GeofenceResponse{}, err
	}
	return mapGeofenceToResponse(g), nil
}

// Create implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) Create(ctx context.Context, req geofence.CreateGeofenceRequest) (geofence.GeofenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	created, err := s.geofenceRepo.Create(ctx, geofence.Geofence{
		Name:         strings.TrimSpace(req.Name),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		Active:       true,
	})
	if err != nil {
		return geofence.GeofenceResponse{}, err
	}

	slog.Info("geofence created", "geofence_id", created.ID, "radius_meters", created.RadiusMeters)

	return mapGeofenceToResponse(created), nil
}

// Update implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) Update(ctx context.Context, req geofence.UpdateGeofenceRequest) (geofence.GeofenceResponse, error) {
	if err := req.Validate(); err != nil {
		return geofence.GeofenceResponse{}, err
	}

	updated, err := s.geofenceRepo.Update(ctx, req)
	if err != nil {
		return geofence.GeofenceResponse{}, err
	}

	return mapGeofenceToResponse(updated), nil
}

// SetActive implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) SetActive(ctx context.Context, req geofence.SetActiveRequest) (geofence.GeofenceResponse, error) {
	updated, err := s.geofenceRepo.SetActive(ctx, req.ID, req.Active)
	if err != nil {
		return geofence.GeofenceResponse{}, err
	}

	slog.Info("geofence toggled", "geofence_id", updated.ID, "active", updated.Active)

	return mapGeofenceToResponse(updated), nil
}

// Delete implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.geofenceRepo.Delete(ctx, id)
}

// CheckInURL implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) CheckInURL(ctx context.Context, id string) (geofence.CheckInURLResponse, error) {
	g, err := s.geofenceRepo.GetByID(ctx, id)
	if err != nil {
		return geofence.CheckInURLResponse{}, err
	}

	return geofence.CheckInURLResponse{
		GeofenceID: g.ID,
		Name:       g.Name,
		URL:        fmt.Sprintf("%s/ponto?geofenceId=%s", s.publicURL, url.QueryEscape(g.ID)),
	}, nil
}

// Match implements geofence.GeofenceService.
func (s *GeofenceServiceImpl) Match(ctx context.Context, req geofence.MatchRequest) (geofence.Geofence, error) {
	fences, err := s.geofenceRepo.ListActiveByCreation(ctx)
	if err != nil {
		return geofence.Geofence{}, fmt.Errorf("failed to load geofences: %w", err)
	}

	if req.TargetID != "" {
		found := false
		for _, g := range fences {
			if g.ID == req.TargetID {
				found = true
				break
			}
		}
		if !found {
			return geofence.Geofence{}, geofence.ErrGeofenceNotFound
		}
	}

	matched, ok := geofence.FindMatching(req.Point, fences, req.TargetID)
	if !ok {
		if req.TargetID != "" {
			return geofence.Geofence{}, geofence.ErrOutsideTargetGeofence
		}
		return geofence.Geofence{}, geofence.ErrOutsideAllowedArea
	}

	return matched, nil
}
