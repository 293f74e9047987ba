package record

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/luisfsill/Ponto-Digital/internal/domain/geofence"
	"github.com/luisfsill/Ponto-Digital/internal/domain/record"
	"github.com/luisfsill/Ponto-Digital/internal/domain/user"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/csvio"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/geo"
	"github.com/luisfsill/Ponto-Digital/internal/pkg/sse"
)

// EventPublisher pushes live updates to the admin dashboard.
type EventPublisher interface {
	Publish(topic string, event sse.Event)
}

type RecordServiceImpl struct {
	recordRepo      record.RecordRepository
	userRepo        user.UserRepository
	userService     user.UserService
	geofenceService geofence.GeofenceService
	publisher       EventPublisher
	location        *time.Location
	now             func() time.Time
}

func NewRecordService(
	recordRepo record.RecordRepository,
	userRepo user.UserRepository,
	userService user.UserService,
	geofenceService geofence.GeofenceService,
	publisher EventPublisher,
	location *time.Location,
) record.RecordService {
	return &RecordServiceImpl{
		recordRepo:      recordRepo,
		userRepo:        userRepo,
		userService:     userService,
		geofenceService: geofenceService,
		publisher:       publisher,
		location:        location,
		now:             time.Now,
	}
}

func mapRecordToResponse(r record.Record, loc *time.Location) record.RecordResponse {
	return record.RecordResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		DeviceID:     r.DeviceID,
		Timestamp:    r.Timestamp.In(loc).Format(time.RFC3339),
		GeofenceID:   r.GeofenceID,
		GeofenceName: r.GeofenceName,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Accuracy:     r.Accuracy,
		IP:           r.IP,
		ImportedType: r.ImportedType,
	}
}

func newRecordID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate record id: %w", err)
	}
	return id.String(), nil
}

// ClockIn implements record.RecordService.
func (s *RecordServiceImpl) ClockIn(ctx context.Context, req record.ClockInRequest) (record.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return record.ClockInResponse{}, err
	}

	employee, err := s.userService.ResolveByDevice(ctx, req.DeviceID)
	if err != nil {
		if errors.Is(err, user.ErrDeviceNotRecognized) {
			slog.Warn("clock-in from unknown device", "device_id", req.DeviceID, "ip", req.IP)
		}
		return record.ClockInResponse{}, err
	}

	matchReq := geofence.MatchRequest{Point: geo.NewPoint(*req.Latitude, *req.Longitude)}
	if req.GeofenceID != nil {
		matchReq.TargetID = *req.GeofenceID
	}

	fence, err := s.geofenceService.Match(ctx, matchReq)
	if err != nil {
		slog.Info("clock-in rejected",
			"user_id", employee.ID,
			"geofence_id", matchReq.TargetID,
			"accuracy", req.Accuracy,
			"error", err,
		)
		return record.ClockInResponse{}, err
	}

	id, err := newRecordID()
	if err != nil {
		return record.ClockInResponse{}, err
	}

	rec := record.Record{
		ID:         id,
		UserID:     employee.ID,
		DeviceID:   req.DeviceID,
		Timestamp:  s.now(),
		GeofenceID: &fence.ID,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Accuracy:   req.Accuracy,
	}
	if req.IP != "" {
		rec.IP = &req.IP
	}

	created, err := s.recordRepo.Create(ctx, rec)
	if err != nil {
		return record.ClockInResponse{}, fmt.Errorf("failed to save record: %w", err)
	}
	created.UserName = &employee.Name
	created.GeofenceName = &fence.Name

	slog.Info("clock-in registered", "record_id", created.ID, "user_id", employee.ID, "geofence_id", fence.ID)

	s.publisher.Publish(sse.TopicAdmins, sse.Event{
		Event: "record.created",
		Data:  mapRecordToResponse(created, s.location),
	})

	return record.ClockInResponse{
		Message:   fmt.Sprintf("Ponto registrado em %s", fence.Name),
		RecordID:  created.ID,
		User:      record.ClockInUser{ID: employee.ID, Name: employee.Name},
		Geofence:  record.ClockInGeofence{ID: fence.ID, Name: fence.Name},
		Timestamp: created.Timestamp.In(s.location).Format(time.RFC3339),
	}, nil
}

// List implements record.RecordService.
func (s *RecordServiceImpl) List(ctx context.Context, filter record.FilterRequest) ([]record.RecordResponse, error) {
	q, err := filter.ToQuery(s.location)
	if err != nil {
		return nil, err
	}

	recs, err := s.recordRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	responses := make([]record.RecordResponse, 0, len(recs))
	for _, r := range recs {
		responses = append(responses, mapRecordToResponse(r, s.location))
	}

	return responses, nil
}

// Delete implements record.RecordService.
func (s *RecordServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.recordRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publisher.Publish(sse.TopicAdmins, sse.Event{Event: "record.deleted", Data: map[string]interface{}{"ids": []string{id}}})
	return nil
}

// BulkDelete implements record.RecordService.
func (s *RecordServiceImpl) BulkDelete(ctx context.Context, req record.BulkDeleteRequest) (record.BulkDeleteResponse, error) {
	if err := req.Validate(); err != nil {
		return record.BulkDeleteResponse{}, err
	}

	deleted, err := s.recordRepo.BulkDelete(ctx, req.IDs)
	if err != nil {
		return record.BulkDeleteResponse{}, err
	}
	if deleted == 0 {
		return record.BulkDeleteResponse{}, record.ErrRecordNotFound
	}

	slog.Info("records deleted", "requested", len(req.IDs), "deleted", deleted)
	s.publisher.Publish(sse.TopicAdmins, sse.Event{Event: "record.deleted", Data: map[string]interface{}{"ids": req.IDs}})

	return record.BulkDeleteResponse{Deleted: deleted}, nil
}

// Import implements record.RecordService.
func (s *RecordServiceImpl) Import(ctx context.Context, r io.Reader) (record.ImportResponse, error) {
	rows, rowErrs, err := csvio.ReadRecords(r, s.location, record.DefaultImportDeviceID)
	if err != nil {
		if errors.Is(err, csvio.ErrEmptyFile) {
			return record.ImportResponse{}, record.ErrEmptyImport
		}
		return record.ImportResponse{}, fmt.Errorf("failed to read import file: %w", err)
	}

	importErrs := make([]record.ImportError, 0, len(rowErrs))
	for _, e := range rowErrs {
		importErrs = append(importErrs, record.ImportError{Line: e.Line, Message: e.Message})
	}

	// matches caches how many users carry each name; only exactly one is usable.
	matches := make(map[string][]user.User)
	recs := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		found, ok := matches[row.UserName]
		if !ok {
			found, err = s.userRepo.ListByName(ctx, row.UserName)
			if err != nil {
				return record.ImportResponse{}, fmt.Errorf("failed to look up user %q: %w", row.UserName, err)
			}
			matches[row.UserName] = found
		}
		switch len(found) {
		case 0:
			importErrs = append(importErrs, record.ImportError{
				Line:    row.Line,
				Message: fmt.Sprintf("user %q not found", row.UserName),
			})
			continue
		case 1:
		default:
			importErrs = append(importErrs, record.ImportError{
				Line:    row.Line,
				Message: fmt.Sprintf("user name %q is ambiguous: %d users share it", row.UserName, len(found)),
			})
			continue
		}
		userID := found[0].ID

		id, err := newRecordID()
		if err != nil {
			return record.ImportResponse{}, err
		}

		recs = append(recs, record.Record{
			ID:           id,
			UserID:       userID,
			DeviceID:     row.DeviceID,
			Timestamp:    row.Timestamp,
			Latitude:     row.Latitude,
			Longitude:    row.Longitude,
			ImportedType: row.Type,
		})
	}

	if len(recs) > 0 {
		if err := s.recordRepo.CreateMany(ctx, recs); err != nil {
			return record.ImportResponse{}, fmt.Errorf("failed to save imported records: %w", err)
		}
	}

	sort.SliceStable(importErrs, func(i, j int) bool { return importErrs[i].Line < importErrs[j].Line })

	slog.Info("records imported", "imported", len(recs), "failed", len(importErrs))

	return record.ImportResponse{
		Imported: len(recs),
		Failed:   len(importErrs),
		Errors:   importErrs,
	}, nil
}

// Export implements record.RecordService.
func (s *RecordServiceImpl) Export(ctx context.Context, filter record.FilterRequest, w io.Writer) error {
	q, err := filter.ToQuery(s.location)
	if err != nil {
		return err
	}

	recs, err := s.recordRepo.List(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	rows := make([]csvio.RecordRow, 0, len(recs))
	for _, r := range recs {
		var name string
		if r.UserName != nil {
			name = *r.UserName
		}
		rows = append(rows, csvio.RecordRow{
			UserName:  name,
			Timestamp: r.Timestamp,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			DeviceID:  r.DeviceID,
		})
	}

	return csvio.WriteRecords(w, rows, s.location)
}
