package application

import (
	"context"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	studioDomain "github.com/StudioSpot/service-booking/internal/domain/studio"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateStudioRequest holds the data needed to list a new studio.
type CreateStudioRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city" binding:"required"`
}

// CreateRoomRequest holds the data needed to add a room to a studio.
type CreateRoomRequest struct {
	Name         string  `json:"name" binding:"required"`
	PricePerHour int64   `json:"price_per_hour"`
	MinHours     float64 `json:"min_hours"`
}

// CreateInstrumentRequest holds the data needed to add a catalog instrument
// to a room.
type CreateInstrumentRequest struct {
	Name      string `json:"name" binding:"required"`
	UnitPrice int64  `json:"unit_price"`
	Available *bool  `json:"available"`
}

// StudioDTO is the response representation of a studio listing.
type StudioDTO struct {
	ID          uuid.UUID           `json:"id"`
	OwnerID     uuid.UUID           `json:"owner_id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Address     string              `json:"address,omitempty"`
	City        string              `json:"city"`
	Rooms       []studioDomain.Room `json:"rooms,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// StudioService is the application service for studio listings, rooms and
// instrument catalogs.
type StudioService struct {
	studios studioDomain.Repository
	logger  *zap.Logger
}

// NewStudioService creates a new StudioService.
func NewStudioService(studios studioDomain.Repository, logger *zap.Logger) *StudioService {
	return &StudioService{studios: studios, logger: logger}
}

// CreateStudio lists a new studio owned by the given user.
func (s *StudioService) CreateStudio(ctx context.Context, ownerID uuid.UUID, req CreateStudioRequest) (*StudioDTO, error) {
	st, err := studioDomain.NewStudio(ownerID, req.Name, req.Description, req.Address, req.City)
	if err != nil {
		return nil, err
	}

	if err := s.studios.Save(ctx, st); err != nil {
		return nil, err
	}

	result := toStudioDTO(st)
	return &result, nil
}

// AddRoom adds a bookable room to the owner's studio.
func (s *StudioService) AddRoom(ctx context.Context, ownerID, studioID uuid.UUID, req CreateRoomRequest) (*studioDomain.Room, error) {
	st, err := s.studios.FindByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	if !st.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("studio does not belong to this user")
	}

	room, err := st.AddRoom(req.Name, req.PricePerHour, req.MinHours)
	if err != nil {
		return nil, err
	}

	if err := s.studios.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return &room, nil
}

// AddInstrument adds a rentable instrument to the catalog of the owner's room.
func (s *StudioService) AddInstrument(ctx context.Context, ownerID, roomID uuid.UUID, req CreateInstrumentRequest) (*studioDomain.Instrument, error) {
	room, err := s.studios.FindRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	st, err := s.studios.FindByID(ctx, room.StudioID)
	if err != nil {
		return nil, err
	}
	if !st.IsOwnedBy(ownerID) {
		return nil, domain.NewForbiddenError("studio does not belong to this user")
	}

	if req.Name == "" {
		return nil, domain.NewValidationError("instrument name is required")
	}
	if req.UnitPrice < 0 {
		return nil, domain.NewValidationError("unit price cannot be negative")
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	inst := studioDomain.Instrument{
		ID:        uuid.New(),
		RoomID:    room.ID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Available: available,
	}
	if err := s.studios.SaveInstrument(ctx, inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// ListStudios retrieves paginated studio listings, optionally filtered by city.
func (s *StudioService) ListStudios(ctx context.Context, city string, page, limit int) (*domain.PaginatedResult[StudioDTO], error) {
	studios, total, err := s.studios.List(ctx, city, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]StudioDTO, len(studios))
	for i, st := range studios {
		dtos[i] = toStudioDTO(st)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetStudio retrieves a single studio with its rooms.
func (s *StudioService) GetStudio(ctx context.Context, studioID uuid.UUID) (*StudioDTO, error) {
	st, err := s.studios.FindByID(ctx, studioID)
	if err != nil {
		return nil, err
	}
	result := toStudioDTO(st)
	return &result, nil
}

// GetRoom retrieves a room together with its instrument catalog.
func (s *StudioService) GetRoom(ctx context.Context, roomID uuid.UUID) (*studioDomain.Room, error) {
	return s.studios.FindRoomByID(ctx, roomID)
}

func toStudioDTO(st *studioDomain.Studio) StudioDTO {
	return StudioDTO{
		ID:          st.ID(),
		OwnerID:     st.OwnerID(),
		Name:        st.Name(),
		Description: st.Description(),
		Address:     st.Address(),
		City:        st.City(),
		Rooms:       st.Rooms(),
		CreatedAt:   st.CreatedAt(),
		UpdatedAt:   st.UpdatedAt(),
	}
}
