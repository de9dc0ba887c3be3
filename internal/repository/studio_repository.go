package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	studioDomain "github.com/StudioSpot/service-booking/internal/domain/studio"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudioModel is the GORM model for the studios table.
type StudioModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null;size:200"`
	Description string    `gorm:"size:2000"`
	Address     string    `gorm:"size:500"`
	City        string    `gorm:"not null;size:100;index"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`

	Rooms []RoomModel `gorm:"foreignKey:StudioID"`
}

// TableName returns the table name for the GORM model.
func (StudioModel) TableName() string {
	return "studios"
}

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	StudioID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"not null;size:200"`
	PricePerHour int64     `gorm:"not null"`
	MinHours     float64   `gorm:"not null;default:1"`

	Instruments []InstrumentModel `gorm:"foreignKey:RoomID"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// InstrumentModel is the GORM model for the instruments table.
type InstrumentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null;size:200"`
	UnitPrice int64     `gorm:"not null"`
	Available bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for the GORM model.
func (InstrumentModel) TableName() string {
	return "instruments"
}

// GormStudioRepository is the GORM-based implementation of studio.Repository.
type GormStudioRepository struct {
	db *gorm.DB
}

// NewGormStudioRepository creates a new GormStudioRepository.
func NewGormStudioRepository(db *gorm.DB) *GormStudioRepository {
	return &GormStudioRepository{db: db}
}

// FindByID retrieves a studio with its rooms and their catalogs.
func (r *GormStudioRepository) FindByID(ctx context.Context, id uuid.UUID) (*studioDomain.Studio, error) {
	var model StudioModel
	if err := r.db.WithContext(ctx).
		Preload("Rooms.Instruments").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Studio", id.String())
		}
		return nil, fmt.Errorf("failed to find studio by ID: %w", err)
	}
	return toDomainStudio(&model), nil
}

// FindRoomByID retrieves a room with its instrument catalog.
func (r *GormStudioRepository) FindRoomByID(ctx context.Context, id uuid.UUID) (*studioDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).
		Preload("Instruments").
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	room := toDomainRoom(&model)
	return &room, nil
}

// List retrieves studios with pagination, optionally filtered by city.
func (r *GormStudioRepository) List(ctx context.Context, city string, page, limit int) ([]*studioDomain.Studio, int64, error) {
	query := r.db.WithContext(ctx).Model(&StudioModel{})
	if city != "" {
		query = query.Where("city = ?", city)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count studios: %w", err)
	}

	var models []StudioModel
	offset := (page - 1) * limit
	if err := query.
		Preload("Rooms.Instruments").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list studios: %w", err)
	}

	studios := make([]*studioDomain.Studio, len(models))
	for i, m := range models {
		studios[i] = toDomainStudio(&m)
	}
	return studios, total, nil
}

// Save persists a new studio and any rooms attached to it.
func (r *GormStudioRepository) Save(ctx context.Context, s *studioDomain.Studio) error {
	model := toStudioModel(s)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save studio: %w", err)
	}
	return nil
}

// SaveRoom persists a new room for an existing studio.
func (r *GormStudioRepository) SaveRoom(ctx context.Context, room studioDomain.Room) error {
	model := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// SaveInstrument persists a new catalog instrument for an existing room.
func (r *GormStudioRepository) SaveInstrument(ctx context.Context, inst studioDomain.Instrument) error {
	model := InstrumentModel{
		ID:        inst.ID,
		RoomID:    inst.RoomID,
		Name:      inst.Name,
		UnitPrice: inst.UnitPrice,
		Available: inst.Available,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save instrument: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toStudioModel(s *studioDomain.Studio) *StudioModel {
	rooms := make([]RoomModel, len(s.Rooms()))
	for i, room := range s.Rooms() {
		rooms[i] = toRoomModel(room)
	}
	return &StudioModel{
		ID:          s.ID(),
		OwnerID:     s.OwnerID(),
		Name:        s.Name(),
		Description: s.Description(),
		Address:     s.Address(),
		City:        s.City(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
		Rooms:       rooms,
	}
}

func toRoomModel(room studioDomain.Room) RoomModel {
	instruments := make([]InstrumentModel, len(room.Instruments))
	for i, inst := range room.Instruments {
		instruments[i] = InstrumentModel{
			ID:        inst.ID,
			RoomID:    inst.RoomID,
			Name:      inst.Name,
			UnitPrice: inst.UnitPrice,
			Available: inst.Available,
		}
	}
	return RoomModel{
		ID:           room.ID,
		StudioID:     room.StudioID,
		Name:         room.Name,
		PricePerHour: room.PricePerHour,
		MinHours:     room.MinHours,
		Instruments:  instruments,
	}
}

func toDomainStudio(m *StudioModel) *studioDomain.Studio {
	rooms := make([]studioDomain.Room, len(m.Rooms))
	for i := range m.Rooms {
		rooms[i] = toDomainRoom(&m.Rooms[i])
	}
	return studioDomain.ReconstructStudio(
		m.ID, m.OwnerID,
		m.Name, m.Description, m.Address, m.City,
		rooms,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toDomainRoom(m *RoomModel) studioDomain.Room {
	instruments := make([]studioDomain.Instrument, len(m.Instruments))
	for i, inst := range m.Instruments {
		instruments[i] = studioDomain.Instrument{
			ID:        inst.ID,
			RoomID:    inst.RoomID,
			Name:      inst.Name,
			UnitPrice: inst.UnitPrice,
			Available: inst.Available,
		}
	}
	return studioDomain.Room{
		ID:           m.ID,
		StudioID:     m.StudioID,
		Name:         m.Name,
		PricePerHour: m.PricePerHour,
		MinHours:     m.MinHours,
		Instruments:  instruments,
	}
}
