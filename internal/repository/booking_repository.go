package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	bookingDomain "github.com/StudioSpot/service-booking/internal/domain/booking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	StudioID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	RoomID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	StartTime       time.Time       `gorm:"not null;index"`
	EndTime         time.Time       `gorm:"not null"`
	Status          string          `gorm:"not null;size:20;index"`
	Instruments     json.RawMessage `gorm:"type:jsonb"`
	TotalPrice      int64           `gorm:"not null"`
	Currency        string          `gorm:"not null;size:3;default:'JPY'"`
	IsPaid          bool            `gorm:"not null;default:false"`
	PaymentIntentID *string         `gorm:"size:64"`
	CancelReason    string          `gorm:"size:500"`
	CancelledAt     *time.Time      `gorm:""`
	Version         int64           `gorm:"not null;default:1"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByUserID retrieves bookings for a specific user with pagination,
// newest first.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find user bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// CountCancelledBetween counts the user's bookings cancelled in [from, to),
// matched on their last update time.
func (r *GormBookingRepository) CountCancelledBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("user_id = ? AND status = ? AND updated_at >= ? AND updated_at < ?",
			userID, string(bookingDomain.StatusCancelled), from, to).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cancelled bookings: %w", err)
	}
	return int(count), nil
}

// ExistsOverlapping reports whether the room already has a non-cancelled
// booking overlapping [start, end).
func (r *GormBookingRepository) ExistsOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("room_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			roomID,
			[]string{string(bookingDomain.StatusPending), string(bookingDomain.StatusConfirmed)},
			end, start).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	return count > 0, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	// Only update if the stored version matches the version the caller read
	// (IncrementVersion has already bumped the in-memory copy).
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":            model.Status,
			"instruments":       model.Instruments,
			"total_price":       model.TotalPrice,
			"is_paid":           model.IsPaid,
			"payment_intent_id": model.PaymentIntentID,
			"cancel_reason":     model.CancelReason,
			"cancelled_at":      model.CancelledAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	instruments, err := json.Marshal(bk.Instruments())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal instrument lines: %w", err)
	}

	return &BookingModel{
		ID:              bk.ID(),
		UserID:          bk.UserID(),
		StudioID:        bk.StudioID(),
		RoomID:          bk.RoomID(),
		StartTime:       bk.StartTime(),
		EndTime:         bk.EndTime(),
		Status:          string(bk.Status()),
		Instruments:     instruments,
		TotalPrice:      bk.TotalPrice(),
		Currency:        bk.Currency(),
		IsPaid:          bk.IsPaid(),
		PaymentIntentID: bk.PaymentIntentID(),
		CancelReason:    bk.CancelReason(),
		CancelledAt:     bk.CancelledAt(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var instruments []bookingDomain.InstrumentLine
	if len(m.Instruments) > 0 {
		if err := json.Unmarshal(m.Instruments, &instruments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal instrument lines: %w", err)
		}
	}

	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.Reconstruct(
		m.ID, m.UserID, m.StudioID, m.RoomID,
		m.StartTime, m.EndTime,
		status,
		instruments,
		m.TotalPrice,
		m.Currency,
		m.IsPaid,
		m.PaymentIntentID,
		m.CancelReason,
		m.CancelledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}
