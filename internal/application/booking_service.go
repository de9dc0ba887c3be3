package application

import (
	"context"
	"fmt"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	bookingDomain "github.com/StudioSpot/service-booking/internal/domain/booking"
	studioDomain "github.com/StudioSpot/service-booking/internal/domain/studio"
	userDomain "github.com/StudioSpot/service-booking/internal/domain/user"
	"github.com/StudioSpot/service-booking/internal/events"
	"github.com/StudioSpot/service-booking/internal/kafka"
	"github.com/StudioSpot/service-booking/internal/payment"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher publishes CloudEvents to a topic. Satisfied by kafka.Producer.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event *kafka.CloudEvent) error
}

// QuoteRequest holds the inputs for a price preview.
type QuoteRequest struct {
	RoomID     uuid.UUID         `json:"room_id" binding:"required"`
	StartTime  time.Time         `json:"start_time" binding:"required"`
	EndTime    time.Time         `json:"end_time" binding:"required"`
	Selections map[uuid.UUID]int `json:"selections"`
}

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	RoomID     uuid.UUID         `json:"room_id" binding:"required"`
	StartTime  time.Time         `json:"start_time" binding:"required"`
	EndTime    time.Time         `json:"end_time" binding:"required"`
	Selections map[uuid.UUID]int `json:"selections"`
}

// CancelBookingRequest carries the optional cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID                      `json:"id"`
	UserID          uuid.UUID                      `json:"user_id"`
	StudioID        uuid.UUID                      `json:"studio_id"`
	RoomID          uuid.UUID                      `json:"room_id"`
	StartTime       time.Time                      `json:"start_time"`
	EndTime         time.Time                      `json:"end_time"`
	Status          string                         `json:"status"`
	Instruments     []bookingDomain.InstrumentLine `json:"instruments,omitempty"`
	TotalPrice      int64                          `json:"total_price"`
	Currency        string                         `json:"currency"`
	IsPaid          bool                           `json:"is_paid"`
	PaymentIntentID *string                        `json:"payment_intent_id,omitempty"`
	CancelReason    string                         `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time                     `json:"cancelled_at,omitempty"`
	Version         int64                          `json:"version"`
	CreatedAt       time.Time                      `json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

// PaymentDTO hands the provider client secret back to the payment widget.
type PaymentDTO struct {
	BookingID    uuid.UUID `json:"booking_id"`
	ClientSecret string    `json:"clientSecret"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings bookingDomain.Repository
	studios  studioDomain.Repository
	pricing  bookingDomain.PricingStrategy
	policy   *bookingDomain.CancellationPolicy
	clock    bookingDomain.Clock
	gateway  payment.Gateway
	producer Publisher
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	studios studioDomain.Repository,
	pricing bookingDomain.PricingStrategy,
	clock bookingDomain.Clock,
	gateway payment.Gateway,
	producer Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		studios:  studios,
		pricing:  pricing,
		policy:   bookingDomain.NewCancellationPolicy(clock),
		clock:    clock,
		gateway:  gateway,
		producer: producer,
		logger:   logger,
	}
}

// Quote calculates a price preview for a room booking without persisting
// anything.
func (s *BookingService) Quote(ctx context.Context, req QuoteRequest) (*bookingDomain.Quote, error) {
	room, err := s.studios.FindRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Calculate(bookingDomain.PricingParams{
		PricePerHour: room.PricePerHour,
		MinHours:     room.MinHours,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Selections:   req.Selections,
		Catalog:      catalogOf(room),
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}
	return &quote, nil
}

// CreateBooking creates a pending booking for the given musician. Everything
// is validated before the booking is persisted or any payment is involved.
func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, domain.NewValidationError("end time must be after start time")
	}
	if req.StartTime.Before(s.clock.Now()) {
		return nil, domain.NewValidationError("start time cannot be in the past")
	}

	room, err := s.studios.FindRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	lines, err := buildInstrumentLines(room, req.Selections)
	if err != nil {
		return nil, err
	}

	taken, err := s.bookings.ExistsOverlapping(ctx, room.ID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check room availability: %w", err)
	}
	if taken {
		return nil, domain.NewConflictError("room is already booked for this time")
	}

	quote, err := s.pricing.Calculate(bookingDomain.PricingParams{
		PricePerHour: room.PricePerHour,
		MinHours:     room.MinHours,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Selections:   req.Selections,
		Catalog:      catalogOf(room),
	})
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	bk, err := bookingDomain.NewBooking(
		userID,
		room.StudioID,
		room.ID,
		req.StartTime,
		req.EndTime,
		lines,
		quote.Total,
		domain.CurrencyJPY,
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	evt := events.BookingRequestedEvent{
		BookingID:  bk.ID(),
		UserID:     bk.UserID(),
		StudioID:   bk.StudioID(),
		RoomID:     bk.RoomID(),
		StartTime:  bk.StartTime(),
		EndTime:    bk.EndTime(),
		TotalPrice: bk.TotalPrice(),
		Currency:   bk.Currency(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRequested, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels the musician's booking if the cancellation policy
// allows it. Eligibility is checked before any state changes.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID uuid.UUID, reason string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsOwnedBy(userID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}

	from, to := bookingDomain.DayBounds(s.clock.Now())
	cancelledToday, err := s.bookings.CountCancelledBetween(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's cancellations: %w", err)
	}

	eligibility := s.policy.Evaluate(bk.StartTime(), cancelledToday)
	if err := eligibility.Err(); err != nil {
		return nil, err
	}

	if err := bk.Cancel(reason); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCancelledEvent{
		BookingID:   bk.ID(),
		UserID:      bk.UserID(),
		RoomID:      bk.RoomID(),
		Reason:      reason,
		CancelledAt: *bk.CancelledAt(),
		OccurredAt:  time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// PayBooking creates a payment intent for the booking and returns the client
// secret the payment widget needs. Confirmation arrives asynchronously on the
// payment events topic.
func (s *BookingService) PayBooking(ctx context.Context, bookingID, userID uuid.UUID) (*PaymentDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsOwnedBy(userID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	if bk.IsPaid() {
		return nil, domain.NewConflictError("booking is already paid")
	}
	if bk.Status() != bookingDomain.StatusPending {
		return nil, domain.NewInvalidStateError(string(bk.Status()), string(bookingDomain.StatusConfirmed))
	}

	intent, err := s.gateway.CreateBookingIntent(ctx, bk.TotalPrice(), bk.Currency(), map[string]string{
		"booking_id": bk.ID().String(),
		"user_id":    bk.UserID().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	bk.AttachPaymentIntent(intent.ID)
	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	return &PaymentDTO{BookingID: bk.ID(), ClientSecret: intent.ClientSecret}, nil
}

// ConfirmPayment marks the booking paid and confirmed once the payment
// provider reports success. Called by the payment events consumer.
func (s *BookingService) ConfirmPayment(ctx context.Context, bookingID uuid.UUID, paymentIntentID string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.MarkPaid(paymentIntentID); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingConfirmedEvent{
		BookingID:       bk.ID(),
		UserID:          bk.UserID(),
		RoomID:          bk.RoomID(),
		PaymentIntentID: paymentIntentID,
		TotalPrice:      bk.TotalPrice(),
		Currency:        bk.Currency(),
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConfirmed, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CompleteBooking finalizes a confirmed booking after the session ends.
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Complete(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCompletedEvent{
		BookingID:  bk.ID(),
		UserID:     bk.UserID(),
		RoomID:     bk.RoomID(),
		TotalPrice: bk.TotalPrice(),
		Currency:   bk.Currency(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCompleted, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking. Musicians only see their own;
// admins see everything.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsOwnedBy(requesterID) && requesterRole != string(userDomain.RoleAdmin) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetMyBookings retrieves paginated bookings for the given musician.
func (s *BookingService) GetMyBookings(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos, total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		UserID:          bk.UserID(),
		StudioID:        bk.StudioID(),
		RoomID:          bk.RoomID(),
		StartTime:       bk.StartTime(),
		EndTime:         bk.EndTime(),
		Status:          string(bk.Status()),
		Instruments:     bk.Instruments(),
		TotalPrice:      bk.TotalPrice(),
		Currency:        bk.Currency(),
		IsPaid:          bk.IsPaid(),
		PaymentIntentID: bk.PaymentIntentID(),
		CancelReason:    bk.CancelReason(),
		CancelledAt:     bk.CancelledAt(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func catalogOf(room *studioDomain.Room) []bookingDomain.CatalogInstrument {
	catalog := make([]bookingDomain.CatalogInstrument, len(room.Instruments))
	for i, inst := range room.Instruments {
		catalog[i] = bookingDomain.CatalogInstrument{ID: inst.ID, UnitPrice: inst.UnitPrice}
	}
	return catalog
}

// buildInstrumentLines resolves the selection against the room's catalog.
// Unlike the price preview, booking creation rejects ids outside the catalog
// and instruments currently marked unavailable. Lines follow catalog order so
// the stored booking is deterministic.
func buildInstrumentLines(room *studioDomain.Room, selections map[uuid.UUID]int) ([]bookingDomain.InstrumentLine, error) {
	for id, qty := range selections {
		if qty < 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid quantity for instrument %s", id))
		}
		if qty == 0 {
			continue
		}
		inst, ok := room.InstrumentByID(id)
		if !ok {
			return nil, domain.NewValidationError(fmt.Sprintf("instrument %s is not in the room's catalog", id))
		}
		if !inst.Available {
			return nil, domain.NewValidationError(fmt.Sprintf("instrument %s is not available", inst.Name))
		}
	}

	var lines []bookingDomain.InstrumentLine
	for _, inst := range room.Instruments {
		qty := selections[inst.ID]
		if qty <= 0 {
			continue
		}
		lines = append(lines, bookingDomain.InstrumentLine{
			InstrumentID: inst.ID,
			Name:         inst.Name,
			UnitPrice:    inst.UnitPrice,
			Quantity:     qty,
		})
	}
	return lines, nil
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
