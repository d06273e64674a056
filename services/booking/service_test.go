package booking

import (
	"context"
	"testing"
	"time"

	bookingRepo "travelgo/database/repository/booking"
	"travelgo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- in-memory fakes ----

type fakeBookingRepo struct {
	bookings map[string]*models.Booking

	// forceConflict makes every UpdateVersioned lose the version race.
	forceConflict bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByHotel(ctx context.Context, hotelID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.HotelID == hotelID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateVersioned(ctx context.Context, id string, expectedVersion int, fields map[string]interface{}) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	if r.forceConflict || b.Version != expectedVersion {
		return nil, bookingRepo.ErrVersionConflict
	}
	for k, v := range fields {
		switch k {
		case "status":
			b.Status = v.(string)
		case "refunded":
			b.Refunded = v.(bool)
		case "edit_requested":
			b.EditRequested = v.(bool)
		case "check_in":
			b.CheckIn = v.(time.Time)
		case "check_out":
			b.CheckOut = v.(time.Time)
		case "guests":
			b.Guests = v.(int)
		case "guest_name":
			b.GuestName = v.(string)
		case "guest_email":
			b.GuestEmail = v.(string)
		case "guest_phone":
			b.GuestPhone = v.(string)
		case "transaction_hash":
			b.TransactionHash = v.(string)
		case "approval_hash":
			b.ApprovalHash = v.(string)
		}
	}
	b.Version++
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) SetReconcileStatus(ctx context.Context, id, status string) error {
	if b, ok := r.bookings[id]; ok {
		b.ReconcileStatus = status
	}
	return nil
}

func (r *fakeBookingRepo) ListRecentWithTransactions(ctx context.Context, since time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TransactionHash != "" && b.CreatedAt.After(since) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListUpcomingCheckIns(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.IsConfirmed() && !b.CheckIn.Before(from) && b.CheckIn.Before(to) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeHotelRepo struct {
	hotels       map[string]*models.Hotel
	availability map[string]bool // hotelID/roomID -> last value passed
}

func newFakeHotelRepo(hotels ...*models.Hotel) *fakeHotelRepo {
	r := &fakeHotelRepo{
		hotels:       make(map[string]*models.Hotel),
		availability: make(map[string]bool),
	}
	for _, h := range hotels {
		r.hotels[h.ID] = h
	}
	return r
}

func (r *fakeHotelRepo) Create(ctx context.Context, h *models.Hotel) error {
	r.hotels[h.ID] = h
	return nil
}

func (r *fakeHotelRepo) GetByID(ctx context.Context, id string) (*models.Hotel, error) {
	return r.hotels[id], nil
}

func (r *fakeHotelRepo) List(ctx context.Context, filter models.HotelFilter) ([]models.Hotel, error) {
	return nil, nil
}

func (r *fakeHotelRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Hotel, error) {
	return nil, nil
}

func (r *fakeHotelRepo) ListFeatured(ctx context.Context) ([]models.Hotel, error) {
	return nil, nil
}

func (r *fakeHotelRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Hotel, error) {
	return r.hotels[id], nil
}

func (r *fakeHotelRepo) UpdateRoom(ctx context.Context, hotelID, roomID string, fields map[string]interface{}) (*models.Hotel, error) {
	return r.hotels[hotelID], nil
}

func (r *fakeHotelRepo) SetRoomAvailability(ctx context.Context, hotelID, roomID string, available bool) error {
	r.availability[hotelID+"/"+roomID] = available
	return nil
}

func (r *fakeHotelRepo) AddReview(ctx context.Context, hotelID string, review models.Review) error {
	return nil
}

func (r *fakeHotelRepo) SetOwner(ctx context.Context, hotelID, ownerID string) error {
	return nil
}

func (r *fakeHotelRepo) Delete(ctx context.Context, hotelID string) error {
	return nil
}

func (r *fakeHotelRepo) CountByAmenity(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}

// ---- helpers ----

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*DefaultBookingService, *fakeBookingRepo, *fakeHotelRepo) {
	hotel := &models.Hotel{
		ID:   "hotel-1",
		Name: "Harbor View",
		Rooms: []models.Room{
			{ID: "room-1", Type: "double", PricePerNight: 100, Available: true},
			{ID: "room-2", Type: "suite", PricePerNight: 250, Available: false},
		},
	}
	bRepo := newFakeBookingRepo()
	hRepo := newFakeHotelRepo(hotel)
	svc := &DefaultBookingService{
		Repo:      bRepo,
		HotelRepo: hRepo,
		Logger:    zap.NewNop(),
		Now:       func() time.Time { return testNow },
	}
	return svc, bRepo, hRepo
}

func validInput() models.BookingInput {
	return models.BookingInput{
		HotelID:    "hotel-1",
		RoomID:     "room-1",
		CheckIn:    testNow.Add(48 * time.Hour),
		CheckOut:   testNow.Add(96 * time.Hour),
		Guests:     2,
		GuestName:  "Ada Wanjiru",
		GuestEmail: "ada@example.com",
	}
}

// ---- tests ----

func TestCreateBooking_Success(t *testing.T) {
	svc, _, hRepo := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, 200.0, b.TotalPrice) // 2 nights at 100
	assert.False(t, b.EditRequested)
	assert.False(t, b.Refunded)

	// The booked room is pulled off the market.
	assert.Equal(t, false, hRepo.availability["hotel-1/room-1"])
}

func TestCreateBooking_InvalidDates(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout before checkin", testNow.Add(96 * time.Hour), testNow.Add(48 * time.Hour)},
		{"checkout equals checkin", testNow.Add(48 * time.Hour), testNow.Add(48 * time.Hour)},
		{"checkin in the past", testNow.Add(-24 * time.Hour), testNow.Add(48 * time.Hour)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			input.CheckIn = tc.checkIn
			input.CheckOut = tc.checkOut

			_, err := svc.CreateBooking(context.Background(), "user-1", input)
			require.Error(t, err)
			be, ok := err.(*BookingError)
			require.True(t, ok)
			assert.Equal(t, CodeInvalidDates, be.Code)
		})
	}
}

func TestCreateBooking_RoomUnavailable(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.RoomID = "room-2"

	_, err := svc.CreateBooking(context.Background(), "user-1", input)
	require.Error(t, err)
	be, ok := err.(*BookingError)
	require.True(t, ok)
	assert.Equal(t, CodeRoomUnavailable, be.Code)
}

func TestCreateBooking_UnknownRoom(t *testing.T) {
	svc, _, _ := newTestService()

	input := validInput()
	input.RoomID = "no-such-room"

	_, err := svc.CreateBooking(context.Background(), "user-1", input)
	require.Error(t, err)
	assert.True(t, ErrNotFound(err))
}

func TestEditBooking_AppliesOnlyAllowListedFields(t *testing.T) {
	svc, _, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	newGuests := 3
	newName := "Grace Njeri"
	updated, err := svc.EditBooking(context.Background(), b.ID, models.BookingEditInput{
		Guests:    &newGuests,
		GuestName: &newName,
	})
	require.NoError(t, err)

	assert.True(t, updated.EditRequested)
	assert.Equal(t, 3, updated.Guests)
	assert.Equal(t, "Grace Njeri", updated.GuestName)
	assert.Equal(t, b.CheckIn, updated.CheckIn) // untouched fields survive
}

func TestEditBooking_OnlyOnce(t *testing.T) {
	svc, _, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	guests := 3
	_, err = svc.EditBooking(context.Background(), b.ID, models.BookingEditInput{Guests: &guests})
	require.NoError(t, err)

	guests = 4
	_, err = svc.EditBooking(context.Background(), b.ID, models.BookingEditInput{Guests: &guests})
	require.Error(t, err)
	be, ok := err.(*BookingError)
	require.True(t, ok)
	assert.Equal(t, CodeAlreadyEdited, be.Code)
}

func TestEditBooking_RejectsStartedStay(t *testing.T) {
	svc, repo, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	// Move check-in into the past behind the service's back.
	repo.bookings[b.ID].CheckIn = testNow.Add(-time.Hour)

	guests := 3
	_, err = svc.EditBooking(context.Background(), b.ID, models.BookingEditInput{Guests: &guests})
	require.Error(t, err)
	be, ok := err.(*BookingError)
	require.True(t, ok)
	assert.Equal(t, CodeAlreadyStarted, be.Code)
}

func TestEditBooking_VersionConflict(t *testing.T) {
	svc, repo, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	repo.forceConflict = true
	guests := 3
	_, err = svc.EditBooking(context.Background(), b.ID, models.BookingEditInput{Guests: &guests})
	require.Error(t, err)
	assert.True(t, ErrConflict(err))
}

func TestEditBooking_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	guests := 3
	_, err := svc.EditBooking(context.Background(), "missing", models.BookingEditInput{Guests: &guests})
	require.Error(t, err)
	assert.True(t, ErrNotFound(err))
}

func TestCancelBooking_TransitionsAndReleasesRoom(t *testing.T) {
	svc, _, hRepo := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.False(t, cancelled.Refunded) // refund is a separate step
	assert.Equal(t, true, hRepo.availability["hotel-1/room-1"])
}

func TestCancelBooking_RejectsCancelled(t *testing.T) {
	svc, _, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), b.ID)
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), b.ID)
	require.Error(t, err)
	be, ok := err.(*BookingError)
	require.True(t, ok)
	assert.Equal(t, CodeNotConfirmed, be.Code)
}

func TestAttachTransactionAndMarkRefunded(t *testing.T) {
	svc, _, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	withTx, err := svc.AttachTransaction(context.Background(), b.ID, "0xabc", "0xdef")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", withTx.TransactionHash)
	assert.Equal(t, "0xdef", withTx.ApprovalHash)

	refunded, err := svc.MarkRefunded(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, refunded.Refunded)
}

func TestLegacyActiveStatusIsEditable(t *testing.T) {
	svc, repo, _ := newTestService()

	b, err := svc.CreateBooking(context.Background(), "user-1", validInput())
	require.NoError(t, err)
	repo.bookings[b.ID].Status = models.BookingStatusActive

	guests := 3
	updated, err := svc.EditBooking(context.Background(), b.ID, models.BookingEditInput{Guests: &guests})
	require.NoError(t, err)
	assert.True(t, updated.EditRequested)
}
