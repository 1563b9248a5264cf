package request_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/booking"
	declinedRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/declined"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CounselingService/internal/service/availability"
	"github.com/m04kA/SMC-CounselingService/internal/service/bookings"
	"github.com/m04kA/SMC-CounselingService/internal/service/declined"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CounselingService/pkg/txmanager"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

// 2024-05-31 18:00 UTC
var now = time.Date(2024, 5, 31, 18, 0, 0, 0, time.UTC)

type fixture struct {
	uc           *UseCase
	availability *availability.Service
	declined     *declined.Service
}

func newFixture(t *testing.T, advanceDays int) *fixture {
	t.Helper()

	db := storagetest.NewSQLite(t)
	log := logger.NewNop()
	tx := txmanager.NewTransactionManager(db)

	availRepo := availabilityRepo.NewRepository(db, sqlbuilder.SQLite)
	bookRepo := bookingRepo.NewRepository(db, sqlbuilder.SQLite)

	declinedSvc := declined.NewService(declinedRepo.NewRepository(db, sqlbuilder.SQLite), nil, log)
	availabilitySvc := availability.NewService(availRepo, bookRepo, tx, log)
	bookingSvc := bookings.NewService(bookRepo, availRepo, declinedSvc, tx, nil, log)

	uc := NewUseCase(bookingSvc, domain.NewBookingWindow(time.UTC, advanceDays, 60), log)
	uc.timeProvider = storagetest.NewStepClock(now, 0)

	return &fixture{uc: uc, availability: availabilitySvc, declined: declinedSvc}
}

func (f *fixture) open(t *testing.T, date string, slots ...string) {
	t.Helper()

	d, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	_, err = f.availability.SetSlots(context.Background(), d, slots)
	require.NoError(t, err)
}

func (f *fixture) freeSlots(t *testing.T, date string) []string {
	t.Helper()

	d, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	resp, err := f.availability.GetSlots(context.Background(), d)
	require.NoError(t, err)
	return types.TimeLabelStrings(resp.Slots)
}

func (f *fixture) declinedReasons(t *testing.T) []string {
	t.Helper()

	list, err := f.declined.List(context.Background(), "booking")
	require.NoError(t, err)

	reasons := make([]string, 0, len(list.DeclinedRequests))
	for _, r := range list.DeclinedRequests {
		reasons = append(reasons, r.Reason)
	}
	return reasons
}

func TestExecute_BookAndConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	f.open(t, "2024-06-01", "6:00 AM", "10:00 AM")

	booking, err := f.uc.Execute(ctx, &Request{Email: "a@x.com", Date: "2024-06-01", TimeSlot: "10:00 AM"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", booking.Date)
	assert.Equal(t, "10:00 AM", booking.TimeSlot)

	_, err = f.uc.Execute(ctx, &Request{Email: "b@x.com", Date: "2024-06-01", TimeSlot: "10:00 AM"})
	require.ErrorIs(t, err, ErrSlotAlreadyBooked)

	assert.Equal(t, []string{"6:00 AM"}, f.freeSlots(t, "2024-06-01"))
	assert.Equal(t, []string{domain.ReasonSlotAlreadyBooked}, f.declinedReasons(t))
}

func TestExecute_FormatBeforeConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	f.open(t, "2024-06-01", "10:00 AM")

	_, err := f.uc.Execute(ctx, &Request{Email: "a@x.com", Date: "2024-06-01", TimeSlot: "10:00 AM"})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{Email: "invalid-email", Date: "2024-06-01", TimeSlot: "10:00 AM"})
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, []string{domain.ReasonInvalidEmail}, f.declinedReasons(t))
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		req        Request
		wantErr    error
		wantReason string
	}{
		{
			name:       "malformed date",
			req:        Request{Email: "a@x.com", Date: "06/01/2024", TimeSlot: "10:00 AM"},
			wantErr:    ErrInvalidDate,
			wantReason: domain.ReasonInvalidDate,
		},
		{
			name:       "malformed time",
			req:        Request{Email: "a@x.com", Date: "2024-06-01", TimeSlot: "25:00"},
			wantErr:    ErrInvalidInput,
			wantReason: domain.ReasonInvalidTime,
		},
		{
			name:       "past date",
			req:        Request{Email: "a@x.com", Date: "2024-05-30", TimeSlot: "10:00 AM"},
			wantErr:    ErrInvalidDate,
			wantReason: domain.ReasonInvalidDate,
		},
		{
			name:       "beyond horizon",
			req:        Request{Email: "a@x.com", Date: "2024-06-15", TimeSlot: "10:00 AM"},
			wantErr:    ErrDateTooFarInFuture,
			wantReason: domain.ReasonDateOutOfRange,
		},
		{
			name:       "inside notice window",
			req:        Request{Email: "a@x.com", Date: "2024-05-31", TimeSlot: "6:30 PM"},
			wantErr:    ErrTooLateToBook,
			wantReason: domain.ReasonTooLateToBook,
		},
		{
			name:       "slot never opened",
			req:        Request{Email: "a@x.com", Date: "2024-06-01", TimeSlot: "11:00 AM"},
			wantErr:    ErrSlotNotOpen,
			wantReason: domain.ReasonSlotNotOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 7)
			f.open(t, "2024-05-31", "6:30 PM", "9:00 PM")
			f.open(t, "2024-06-01", "10:00 AM")

			_, err := f.uc.Execute(context.Background(), &tt.req)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, []string{tt.wantReason}, f.declinedReasons(t))
		})
	}
}

func TestRejectMalformed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	f.uc.RejectMalformed(ctx)

	list, err := f.declined.List(ctx, "booking")
	require.NoError(t, err)
	require.Len(t, list.DeclinedRequests, 1)
	assert.Equal(t, domain.ReasonMalformedBody, list.DeclinedRequests[0].Reason)
	assert.Empty(t, list.DeclinedRequests[0].Email)
}

func TestExecute_TodayAfterNoticeWindow(t *testing.T) {
	f := newFixture(t, 0)
	f.open(t, "2024-05-31", "9:00 PM")

	_, err := f.uc.Execute(context.Background(), &Request{Email: "a@x.com", Date: "2024-05-31", TimeSlot: "9:00 pm"})
	require.NoError(t, err)
	assert.Empty(t, f.declinedReasons(t))
}
