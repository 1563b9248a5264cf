package bookings

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/booking"
	declinedRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/declined"
	"github.com/m04kA/SMC-CounselingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-CounselingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CounselingService/internal/service/declined"
	"github.com/m04kA/SMC-CounselingService/pkg/logger"
	"github.com/m04kA/SMC-CounselingService/pkg/sqlbuilder"
	"github.com/m04kA/SMC-CounselingService/pkg/txmanager"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

type resultCounter struct {
	mu      sync.Mutex
	results map[string]int
}

func (c *resultCounter) IncBooking(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[result]++
}

type fixture struct {
	svc          *Service
	availability *availabilityRepo.Repository
	declined     *declined.Service
	results      *resultCounter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storagetest.NewSQLite(t)
	log := logger.NewNop()

	declinedSvc := declined.NewService(declinedRepo.NewRepository(db, sqlbuilder.SQLite), nil, log)
	availability := availabilityRepo.NewRepository(db, sqlbuilder.SQLite)
	results := &resultCounter{results: map[string]int{}}

	svc := NewService(
		bookingRepo.NewRepository(db, sqlbuilder.SQLite),
		availability,
		declinedSvc,
		txmanager.NewTransactionManager(db),
		results,
		log,
	)
	svc.timeProvider = storagetest.NewStepClock(time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC), time.Second)

	return &fixture{svc: svc, availability: availability, declined: declinedSvc, results: results}
}

func (f *fixture) open(t *testing.T, date string, slots ...string) time.Time {
	t.Helper()

	d, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	labels, err := types.ParseTimeLabels(slots)
	require.NoError(t, err)
	require.NoError(t, f.availability.ReplaceDay(context.Background(), d, labels, time.Now()))

	return d
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

func TestService_Reserve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	date := f.open(t, "2024-06-01", "6:00 AM", "10:00 AM")

	created, err := f.svc.Reserve(ctx, date, types.MustParseTimeLabel("10:00 AM"), "A@x.com")
	require.NoError(t, err)

	want := &models.BookingResponse{
		ID:        created.ID,
		Email:     "a@x.com",
		Date:      "2024-06-01",
		TimeSlot:  "10:00 AM",
		CreatedAt: time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Errorf("Reserve() mismatch (-want +got):\n%s", diff)
	}

	got, err := f.svc.GetByID(ctx, uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, created.TimeSlot, got.TimeSlot)

	assert.Equal(t, 1, f.results.results["created"])
	assert.Empty(t, f.declinedReasons(t))
}

func TestService_Reserve_SlotAlreadyBooked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	date := f.open(t, "2024-06-01", "6:00 AM", "10:00 AM")

	_, err := f.svc.Reserve(ctx, date, types.MustParseTimeLabel("10:00 AM"), "a@x.com")
	require.NoError(t, err)

	_, err = f.svc.Reserve(ctx, date, types.MustParseTimeLabel("10:00 AM"), "b@x.com")
	require.ErrorIs(t, err, ErrSlotAlreadyBooked)

	list, err := f.declined.List(ctx, "booking")
	require.NoError(t, err)
	require.Len(t, list.DeclinedRequests, 1)
	assert.Equal(t, "b@x.com", list.DeclinedRequests[0].Email)
	assert.Equal(t, domain.ReasonSlotAlreadyBooked, list.DeclinedRequests[0].Reason)
	assert.Equal(t, 1, f.results.results["conflict"])
}

func TestService_Reserve_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		slot       types.TimeLabel
		email      string
		wantErr    error
		wantReason string
	}{
		{
			name:       "invalid email",
			date:       "2024-06-01",
			slot:       types.MustParseTimeLabel("6:00 AM"),
			email:      "invalid-email",
			wantErr:    ErrInvalidInput,
			wantReason: domain.ReasonInvalidEmail,
		},
		{
			name:       "missing slot",
			date:       "2024-06-01",
			email:      "a@x.com",
			wantErr:    ErrInvalidInput,
			wantReason: domain.ReasonInvalidTime,
		},
		{
			name:       "slot never opened",
			date:       "2024-06-01",
			slot:       types.MustParseTimeLabel("7:00 AM"),
			email:      "a@x.com",
			wantErr:    ErrSlotNotOpen,
			wantReason: domain.ReasonSlotNotOpen,
		},
		{
			name:       "date without availability",
			date:       "2024-06-02",
			slot:       types.MustParseTimeLabel("6:00 AM"),
			email:      "a@x.com",
			wantErr:    ErrSlotNotOpen,
			wantReason: domain.ReasonSlotNotOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.open(t, "2024-06-01", "6:00 AM")
			date, _ := time.Parse(domain.DateFormat, tt.date)

			_, err := f.svc.Reserve(context.Background(), date, tt.slot, tt.email)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Equal(t, []string{tt.wantReason}, f.declinedReasons(t))
			assert.Equal(t, 1, f.results.results["rejected"])

			list, err := f.svc.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list.Bookings)
		})
	}
}

func TestService_Reserve_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	date := f.open(t, "2024-06-01", "10:00 AM")
	slot := types.MustParseTimeLabel("10:00 AM")

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.svc.Reserve(context.Background(), date, slot, "user"+string(rune('a'+i))+"@x.com")
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded, conflicts int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrSlotAlreadyBooked)
		conflicts++
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, f.declinedReasons(t), workers-1)

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 1)
}

func TestService_List_SortedByDateThenTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	june1 := f.open(t, "2024-06-01", "6:00 AM", "1:00 PM")
	june2 := f.open(t, "2024-06-02", "9:00 AM")

	_, err := f.svc.Reserve(ctx, june2, types.MustParseTimeLabel("9:00 AM"), "c@x.com")
	require.NoError(t, err)
	_, err = f.svc.Reserve(ctx, june1, types.MustParseTimeLabel("1:00 PM"), "b@x.com")
	require.NoError(t, err)
	_, err = f.svc.Reserve(ctx, june1, types.MustParseTimeLabel("6:00 AM"), "a@x.com")
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)

	got := make([]string, 0, 3)
	for _, b := range list.Bookings {
		got = append(got, b.Date+" "+b.TimeSlot)
	}
	assert.Equal(t, []string{"2024-06-01 6:00 AM", "2024-06-01 1:00 PM", "2024-06-02 9:00 AM"}, got)
}

func TestService_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_RecordRejection(t *testing.T) {
	f := newFixture(t)

	f.svc.RecordRejection(context.Background(), " Late@x.com", domain.ReasonTooLateToBook)

	list, err := f.declined.List(context.Background(), "booking")
	require.NoError(t, err)
	require.Len(t, list.DeclinedRequests, 1)
	assert.Equal(t, "late@x.com", list.DeclinedRequests[0].Email)
	assert.Equal(t, 1, f.results.results["rejected"])
}
