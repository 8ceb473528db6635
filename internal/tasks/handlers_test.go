package tasks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farhan/hrmtrack/internal/database/models"
	"github.com/farhan/hrmtrack/internal/tasks"
	"github.com/farhan/hrmtrack/internal/testutil"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	address string
	err     error
	calls   int
}

func (f *fakeGeocoder) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	f.calls++
	return f.address, f.err
}

func newGeocodeTask(t *testing.T, id uuid.UUID) *asynq.Task {
	t.Helper()
	task, err := tasks.NewLocationGeocodeTask(tasks.LocationGeocodePayload{LocationID: id})
	require.NoError(t, err)
	return task
}

func TestHandleLocationGeocode(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()

	t.Run("backfills a missing address", func(t *testing.T) {
		location := testutil.CreateTestLocation(t, tc.DB, tc.Staff, models.LocationTypeCheckIn, time.Now())
		require.Empty(t, location.Address)

		geo := &fakeGeocoder{address: "Shahrah-e-Faisal, Karachi, Pakistan"}
		handler := tasks.NewHandler(tc.DB, testutil.DiscardLogger(), geo)

		err := handler.HandleLocationGeocode(context.Background(), newGeocodeTask(t, location.ID))
		require.NoError(t, err)
		assert.Equal(t, 1, geo.calls)

		var stored models.Location
		require.NoError(t, tc.DB.First(&stored, location.ID).Error)
		assert.Equal(t, "Shahrah-e-Faisal, Karachi, Pakistan", stored.Address)
	})

	t.Run("leaves existing addresses alone", func(t *testing.T) {
		location := testutil.CreateTestLocation(t, tc.DB, tc.Staff, models.LocationTypeCheckIn, time.Now())
		require.NoError(t, tc.DB.Model(location).Update("address", "Head Office").Error)

		geo := &fakeGeocoder{address: "Should Not Be Used"}
		handler := tasks.NewHandler(tc.DB, testutil.DiscardLogger(), geo)

		err := handler.HandleLocationGeocode(context.Background(), newGeocodeTask(t, location.ID))
		require.NoError(t, err)
		assert.Equal(t, 0, geo.calls)

		var stored models.Location
		require.NoError(t, tc.DB.First(&stored, location.ID).Error)
		assert.Equal(t, "Head Office", stored.Address)
	})

	t.Run("vanished location is not retried", func(t *testing.T) {
		geo := &fakeGeocoder{}
		handler := tasks.NewHandler(tc.DB, testutil.DiscardLogger(), geo)

		err := handler.HandleLocationGeocode(context.Background(), newGeocodeTask(t, uuid.New()))
		assert.NoError(t, err)
		assert.Equal(t, 0, geo.calls)
	})

	t.Run("geocoder failure surfaces for retry", func(t *testing.T) {
		location := testutil.CreateTestLocation(t, tc.DB, tc.Staff, models.LocationTypeTracking, time.Now())

		geo := &fakeGeocoder{err: errors.New("upstream unavailable")}
		handler := tasks.NewHandler(tc.DB, testutil.DiscardLogger(), geo)

		err := handler.HandleLocationGeocode(context.Background(), newGeocodeTask(t, location.ID))
		assert.Error(t, err)
	})

	t.Run("empty geocoder answer is terminal", func(t *testing.T) {
		location := testutil.CreateTestLocation(t, tc.DB, tc.Staff, models.LocationTypeTracking, time.Now())

		geo := &fakeGeocoder{address: ""}
		handler := tasks.NewHandler(tc.DB, testutil.DiscardLogger(), geo)

		err := handler.HandleLocationGeocode(context.Background(), newGeocodeTask(t, location.ID))
		require.NoError(t, err)

		var stored models.Location
		require.NoError(t, tc.DB.First(&stored, location.ID).Error)
		assert.Empty(t, stored.Address)
	})

	t.Run("malformed payload fails permanently", func(t *testing.T) {
		geo := &fakeGeocoder{}
		handler := tasks.NewHandler(tc.DB, testutil.DiscardLogger(), geo)

		task := asynq.NewTask(tasks.TypeLocationGeocode, []byte("{not json"))
		err := handler.HandleLocationGeocode(context.Background(), task)
		assert.Error(t, err)
	})
}
