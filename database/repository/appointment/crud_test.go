package appointmentRepo

import (
	"context"
	"testing"
	"time"

	"schoolhealth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestMongoAppointmentRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	at := time.Date(2024, 6, 11, 2, 0, 0, 0, time.UTC)

	mt.Run("create assigns id and timestamps", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		appt := &models.Appointment{ParentID: "p1", NurseID: "n1", ScheduledAt: at}
		require.NoError(mt, repo.Create(ctx, appt))
		assert.NotEmpty(mt, appt.ID)
		assert.False(mt, appt.CreatedAt.IsZero())
		assert.Equal(mt, "insert", mt.GetStartedEvent().CommandName)
	})

	mt.Run("get missing appointment", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		appt, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(mt, err, ErrNotFound)
		assert.Nil(mt, appt)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "id", Value: "a1"}, {Key: "status", Value: models.AppointmentPending}}))

		appt, err := repo.GetByID(ctx, "a1")
		require.NoError(mt, err)
		assert.Equal(mt, models.AppointmentPending, appt.Status)

		filter := mt.GetStartedEvent().Command.Lookup("filter")
		assert.Equal(mt, "a1", filter.Document().Lookup("id").StringValue())
	})

	mt.Run("list sorts by scheduled time", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "id", Value: "a1"}, {Key: "parentId", Value: "p1"}, {Key: "scheduledAt", Value: at}},
			bson.D{{Key: "id", Value: "a2"}, {Key: "parentId", Value: "p1"}, {Key: "scheduledAt", Value: at.Add(time.Hour)}},
		))

		appts, err := repo.ListByParent(ctx, "p1")
		require.NoError(mt, err)
		require.Len(mt, appts, 2)
		assert.Equal(mt, "a1", appts[0].ID)
		assert.True(mt, appts[0].ScheduledAt.Equal(at))

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "p1", cmd.Lookup("filter", "parentId").StringValue())
		sort, ok := cmd.Lookup("sort", "scheduledAt").AsInt64OK()
		require.True(mt, ok)
		assert.Equal(mt, int64(1), sort)
	})

	mt.Run("list without appointments is empty not nil", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		appts, err := repo.ListByParent(ctx, "p1")
		require.NoError(mt, err)
		assert.NotNil(mt, appts)
		assert.Empty(mt, appts)
	})

	mt.Run("nurse booking check ignores cancelled", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(1)}}))

		taken, err := repo.ExistsForNurseAt(ctx, "n1", at)
		require.NoError(mt, err)
		assert.True(mt, taken)

		pipeline := mt.GetStartedEvent().Command.Lookup("pipeline").Array()
		match := pipeline.Index(0).Value().Document().Lookup("$match").Document()
		assert.Equal(mt, "n1", match.Lookup("nurseId").StringValue())
		assert.Equal(mt, models.AppointmentCancelled, match.Lookup("status", "$ne").StringValue())
		assert.True(mt, match.Lookup("scheduledAt").Time().Equal(at))
	})

	mt.Run("nurse free", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		taken, err := repo.ExistsForNurseAt(ctx, "n1", at)
		require.NoError(mt, err)
		assert.False(mt, taken)
	})

	mt.Run("update unknown appointment", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		assert.ErrorIs(mt, repo.UpdateStatus(ctx, "missing", models.AppointmentCancelled), ErrNotFound)
		assert.ErrorIs(mt, repo.MarkReminded(ctx, "missing"), ErrNotFound)
	})

	mt.Run("update status", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		require.NoError(mt, repo.UpdateStatus(ctx, "a1", models.AppointmentCancelled))

		cmd := mt.GetStartedEvent().Command
		update := cmd.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(mt, "a1", update.Lookup("q", "id").StringValue())
		assert.Equal(mt, models.AppointmentCancelled, update.Lookup("u", "$set", "status").StringValue())
	})

	mt.Run("server error is wrapped", func(mt *mtest.T) {
		repo := newMongoAppointmentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad"}))

		err := repo.MarkReminded(ctx, "a1")
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
		assert.Contains(mt, err.Error(), "a1")
	})
}
