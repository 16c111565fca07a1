package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"schoolhealth/config"
	"schoolhealth/database"
	"schoolhealth/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("appointment not found")

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByParent(ctx context.Context, parentID string) ([]models.Appointment, error)
	ExistsForNurseAt(ctx context.Context, nurseID string, at time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id, status string) error
	MarkReminded(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo returns an AppointmentRepository backed by the global MongoDB client.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return newMongoAppointmentRepo(db.Collection("appointments"))
}

func newMongoAppointmentRepo(coll *mongo.Collection) *mongoAppointmentRepo {
	return &mongoAppointmentRepo{coll: coll}
}
