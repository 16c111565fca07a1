package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"schoolhealth/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "reminder:appointment"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.TaskID("reminder:" + payload.AppointmentID)}

	return task, opts, nil
}

// Enqueuer is the subset of *asynq.Client used for reminders.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler queues appointment reminders Lead before the appointment.
type AsynqReminderScheduler struct {
	Client Enqueuer
	Lead   time.Duration
	Now    func() time.Time
}

// ScheduleReminder enqueues the reminder; it is a no-op when the fire time has already passed.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt models.Appointment) error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	fireAt := appt.ScheduledAt.Add(-s.Lead)
	if !fireAt.After(now()) {
		return nil
	}

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		ParentID:      appt.ParentID,
		Title:         "Nhắc lịch hẹn với y tế trường",
		Body:          fmt.Sprintf("Lịch hẹn của bạn bắt đầu lúc %s ngày %s", appt.ScheduledAt.Format("15:04"), appt.ScheduledAt.Format("02/01/2006")),
		FireDate:      fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}
