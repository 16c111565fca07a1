package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"schoolhealth/config"
	appointmentRepo "schoolhealth/database/repository/appointment"
	"schoolhealth/models"
	"schoolhealth/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func reminderRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// NewReminderClient returns the asynq client used to enqueue reminders.
func NewReminderClient() *asynq.Client {
	return asynq.NewClient(reminderRedisOpt())
}

// InitReminderWorker runs the reminder worker in the background.
func InitReminderWorker(repo appointmentRepo.AppointmentRepository, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		reminderRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, handleReminderTask(repo, logger))

	go monitorRedisConnection(logger)

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("reminder worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

func handleReminderTask(repo appointmentRepo.AppointmentRepository, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return errors.Join(err, asynq.SkipRetry)
		}

		appt, err := repo.GetByID(ctx, p.AppointmentID)
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			logger.Warn("reminder for unknown appointment", zap.String("appointmentID", p.AppointmentID))
			return nil
		}
		if err != nil {
			return err
		}
		switch {
		case appt.Reminded:
			return nil
		case appt.Status == models.AppointmentCancelled, appt.Status == models.AppointmentCompleted:
			logger.Debug("skipping reminder", zap.String("appointmentID", appt.ID), zap.String("status", appt.Status))
			return nil
		}

		logger.Info("appointment reminder",
			zap.String("appointmentID", appt.ID),
			zap.String("parentID", p.ParentID),
			zap.String("title", p.Title),
			zap.String("body", p.Body))

		return repo.MarkReminded(ctx, appt.ID)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("reminder queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
