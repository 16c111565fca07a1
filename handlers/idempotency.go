package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"schoolhealth/models"
)

// idempotentBooking is what a POST with an Idempotency-Key leaves in Redis.
type idempotentBooking struct {
	Fingerprint string             `json:"fingerprint"`
	Appointment models.Appointment `json:"appointment"`
}

func idempotencyCacheKey(parentID, key string) string {
	return "appointment:idempotency:" + parentID + ":" + key
}

// fingerprint identifies the booking request a key was first used with.
// Field order is fixed by the struct, so equal inputs hash equally
// regardless of the JSON layout the client sent.
func fingerprint(input models.AppointmentInput) string {
	raw, _ := json.Marshal(input)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
