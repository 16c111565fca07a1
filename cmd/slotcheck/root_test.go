package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (string, error) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const monday = "2024-06-10T09:00:00+07:00"

func TestValidateAccepts(t *testing.T) {
	out, err := run("validate", "--now", monday, "2024-06-11T10:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11T10:00:00+07:00\tvalid\n", out)
}

func TestValidateRejects(t *testing.T) {
	out, err := run("validate", "--now", monday, "--locale", "en", "2024-09-02T10:00:00+07:00")
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "holiday")
	assert.Contains(t, out, "Appointments cannot be booked on a holiday (Quốc khánh)")
}

func TestValidateSlotFlags(t *testing.T) {
	out, err := run("validate", "--now", monday, "--date", "2024-06-15", "--slot", "10:00")
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, out, "weekend")

	_, err = run("validate", "--now", monday, "--date", "2024-06-11", "--slot", "12:00")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errRejected)
}

func TestValidateArgumentErrors(t *testing.T) {
	_, err := run("validate", "--now", monday)
	assert.Error(t, err)

	_, err = run("validate", "--now", monday, "--slot", "10:00", "2024-06-11T10:00")
	assert.Error(t, err)

	_, err = run("validate", "--now", "yesterday", "2024-06-11T10:00")
	assert.Error(t, err)
}

func TestSlots(t *testing.T) {
	out, err := run("slots", "--now", monday, "2024-06-11")
	require.NoError(t, err)
	assert.Contains(t, out, "08:00")
	assert.Contains(t, out, "16:30")
	assert.NotContains(t, out, "lunch_break")

	out, err = run("slots", "--now", monday, "2024-06-10")
	require.NoError(t, err)
	assert.Contains(t, out, "lead_time")
}

func TestHolidays(t *testing.T) {
	out, err := run("holidays")
	require.NoError(t, err)
	assert.Contains(t, out, "09-02\tQuốc khánh\n")
	assert.Contains(t, out, "01-01\tTết Dương lịch\n")
}

func TestVersion(t *testing.T) {
	out, err := run("version")
	require.NoError(t, err)
	assert.Equal(t, "slotcheck dev (commit=none, built=unknown)\n", out)
}
