package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodString(t *testing.T) {
	p := Period{Year: 2025, Month: time.March}
	assert.Equal(t, "2025-03", p.String())
}

func TestParsePeriodRoundTrip(t *testing.T) {
	p, err := ParsePeriod("2025-12")
	require.NoError(t, err)
	assert.Equal(t, Period{Year: 2025, Month: time.December}, p)
	assert.Equal(t, "2025-12", p.String())

	_, err = ParsePeriod("2025/12")
	assert.Error(t, err)
}

func TestPeriodCompare(t *testing.T) {
	jan := Period{Year: 2025, Month: time.January}
	feb := Period{Year: 2025, Month: time.February}
	decPrev := Period{Year: 2024, Month: time.December}

	assert.True(t, jan.Before(feb))
	assert.True(t, decPrev.Before(jan))
	assert.Equal(t, 0, jan.Compare(jan))
	assert.Equal(t, 1, feb.Compare(jan))
}

func TestPeriodScanAndValue(t *testing.T) {
	var p Period
	require.NoError(t, p.Scan("2025-07"))
	assert.Equal(t, Period{Year: 2025, Month: time.July}, p)

	require.NoError(t, p.Scan([]byte("2024-02")))
	assert.Equal(t, Period{Year: 2024, Month: time.February}, p)

	v, err := Period{Year: 2024, Month: time.February}.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-02", v)

	assert.Error(t, p.Scan(42))
}

func TestPeriodJSON(t *testing.T) {
	p := Period{Year: 2025, Month: time.April}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04"`, string(data))

	var back Period
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)
}

func TestPaymentRecordLateDerivation(t *testing.T) {
	rec := PaymentRecord{
		Status:  PaymentPending,
		DueDate: time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
	}

	rec.StampLate(time.Date(2025, time.March, 4, 23, 0, 0, 0, time.UTC))
	assert.False(t, rec.Late)

	rec.StampLate(time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC))
	assert.True(t, rec.Late)

	rec.Status = PaymentArchived
	rec.StampLate(time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC))
	assert.False(t, rec.Late)
}
