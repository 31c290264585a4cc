package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "normalized", input: "09:00:00", want: "09:00:00"},
		{name: "single digit hour", input: "9:30:00", want: "09:30:00"},
		{name: "end of day", input: "23:59:59", want: "23:59:59"},
		{name: "hours overflow", input: "24:00:00", wantErr: true},
		{name: "no seconds", input: "09:00", wantErr: true},
		{name: "garbage", input: "nine", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := MustTimeString("09:00:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00:00"), got)

	got, err = MustTimeString("16:45:30").AddMinutes(15)
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00:30"), got)

	_, err = MustTimeString("23:30:00").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("bad").AddMinutes(1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	a := MustTimeString("09:00:00")
	b := MustTimeString("13:00:00")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, "09:00", a.Short())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("13:00:00")))
	assert.Equal(t, TimeString("13:00:00"), ts)

	require.NoError(t, ts.Scan("14:00:00.000000"))
	assert.Equal(t, TimeString("14:00:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 15, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("15:30:00"), ts)

	assert.Error(t, ts.Scan(42))
}
