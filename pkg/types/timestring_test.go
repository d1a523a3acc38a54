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
		{name: "canonical", input: "09:30", want: "09:30"},
		{name: "with seconds", input: "09:30:00", want: "09:30"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "minutes overflow", input: "09:60", wantErr: true},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "non zero seconds", input: "09:30:15", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("11:30")

	got, err := start.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	got, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
	assert.True(t, TimeString("10:00").Equal("10:00"))
	assert.Equal(t, 600, TimeString("10:00").Minutes())
	assert.Equal(t, -1, TimeString("bad").Minutes())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("10:15:00")))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:05"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
