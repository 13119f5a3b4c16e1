package cycle_test

import (
	"bytes"
	"errors"
	"testing"

	"fjacquet/cycle-spend/cmd/cycle"
	"fjacquet/cycle-spend/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleCommand_Metadata(t *testing.T) {
	assert.Equal(t, "cycle DATE...", cycle.Cmd.Use)
	assert.NotEmpty(t, cycle.Cmd.Short)
	assert.NotNil(t, cycle.Cmd.RunE)
	assert.Error(t, cycle.Cmd.Args(cycle.Cmd, nil))
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		dates    []string
		startDay int
		want     string
	}{
		{
			name:     "calendar months",
			dates:    []string{"2024-02-29"},
			startDay: 1,
			want:     "2024-02-29\t2024-02\t2024-02-01 to 2024-02-29\n",
		},
		{
			name:     "start day boundary",
			dates:    []string{"2024-01-16", "2024-01-17T08:00:00Z"},
			startDay: 16,
			want: "2024-01-16\t2023-12\t2023-12-17 to 2024-01-16\n" +
				"2024-01-17\t2024-01\t2024-01-17 to 2024-02-16\n",
		},
		{
			name:     "start day clamped in february",
			dates:    []string{"2023-02-28", "2023-03-01"},
			startDay: 31,
			want: "2023-02-28\t2023-01\t2023-02-01 to 2023-02-28\n" +
				"2023-03-01\t2023-02\t2023-03-01 to 2023-03-31\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, cycle.Describe(&buf, tt.dates, tt.startDay))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDescribe_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := cycle.Describe(&buf, []string{"2024-01-01"}, 0)
	var cfgErr *parsererror.ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	err = cycle.Describe(&buf, []string{"2024-01-01", "01/02/2024"}, 1)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}
