package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    int
		wantErr bool
	}{
		{name: "Success_Default", target: "/audit", want: 100},
		{name: "Success_Explicit", target: "/audit?limit=25", want: 25},
		{name: "Success_Max", target: "/audit?limit=100", want: 100},
		{name: "Error_Zero", target: "/audit?limit=0", wantErr: true},
		{name: "Error_TooLarge", target: "/audit?limit=101", wantErr: true},
		{name: "Error_NotNumber", target: "/audit?limit=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(tt.target)
			got, err := ParseLimit(c, 100, 100)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalInt(t *testing.T) {
	c, _ := newTestContext("/svid")
	got, err := ParseOptionalInt(c, "ttl_hours")
	require.NoError(t, err)
	assert.Nil(t, got)

	c, _ = newTestContext("/svid?ttl_hours=4")
	got, err = ParseOptionalInt(c, "ttl_hours")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 4, *got)

	c, _ = newTestContext("/svid?ttl_hours=-1")
	_, err = ParseOptionalInt(c, "ttl_hours")
	assert.Error(t, err)
}
