package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NewCapabilityName tests that valid capability names are accepted
func Test_NewCapabilityName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "plotting", "plotting", false},
		{"valid with underscore", "gpu_stats", "gpu_stats", false},
		{"valid with hyphen", "image-ops", "image-ops", false},
		{"invalid char @", "plotting@1", "", true},
		{"invalid uppercase", "Plotting", "", true},
		{"invalid leading digit", "3d", "", true},
		{"trims whitespace", "  locking  ", "locking", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"path separator", "a/b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cn, err := NewCapabilityName(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, cn.String())
			}
		})
	}
}

func Test_MustNewCapabilityName(t *testing.T) {
	cn := MustNewCapabilityName("locking")
	assert.Equal(t, "locking", cn.String())
}

func Test_MustNewCapabilityName_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewCapabilityName("")
	})
}

func Test_CapabilityName_JSONRoundTrip(t *testing.T) {
	cn := MustNewCapabilityName("gpu_stats")

	data, err := json.Marshal(cn)
	require.NoError(t, err)
	assert.Equal(t, `"gpu_stats"`, string(data))

	var decoded CapabilityName
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, cn.Equals(decoded))
}

func Test_CapabilityName_UnmarshalRejectsInvalid(t *testing.T) {
	var cn CapabilityName
	assert.Error(t, json.Unmarshal([]byte(`"Not Valid"`), &cn))
}

func Test_CapabilityName_IsEmpty(t *testing.T) {
	var zero CapabilityName
	assert.True(t, zero.IsEmpty())
	assert.False(t, MustNewCapabilityName("git").IsEmpty())
}
