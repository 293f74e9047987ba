package record

import (
	"encoding/json"
	"testing"

	"github.com/luisfsill/Ponto-Digital/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockInRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"valid", `{"device_id":"dev-1","latitude":-23.5505,"longitude":-46.6333,"accuracy":12}`, nil},
		{"equator and meridian", `{"device_id":"dev-1","latitude":0,"longitude":0}`, nil},
		{"no location", `{"device_id":"dev-1"}`, []string{"latitude", "longitude"}},
		{"only latitude", `{"device_id":"dev-1","latitude":-23.5}`, []string{"longitude"}},
		{"null location", `{"device_id":"dev-1","latitude":null,"longitude":null}`, []string{"latitude", "longitude"}},
		{"out of range", `{"device_id":"dev-1","latitude":91,"longitude":-181}`, []string{"latitude", "longitude"}},
		{"missing device", `{"latitude":-23.5,"longitude":-46.6}`, []string{"device_id"}},
		{"negative accuracy", `{"device_id":"dev-1","latitude":-23.5,"longitude":-46.6,"accuracy":-1}`, []string{"accuracy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ClockInRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			if assert.ErrorAs(t, err, &verrs) {
				assert.Len(t, verrs, len(tt.fields))
				for _, f := range tt.fields {
					assert.Contains(t, verrs.ToMap(), f)
				}
			}
		})
	}
}
