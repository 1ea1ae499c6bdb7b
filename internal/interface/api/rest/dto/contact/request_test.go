package contact

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDraft(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErrs map[string]string
	}{
		{
			name: "complete",
			body: `{"first_name":"Ann","last_name":"Lee","email":"a@b.io","phone":"+1234567","birthday":"1990-02-28"}`,
		},
		{
			name: "missing fields",
			body: `{"first_name":"Ann"}`,
			wantErrs: map[string]string{
				"last_name": "field required",
				"email":     "field required",
				"phone":     "field required",
				"birthday":  "field required",
			},
		},
		{
			name:     "bad birthday",
			body:     `{"first_name":"Ann","last_name":"Lee","email":"a@b.io","phone":"+1234567","birthday":"28.02.1990"}`,
			wantErrs: map[string]string{"birthday": "must be YYYY-MM-DD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Request
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))

			d, errs := ToDraft(r)
			assert.Equal(t, tt.wantErrs, errs)
			if tt.wantErrs == nil {
				assert.Equal(t, "Ann", d.FirstName)
				assert.Equal(t, time.Date(1990, 2, 28, 0, 0, 0, 0, time.UTC), d.Birthday)
				assert.Nil(t, d.AdditionalData)
			}
		})
	}
}

func TestToPatch(t *testing.T) {
	t.Run("absent fields stay unset", func(t *testing.T) {
		var r PatchRequest
		require.NoError(t, json.Unmarshal([]byte(`{"phone":"+1234567"}`), &r))

		p, errs := ToPatch(r)
		require.Nil(t, errs)
		assert.False(t, p.FirstName.IsSet())
		assert.False(t, p.AdditionalData.IsSet())
		v, ok := p.Phone.Get()
		assert.True(t, ok)
		assert.Equal(t, "+1234567", v)
	})

	t.Run("null clears additional_data", func(t *testing.T) {
		var r PatchRequest
		require.NoError(t, json.Unmarshal([]byte(`{"additional_data":null}`), &r))

		p, errs := ToPatch(r)
		require.Nil(t, errs)
		v, ok := p.AdditionalData.Get()
		assert.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("null on required field is rejected", func(t *testing.T) {
		var r PatchRequest
		require.NoError(t, json.Unmarshal([]byte(`{"email":null,"birthday":"1990-13-01"}`), &r))

		_, errs := ToPatch(r)
		assert.Equal(t, map[string]string{
			"email":    "must not be null",
			"birthday": "must be YYYY-MM-DD",
		}, errs)
	})

	t.Run("birthday parsed", func(t *testing.T) {
		var r PatchRequest
		require.NoError(t, json.Unmarshal([]byte(`{"birthday":"2000-02-29","additional_data":"x"}`), &r))

		p, errs := ToPatch(r)
		require.Nil(t, errs)
		b, ok := p.Birthday.Get()
		assert.True(t, ok)
		assert.Equal(t, time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), b)
		n, _ := p.AdditionalData.Get()
		require.NotNil(t, n)
		assert.Equal(t, "x", *n)
	})
}
