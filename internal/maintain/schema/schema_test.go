package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintain/internal/maintain/models"
	dErrors "maintain/pkg/domain-errors"
)

func TestDecodeCategory(t *testing.T) {
	v := MustNew()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid payload",
			body: `{"name":"Planning","display-name":"Planning","display-order":1,"permission":null,"provisions":[],"instruments":["Deed"]}`,
		},
		{
			name:    "missing required key",
			body:    `{"name":"Planning","display-order":1,"permission":null,"provisions":[],"instruments":[]}`,
			wantErr: "display-name",
		},
		{
			name:    "wrong primitive type",
			body:    `{"name":"Planning","display-name":"P","display-order":"1","permission":null,"provisions":[],"instruments":[]}`,
			wantErr: "/display-order",
		},
		{
			name:    "non-integer order",
			body:    `{"name":"Planning","display-name":"P","display-order":1.5,"permission":null,"provisions":[],"instruments":[]}`,
			wantErr: "/display-order",
		},
		{
			name:    "extra key",
			body:    `{"name":"Planning","display-name":"P","display-order":1,"permission":null,"provisions":[],"instruments":[],"colour":"red"}`,
			wantErr: "colour",
		},
		{
			name:    "array item type",
			body:    `{"name":"Planning","display-name":"P","display-order":1,"permission":"x","provisions":[1],"instruments":[]}`,
			wantErr: "/provisions/0",
		},
		{
			name:    "not an object",
			body:    `["Planning"]`,
			wantErr: "expected object",
		},
		{
			name:    "undecodable",
			body:    `{"name":`,
			wantErr: "Request body is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in models.CategoryInput
			err := v.Decode(Category, []byte(tt.body), &in)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Planning", in.Name)
				assert.Nil(t, in.Permission)
				assert.Equal(t, []string{"Deed"}, in.Instruments)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDecodeStatutoryProvision(t *testing.T) {
	v := MustNew()

	var in models.ProvisionInput
	require.NoError(t, v.Decode(StatutoryProvision, []byte(`{"title":"A Act","selectable":false}`), &in))
	assert.Equal(t, "A Act", in.Title)
	assert.False(t, in.Selectable)

	err := v.Decode(StatutoryProvision, []byte(`{"title":"A Act"}`), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selectable")
}

func TestDecodeInstrument(t *testing.T) {
	v := MustNew()

	var in models.InstrumentInput
	require.NoError(t, v.Decode(Instrument, []byte(`{"name":"Deed"}`), &in))
	assert.Equal(t, "Deed", in.Name)

	err := v.Decode(Instrument, []byte(`{"name":7}`), &in)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
