package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFilterMode(t *testing.T) {
	mode, err := ParseFilterMode("redact")
	require.NoError(t, err)
	require.Equal(t, FilterRedact, mode)

	mode, err = ParseFilterMode("blur")
	require.NoError(t, err)
	require.Equal(t, FilterBlur, mode)

	_, err = ParseFilterMode("pixelate")
	require.ErrorIs(t, err, ErrUnknownFilterMode)

	_, err = ParseFilterMode("")
	require.ErrorIs(t, err, ErrUnknownFilterMode)
}

func TestFilterModeJSON(t *testing.T) {
	var payload struct {
		Mode FilterMode `json:"mode"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"mode":"redact"}`), &payload))
	require.Equal(t, FilterRedact, payload.Mode)

	err := json.Unmarshal([]byte(`{"mode":"BLUR"}`), &payload)
	require.ErrorIs(t, err, ErrUnknownFilterMode)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	require.JSONEq(t, `{"mode":"redact"}`, string(out))
}
