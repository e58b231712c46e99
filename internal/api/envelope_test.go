package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	b, err := json.Marshal(OK(map[string]string{"id": "usr-001"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"true","data":{"id":"usr-001"},"error":null}`, string(b))
}

func TestOKNilData(t *testing.T) {
	b, err := json.Marshal(OK(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"true","data":null,"error":null}`, string(b))
}

func TestFail(t *testing.T) {
	b, err := json.Marshal(Fail("User is not found."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"false","data":[],"error":"User is not found."}`, string(b))
}
