package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList_NilItemsEncodeAsEmptyArray(t *testing.T) {
	b, err := json.Marshal(List[string]("events", nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"count":0,"events":[]}`, string(b))
}

func TestError_CarriesMessage(t *testing.T) {
	b, err := json.Marshal(Error("boom"))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"error":"boom"}`, string(b))
}

func TestItem_FlatEnvelope(t *testing.T) {
	b, err := json.Marshal(Item("stats", map[string]int{"total": 3}))
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"stats":{"total":3}}`, string(b))
}
