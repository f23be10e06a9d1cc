package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/gameva-shop/internal/models"
)

func TestCreateAddressAndList(t *testing.T) {
	env := newTestEnv(t)
	ck := login(t, env, "addr@example.com", models.RoleCustomer)

	body := map[string]any{
		"street":     "742 Evergreen Terrace",
		"city":       "Springfield",
		"state":      "IL",
		"zip_code":   "62704",
		"country":    "US",
		"is_default": true,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/addresses", body, ck)
	require.NoError(t, env.Ad.CreateAddress(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Address
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, uint(1), created.UserID)
	require.True(t, created.IsDefault)

	// a second address is allowed, the default flag is advisory only
	body["street"] = "744 Evergreen Terrace"
	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/addresses", body, ck)
	require.NoError(t, env.Ad.CreateAddress(c2))
	require.Equal(t, http.StatusCreated, rec2.Code)

	recList, cList := env.doJSONRequest(http.MethodGet, "/api/v1/addresses", nil, ck)
	require.NoError(t, env.Ad.GetUserAddresses(cList))

	var addresses []models.Address
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &addresses))
	require.Len(t, addresses, 2)
}

func TestCreateAddressRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	ck := login(t, env, "addr@example.com", models.RoleCustomer)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/addresses", map[string]any{
		"city": "Nowhere",
	}, ck)
	err := env.Ad.CreateAddress(c)
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}
