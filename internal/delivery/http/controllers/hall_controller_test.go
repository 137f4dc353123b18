package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinematicketing/internal/delivery/http/helpers"
	"cinematicketing/internal/domain"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHallController_SaveConfig(t *testing.T) {
	tests := []struct {
		name       string
		hallID     string
		body       string
		svcErr     error
		wantStatus int
		wantMsg    string // substring of error.message
	}{
		{
			name:       "valid grid",
			hallID:     "1",
			body:       `{"seats": "[[\"standart\",\"vip\"]]"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "validation error surfaces the message verbatim",
			hallID:     "1",
			body:       `{"seats": "[[\"standart\"],[\"standart\",\"vip\"]]"}`,
			svcErr:     fmt.Errorf("%w: row 2 has 2 seats, expected 1", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "row 2 has 2 seats, expected 1",
		},
		{
			name:       "missing seats",
			hallID:     "1",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "seats is required",
		},
		{
			name:       "unknown field is rejected",
			hallID:     "1",
			body:       `{"seats": "[]", "rows": 5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad hall id",
			hallID:     "zero",
			body:       `{"seats": "[]"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid hallID",
		},
		{
			name:       "missing hall",
			hallID:     "9",
			body:       `{"seats": "[]"}`,
			svcErr:     domain.ErrNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeHallService{err: tt.svcErr}
			ctrl := NewHallController(discardLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/halls/"+tt.hallID+"/config", strings.NewReader(tt.body))
			req.SetPathValue("hallID", tt.hallID)
			rec := httptest.NewRecorder()
			ctrl.SaveConfig(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec)
			if tt.wantStatus == http.StatusOK {
				assert.Nil(t, resp.Error)
			} else {
				require.NotNil(t, resp.Error)
				if tt.wantMsg != "" {
					assert.Contains(t, resp.Error.Message, tt.wantMsg)
				}
			}
		})
	}
}

func TestHallController_List(t *testing.T) {
	svc := &fakeHallService{halls: []*domain.Hall{
		{ID: 1, Name: "Blue", Seats: domain.SeatGrid{}},
		{ID: 2, Name: "Red", Seats: domain.SeatGrid{}},
	}}
	ctrl := NewHallController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/halls", nil)
	rec := httptest.NewRecorder()
	ctrl.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.Nil(t, resp.Error)
	halls, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, halls, 2)
}

func TestHallController_Create(t *testing.T) {
	ctrl := NewHallController(discardLogger(), &fakeHallService{})

	rec := httptest.NewRecorder()
	ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/halls", strings.NewReader(`{"name": "Hall 1"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/halls", strings.NewReader(`{"name": "  "}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHallController_SetPrices(t *testing.T) {
	ctrl := NewHallController(discardLogger(), &fakeHallService{})

	req := httptest.NewRequest(http.MethodPost, "/halls/1/prices", strings.NewReader(`{"regularPrice": 250, "vipPrice": 500}`))
	req.SetPathValue("hallID", "1")
	rec := httptest.NewRecorder()
	ctrl.SetPrices(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/halls/1/prices", strings.NewReader(`{"regularPrice": -5, "vipPrice": 500}`))
	req.SetPathValue("hallID", "1")
	rec = httptest.NewRecorder()
	ctrl.SetPrices(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error.Message, "regularPrice")
}
