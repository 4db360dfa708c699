package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/application/query"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/stock-ledger/internal/interfaces/http"
)

// buildMovementApp monta las rutas de movimientos sobre el almacén en memoria
// con un producto sembrado (costo 10.00, mínimo 10).
func buildMovementApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, productRepo.Create(&entity.Product{
		ID:          "prod-1",
		SKU:         "SKU-001",
		Name:        "Café en grano 1kg",
		CostPrice:   decimal.RequireFromString("10.00"),
		SalePrice:   decimal.RequireFromString("15.00"),
		MinQuantity: 10,
		CategoryID:  "cat-1",
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}))

	registerUC := appinv.NewRegisterMovementUseCase(store, productRepo, nil, nil, func() time.Time { return now })
	movementQueries := query.NewMovementQueryUseCase(memory.NewMovementRepository(store), productRepo)

	app := fiber.New()
	handler := apphttp.NewMovementHandler(registerUC, movementQueries)
	inv := app.Group("/api/inventory", apphttp.AuthMiddleware(testJWTSecret))
	inv.Post("/movements", handler.RegisterMovement)
	inv.Get("/movements", handler.List)
	return app
}

func postMovement(t *testing.T, app *fiber.App, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/movements", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "bodeguero"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMovementEndpoint_EntradaYSalida(t *testing.T) {
	app := buildMovementApp(t)

	// Entrada aceptada → 201 con el movimiento.
	resp := postMovement(t, app, map[string]any{
		"product_id":       "prod-1",
		"type":             "INBOUND",
		"quantity":         100,
		"reason":           "RESTOCK",
		"responsible_user": "maria",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var mov map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mov))
	assert.Equal(t, "prod-1", mov["product_id"])
	assert.Equal(t, "INBOUND", mov["type"])
	assert.NotEmpty(t, mov["id"])
	assert.Equal(t, testUserID, mov["created_by"], "el movimiento registra el usuario del token")

	// Salida aceptada.
	resp = postMovement(t, app, map[string]any{
		"product_id":       "prod-1",
		"type":             "OUTBOUND",
		"quantity":         30,
		"reason":           "SALE",
		"responsible_user": "maria",
		"sale_price":       "15.00",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// El historial devuelve ambos, más reciente primero.
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/movements?product_id=prod-1", nil)
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list struct {
		Items []map[string]any `json:"items"`
		Page  map[string]any   `json:"page"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "OUTBOUND", list.Items[0]["type"])
	assert.Equal(t, float64(2), list.Page["totalElements"])
}

func TestMovementEndpoint_MapeoDeErrores(t *testing.T) {
	app := buildMovementApp(t)

	cases := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{
			name: "producto inexistente",
			body: map[string]any{
				"product_id": "no-existe", "type": "OUTBOUND", "quantity": 1,
				"reason": "SALE", "responsible_user": "maria", "sale_price": "15.00",
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "PRODUCT_NOT_FOUND",
		},
		{
			name: "cantidad cero",
			body: map[string]any{
				"product_id": "prod-1", "type": "INBOUND", "quantity": 0,
				"reason": "RESTOCK", "responsible_user": "maria",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_QUANTITY",
		},
		{
			name: "sin responsable",
			body: map[string]any{
				"product_id": "prod-1", "type": "INBOUND", "quantity": 1,
				"reason": "RESTOCK",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "MISSING_RESPONSIBLE",
		},
		{
			name: "motivo de otro tipo",
			body: map[string]any{
				"product_id": "prod-1", "type": "INBOUND", "quantity": 1,
				"reason": "SALE", "responsible_user": "maria",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REASON",
		},
		{
			name: "salida sin precio",
			body: map[string]any{
				"product_id": "prod-1", "type": "OUTBOUND", "quantity": 1,
				"reason": "SALE", "responsible_user": "maria",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "MISSING_SALE_PRICE",
		},
		{
			name: "stock insuficiente",
			body: map[string]any{
				"product_id": "prod-1", "type": "OUTBOUND", "quantity": 999,
				"reason": "SALE", "responsible_user": "maria", "sale_price": "15.00",
			},
			wantStatus: http.StatusConflict,
			wantCode:   "INSUFFICIENT_STOCK",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postMovement(t, app, tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.wantStatus, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantCode, body["code"])
		})
	}
}

func TestMovementEndpoint_SinToken(t *testing.T) {
	app := buildMovementApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/inventory/movements", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
