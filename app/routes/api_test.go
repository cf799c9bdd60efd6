package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/app/models"
	"github.com/aldeanavidad/tienda/app/routes"
	"github.com/aldeanavidad/tienda/config"
	"github.com/aldeanavidad/tienda/pkg/auth"
	"github.com/aldeanavidad/tienda/pkg/database"
	"github.com/aldeanavidad/tienda/pkg/router"
)

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestAPI(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	config.Set("JWT_SECRET", "secreto-de-pruebas")

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Offer{},
		&models.Order{}, &models.OrderItem{},
	))

	r := router.New()
	routes.Register(r, db, nil)
	return r.Handler(), db
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()

	hash, err := auth.HashPassword("contraseña123")
	require.NoError(t, err)
	u := models.User{Name: "Admin", Email: "admin@aldea.es", Password: hash, Role: "admin", Active: true}
	require.NoError(t, db.Create(&u).Error)

	token, err := auth.GenerateToken(u.ID, u.Role, u.Email, u.Name)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestAPI(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicCatalogHidesInactiveProducts(t *testing.T) {
	h, db := newTestAPI(t)

	require.NoError(t, db.Create(&models.Product{Name: "Turrón", Price: 12.50, Category: "dulces", Stock: 5, Active: true}).Error)
	require.NoError(t, db.Create(&models.Product{Name: "Retirado", Price: 1, Stock: 0, Active: false}).Error)

	rec, env := doJSON(t, h, http.MethodGet, "/api/productos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Turrón", products[0].Name)
}

func TestPublicCheckoutDecrementsStock(t *testing.T) {
	h, db := newTestAPI(t)

	p := models.Product{Name: "Turrón", Price: 12.50, Stock: 5, Active: true}
	require.NoError(t, db.Create(&p).Error)

	rec, env := doJSON(t, h, http.MethodPost, "/api/pedidos/publico", "", map[string]interface{}{
		"nombreCliente": "María García",
		"telefono":      "600111222",
		"lugarRecogida": "Plaza Mayor",
		"items": []map[string]interface{}{
			{"productoId": p.ID, "cantidad": 3},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var data struct {
		OK       bool    `json:"ok"`
		PedidoID uint    `json:"pedidoId"`
		Total    float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, data.OK)
	assert.InDelta(t, 37.50, data.Total, 0.001)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 2, got.Stock)
}

func TestPublicCheckoutConflicts(t *testing.T) {
	h, db := newTestAPI(t)

	scarce := models.Product{Name: "Roscón", Price: 20, Stock: 1, Active: true}
	retired := models.Product{Name: "Retirado", Price: 5, Stock: 10, Active: false}
	require.NoError(t, db.Create(&scarce).Error)
	require.NoError(t, db.Create(&retired).Error)

	order := func(id uint, qty int) (int, string) {
		rec, env := doJSON(t, h, http.MethodPost, "/api/pedidos/publico", "", map[string]interface{}{
			"nombreCliente": "Cliente",
			"telefono":      "600000000",
			"items":         []map[string]interface{}{{"productoId": id, "cantidad": qty}},
		})
		return rec.Code, env.Message
	}

	// Each conflict names the offending product so a multi-line cart
	// can be corrected.
	code, msg := order(scarce.ID, 2)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, msg, "Roscón")

	code, msg = order(retired.ID, 1)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, msg, "Retirado")

	code, msg = order(9999, 1)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, msg, "9999")
}

func TestPublicCheckoutValidation(t *testing.T) {
	h, _ := newTestAPI(t)

	rec, env := doJSON(t, h, http.MethodPost, "/api/pedidos/publico", "", map[string]interface{}{
		"telefono": "600000000",
		"items":    []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "nombreCliente")
}

func TestLoginAndAdminFlow(t *testing.T) {
	h, db := newTestAPI(t)
	adminToken(t, db)

	rec, env := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@aldea.es",
		"password": "contraseña123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token   string `json:"token"`
		Usuario struct {
			Rol string `json:"rol"`
		} `json:"usuario"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "admin", login.Usuario.Rol)

	// Admin listing requires the token.
	rec, _ = doJSON(t, h, http.MethodGet, "/api/admin/pedidos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/admin/pedidos", login.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	h, db := newTestAPI(t)
	adminToken(t, db)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "admin@aldea.es",
		"password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderStatusLifecycle(t *testing.T) {
	h, db := newTestAPI(t)
	token := adminToken(t, db)

	p := models.Product{Name: "Mazapán", Price: 8, Stock: 10, Active: true}
	require.NoError(t, db.Create(&p).Error)

	rec, env := doJSON(t, h, http.MethodPost, "/api/pedidos", token, map[string]interface{}{
		"nombreCliente": "Pedido telefónico",
		"telefono":      "611222333",
		"items":         []map[string]interface{}{{"productoId": p.ID, "cantidad": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		PedidoID uint `json:"pedidoId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Admin-entered orders record who created them.
	var stored models.Order
	require.NoError(t, db.First(&stored, created.PedidoID).Error)
	require.NotNil(t, stored.CreatedBy)

	path := fmt.Sprintf("/api/pedidos/%d/estado", created.PedidoID)

	rec, _ = doJSON(t, h, http.MethodPatch, path, token, map[string]string{"estado": "confirmado"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPatch, path, token, map[string]string{"estado": "enviado"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPatch, "/api/pedidos/9999/estado", token, map[string]string{"estado": "entregado"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductRequiresCategory(t *testing.T) {
	h, db := newTestAPI(t)
	token := adminToken(t, db)

	post := func(fields map[string]string) (*httptest.ResponseRecorder, envelope) {
		var buf bytes.Buffer
		form := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, form.WriteField(k, v))
		}
		require.NoError(t, form.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/productos", &buf)
		req.Header.Set("Content-Type", form.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		var env envelope
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
		return rec, env
	}

	rec, env := post(map[string]string{"nombre": "Turrón", "precio": "12.50"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, env.Errors, "categoria")

	rec, _ = post(map[string]string{"nombre": "Turrón", "precio": "12.50", "categoria": "dulces"})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestStockUpdateAndSoftDelete(t *testing.T) {
	h, db := newTestAPI(t)
	token := adminToken(t, db)

	p := models.Product{Name: "Polvorón", Price: 3, Stock: 10, Active: true}
	require.NoError(t, db.Create(&p).Error)

	rec, _ := doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/productos/%d/stock", p.ID), token, map[string]int{"stock": 25})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/productos/%d", p.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 25, got.Stock)
	assert.False(t, got.Active)

	// Gone from the public catalog, still present for the admin.
	rec, env := doJSON(t, h, http.MethodGet, "/api/productos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var public []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &public))
	assert.Empty(t, public)

	rec, env = doJSON(t, h, http.MethodGet, "/api/admin/productos", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 1)
}
