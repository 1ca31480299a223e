package order

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-orders/internal/logger"
	"restaurant-orders/internal/storage"
)

func newTestMux(t *testing.T) (*http.ServeMux, *storage.MemoryCatalog) {
	t.Helper()
	catalog := storage.NewMemoryCatalog()
	orders := storage.NewMemoryOrders()
	service := NewService(orders, catalog.Lookup, nil, logger.New("order-test"))
	handler := NewHandler(service, logger.New("order-test"))

	mux := http.NewServeMux()
	handler.Register(mux)
	return mux, catalog
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func orderBody(menuItemID int) string {
	return fmt.Sprintf(`{
		"customer": {"name": "John Doe", "phone": "5551234567"},
		"items": [
			{"menu_item_id": %d, "menu_item_name": "Margherita Pizza", "quantity": 2, "unit_price": 12.50}
		]
	}`, menuItemID)
}

func TestCreateOrderHandler(t *testing.T) {
	mux, catalog := newTestMux(t)
	id := seedMenuItem(t, catalog, "Margherita Pizza", true)

	rec := doJSON(t, mux, http.MethodPost, "/orders", orderBody(id))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["id"] != float64(1) {
		t.Errorf("id = %v, want 1", resp["id"])
	}
	if resp["status"] != "pending" {
		t.Errorf("status = %v, want pending", resp["status"])
	}
	if resp["total_items_count"] != float64(2) {
		t.Errorf("total_items_count = %v, want 2", resp["total_items_count"])
	}
	body := rec.Body.String()
	for _, want := range []string{`"items_total":25.00`, `"total_amount":27.99`, `"delivery_fee":2.99`} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s in body, got %s", want, body)
		}
	}
}

func TestCreateOrderHandlerUnknownMenuItem(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/orders", orderBody(42))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "not_found") {
		t.Errorf("expected not_found reason in body, got %s", rec.Body.String())
	}
}

func TestCreateOrderHandlerUnavailableMenuItem(t *testing.T) {
	mux, catalog := newTestMux(t)
	id := seedMenuItem(t, catalog, "Tiramisu", false)

	rec := doJSON(t, mux, http.MethodPost, "/orders", orderBody(id))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "unavailable") {
		t.Errorf("expected unavailable reason in body, got %s", rec.Body.String())
	}
}

func TestCreateOrderHandlerStructuralFailure(t *testing.T) {
	mux, _ := newTestMux(t)

	body := `{
		"customer": {"name": "J", "phone": "123"},
		"items": []
	}`
	rec := doJSON(t, mux, http.MethodPost, "/orders", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	for _, rule := range []string{"customer_name_length", "customer_phone_format", "items_required"} {
		if !strings.Contains(rec.Body.String(), rule) {
			t.Errorf("expected rule %s in body, got %s", rule, rec.Body.String())
		}
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	mux, catalog := newTestMux(t)
	id := seedMenuItem(t, catalog, "Margherita Pizza", true)

	if rec := doJSON(t, mux, http.MethodPost, "/orders", orderBody(id)); rec.Code != http.StatusCreated {
		t.Fatalf("seed status = %d, want 201", rec.Code)
	}

	rec := doJSON(t, mux, http.MethodPut, "/orders/1/status", `{"status": "delivered"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"delivered"`) {
		t.Errorf("expected delivered status in body, got %s", rec.Body.String())
	}

	if rec := doJSON(t, mux, http.MethodPut, "/orders/1/status", `{"status": "cancelled"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, mux, http.MethodPut, "/orders/42/status", `{"status": "ready"}`); rec.Code != http.StatusNotFound {
		t.Errorf("missing order status = %d, want 404", rec.Code)
	}
}

func TestListOrdersHandler(t *testing.T) {
	mux, catalog := newTestMux(t)
	id := seedMenuItem(t, catalog, "Margherita Pizza", true)

	if rec := doJSON(t, mux, http.MethodPost, "/orders", orderBody(id)); rec.Code != http.StatusCreated {
		t.Fatalf("seed status = %d, want 201", rec.Code)
	}

	rec := doJSON(t, mux, http.MethodGet, "/orders", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var summaries []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	if summaries[0]["customer_name"] != "John Doe" {
		t.Errorf("customer_name = %v, want John Doe", summaries[0]["customer_name"])
	}
}

func TestGetOrderHandler(t *testing.T) {
	mux, catalog := newTestMux(t)
	id := seedMenuItem(t, catalog, "Margherita Pizza", true)

	if rec := doJSON(t, mux, http.MethodPost, "/orders", orderBody(id)); rec.Code != http.StatusCreated {
		t.Fatalf("seed status = %d, want 201", rec.Code)
	}

	rec := doJSON(t, mux, http.MethodGet, "/orders/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"total_amount":27.99`) {
		t.Errorf("expected derived total in body, got %s", rec.Body.String())
	}

	if rec := doJSON(t, mux, http.MethodGet, "/orders/42", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing order status = %d, want 404", rec.Code)
	}
}
