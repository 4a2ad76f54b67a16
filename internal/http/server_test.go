package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"lista/internal/list"
	applog "lista/internal/log"
	"lista/internal/persist/memory"
	"lista/internal/services"
)

func newTestServer(t *testing.T) (*Server, *services.ListService) {
	t.Helper()
	svc := services.NewListService(list.New(), memory.New(), nil)
	srv, err := NewServer(":0", svc, applog.New(applog.DefaultConfig()))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv, svc
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func doPost(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Lista della Spesa") {
		t.Fatalf("index body missing heading")
	}
	if !strings.Contains(rr.Body.String(), "La lista è vuota") {
		t.Fatalf("empty list should render placeholder")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := doGet(t, srv, path); rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestSubmitItemAddsAndRenders(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doPost(t, srv, "/items", url.Values{
		"product":  {"Riso"},
		"price":    {"5,00"},
		"quantity": {"2"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}

	body := rr.Body.String()
	for _, want := range []string{"Riso", "€5,00", "€10,00"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}

	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "item:added") || !strings.Contains(trigger, "show-notification") {
		t.Fatalf("HX-Trigger=%q", trigger)
	}
}

func TestSubmitItemValidationFailure(t *testing.T) {
	srv, svc := newTestServer(t)

	rr := doPost(t, srv, "/items", url.Values{
		"product":  {"   "},
		"price":    {"abc"},
		"quantity": {"0"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", rr.Code)
	}
	if got := len(svc.Snapshot().Items); got != 0 {
		t.Fatalf("invalid submit mutated the list, items=%d", got)
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "error") {
		t.Fatalf("expected error notification, HX-Trigger=%q", rr.Header().Get("HX-Trigger"))
	}
}

func TestEditFlow(t *testing.T) {
	srv, svc := newTestServer(t)

	doPost(t, srv, "/items", url.Values{"product": {"Pane"}, "price": {"1,50"}, "quantity": {"1"}})
	id := svc.Snapshot().Items[0].ID

	rr := doPost(t, srv, "/items/edit", url.Values{"id": {id}})
	if rr.Code != http.StatusOK {
		t.Fatalf("edit status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Aggiorna") {
		t.Fatalf("edit mode should flip the submit label")
	}
	if !strings.Contains(rr.Body.String(), "Annulla") {
		t.Fatalf("edit mode should offer cancel")
	}

	rr = doPost(t, srv, "/items", url.Values{"product": {"Pane integrale"}, "price": {"2,00"}, "quantity": {"2"}})
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "item:updated") {
		t.Fatalf("HX-Trigger=%q", rr.Header().Get("HX-Trigger"))
	}

	items := svc.Snapshot().Items
	if len(items) != 1 {
		t.Fatalf("update must not grow the list, items=%d", len(items))
	}
	if items[0].ID != id || items[0].Product != "Pane integrale" || items[0].PriceCents != 200 {
		t.Fatalf("unexpected item after update: %+v", items[0])
	}
	if !strings.Contains(rr.Body.String(), "Aggiungi") {
		t.Fatalf("form should return to add mode after update")
	}
}

func TestEditUnknownItem(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doPost(t, srv, "/items/edit", url.Values{"id": {"missing"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "Voce non trovata") {
		t.Fatalf("HX-Trigger=%q", rr.Header().Get("HX-Trigger"))
	}
}

func TestCancelEdit(t *testing.T) {
	srv, svc := newTestServer(t)

	doPost(t, srv, "/items", url.Values{"product": {"Latte"}, "price": {"1,20"}, "quantity": {"1"}})
	id := svc.Snapshot().Items[0].ID
	doPost(t, srv, "/items/edit", url.Values{"id": {id}})

	rr := doPost(t, srv, "/items/cancel", nil)
	if !strings.Contains(rr.Body.String(), "Aggiungi") {
		t.Fatalf("cancel should return to add mode")
	}
	if _, editing := svc.Editing(); editing {
		t.Fatalf("cancel left the edit marker set")
	}
}

func TestDeleteItem(t *testing.T) {
	srv, svc := newTestServer(t)

	doPost(t, srv, "/items", url.Values{"product": {"Uova"}, "price": {"3,00"}, "quantity": {"1"}})
	id := svc.Snapshot().Items[0].ID
	doPost(t, srv, "/items/edit", url.Values{"id": {id}})

	rr := doPost(t, srv, "/items/delete", url.Values{"id": {id}})
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "item:removed") || !strings.Contains(trigger, "form:reset") {
		t.Fatalf("deleting the edited item should reset the form, HX-Trigger=%q", trigger)
	}
	if got := len(svc.Snapshot().Items); got != 0 {
		t.Fatalf("items=%d after delete", got)
	}
}

func TestChangeBudgetAndBalance(t *testing.T) {
	srv, _ := newTestServer(t)

	doPost(t, srv, "/items", url.Values{"product": {"Riso"}, "price": {"5,00"}, "quantity": {"2"}})
	doPost(t, srv, "/items", url.Values{"product": {"Fagioli"}, "price": {"4,50"}, "quantity": {"3"}})

	rr := doPost(t, srv, "/budget", url.Values{"budget": {"30"}})
	body := rr.Body.String()
	if !strings.Contains(body, "€30,00") {
		t.Fatalf("budget missing from render")
	}
	if !strings.Contains(body, "€6,50") {
		t.Fatalf("balance missing from render: %s", body)
	}

	// The budget form applies on field change, not only on submit.
	if !strings.Contains(body, `change from:input[name='budget']`) {
		t.Fatalf("budget form missing the change trigger")
	}

	// Garbage clears the budget back to the unset placeholder.
	rr = doPost(t, srv, "/budget", url.Values{"budget": {"garbage"}})
	if !strings.Contains(rr.Body.String(), "–") {
		t.Fatalf("unset budget should render as placeholder")
	}
}

func TestOverspentBalance(t *testing.T) {
	srv, _ := newTestServer(t)

	doPost(t, srv, "/items", url.Values{"product": {"Riso"}, "price": {"10,00"}, "quantity": {"2"}})
	rr := doPost(t, srv, "/budget", url.Values{"budget": {"15"}})

	body := rr.Body.String()
	if !strings.Contains(body, "-€5,00") {
		t.Fatalf("negative balance missing: %s", body)
	}
	if !strings.Contains(body, "negative") {
		t.Fatalf("overspent balance should carry the negative class")
	}
}

func TestExportCSV(t *testing.T) {
	srv, _ := newTestServer(t)
	doPost(t, srv, "/items", url.Values{"product": {"Riso"}, "price": {"5,00"}, "quantity": {"2"}})

	rr := doGet(t, srv, "/export/csv")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("Content-Type=%q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("Content-Disposition=%q", cd)
	}
	if !strings.Contains(rr.Body.String(), "Riso") {
		t.Fatalf("CSV body missing item")
	}
}

func TestExportSheetsUnconfigured(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doPost(t, srv, "/export/sheets", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(t, srv, "/items")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Header().Get("Allow") != "POST" {
		t.Fatalf("Allow=%q", rr.Header().Get("Allow"))
	}
}
