package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilderTriggers(t *testing.T) {
	rr := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerItemAdded("abc").
		TriggerFormReset().
		TriggerSuccessNotification("fatto").
		BodyHTML("<div>ok</div>").
		Write(rr)

	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}

	var triggers map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rr.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	for _, name := range []string{"item:added", "form:reset", "show-notification"} {
		if _, ok := triggers[name]; !ok {
			t.Fatalf("missing trigger %q in %v", name, triggers)
		}
	}

	var notif struct {
		Type     string `json:"type"`
		Message  string `json:"message"`
		Duration int    `json:"duration"`
	}
	if err := json.Unmarshal(triggers["show-notification"], &notif); err != nil {
		t.Fatalf("notification payload: %v", err)
	}
	if notif.Type != "success" || notif.Message != "fatto" || notif.Duration != 3000 {
		t.Fatalf("notification=%+v", notif)
	}
}

func TestErrorNotificationDuration(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().TriggerErrorNotification("boom").Write(rr)

	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, `"duration":5000`) {
		t.Fatalf("error notifications should linger, HX-Trigger=%q", trigger)
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	BadRequestError(`<script>alert(1)</script>`).Write(rr)

	if rr.Code != 400 {
		t.Fatalf("status=%d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "<script>") {
		t.Fatalf("message was not escaped: %s", rr.Body.String())
	}
}

func TestMethodNotAllowedBuilder(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedError("POST, DELETE").Write(rr)

	if rr.Code != 405 {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Header().Get("Allow") != "POST, DELETE" {
		t.Fatalf("Allow=%q", rr.Header().Get("Allow"))
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  Riso  ", "Riso"},
		{"Pane\x00integrale", "Paneintegrale"},
		{"con\ttab", "con\ttab"},
		{"", ""},
	}
	for _, c := range cases {
		if got := sanitizeInput(c.in); got != c.want {
			t.Fatalf("sanitizeInput(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
