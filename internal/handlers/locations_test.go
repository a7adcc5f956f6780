package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dronedata/internal/models"
	"dronedata/internal/service"
)

func getWithSession(r http.Handler, target, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(sessionCookie(token))
	}
	r.ServeHTTP(w, req)
	return w
}

func assertRedirectHome(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Fatalf("status=%d, want 302 (body=%s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/" {
		t.Fatalf("Location=%q, want /", got)
	}
}

func TestLocationRoutes_UnauthenticatedNeverReachListing(t *testing.T) {
	deps := newTestDeps()
	r := newTestRouter(deps.service())

	paths := []string{"/default", "/nangi", "/nangidata", "/pulchowkdata", "/dharandata", "/dhangadidata", "/all", "/data/nangi/a.csv", "/datadefault.txt", "/ws", "/api/v1/logs"}
	for _, p := range paths {
		assertRedirectHome(t, getWithSession(r, p, ""))
	}
	if len(deps.listing.calls) != 0 {
		t.Fatalf("listing called without a session: %v", deps.listing.calls)
	}
}

func TestLocationStatus(t *testing.T) {
	cases := []struct {
		location string
		path     string
		wantHref string
	}{
		{"default", "/default", "../datadefault.txt"},
		{"nangi", "/nangi", "/nangidata"},
		{"pulchowk", "/pulchowk", "/pulchowkdata"},
		{"dharan", "/dharan", "/dharandata"},
		{"dhangadi", "/dhangadi", "/dhangadidata"},
	}
	for _, tc := range cases {
		t.Run(tc.location, func(t *testing.T) {
			deps := newTestDeps(models.User{ID: 1, Username: "u", Location: tc.location})
			tok := deps.sessions.add(1)
			r := newTestRouter(deps.service())

			w := getWithSession(r, tc.path, tok)
			if w.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `href="`+tc.wantHref+`"`) {
				t.Fatalf("href %q not rendered: %s", tc.wantHref, w.Body.String())
			}
		})
	}
}

func TestLocationStatus_All(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "chief", Location: "all"})
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	w := getWithSession(r, "/all", tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Status of all stations") {
		t.Fatalf("statusall not rendered: %s", w.Body.String())
	}
}

func TestLocationStatus_MismatchRedirects(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "sita", Location: "dharan"})
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	w := getWithSession(r, "/pulchowk", tok)
	assertRedirectHome(t, w)
	if strings.Contains(w.Body.String(), "pulchowkdata") {
		t.Fatalf("protected content leaked: %s", w.Body.String())
	}

	if len(deps.events.recorded) != 1 {
		t.Fatalf("expected one audit event, got %d", len(deps.events.recorded))
	}
	ev := deps.events.recorded[0]
	if ev.Type != models.EventDenied || ev.Username != "sita" || ev.Location != "dharan" {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
}

func TestLocationStatus_LiteralMatchOnly(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "ram", Location: "nangi"})
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	for _, target := range []string{"/nangi?tab=1", "/nang%69"} {
		assertRedirectHome(t, getWithSession(r, target, tok))
	}
}

func TestLocationRoutes_CaseAndTrailingSlashVariantsDenied(t *testing.T) {
	targets := []string{"/pulchowk/", "/pulchowkdata/", "/Pulchowk", "/PULCHOWKDATA", "/pulchowk//"}

	t.Run("own location", func(t *testing.T) {
		deps := newTestDeps(models.User{ID: 1, Username: "hari", Location: "pulchowk"})
		tok := deps.sessions.add(1)
		r := newTestRouter(deps.service())

		for _, target := range targets {
			w := getWithSession(r, target, tok)
			assertRedirectHome(t, w)
			if strings.Contains(w.Body.String(), "/pulchowkdata\"") {
				t.Fatalf("%s: status page leaked: %s", target, w.Body.String())
			}
		}
		if len(deps.listing.calls) != 0 {
			t.Fatalf("listing computed for a variant path: %v", deps.listing.calls)
		}
		types := deps.events.types()
		if len(types) != len(targets) {
			t.Fatalf("events=%v, want one denial per target", types)
		}
		for i, ev := range deps.events.recorded {
			if ev.Type != models.EventDenied || ev.Location != "pulchowk" {
				t.Fatalf("event %d: %+v", i, ev)
			}
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		deps := newTestDeps()
		r := newTestRouter(deps.service())

		for _, target := range targets {
			assertRedirectHome(t, getWithSession(r, target, ""))
		}
		if len(deps.events.recorded) != 0 {
			t.Fatalf("anonymous requests audited: %v", deps.events.types())
		}
	})
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "ram", Location: "nangi"})
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	for _, target := range []string{"/kathmandu", "/favicon.ico", "/api/v2/logs"} {
		assertRedirectHome(t, getWithSession(r, target, tok))
		assertRedirectHome(t, getWithSession(r, target, ""))
	}
	if len(deps.events.recorded) != 0 {
		t.Fatalf("unrelated paths audited: %v", deps.events.types())
	}
}

func TestLocationRouteVariant(t *testing.T) {
	cases := []struct {
		path       string
		wantSuffix string
		wantOK     bool
	}{
		{"/pulchowk/", service.SuffixStatus, true},
		{"/Pulchowk", service.SuffixStatus, true},
		{"/pulchowkdata/", service.SuffixData, true},
		{"/ALL/", service.SuffixStatus, true},
		{"/alldata", "", false},
		{"/defaultdata", "", false},
		{"/kathmandu", "", false},
	}
	for _, tc := range cases {
		suffix, ok := locationRouteVariant(tc.path)
		if ok != tc.wantOK || suffix != tc.wantSuffix {
			t.Errorf("locationRouteVariant(%q) = %q, %v; want %q, %v", tc.path, suffix, ok, tc.wantSuffix, tc.wantOK)
		}
	}
}

func TestLocationData_ListsFiles(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "ram", Location: "nangi"})
	deps.listing.files = []models.FileEntry{
		{FileName: "../data/nangi/report.pdf", FileTime: "Mon, 15 Jan 2024 02:45:00 GMT"},
		{FileName: "../data/nangi/notes.txt", FileTime: "Mon, 15 Jan 2024 03:45:00 GMT"},
	}
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	w := getWithSession(r, "/nangidata", tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "<title>data of nangi</title>") {
		t.Fatalf("missing title: %s", body)
	}
	first := strings.Index(body, "../data/nangi/report.pdf")
	second := strings.Index(body, "../data/nangi/notes.txt")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("files missing or out of order: %s", body)
	}
	if len(deps.listing.calls) != 1 || deps.listing.calls[0] != "nangi" {
		t.Fatalf("listing calls=%v", deps.listing.calls)
	}
	if types := deps.events.types(); len(types) != 1 || types[0] != models.EventListing {
		t.Fatalf("events=%v", types)
	}
}

func TestLocationData_MismatchNeverLists(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "sita", Location: "dharan"})
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	for _, p := range []string{"/pulchowkdata", "/nangidata", "/dhangadidata"} {
		assertRedirectHome(t, getWithSession(r, p, tok))
	}
	if len(deps.listing.calls) != 0 {
		t.Fatalf("listing computed for a denied request: %v", deps.listing.calls)
	}
}

func TestLocationData_QueryStringIsCompared(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "ram", Location: "nangi"})
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	assertRedirectHome(t, getWithSession(r, "/nangidata?x=1", tok))
	if len(deps.listing.calls) != 0 {
		t.Fatalf("listing should not run")
	}
}

func TestLocationData_DirectoryUnavailable(t *testing.T) {
	deps := newTestDeps(models.User{ID: 1, Username: "ram", Location: "nangi"})
	deps.listing.err = errors.Join(service.ErrDirectoryUnavailable, os.ErrNotExist)
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service())

	w := getWithSession(r, "/nangidata", tok)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "<table>") {
		t.Fatalf("partial page written: %s", w.Body.String())
	}
}

func TestLocationRoutes_DeletedUserRedirects(t *testing.T) {
	deps := newTestDeps()
	tok := deps.sessions.add(77) // session outlived its account
	r := newTestRouter(deps.service())

	assertRedirectHome(t, getWithSession(r, "/nangi", tok))
}

func TestDataRoutes_ServeFilesWithSession(t *testing.T) {
	public := t.TempDir()
	if err := os.MkdirAll(filepath.Join(public, "data", "nangi"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(public, "data", "nangi", "a.csv"), []byte("x,y\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(public, "datadefault.txt"), []byte("default"), 0o644); err != nil {
		t.Fatal(err)
	}

	deps := newTestDeps(models.User{ID: 1, Username: "ram", Location: "nangi"})
	tok := deps.sessions.add(1)
	r := newTestRouter(deps.service(), Options{PublicDir: public})

	w := getWithSession(r, "/data/nangi/a.csv", tok)
	if w.Code != http.StatusOK || w.Body.String() != "x,y\n" {
		t.Fatalf("data file: status=%d body=%q", w.Code, w.Body.String())
	}
	w = getWithSession(r, "/datadefault.txt", tok)
	if w.Code != http.StatusOK || w.Body.String() != "default" {
		t.Fatalf("default file: status=%d body=%q", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(newTestDeps().service())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}
