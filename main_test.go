package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/zach-dev-waves/internal/live"
	"github.com/Zachkp/zach-dev-waves/internal/store"
	"github.com/Zachkp/zach-dev-waves/internal/trail"
)

func newTestApp(t *testing.T) (*app, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	hub := live.NewHub(live.Config{Options: trail.DefaultOptions(), Recorder: st})
	cfg := Config{
		AdminUsername:    "owner",
		AdminPassword:    "secret",
		TrailFrameRate:   60,
		VisitorRetention: 24 * time.Hour,
	}
	a := newApp(cfg, st, hub)
	t.Cleanup(func() {
		hub.Shutdown(context.Background())
		a.background.Wait()
		st.Close()
	})
	return a, a.router()
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {"owner"}, "password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(r, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/dashboard" {
		t.Fatalf("login: %d %s", w.Code, w.Header().Get("Location"))
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "admin_token" {
			return c
		}
	}
	t.Fatal("no admin_token cookie")
	return nil
}

func TestIndexTracksVisit(t *testing.T) {
	a, r := newTestApp(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/static/trail.js") {
		t.Fatalf("index: %d", w.Code)
	}

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	do(r, dnt)
	do(r, httptest.NewRequest(http.MethodGet, "/privacy", nil))

	a.background.Wait()
	visits, err := a.store.RecentVisitors(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 1 || visits[0].Path != "/" {
		t.Fatalf("visits = %+v", visits)
	}
	if visits[0].HashedIP == "" || strings.Contains(visits[0].HashedIP, ".") {
		t.Errorf("stored IP is not hashed: %q", visits[0].HashedIP)
	}
}

func TestTrailConfig(t *testing.T) {
	_, r := newTestApp(t)
	w := do(r, httptest.NewRequest(http.MethodGet, "/trail/config", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var d live.Description
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Threshold != 20 || d.Capacity != 19 || d.LifetimeMS != 1600 || len(d.Palette) != 8 {
		t.Fatalf("description = %+v", d)
	}
	if d.Palette[0] != "hsl(0, 100%, 60%)" {
		t.Errorf("palette[0] = %q", d.Palette[0])
	}
}

func TestAdminRequiresLogin(t *testing.T) {
	_, r := newTestApp(t)
	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/sessions"} {
		w := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
			t.Errorf("%s: %d %s", path, w.Code, w.Header().Get("Location"))
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "forged"})
	if w := do(r, req); w.Code != http.StatusFound {
		t.Errorf("forged token: %d", w.Code)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	_, r := newTestApp(t)
	form := url.Values{"username": {"owner"}, "password": {"wrong"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(r, req)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Fatalf("status %d", w.Code)
	}
}

func TestAdminStatsAndSessions(t *testing.T) {
	a, r := newTestApp(t)
	ctx := context.Background()
	cookie := login(t, r)

	now := time.Now()
	sess := store.Session{
		ID: uuid.NewString(), HashedIP: "abc", StartedAt: now.Add(-time.Minute), EndedAt: now,
		Moves: 120, Coalesced: 80, Frames: 40, Accepted: 12, Ignored: 28,
	}
	if err := a.store.RecordSession(ctx, sess); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	req.AddCookie(cookie)
	w := do(r, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: %d", w.Code)
	}
	var body struct {
		Stats          store.Stats `json:"stats"`
		ActiveSessions int         `json:"active_sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Stats.TotalSessions != 1 || body.Stats.TotalWaves != 12 || body.ActiveSessions != 0 {
		t.Fatalf("stats = %+v", body)
	}

	for _, path := range []string{"/admin/dashboard", "/admin/sessions", "/admin/visitors"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.AddCookie(cookie)
		if w := do(r, req); w.Code != http.StatusOK {
			t.Errorf("%s: %d", path, w.Code)
		}
	}

	del := httptest.NewRequest(http.MethodDelete, "/admin/sessions/"+sess.ID, nil)
	del.AddCookie(cookie)
	if w := do(r, del); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	del = httptest.NewRequest(http.MethodDelete, "/admin/sessions/"+sess.ID, nil)
	del.AddCookie(cookie)
	if w := do(r, del); w.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d", w.Code)
	}
}

func TestHashIPIsStableAndSalted(t *testing.T) {
	a, _ := newTestApp(t)
	b, _ := newTestApp(t)
	if a.hashIP("10.0.0.1") != a.hashIP("10.0.0.1") {
		t.Fatal("hash not stable")
	}
	if a.hashIP("10.0.0.1") == b.hashIP("10.0.0.1") {
		t.Fatal("hash not salted per instance")
	}
	if len(a.hashIP("10.0.0.1")) != 16 {
		t.Fatalf("hash length %d", len(a.hashIP("10.0.0.1")))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "TRAIL_FRAME_RATE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("VISITOR_RETENTION", "48h")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.TrailFrameRate != 60 || cfg.VisitorRetention != 48*time.Hour {
		t.Fatalf("cfg = %+v", cfg)
	}

	for _, rate := range []string{"0", "1001", "2000000000"} {
		t.Setenv("TRAIL_FRAME_RATE", rate)
		if _, err := loadConfig(); err == nil {
			t.Fatalf("frame rate %s accepted", rate)
		}
	}
	t.Setenv("TRAIL_FRAME_RATE", "1000")
	if _, err := loadConfig(); err != nil {
		t.Fatalf("frame rate 1000 rejected: %v", err)
	}
}
