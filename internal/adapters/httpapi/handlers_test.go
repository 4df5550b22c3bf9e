package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Campus-Club-Council/club-portal-api/internal/adapters/httpapi"
	memclubrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/clubrepo"
	memeventrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/eventrepo"
	memmembershiprepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/membershiprepo"
	memreviewrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/reviewrepo"
	memuserrepo "github.com/Campus-Club-Council/club-portal-api/internal/adapters/memory/userrepo"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/accounts"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/clubs"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/events"
	"github.com/Campus-Club-Council/club-portal-api/internal/app/reviews"
	"github.com/Campus-Club-Council/club-portal-api/internal/domain"
	platclock "github.com/Campus-Club-Council/club-portal-api/internal/platform/clock"
	"github.com/Campus-Club-Council/club-portal-api/internal/platform/websession"
	portuserrepo "github.com/Campus-Club-Council/club-portal-api/internal/ports/out/userrepo"
)

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "h:" + plaintext, nil }
func (fakeHasher) Verify(plaintext, digest string) bool  { return digest == "h:"+plaintext }

type harness struct {
	srv       *httptest.Server
	users     *memuserrepo.Repo
	uploadDir string
}

// client returns an HTTP client with its own cookie jar that does not follow
// redirects, so tests can assert on 303 responses directly.
func (h *harness) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clk := platclock.NewManualClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	userRepo := memuserrepo.NewRepo()
	clubRepo := memclubrepo.NewRepo()
	membershipRepo := memmembershiprepo.NewRepo()
	eventRepo := memeventrepo.NewRepo()
	reviewRepo := memreviewrepo.NewRepo()

	viewsDir := t.TempDir()
	for _, name := range []string{
		"home.html", "clubs.html", "events.html", "clubdetails.html",
		"signIn.html", "register.html", "studentHome.html", "adminHome.html",
	} {
		if err := os.WriteFile(filepath.Join(viewsDir, name), []byte("<html>"+name+"</html>"), 0o644); err != nil {
			t.Fatalf("write view %s: %v", name, err)
		}
	}

	uploadDir := t.TempDir()
	server := httpapi.NewServer(httpapi.ServerConfig{
		Accounts: accounts.NewService(userRepo, clk, fakeHasher{}, nil),
		Clubs:    clubs.NewService(clubRepo, userRepo, membershipRepo, clk),
		Events:   events.NewService(eventRepo),
		Reviews:  reviews.NewService(reviewRepo, clk),
		Sessions: websession.NewManager("test-secret"),
		Uploads:  httpapi.NewUploadStore(uploadDir),
		ViewsDir: viewsDir,
	})

	srv := httptest.NewServer(httpapi.NewRouter(server))
	t.Cleanup(srv.Close)

	return &harness{srv: srv, users: userRepo, uploadDir: uploadDir}
}

func (h *harness) seedAdmin(t *testing.T, username, password string) {
	t.Helper()
	err := h.users.Create(context.Background(), portuserrepo.User{
		ID:           "00000000-0000-0000-0000-0000000000ad",
		Username:     username,
		PasswordHash: "h:" + password,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Unix(1, 0).UTC(),
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func (h *harness) register(t *testing.T, c *http.Client, username, password string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("userName", username)
	_ = mw.WriteField("password", password)
	_ = mw.WriteField("password2", password)
	_ = mw.Close()

	resp, err := c.Post(h.srv.URL+"/registerPage", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/signInPage" {
		t.Fatalf("register: status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func (h *harness) signIn(t *testing.T, c *http.Client, path, username, password, wantHome string) {
	t.Helper()
	form := fmt.Sprintf("name=%s&password=%s", username, password)
	resp, err := c.Post(h.srv.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form))
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != wantHome {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("sign in: status=%d location=%q body=%s", resp.StatusCode, resp.Header.Get("Location"), body)
	}
}

func (h *harness) doJSON(t *testing.T, c *http.Client, method, path string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestRegisterSignInAndCurrentUser(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	c := h.client(t)

	h.register(t, c, "alice", "pw1")
	h.signIn(t, c, "/studentSignIn", "alice", "pw1", "/studentHome")

	resp := h.doJSON(t, c, http.MethodGet, "/api/user", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var user struct {
		Username string `json:"username"`
		UserType int    `json:"userType"`
	}
	decodeInto(t, resp, &user)
	if user.Username != "alice" || user.UserType != 1 {
		t.Fatalf("user=%+v", user)
	}

	// Sign out kills the session.
	resp = h.doJSON(t, c, http.MethodGet, "/signOut", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/home" {
		t.Fatalf("signOut: status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}
	resp = h.doJSON(t, c, http.MethodGet, "/api/user", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("after signOut status=%d", resp.StatusCode)
	}
}

func TestSignIn_WrongRoleRejected(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	c := h.client(t)

	h.register(t, c, "bob", "pw")

	form := "name=bob&password=pw"
	resp, err := c.Post(h.srv.URL+"/adminSignIn", "application/x-www-form-urlencoded", strings.NewReader(form))
	if err != nil {
		t.Fatalf("adminSignIn: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var er httpapi.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("code=%q", er.Error.Code)
	}
}

func TestClubRoutes_AdminGate(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	body := map[string]any{"id": 1, "name": "Chess Club", "category": "Games", "description": "d"}

	// Anonymous: 401.
	anon := h.client(t)
	resp := h.doJSON(t, anon, http.MethodPost, "/api/clubs", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anon status=%d", resp.StatusCode)
	}

	// Student: 403.
	student := h.client(t)
	h.register(t, student, "carol", "pw")
	h.signIn(t, student, "/studentSignIn", "carol", "pw", "/studentHome")
	resp = h.doJSON(t, student, http.MethodPost, "/api/clubs", body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("student status=%d", resp.StatusCode)
	}

	// Admin: created.
	admin := h.client(t)
	h.seedAdmin(t, "root", "adminpw")
	h.signIn(t, admin, "/adminSignIn", "root", "adminpw", "/adminHome")
	resp = h.doJSON(t, admin, http.MethodPost, "/api/clubs", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("admin status=%d", resp.StatusCode)
	}
	var created struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decodeInto(t, resp, &created)
	if created.ID != 1 || created.Name != "Chess Club" {
		t.Fatalf("created=%+v", created)
	}
}

func TestClubUpdate_NullClearsPhoto(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	admin := h.client(t)
	h.seedAdmin(t, "root", "adminpw")
	h.signIn(t, admin, "/adminSignIn", "root", "adminpw", "/adminHome")

	resp := h.doJSON(t, admin, http.MethodPost, "/api/clubs", map[string]any{
		"id": 1, "name": "Chess Club", "category": "Games", "description": "d", "photo": "/uploads/x.png",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d", resp.StatusCode)
	}

	// Omitted photo: unchanged. Sent as null: cleared.
	resp = h.doJSON(t, admin, http.MethodPut, "/api/clubs/1", map[string]any{"name": "Chess Society"})
	var updated struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	decodeInto(t, resp, &updated)
	if updated.Name != "Chess Society" || updated.Photo != "/uploads/x.png" {
		t.Fatalf("updated=%+v", updated)
	}

	resp = h.doJSON(t, admin, http.MethodPut, "/api/clubs/1", map[string]any{"photo": nil})
	var cleared struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	decodeInto(t, resp, &cleared)
	if cleared.Photo != "" {
		t.Fatalf("photo=%q", cleared.Photo)
	}
}

func TestJoinLeaveFlow(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	admin := h.client(t)
	h.seedAdmin(t, "root", "adminpw")
	h.signIn(t, admin, "/adminSignIn", "root", "adminpw", "/adminHome")
	resp := h.doJSON(t, admin, http.MethodPost, "/api/clubs", map[string]any{
		"id": 1, "name": "Chess Club", "category": "Games", "description": "d",
	})
	resp.Body.Close()

	student := h.client(t)
	h.register(t, student, "dana", "pw")
	h.signIn(t, student, "/studentSignIn", "dana", "pw", "/studentHome")

	resp = h.doJSON(t, student, http.MethodPost, "/api/clubs/1/join", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join status=%d", resp.StatusCode)
	}
	var count struct {
		MemberCount int `json:"memberCount"`
	}
	decodeInto(t, resp, &count)
	if count.MemberCount != 1 {
		t.Fatalf("memberCount=%d", count.MemberCount)
	}

	// Joining twice surfaces the conflict.
	resp = h.doJSON(t, student, http.MethodPost, "/api/clubs/1/join", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("re-join status=%d", resp.StatusCode)
	}
	var er httpapi.ErrorResponse
	decodeInto(t, resp, &er)
	if er.Error.Code != "ALREADY_MEMBER" {
		t.Fatalf("code=%q", er.Error.Code)
	}

	// The directory shows the member by username.
	resp = h.doJSON(t, student, http.MethodGet, "/api/clubs/1", nil)
	var details struct {
		Members []struct {
			Username string `json:"username"`
		} `json:"members"`
		MemberCount int `json:"memberCount"`
	}
	decodeInto(t, resp, &details)
	if details.MemberCount != 1 || len(details.Members) != 1 || details.Members[0].Username != "dana" {
		t.Fatalf("details=%+v", details)
	}

	resp = h.doJSON(t, student, http.MethodPost, "/api/clubs/1/leave", nil)
	decodeInto(t, resp, &count)
	if count.MemberCount != 0 {
		t.Fatalf("memberCount after leave=%d", count.MemberCount)
	}
}

func TestEventCRUD(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	admin := h.client(t)
	h.seedAdmin(t, "root", "adminpw")
	h.signIn(t, admin, "/adminSignIn", "root", "adminpw", "/adminHome")

	resp := h.doJSON(t, admin, http.MethodPost, "/api/events", map[string]any{
		"id": 1, "name": "Spring Fair", "date": "2026-04-10", "time": "14:00",
		"location": "Main Hall", "description": "d", "clubId": 1,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d", resp.StatusCode)
	}

	resp = h.doJSON(t, admin, http.MethodPut, "/api/events/1", map[string]any{"location": "Room 201"})
	var ev struct {
		Location string `json:"location"`
		Name     string `json:"name"`
	}
	decodeInto(t, resp, &ev)
	if ev.Location != "Room 201" || ev.Name != "Spring Fair" {
		t.Fatalf("event=%+v", ev)
	}

	anon := h.client(t)
	resp = h.doJSON(t, anon, http.MethodGet, "/api/events?search=spring", nil)
	var list []struct {
		ID int64 `json:"id"`
	}
	decodeInto(t, resp, &list)
	if len(list) != 1 || list[0].ID != 1 {
		t.Fatalf("list=%+v", list)
	}

	resp = h.doJSON(t, admin, http.MethodDelete, "/api/events/1", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status=%d", resp.StatusCode)
	}
	resp = h.doJSON(t, anon, http.MethodGet, "/api/events/1", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status=%d", resp.StatusCode)
	}
}

func TestReviews(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	anon := h.client(t)
	resp := h.doJSON(t, anon, http.MethodPost, "/api/reviews", map[string]any{
		"name": "A", "rating": 5, "review": "x", "club": "Chess Club",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anon create status=%d", resp.StatusCode)
	}

	student := h.client(t)
	h.register(t, student, "erin", "pw")
	h.signIn(t, student, "/studentSignIn", "erin", "pw", "/studentHome")

	resp = h.doJSON(t, student, http.MethodPost, "/api/reviews", map[string]any{
		"name": "Erin", "rating": 4, "review": "Good club", "club": "Chess Club",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = h.doJSON(t, anon, http.MethodGet, "/api/reviews", nil)
	var list []struct {
		Name   string `json:"name"`
		Rating int    `json:"rating"`
	}
	decodeInto(t, resp, &list)
	if len(list) != 1 || list[0].Name != "Erin" || list[0].Rating != 4 {
		t.Fatalf("list=%+v", list)
	}
}

func TestReviewNameDefaultsToSessionUsername(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	c := h.client(t)
	h.register(t, c, "hana", "pw")
	h.signIn(t, c, "/studentSignIn", "hana", "pw", "/studentHome")

	resp := h.doJSON(t, c, http.MethodPost, "/api/reviews", map[string]any{
		"rating": 4, "review": "great club", "club": "Chess Club",
	})
	var created struct {
		Name string `json:"name"`
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status=%d", resp.StatusCode)
	}
	decodeInto(t, resp, &created)
	if created.Name != "hana" {
		t.Fatalf("name=%q, want session username", created.Name)
	}

	// A blank name defaults the same way as an omitted one.
	resp = h.doJSON(t, c, http.MethodPost, "/api/reviews", map[string]any{
		"name": "   ", "rating": 5, "review": "still great", "club": "Chess Club",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("blank-name create status=%d", resp.StatusCode)
	}
	decodeInto(t, resp, &created)
	if created.Name != "hana" {
		t.Fatalf("blank name=%q, want session username", created.Name)
	}
}

func TestPageGates(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	anon := h.client(t)
	resp := h.doJSON(t, anon, http.MethodGet, "/studentHome", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/signInPage" {
		t.Fatalf("anon studentHome: status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}

	student := h.client(t)
	h.register(t, student, "fay", "pw")
	h.signIn(t, student, "/studentSignIn", "fay", "pw", "/studentHome")

	resp = h.doJSON(t, student, http.MethodGet, "/studentHome", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("student studentHome status=%d", resp.StatusCode)
	}

	// A student hitting the admin page is redirected, not errored.
	resp = h.doJSON(t, student, http.MethodGet, "/adminHome", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/signInPage" {
		t.Fatalf("student adminHome: status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestRegisterWithPhotoUpload(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	c := h.client(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("userName", "gia")
	_ = mw.WriteField("password", "pw")
	_ = mw.WriteField("password2", "pw")
	fw, err := mw.CreateFormFile("photo", "me.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write([]byte("not-a-real-png"))
	_ = mw.Close()

	resp, err := c.Post(h.srv.URL+"/registerPage", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	h.signIn(t, c, "/studentSignIn", "gia", "pw", "/studentHome")
	resp = h.doJSON(t, c, http.MethodGet, "/api/user", nil)
	var user struct {
		Photo *string `json:"photo"`
	}
	decodeInto(t, resp, &user)
	if user.Photo == nil || !strings.HasPrefix(*user.Photo, "/uploads/") || !strings.HasSuffix(*user.Photo, ".png") {
		t.Fatalf("photo=%v", user.Photo)
	}

	// The stored file is served back.
	resp = h.doJSON(t, c, http.MethodGet, *user.Photo, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("uploads status=%d", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if string(b) != "not-a-real-png" {
		t.Fatalf("body=%q", b)
	}
}

func TestRegisterFailureRemovesUploadedPhoto(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	c := h.client(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("userName", "ivy")
	_ = mw.WriteField("password", "pw")
	_ = mw.WriteField("password2", "other")
	fw, err := mw.CreateFormFile("photo", "me.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = fw.Write([]byte("not-a-real-png"))
	_ = mw.Close()

	resp, err := c.Post(h.srv.URL+"/registerPage", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d", resp.StatusCode)
	}

	entries, err := os.ReadDir(h.uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("upload dir not empty after failed registration: %v", entries)
	}
}
