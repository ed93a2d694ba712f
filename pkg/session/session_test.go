package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/angelmondragon/storefront-backend/pkg/config"
)

const cookieName = "storefront_session"

func testConfig(backend string) config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-session-secret",
		Backend:    backend,
		CookieName: cookieName,
		MaxAge:     3600,
	}
}

type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeKV) SessionKey(id string) string { return "sf:session:" + id }

type cartLine struct {
	Name string `json:"name"`
}

func TestSessionValueHelpers(t *testing.T) {
	store := NewCookieStore(testConfig("cookie"))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	raw, err := store.Get(r, cookieName)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	sess := Wrap(raw)

	var lines []cartLine
	found, err := sess.Get("cart", &lines)
	if err != nil || found {
		t.Fatalf("expected missing cart, found=%v err=%v", found, err)
	}
	if sess.Dirty() {
		t.Fatal("fresh session should not be dirty")
	}

	if err := sess.Set("cart", []cartLine{{Name: "Desk Lamp"}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !sess.Dirty() {
		t.Fatal("set should mark the session dirty")
	}
	found, err = sess.Get("cart", &lines)
	if err != nil || !found || len(lines) != 1 || lines[0].Name != "Desk Lamp" {
		t.Fatalf("unexpected cart %+v found=%v err=%v", lines, found, err)
	}

	raw.Values["broken"] = 42
	if _, err := sess.Get("broken", &lines); err == nil {
		t.Fatal("expected error for non-string value")
	}

	sess.Delete("cart")
	if found, _ := sess.Get("cart", &lines); found {
		t.Fatal("cart should be deleted")
	}
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(testConfig("cookie"))

	first := httptest.NewRequest(http.MethodPost, "/add_to_cart", nil)
	raw, _ := store.Get(first, cookieName)
	sess := Wrap(raw)
	if err := sess.Set("cart", []cartLine{{Name: "Smart Watch"}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	w := httptest.NewRecorder()
	if err := sess.Save(first, w); err != nil {
		t.Fatalf("save: %v", err)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cookieName {
		t.Fatalf("expected one session cookie, got %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie should be http only")
	}

	second := httptest.NewRequest(http.MethodGet, "/cart", nil)
	second.AddCookie(cookies[0])
	raw, err := store.Get(second, cookieName)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	var lines []cartLine
	if found, err := Wrap(raw).Get("cart", &lines); err != nil || !found || lines[0].Name != "Smart Watch" {
		t.Fatalf("cart did not survive round trip: %+v found=%v err=%v", lines, found, err)
	}
}

func TestSaveSkipsCleanSession(t *testing.T) {
	store := NewCookieStore(testConfig("cookie"))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	raw, _ := store.Get(r, cookieName)

	w := httptest.NewRecorder()
	if err := Wrap(raw).Save(r, w); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatal("clean session should not write a cookie")
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store, err := NewRedisStore(kv, testConfig("redis"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	first := httptest.NewRequest(http.MethodPost, "/add_to_cart", nil)
	raw, err := store.Get(first, cookieName)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !raw.IsNew {
		t.Fatal("expected new session without cookie")
	}
	sess := Wrap(raw)
	if err := sess.Set("cart", []cartLine{{Name: "Leather Wallet"}}); err != nil {
		t.Fatalf("set: %v", err)
	}
	w := httptest.NewRecorder()
	if err := sess.Save(first, w); err != nil {
		t.Fatalf("save: %v", err)
	}
	if sess.ID() == "" {
		t.Fatal("redis sessions must be assigned an id")
	}

	key := kv.SessionKey(sess.ID())
	if !strings.Contains(kv.data[key], "Leather Wallet") {
		t.Fatalf("expected values in redis, got %q", kv.data[key])
	}
	if kv.ttls[key] != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", kv.ttls[key])
	}

	cookie := w.Result().Cookies()[0]
	if strings.Contains(cookie.Value, "Leather") {
		t.Fatal("cookie must only carry the signed id")
	}

	second := httptest.NewRequest(http.MethodGet, "/cart", nil)
	second.AddCookie(cookie)
	raw, err = store.Get(second, cookieName)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	reloaded := Wrap(raw)
	if reloaded.IsNew() || reloaded.ID() != sess.ID() {
		t.Fatalf("expected existing session %s, got %s new=%v", sess.ID(), reloaded.ID(), reloaded.IsNew())
	}
	var lines []cartLine
	if found, err := reloaded.Get("cart", &lines); err != nil || !found || lines[0].Name != "Leather Wallet" {
		t.Fatalf("cart did not survive: %+v found=%v err=%v", lines, found, err)
	}
}

func TestRedisStoreTamperedCookieStartsFresh(t *testing.T) {
	store, _ := NewRedisStore(newFakeKV(), testConfig("redis"))

	r := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "forged"})
	raw, err := store.New(r, cookieName)
	if err == nil {
		t.Fatal("expected decode error for forged cookie")
	}
	if raw == nil || !raw.IsNew || len(raw.Values) != 0 {
		t.Fatalf("expected a fresh session, got %+v", raw)
	}
}

func TestRedisStoreExpiredValuesStartFresh(t *testing.T) {
	kv := newFakeKV()
	store, _ := NewRedisStore(kv, testConfig("redis"))

	first := httptest.NewRequest(http.MethodPost, "/", nil)
	raw, _ := store.Get(first, cookieName)
	sess := Wrap(raw)
	_ = sess.Set("cart", []cartLine{{Name: "Desk Lamp"}})
	w := httptest.NewRecorder()
	if err := sess.Save(first, w); err != nil {
		t.Fatalf("save: %v", err)
	}
	delete(kv.data, kv.SessionKey(sess.ID()))

	second := httptest.NewRequest(http.MethodGet, "/cart", nil)
	second.AddCookie(w.Result().Cookies()[0])
	raw, err := store.Get(second, cookieName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !raw.IsNew || raw.ID != "" {
		t.Fatalf("expected fresh session once redis values expired, got id=%q new=%v", raw.ID, raw.IsNew)
	}
}

func TestRedisStoreDeleteOnNegativeMaxAge(t *testing.T) {
	kv := newFakeKV()
	store, _ := NewRedisStore(kv, testConfig("redis"))

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	raw, _ := store.Get(r, cookieName)
	raw.Values["cart"] = "[]"
	if err := store.Save(r, httptest.NewRecorder(), raw); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw.Options.MaxAge = -1
	w := httptest.NewRecorder()
	if err := store.Save(r, w, raw); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := kv.data[kv.SessionKey(raw.ID)]; ok {
		t.Fatal("expected redis values to be deleted")
	}
	if c := w.Result().Cookies()[0]; c.MaxAge >= 0 {
		t.Fatalf("expected expiring cookie, got max age %d", c.MaxAge)
	}
}

func TestRedisStoreRejectsNonStringValues(t *testing.T) {
	store, _ := NewRedisStore(newFakeKV(), testConfig("redis"))
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	raw, _ := store.Get(r, cookieName)
	raw.Values["count"] = 3
	if err := store.Save(r, httptest.NewRecorder(), raw); err == nil {
		t.Fatal("expected error for non-string session value")
	}
}

func TestNewStore(t *testing.T) {
	if _, err := NewStore(config.SessionConfig{Backend: "cookie"}, nil); err == nil {
		t.Fatal("expected error without secret")
	}
	if _, err := NewStore(testConfig("redis"), nil); err == nil {
		t.Fatal("expected error for redis backend without client")
	}
	if _, err := NewStore(testConfig("memcached"), nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	store, err := NewStore(testConfig("cookie"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(interface{ MaxAge(int) }); !ok {
		t.Fatalf("expected cookie store, got %T", store)
	}
	store, err = NewStore(testConfig("redis"), newFakeKV())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*RedisStore); !ok {
		t.Fatalf("expected redis store, got %T", store)
	}
}
