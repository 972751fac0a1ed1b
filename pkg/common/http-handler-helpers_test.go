package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matst80/slask-wardrobe/pkg/session"
	"github.com/stretchr/testify/assert"
)

func TestJsonHandlerSetsSessionCookie(t *testing.T) {
	store := session.NewStore(time.Hour)
	var seen *session.Session
	handler := JsonHandler(store, func(r *http.Request, s *session.Session) (any, error) {
		seen = s
		return map[string]string{"id": s.Id}, nil
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/filter", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=UTF-8", rec.Header().Get("Content-Type"))
	cookies := rec.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.Equal(t, seen.Id, cookies[0].Value)
	}

	req := httptest.NewRequest("GET", "/api/filter", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	first := seen
	handler(rec, req)
	assert.Same(t, first, seen)
	assert.Empty(t, rec.Result().Cookies())
}

func TestJsonHandlerErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{BadRequest(errors.New("bad")), http.StatusBadRequest},
		{NotFound(errors.New("missing")), http.StatusNotFound},
		{Unprocessable(errors.New("invalid")), http.StatusUnprocessableEntity},
		{BadGateway(errors.New("upstream")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		handler := JsonHandler(nil, func(r *http.Request, s *session.Session) (any, error) {
			return nil, c.err
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest("POST", "/api/draft/save", nil))
		assert.Equal(t, c.status, rec.Code, c.err.Error())
		assert.Contains(t, rec.Body.String(), c.err.Error())
	}
}

func TestOptions(t *testing.T) {
	handler := JsonHandler(nil, func(r *http.Request, s *session.Session) (any, error) {
		t.Error("handler should not run for OPTIONS")
		return nil, nil
	})
	req := httptest.NewRequest("OPTIONS", "/api/filter", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHostname(t *testing.T) {
	assert.Equal(t, "example.com", hostname("example.com:8080"))
	assert.Equal(t, "example.com", hostname("example.com"))
	assert.Equal(t, "[::1]", hostname("[::1]:8080"))
}
