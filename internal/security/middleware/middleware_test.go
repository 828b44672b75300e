package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsPublic(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/auth/register", true},
		{http.MethodPost, "/auth/login", true},
		{http.MethodGet, "/health", true},
		{http.MethodGet, "/metrics", true},
		{http.MethodGet, "/towers", true},
		{http.MethodGet, "/towers/5", true},
		{http.MethodGet, "/units", true},
		{http.MethodGet, "/amenities/2", true},
		{http.MethodPost, "/towers", false},
		{http.MethodPut, "/units/5", false},
		{http.MethodDelete, "/amenities/2", false},
		{http.MethodGet, "/bookings", false},
		{http.MethodGet, "/leases", false},
		{http.MethodGet, "/auth/me", false},
		{http.MethodGet, "/stats/dashboard", false},
		{http.MethodGet, "/towersextra", false},
		{http.MethodOptions, "/leases", true},
		{http.MethodOptions, "/bookings/3", true},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		if got := isPublic(r); got != tc.want {
			t.Errorf("isPublic(%s %s) = %v, want %v", tc.method, tc.path, got, tc.want)
		}
	}
}
