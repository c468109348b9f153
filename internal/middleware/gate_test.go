package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"none", "", "", ""},
		{"cookie", "abc", "", "abc"},
		{"bearer header", "", "Bearer xyz", "xyz"},
		{"cookie wins", "abc", "Bearer xyz", "abc"},
		{"non-bearer header ignored", "", "Basic dXNlcjpwdw==", ""},
		{"lowercase bearer ignored", "", "bearer xyz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := ExtractToken(r); got != tt.want {
				t.Errorf("ExtractToken = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGateDecisionTable(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		cookie       string
		header       string
		wantRedirect string
	}{
		{"anonymous protected page", "/dashboard", "", "", "/login"},
		{"anonymous root", "/", "", "", "/login"},
		{"anonymous login page", "/login", "", "", ""},
		{"anonymous login subpath", "/login/reset", "", "", ""},
		{"cookie on login page", "/login", "abc", "", "/"},
		{"header on protected page", "/dashboard", "", "Bearer abc", ""},
		{"cookie on protected page", "/settings", "abc", "", ""},
		{"header on login page", "/login", "", "Bearer abc", "/"},
		{"prefix match is literal", "/loginhelp", "abc", "", "/"},
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gated := Gate(nil)(ok)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			if got := DecideGate(r, nil).Redirect; got != tt.wantRedirect {
				t.Errorf("DecideGate redirect = %q, want %q", got, tt.wantRedirect)
			}

			rec := httptest.NewRecorder()
			gated.ServeHTTP(rec, r)
			if tt.wantRedirect == "" {
				if rec.Code != http.StatusOK {
					t.Errorf("status = %d, want 200", rec.Code)
				}
				return
			}
			if rec.Code != http.StatusTemporaryRedirect {
				t.Errorf("status = %d, want 307", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.wantRedirect {
				t.Errorf("Location = %q, want %q", loc, tt.wantRedirect)
			}
		})
	}
}

func TestGateVerifierTreatsRejectedTokenAsAbsent(t *testing.T) {
	rejectAll := Verifier(func(string) bool { return false })

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "forged"})
	if got := DecideGate(r, rejectAll).Redirect; got != LoginPath {
		t.Errorf("protected page redirect = %q, want %q", got, LoginPath)
	}

	r = httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "forged"})
	if got := DecideGate(r, rejectAll).Redirect; got != "" {
		t.Errorf("login page redirect = %q, want none", got)
	}
}
