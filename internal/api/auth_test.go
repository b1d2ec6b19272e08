package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getlisted/getlisted-go/internal/apierr"
	"github.com/getlisted/getlisted-go/internal/types"
)

func TestMe_Success(t *testing.T) {
	t.Parallel()
	want := types.User{ID: "u1", FirstName: "Ada", Email: "a@b.com", Role: "startup"}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/me" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		b, _ := json.Marshal(types.UserResponse{Data: want})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	got, err := Me(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if got == nil || got.ID != want.ID || got.Email != want.Email {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestMe_Rejected(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Not authorized"}`))
	}))
	defer srv.Close()

	_, err := Me(context.Background(), srv.Client(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 401")
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.StatusCode != http.StatusUnauthorized || ae.Message != "Not authorized" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var got types.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.Email != "a@b.com" || got.Password != "secret" {
			t.Fatalf("unexpected body: %+v", got)
		}
		b, _ := json.Marshal(types.AuthResponse{Token: "t1", User: types.User{ID: "u1", FirstName: "Ada"}})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	ar, err := Login(context.Background(), srv.Client(), srv.URL, "a@b.com", "secret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if ar.Token != "t1" || ar.User.ID != "u1" {
		t.Fatalf("unexpected response: %+v", ar)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := Login(context.Background(), srv.Client(), srv.URL, "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if apierr.DisplayMessage(err, "fallback") != "Invalid credentials" {
		t.Fatalf("server message lost: %v", err)
	}
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var got types.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.Role != "investor" {
			t.Fatalf("unexpected role: %q", got.Role)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Verification email sent"}`))
	}))
	defer srv.Close()

	sr, err := Register(context.Background(), srv.Client(), srv.URL, types.RegisterRequest{
		FirstName: "Ada", LastName: "L", Email: "a@b.com", Password: "pw", Role: "investor",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !sr.Success {
		t.Fatalf("unexpected response: %+v", sr)
	}
}

func TestLogout_NonOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/auth/logout" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := Logout(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for 500")
	}
}

func TestResetPassword_TokenInPath(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/auth/reset-password/rtok" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		b, _ := json.Marshal(types.AuthResponse{Token: "t2", User: types.User{ID: "u1"}})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	ar, err := ResetPassword(context.Background(), srv.Client(), srv.URL, "rtok", "newpw")
	if err != nil {
		t.Fatalf("ResetPassword error: %v", err)
	}
	if ar.Token != "t2" {
		t.Fatalf("unexpected token: %q", ar.Token)
	}
}

func TestResetPassword_EmptyToken(t *testing.T) {
	t.Parallel()
	dummy := httptest.NewServer(http.NotFoundHandler())
	defer dummy.Close()
	_, err := ResetPassword(context.Background(), dummy.Client(), dummy.URL, "", "pw")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation kind: %v", err)
	}
}

func TestVerifyEmail_TokenInPath(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/verify/vtok" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if err := VerifyEmail(context.Background(), srv.Client(), srv.URL, "vtok"); err != nil {
		t.Fatalf("VerifyEmail error: %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/update-details" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		b, _ := json.Marshal(types.UserResponse{Data: types.User{ID: "u1", FirstName: "Grace"}})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	u, err := UpdateProfile(context.Background(), srv.Client(), srv.URL, types.UpdateProfileRequest{FirstName: "Grace"})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if u.FirstName != "Grace" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/update-password" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var got types.UpdatePasswordRequest
		_ = json.NewDecoder(r.Body).Decode(&got)
		if got.CurrentPassword != "old" || got.NewPassword != "new" {
			t.Fatalf("unexpected body: %+v", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if err := UpdatePassword(context.Background(), srv.Client(), srv.URL, "old", "new"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
}

func TestAuth_CtxCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dummy := httptest.NewServer(http.NotFoundHandler())
	defer dummy.Close()
	if _, err := Me(ctx, dummy.Client(), dummy.URL); err == nil {
		t.Fatal("expected context canceled for Me")
	}
	if _, err := Login(ctx, dummy.Client(), dummy.URL, "a@b.com", "pw"); err == nil {
		t.Fatal("expected context canceled for Login")
	}
}

func TestAuth_TransportError(t *testing.T) {
	t.Parallel()
	hc := &http.Client{Transport: &errRT{}}
	_, err := Login(context.Background(), hc, "http://example.com", "a@b.com", "pw")
	if err == nil {
		t.Fatal("expected transport error")
	}
	if !apierr.IsKind(err, apierr.KindTransport) {
		t.Fatalf("expected transport kind: %v", err)
	}
}

func TestMe_CustomDoer(t *testing.T) {
	t.Parallel()
	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		rec := httptest.NewRecorder()
		rec.WriteHeader(http.StatusOK)
		_, _ = rec.WriteString(`{"data":{"_id":"u1"}}`)
		return rec.Result(), nil
	})
	u, err := Me(context.Background(), doer, "http://example.com")
	if err != nil {
		t.Fatalf("Me error: %v", err)
	}
	if u.ID != "u1" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestAuth_DecodeError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{bad json"))
	}))
	defer srv.Close()
	if _, err := Me(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected decode error from Me")
	}
}
