package fleetapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/dto/response"
	"fleet-admin/internal/seatlayout"
	"fleet-admin/pkg/utils"
)

func writeEnvelope(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(utils.Response{Status: code < 300, Message: message, Data: data})
}

func TestClient_CreateSendsBodyAndToken(t *testing.T) {
	var gotAuth, gotMethod, gotPath string
	var gotBody request.BusConfigurationRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod, gotPath = r.Method, r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		writeEnvelope(w, http.StatusCreated, "created", response.BusConfigurationResponse{
			ID:         "cfg-1",
			Name:       gotBody.Name,
			TotalSeats: gotBody.TotalSeats,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", time.Second, WithToken("secret"))
	got, err := c.Create(context.Background(), &request.BusConfigurationRequest{
		Name:       "Coach",
		BusType:    "Standard",
		TotalSeats: 13,
		SeatLayout: seatlayout.Layout{Rows: 3, Columns: 4, Pattern: seatlayout.Pattern2x2},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/api/bus-configurations" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.SeatLayout.Pattern != seatlayout.Pattern2x2 {
		t.Errorf("body = %+v", gotBody)
	}
	if got.ID != "cfg-1" || got.TotalSeats != 13 {
		t.Errorf("response = %+v", got)
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{"Server message", http.StatusNotFound, `{"status":false,"message":"bus configuration not found"}`, 404, "bus configuration not found"},
		{"No body", http.StatusBadGateway, ``, 502, "request failed with status 502"},
		{"Not JSON", http.StatusInternalServerError, `<html>oops</html>`, 500, "request failed with status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Get(context.Background(), "x")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Get() error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.wantStatus || apiErr.Message != tt.wantMessage {
				t.Errorf("APIError = %+v", apiErr)
			}
		})
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":true,"data":`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Get(context.Background(), "x")
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		t.Fatalf("Get() error = %v, want decode error", err)
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error = %q, want decode context", err)
	}
}

func TestClient_ListQueryAndPage(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		page := response.NewPaginatedResponse([]response.BusConfigurationResponse{{ID: "a"}, {ID: "b"}}, 2, 2, 5)
		writeEnvelope(w, http.StatusOK, "ok", page)
	}))
	defer srv.Close()

	page, err := NewClient(srv.URL, time.Second).List(context.Background(), ListParams{Page: 2, PerPage: 2, BusType: "VIP", Search: "night run"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotQuery != "bus_type=VIP&page=2&per_page=2&search=night+run" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(page.Data) != 2 || page.Pagination.Total != 5 || page.Pagination.TotalPages != 3 {
		t.Errorf("page = %+v", page)
	}
}

func TestClient_DeleteValidateClone(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodDelete:
			writeEnvelope(w, http.StatusOK, "deleted", nil)
		case strings.HasSuffix(r.URL.Path, "/validate"):
			writeEnvelope(w, http.StatusOK, "valid", response.ConfigurationValidationResponse{Valid: true, TotalSeats: 13, Corrected: true})
		case strings.HasSuffix(r.URL.Path, "/clone"):
			var body request.CloneConfigurationRequest
			json.NewDecoder(r.Body).Decode(&body)
			writeEnvelope(w, http.StatusCreated, "cloned", response.BusConfigurationResponse{ID: "copy", Name: body.Name})
		case r.Method == http.MethodPatch:
			writeEnvelope(w, http.StatusOK, "updated", response.BusConfigurationResponse{ID: "a"})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	ctx := context.Background()

	if err := c.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	v, err := c.Validate(ctx, &request.BusConfigurationRequest{Name: "x"})
	if err != nil || v.TotalSeats != 13 || !v.Corrected {
		t.Errorf("Validate() = %+v, %v", v, err)
	}
	cl, err := c.Clone(ctx, "a", "Copy")
	if err != nil || cl.Name != "Copy" {
		t.Errorf("Clone() = %+v, %v", cl, err)
	}
	name := "B"
	if _, err := c.Update(ctx, "a", &request.BusConfigurationUpdateRequest{Name: &name}); err != nil {
		t.Errorf("Update() error = %v", err)
	}

	want := []string{"DELETE /bus-configurations/a", "POST /bus-configurations/validate", "POST /bus-configurations/a/clone", "PATCH /bus-configurations/a"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v", calls)
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Get(context.Background(), "x")
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		t.Errorf("Get() error = %v, want transport error", err)
	}
	if IsNotFound(err) {
		t.Error("transport error reported as not found")
	}
}
