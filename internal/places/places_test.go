package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Options{
		Endpoint:   server.URL + "/",
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	if _, err := NewClient(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestSearchCity_DedupesInFirstSeenOrder(t *testing.T) {
	responses := map[string]string{
		"notary public in Springfield, IL": `{"places":[{"id":"a","displayName":{"text":"A"}},{"id":"b","displayName":{"text":"B"}}]}`,
		"notary services Springfield, IL":  `{"places":[{"id":"b","displayName":{"text":"B again"}},{"id":"c","displayName":{"text":"C"}}]}`,
		"notary Springfield, IL":           `{"places":[{"id":"a"},{"id":"d","displayName":{"text":"D"}}]}`,
	}

	var queries []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/places:searchText" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get(fieldMaskHeader) == "" {
			t.Errorf("expected field mask header")
		}
		var body struct {
			TextQuery      string `json:"textQuery"`
			MaxResultCount int    `json:"maxResultCount"`
			LanguageCode   string `json:"languageCode"`
			LocationBias   struct {
				Circle struct {
					Center struct {
						Latitude  float64 `json:"latitude"`
						Longitude float64 `json:"longitude"`
					} `json:"center"`
					Radius float64 `json:"radius"`
				} `json:"circle"`
			} `json:"locationBias"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body.MaxResultCount != MaxResultCount || body.LanguageCode != "en" {
			t.Errorf("unexpected request options: %+v", body)
		}
		if body.LocationBias.Circle.Radius != BiasRadiusMeters || body.LocationBias.Circle.Center.Latitude != 39.78 {
			t.Errorf("unexpected location bias: %+v", body.LocationBias)
		}
		queries = append(queries, body.TextQuery)

		resp, ok := responses[body.TextQuery]
		if !ok {
			writeJSON(w, http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota"}}`)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	got, err := client.SearchCity(context.Background(), "Springfield, IL", &LatLng{Latitude: 39.78, Longitude: -89.65})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 4 {
		t.Fatalf("expected 4 queries, got %d", len(queries))
	}

	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	if strings.Join(ids, ",") != "a,b,c,d" {
		t.Fatalf("unexpected merge order: %v", ids)
	}
	if got[1].Name != "B" {
		t.Fatalf("expected first-seen record to win, got %q", got[1].Name)
	}
}

func TestSearchCity_StopsOnCancel(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusOK, `{"places":[{"id":"x"}]}`)
	})
	client.queryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	got, err := client.SearchCity(ctx, "Nowhere", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
	if calls != 1 || len(got) != 1 {
		t.Fatalf("expected one query before cancel, got calls=%d results=%d", calls, len(got))
	}
}

func TestFetchDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/places/abc":
			if r.Header.Get(fieldMaskHeader) != DetailFieldMask {
				t.Errorf("unexpected field mask %q", r.Header.Get(fieldMaskHeader))
			}
			writeJSON(w, http.StatusOK, `{
				"id":"abc",
				"displayName":{"text":"Ace Notary"},
				"formattedAddress":"123 Main St, Springfield, IL 62704, USA",
				"location":{"latitude":39.78,"longitude":-89.65},
				"rating":4.8,
				"userRatingCount":12,
				"websiteUri":"https://calendly.com/ace",
				"internationalPhoneNumber":"+1 217-555-0100",
				"currentOpeningHours":{"openNow":true},
				"regularOpeningHours":{"periods":[{"open":{"day":1,"hour":9}}]},
				"editorialSummary":{"text":"Mobile notary"},
				"reviews":[{"rating":5,"text":{"text":"Great"},"authorAttribution":{"displayName":"Sam"},"relativePublishTimeDescription":"a week ago"}],
				"photos":[{"name":"places/abc/photos/p1","authorAttributions":[{"displayName":"Owner"}]}]
			}`)
		case "/v1/places/abc/photos/p1/media":
			q := r.URL.Query()
			if q.Get("maxHeightPx") != "400" || q.Get("maxWidthPx") != "600" || q.Get("skipHttpRedirect") != "true" {
				t.Errorf("unexpected photo params: %v", q)
			}
			writeJSON(w, http.StatusOK, `{"name":"places/abc/photos/p1/media","photoUri":"https://img.example.com/p1.jpg"}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	detail := client.FetchDetail(context.Background(), "abc")
	if detail == nil {
		t.Fatalf("expected detail")
	}
	if detail.Name != "Ace Notary" || detail.Rating != 4.8 || detail.UserRatingCount != 12 {
		t.Fatalf("unexpected detail: %+v", detail.Place)
	}
	if !detail.OpenNow || detail.EditorialSummary != "Mobile notary" || detail.Website != "https://calendly.com/ace" {
		t.Fatalf("unexpected detail fields: %+v", detail)
	}
	if len(detail.OpeningPeriods) == 0 {
		t.Fatalf("expected opening periods")
	}
	if len(detail.Reviews) != 1 || detail.Reviews[0].Author != "Sam" || detail.Reviews[0].Text != "Great" {
		t.Fatalf("unexpected reviews: %+v", detail.Reviews)
	}
	if detail.Photo == nil || detail.Photo.URL != "https://img.example.com/p1.jpg" || detail.Photo.Attribution != "Owner" {
		t.Fatalf("unexpected photo: %+v", detail.Photo)
	}
	if len(detail.Raw) == 0 {
		t.Fatalf("expected raw payload")
	}
}

func TestFetchDetail_PhotoFailureIsSwallowed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/media") {
			writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"denied"}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id":"abc","displayName":{"text":"Ace"},"photos":[{"name":"places/abc/photos/p1"}]}`)
	})

	detail := client.FetchDetail(context.Background(), "abc")
	if detail == nil {
		t.Fatalf("expected detail despite photo failure")
	}
	if detail.Photo != nil {
		t.Fatalf("expected no photo, got %+v", detail.Photo)
	}
}

func TestFetchDetail_FailureReturnsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error":{"code":404,"message":"not found"}}`)
	})

	if detail := client.FetchDetail(context.Background(), "missing"); detail != nil {
		t.Fatalf("expected nil detail, got %+v", detail)
	}
}

func TestBackoff(t *testing.T) {
	transient := &googleapi.Error{Code: http.StatusServiceUnavailable}

	t.Run("retries transient errors", func(t *testing.T) {
		var calls int
		err := Backoff{Attempts: 2, Initial: time.Millisecond}.Do(context.Background(), "op", func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Fatalf("expected success after 3 calls, got calls=%d err=%v", calls, err)
		}
	})

	t.Run("gives up after attempts", func(t *testing.T) {
		var calls int
		err := Backoff{Attempts: 1, Initial: time.Millisecond}.Do(context.Background(), "op", func(ctx context.Context) error {
			calls++
			return transient
		})
		if !errors.Is(err, transient) || calls != 2 {
			t.Fatalf("expected 2 calls and transient error, got calls=%d err=%v", calls, err)
		}
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls int
		_ = Backoff{Attempts: 5, Initial: time.Millisecond}.Do(context.Background(), "op", func(ctx context.Context) error {
			calls++
			return &googleapi.Error{Code: http.StatusBadRequest}
		})
		if calls != 1 {
			t.Fatalf("expected a single call, got %d", calls)
		}
	})

	t.Run("no retry", func(t *testing.T) {
		var calls int
		_ = NoRetry{}.Do(context.Background(), "op", func(ctx context.Context) error {
			calls++
			return transient
		})
		if calls != 1 {
			t.Fatalf("expected a single call, got %d", calls)
		}
	})
}

func TestQueryVariants(t *testing.T) {
	got := QueryVariants("Austin, TX")
	want := []string{"notary public in Austin, TX", "notary services Austin, TX", "mobile notary Austin, TX", "notary Austin, TX"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected variants: %v", got)
	}
}

func TestRetryable(t *testing.T) {
	tests := map[string]struct {
		err  error
		want bool
	}{
		"rate limited":      {err: &googleapi.Error{Code: http.StatusTooManyRequests}, want: true},
		"server error":      {err: &googleapi.Error{Code: http.StatusBadGateway}, want: true},
		"bad request":       {err: &googleapi.Error{Code: http.StatusBadRequest}},
		"connection reset":  {err: &url.Error{Op: "Post", URL: "https://places.googleapis.com", Err: &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}}, want: true},
		"wrapped transport": {err: fmt.Errorf("search text: %w", &url.Error{Op: "Post", URL: "https://places.googleapis.com", Err: errors.New("EOF")}), want: true},
		"cancelled":         {err: &url.Error{Op: "Post", URL: "https://places.googleapis.com", Err: context.Canceled}},
		"plain error":       {err: errors.New("decode response")},
		"nil":               {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Fatalf("expected %t, got %t", tt.want, got)
			}
		})
	}
}
