package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"freiplatz/internal/access"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/services"
	"freiplatz/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSearchService struct {
	calls      int
	categoryID uuid.UUID
	err        error
}

func (s *stubSearchService) Search(_ context.Context, _ *access.Principal, req request_models.SearchRequest) (*response_models.SearchPage, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	req = req.WithDefaults()
	return &response_models.SearchPage{
		Data: []response_models.SearchResult{},
		Meta: response_models.SearchMeta{Page: req.Page, Limit: req.Limit, Filters: req},
	}, nil
}

func (s *stubSearchService) SearchByCategory(ctx context.Context, p *access.Principal, categoryID uuid.UUID, req request_models.SearchRequest) (*response_models.SearchPage, error) {
	s.categoryID = categoryID
	return s.Search(ctx, p, req)
}

var _ services.SearchServiceInterface = (*stubSearchService)(nil)

func searchRouter(svc services.SearchServiceInterface) *gin.Engine {
	ctrl := NewSearchController(svc)
	r := gin.New()
	r.POST("/search", ctrl.Search)
	r.POST("/search/category/:categoryId", ctrl.SearchByCategory)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchBinding(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty filters", `{}`, http.StatusOK},
		{"limit too large", `{"limit": 101}`, http.StatusBadRequest},
		{"unknown sort", `{"sortBy": "name"}`, http.StatusBadRequest},
		{"bad gender", `{"genderSuitability": "x"}`, http.StatusBadRequest},
		{"latitude out of range", `{"latitude": 91, "longitude": 0}`, http.StatusBadRequest},
		{"negative radius", `{"radius": -1, "latitude": 1, "longitude": 1}`, http.StatusBadRequest},
		{"malformed json", `{"limit":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSearchService{}
			w := post(searchRouter(svc), "/search", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
			if tt.want == http.StatusBadRequest && svc.calls != 0 {
				t.Fatal("service must not be called for invalid input")
			}
		})
	}
}

func TestSearchResponseShape(t *testing.T) {
	w := post(searchRouter(&stubSearchService{}), "/search", `{"page": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Status string `json:"status"`
		Meta   struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "success" || body.Meta.Page != 2 || body.Meta.Limit != request_models.DefaultSearchLimit {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSearchByCategory(t *testing.T) {
	svc := &stubSearchService{}
	id := uuid.New()

	if w := post(searchRouter(svc), "/search/category/"+id.String(), ""); w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if svc.categoryID != id {
		t.Fatalf("category = %s, want %s", svc.categoryID, id)
	}

	if w := post(searchRouter(svc), "/search/category/not-a-uuid", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	chunked := httptest.NewRequest(http.MethodPost, "/search/category/"+id.String(), strings.NewReader(""))
	chunked.ContentLength = -1
	chunked.TransferEncoding = []string{"chunked"}
	chunked.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	searchRouter(svc).ServeHTTP(w, chunked)
	if w.Code != http.StatusOK {
		t.Fatalf("chunked empty body: status = %d (%s)", w.Code, w.Body.String())
	}

	if w := post(searchRouter(svc), "/search/category/"+id.String(), `{"limit":`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status = %d, want 400", w.Code)
	}

	notFound := &stubSearchService{err: utils.ErrCategoryNotFound}
	if w := post(searchRouter(notFound), "/search/category/"+id.String(), `{}`); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
