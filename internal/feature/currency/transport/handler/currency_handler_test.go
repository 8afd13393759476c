package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"market_gateway/internal/feature/currency/domain/entity"
	"market_gateway/internal/shared/apperr"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockCurrencyUsecase はCurrencyUsecaseインターフェースのモック実装です。
type mockCurrencyUsecase struct {
	ListCurrenciesFunc func(ctx context.Context) ([]entity.Currency, error)
	ListByCurrencyFunc func(ctx context.Context, code string) ([]entity.Currency, error)
	EventsFunc         func(ctx context.Context, parite string) (json.RawMessage, error)
	PerformanceFunc    func(ctx context.Context, parite string) (json.RawMessage, error)
	NewsFunc           func(ctx context.Context, parite, lang string) (json.RawMessage, error)
	StoryFunc          func(ctx context.Context, storyPath, lang string) (json.RawMessage, error)
	Calls              int
}

func (m *mockCurrencyUsecase) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	m.Calls++
	return m.ListCurrenciesFunc(ctx)
}

func (m *mockCurrencyUsecase) ListByCurrency(ctx context.Context, code string) ([]entity.Currency, error) {
	m.Calls++
	return m.ListByCurrencyFunc(ctx, code)
}

func (m *mockCurrencyUsecase) Events(ctx context.Context, parite string) (json.RawMessage, error) {
	m.Calls++
	return m.EventsFunc(ctx, parite)
}

func (m *mockCurrencyUsecase) Performance(ctx context.Context, parite string) (json.RawMessage, error) {
	m.Calls++
	return m.PerformanceFunc(ctx, parite)
}

func (m *mockCurrencyUsecase) News(ctx context.Context, parite, lang string) (json.RawMessage, error) {
	m.Calls++
	return m.NewsFunc(ctx, parite, lang)
}

func (m *mockCurrencyUsecase) Story(ctx context.Context, storyPath, lang string) (json.RawMessage, error) {
	m.Calls++
	return m.StoryFunc(ctx, storyPath, lang)
}

type statusErr int

func (s statusErr) Error() string   { return "upstream body: <html>503</html>" }
func (s statusErr) StatusCode() int { return int(s) }

func setupRouter(h *CurrencyHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/api/v1/currency")
	g.GET("", h.List)
	g.GET("/:baseCurrency", h.Specific)
	g.GET("/events/:parites", h.Events)
	g.GET("/performance/:parites", h.Performance)
	g.GET("/news/:parites/:lang", h.News)
	g.GET("/news/read/:storyPath/:lang", h.ReadNews)
	return r
}

func do(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func f(v float64) *float64 { return &v }

func s(v string) *string { return &v }

func TestCurrencyHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		mockList       func(ctx context.Context) ([]entity.Currency, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: returns currencies in envelope",
			mockList: func(ctx context.Context) ([]entity.Currency, error) {
				return []entity.Currency{{Name: s("USDTRY"), SymbolCode: "FX_IDC:USDTRY", Close: f(34.25)}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"success":true,"data":[{"name":"USDTRY","symbolCode":"FX_IDC:USDTRY","description":null,` +
				`"close":34.25,"currency":null,"change":null,"change_abs":null,"high":null,"low":null}]}`,
		},
		{
			name: "success: empty list",
			mockList: func(ctx context.Context) ([]entity.Currency, error) {
				return []entity.Currency{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"data":[]}`,
		},
		{
			name: "failure: upstream 503 is forwarded with fixed message",
			mockList: func(ctx context.Context) ([]entity.Currency, error) {
				return nil, apperr.Upstream("failed to fetch currencies", statusErr(http.StatusServiceUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"success":false,"error":"failed to fetch currencies"}`,
		},
		{
			name: "failure: unexpected error is a generic 500",
			mockList: func(ctx context.Context) ([]entity.Currency, error) {
				return nil, errors.New("json: cannot unmarshal")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"success":false,"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewCurrencyHandler(&mockCurrencyUsecase{ListCurrenciesFunc: tt.mockList})
			w := do(setupRouter(h), "/api/v1/currency")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "<html>")
		})
	}
}

func TestCurrencyHandler_Specific(t *testing.T) {
	t.Parallel()

	m := &mockCurrencyUsecase{ListByCurrencyFunc: func(ctx context.Context, code string) ([]entity.Currency, error) {
		assert.Equal(t, "TRY", code)
		return []entity.Currency{{Name: s("USDTRY"), SymbolCode: "FX_IDC:USDTRY"}}, nil
	}}
	w := do(setupRouter(NewCurrencyHandler(m)), "/api/v1/currency/TRY")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"USDTRY"`)
	assert.Equal(t, 1, m.Calls)
}

// 空の baseCurrency は上流を呼ばずに400となることを検証します。
func TestCurrencyHandler_Specific_EmptyParam(t *testing.T) {
	t.Parallel()

	m := &mockCurrencyUsecase{}
	h := NewCurrencyHandler(m)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/currency/", nil)
	c.Params = gin.Params{{Key: "baseCurrency", Value: ""}}

	h.Specific(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"baseCurrency is required"}`, w.Body.String())
	assert.Equal(t, 0, m.Calls)
}

func TestCurrencyHandler_Events(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name:           "success",
			url:            "/api/v1/currency/events/USDTRY",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"data":[{"title":"CPI"}]}`,
			expectedCalls:  1,
		},
		{
			name:           "short pair rejected before usecase",
			url:            "/api/v1/currency/events/USDT",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"parites must be a 6-letter currency pair"}`,
		},
		{
			name:           "non-letter pair rejected",
			url:            "/api/v1/currency/events/USD1RY",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"parites must be a 6-letter currency pair"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &mockCurrencyUsecase{EventsFunc: func(ctx context.Context, parite string) (json.RawMessage, error) {
				assert.Equal(t, "USDTRY", parite)
				return json.RawMessage(`[{"title":"CPI"}]`), nil
			}}
			w := do(setupRouter(NewCurrencyHandler(m)), tt.url)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, m.Calls)
		})
	}
}

func TestCurrencyHandler_Performance(t *testing.T) {
	t.Parallel()

	m := &mockCurrencyUsecase{PerformanceFunc: func(ctx context.Context, parite string) (json.RawMessage, error) {
		return json.RawMessage(`{"Perf.W":-1.2,"change":0.3}`), nil
	}}
	w := do(setupRouter(NewCurrencyHandler(m)), "/api/v1/currency/performance/EURUSD")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"Perf.W":-1.2,"change":0.3}}`, w.Body.String())
}

func TestCurrencyHandler_News(t *testing.T) {
	t.Parallel()

	m := &mockCurrencyUsecase{NewsFunc: func(ctx context.Context, parite, lang string) (json.RawMessage, error) {
		assert.Equal(t, "USDTRY", parite)
		assert.Equal(t, "tr", lang)
		return json.RawMessage(`[{"id":"1"}]`), nil
	}}
	w := do(setupRouter(NewCurrencyHandler(m)), "/api/v1/currency/news/USDTRY/tr")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[{"id":"1"}]}`, w.Body.String())
}

func TestCurrencyHandler_ReadNews(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		mockStory      func(ctx context.Context, storyPath, lang string) (json.RawMessage, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			mockStory: func(ctx context.Context, storyPath, lang string) (json.RawMessage, error) {
				assert.Equal(t, "reuters.com,2026:newsml_X", storyPath)
				assert.Equal(t, "en", lang)
				return json.RawMessage(`{"title":"Lira"}`), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"data":{"title":"Lira"}}`,
		},
		{
			name: "upstream timeout",
			mockStory: func(ctx context.Context, storyPath, lang string) (json.RawMessage, error) {
				return nil, apperr.Upstream("failed to fetch news story", context.DeadlineExceeded)
			},
			expectedStatus: http.StatusGatewayTimeout,
			expectedBody:   `{"success":false,"error":"failed to fetch news story"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &mockCurrencyUsecase{StoryFunc: tt.mockStory}
			w := do(setupRouter(NewCurrencyHandler(m)), "/api/v1/currency/news/read/reuters.com,2026:newsml_X/en")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

// 同一リクエストを繰り返しても同じエンベロープが返ることを検証します。
func TestCurrencyHandler_Idempotent(t *testing.T) {
	t.Parallel()

	m := &mockCurrencyUsecase{ListCurrenciesFunc: func(ctx context.Context) ([]entity.Currency, error) {
		return []entity.Currency{{Name: s("EURUSD"), SymbolCode: "FX:EURUSD", High: f(1.1)}}, nil
	}}
	r := setupRouter(NewCurrencyHandler(m))

	first := do(r, "/api/v1/currency").Body.String()
	second := do(r, "/api/v1/currency").Body.String()

	assert.Equal(t, first, second)
}
