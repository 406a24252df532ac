package extract_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/price-scout/pkg/extract"
	"github.com/donaldgifford/price-scout/pkg/extract/mocks"
	domain "github.com/donaldgifford/price-scout/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScout(t *testing.T, backend *mocks.MockLLMBackend) (*extract.LLMScout, *recordingObserver) {
	t.Helper()
	backend.EXPECT().Name().Return("mock").Maybe()
	obs := &recordingObserver{}
	inv := extract.NewInvoker(backend, extract.WithObserver(obs))
	return extract.NewLLMScout(inv, extract.WithLogger(quietLogger())), obs
}

func respond(content string, sources ...domain.WebSource) extract.GenerateResponse {
	return extract.GenerateResponse{Content: content, Citations: sources}
}

func TestLLMScout_Suggest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		partial      string
		setupMock    func(*mocks.MockLLMBackend)
		want         []string
		wantFallback string
	}{
		{
			name:    "parses suggestions",
			partial: "mario",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(r extract.GenerateRequest) bool {
					return !r.UseSearch && r.Model == extract.DefaultAutocompleteModel
				})).Return(respond(`["Mario Kart 8", "Super Mario Odyssey"]`), nil).Once()
			},
			want: []string{"Mario Kart 8", "Super Mario Odyssey"},
		},
		{
			name:    "caps at five and drops blanks",
			partial: "zelda",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond("```json\n[\"a\", \" \", \"b\", \"c\", \"d\", \"e\", \"f\"]\n```"), nil).Once()
			},
			want: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:         "short partial skips the model",
			partial:      " m ",
			setupMock:    func(*mocks.MockLLMBackend) {},
			want:         []string{},
			wantFallback: "autocomplete:short_query",
		},
		{
			name:    "invocation failure yields empty",
			partial: "pokemon",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(extract.GenerateResponse{}, &extract.InvocationError{Backend: "mock", StatusCode: 500}).Once()
			},
			want:         []string{},
			wantFallback: "autocomplete:invocation",
		},
		{
			name:    "unparseable text yields empty",
			partial: "pokemon",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond("Sorry, I cannot help with that."), nil).Once()
			},
			want:         []string{},
			wantFallback: "autocomplete:extraction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := mocks.NewMockLLMBackend(t)
			tt.setupMock(backend)
			s, obs := newTestScout(t, backend)

			got := s.Suggest(context.Background(), tt.partial)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), domain.MaxSuggestions)
			if tt.wantFallback != "" {
				assert.Equal(t, []string{tt.wantFallback}, obs.Fallbacks())
			}
		})
	}
}

func TestLLMScout_AnalyzeItem(t *testing.T) {
	t.Parallel()

	source := domain.WebSource{Title: "nintendo.co.jp", URI: "https://www.nintendo.co.jp/software/switch/aaaaa/"}

	validAnalysis := `Here you go:
{
  "name": "The Legend of Zelda: Tears of the Kingdom",
  "category": "Video Game",
  "description": "Open-world sequel for Nintendo Switch.",
  "estimatedValue": "RM 189",
  "searchTips": ["zelda totk", "tears of the kingdom switch"],
  "versions": [
    {"region": "JP", "languages": "Japanese, English, Chinese", "sourceUrl": "https://www.nintendo.co.jp/software/switch/aaaaa/"},
    {"region": "EU", "languages": "English", "sourceUrl": ""}
  ]
}`

	tests := []struct {
		name         string
		query        string
		setupMock    func(*mocks.MockLLMBackend)
		wantErr      error
		want         *domain.ItemAnalysis
		wantFallback string
	}{
		{
			name:  "parses grounded analysis",
			query: "zelda totk",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(r extract.GenerateRequest) bool {
					return r.UseSearch && r.Model == extract.DefaultAnalysisModel &&
						r.SystemMsg == extract.SystemInstruction
				})).Return(respond(validAnalysis, source), nil).Once()
			},
			want: &domain.ItemAnalysis{
				Name:           "The Legend of Zelda: Tears of the Kingdom",
				Category:       "Video Game",
				Description:    "Open-world sequel for Nintendo Switch.",
				EstimatedValue: "RM 189",
				SearchTips:     []string{"zelda totk", "tears of the kingdom switch"},
				Versions: []domain.RegionVersion{
					{Region: "JP", Languages: "Japanese, English, Chinese", SourceURL: "https://www.nintendo.co.jp/software/switch/aaaaa/"},
				},
				Sources: []domain.WebSource{source},
			},
		},
		{
			name:  "list and numeric fields are coerced to text",
			query: "pokemon red",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond(`{
  "name": "Pokemon Red",
  "category": "Video Game",
  "description": "Game Boy RPG.",
  "estimatedValue": 189,
  "searchTips": "pokemon red gameboy",
  "versions": [
    {"region": "JP", "languages": ["Japanese", "English"], "sourceUrl": null},
    "US",
    {"region": "US", "languages": "English"}
  ]
}`, source), nil).Once()
			},
			want: &domain.ItemAnalysis{
				Name:           "Pokemon Red",
				Category:       "Video Game",
				Description:    "Game Boy RPG.",
				EstimatedValue: "189",
				SearchTips:     []string{"pokemon red gameboy"},
				Versions: []domain.RegionVersion{
					{Region: "JP", Languages: "Japanese, English"},
					{Region: "US", Languages: "English"},
				},
				Sources: []domain.WebSource{source},
			},
		},
		{
			name:  "unparseable text yields degraded analysis",
			query: "  mystery cart  ",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond("I could not find anything."), nil).Once()
			},
			want: &domain.ItemAnalysis{
				Name:           "mystery cart",
				Category:       "Unknown",
				Description:    extract.AnalysisFallbackDescription,
				EstimatedValue: "N/A",
				SearchTips:     []string{"mystery cart"},
				Versions:       []domain.RegionVersion{},
				Sources:        []domain.WebSource{},
			},
			wantFallback: "analysis:extraction",
		},
		{
			name:  "analysis without a name yields degraded analysis",
			query: "gameboy",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond(`{"category": "Console"}`), nil).Once()
			},
			want: &domain.ItemAnalysis{
				Name:           "gameboy",
				Category:       "Unknown",
				Description:    extract.AnalysisFallbackDescription,
				EstimatedValue: "N/A",
				SearchTips:     []string{"gameboy"},
				Versions:       []domain.RegionVersion{},
				Sources:        []domain.WebSource{},
			},
			wantFallback: "analysis:extraction",
		},
		{
			name:  "invocation failure returns error and no analysis",
			query: "zelda",
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(extract.GenerateResponse{}, &extract.InvocationError{Backend: "mock", StatusCode: 403}).Once()
			},
			wantErr:      extract.ErrInvocationFailed,
			wantFallback: "analysis:invocation",
		},
		{
			name:         "empty query rejected without a call",
			query:        "   ",
			setupMock:    func(*mocks.MockLLMBackend) {},
			wantErr:      extract.ErrInvalidInput,
			wantFallback: "analysis:empty_query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := mocks.NewMockLLMBackend(t)
			tt.setupMock(backend)
			s, obs := newTestScout(t, backend)

			got, err := s.AnalyzeItem(context.Background(), tt.query, domain.CurrencyMYR)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			if tt.wantFallback != "" {
				assert.Equal(t, []string{tt.wantFallback}, obs.Fallbacks())
			}
		})
	}
}

func TestLLMScout_SearchItemPrices(t *testing.T) {
	t.Parallel()

	source := domain.WebSource{Title: "pricecharting.com", URI: "https://www.pricecharting.com/game/gameboy/pokemon-red"}

	tests := []struct {
		name         string
		query        string
		currency     domain.Currency
		setupMock    func(*mocks.MockLLMBackend)
		want         *domain.PriceInsight
		wantFallback string
	}{
		{
			name:     "parses and normalizes prices",
			query:    "pokemon red",
			currency: domain.CurrencyUSD,
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(r extract.GenerateRequest) bool {
					return r.UseSearch && r.Model == extract.DefaultPricesModel
				})).Return(respond("```json\n"+`{
					"prices": [
						{"platform": "PriceCharting", "price": "$45", "status": "market price"},
						{"platform": "eBay", "price": "N/A", "status": "Avg Listed"},
						{"platform": "", "price": "$1", "status": "Sold"}
					],
					"overview": "Loose carts are common."
				}`+"\n```", source), nil).Once()
			},
			want: &domain.PriceInsight{
				Prices: []domain.PlatformPrice{
					{Platform: "PriceCharting", Price: "$45", Status: string(domain.StatusMarketPrice)},
					{Platform: "eBay", Price: domain.PlaceholderPrice, Status: string(domain.StatusCheckWebsite)},
				},
				Overview: "Loose carts are common.",
				Sources:  []domain.WebSource{source},
			},
		},
		{
			name:     "numeric prices are kept as text",
			query:    "pokemon red",
			currency: domain.CurrencyMYR,
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond(`{
					"prices": [
						{"platform": "Carousell", "price": 189, "status": "Avg Listed"},
						["malformed", "row"],
						{"platform": "Shopee", "price": null, "status": "Not Found"}
					],
					"overview": "Prices are stable."
				}`), nil).Once()
			},
			want: &domain.PriceInsight{
				Prices: []domain.PlatformPrice{
					{Platform: "Carousell", Price: "189", Status: string(domain.StatusAvgListed)},
					{Platform: "Shopee", Price: domain.PlaceholderPrice, Status: string(domain.StatusNotFound)},
				},
				Overview: "Prices are stable.",
				Sources:  []domain.WebSource{},
			},
		},
		{
			name:     "empty overview gets default text",
			query:    "pokemon red",
			currency: domain.CurrencyMYR,
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond(`{"prices": []}`), nil).Once()
			},
			want: &domain.PriceInsight{
				Prices:   []domain.PlatformPrice{},
				Overview: "No details available.",
				Sources:  []domain.WebSource{},
			},
		},
		{
			name:     "unparseable text becomes the overview",
			query:    "pokemon red",
			currency: domain.CurrencyMYR,
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(respond("Prices vary between RM 100 and RM 200.", source), nil).Once()
			},
			want: &domain.PriceInsight{
				Prices:   []domain.PlatformPrice{},
				Overview: "Prices vary between RM 100 and RM 200.",
				Sources:  []domain.WebSource{source},
			},
			wantFallback: "prices:extraction",
		},
		{
			name:     "invocation failure yields fallback insight",
			query:    "pokemon red",
			currency: domain.CurrencyMYR,
			setupMock: func(m *mocks.MockLLMBackend) {
				m.EXPECT().Generate(mock.Anything, mock.Anything).
					Return(extract.GenerateResponse{}, &extract.InvocationError{Backend: "mock", StatusCode: 429}).Once()
			},
			want: &domain.PriceInsight{
				Prices:   []domain.PlatformPrice{},
				Overview: extract.PricesUnavailableOverview,
				Sources:  []domain.WebSource{},
			},
			wantFallback: "prices:invocation",
		},
		{
			name:      "empty query yields neutral insight",
			query:     "",
			currency:  domain.CurrencyMYR,
			setupMock: func(*mocks.MockLLMBackend) {},
			want: &domain.PriceInsight{
				Prices:   []domain.PlatformPrice{},
				Overview: extract.EmptyQueryOverview,
				Sources:  []domain.WebSource{},
			},
			wantFallback: "prices:empty_query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := mocks.NewMockLLMBackend(t)
			tt.setupMock(backend)
			s, obs := newTestScout(t, backend)

			got := s.SearchItemPrices(context.Background(), tt.query, tt.currency)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
			if tt.wantFallback != "" {
				assert.Equal(t, []string{tt.wantFallback}, obs.Fallbacks())
			}
		})
	}
}

func TestLLMScout_WithModels(t *testing.T) {
	t.Parallel()

	backend := mocks.NewMockLLMBackend(t)
	backend.EXPECT().Name().Return("mock").Maybe()
	inv := extract.NewInvoker(backend)

	s := extract.NewLLMScout(inv, extract.WithModels(extract.Models{Prices: "gemini-flash-latest"}))
	got := s.Models()

	assert.Equal(t, extract.DefaultAutocompleteModel, got.Autocomplete)
	assert.Equal(t, extract.DefaultAnalysisModel, got.Analysis)
	assert.Equal(t, "gemini-flash-latest", got.Prices)
}

func TestLLMScout_LogsExtractionStage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantStage string
	}{
		{name: "bare JSON", content: `{"prices": [], "overview": "ok"}`, wantStage: "stage=direct"},
		{name: "fenced JSON", content: "```json\n{\"prices\": [], \"overview\": \"ok\"}\n```", wantStage: "stage=fence_stripped"},
		{name: "JSON inside prose", content: `Here: {"prices": [], "overview": "ok"} hope it helps`, wantStage: "stage=object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := mocks.NewMockLLMBackend(t)
			backend.EXPECT().Name().Return("mock").Maybe()
			backend.EXPECT().Generate(mock.Anything, mock.Anything).Return(respond(tt.content), nil).Once()

			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			scout := extract.NewLLMScout(extract.NewInvoker(backend), extract.WithLogger(log))

			got := scout.SearchItemPrices(context.Background(), "pokemon red", domain.CurrencyMYR)
			assert.Equal(t, "ok", got.Overview)
			assert.Contains(t, buf.String(), "model JSON recovered")
			assert.Contains(t, buf.String(), "task=prices")
			assert.Contains(t, buf.String(), tt.wantStage)
		})
	}
}
