package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-model-api/internal/api/handler/router"
	"github.com/vfg2006/business-model-api/internal/domain"
	"github.com/vfg2006/business-model-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling/mocks"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
	"github.com/vfg2006/business-model-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

const testOwner = 42

func newModelRouter(modeler modeling.Modeler) http.Handler {
	return router.New(
		router.WithRoutes(Model(modeler)...),
		router.WithRoutes(Admin(modeler)...),
	)
}

func authenticatedRequest(method, target, body string, roleID int) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	claims := &domain.Claims{UserID: testOwner, UserRoleID: roleID, UserActive: true}
	return req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func testResponse() *domain.ModelResponse {
	return &domain.ModelResponse{Model: domain.NewModel(testOwner), Summary: &domain.Summary{TotalRevenue: 24000}}
}

func TestModelRoutes(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		setup        func(modeler *mocks.MockModeler)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "retorna o modelo completo",
			method: http.MethodGet,
			target: "/v1/model",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().GetModel(gomock.Any(), testOwner).Return(testResponse(), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `"total_revenue":24000`,
		},
		{
			name:   "summary usa o segmento da coleção",
			method: http.MethodGet,
			target: "/v1/model/summary",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().GetSummary(gomock.Any(), testOwner).Return(&domain.Summary{NetMargin: 25}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `"net_margin":25`,
		},
		{
			name:   "lista as linhas de uma coleção",
			method: http.MethodGet,
			target: "/v1/model/marketing_channels",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().ListRecords(gomock.Any(), testOwner, domain.KindMarketingChannel).
					Return([]domain.Record{domain.MarketingChannel{ID: "ch1", Name: "Google Ads"}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `"name":"Google Ads"`,
		},
		{
			name:   "coleção desconhecida vira 404",
			method: http.MethodGet,
			target: "/v1/model/unicorns",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().ListRecords(gomock.Any(), testOwner, domain.EntityKind("unicorns")).
					Return(nil, modeling.NewRecordError(modeling.ErrUnknownKind, "unicorns", "", ""))
			},
			expectedCode: http.StatusNotFound,
			expectedBody: apiErrors.ErrUnknownKind,
		},
		{
			name:   "edição converte números em texto",
			method: http.MethodPatch,
			target: "/v1/model/marketing_channels/ch1",
			body:   `{"field":"monthly_budget","value":7500.5}`,
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Apply(gomock.Any(), testOwner, modeling.EditField{
					Kind:  domain.KindMarketingChannel,
					ID:    "ch1",
					Field: "monthly_budget",
					Value: "7500.5",
				}).Return(testResponse(), nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `"summary"`,
		},
		{
			name:   "campo calculado é rejeitado com 422",
			method: http.MethodPatch,
			target: "/v1/model/marketing_channels/ch1",
			body:   `{"field":"cost_per_lead","value":"10"}`,
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Apply(gomock.Any(), testOwner, gomock.Any()).
					Return(nil, modeling.NewRecordError(modeling.ErrDerivedField, domain.KindMarketingChannel, "ch1", "cost_per_lead"))
			},
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: `"id":"ch1"`,
		},
		{
			name:         "edição sem campo",
			method:       http.MethodPatch,
			target:       "/v1/model/marketing_channels/ch1",
			body:         `{"value":"10"}`,
			setup:        func(modeler *mocks.MockModeler) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "inclui linha com os valores digitados",
			method: http.MethodPost,
			target: "/v1/model/cogs",
			body:   `{"values":{"name":"Hosting","monthly_cost":1000}}`,
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Apply(gomock.Any(), testOwner, modeling.AddRow{
					Kind:   domain.KindCOGS,
					Values: map[string]string{"name": "Hosting", "monthly_cost": "1000"},
				}).Return(testResponse(), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:   "inclui linha sem corpo",
			method: http.MethodPost,
			target: "/v1/model/cogs",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Apply(gomock.Any(), testOwner, modeling.AddRow{
					Kind:   domain.KindCOGS,
					Values: map[string]string{},
				}).Return(testResponse(), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:   "exclui linha",
			method: http.MethodDelete,
			target: "/v1/model/cogs/cg1",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Apply(gomock.Any(), testOwner, modeling.DeleteRow{Kind: domain.KindCOGS, ID: "cg1"}).
					Return(testResponse(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "seed devolve o modelo populado",
			method: http.MethodPost,
			target: "/v1/model/seed",
			setup: func(modeler *mocks.MockModeler) {
				gomock.InOrder(
					modeler.EXPECT().Seed(gomock.Any(), testOwner).Return(nil),
					modeler.EXPECT().GetModel(gomock.Any(), testOwner).Return(testResponse(), nil),
				)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:   "seed em modelo já populado",
			method: http.MethodPost,
			target: "/v1/model/seed",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Seed(gomock.Any(), testOwner).
					Return(modeling.NewModelError(modeling.ErrAlreadySeeded, apiErrors.ErrAlreadySeeded, ""))
			},
			expectedCode: http.StatusConflict,
			expectedBody: apiErrors.ErrAlreadySeeded,
		},
		{
			name:   "reconcile informa os registros regravados",
			method: http.MethodPost,
			target: "/v1/model/reconcile",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Reconcile(gomock.Any(), testOwner).Return(3, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `"reconciled":3`,
		},
		{
			name:   "sync-funnel dos assinantes",
			method: http.MethodPost,
			target: "/v1/model/active_subscribers/sync-funnel",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().Apply(gomock.Any(), testOwner, modeling.SyncFunnel{}).Return(testResponse(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "ação desconhecida",
			method:       http.MethodPost,
			target:       "/v1/model/cogs/sync-funnel",
			setup:        func(modeler *mocks.MockModeler) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: apiErrors.ErrInvalidRequest,
		},
		{
			name:   "erro inesperado vira 500",
			method: http.MethodGet,
			target: "/v1/model",
			setup: func(modeler *mocks.MockModeler) {
				modeler.EXPECT().GetModel(gomock.Any(), testOwner).Return(nil, errors.New("boom"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			modeler := mocks.NewMockModeler(ctrl)
			tt.setup(modeler)

			rec := httptest.NewRecorder()
			newModelRouter(modeler).ServeHTTP(rec, authenticatedRequest(tt.method, tt.target, tt.body, authenticating.RoleUser))

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestModelRoutes_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	newModelRouter(mocks.NewMockModeler(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/model", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidToken, decodeAPIError(t, rec).Code)
}

func TestPlatformAggregate(t *testing.T) {
	t.Run("apenas administradores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		rec := httptest.NewRecorder()
		newModelRouter(mocks.NewMockModeler(ctrl)).
			ServeHTTP(rec, authenticatedRequest(http.MethodGet, "/v1/admin/aggregate", "", authenticating.RoleUser))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("retorna os totais da plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		modeler := mocks.NewMockModeler(ctrl)
		modeler.EXPECT().PlatformAggregate(gomock.Any()).Return(&domain.PlatformAggregate{
			TotalUsers:       3,
			AverageRevenue:   33333.33,
			TotalSubscribers: 1200,
			AverageChurnRate: 4.33,
		}, nil)

		rec := httptest.NewRecorder()
		newModelRouter(modeler).
			ServeHTTP(rec, authenticatedRequest(http.MethodGet, "/v1/admin/aggregate", "", authenticating.RoleAdmin))

		assert.Equal(t, http.StatusOK, rec.Code)

		var aggregate domain.PlatformAggregate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aggregate))
		assert.Equal(t, 3, aggregate.TotalUsers)
		assert.Equal(t, 33333.33, aggregate.AverageRevenue)
	})
}

func TestRawValue(t *testing.T) {
	assert.Equal(t, "", rawValue(nil))
	assert.Equal(t, "abc", rawValue("abc"))
	assert.Equal(t, "0.25", rawValue(0.25))
	assert.Equal(t, "1000000", rawValue(float64(1000000)))
	assert.Equal(t, "true", rawValue(true))
}
