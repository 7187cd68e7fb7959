package handler

import (
	"net/http"

	"github.com/vfg2006/business-model-api/internal/api/handler/router"
	"github.com/vfg2006/business-model-api/internal/usecases/authenticating"
	"github.com/vfg2006/business-model-api/internal/usecases/modeling"
	"github.com/vfg2006/business-model-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

// Metrics expõe os coletores Prometheus
func Metrics(h http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: h,
		},
	}
}

// Model retorna as rotas do modelo financeiro do usuário autenticado.
// seed, reconcile e summary dividem o segmento :kind com as coleções.
func Model(service modeling.Modeler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/model",
			Method:      http.MethodGet,
			Handler:     GetModel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
		{
			Path:        "/v1/model/:kind",
			Method:      http.MethodGet,
			Handler:     GetModelSection(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
		{
			Path:        "/v1/model/:kind",
			Method:      http.MethodPost,
			Handler:     PostModelSection(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
		{
			Path:        "/v1/model/:kind/:id",
			Method:      http.MethodPatch,
			Handler:     EditModelField(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
		{
			Path:        "/v1/model/:kind/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteModelRow(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
		{
			Path:        "/v1/model/:kind/:action",
			Method:      http.MethodPost,
			Handler:     RunModelAction(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
	}
}

func Admin(service modeling.Modeler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/admin/aggregate",
			Method:      http.MethodGet,
			Handler:     GetPlatformAggregate(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyRole()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
