package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-model-api/pkg/apiErrors"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logrus.WithError(err).Warn("Banco indisponível no healthcheck")
				apiErrors.WriteError(w, apiErrors.ErrCommunication, "Banco de dados indisponível", nil)
				return
			}
		}

		if _, err := w.Write([]byte(time.Now().String())); err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
