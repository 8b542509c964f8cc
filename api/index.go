package handler

import (
	"net/http"
	"sync"

	"tablebook/config"
	"tablebook/di"
	"tablebook/shared/logger"
	appHTTP "tablebook/transport/http"
)

var (
	app  *appHTTP.HTTP
	once sync.Once
)

// Handler is the serverless entrypoint. The app is built on the first invocation and reused.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
