package handler

import (
	"net/http"
	"storeflight/config"
	"storeflight/di"
	"storeflight/shared/logger"
	"sync"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

// Handler is the serverless entrypoint. The router is built once per
// instance and the outbox dispatcher does not run here.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		handler = di.InitializeService().Adaptor()
	})

	handler(w, r)
}
