// Package handler composes the HTTP handlers of the service.
package handler

import (
	"github.com/mandalnilabja/memelab/internal/storage"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/generate"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/infra"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/usage"
	"github.com/mandalnilabja/memelab/internal/transport/http/handler/webui"
)

// Repo composes all domain-specific handlers.
type Repo struct {
	Generate *generate.Handlers
	WebUI    *webui.Handlers
	Infra    *infra.Handlers
	Usage    *usage.Handlers // nil when the usage log is disabled
}

// NewRepo creates a new instance of the composed handler repository.
func NewRepo(gen *generate.Handlers, web *webui.Handlers, inf *infra.Handlers, store storage.Storage) *Repo {
	r := &Repo{
		Generate: gen,
		WebUI:    web,
		Infra:    inf,
	}
	if store != nil {
		r.Usage = usage.New(store)
	}
	return r
}
