package rest

import "net/http"

// NewRouter wires all REST handlers onto one mux. Route patterns rely on the
// method-and-wildcard matching of net/http's ServeMux.
func NewRouter(
	health *HealthHandler,
	words *WordHandler,
	glosses *GlossHandler,
	choiceLists *ChoicesHandler,
	videos *VideoHandler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)

	mux.HandleFunc("GET /dictionary/{vocab}/words/{ref}", words.Resolve)
	mux.HandleFunc("GET /dictionary/{vocab}/words/{ref}/exists", words.Exists)

	mux.HandleFunc("GET /dictionary/glosses", glosses.Search)
	mux.HandleFunc("POST /dictionary/glosses", glosses.Create)
	mux.HandleFunc("GET /dictionary/glosses/{id}", glosses.Get)
	mux.HandleFunc("PUT /dictionary/glosses/{id}", glosses.Update)
	mux.HandleFunc("DELETE /dictionary/glosses/{id}", glosses.Delete)
	mux.HandleFunc("POST /dictionary/glosses/{id}/translations", glosses.AddTranslation)
	mux.HandleFunc("DELETE /dictionary/translations/{id}", glosses.RemoveTranslation)
	mux.HandleFunc("GET /dictionary/glosses/{id}/relations", glosses.CrossReferences)
	mux.HandleFunc("POST /dictionary/glosses/{id}/relations", glosses.AddRelation)
	mux.HandleFunc("POST /dictionary/glosses/{id}/morphology", glosses.AddMorphology)
	mux.HandleFunc("POST /dictionary/glosses/{id}/foreign-signs", glosses.AddForeignRelation)
	mux.HandleFunc("GET /dictionary/glosses/{id}/video", videos.Stream)

	mux.HandleFunc("GET /dictionary/choices", choiceLists.Lists)
	mux.HandleFunc("POST /dictionary/choices/reload", choiceLists.Reload)
	mux.HandleFunc("GET /dictionary/choices/{field}", choiceLists.Field)
	mux.HandleFunc("GET /dictionary/languages", choiceLists.Languages)
	mux.HandleFunc("GET /dictionary/dialects", choiceLists.Dialects)
	mux.HandleFunc("GET /dictionary/relation-roles", choiceLists.RelationRoles)

	return mux
}
