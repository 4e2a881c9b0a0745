// Package web serves the lettings site pages.
//
// # Routes
//
//	GET /                        → index.html
//	GET /lettings/               → lettings/index.html
//	GET /lettings/{letting_id}/  → lettings/letting.html (id must be all digits)
//	GET /profiles/               → profiles/index.html
//	GET /profiles/{username}/    → profiles/profile.html
//	GET /test-500/               → always fails, renders 500.html
//	GET /static/                 → embedded assets
//
// Unknown paths and resolver NotFound errors render 404.html with status 404.
// Other failures and recovered panics render 500.html with status 500.
//
// Templates are embedded and parsed once per page together with base.html.
package web

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/server"
	"github.com/desertthunder/oclettings/internal/shared"
)

// LettingResolver lists lettings and resolves one by id.
type LettingResolver interface {
	List(ctx context.Context) ([]*models.Letting, error)
	Get(ctx context.Context, id int64) (*models.Letting, error)
}

// ProfileResolver lists profiles and resolves one by username.
type ProfileResolver interface {
	List(ctx context.Context) ([]*models.Profile, error)
	Get(ctx context.Context, username string) (*models.Profile, error)
}

// Handler renders the site pages.
type Handler struct {
	lettings  LettingResolver
	profiles  ProfileResolver
	templates *Templates
	logger    *log.Logger
	debug     bool
}

// NewHandler creates a [Handler]. It fails only when the embedded templates do not parse.
func NewHandler(lettings LettingResolver, profiles ProfileResolver, logger *log.Logger, debug bool) (*Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		lettings:  lettings,
		profiles:  profiles,
		templates: templates,
		logger:    shared.WithLogger(logger, "component", "web"),
		debug:     debug,
	}, nil
}

// Assets serves the embedded stylesheets under /static/.
type Assets struct {
	files http.Handler
}

var _ server.Handler = (*Assets)(nil)

// NewAssets creates an [Assets] handler over the embedded static directory.
func NewAssets() *Assets {
	static, _ := fs.Sub(staticFiles, "static")
	return &Assets{files: http.StripPrefix("/static/", http.FileServerFS(static))}
}

// Routes implements [server.Handler]. Only GET and HEAD reach the files.
func (a *Assets) Routes() []string {
	return []string{"GET /static/"}
}

func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.files.ServeHTTP(w, r)
}

// Register adds every page route and the static assets to router.
func (h *Handler) Register(router server.Router) {
	router.Handle(http.MethodGet, "/{$}", http.HandlerFunc(h.Index))
	router.Handle(http.MethodGet, "/lettings/{$}", http.HandlerFunc(h.LettingsIndex))
	router.Handle(http.MethodGet, "/lettings/{letting_id}/{$}", http.HandlerFunc(h.Letting))
	router.Handle(http.MethodGet, "/profiles/{$}", http.HandlerFunc(h.ProfilesIndex))
	router.Handle(http.MethodGet, "/profiles/{username}/{$}", http.HandlerFunc(h.Profile))
	router.Handle(http.MethodGet, "/test-500/{$}", http.HandlerFunc(h.Test500))
	router.Handler(NewAssets())
	router.Handle(http.MethodGet, "/", http.HandlerFunc(h.NotFound))
}

// Options configures [NewRouter].
type Options struct {
	AllowedHosts []string
	RateLimit    float64
	RateBurst    int
}

// NewRouter wires h and the request middleware into a ready to serve router.
func NewRouter(h *Handler, opts Options) *server.BasicRouter {
	router := server.NewBasicRouter()
	router.Use(
		server.RequestID(),
		server.Logger(h.logger),
		server.Recover(h.logger, http.HandlerFunc(h.renderPanic)),
		server.AllowedHosts(opts.AllowedHosts),
		server.RateLimit(opts.RateLimit, opts.RateBurst),
	)
	h.Register(router)
	return router
}
