package web

import (
	"github.com/go-chi/chi/v5"
)

// Resource mounts the RESTful routes of a named resource onto a fresh
// sub-router, wiring registered actions by "<name>.<action>" convention:
//
//	GET    /          <name>.index
//	GET    /new       <name>.new
//	POST   /          <name>.create
//	GET    /{id}      <name>.show
//	GET    /{id}/edit <name>.edit
//	PUT    /{id}      <name>.update
//	PATCH  /{id}      <name>.update
//	DELETE /{id}      <name>.destroy
//
// Routes whose action is not registered are simply not mounted.
func (h *Handler) Resource(name string) chi.Router {
	r := chi.NewRouter()

	if h.registry.Has(name + ".index") {
		r.Get("/", h.Action(name+".index"))
	}
	if h.registry.Has(name + ".new") {
		r.Get("/new", h.Action(name+".new"))
	}
	if h.registry.Has(name + ".create") {
		r.Post("/", h.Action(name+".create"))
	}
	if h.registry.Has(name + ".show") {
		r.Get("/{id}", h.Action(name+".show"))
	}
	if h.registry.Has(name + ".edit") {
		r.Get("/{id}/edit", h.Action(name+".edit"))
	}
	if h.registry.Has(name + ".update") {
		r.Put("/{id}", h.Action(name+".update"))
		r.Patch("/{id}", h.Action(name+".update"))
	}
	if h.registry.Has(name + ".destroy") {
		r.Delete("/{id}", h.Action(name+".destroy"))
	}

	return r
}

// MountResource mounts the resource's routes at pattern on r. Because a
// chi mount only matches the pattern and paths below it, a collection
// request with a format extension such as /tasks.json would otherwise
// miss the mount entirely, so an index alias is registered alongside it.
// Member extensions like /tasks/42.json are captured by {id} and trimmed
// before the service sees them.
func (h *Handler) MountResource(r chi.Router, pattern, name string) {
	r.Mount(pattern, h.Resource(name))
	if h.registry.Has(name + ".index") {
		r.Get(pattern+".{ext}", h.Action(name+".index"))
	}
}
