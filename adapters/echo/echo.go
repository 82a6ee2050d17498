// Package hxbindecho provides Echo framework integration for hxbind sets.
//
// Mount a form endpoint that fills a Set from posted form values:
//
//	e := echo.New()
//	hxbindecho.Mount(e, "/invoice", func(c echo.Context) (*hxbind.Set, error) {
//	    return newInvoiceSet(hxbind.Record{})
//	})
//
// The endpoint answers with the record as JSON, the validation findings,
// and a state token that carries the bound values into the next request.
package hxbindecho

import (
	"crypto/rand"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/hxbind"
)

// DefaultStateField is the form field carrying the state token.
const DefaultStateField = "_state"

// Option configures Handler, Mount and MountGroup.
type Option func(*options)

type options struct {
	key        []byte
	stateField string
	sensitive  bool
}

// WithKey sets the state token key.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithStateField sets the form field carrying the state token.
// Defaults to "_state".
func WithStateField(name string) Option {
	return func(o *options) {
		o.stateField = name
	}
}

// WithSensitive encrypts state tokens instead of signing them.
func WithSensitive() Option {
	return func(o *options) {
		o.sensitive = true
	}
}

// BuildFunc creates the Set a request is bound to.
type BuildFunc func(c echo.Context) (*hxbind.Set, error)

// Response is the JSON body written by Handler.
type Response struct {
	Record *hxbind.Set             `json:"record"`
	State  string                  `json:"state,omitempty"`
	Errors hxbind.ValidationErrors `json:"errors,omitempty"`
}

// Mount registers a POST form endpoint on an Echo instance.
func Mount(e *echo.Echo, path string, build BuildFunc, opts ...Option) {
	e.POST(path, Handler(build, opts...))
}

// MountGroup registers a POST form endpoint on an Echo group.
// This allows forms to share middleware with the group (auth, logging, etc.).
func MountGroup(g *echo.Group, path string, build BuildFunc, opts ...Option) {
	g.POST(path, Handler(build, opts...))
}

// Handler returns an endpoint that restores the posted state token, submits
// the posted form into a fresh Set and answers with a Response: 200 when
// the record is valid, 422 otherwise.
func Handler(build BuildFunc, opts ...Option) echo.HandlerFunc {
	o := &options{stateField: DefaultStateField}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxbindecho: failed to generate random key: %v", err))
		}
	}
	enc, err := hxbind.NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxbindecho: invalid key: %v", err))
	}

	return func(c echo.Context) error {
		set, err := build(c)
		if err != nil {
			return err
		}
		defer set.Dispose()

		if token := c.FormValue(o.stateField); token != "" {
			if err := set.RestoreState(enc, token, o.sensitive); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid state token")
			}
		}

		errs, err := Submit(c, set)
		if err != nil {
			return err
		}

		state, err := set.EncodeState(enc, o.sensitive)
		if err != nil {
			return err
		}

		status := http.StatusOK
		if len(errs) > 0 {
			status = http.StatusUnprocessableEntity
		}
		return c.JSON(status, Response{Record: set, State: state, Errors: errs})
	}
}

// Submit copies the posted value of every bound field into its control,
// commits it and validates the set. Fields absent from the form keep their
// current value.
func Submit(c echo.Context, set *hxbind.Set) (hxbind.ValidationErrors, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	for _, name := range set.Names() {
		values, ok := form[name]
		if !ok || len(values) == 0 {
			continue
		}
		b, err := set.Binding(name)
		if err != nil {
			return nil, err
		}
		b.Control().SetText(values[0])
		b.Commit()
	}
	return set.Validate(), nil
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxbindecho.Render(c, binding.Input(nil))
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
