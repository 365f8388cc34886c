package handlers

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/gorilla/mux"
	"github.com/ray-remotestate/enfes/middlewares"
	"github.com/ray-remotestate/enfes/views"
)

// LoadRequest is everything a loader may depend on. The session is nil for anonymous visitors.
type LoadRequest struct {
	Session *middlewares.Session
	Params  map[string]string
	Query   url.Values
	Now     time.Time
}

type LoaderFunc func(ctx context.Context, req LoadRequest) (interface{}, error)

type Access int

const (
	Public Access = iota
	Authenticated
	CookOnly
)

func (a Access) check(session *middlewares.Session) error {
	switch {
	case a == Public:
		return nil
	case session == nil:
		return unauthenticated()
	case a == CookOnly && !session.IsCook():
		return forbidden("cook account required")
	}
	return nil
}

// Page binds a route pattern to the loader that gathers its data and the template that renders it.
type Page struct {
	Path     string
	Title    string
	Access   Access
	Load     LoaderFunc
	Template string
}

var Pages = []Page{
	{Path: "/", Title: "Home", Load: LoadIndex, Template: "index"},
	{Path: "/login", Title: "Log in", Load: LoadAuthForm, Template: "login"},
	{Path: "/join", Title: "Sign up", Load: LoadAuthForm, Template: "join"},
	{Path: "/meals", Title: "Meals", Load: LoadMeals, Template: "meals"},
	{Path: "/meals/{mealId}", Title: "Meal", Load: LoadMeal, Template: "meal"},
	{Path: "/orders", Title: "My orders", Access: Authenticated, Load: LoadOrders, Template: "orders"},
	{Path: "/orders/{subscriptionId}", Title: "My cart", Access: Authenticated, Load: LoadSubscriptionOrder, Template: "order"},
	{Path: "/cook/me", Title: "Dashboard", Access: Authenticated, Load: LoadCookMe, Template: "cook_me"},
	{Path: "/cook/me/meals", Title: "Your meals", Access: CookOnly, Load: LoadCookMeals, Template: "cook_meals"},
	{Path: "/cook/me/subscriptions", Title: "Your subscriptions", Access: CookOnly, Load: LoadCookSubscriptions, Template: "cook_subscriptions"},
	{Path: "/cook/dashboard", Title: "Subscriptions", Access: CookOnly, Load: LoadCookDashboard, Template: "cook_dashboard"},
}

var pathParam = regexp.MustCompile(`\{(\w+)\}`)

// idParams lists the path parameters of the page; every one of them is a record id.
func (p Page) idParams() []string {
	var names []string
	for _, m := range pathParam.FindAllStringSubmatch(p.Path, -1) {
		names = append(names, m[1])
	}
	return names
}

// now is replaced in tests.
var now = time.Now

// ServePage runs the page's loader with the request's session and renders the result, as HTML
// or as JSON when the client accepts it. A failing loader never produces a partial page.
func ServePage(page Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := LoadRequest{
			Session: middlewares.GetSession(r),
			Params:  mux.Vars(r),
			Query:   r.URL.Query(),
			Now:     now(),
		}

		// a bad id is reported before asking an anonymous visitor to log in
		for _, name := range page.idParams() {
			if _, err := pathID(req, name); err != nil {
				respondError(w, r, err)
				return
			}
		}

		if err := page.Access.check(req.Session); err != nil {
			respondError(w, r, err)
			return
		}

		data, err := page.Load(r.Context(), req)
		if err != nil {
			respondError(w, r, err)
			return
		}

		if wantsJSON(r) {
			respondJSON(w, http.StatusOK, data)
			return
		}

		err = views.Render(w, http.StatusOK, page.Template, views.Page{
			Title:   page.Title,
			Session: req.Session,
			Now:     req.Now,
			Data:    data,
		})
		if err != nil {
			respondError(w, r, err)
		}
	}
}
