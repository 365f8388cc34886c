package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ray-remotestate/enfes/views"
	"github.com/sirupsen/logrus"
)

// wantsJSON reports whether the client asked for JSON rather than an HTML page or redirect.
func wantsJSON(r *http.Request) bool {
	if isJSONBody(r) {
		return true
	}
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return false
}

func isJSONBody(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// respondError writes err to the client. Load errors keep their status, with anonymous page
// visitors sent to the login form; anything else is logged and reported as a 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong"

	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		status = loadErr.Status()
		message = loadErr.Message
	} else {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
	}

	if wantsJSON(r) {
		respondJSON(w, status, map[string]string{"error": message})
		return
	}

	if status == http.StatusUnauthorized {
		redirectTo := "/"
		if r.Method == http.MethodGet {
			redirectTo = r.URL.RequestURI()
		}
		http.Redirect(w, r, "/login?redirectTo="+url.QueryEscape(redirectTo), http.StatusSeeOther)
		return
	}

	page := views.Page{
		Title: http.StatusText(status),
		Data: struct {
			Status  int
			Message string
		}{status, message},
	}
	if renderErr := views.Render(w, status, "error", page); renderErr != nil {
		logrus.WithError(renderErr).Error("failed to render error page")
		http.Error(w, message, status)
	}
}

// respondCreated answers an action: JSON clients get the record, form posts are redirected.
func respondCreated(w http.ResponseWriter, r *http.Request, body interface{}, location string) {
	if wantsJSON(r) {
		respondJSON(w, http.StatusCreated, body)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// safeRedirect keeps redirects on this site.
func safeRedirect(to, fallback string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.Contains(to, `\`) {
		return fallback
	}
	return to
}

// input is a flat view over a form or JSON request body.
type input map[string]string

// readInput flattens a form or a JSON object of scalars. JSON numbers keep their literal text.
func readInput(r *http.Request) (input, error) {
	in := input{}
	if isJSONBody(r) {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()

		var raw map[string]interface{}
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		for k, v := range raw {
			switch v := v.(type) {
			case nil:
			case string:
				in[k] = strings.TrimSpace(v)
			case json.Number:
				in[k] = v.String()
			case bool:
				in[k] = strconv.FormatBool(v)
			default:
				return nil, fmt.Errorf("field %q must be a string, number or boolean", k)
			}
		}
		return in, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for k := range r.PostForm {
		in[k] = strings.TrimSpace(r.PostForm.Get(k))
	}
	return in, nil
}
