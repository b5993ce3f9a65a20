package handlers

import (
	"html/template"
	"log"
	"net/http"

	"goboard/internal/models"
)

// renderTemplate executes a named template, logging render failures
func renderTemplate(t *template.Template, w http.ResponseWriter, name string, data map[string]interface{}) {
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// pageData assembles the data every page render shares: the current user
// (nil for anonymous pages) and any pending flash message, which is popped
// here so it shows exactly once.
func pageData(w http.ResponseWriter, r *http.Request, user *models.User) map[string]interface{} {
	data := map[string]interface{}{}
	if flash := PopFlash(w, r); flash != nil {
		data["Flash"] = flash
	}
	if user != nil {
		data["User"] = user
		data["Username"] = user.Username
	}
	return data
}

// renderNotFound renders the generic not-found page
func renderNotFound(t *template.Template, w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	renderTemplate(t, w, "error.tmpl", map[string]interface{}{
		"Title":   "Not Found",
		"Message": "The page you requested does not exist.",
	})
}
