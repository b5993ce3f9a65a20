package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"goboard/internal/models"
	"goboard/internal/security"
	"goboard/internal/service"
	"goboard/internal/validation"
)

// PostHandler handles the post list, detail, create, delete and comment routes
type PostHandler struct {
	boardService *service.BoardService
	authService  *service.AuthService
	csrf         *security.CSRFGenerator
	templates    *template.Template
}

// NewPostHandler creates a new post handler
func NewPostHandler(boardService *service.BoardService, authService *service.AuthService, csrf *security.CSRFGenerator, templates *template.Template) *PostHandler {
	return &PostHandler{
		boardService: boardService,
		authService:  authService,
		csrf:         csrf,
		templates:    templates,
	}
}

// List renders all posts, oldest first. Public.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.boardService.ListPosts()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to list posts", err)
		return
	}

	data := pageData(w, r, h.currentUser(r))
	data["Title"] = "Posts"
	data["Posts"] = posts
	renderTemplate(h.templates, w, "post_list.tmpl", data)
}

// Detail renders one post with its comments. Public.
func (h *PostHandler) Detail(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderNotFound(h.templates, w, r)
		return
	}

	post, comments, err := h.boardService.GetPost(postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			renderNotFound(h.templates, w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to get post", err)
		return
	}

	user := h.currentUser(r)
	data := pageData(w, r, user)
	data["Title"] = post.Title
	data["Post"] = post
	data["Comments"] = comments
	if user != nil {
		data["IsOwner"] = user.ID == post.UserID
		h.addCSRFToken(r, data)
	}
	renderTemplate(h.templates, w, "post_detail.tmpl", data)
}

// ShowCreate renders the new-post form. Protected.
func (h *PostHandler) ShowCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	data := pageData(w, r, user)
	data["Title"] = "New post"
	h.addCSRFToken(r, data)
	renderTemplate(h.templates, w, "post_create.tmpl", data)
}

// Create handles new-post form submission. Protected.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	title := r.FormValue("title")
	content := r.FormValue("content")

	if _, err := h.boardService.CreatePost(user.ID, title, content); err != nil {
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			SetFlash(w, "warning", "Some required information is missing.")
			http.Redirect(w, r, "/posts/new", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to create post", err)
		return
	}

	SetFlash(w, "success", "Your post has been published.")
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

// Delete removes a post if the requester owns it. Protected. A non-owner
// attempt gets a 403 and the post stays untouched.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderNotFound(h.templates, w, r)
		return
	}

	if err := h.boardService.DeletePost(postID, user.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			renderNotFound(h.templates, w, r)
		case errors.Is(err, service.ErrNotPostOwner):
			w.WriteHeader(http.StatusForbidden)
			renderTemplate(h.templates, w, "error.tmpl", map[string]interface{}{
				"Title":   "Forbidden",
				"Message": "Only the author may delete this post.",
			})
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to delete post", err)
		}
		return
	}

	SetFlash(w, "success", "Post deleted.")
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

// ShowCommentForm renders the comment form for a post. Public, matching the
// original page flow; submitting still requires login.
func (h *PostHandler) ShowCommentForm(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderNotFound(h.templates, w, r)
		return
	}

	post, _, err := h.boardService.GetPost(postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			renderNotFound(h.templates, w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to get post", err)
		return
	}

	data := pageData(w, r, h.currentUser(r))
	data["Title"] = "Comment"
	data["Post"] = post
	h.addCSRFToken(r, data)
	renderTemplate(h.templates, w, "comment.tmpl", data)
}

// CreateComment appends a comment to a post. Protected.
func (h *PostHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderNotFound(h.templates, w, r)
		return
	}

	if _, err := h.boardService.AddComment(postID, user.ID, r.FormValue("content")); err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			renderNotFound(h.templates, w, r)
		case errors.As(err, &vErr):
			SetFlash(w, "warning", "Comment content is required.")
			http.Redirect(w, r, "/posts/"+strconv.FormatInt(postID, 10)+"/comment", http.StatusSeeOther)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "failed to create comment", err)
		}
		return
	}

	SetFlash(w, "success", "Comment posted.")
	http.Redirect(w, r, "/posts/"+strconv.FormatInt(postID, 10), http.StatusSeeOther)
}

// currentUser resolves the session cookie on public pages where auth is
// optional; nil when anonymous
func (h *PostHandler) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	user, err := h.authService.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

// addCSRFToken attaches the form token for the requester's session. Anonymous
// visitors get an empty token; the protected POST routes reject it anyway.
func (h *PostHandler) addCSRFToken(r *http.Request, data map[string]interface{}) {
	data["CSRFToken"] = ""
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return
	}
	if token, err := h.csrf.GenerateToken(cookie.Value); err == nil {
		data["CSRFToken"] = token
	}
}
