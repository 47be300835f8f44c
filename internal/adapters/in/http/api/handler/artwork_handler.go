// internal/adapters/in/http/api/handler/artwork_handler.go
package apiHandler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	usecase "atelier/internal/application/usecase"
	artdom "atelier/internal/domain/artwork"
)

// maxImageBytes caps artwork image uploads (8 MiB).
const maxImageBytes = 8 << 20

// ArtworkHandler serves the catalog: CRUD, like/comment, buy, image.
// Reads are public; everything else needs the verified uid.
type ArtworkHandler struct {
	uc *usecase.ArtworkUsecase
}

func NewArtworkHandler(uc *usecase.ArtworkUsecase) http.Handler {
	return &ArtworkHandler{uc: uc}
}

func (h *ArtworkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// GET /api/artworks
	case r.Method == http.MethodGet && path == "/api/artworks":
		h.list(w, r)

	// POST /api/artworks
	case r.Method == http.MethodPost && path == "/api/artworks":
		h.post(w, r)

	case strings.HasPrefix(path, "/api/artworks/"):
		rest := strings.TrimPrefix(path, "/api/artworks/")
		id, action, _ := strings.Cut(rest, "/")

		switch {
		case action == "" && r.Method == http.MethodGet:
			h.get(w, r, id)
		case action == "" && r.Method == http.MethodPatch:
			h.patch(w, r, id)
		case action == "" && r.Method == http.MethodDelete:
			h.del(w, r, id)
		case action == "like" && r.Method == http.MethodPost:
			h.like(w, r, id)
		case action == "like" && r.Method == http.MethodDelete:
			h.unlike(w, r, id)
		case action == "comments" && r.Method == http.MethodPost:
			h.comment(w, r, id)
		case action == "buy" && r.Method == http.MethodPost:
			h.buy(w, r, id)
		case action == "image" && r.Method == http.MethodPost:
			h.image(w, r, id)
		default:
			writeError(w, http.StatusNotFound, "not_found")
		}

	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

// GET /api/artworks?forSale=true&artistId=...&ownerId=...
func (h *ArtworkHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter artdom.Filter
	switch strings.ToLower(q.Get("forSale")) {
	case "true":
		v := true
		filter.ForSale = &v
	case "false":
		v := false
		filter.ForSale = &v
	}
	filter.ArtistID = strings.TrimSpace(q.Get("artistId"))
	filter.OwnerID = strings.TrimSpace(q.Get("ownerId"))

	arts, err := h.uc.List(r.Context(), filter)
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, arts)
}

func (h *ArtworkHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	a, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ArtworkHandler) post(w http.ResponseWriter, r *http.Request) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Price       *int   `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.uc.Create(r.Context(), uid, usecase.CreateArtworkInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *ArtworkHandler) patch(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Price       *int    `json:"price"`
		ForSale     *bool   `json:"forSale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.uc.Update(r.Context(), id, uid, usecase.UpdateArtworkInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		ForSale:     req.ForSale,
	})
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ArtworkHandler) del(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.uc.Delete(r.Context(), id, uid); err != nil {
		writeArtworkErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ArtworkHandler) like(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	a, err := h.uc.Like(r.Context(), id, uid)
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ArtworkHandler) unlike(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	a, err := h.uc.Unlike(r.Context(), id, uid)
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *ArtworkHandler) comment(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	a, err := h.uc.Comment(r.Context(), id, uid, req.Text)
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *ArtworkHandler) buy(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	a, err := h.uc.Buy(r.Context(), id, uid)
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// POST /api/artworks/{id}/image takes the raw image body; the upload
// content type comes from the request header.
func (h *ArtworkHandler) image(w http.ResponseWriter, r *http.Request, id string) {
	uid, ok := requireUser(w, r)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxImageBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if len(data) > maxImageBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	a, err := h.uc.AttachImage(r.Context(), id, uid, data, r.Header.Get("Content-Type"))
	if err != nil {
		writeArtworkErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func writeArtworkErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError

	switch err {
	case artdom.ErrInvalidID,
		artdom.ErrInvalidTitle,
		artdom.ErrInvalidPrice,
		artdom.ErrInvalidArtistID,
		artdom.ErrInvalidComment,
		artdom.ErrNotForSale,
		artdom.ErrAlreadySold,
		artdom.ErrOwnArtwork,
		artdom.ErrSoldLocked,
		usecase.ErrArtworkInvalidArgument:
		code = http.StatusBadRequest
	case artdom.ErrNotFound:
		code = http.StatusNotFound
	case artdom.ErrConflict:
		code = http.StatusConflict
	case usecase.ErrArtworkForbidden:
		code = http.StatusForbidden
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
