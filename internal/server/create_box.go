package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// itemSubmission mirrors the request shape of one item: id, name and a
// list of image payloads under the "image" key.
type itemSubmission struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []imagePayload `json:"image"`
}

type boxSubmission struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Items []itemSubmission `json:"items"`
}

// createBoxResp is the JSON response after a successful creation. Image
// bytes are never echoed back; each item carries opaque identifiers.
type createBoxResp struct {
	Message string    `json:"message"`
	Box     StoredBox `json:"box"`
}

type decodedImage struct {
	data        []byte
	contentType string
}

// createBoxHandler handles POST /boxes: validate the submission, decode
// every image, upload all images concurrently, then persist the box
// record with the collected image identifiers in submission order.
func (cfg Config) createBoxHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var sub boxSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := validateBox(sub); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		// Decode everything up front so a malformed payload fails before
		// any object is written.
		decoded := make([][]decodedImage, len(sub.Items))
		for i, item := range sub.Items {
			decoded[i] = make([]decodedImage, len(item.Images))
			for j, img := range item.Images {
				data, contentType, err := img.normalize()
				if err != nil {
					writeError(w, http.StatusBadRequest, err.Error())
					return
				}
				decoded[i][j] = decodedImage{data: data, contentType: contentType}
			}
		}

		// Fan out all uploads. The first failure cancels the group
		// context; each identifier lands back at its original position.
		imageIDs := make([][]string, len(decoded))
		g, ctx := errgroup.WithContext(r.Context())
		for i := range decoded {
			imageIDs[i] = make([]string, len(decoded[i]))
			for j := range decoded[i] {
				g.Go(func() error {
					id, err := cfg.Images.Put(ctx, decoded[i][j].data, decoded[i][j].contentType)
					if err != nil {
						return err
					}
					imageIDs[i][j] = id
					return nil
				})
			}
		}
		if err := g.Wait(); err != nil {
			rid := RequestIDFromContext(r.Context())
			log.Printf("rid=%s msg=image_upload_failed err=%v", rid, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		box := StoredBox{
			ID:    sub.ID,
			Name:  sub.Name,
			Items: make([]StoredItem, len(sub.Items)),
		}
		for i, item := range sub.Items {
			box.Items[i] = StoredItem{ID: item.ID, Name: item.Name, ImageIDs: imageIDs[i]}
		}

		// The errgroup context is cancelled once Wait returns; the insert
		// uses the request context.
		if err := cfg.Boxes.Insert(r.Context(), box); err != nil {
			if errors.Is(err, ErrDuplicateBox) {
				writeError(w, http.StatusConflict, "box with this id already exists")
				return
			}
			rid := RequestIDFromContext(r.Context())
			log.Printf("rid=%s msg=box_insert_failed err=%v", rid, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createBoxResp{
			Message: "Box created successfully",
			Box:     box,
		})
	})
}
