// Package api implements the JSON tasks endpoint.
package api

import (
	"strings"

	"github.com/DavidBarbosag/taller2AREP/internal/flatjson"
	"github.com/DavidBarbosag/taller2AREP/internal/request"
	"github.com/DavidBarbosag/taller2AREP/internal/response"
	"github.com/DavidBarbosag/taller2AREP/internal/task"
)

// Response bodies for the create outcomes
const (
	MsgTaskAdded     = "Task added"
	MsgMissingFields = "Missing fields"
	MsgInvalidJSON   = "Invalid JSON format"
)

var requiredFields = []string{"title", "description", "done"}

// Tasks serves GET (list) and POST (create) over a task store.
type Tasks struct {
	store *task.Store
}

func NewTasks(store *task.Store) *Tasks {
	return &Tasks{store: store}
}

// ServeRequest dispatches on the request method
func (h *Tasks) ServeRequest(w *response.Writer, req *request.Request) error {
	switch req.Method {
	case "GET":
		return h.list(w)
	case "POST":
		return h.create(w, req)
	default:
		return w.StatusResponse(response.StatusMethodNotAllowed)
	}
}

func (h *Tasks) list(w *response.Writer) error {
	tasks := h.store.List()
	objs := make([]flatjson.Object, 0, len(tasks))
	for _, t := range tasks {
		objs = append(objs, encodeTask(t))
	}
	return w.JSONResponse(response.StatusOK, flatjson.EncodeArray(objs))
}

func (h *Tasks) create(w *response.Writer, req *request.Request) error {
	data, err := flatjson.Decode(req.BodyString())
	if err != nil {
		return w.ErrorResponse(response.StatusBadRequest, MsgInvalidJSON)
	}

	for _, key := range requiredFields {
		if _, ok := data[key]; !ok {
			return w.ErrorResponse(response.StatusBadRequest, MsgMissingFields)
		}
	}

	h.store.Add(task.Task{
		Title:       data["title"],
		Description: data["description"],
		Done:        strings.EqualFold(data["done"], "true"),
	})
	return w.TextResponse(response.StatusCreated, MsgTaskAdded)
}

func encodeTask(t task.Task) flatjson.Object {
	return flatjson.Object{
		flatjson.String("title", t.Title),
		flatjson.String("description", t.Description),
		flatjson.Bool("done", t.Done),
	}
}
