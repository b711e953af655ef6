package room

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) putOp() huma.Operation {
	return huma.Operation{
		OperationID: "room-put",
		Method:      http.MethodPut,
		Path:        "/api/v1/rooms/{code}",
		Summary:     "Replace room document",
		Description: "Stores the uploaded diary snapshot as the room's current document and notifies subscribers",
		Tags:        []string{"rooms"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "room-get",
		Method:      http.MethodGet,
		Path:        "/api/v1/rooms/{code}",
		Summary:     "Fetch room document",
		Description: "Returns the room's current diary snapshot",
		Tags:        []string{"rooms"},
		Middlewares: h.middleware,
	}
}
