package room

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"fluiddiary/internal/domain/document"
	"fluiddiary/internal/domain/room"
)

type Handler struct {
	service    document.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service document.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.putOp(), h.put)
	huma.Register(api, h.getOp(), h.get)
}

func (h *Handler) put(ctx context.Context, input *putInput) (*putOutput, error) {
	code, err := h.service.Put(ctx, input.Code, input.Body)
	if err != nil {
		if errors.Is(err, room.ErrInvalidCode) || errors.Is(err, document.ErrInvalidSnapshot) {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		h.log.Error("failed to store room document", "room", input.Code, "error", err)
		return nil, err
	}

	return &putOutput{
		Body: putResponse{
			Code:   code,
			Status: "Ok",
		},
	}, nil
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	snap, err := h.service.Get(ctx, input.Code)
	if err != nil {
		switch {
		case errors.Is(err, room.ErrInvalidCode):
			return nil, huma.Error422UnprocessableEntity(err.Error())
		case errors.Is(err, document.ErrNotFound):
			return nil, huma.Error404NotFound("room has no document yet")
		default:
			h.log.Error("failed to load room document", "room", input.Code, "error", err)
			return nil, err
		}
	}

	return &getOutput{Body: snap}, nil
}
