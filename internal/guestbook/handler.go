package guestbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var ErrUnknownField = errors.New("unknown field")

// ResolverEvent is the payload of an AppSync direct Lambda resolver.
type ResolverEvent struct {
	Arguments json.RawMessage `json:"arguments"`
	Info      ResolverInfo    `json:"info"`
}

type ResolverInfo struct {
	FieldName      string `json:"fieldName"`
	ParentTypeName string `json:"parentTypeName"`
}

// Signatures is what Handler needs from a Store.
type Signatures interface {
	Add(ctx context.Context, subject string, image Image) (*Signature, error)
	List(ctx context.Context, subject string) ([]Signature, error)
}

// Handler resolves the guest-book GraphQL fields.
type Handler struct {
	signatures Signatures
	logger     *zap.Logger
}

func NewHandler(signatures Signatures, logger *zap.Logger) *Handler {
	return &Handler{signatures: signatures, logger: logger.Named("resolver")}
}

type listArgs struct {
	Subject string `json:"subject"`
}

type addArgs struct {
	Subject string `json:"subject"`
	Image   Image  `json:"image"`
}

// Handle dispatches event by its type and field name.
func (h *Handler) Handle(ctx context.Context, event ResolverEvent) (any, error) {
	field := event.Info.ParentTypeName + "." + event.Info.FieldName
	log := h.logger.With(zap.String("field", field))

	switch field {
	case "Query.getGuestBookSignatures":
		var args listArgs
		if err := decodeArgs(event.Arguments, &args); err != nil {
			return nil, err
		}
		return h.signatures.List(ctx, args.Subject)

	case "Mutation.addGuestBookSignature":
		var args addArgs
		if err := decodeArgs(event.Arguments, &args); err != nil {
			return nil, err
		}
		return h.signatures.Add(ctx, args.Subject, args.Image)

	default:
		log.Warn("unhandled field")
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding arguments: %w", err)
	}
	return nil
}
