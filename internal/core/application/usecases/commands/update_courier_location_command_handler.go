package commands

import (
	"context"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/ports"
)

// UpdateCourierLocationCommandHandler feeds the live geo index. Positions
// are ephemeral, so no transaction is involved; the index applies its own
// TTL.
type UpdateCourierLocationCommandHandler struct {
	geoIndex ports.GeoIndex
}

// NewUpdateCourierLocationCommandHandler creates a handler for position reports.
func NewUpdateCourierLocationCommandHandler(geoIndex ports.GeoIndex) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		geoIndex: geoIndex,
	}
}

// Handle processes the position report.
func (h *UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.geoIndex.Update(ctx, cmd.CourierID(), cmd.Point())
}

// HandleRemove drops the courier from the index when they go offline.
func (h *UpdateCourierLocationCommandHandler) HandleRemove(ctx context.Context, courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	return h.geoIndex.Remove(ctx, courierID)
}
