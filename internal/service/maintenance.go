package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magscene/magsav/internal/entity"
)

// NotifyMaintenanceDue publishes a maintenance_due event for every piece of
// equipment and every vehicle whose next maintenance date has passed.
func (s *Service) NotifyMaintenanceDue(ctx context.Context) error {
	now := s.now()

	equipment, err := s.repos.Equipment.MaintenanceDue(ctx, entity.KindEquipment, now)
	if err != nil {
		return fmt.Errorf("equipment maintenance: %w", err)
	}

	vehicles, err := s.repos.Vehicles.MaintenanceDue(ctx, entity.KindVehicle, now)
	if err != nil {
		return fmt.Errorf("vehicle maintenance: %w", err)
	}

	due := append(equipment, vehicles...)

	for _, d := range due {
		slog.InfoContext(ctx, "maintenance due",
			slog.String("kind", d.Kind.String()),
			slog.Int64("id", d.ID),
			slog.String("name", d.Name),
			slog.Time("due", d.Due))

		if s.events != nil {
			s.events.SendRecordChanged(ctx, entity.RecordEvent{
				Kind:   d.Kind,
				ID:     d.ID,
				Action: entity.ActionMaintenanceDue,
				At:     now.UTC(),
			})
		}
	}

	return nil
}
