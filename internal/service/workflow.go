package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magscene/magsav/internal/entity"
)

// ValidateRequest closes the triage of a pending service request and starts
// the follow-up matching action. Steps run one after the other without a
// transaction: a failure after the follow-up record is created leaves that
// record in place and the request pending.
func (s *Service) ValidateRequest(
	ctx context.Context, id int64, action entity.ValidationAction,
) (entity.ServiceRequest, error) {
	if !action.IsValid() {
		return entity.ServiceRequest{}, (&entity.ValidationError{}).Add("action", msgInvalid)
	}

	req, err := s.ServiceRequests.Get(ctx, id)
	if err != nil {
		return req, err
	}

	if req.Status != entity.RequestPending {
		return req, fmt.Errorf("%w: service request %d is %s", entity.ErrConflict, id, req.Status)
	}

	now := s.now()

	switch action {
	case entity.ActionDiagnostic, entity.ActionInternalRepair:
		status := entity.RepairPending
		if action == entity.ActionDiagnostic {
			status = entity.RepairDiagnostic
		}

		repair := entity.Repair{
			RepairNumber:       number("REP", now),
			Description:        req.Title,
			Status:             status,
			Priority:           req.Priority,
			StartDate:          &now,
			EquipmentID:        req.EquipmentID,
			ProblemDescription: req.Description,
			ServiceRequestID:   &req.ID,
		}

		repair, err = s.Repairs.Insert(ctx, repair)
		if err != nil {
			return req, fmt.Errorf("create repair: %w", err)
		}

		req.RelatedRepairID = &repair.ID
	case entity.ActionRMA:
		priority := req.Priority

		rma := entity.RMA{
			RMANumber:        number("RMA", now),
			Reason:           req.Title,
			Status:           entity.RMARequested,
			Priority:         &priority,
			RequestDate:      now,
			EquipmentID:      req.EquipmentID,
			ClientID:         req.ClientID,
			Notes:            req.Description,
			ServiceRequestID: &req.ID,
		}

		rma, err = s.RMAs.Insert(ctx, rma)
		if err != nil {
			return req, fmt.Errorf("create rma: %w", err)
		}

		req.RelatedRMAID = &rma.ID
	case entity.ActionScrap:
		if req.EquipmentID != nil {
			_, err = s.Equipment.Update(ctx, *req.EquipmentID, map[string]any{
				"status": entity.EquipmentRetired,
			})
			if err != nil {
				return req, fmt.Errorf("retire equipment: %w", err)
			}
		}
	}

	req.Status = entity.RequestValidated
	req.ValidationAction = &action

	req, err = s.ServiceRequests.Save(ctx, req)
	if err != nil {
		return req, err
	}

	slog.InfoContext(ctx, "service request validated",
		slog.Int64("id", req.ID), slog.String("action", string(action)))

	return req, nil
}

// AuthorizeRMA approves a requested return.
func (s *Service) AuthorizeRMA(ctx context.Context, id int64) (entity.RMA, error) {
	rma, err := s.RMAs.Get(ctx, id)
	if err != nil {
		return rma, err
	}

	if rma.Status != entity.RMARequested {
		return rma, fmt.Errorf("%w: rma %d is %s", entity.ErrConflict, id, rma.Status)
	}

	rma.Status = entity.RMAApproved

	return s.RMAs.Save(ctx, rma)
}
