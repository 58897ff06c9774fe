package governance

import (
	"fmt"

	"github.com/mmynk/daojo/internal/models"
)

// transitions lists every allowed status change. Anything absent is rejected.
var transitions = map[models.RequestStatus][]models.RequestStatus{
	models.RequestStatusActive:   {models.RequestStatusApproved, models.RequestStatusRejected},
	models.RequestStatusApproved: {models.RequestStatusDisbursed},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to models.RequestStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// checkTransition returns the governance error explaining why from -> to is
// not allowed, or nil when it is.
func checkTransition(from, to models.RequestStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	switch to {
	case models.RequestStatusDisbursed:
		switch from {
		case models.RequestStatusActive:
			return ErrRequestNotApproved
		case models.RequestStatusRejected:
			return ErrRequestRejected
		case models.RequestStatusDisbursed:
			return ErrRequestAlreadyDisbursed
		}
	case models.RequestStatusApproved, models.RequestStatusRejected:
		return ErrRequestNotActive
	}
	return fmt.Errorf("invalid status transition %s -> %s", from, to)
}

// transition moves req to the next status after validating it against the table.
func transition(req *models.FundingRequest, to models.RequestStatus) error {
	if err := checkTransition(req.Status, to); err != nil {
		return err
	}
	req.Status = to
	return nil
}
