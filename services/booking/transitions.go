package booking

import (
	"cleanslate/models"
	"cleanslate/utils"
)

// Actor is the party allowed to drive a transition.
type Actor string

const (
	ActorSystem   Actor = "system"
	ActorCustomer Actor = utils.RoleCustomer
	ActorWorker   Actor = utils.RoleWorker
	ActorAdmin    Actor = utils.RoleAdmin
)

// transitions maps from -> to -> owning actor.
var transitions = map[models.BookingStatus]map[models.BookingStatus]Actor{
	models.StatusRequested: {
		models.StatusAwaitingWorkerConfirmation: ActorSystem,
	},
	models.StatusAwaitingWorkerConfirmation: {
		models.StatusConfirmedByWorker:   ActorWorker,
		models.StatusCancelledByWorker:   ActorWorker,
		models.StatusCancelledByCustomer: ActorCustomer,
		models.StatusCancelledByAdmin:    ActorAdmin,
	},
	models.StatusConfirmedByWorker: {
		models.StatusInProgress:          ActorWorker,
		models.StatusCancelledByCustomer: ActorCustomer,
		models.StatusCancelledByAdmin:    ActorAdmin,
	},
	models.StatusInProgress: {
		models.StatusCompletedByWorker: ActorWorker,
	},
	models.StatusCompletedByWorker: {
		models.StatusCustomerConfirmedAndRated: ActorCustomer,
	},
}

// TransitionActor returns who owns the edge from -> to, and whether the edge exists.
func TransitionActor(from, to models.BookingStatus) (Actor, bool) {
	actor, ok := transitions[from][to]
	return actor, ok
}

// CanTransition reports whether from -> to is an edge of the lifecycle graph.
func CanTransition(from, to models.BookingStatus) bool {
	_, ok := TransitionActor(from, to)
	return ok
}

// NextStatuses lists the statuses reachable from s in one step.
func NextStatuses(s models.BookingStatus) []models.BookingStatus {
	var out []models.BookingStatus
	for _, candidate := range models.AllBookingStatuses() {
		if CanTransition(s, candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// Caller identifies who is asking for a change. The zero value is the system itself.
type Caller struct {
	ID   string
	Role Actor
}

// SystemCaller is used for internal transitions and trusted tooling.
var SystemCaller = Caller{Role: ActorSystem}

// authorize checks that the caller may drive the edge on this booking.
// Admins may drive any worker or customer edge; the system may drive anything.
func authorize(caller Caller, b *models.Booking, owner Actor) error {
	switch caller.Role {
	case ActorSystem, "":
		return nil
	case ActorAdmin:
		if owner == ActorSystem {
			return utils.ErrForbidden
		}
		return nil
	case ActorWorker:
		if owner != ActorWorker || b.WorkerID != caller.ID {
			return utils.ErrForbidden
		}
		return nil
	case ActorCustomer:
		if owner != ActorCustomer || b.CustomerID != caller.ID {
			return utils.ErrForbidden
		}
		return nil
	}
	return utils.ErrForbidden
}

// CanView reports whether the caller may read the booking.
func CanView(caller Caller, b *models.Booking) bool {
	switch caller.Role {
	case ActorSystem, ActorAdmin, "":
		return true
	case ActorWorker:
		return b.WorkerID == caller.ID
	case ActorCustomer:
		return b.CustomerID == caller.ID
	}
	return false
}
