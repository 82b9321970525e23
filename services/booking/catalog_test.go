package booking

import (
	"testing"

	"cleanslate/models"
)

func TestLabourCentsRoundsHalfUp(t *testing.T) {
	tests := []struct {
		minutes int
		rate    int64
		want    int64
	}{
		{60, 10000, 10000},
		{150, 11000, 27500},
		{45, 10001, 7501},
		{20, 10000, 3333},
		{1, 30, 1},
		{0, 10000, 0},
	}
	for _, tt := range tests {
		if got := LabourCents(tt.minutes, tt.rate); got != tt.want {
			t.Fatalf("LabourCents(%d, %d): expected %d, got %d", tt.minutes, tt.rate, tt.want, got)
		}
	}
}

func TestComputeQuote(t *testing.T) {
	q := ComputeQuote(12500, []string{"kd-oven-clean", "ddc-windows-inside", "zz-unknown"})

	if q.DurationMinutes != 150 {
		t.Fatalf("expected 150 minutes, got %d", q.DurationMinutes)
	}
	if q.LabourCents != 31250 {
		t.Fatalf("expected 31250 labour cents, got %d", q.LabourCents)
	}
	if q.MaterialFeeCents != 5500 || q.TotalCents != 36750 {
		t.Fatalf("expected 5500 fees and 36750 total, got %d and %d", q.MaterialFeeCents, q.TotalCents)
	}
	if len(q.UnknownServiceIDs) != 1 || q.UnknownServiceIDs[0] != "zz-unknown" {
		t.Fatalf("expected zz-unknown to be reported, got %v", q.UnknownServiceIDs)
	}
	if len(q.RequiredSkills) != 2 || q.RequiredSkills[0] != "deluxe-deep-clean" || q.RequiredSkills[1] != "kitchen-detail" {
		t.Fatalf("unexpected required skills %v", q.RequiredSkills)
	}
}

func TestComputeQuoteDefaultsRate(t *testing.T) {
	q := ComputeQuote(0, []string{"et-trash"})
	if q.HourlyRateCents != DefaultHourlyRateCents {
		t.Fatalf("expected default rate, got %d", q.HourlyRateCents)
	}
	// 15 minutes at R100/h plus R2 material fee.
	if q.TotalCents != 2500+200 {
		t.Fatalf("expected 2700, got %d", q.TotalCents)
	}
}

func TestCatalogIsACopy(t *testing.T) {
	c := Catalog()
	if len(c) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(c))
	}
	c[0].Items[0].Name = "changed"
	if item, cat, ok := LookupItem("et-sweep-mop"); !ok || item.Name != "Sweep & Mop All Floors" || cat != "essential-tidying" {
		t.Fatalf("catalog was mutated through a copy: %+v %s", item, cat)
	}
	if !IsCategory("laundry-linen") || IsCategory("et-sweep-mop") {
		t.Fatalf("IsCategory confused items and categories")
	}
}

func TestCoversSkills(t *testing.T) {
	if !CoversSkills([]string{"a", "b"}, []string{"b"}) {
		t.Fatalf("expected b to be covered")
	}
	if CoversSkills([]string{"a"}, []string{"a", "c"}) {
		t.Fatalf("expected c to be missing")
	}
}

func TestTransitionsGraph(t *testing.T) {
	if got := NextStatuses(models.StatusAwaitingWorkerConfirmation); len(got) != 4 {
		t.Fatalf("expected 4 moves from AwaitingWorkerConfirmation, got %v", got)
	}
	for _, s := range []models.BookingStatus{
		models.StatusCustomerConfirmedAndRated,
		models.StatusCancelledByCustomer,
		models.StatusCancelledByWorker,
		models.StatusCancelledByAdmin,
	} {
		if next := NextStatuses(s); len(next) != 0 {
			t.Fatalf("expected %s to be terminal, got %v", s, next)
		}
	}
	if actor, ok := TransitionActor(models.StatusRequested, models.StatusAwaitingWorkerConfirmation); !ok || actor != ActorSystem {
		t.Fatalf("expected system to own Requested -> AwaitingWorkerConfirmation")
	}
	if CanTransition(models.StatusInProgress, models.StatusCancelledByCustomer) {
		t.Fatalf("expected an in-progress booking not to be cancellable")
	}
}

func TestAuthorize(t *testing.T) {
	b := &models.Booking{CustomerID: "c1", WorkerID: "w1"}
	tests := []struct {
		name   string
		caller Caller
		owner  Actor
		ok     bool
	}{
		{"system anything", SystemCaller, ActorSystem, true},
		{"admin customer edge", Caller{ID: "a", Role: ActorAdmin}, ActorCustomer, true},
		{"admin system edge", Caller{ID: "a", Role: ActorAdmin}, ActorSystem, false},
		{"own worker", Caller{ID: "w1", Role: ActorWorker}, ActorWorker, true},
		{"foreign worker", Caller{ID: "w2", Role: ActorWorker}, ActorWorker, false},
		{"worker on customer edge", Caller{ID: "w1", Role: ActorWorker}, ActorCustomer, false},
		{"own customer", Caller{ID: "c1", Role: ActorCustomer}, ActorCustomer, true},
		{"unknown role", Caller{ID: "x", Role: "guest"}, ActorCustomer, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := authorize(tt.caller, b, tt.owner)
			if (err == nil) != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, err)
			}
		})
	}

	if !CanView(Caller{ID: "c1", Role: ActorCustomer}, b) || CanView(Caller{ID: "c2", Role: ActorCustomer}, b) {
		t.Fatalf("CanView should only admit the owning customer")
	}
}
