package booking

import (
	"math"
	"sort"

	"cleanslate/models"
)

// DefaultHourlyRateCents applies when a worker has no rate on file (R100).
const DefaultHourlyRateCents int64 = 10000

var serviceCategories = []models.ServiceCategory{
	{
		ID:          "essential-tidying",
		Name:        "Essential Tidying",
		Description: "Covers the basics to keep your home neat and clean throughout.",
		Items: []models.ServiceItem{
			{ID: "et-sweep-mop", Name: "Sweep & Mop All Floors", EstimatedTimeMinutes: 60, MaterialFeeCents: 1500},
			{ID: "et-dusting", Name: "Dust Furniture & Surfaces", EstimatedTimeMinutes: 45, MaterialFeeCents: 500},
			{ID: "et-dishwashing", Name: "Wash Dishes", EstimatedTimeMinutes: 30, MaterialFeeCents: 500},
			{ID: "et-bathrooms", Name: "Bathroom Tidy-up (Toilets, Sinks, Mirrors)", EstimatedTimeMinutes: 60, MaterialFeeCents: 2000},
			{ID: "et-trash", Name: "Empty Trash Bins", EstimatedTimeMinutes: 15, MaterialFeeCents: 200},
		},
	},
	{
		ID:          "laundry-linen",
		Name:        "Laundry & Linen Care",
		Description: "Complete laundry service from washing to fresh linens on your bed.",
		Items: []models.ServiceItem{
			{ID: "ll-wash-dry-fold", Name: "Wash, Dry & Fold Laundry (1 load)", EstimatedTimeMinutes: 90, MaterialFeeCents: 2500},
			{ID: "ll-ironing", Name: "Ironing (approx. 10 items)", EstimatedTimeMinutes: 60, MaterialFeeCents: 1000},
			{ID: "ll-change-linens", Name: "Change Bed Linens (per bed)", EstimatedTimeMinutes: 15, MaterialFeeCents: 500},
		},
	},
	{
		ID:          "kitchen-detail",
		Name:        "Kitchen Detail Clean",
		Description: "A focused clean for the heart of your home, tackling grime and organization.",
		Items: []models.ServiceItem{
			{ID: "kd-oven-clean", Name: "Oven Interior Clean", EstimatedTimeMinutes: 60, MaterialFeeCents: 3000},
			{ID: "kd-fridge-clean", Name: "Refrigerator Interior Clean", EstimatedTimeMinutes: 45, MaterialFeeCents: 2000},
			{ID: "kd-cupboard-fronts", Name: "Wipe Cupboard Exteriors", EstimatedTimeMinutes: 30, MaterialFeeCents: 1000},
			{ID: "kd-microwave", Name: "Microwave Interior/Exterior", EstimatedTimeMinutes: 20, MaterialFeeCents: 500},
		},
	},
	{
		ID:          "deluxe-deep-clean",
		Name:        "Deluxe Deep Clean Extras",
		Description: "For those times your home needs extra attention to detail for a thorough refresh.",
		Items: []models.ServiceItem{
			{ID: "ddc-windows-inside", Name: "Interior Window Cleaning (reachable)", EstimatedTimeMinutes: 90, MaterialFeeCents: 2500},
			{ID: "ddc-baseboards", Name: "Wipe Down Baseboards", EstimatedTimeMinutes: 60, MaterialFeeCents: 1000},
			{ID: "ddc-wall-spots", Name: "Spot Clean Walls (minor marks)", EstimatedTimeMinutes: 30, MaterialFeeCents: 1000},
			{ID: "ddc-upholstery-vacuum", Name: "Vacuum Upholstery (e.g., sofas)", EstimatedTimeMinutes: 45, MaterialFeeCents: 500},
		},
	},
}

type catalogEntry struct {
	item       models.ServiceItem
	categoryID string
}

var itemIndex = func() map[string]catalogEntry {
	idx := make(map[string]catalogEntry)
	for _, c := range serviceCategories {
		for _, it := range c.Items {
			idx[it.ID] = catalogEntry{item: it, categoryID: c.ID}
		}
	}
	return idx
}()

// Catalog returns a copy of the static service catalog.
func Catalog() []models.ServiceCategory {
	out := make([]models.ServiceCategory, len(serviceCategories))
	for i, c := range serviceCategories {
		c.Items = append([]models.ServiceItem(nil), c.Items...)
		out[i] = c
	}
	return out
}

// LookupItem finds a catalog item and the category it belongs to.
func LookupItem(id string) (models.ServiceItem, string, bool) {
	e, ok := itemIndex[id]
	return e.item, e.categoryID, ok
}

// IsCategory reports whether id names a catalog category.
func IsCategory(id string) bool {
	for _, c := range serviceCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// CategoryName maps a category id to its display name.
func CategoryName(id string) string {
	for _, c := range serviceCategories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// ComputeQuote prices a set of catalog items at the given hourly rate.
// Labour is minutes * rate / 60 rounded half up to the cent; material fees are added on top.
// Unknown ids are reported and contribute nothing.
func ComputeQuote(hourlyRateCents int64, itemIDs []string) models.Quote {
	if hourlyRateCents <= 0 {
		hourlyRateCents = DefaultHourlyRateCents
	}
	q := models.Quote{
		ServiceItemIDs:  append([]string(nil), itemIDs...),
		HourlyRateCents: hourlyRateCents,
	}
	skills := map[string]struct{}{}
	for _, id := range itemIDs {
		e, ok := itemIndex[id]
		if !ok {
			q.UnknownServiceIDs = append(q.UnknownServiceIDs, id)
			continue
		}
		q.DurationMinutes += e.item.EstimatedTimeMinutes
		q.MaterialFeeCents += e.item.MaterialFeeCents
		skills[e.categoryID] = struct{}{}
	}
	q.LabourCents = LabourCents(q.DurationMinutes, hourlyRateCents)
	q.TotalCents = q.LabourCents + q.MaterialFeeCents
	for s := range skills {
		q.RequiredSkills = append(q.RequiredSkills, s)
	}
	sort.Strings(q.RequiredSkills)
	return q
}

// MaxBookingMinutes caps a single booking at one working day.
const MaxBookingMinutes = 12 * 60

// maxEstimateAdjustment bounds how far a model may move the quote upwards.
const maxEstimateAdjustment = 1.5

// ResolveEstimate applies a requested duration and price on top of a quote.
// Neither may go below the quote; zero means "use the quote".
func ResolveEstimate(q models.Quote, minutes int, cents int64) (int, int64) {
	if minutes < q.DurationMinutes {
		minutes = q.DurationMinutes
	}
	if cents < q.TotalCents {
		cents = q.TotalCents
	}
	return minutes, cents
}

// ClampAdjustment keeps a suggested duration and price between the quote and
// half again the quote.
func ClampAdjustment(q models.Quote, minutes int, cents int64) (int, int64) {
	minutes, cents = ResolveEstimate(q, minutes, cents)
	if ceiling := int(math.Round(float64(q.DurationMinutes) * maxEstimateAdjustment)); minutes > ceiling {
		minutes = ceiling
	}
	if ceiling := int64(math.Round(float64(q.TotalCents) * maxEstimateAdjustment)); cents > ceiling {
		cents = ceiling
	}
	return minutes, cents
}

// LabourCents is minutes * hourly rate / 60, rounded half up.
func LabourCents(minutes int, hourlyRateCents int64) int64 {
	if minutes <= 0 {
		return 0
	}
	return (int64(minutes)*hourlyRateCents + 30) / 60
}

// ServiceNames resolves display names, skipping unknown ids.
func ServiceNames(itemIDs []string) []string {
	names := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if e, ok := itemIndex[id]; ok {
			names = append(names, e.item.Name)
		}
	}
	return names
}

// CoversSkills reports whether a worker offering the given categories can do every required one.
func CoversSkills(offered, required []string) bool {
	have := make(map[string]struct{}, len(offered))
	for _, o := range offered {
		have[o] = struct{}{}
	}
	for _, r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}
