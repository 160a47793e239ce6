package schedule

import "github.com/locvowork/hotel_scheduler/apigateway/internal/domain"

// SlotCost is the labour cost of one placement.
func SlotCost(p Placement) float64 {
	if !p.Assigned() {
		return 0
	}
	return p.HourlyRate * p.Shift.NominalHours()
}

// WeeklyCost sums hourlyRate x nominalHours over every placement with a day set.
func WeeklyCost(placements []Placement) float64 {
	var total float64
	for _, p := range placements {
		total += SlotCost(p)
	}
	return total
}

// CostByDepartment is WeeklyCost grouped by department.
func CostByDepartment(placements []Placement) map[domain.Department]float64 {
	out := make(map[domain.Department]float64)
	for _, p := range placements {
		if p.Assigned() {
			out[p.Department] += SlotCost(p)
		}
	}
	return out
}

// CostByStaff is WeeklyCost grouped by staff id.
func CostByStaff(placements []Placement) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range placements {
		if p.Assigned() {
			out[p.StaffID] += SlotCost(p)
		}
	}
	return out
}

// HoursByStaff sums nominal hours per staff id.
func HoursByStaff(placements []Placement) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range placements {
		if p.Assigned() {
			out[p.StaffID] += p.Shift.NominalHours()
		}
	}
	return out
}
