package service

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/schedule"
	"github.com/locvowork/hotel_scheduler/apigateway/pkg/simpleexcel"
)

//go:embed export_layout.yaml
var defaultExportLayout []byte

// CalendarRow is one shift row of the printed calendar. Days maps a weekday
// to the first names working that shift, one per line.
type CalendarRow struct {
	Shift string                    `excel:"shift"`
	Days  map[domain.Weekday]string `excel:"day"`
}

// StaffCost is one line of the cost sheet.
type StaffCost struct {
	Name       string
	Department domain.Department
	Shifts     int
	Hours      float64
	HourlyRate float64
	Cost       float64
}

// StaffCostTotal labels the closing row of the cost sheet.
const StaffCostTotal = "Total"

type ExportService struct {
	schedule *ScheduleService
	layout   []byte
}

// NewExportService creates the roster exporter. An empty layoutPath uses the
// built-in layout.
func NewExportService(schedule *ScheduleService, layoutPath string) (*ExportService, error) {
	layout := defaultExportLayout
	if layoutPath != "" {
		data, err := os.ReadFile(layoutPath)
		if err != nil {
			return nil, fmt.Errorf("load export layout: %w", err)
		}
		layout = data
	}
	if _, err := simpleexcel.NewDataExporterFromYaml(layout); err != nil {
		return nil, fmt.Errorf("load export layout: %w", err)
	}
	return &ExportService{schedule: schedule, layout: layout}, nil
}

// WeekWorkbook renders the week as an xlsx file.
func (es *ExportService) WeekWorkbook(ctx context.Context, week domain.Week) ([]byte, error) {
	store, err := es.schedule.Load(ctx, week)
	if err != nil {
		return nil, err
	}

	rows, err := simpleexcel.ConvertToDynamicData(CalendarRows(store.Placements()))
	if err != nil {
		return nil, err
	}

	exporter, err := simpleexcel.NewDataExporterFromYaml(es.layout)
	if err != nil {
		return nil, err
	}
	exporter.
		BindSectionTitle("calendar", "Weekly Schedule, "+week.String()).
		BindSectionData("calendar", rows).
		BindSectionData("cost", StaffCosts(store.Placements()))

	data, err := exporter.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	logger.InfoLog(ctx, "exported %s (%d bytes)", week, len(data))
	return data, nil
}

// CalendarRows lays the assigned placements out as shift rows by day columns.
func CalendarRows(placements []schedule.Placement) []CalendarRow {
	names := make(map[domain.ShiftType]map[domain.Weekday][]string)
	for _, p := range placements {
		if !p.Assigned() {
			continue
		}
		if names[p.Shift] == nil {
			names[p.Shift] = make(map[domain.Weekday][]string)
		}
		first := domain.StaffMember{Name: p.Name}.FirstName()
		names[p.Shift][p.Day] = append(names[p.Shift][p.Day], first)
	}

	rows := make([]CalendarRow, 0, len(domain.ShiftTypes))
	for _, shift := range domain.ShiftTypes {
		row := CalendarRow{
			Shift: fmt.Sprintf("%s (%s)", shift, shift.TimeRange()),
			Days:  make(map[domain.Weekday]string, len(domain.Weekdays)),
		}
		for _, day := range domain.Weekdays {
			row.Days[day] = strings.Join(names[shift][day], "\n")
		}
		rows = append(rows, row)
	}
	return rows
}

// StaffCosts returns one line per scheduled staff member, ordered by name,
// followed by a total line.
func StaffCosts(placements []schedule.Placement) []StaffCost {
	byStaff := make(map[string]*StaffCost)
	var ids []string
	for _, p := range placements {
		if !p.Assigned() {
			continue
		}
		line, ok := byStaff[p.StaffID]
		if !ok {
			line = &StaffCost{Name: p.Name, Department: p.Department, HourlyRate: p.HourlyRate}
			byStaff[p.StaffID] = line
			ids = append(ids, p.StaffID)
		}
		line.Shifts++
		line.Hours += p.Shift.NominalHours()
		line.Cost += schedule.SlotCost(p)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return byStaff[ids[i]].Name < byStaff[ids[j]].Name
	})

	out := make([]StaffCost, 0, len(ids)+1)
	total := StaffCost{Name: StaffCostTotal}
	for _, id := range ids {
		line := *byStaff[id]
		out = append(out, line)
		total.Shifts += line.Shifts
		total.Hours += line.Hours
		total.Cost += line.Cost
	}
	return append(out, total)
}
