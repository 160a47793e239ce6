package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/logger"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/repository"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/schedule"
	"github.com/locvowork/hotel_scheduler/apigateway/pkg/dataflow"
)

// insertWorkers bounds each seeding stage. Both stages together stay below
// the default DB_MAX_IDLE_CONNS.
const insertWorkers = 4

//go:embed seed_presets.yaml
var seedPresetsYAML []byte

// SeedPreset names a demo data size.
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
	PresetXLarge SeedPreset = "xlarge"
)

// PresetConfig sizes one seeding run.
type PresetConfig struct {
	ExtraStaffPerDepartment int `yaml:"extra_staff_per_department"`
	Weeks                   int `yaml:"weeks"`
}

// SeedConfig is the parsed seed_presets.yaml.
type SeedConfig struct {
	Presets map[SeedPreset]PresetConfig `yaml:"presets"`
	Budgets map[domain.Department]float64 `yaml:"budgets"`
}

// LoadSeedConfig parses the embedded presets.
func LoadSeedConfig() (*SeedConfig, error) {
	return ParseSeedConfig(seedPresetsYAML)
}

// ParseSeedConfig parses a presets document.
func ParseSeedConfig(data []byte) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse seed presets: %w", err)
	}
	for dept := range cfg.Budgets {
		if !dept.Valid() && dept != domain.DepartmentOverall {
			return nil, fmt.Errorf("seed presets: unknown budget department %q", dept)
		}
	}
	return &cfg, nil
}

// Preset returns the named preset, falling back to medium.
func (c *SeedConfig) Preset(name SeedPreset) PresetConfig {
	if p, ok := c.Presets[name]; ok {
		return p
	}
	return c.Presets[PresetMedium]
}

type mockStaff struct {
	name  string
	dept  domain.Department
	shift domain.ShiftType
}

// The front-office demo crew.
var demoStaff = []mockStaff{
	{"Sarah Johnson", domain.DepartmentFrontDesk, domain.ShiftMorning},
	{"Michael Chen", domain.DepartmentFrontDesk, domain.ShiftEvening},
	{"Emma Williams", domain.DepartmentHousekeeping, domain.ShiftMorning},
	{"James Martinez", domain.DepartmentHousekeeping, domain.ShiftMorning},
	{"Lisa Anderson", domain.DepartmentMaintenance, domain.ShiftDay},
	{"David Thompson", domain.DepartmentRestaurant, domain.ShiftSplit},
	{"Sophie Brown", domain.DepartmentRestaurant, domain.ShiftEvening},
	{"Ryan Davis", domain.DepartmentFrontDesk, domain.ShiftNight},
}

var (
	firstNames = []string{"Olivia", "Noah", "Ava", "Liam", "Mia", "Lucas", "Chloe", "Ethan", "Grace", "Mateo", "Hannah", "Leo"}
	lastNames  = []string{"Nguyen", "Garcia", "Muller", "Rossi", "Kowalski", "Silva", "Tanaka", "Okafor", "Dubois", "Larsen"}
)

// DataSeeder fills the database with demo staff, budgets and schedules.
type DataSeeder struct {
	db    *sql.DB
	index *ElasticSearchClient
	rng   *rand.Rand
}

// NewDataSeeder creates a seeder. index may be nil when search is disabled.
func NewDataSeeder(db *sql.DB, index *ElasticSearchClient, seed int64) *DataSeeder {
	return &DataSeeder{db: db, index: index, rng: rand.New(rand.NewSource(seed))}
}

// SeedData inserts staff, budgets for the months touched and template-based
// schedules for the given number of weeks starting at from.
func (ds *DataSeeder) SeedData(ctx context.Context, cfg *SeedConfig, preset SeedPreset, from domain.Week) error {
	start := time.Now()
	p := cfg.Preset(preset)
	logger.InfoLog(ctx, "seeding preset %s: %d extra staff per department, %d weeks", preset, p.ExtraStaffPerDepartment, p.Weeks)

	staffRepo := repository.NewStaffRepository(ds.db)
	members, shifts := ds.buildStaff(p)
	if err := ds.insertStaff(ctx, staffRepo, members, shifts); err != nil {
		return err
	}
	logger.InfoLog(ctx, "created %d staff members with availability", len(members))

	if ds.index != nil {
		if err := ds.index.EnsureIndex(ctx); err != nil {
			return err
		}
		if err := ds.index.BulkIndexStaff(ctx, members); err != nil {
			return err
		}
		logger.InfoLog(ctx, "indexed %d staff members", len(members))
	}

	budgetRepo := repository.NewBudgetRepository(ds.db)
	store := schedule.NewStore(staffRepo, repository.NewSlotRepository(ds.db))
	months := make(map[[2]int]bool)
	slots := 0

	for w := 0; w < max(p.Weeks, 1); w++ {
		week := domain.CurrentWeek(from.Monday().AddDate(0, 0, 7*w))
		monday := week.Monday()
		months[[2]int{int(monday.Month()), monday.Year()}] = true

		if _, err := store.Load(ctx, week); err != nil {
			return fmt.Errorf("failed to load week %s: %w", week, err)
		}
		for i, m := range members {
			pattern, err := schedule.Expand(ds.pickTemplate(), shifts[i])
			if err != nil {
				return err
			}
			if err := store.ApplyTemplate(ctx, m.ID, pattern); err != nil {
				return fmt.Errorf("failed to schedule %s in %s: %w", m.Name, week, err)
			}
			slots += len(pattern)
		}
	}
	logger.InfoLog(ctx, "created %d schedule slots", slots)

	for key := range months {
		for _, dept := range sortedBudgetDepartments(cfg.Budgets) {
			b := domain.Budget{Department: dept, WeeklyBudget: cfg.Budgets[dept], Month: key[0], Year: key[1]}
			if err := budgetRepo.Upsert(ctx, &b); err != nil {
				return fmt.Errorf("failed to upsert budget %s %d/%d: %w", dept, key[0], key[1], err)
			}
		}
	}

	logger.InfoLog(ctx, "seeding done in %v", time.Since(start))
	return nil
}

type seedMember struct {
	member *domain.StaffMember
	shift  domain.ShiftType
}

// insertStaff creates the members, then writes a week of availability for
// each one as soon as its row exists.
func (ds *DataSeeder) insertStaff(ctx context.Context, staffRepo domain.StaffRepository, members []domain.StaffMember, shifts []domain.ShiftType) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	seeds := make([]seedMember, len(members))
	for i := range members {
		seeds[i] = seedMember{member: &members[i], shift: shifts[i]}
	}

	var (
		mu        sync.Mutex
		insertErr error
	)
	created := dataflow.Map(ctx, dataflow.From(ctx, seeds...), func(ctx context.Context, s seedMember) (seedMember, error) {
		if err := staffRepo.Create(ctx, s.member); err != nil {
			return s, fmt.Errorf("failed to insert staff %s: %w", s.member.Name, err)
		}
		return s, nil
	},
		dataflow.WithWorkers(insertWorkers),
		dataflow.WithRetry(2, dataflow.ConstantBackoff(100*time.Millisecond)),
		dataflow.WithErrorHandler(func(err error) bool {
			mu.Lock()
			if insertErr == nil {
				insertErr = err
			}
			mu.Unlock()
			cancel()
			return false
		}),
	)

	availRepo := repository.NewAvailabilityRepository(ds.db)
	err := dataflow.ForEach(ctx, created, func(ctx context.Context, s seedMember) error {
		for _, a := range demoAvailability(s.member.ID, s.shift) {
			if err := availRepo.Upsert(ctx, &a); err != nil {
				return fmt.Errorf("failed to set availability of %s: %w", s.member.Name, err)
			}
		}
		return nil
	}, dataflow.WithWorkers(insertWorkers))

	mu.Lock()
	defer mu.Unlock()
	if insertErr != nil {
		return insertErr
	}
	return err
}

// demoAvailability marks every day available, preferring the member's usual
// shift when it is one a preference can name.
func demoAvailability(staffID string, usual domain.ShiftType) []domain.Availability {
	var preferred *string
	switch usual {
	case domain.ShiftMorning, domain.ShiftDay, domain.ShiftEvening, domain.ShiftNight:
		p := strings.ToLower(string(usual))
		preferred = &p
	}
	out := make([]domain.Availability, len(domain.Weekdays))
	for i, d := range domain.Weekdays {
		out[i] = domain.Availability{
			StaffID:        staffID,
			DayOfWeek:      d.Lower(),
			IsAvailable:    true,
			PreferredShift: preferred,
		}
	}
	return out
}

// buildStaff returns the demo crew plus generated members, with each
// member's usual shift at the same index.
func (ds *DataSeeder) buildStaff(p PresetConfig) ([]domain.StaffMember, []domain.ShiftType) {
	var members []domain.StaffMember
	var shifts []domain.ShiftType
	add := func(name string, dept domain.Department, shift domain.ShiftType) {
		hire := time.Now().UTC().AddDate(-ds.rng.Intn(8), -ds.rng.Intn(12), 0).Truncate(24 * time.Hour)
		members = append(members, domain.StaffMember{
			Name:       name,
			Department: dept,
			HourlyRate: ds.hourlyRate(),
			Avatar:     domain.Initials(name),
			HireDate:   &hire,
		})
		shifts = append(shifts, shift)
	}

	for _, m := range demoStaff {
		add(m.name, m.dept, m.shift)
	}
	for _, dept := range domain.Departments {
		for i := 0; i < p.ExtraStaffPerDepartment; i++ {
			name := firstNames[ds.rng.Intn(len(firstNames))] + " " + lastNames[ds.rng.Intn(len(lastNames))]
			add(name, dept, domain.ShiftTypes[ds.rng.Intn(len(domain.ShiftTypes))])
		}
	}
	return members, shifts
}

// hourlyRate is a rate between 14.00 and 28.00 in half steps.
func (ds *DataSeeder) hourlyRate() float64 {
	return 14 + math.Round(ds.rng.Float64()*28)/2
}

func (ds *DataSeeder) pickTemplate() schedule.TemplateID {
	templates := schedule.Templates()
	return templates[ds.rng.Intn(len(templates))].ID
}

func sortedBudgetDepartments(budgets map[domain.Department]float64) []domain.Department {
	depts := make([]domain.Department, 0, len(budgets))
	for d := range budgets {
		depts = append(depts, d)
	}
	sort.Slice(depts, func(i, j int) bool { return depts[i] < depts[j] })
	return depts
}

// ClearData removes every seeded row and the search index.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	logger.InfoLog(ctx, "clearing data")

	for _, table := range []string{"shift_schedules", "staff_availability", "time_off_requests", "budgets", "staff_members"} {
		if _, err := ds.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}

	if ds.index != nil {
		if err := ds.index.DeleteIndex(ctx); err != nil {
			return err
		}
	}
	return nil
}
