// Package main seeds the remote backend with fixture data from a YAML
// file. Useful for demo environments and for exercising the dashboard
// against a fresh backend.
//
// Usage:
//
//	seed -file fixtures.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"fleetpulse.io/fleetpulse/internal/auth"
	"fleetpulse.io/fleetpulse/internal/config"
	"fleetpulse.io/fleetpulse/internal/domain"
	"fleetpulse.io/fleetpulse/internal/pkg/logger"
	"fleetpulse.io/fleetpulse/internal/remote"
)

// fixtures is the YAML document layout. Dates use any of the formats
// the backend emits; they are normalized on the way in.
type fixtures struct {
	Equipment   []equipmentFixture   `yaml:"equipment"`
	Maintenance []maintenanceFixture `yaml:"maintenance"`
	Inspections []inspectionFixture  `yaml:"inspections"`
	Remarks     []remarkFixture      `yaml:"remarks"`
	Tasks       []taskFixture        `yaml:"tasks"`
}

type equipmentFixture struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type"`
	Status           string   `yaml:"status"`
	ResponsibleParty string   `yaml:"responsible_party"`
	Tags             []string `yaml:"tags"`
}

type maintenanceFixture struct {
	EquipmentID   string `yaml:"equipment_id"`
	Type          string `yaml:"type"`
	ScheduledDate string `yaml:"scheduled_date"`
	Status        string `yaml:"status"`
	Priority      string `yaml:"priority"`
}

type inspectionFixture struct {
	EquipmentID    string `yaml:"equipment_id"`
	InspectionDate string `yaml:"inspection_date"`
	WorkingStatus  string `yaml:"working_status"`
	IssueCount     int    `yaml:"issue_count"`
}

type remarkFixture struct {
	EquipmentID string `yaml:"equipment_id"`
	Text        string `yaml:"text"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
}

type taskFixture struct {
	EquipmentID string `yaml:"equipment_id"`
	Title       string `yaml:"title"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
	DueDate     string `yaml:"due_date"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "fixtures.yaml", "fixture file to load")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, "console"); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	raw, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fx fixtures
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("parse fixtures: %w", err)
	}

	client := remote.NewClient(remote.Options{
		BaseURL: cfg.Remote.BaseURL,
		Timeout: cfg.Remote.Timeout,
	}, auth.NewStaticSource(cfg.Auth.Token))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed(ctx, client, fx); err != nil {
		return err
	}

	logger.Info("seeding finished",
		zap.Int("equipment", len(fx.Equipment)),
		zap.Int("maintenance", len(fx.Maintenance)),
		zap.Int("inspections", len(fx.Inspections)),
		zap.Int("remarks", len(fx.Remarks)),
		zap.Int("tasks", len(fx.Tasks)),
	)
	return nil
}

func seed(ctx context.Context, client *remote.Client, fx fixtures) error {
	equipment := remote.NewResource[string, domain.Equipment](client, "/equipment")
	for _, f := range fx.Equipment {
		_, err := equipment.Create(ctx, domain.Equipment{
			ID:                  f.ID,
			Name:                f.Name,
			Type:                f.Type,
			Status:              domain.EquipmentStatus(f.Status),
			ResponsibleParty:    f.ResponsibleParty,
			ServiceIntervalTags: f.Tags,
		})
		if err != nil {
			return fmt.Errorf("seed equipment %q: %w", f.Name, err)
		}
	}

	maintenance := remote.NewResource[int, domain.MaintenanceRecord](client, "/maintenance")
	for _, f := range fx.Maintenance {
		sched, err := parseDate(f.ScheduledDate)
		if err != nil {
			return fmt.Errorf("seed maintenance for %q: %w", f.EquipmentID, err)
		}
		_, err = maintenance.Create(ctx, domain.MaintenanceRecord{
			EquipmentID:     f.EquipmentID,
			MaintenanceType: f.Type,
			ScheduledDate:   sched,
			Status:          domain.MaintenanceStatus(f.Status),
			Priority:        domain.MaintenancePriority(f.Priority),
		})
		if err != nil {
			return fmt.Errorf("seed maintenance for %q: %w", f.EquipmentID, err)
		}
	}

	inspections := remote.NewResource[int, domain.InspectionRecord](client, "/inspections")
	for _, f := range fx.Inspections {
		date, err := parseDate(f.InspectionDate)
		if err != nil {
			return fmt.Errorf("seed inspection for %q: %w", f.EquipmentID, err)
		}
		_, err = inspections.Create(ctx, domain.InspectionRecord{
			EquipmentID:    f.EquipmentID,
			InspectionDate: date,
			WorkingStatus:  domain.WorkingStatus(f.WorkingStatus),
			IssueCount:     f.IssueCount,
		})
		if err != nil {
			return fmt.Errorf("seed inspection for %q: %w", f.EquipmentID, err)
		}
	}

	remarks := remote.NewResource[int, domain.Remark](client, "/remarks")
	for _, f := range fx.Remarks {
		_, err := remarks.Create(ctx, domain.Remark{
			EquipmentID: f.EquipmentID,
			Text:        f.Text,
			Status:      domain.RemarkStatus(f.Status),
			Priority:    domain.RemarkPriority(f.Priority),
		})
		if err != nil {
			return fmt.Errorf("seed remark for %q: %w", f.EquipmentID, err)
		}
	}

	tasks := remote.NewResource[int, domain.Task](client, "/tasks")
	for _, f := range fx.Tasks {
		task := domain.Task{
			EquipmentID: f.EquipmentID,
			Title:       f.Title,
			Status:      domain.TaskStatus(f.Status),
			Priority:    domain.TaskPriority(f.Priority),
		}
		if f.DueDate != "" {
			due, err := parseDate(f.DueDate)
			if err != nil {
				return fmt.Errorf("seed task %q: %w", f.Title, err)
			}
			task.DueDate = &due
		}
		if _, err := tasks.Create(ctx, task); err != nil {
			return fmt.Errorf("seed task %q: %w", f.Title, err)
		}
	}

	return nil
}

func parseDate(s string) (domain.ISOTime, error) {
	if s == "" {
		return domain.ISOTime{}, nil
	}
	return domain.ParseISOTime(s)
}
