// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"personality-workers/internal/common/validation"
	"personality-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	syncPath := syncCmd.String("path", defaultRegistryPath, "Path to registry file")

	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	idUpdate := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "sync":
		_ = syncCmd.Parse(os.Args[2:])
		n, err := syncRegistry(*syncPath, time.Now())
		if err != nil {
			fmt.Printf("Error syncing registry: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Synced %d activities into %s\n", n, *syncPath)

	case "update":
		_ = updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateActivity(*updatePath, *idUpdate, *field, *value, time.Now()); err != nil {
			fmt.Printf("Error updating activity: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated activity %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		n, err := validateRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry validation passed. Found %d activities.\n", n)

	default:
		help()
	}
}

// syncRegistry writes every personality activity with its embedded input
// schema. Status and version of existing entries are kept.
func syncRegistry(path string, now time.Time) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return 0, fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	activities := registry.PersonalityActivities()
	for _, a := range activities {
		raw, err := validation.Raw(a.TaskType)
		if err != nil {
			return 0, err
		}
		if err := json.Unmarshal(raw, &a.InputSchema); err != nil {
			return 0, fmt.Errorf("schema %s: %w", a.TaskType, err)
		}

		a.Category = registry.CategoryPersonality
		a.Version = "1.0.0"
		a.ImplementationStatus = registry.StatusCompleted
		if existing := reg.Find(a.ID); existing != nil {
			if existing.Version != "" {
				a.Version = existing.Version
			}
			if existing.ImplementationStatus != "" {
				a.ImplementationStatus = existing.ImplementationStatus
			}
		}
		reg.Upsert(a, now)
	}

	if err := registry.SaveRegistry(reg, path); err != nil {
		return 0, err
	}
	return len(activities), nil
}

func updateActivity(path, id, field, value string, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	a := reg.Find(id)
	if a == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}
	updated := *a

	switch field {
	case "status":
		updated.ImplementationStatus = value
	case "version":
		updated.Version = value
	case "displayName":
		updated.DisplayName = value
	case "description":
		updated.Description = value
	case "timeout":
		updated.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		updated.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.Upsert(updated, now)
	if err := reg.Validate(nil); err != nil {
		return err
	}
	return registry.SaveRegistry(reg, path)
}

func validateRegistry(path string) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load registry: %w", err)
	}
	v, err := validation.New()
	if err != nil {
		return 0, err
	}
	if err := reg.Validate(v.Names()); err != nil {
		return 0, err
	}
	return len(reg.Activities), nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  sync     Write the personality activities and their input schemas
  update   Update an existing activity's field
  validate Validate the registry file against the known task types
  help     Show this help message

Examples:
  registry-updater sync -path configs/activity-registry.json
  registry-updater update -id character-chat -field status -value verified
  registry-updater validate -path configs/activity-registry.json`)
}
