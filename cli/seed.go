// seed.go implements "greengarden seed" for loading the menu and table availability.
package cli

import (
	"fmt"
	"time"

	"greengarden/config"
	"greengarden/database"
	"greengarden/database/repository"
	"greengarden/database/seed"
	"greengarden/models"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the menu and table availability",
	Long: `Load the menu and table availability into MongoDB.

The menu comes from SEED_MENU_FILE (JSON or YAML). Availability comes from
SEED_TABLES_FILE when set, otherwise a window of SEED_DAYS days starting today
is generated with SEED_TABLES_PER_SLOT tables at each of SEED_TIMES.
Collections that already hold data are left alone unless --force is given.`,
	RunE: runSeed,
}

var (
	forceFlag      bool
	menuFileFlag   string
	tablesFileFlag string
)

func init() {
	seedCmd.Flags().BoolVar(&forceFlag, "force", false, "Replace existing menu and availability")
	seedCmd.Flags().StringVar(&menuFileFlag, "menu", "", "Menu file (overrides SEED_MENU_FILE)")
	seedCmd.Flags().StringVar(&tablesFileFlag, "tables", "", "Availability file (overrides SEED_TABLES_FILE)")
}

// seedOptions reads the seed inputs named by cfg.
func seedOptions(cfg *config.Config, now time.Time) (seed.Options, error) {
	menuFile := cfg.SeedMenuFile
	if menuFileFlag != "" {
		menuFile = menuFileFlag
	}
	tablesFile := cfg.SeedTablesFile
	if tablesFileFlag != "" {
		tablesFile = tablesFileFlag
	}

	items, err := seed.LoadMenuFile(menuFile)
	if err != nil {
		return seed.Options{}, fmt.Errorf("reading menu: %w", err)
	}

	var slots []models.AvailabilitySlot
	if tablesFile != "" {
		slots, err = seed.LoadAvailabilityFile(tablesFile)
	} else {
		slots, err = seed.GenerateWindow(now, cfg.SeedDays, cfg.SeedTimes, cfg.SeedTablesPerSlot)
	}
	if err != nil {
		return seed.Options{}, fmt.Errorf("reading availability: %w", err)
	}
	return seed.Options{Force: forceFlag, MenuItems: items, Slots: slots}, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	opts, err := seedOptions(&config.AppConfig, time.Now())
	if err != nil {
		return err
	}

	database.InitDB()
	defer database.Close(cmd.Context())

	repos := repository.NewMongoRepositories()
	seeder := &seed.Seeder{Menu: repos.Menu, Slots: repos.Slots}
	res, err := seeder.Run(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	if res.MenuSkipped {
		fmt.Println("Menu already present, skipped (use --force to replace).")
	} else {
		fmt.Printf("Inserted %d menu item(s).\n", res.MenuItems)
	}
	if res.SlotsSkipped {
		fmt.Println("Availability already present, skipped (use --force to replace).")
	} else {
		fmt.Printf("Inserted %d availability slot(s).\n", res.Slots)
	}
	return nil
}
