package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukydev/showroom/internal/auth"
	"github.com/ukydev/showroom/internal/catalog"
	"github.com/ukydev/showroom/internal/config"
	"github.com/ukydev/showroom/internal/db"
	"github.com/ukydev/showroom/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is the seed file layout. Singleton sections that are absent are
// left untouched in the store.
type Catalog struct {
	Banner   *models.Banner   `yaml:"banner"`
	About    *models.About    `yaml:"about"`
	Contact  *models.Contact  `yaml:"contact"`
	Footer   *models.Footer   `yaml:"footer"`
	Vehicles []models.Vehicle `yaml:"vehicles"`
}

type seedReport struct {
	Inserted int
	Updated  int
	Sections []string
}

var catalogFile string

var rootCmd = &cobra.Command{
	Use:          "seed",
	Short:        "Showroom maintenance tasks",
	SilenceUsage: true,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load vehicles and page content from a YAML file",
	Long: `Load vehicles and page content from a YAML file into MongoDB.

Vehicles are matched by name: an existing vehicle is updated in place,
anything else is inserted. The banner, about, contact and footer sections
merge into the stored documents when present: fields missing from the file
keep their stored values.`,
	RunE: runCatalog,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash usable as ADMIN_PASSWORD",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogFile, "file", "f", "catalog.yaml", "YAML catalog to load")
	rootCmd.AddCommand(catalogCmd, hashPasswordCmd)
}

func loadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	for i, v := range c.Vehicles {
		if err := catalog.Validate(v); err != nil {
			return Catalog{}, fmt.Errorf("vehicle %d (%q): %w", i+1, v.Name, err)
		}
	}
	return c, nil
}

func seedCatalog(ctx context.Context, vehicles db.VehicleCollection, content db.ContentCollection, c Catalog) (seedReport, error) {
	var report seedReport

	existing, err := vehicles.FindVehicles(ctx, db.VehicleFilter{})
	if err != nil {
		return report, fmt.Errorf("list vehicles: %w", err)
	}
	byName := make(map[string]string, len(existing))
	for _, v := range existing {
		byName[strings.ToLower(v.Name)] = v.IDHex()
	}

	for _, v := range c.Vehicles {
		if id, ok := byName[strings.ToLower(v.Name)]; ok && id != "" {
			if err := vehicles.MergeVehicle(ctx, id, v); err != nil {
				return report, fmt.Errorf("update %q: %w", v.Name, err)
			}
			report.Updated++
			continue
		}
		id, err := vehicles.InsertVehicle(ctx, v)
		if err != nil {
			return report, fmt.Errorf("insert %q: %w", v.Name, err)
		}
		byName[strings.ToLower(v.Name)] = id
		report.Inserted++
	}

	if c.Banner != nil {
		if err := content.SaveBanner(ctx, *c.Banner); err != nil {
			return report, fmt.Errorf("save banner: %w", err)
		}
		report.Sections = append(report.Sections, "banner")
	}
	if c.About != nil {
		if err := content.SaveAbout(ctx, *c.About); err != nil {
			return report, fmt.Errorf("save about: %w", err)
		}
		report.Sections = append(report.Sections, "about")
	}
	if c.Contact != nil {
		if err := content.SaveContact(ctx, *c.Contact); err != nil {
			return report, fmt.Errorf("save contact: %w", err)
		}
		report.Sections = append(report.Sections, "contact")
	}
	if c.Footer != nil {
		if err := content.SaveFooter(ctx, *c.Footer); err != nil {
			return report, fmt.Errorf("save footer: %w", err)
		}
		report.Sections = append(report.Sections, "footer")
	}
	return report, nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ConfigureLogging()

	c, err := loadCatalog(catalogFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	store := db.NewStore(client, cfg.MongoDB)
	report, err := seedCatalog(ctx, store.Vehicles, store.Content, c)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file":     catalogFile,
		"inserted": report.Inserted,
		"updated":  report.Updated,
		"sections": report.Sections,
	}).Info("Catalog loaded")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
