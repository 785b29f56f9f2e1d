package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	config "github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
	"github.com/simpleoutings/homestay/internal/infrastructure/repositories"
)

//go:embed plans.yaml
var defaultPlans []byte

var logger = config.NewLogger(&config.LogConfig{Level: "info", Format: "text"})

var rootCmd = &cobra.Command{
	Use:           "homestayctl",
	Short:         "Homestay site builder administration CLI",
	Long:          `Maintenance commands for the homestay site builder: schema migrations, plan seeding and operator accounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func openDatabase() (*db.Database, error) {
	cfg := config.LoadDatabase()
	return db.NewDatabaseWithConfig(&cfg)
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 2*time.Minute)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		version, err := database.Migrate()
		if err != nil {
			return err
		}
		logger.WithField("version", version).Info("migrations applied")
		return nil
	},
}

var seedPlansCmd = &cobra.Command{
	Use:   "seed-plans",
	Short: "Create or update subscription plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := defaultPlans
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			b, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			raw = b
		}
		plans, err := parsePlans(raw)
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()
		svc := services.NewBillingService(repositories.NewBillingRepository(database, logger), repositories.NewTenantRepository(database, logger), logger)
		if err := svc.SeedPlans(ctx, plans); err != nil {
			return err
		}
		for _, p := range plans {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %.0f %s/month, up to %d properties\n", p.Name, p.PriceMonthly, p.Currency, p.MaxProperties)
		}
		return nil
	},
}

// parsePlans decodes a YAML list of plans. Plans default to active.
func parsePlans(raw []byte) ([]*billing.Plan, error) {
	var entries []struct {
		billing.Plan `yaml:",inline"`
		Active       *bool `yaml:"is_active"`
	}
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("invalid plans file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("plans file has no plans")
	}
	plans := make([]*billing.Plan, 0, len(entries))
	for i := range entries {
		p := entries[i].Plan
		p.IsActive = entries[i].Active == nil || *entries[i].Active
		plans = append(plans, &p)
	}
	return plans, nil
}

var createSuperadminCmd = &cobra.Command{
	Use:   "create-superadmin",
	Short: "Create a platform operator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &superadmin.CreateRequest{}
		req.Email, _ = cmd.Flags().GetString("email")
		req.Name, _ = cmd.Flags().GetString("name")
		req.Password, _ = cmd.Flags().GetString("password")

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()
		svc := services.NewSuperadminService(
			repositories.NewSuperadminRepository(database, logger),
			repositories.NewTenantRepository(database, logger),
			repositories.NewPropertyRepository(database, logger),
			repositories.NewBillingRepository(database, logger),
			logger,
		)
		sa, err := svc.CreateSuperadmin(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created superadmin %s (%s)\n", sa.Email, sa.ID)
		return nil
	},
}

var verifySuperadminsCmd = &cobra.Command{
	Use:   "verify-superadmins",
	Short: "Check the operator tables and list superadmin accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()
		out := cmd.OutOrStdout()

		tables := []string{"superadmins", "subscription_plans", "payments"}
		found, err := repositories.NewMaintenanceRepository(database).TablesExist(ctx, tables...)
		if err != nil {
			return err
		}
		missing := false
		for _, t := range tables {
			state := "ok"
			if !found[t] {
				state = "MISSING"
				missing = true
			}
			fmt.Fprintf(out, "%-20s %s\n", t, state)
		}
		if missing {
			return fmt.Errorf("schema incomplete, run homestayctl migrate")
		}

		list, err := repositories.NewSuperadminRepository(database, logger).List(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d superadmin account(s)\n", len(list))
		for _, sa := range list {
			fmt.Fprintf(out, "  - %s <%s> created %s\n", sa.Name, sa.Email, sa.CreatedAt.Format(time.DateOnly))
		}
		return nil
	},
}

var clearLocalImagesCmd = &cobra.Command{
	Use:   "clear-local-images",
	Short: "Remove image references to local /uploads paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()
		repo := repositories.NewMaintenanceRepository(database)
		rep, err := repo.FindLocalImages(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d properties with local image paths\n", len(rep.Properties))
		for _, p := range rep.Properties {
			fmt.Fprintf(out, "  - %s (%s)\n", p.Name, p.ID)
		}
		fmt.Fprintf(out, "%d gallery images with local paths\n", rep.GalleryImages)

		if dryRun || (len(rep.Properties) == 0 && rep.GalleryImages == 0) {
			return nil
		}
		if err := repo.ClearLocalImages(ctx); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"properties": len(rep.Properties),
			"gallery":    rep.GalleryImages,
		}).Info("local images cleared; owners need to re-upload them")
		return nil
	},
}

var pruneAuditCmd = &cobra.Command{
	Use:   "prune-audit-logs",
	Short: "Delete audit log entries older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		retention, _ := cmd.Flags().GetDuration("older-than")

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, cancel := commandContext(cmd)
		defer cancel()
		svc := services.NewAuditService(repositories.NewAuditRepository(database, logger), logger)
		n, err := svc.PruneAuditLogs(ctx, retention)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d audit log entries\n", n)
		return nil
	},
}

func init() {
	seedPlansCmd.Flags().String("file", "", "YAML file with plans (defaults to the built-in plans)")

	createSuperadminCmd.Flags().String("email", "", "operator email")
	createSuperadminCmd.Flags().String("name", "", "operator display name")
	createSuperadminCmd.Flags().String("password", "", "initial password")
	_ = createSuperadminCmd.MarkFlagRequired("email")
	_ = createSuperadminCmd.MarkFlagRequired("name")
	_ = createSuperadminCmd.MarkFlagRequired("password")

	clearLocalImagesCmd.Flags().Bool("dry-run", false, "only report what would be removed")

	pruneAuditCmd.Flags().Duration("older-than", 365*24*time.Hour, "retention window")

	rootCmd.AddCommand(migrateCmd, seedPlansCmd, createSuperadminCmd, verifySuperadminsCmd, clearLocalImagesCmd, pruneAuditCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
