// Command dashboardctl runs operator tasks against the dashboard store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BangJepp56/ini-dashboard-admin/internal/bootstrap"
	"github.com/BangJepp56/ini-dashboard-admin/internal/config"
	"github.com/BangJepp56/ini-dashboard-admin/internal/model"
	"github.com/BangJepp56/ini-dashboard-admin/internal/repository/postgres"
	"github.com/BangJepp56/ini-dashboard-admin/internal/service/patient"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/logger"
	"github.com/BangJepp56/ini-dashboard-admin/pkg/messaging"
)

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zl.Sync() //nolint:errcheck
	log := zl.Sugar()

	rootCmd := &cobra.Command{
		Use:           "dashboardctl",
		Short:         "Operator tools for the RSIA Prima Qonita admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd(log))
	rootCmd.AddCommand(adminCmd(log))
	rootCmd.AddCommand(transitionsCmd(log))
	rootCmd.AddCommand(exportCmd(log))
	rootCmd.AddCommand(notificationsCmd(log))

	if err := rootCmd.Execute(); err != nil {
		log.Errorw("command failed", "error", err)
		os.Exit(1)
	}
}

// withRuntime loads config and opens the store for the duration of fn.
// Service logs are discarded; the CLI reports progress through zap.
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *bootstrap.Runtime) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, cfg, logger.Nop())
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(ctx, rt)
}

func migrateCmd(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime) error {
				if rt.DB == nil {
					return fmt.Errorf("migrate requires storage.driver postgres")
				}
				if err := postgres.Migrate(ctx, rt.DB); err != nil {
					return err
				}
				log.Infow("schema applied")
				return nil
			})
		},
	})
	return cmd
}

func adminCmd(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard operators",
	}

	var email, name, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime) error {
				admin, err := rt.Auth().CreateAdmin(ctx, email, name, password)
				if err != nil {
					return err
				}
				log.Infow("admin created", "id", admin.ID.String(), "email", admin.Email)
				return nil
			})
		},
	}
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&name, "name", "", "display name")
	create.Flags().StringVar(&password, "password", "", "initial password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

func transitionsCmd(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Schedule holiday transitions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Evaluate every schedule once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime) error {
				notifications, err := rt.Notifications(nil)
				if err != nil {
					return err
				}
				applied, err := rt.Schedules(notifications).RunTransitions(ctx)
				notifications.Wait()
				if err != nil {
					return err
				}
				log.Infow("transition pass finished", "applied", applied)
				return nil
			})
		},
	})
	return cmd
}

func exportCmd(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write spreadsheet exports",
	}

	var (
		out    string
		filter model.PatientFilter
		date   string
	)
	patients := &cobra.Command{
		Use:   "patients",
		Short: "Export patients to an xlsx file",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter.DateFilter = model.DateRangeFilter(date)
			return withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime) error {
				list, err := patient.NewService(rt.Store.Patients, rt.Now).Patients(ctx, filter)
				if err != nil {
					return err
				}
				exporter, err := rt.Exports(ctx)
				if err != nil {
					return err
				}
				file, err := exporter.Patients(ctx, list, filter)
				if err != nil {
					return err
				}
				if out == "" {
					out = file.Name
				}
				if err := os.WriteFile(out, file.Data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", out, err)
				}
				log.Infow("patients exported", "file", out, "rows", len(list), "archive_key", file.ArchiveKey)
				return nil
			})
		},
	}
	patients.Flags().StringVar(&out, "out", "", "output file, defaults to the generated name")
	patients.Flags().StringVar(&date, "date-filter", "", "today, yesterday, tomorrow, this_week, this_month, custom_date, custom or custom_month")
	patients.Flags().StringVar(&filter.DateFrom, "from", "", "range start (yyyy-mm-dd)")
	patients.Flags().StringVar(&filter.DateTo, "to", "", "range end (yyyy-mm-dd)")
	patients.Flags().StringVar(&filter.Month, "month", "", "month for custom_month (yyyy-mm)")
	patients.Flags().StringVar(&filter.Status, "status", "", "patient status")
	patients.Flags().StringVar(&filter.Layanan, "layanan", "", "service name")

	cmd.AddCommand(patients)
	return cmd
}

func notificationsCmd(log *zap.SugaredLogger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Inspect notification delivery",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "tail",
		Short: "Print notifications published on the broker until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *bootstrap.Runtime) error {
				if !rt.HasBroker() {
					return fmt.Errorf("tail requires messaging.driver redis or kafka")
				}
				channel := rt.Config.Messaging.Channel
				log.Infow("listening", "driver", rt.Config.Messaging.Driver, "channel", channel)
				return messaging.Consume(ctx, rt.Broker, channel, func(msg messaging.Message) error {
					log.Infow("notification", "type", msg.Type, "payload", msg.Payload)
					return nil
				}, func(err error) {
					log.Warnw("undecodable message", "error", err)
				})
			})
		},
	})
	return cmd
}
