package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"todoManagement/internal/db"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back schema migrations",
	}
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  migrateUpCommand,
	}
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recently applied migration",
		RunE:  migrateDownCommand,
	}
	migrateCmd.AddCommand(upCmd, downCmd)
	return migrateCmd
}

func migrateUpCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Open applies pending migrations.
	d, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	v, err := db.CurrentVersion(cmd.Context(), d)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", v)
	return nil
}

func migrateDownCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	d, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	if err := db.RollbackLast(d); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	v, err := db.CurrentVersion(cmd.Context(), d)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rolled back; schema at version %d\n", v)
	return nil
}
