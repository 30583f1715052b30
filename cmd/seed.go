package cmd

import (
	"fmt"

	"laundry-service/internal/data/repository"
	"laundry-service/internal/dto/request"
	"laundry-service/internal/usecase"
	"laundry-service/pkg/auth"

	"github.com/spf13/cobra"
)

var seedFlags struct {
	name          string
	email         string
	phone         string
	password      string
	resetPassword bool
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account if it does not exist",
	Long: "Create the admin account. Values not given as flags come from ADMIN_NAME, " +
		"ADMIN_EMAIL, ADMIN_PHONE and ADMIN_PASSWORD. Running it again changes nothing " +
		"unless --reset-password is set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := openDatabase(cmd.Context(), config, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		repos := repository.NewRepository(db, logger)
		authService := usecase.NewAuthService(repos, auth.NewJWTService(config.JWT), logger)

		req := &request.SeedAdminRequest{
			Name:          firstNonEmpty(seedFlags.name, config.Admin.Name),
			Email:         firstNonEmpty(seedFlags.email, config.Admin.Email),
			Phone:         firstNonEmpty(seedFlags.phone, config.Admin.Phone),
			Password:      firstNonEmpty(seedFlags.password, config.Admin.Password),
			ResetPassword: seedFlags.resetPassword,
		}

		user, changed, err := authService.SeedAdmin(cmd.Context(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case !changed:
			fmt.Fprintf(out, "Admin %s already exists, nothing changed.\n", user.Email)
		case req.ResetPassword:
			fmt.Fprintf(out, "Password reset for admin %s.\n", user.Email)
		default:
			fmt.Fprintf(out, "Admin %s created.\n", user.Email)
		}
		return nil
	},
}

func init() {
	f := seedAdminCmd.Flags()
	f.StringVar(&seedFlags.name, "name", "", "admin display name")
	f.StringVar(&seedFlags.email, "email", "", "admin email")
	f.StringVar(&seedFlags.phone, "phone", "", "admin phone")
	f.StringVar(&seedFlags.password, "password", "", "admin password")
	f.BoolVar(&seedFlags.resetPassword, "reset-password", false, "re-hash the password of an existing admin")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
