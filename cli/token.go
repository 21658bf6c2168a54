// token.go implements the staff credential helpers.
package cli

import (
	"fmt"
	"time"

	"greengarden/config"
	"greengarden/utils"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var ttlFlag time.Duration

var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Print a staff bearer token for the admin endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl := ttlFlag
		if ttl <= 0 {
			ttl = config.AppConfig.AdminTokenTTL
		}
		token, err := utils.GenerateToken(utils.AdminSubject, utils.RoleAdmin, ttl)
		if err != nil {
			return fmt.Errorf("signing token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash suitable for ADMIN_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(hash))
		return nil
	},
}

func init() {
	adminTokenCmd.Flags().DurationVar(&ttlFlag, "ttl", 0, "Token lifetime (defaults to ADMIN_TOKEN_TTL)")
}
