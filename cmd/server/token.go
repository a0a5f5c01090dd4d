package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"todoManagement/internal/auth"
	"todoManagement/models"
)

const (
	userIDFlag = "user-id"
	emailFlag  = "email"
	roleFlag   = "role"
)

var tokenFlags = map[string]cobraflags.Flag{
	userIDFlag: &cobraflags.StringFlag{
		Name:  userIDFlag,
		Value: "",
		Usage: "User id carried by the token (required)",
	},
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Email carried by the token (required)",
	},
	roleFlag: &cobraflags.StringFlag{
		Name:  roleFlag,
		Value: string(models.RoleUser),
		Usage: "Role carried by the token (USER or ADMIN)",
	},
}

func newTokenCommand() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Identity token utilities",
	}
	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a token with the configured secret, for local testing",
		RunE:  tokenIssueCommand,
	}
	cobraflags.RegisterMap(issueCmd, tokenFlags)
	tokenCmd.AddCommand(issueCmd)
	return tokenCmd
}

func tokenIssueCommand(cmd *cobra.Command, _ []string) error {
	id, err := strconv.ParseInt(tokenFlags[userIDFlag].GetString(), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("--%s must be a positive integer", userIDFlag)
	}
	email := tokenFlags[emailFlag].GetString()
	if email == "" {
		return fmt.Errorf("--%s is required", emailFlag)
	}
	role, err := models.ParseUserRole(tokenFlags[roleFlag].GetString())
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	codec, err := auth.NewCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	tok, err := codec.Issue(id, email, role)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), auth.BearerPrefix+tok)
	return nil
}
