package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/infrastructure/config"
	"github.com/99minutos/auth-service/internal/infrastructure/crypto"
	"github.com/99minutos/auth-service/internal/infrastructure/validation"
)

type seedUserOptions struct {
	email    string
	password string
	role     string
}

// NewSeedUserCmd creates the seed-user subcommand.
func NewSeedUserCmd() *cobra.Command {
	opts := &seedUserOptions{}
	cmd := &cobra.Command{
		Use:   "seed-user",
		Short: "Store a user with a bcrypt password hash in the configured directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if err := cfg.ValidateDirectory(); err != nil {
				return err
			}
			in, err := connectInfra(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			defer in.close(context.Background())

			store, err := in.userStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			user, err := seedUser(cmd.Context(), store, crypto.NewMatcher(cfg.Directory.BcryptCost), opts)
			if err != nil {
				return err
			}
			cmd.Printf("created user %s (%s)\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "user email")
	cmd.Flags().StringVar(&opts.password, "password", "", "plaintext password")
	cmd.Flags().StringVar(&opts.role, "role", domain.RoleMember, "user role (admin or member)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (o *seedUserOptions) validate() error {
	if !validation.NewEmailChecker().IsValid(o.email) {
		return &domain.InvalidFieldError{Field: "email"}
	}
	if o.password == "" {
		return &domain.MissingFieldError{Field: "password"}
	}
	if o.role != domain.RoleAdmin && o.role != domain.RoleMember {
		return fmt.Errorf("role must be %s or %s", domain.RoleAdmin, domain.RoleMember)
	}
	return nil
}

type passwordHasher interface {
	Hash(plaintext string) (string, error)
}

func seedUser(ctx context.Context, store ports.UserStore, hasher passwordHasher, opts *seedUserOptions) (*domain.User, error) {
	hash, err := hasher.Hash(opts.password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := store.Create(ctx, &domain.User{
		Email:        opts.email,
		PasswordHash: hash,
		Role:         opts.role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil, fmt.Errorf("%s: %w", opts.email, err)
	}
	return user, err
}
