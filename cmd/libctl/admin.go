package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-backend/internal/config"
	clientModel "library-backend/internal/domains/client/model"
	clientRepo "library-backend/internal/domains/client/repository"
	clientService "library-backend/internal/domains/client/service"
	livreRepo "library-backend/internal/domains/livre/repository"
	livreService "library-backend/internal/domains/livre/service"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

type createAdminOptions struct {
	email   string
	nom     string
	adresse string
}

func newCreateAdminCmd() *cobra.Command {
	opts := createAdminOptions{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return createAdmin(cmd.Context(), opts, password)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "admin email (required)")
	cmd.Flags().StringVar(&opts.nom, "nom", "", "display name (required)")
	cmd.Flags().StringVar(&opts.adresse, "adresse", "", "postal address")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("nom")

	return cmd
}

// readPassword prompts twice on a terminal, or reads one line from piped input.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		first, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}

		fmt.Fprint(prompt, "Confirm password: ")
		second, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}

		if string(first) != string(second) {
			return "", errors.New("passwords do not match")
		}
		return string(first), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func createAdmin(ctx context.Context, opts createAdminOptions, password string) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	livres := livreService.NewLivreService(livreRepo.NewPostgresLivreRepository(db.Pool, cache.Nop{}, 0))
	clients := clientService.NewClientService(clientRepo.NewPostgresClientRepository(db.Pool), livres)

	admin, err := clients.CreateClient(ctx, clientModel.CreateClientRequest{
		Nom:      opts.nom,
		Email:    opts.email,
		Password: password,
		Adresse:  opts.adresse,
		Role:     clientModel.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	logger.Info("admin account created", map[string]interface{}{
		"client_id": admin.ID.String(),
		"email":     admin.Email,
	})
	return nil
}
