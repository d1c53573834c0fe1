// Command adduser creates an account directly in the database. Intended for
// bootstrapping the first user on a fresh deployment.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/cryptox"
	"github.com/gauravjot/my-it-tools/internal/server/config"
	"github.com/gauravjot/my-it-tools/internal/server/models"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/users"
)

func readLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt + "\n> ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func run() error {
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)
	email, err := readLine(reader, "Enter email")
	if err != nil {
		return err
	}
	name, err := readLine(reader, "Enter name")
	if err != nil {
		return err
	}

	fmt.Print("Enter password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if email == "" || len(password) == 0 {
		return fmt.Errorf("email and password are required")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	repo := users.NewPostgresRepository(db)
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: cryptox.HashPassword(string(password)),
	}
	if _, err := repo.Create(context.Background(), user); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	fmt.Println("Success!")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
