package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"turismocombita/internal/auth"
	"turismocombita/internal/config"
	"turismocombita/internal/content"
	"turismocombita/internal/validation"
)

var usuariosCmd = &cobra.Command{
	Use:   "usuarios",
	Short: "Manage admin panel accounts",
}

var (
	newUserEmail  string
	newUserNombre string
	newUserRol    string
)

var usuariosCrearCmd = &cobra.Command{
	Use:   "crear",
	Short: "Create an account, prompting for its password",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rol := auth.Role(strings.TrimSpace(newUserRol))
		if !rol.Valid() {
			return fmt.Errorf("rol must be admin or editor")
		}
		if !validation.IsValidEmail(strings.TrimSpace(newUserEmail)) {
			return fmt.Errorf("invalid email %q", newUserEmail)
		}

		password, err := promptPassword()
		if err != nil {
			return err
		}

		users, done, err := openUsers(cmd)
		if err != nil {
			return err
		}
		defer done()

		u, err := users.Create(cmd.Context(), newUserNombre, newUserEmail, password, rol)
		if errors.Is(err, auth.ErrEmailTaken) {
			return fmt.Errorf("email %s already exists", newUserEmail)
		}
		if err != nil {
			return err
		}
		fmt.Printf("User %s (%s) created with id %s\n", u.Email, u.Rol, u.ID)
		return nil
	},
}

var usuariosListarCmd = &cobra.Command{
	Use:   "listar",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		users, done, err := openUsers(cmd)
		if err != nil {
			return err
		}
		defer done()

		list, err := users.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No users found.")
			return nil
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tEMAIL\tNOMBRE\tROL\tCREADO")
		for _, u := range list {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Nombre, u.Rol, content.ParseTimestamp(u.Creado).Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	},
}

func init() {
	usuariosCrearCmd.Flags().StringVar(&newUserEmail, "email", "", "email used to log in")
	usuariosCrearCmd.Flags().StringVar(&newUserNombre, "nombre", "", "display name")
	usuariosCrearCmd.Flags().StringVar(&newUserRol, "rol", string(auth.RoleEditor), "admin or editor")
	_ = usuariosCrearCmd.MarkFlagRequired("email")
	_ = usuariosCrearCmd.MarkFlagRequired("nombre")

	usuariosCmd.AddCommand(usuariosCrearCmd, usuariosListarCmd)
}

func openUsers(cmd *cobra.Command) (*auth.Users, func(), error) {
	backend, _, closeBackend, err := openBackend(cmd.Context(), config.Load())
	if err != nil {
		return nil, nil, err
	}
	return auth.NewUsers(backend, bcrypt.DefaultCost), closeBackend, nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password confirmation: %w", err)
	}

	if string(password) != string(confirm) {
		return "", errors.New("passwords do not match")
	}
	if len(password) < 6 {
		return "", errors.New("password must be at least 6 characters")
	}
	if !validation.IsValidPassword(string(password)) {
		return "", fmt.Errorf("password must be at most %d bytes", validation.MaxPasswordBytes)
	}
	return string(password), nil
}
