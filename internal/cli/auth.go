package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ClubAdminPlatform/internal/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Управление аутентификацией",
	Long: `Команды для управления сессией администратора:
вход, выход и проверка текущего состояния.`,
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Войти в систему",
	Long: `Выполняет вход администратора по email и паролю.
Токены сессии сохраняются для последующих команд.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleLogin(cmd, args)
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Выйти из системы",
	Long:  `Завершает сессию и удаляет сохраненные токены.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleLogout(cmd, args)
	},
}

// statusCmd represents the auth status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Проверить статус аутентификации",
	Long:  `Показывает состояние сессии и профиль текущего администратора.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAuthStatus(cmd, args)
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)

	loginCmd.Flags().StringP("password", "p", "", "пароль")
	loginCmd.MarkFlagRequired("password")
}

func handleLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	password, _ := cmd.Flags().GetString("password")
	if err := app.store.Login(ctx, args[0], password); err != nil {
		return err
	}

	current := app.store.Current(ctx)
	fmt.Printf("Вход выполнен: %s (%s)\n",
		current.Profile.Administrator.FullName(),
		current.Profile.Administrator.Email)
	return nil
}

func handleLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.store.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("Выход выполнен")
	return nil
}

func handleAuthStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.store.State() != session.StateAuthenticated {
		fmt.Println("Не аутентифицирован")
		return nil
	}

	current := app.store.Current(ctx)
	administrator := current.Profile.Administrator
	fmt.Printf("Администратор: %s\n", administrator.FullName())
	fmt.Printf("Email:         %s\n", administrator.Email)
	fmt.Printf("Статус:        %s\n", administrator.Status)
	fmt.Printf("Сессия до:     %s\n", current.ExpiresAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Членства:      %d\n", len(current.Profile.Memberships))
	return nil
}
