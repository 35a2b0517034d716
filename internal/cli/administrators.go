package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/service"
)

var adminsCmd = &cobra.Command{
	Use:   "admins",
	Short: "Управление администраторами",
	Long: `Команды для управления администраторами:
создание, просмотр, обновление, смена статуса и удаление.`,
}

var adminsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать список администраторов",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAdminsList(cmd, args)
	},
}

var adminsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Показать администратора",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAdminsGet(cmd, args)
	},
}

var adminsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать администратора",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAdminsCreate(cmd, args)
	},
}

var adminsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Обновить администратора",
	Long:  `Обновляет только переданные флагами поля.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAdminsUpdate(cmd, args)
	},
}

var adminsStatusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Сменить статус администратора",
	Long:  `Допустимые статусы: active, suspended, terminated.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAdminsStatus(cmd, args)
	},
}

var adminsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Удалить администратора",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleAdminsDelete(cmd, args)
	},
}

func init() {
	adminsCmd.AddCommand(adminsListCmd)
	adminsCmd.AddCommand(adminsGetCmd)
	adminsCmd.AddCommand(adminsCreateCmd)
	adminsCmd.AddCommand(adminsUpdateCmd)
	adminsCmd.AddCommand(adminsStatusCmd)
	adminsCmd.AddCommand(adminsDeleteCmd)

	// List flags
	adminsListCmd.Flags().StringP("status", "a", "", "фильтр по статусу")
	adminsListCmd.Flags().StringP("contract-type", "t", "", "фильтр по типу контракта")

	// Create flags
	adminsCreateCmd.Flags().StringP("email", "e", "", "email")
	adminsCreateCmd.Flags().StringP("first-name", "f", "", "имя")
	adminsCreateCmd.Flags().StringP("last-name", "l", "", "фамилия")
	adminsCreateCmd.Flags().StringP("phone", "n", "", "телефон")
	adminsCreateCmd.Flags().StringP("password", "p", "", "пароль")
	adminsCreateCmd.Flags().Float64P("salary", "s", 0, "оклад")
	adminsCreateCmd.Flags().StringP("contract-type", "t", "full_time", "тип контракта (full_time, part_time, contractor)")
	adminsCreateCmd.Flags().Bool("super", false, "суперадминистратор")
	adminsCreateCmd.MarkFlagRequired("email")
	adminsCreateCmd.MarkFlagRequired("first-name")
	adminsCreateCmd.MarkFlagRequired("last-name")
	adminsCreateCmd.MarkFlagRequired("password")

	// Update flags
	adminsUpdateCmd.Flags().StringP("first-name", "f", "", "имя")
	adminsUpdateCmd.Flags().StringP("last-name", "l", "", "фамилия")
	adminsUpdateCmd.Flags().StringP("phone", "n", "", "телефон")
	adminsUpdateCmd.Flags().Float64P("salary", "s", 0, "оклад")
	adminsUpdateCmd.Flags().StringP("contract-type", "t", "", "тип контракта")
}

func handleAdminsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	status, _ := cmd.Flags().GetString("status")
	contractType, _ := cmd.Flags().GetString("contract-type")

	administrators, err := app.administrators.List(ctx, service.AdministratorFilters{
		Status:       status,
		ContractType: contractType,
	})
	if err != nil {
		return err
	}

	printAdministrators(administrators)
	return nil
}

func handleAdminsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	administrator, err := app.administrators.GetByID(ctx, args[0])
	if err != nil {
		return err
	}

	printAdministrators([]*domain.Administrator{administrator})
	return nil
}

func handleAdminsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	email, _ := cmd.Flags().GetString("email")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	phone, _ := cmd.Flags().GetString("phone")
	pass, _ := cmd.Flags().GetString("password")
	salary, _ := cmd.Flags().GetFloat64("salary")
	contractType, _ := cmd.Flags().GetString("contract-type")
	isSuper, _ := cmd.Flags().GetBool("super")

	administrator, err := app.administrators.Create(ctx, service.CreateAdministratorInput{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        phone,
		Password:     pass,
		Salary:       salary,
		ContractType: contractType,
		IsSuper:      isSuper,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Администратор создан: %s\n", administrator.ID)
	return nil
}

func handleAdminsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	var input service.UpdateAdministratorInput
	if cmd.Flags().Changed("first-name") {
		v, _ := cmd.Flags().GetString("first-name")
		input.FirstName = &v
	}
	if cmd.Flags().Changed("last-name") {
		v, _ := cmd.Flags().GetString("last-name")
		input.LastName = &v
	}
	if cmd.Flags().Changed("phone") {
		v, _ := cmd.Flags().GetString("phone")
		input.Phone = &v
	}
	if cmd.Flags().Changed("salary") {
		v, _ := cmd.Flags().GetFloat64("salary")
		input.Salary = &v
	}
	if cmd.Flags().Changed("contract-type") {
		v, _ := cmd.Flags().GetString("contract-type")
		input.ContractType = &v
	}

	administrator, err := app.administrators.Update(ctx, args[0], input)
	if err != nil {
		return err
	}

	fmt.Printf("Администратор обновлен: %s\n", administrator.ID)
	return nil
}

func handleAdminsStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	administrator, err := app.administrators.SetStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Статус изменен: %s -> %s\n", administrator.ID, administrator.Status)
	return nil
}

func handleAdminsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.administrators.Delete(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Администратор удален")
	return nil
}

func printAdministrators(administrators []*domain.Administrator) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tИМЯ\tСТАТУС\tКОНТРАКТ\tОКЛАД")
	for _, a := range administrators {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.2f\n",
			a.ID, a.Email, a.FullName(), a.Status, a.ContractType, a.Salary)
	}
	w.Flush()
}
