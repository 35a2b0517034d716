package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/service"
)

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "Управление клубами",
	Long: `Команды для управления клубами:
создание, просмотр, обновление, смена статуса и удаление.`,
}

var clubsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать список клубов",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleClubsList(cmd, args)
	},
}

var clubsGetCmd = &cobra.Command{
	Use:   "get [id-or-slug]",
	Short: "Показать клуб",
	Long:  `Принимает UUID клуба или его slug.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleClubsGet(cmd, args)
	},
}

var clubsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать клуб",
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleClubsCreate(cmd, args)
	},
}

var clubsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Обновить клуб",
	Long:  `Обновляет только переданные флагами поля.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleClubsUpdate(cmd, args)
	},
}

var clubsStatusCmd = &cobra.Command{
	Use:   "status [id] [status]",
	Short: "Сменить статус клуба",
	Long:  `Допустимые статусы: active, inactive, archived.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleClubsStatus(cmd, args)
	},
}

var clubsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Удалить клуб",
	Long:  `Клуб с активными членствами удалить нельзя.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleClubsDelete(cmd, args)
	},
}

func init() {
	clubsCmd.AddCommand(clubsListCmd)
	clubsCmd.AddCommand(clubsGetCmd)
	clubsCmd.AddCommand(clubsCreateCmd)
	clubsCmd.AddCommand(clubsUpdateCmd)
	clubsCmd.AddCommand(clubsStatusCmd)
	clubsCmd.AddCommand(clubsDeleteCmd)

	clubsListCmd.Flags().StringP("status", "a", "", "фильтр по статусу")

	clubsCreateCmd.Flags().StringP("name", "n", "", "название")
	clubsCreateCmd.Flags().StringP("slug", "g", "", "slug")
	clubsCreateCmd.Flags().StringP("description", "d", "", "описание")
	clubsCreateCmd.MarkFlagRequired("name")
	clubsCreateCmd.MarkFlagRequired("slug")

	clubsUpdateCmd.Flags().StringP("name", "n", "", "название")
	clubsUpdateCmd.Flags().StringP("description", "d", "", "описание")
}

func handleClubsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	status, _ := cmd.Flags().GetString("status")
	clubs, err := app.clubs.List(ctx, status)
	if err != nil {
		return err
	}

	printClubs(clubs)
	return nil
}

func handleClubsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	// Slug не бывает валидным UUID, различаем по формату
	var club *domain.Club
	if isUUID(args[0]) {
		club, err = app.clubs.GetByID(ctx, args[0])
	} else {
		club, err = app.clubs.GetBySlug(ctx, args[0])
	}
	if err != nil {
		return err
	}

	printClubs([]*domain.Club{club})
	return nil
}

func handleClubsCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	name, _ := cmd.Flags().GetString("name")
	slug, _ := cmd.Flags().GetString("slug")
	description, _ := cmd.Flags().GetString("description")

	club, err := app.clubs.Create(ctx, service.CreateClubInput{
		Name:        name,
		Slug:        slug,
		Description: description,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Клуб создан: %s (%s)\n", club.ID, club.Slug)
	return nil
}

func handleClubsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	var input service.UpdateClubInput
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		input.Name = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		input.Description = &v
	}

	club, err := app.clubs.Update(ctx, args[0], input)
	if err != nil {
		return err
	}

	fmt.Printf("Клуб обновлен: %s\n", club.ID)
	return nil
}

func handleClubsStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	club, err := app.clubs.SetStatus(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Статус изменен: %s -> %s\n", club.ID, club.Status)
	return nil
}

func handleClubsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.clubs.Delete(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Клуб удален")
	return nil
}

func printClubs(clubs []*domain.Club) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tНАЗВАНИЕ\tSLUG\tСТАТУС")
	for _, c := range clubs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Slug, c.Status)
	}
	w.Flush()
}

func isUUID(value string) bool {
	return uuid.Validate(value) == nil
}
