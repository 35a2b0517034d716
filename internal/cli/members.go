package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/service"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "Управление членствами",
	Long: `Команды для управления членствами администраторов в клубах:
назначение, просмотр, включение, выключение и снятие.`,
}

var membersListCmd = &cobra.Command{
	Use:   "list [club-id]",
	Short: "Показать членства клуба",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleMembersList(cmd, args)
	},
}

var membersAssignCmd = &cobra.Command{
	Use:   "assign [club-id] [administrator-id]",
	Short: "Назначить администратора в клуб",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleMembersAssign(cmd, args)
	},
}

var membersEnableCmd = &cobra.Command{
	Use:   "enable [membership-id]",
	Short: "Включить членство",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleMembersSetActive(cmd, args, true)
	},
}

var membersDisableCmd = &cobra.Command{
	Use:   "disable [membership-id]",
	Short: "Выключить членство",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleMembersSetActive(cmd, args, false)
	},
}

var membersRevokeCmd = &cobra.Command{
	Use:   "revoke [membership-id]",
	Short: "Снять администратора с клуба",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return handleMembersRevoke(cmd, args)
	},
}

func init() {
	membersCmd.AddCommand(membersListCmd)
	membersCmd.AddCommand(membersAssignCmd)
	membersCmd.AddCommand(membersEnableCmd)
	membersCmd.AddCommand(membersDisableCmd)
	membersCmd.AddCommand(membersRevokeCmd)

	membersAssignCmd.Flags().StringP("role", "r", "manager", "роль в клубе")
}

func handleMembersList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	memberships, err := app.memberships.ListByClub(ctx, args[0])
	if err != nil {
		return err
	}

	printMemberships(memberships)
	return nil
}

func handleMembersAssign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	role, _ := cmd.Flags().GetString("role")
	membership, err := app.memberships.Assign(ctx, service.AssignMembershipInput{
		ClubID:          args[0],
		AdministratorID: args[1],
		Role:            role,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Членство создано: %s\n", membership.ID)
	return nil
}

func handleMembersSetActive(cmd *cobra.Command, args []string, active bool) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	membership, err := app.memberships.SetActive(ctx, args[0], active)
	if err != nil {
		return err
	}

	if membership.IsActive {
		fmt.Printf("Членство включено: %s\n", membership.ID)
	} else {
		fmt.Printf("Членство выключено: %s\n", membership.ID)
	}
	return nil
}

func handleMembersRevoke(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.memberships.Revoke(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Членство снято")
	return nil
}

func printMemberships(memberships []*domain.Membership) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tАДМИНИСТРАТОР\tРОЛЬ\tАКТИВНО")
	for _, m := range memberships {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", m.ID, m.AdministratorID, m.Role, m.IsActive)
	}
	w.Flush()
}
