package cmd

import (
	"fmt"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/session"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in and store the session",
	Run: func(cmd *cobra.Command, _ []string) {
		rt := setup(cmd.Context())

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if email == "" {
			if email, err = (terminalPrompter{}).Ask("Email", nonEmpty); err != nil {
				rt.exit(err)
			}
		}
		if password == "" {
			if password, err = askSecret("Password"); err != nil {
				rt.exit(err)
			}
		}

		id, err := rt.session.SignIn(rt.ctx, email, password)
		if err != nil {
			rt.logger.Error("sign in failed", zap.Error(err))
			rt.exit(err)
		}

		fmt.Printf("Signed in as %s (%s)\n", id.Name, id.Role)
		rt.exit(nil)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and store the session",
	Run: func(cmd *cobra.Command, _ []string) {
		rt := setup(cmd.Context())
		prompt := terminalPrompter{}

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		roleFlag, _ := cmd.Flags().GetString("role")

		var err error
		if name == "" {
			if name, err = prompt.Ask("Name", nonEmpty); err != nil {
				rt.exit(err)
			}
		}
		if email == "" {
			if email, err = prompt.Ask("Email", nonEmpty); err != nil {
				rt.exit(err)
			}
		}
		if password == "" {
			if password, err = askSecret("Password"); err != nil {
				rt.exit(err)
			}
		}

		var role session.Role
		if roleFlag != "" {
			if role, err = session.ParseRole(roleFlag); err != nil {
				rt.logger.Error("invalid role", zap.Error(err), zap.String("hint", "use jobseeker or recruiter"))
				rt.exit(err)
			}
		} else {
			role, err = selectRole()
			if err != nil {
				rt.exit(err)
			}
		}

		id, err := rt.session.SignUp(rt.ctx, name, email, password, role)
		if err != nil {
			rt.logger.Error("sign up failed", zap.Error(err))
			rt.exit(err)
		}

		fmt.Printf("Welcome, %s! Signed up as %s\n", id.Name, id.Role)
		rt.exit(nil)
	},
}

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Remove the stored session",
	Run: func(cmd *cobra.Command, _ []string) {
		rt := setup(cmd.Context())

		if err := rt.session.SignOut(rt.ctx); err != nil {
			rt.logger.Error("sign out failed", zap.Error(err))
			rt.exit(err)
		}

		fmt.Println("Signed out")
		rt.exit(nil)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the signed-in identity",
	Run: func(cmd *cobra.Command, _ []string) {
		rt := setup(cmd.Context())

		id, ok := rt.session.Current()
		if !ok {
			fmt.Println("Not signed in")
			rt.exit(nil)
			return
		}

		fmt.Printf("%s <%s>\nrole: %s\nid: %s\n", id.Name, id.Email, id.Role, id.ID)
		rt.exit(nil)
	},
}

func selectRole() (session.Role, error) {
	roles := []session.Role{session.RoleJobSeeker, session.RoleRecruiter}

	prompt := promptui.Select{
		Label: "Choose your role",
		Items: []string{roles[0].String(), roles[1].String()},
	}

	i, _, err := prompt.Run()
	if _, err := promptResult("", err); err != nil {
		return 0, err
	}

	return roles[i], nil
}

func init() {
	rootCmd.AddCommand(signinCmd, signupCmd, signoutCmd, whoamiCmd)

	signinCmd.Flags().String("email", "", "account email (prompted when empty)")
	signinCmd.Flags().String("password", "", "account password (prompted when empty)")

	signupCmd.Flags().String("name", "", "display name (prompted when empty)")
	signupCmd.Flags().String("email", "", "account email (prompted when empty)")
	signupCmd.Flags().String("password", "", "account password (prompted when empty)")
	signupCmd.Flags().String("role", "", "jobseeker or recruiter (prompted when empty)")
}
