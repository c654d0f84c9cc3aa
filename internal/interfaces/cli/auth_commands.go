package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/erp-admin/internal/application/dto"
	"github.com/jhoicas/erp-admin/internal/application/navigation"
	"github.com/jhoicas/erp-admin/internal/domain"
)

func newLoginCommand(app *App) *cobra.Command {
	var (
		username string
		personID uint
		list     bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Iniciar sesión en el backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if list {
				users, err := app.API.Auth.LoginUsers(ctx)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(users))
				for _, u := range users {
					rows = append(rows, []string{id(u.ID), u.Username, orDash(u.Name), u.Role})
				}
				return app.render(users, []string{"ID", "用户名", "姓名", "角色"}, rows)
			}

			req := dto.LoginRequest{Username: username}
			if cmd.Flags().Changed("person") {
				req.PersonID = &personID
			} else {
				if req.Username == "" {
					u, err := app.readLine("用户名: ")
					if err != nil {
						return err
					}
					req.Username = strings.TrimSpace(u)
				}
				p, err := app.ReadPassword("密码: ")
				if err != nil {
					return err
				}
				req.Password = p
			}

			user, err := app.Session.Login(ctx, req)
			if err != nil {
				return err
			}
			app.Notifier.Success(fmt.Sprintf("登录成功，欢迎 %s", user.DisplayName()))
			if user.MustChangePassword {
				app.Notifier.Warning("首次登录请修改密码: erpctl password")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "usuario")
	cmd.Flags().UintVar(&personID, "person", 0, "entrar como persona de servicio (ID)")
	cmd.Flags().BoolVar(&list, "list", false, "listar los usuarios que pueden entrar")
	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cerrar la sesión local",
		RunE: func(*cobra.Command, []string) error {
			if err := app.Session.Logout(); err != nil {
				return err
			}
			app.Notifier.Success("已退出登录")
			return nil
		},
	}
}

func newWhoamiCommand(app *App) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Usuario de la sesión actual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.Session.IsLoggedIn() {
				return errNotLoggedIn
			}
			user, err := app.Session.StoredUser()
			if refresh {
				user, err = app.Session.Refresh(cmd.Context())
			}
			if err != nil {
				return err
			}
			claims, err := app.Session.Claims()
			if err != nil && !errors.Is(err, domain.ErrNoSession) {
				app.Log.Debug().Err(err).Msg("whoami: token ilegible")
			}

			fields := [][2]string{}
			if user != nil {
				fields = append(fields,
					[2]string{"用户", user.DisplayName()},
					[2]string{"角色", user.Role},
					[2]string{"需修改密码", yesNo(user.MustChangePassword)},
				)
			}
			if claims != nil {
				fields = append(fields,
					[2]string{"令牌用户", claims.Username},
					[2]string{"令牌角色", claims.Role},
					[2]string{"过期时间", claims.ExpiresAtTime().Format("2006-01-02 15:04")},
				)
			}
			return app.renderFields(map[string]any{"user": user, "claims": claims}, fields)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "volver a pedir /user/me")
	return cmd
}

func newPasswordCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "password",
		Short:       "Cambiar la contraseña del usuario actual",
		Annotations: routed(navigation.PathChangePassword),
		RunE: func(cmd *cobra.Command, _ []string) error {
			oldPass, err := app.ReadPassword("当前密码: ")
			if err != nil {
				return err
			}
			newPass, err := app.ReadPassword("新密码: ")
			if err != nil {
				return err
			}
			confirm, err := app.ReadPassword("确认新密码: ")
			if err != nil {
				return err
			}
			if newPass != confirm {
				return fmt.Errorf("%w: las contraseñas no coinciden", domain.ErrInvalidInput)
			}
			if err := app.Session.ChangePassword(cmd.Context(), oldPass, newPass); err != nil {
				return err
			}
			app.Notifier.Success("密码修改成功")
			return nil
		},
	}
}
