package main

import (
	"github.com/taskistry/collabo/core"
	"github.com/taskistry/collabo/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(name, email, pwd string, role user.Role) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrRepo.GetUserByEmail(email)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Name:      name,
			Email:     email,
			AvatarURL: user.DefaultAvatarURL(name),
		}
	}
	usr.Role = role
	usr.IsActive = true
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == "" {
		_, err = cli.usrRepo.CreateUser(usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(usr, &usr.IsActive)
	}
	return err
}
