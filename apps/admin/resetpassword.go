package main

import (
	"github.com/taskistry/collabo/core"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	usr, err := cli.usrRepo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.usrRepo.UpdateUser(usr, nil); err != nil {
		return err
	}
	return nil
}
