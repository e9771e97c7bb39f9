package cli

import (
	"context"
	"fmt"
)

func (a *App) Register(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	name, err := GetSimpleText(a.reader, "Enter name")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword()
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	_, err = a.client.Register(ctx, email, string(password), name)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Success!")
}

func (a *App) Login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email")
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword()
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	if err := a.client.Login(ctx, email, string(password)); err != nil {
		fmt.Println(err.Error())
		return
	}

	a.email = email
	fmt.Println("Success!")
}

func (a *App) Logout() {
	a.client.Logout()
	a.email = ""
}
