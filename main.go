package main

import (
	"github.com/biosecret/go-todos/app"
	_ "github.com/biosecret/go-todos/docs"
)

func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}
