package main

import "github.com/Tokamp4/task-management-system-fork/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()
	defer app.CloseLogFile()

	app.MustConnectDatabase()
	defer app.DisconnectDatabase()

	app.MustListenAndServeHTTP()
}
