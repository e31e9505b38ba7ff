// cmd/clonesim/main.go
package main

import (
	"clonesim/internal/app"
	"clonesim/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
