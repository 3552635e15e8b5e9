// cmd/resagg/main.go
package main

import (
	"resagg/internal/appshell"
	"resagg/internal/cli"
)

func main() {
	appshell.Main(cli.Execute)
}
